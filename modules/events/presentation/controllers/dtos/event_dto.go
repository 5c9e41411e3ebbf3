package dtos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/wI2L/jsondiff"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/event"
	"github.com/ce1sus/ce1sus-console/pkg/constants"
)

const dateLayout = "2006-01-02"

var validationMessages = map[string]string{
	"required": "%s is required",
	"oneof":    "%s has an unsupported value",
	"max":      "%s is too long",
	"datetime": "%s must be a date (YYYY-MM-DD)",
}

func validationErrors(dto any) map[string]string {
	errorMessages := map[string]string{}
	errs := constants.Validate.Struct(dto)
	if errs == nil {
		return errorMessages
	}
	validationErrs, ok := errs.(validator.ValidationErrors)
	if !ok {
		errorMessages[""] = errs.Error()
		return errorMessages
	}
	for _, err := range validationErrs {
		format, ok := validationMessages[err.Tag()]
		if !ok {
			format = "%s is invalid"
		}
		errorMessages[err.Field()] = fmt.Sprintf(format, err.Field())
	}
	return errorMessages
}

type EventDTO struct {
	Title       string `form:"Title" json:"title" validate:"required,max=255"`
	Description string `form:"Description" json:"description"`
	Status      string `form:"Status" json:"status" validate:"required,oneof=Confirmed Draft Deleted Expired"`
	Risk        string `form:"Risk" json:"risk" validate:"required,oneof=Undefined None Low Medium High Critical"`
	Analysis    string `form:"Analysis" json:"analysis" validate:"required,oneof=None Opened Stalled Completed Unknown"`
	TLP         string `form:"TLP" json:"tlp" validate:"required,oneof=Red Amber Green White"`
	Published   bool   `form:"Published" json:"published"`
	FirstSeen   string `form:"FirstSeen" json:"first_seen" validate:"omitempty,datetime=2006-01-02"`
	LastSeen    string `form:"LastSeen" json:"last_seen" validate:"omitempty,datetime=2006-01-02"`
}

// NewEventDTO is the form of a new event.
func NewEventDTO() *EventDTO {
	return &EventDTO{Status: "Draft", Risk: "Undefined", Analysis: "None", TLP: "Amber"}
}

// EventDTOFromEntity is the form snapshot of a server copy.
func EventDTOFromEntity(e *event.Event) *EventDTO {
	dto := &EventDTO{
		Title:       e.Title,
		Description: e.Description,
		Status:      e.Status,
		Risk:        e.Risk,
		Analysis:    e.Analysis,
		TLP:         e.TLP,
		Published:   e.Published,
	}
	if e.FirstSeen != nil {
		dto.FirstSeen = e.FirstSeen.Format(dateLayout)
	}
	if e.LastSeen != nil {
		dto.LastSeen = e.LastSeen.Format(dateLayout)
	}
	return dto
}

func (d *EventDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Title = strings.TrimSpace(d.Title)
	errorMessages := validationErrors(d)
	return errorMessages, len(errorMessages) == 0
}

// Changed reports whether the submitted form differs from snapshot.
func (d *EventDTO) Changed(snapshot *EventDTO) (bool, error) {
	patch, err := jsondiff.Compare(snapshot, d)
	if err != nil {
		return false, fmt.Errorf("failed to compare event forms: %w", err)
	}
	return len(patch) > 0, nil
}

func parseDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (d *EventDTO) ToEntity(identifier string) (*event.Event, error) {
	firstSeen, err := parseDate(d.FirstSeen)
	if err != nil {
		return nil, fmt.Errorf("invalid first seen: %w", err)
	}
	lastSeen, err := parseDate(d.LastSeen)
	if err != nil {
		return nil, fmt.Errorf("invalid last seen: %w", err)
	}
	return &event.Event{
		Identifier:  identifier,
		Title:       d.Title,
		Description: d.Description,
		Status:      d.Status,
		Risk:        d.Risk,
		Analysis:    d.Analysis,
		TLP:         d.TLP,
		Published:   d.Published,
		FirstSeen:   firstSeen,
		LastSeen:    lastSeen,
	}, nil
}
