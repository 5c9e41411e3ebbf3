package dtos

import (
	"context"
	"strings"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/event"
)

type CommentDTO struct {
	Comment string `form:"Comment" validate:"required"`
}

func (d *CommentDTO) Ok(ctx context.Context) (map[string]string, bool) {
	d.Comment = strings.TrimSpace(d.Comment)
	errorMessages := validationErrors(d)
	return errorMessages, len(errorMessages) == 0
}

func (d *CommentDTO) ToEntity(identifier string) *event.Comment {
	return &event.Comment{Identifier: identifier, Comment: d.Comment}
}

type ChangeGroupDTO struct {
	GroupID string `form:"GroupID" validate:"required"`
}

func (d *ChangeGroupDTO) Ok(ctx context.Context) (map[string]string, bool) {
	errorMessages := validationErrors(d)
	return errorMessages, len(errorMessages) == 0
}

// ConfirmDTO gates destructive actions.
type ConfirmDTO struct {
	Confirm string `form:"confirm"`
}

func (d *ConfirmDTO) Confirmed() bool {
	return d.Confirm == "yes"
}
