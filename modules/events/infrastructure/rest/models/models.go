package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/observable"
)

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Timestamp accepts the date formats the backend emits.
type Timestamp struct {
	time.Time
}

func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("timestamp: unsupported format %q", s)
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}

type Group struct {
	Identifier  string `json:"identifier"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Properties struct {
	Shared    observable.Flag `json:"shared"`
	Validated observable.Flag `json:"validated"`
}

type Permissions struct {
	Add      observable.Flag `json:"add"`
	Modify   observable.Flag `json:"modify"`
	Validate observable.Flag `json:"validate"`
	Delete   observable.Flag `json:"delete"`
	Process  observable.Flag `json:"process"`
}

type Comment struct {
	Identifier   string     `json:"identifier,omitempty"`
	Comment      string     `json:"comment"`
	CreatorGroup *Group     `json:"creator_group,omitempty"`
	CreatedAt    *Timestamp `json:"created_at,omitempty"`
	ModifiedOn   *Timestamp `json:"modified_on,omitempty"`
}

type Event struct {
	Identifier       string          `json:"identifier"`
	UUID             string          `json:"uuid"`
	Title            string          `json:"title"`
	Description      string          `json:"description"`
	Status           string          `json:"status"`
	Risk             string          `json:"risk"`
	Analysis         string          `json:"analysis"`
	TLP              string          `json:"tlp"`
	Published        observable.Flag `json:"published"`
	FirstSeen        *Timestamp      `json:"first_seen"`
	LastSeen         *Timestamp      `json:"last_seen"`
	CreatedAt        *Timestamp      `json:"created_at"`
	ModifiedOn       *Timestamp      `json:"modified_on"`
	CreatorGroup     *Group          `json:"creator_group"`
	ModifierGroup    *Group          `json:"modifier_group"`
	Comments         []Comment       `json:"comments"`
	Properties       *Properties     `json:"properties"`
	UserPermissions  *Permissions    `json:"userpermissions"`
	ObservablesCount int             `json:"observables_count"`
}

// EventInput is the body of POST /event and PUT /event/{id}.
type EventInput struct {
	Identifier  string     `json:"identifier,omitempty"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Risk        string     `json:"risk"`
	Analysis    string     `json:"analysis"`
	TLP         string     `json:"tlp"`
	Published   int        `json:"published"`
	FirstSeen   *Timestamp `json:"first_seen,omitempty"`
	LastSeen    *Timestamp `json:"last_seen,omitempty"`
}

type EventPage struct {
	Total int     `json:"total"`
	Data  []Event `json:"data"`
}

type ChangeGroupInput struct {
	Identifier string `json:"identifier"`
}
