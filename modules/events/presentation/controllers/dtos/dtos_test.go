package dtos

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ce1sus/ce1sus-console/modules/events/domain/event"
)

func TestEventDTO_Ok(t *testing.T) {
	dto := NewEventDTO()
	dto.Title = "  "
	dto.TLP = "Purple"
	dto.FirstSeen = "yesterday"

	errs, ok := dto.Ok(context.Background())

	require.False(t, ok)
	assert.Equal(t, "Title is required", errs["Title"])
	assert.Equal(t, "TLP has an unsupported value", errs["TLP"])
	assert.Contains(t, errs, "FirstSeen")

	valid := NewEventDTO()
	valid.Title = "Phishing"
	valid.FirstSeen = "2015-03-01"
	_, ok = valid.Ok(context.Background())
	assert.True(t, ok)
}

func TestEventDTO_Changed(t *testing.T) {
	first := time.Date(2015, 3, 1, 0, 0, 0, 0, time.UTC)
	snapshot := EventDTOFromEntity(&event.Event{Title: "a", Status: "Draft", Risk: "Low", Analysis: "None", TLP: "Red", FirstSeen: &first})
	assert.Equal(t, "2015-03-01", snapshot.FirstSeen)

	same := *snapshot
	changed, err := same.Changed(snapshot)
	require.NoError(t, err)
	assert.False(t, changed)

	edited := *snapshot
	edited.Risk = "High"
	changed, err = edited.Changed(snapshot)
	require.NoError(t, err)
	assert.True(t, changed)
}

func TestEventDTO_ToEntity(t *testing.T) {
	dto := &EventDTO{Title: "x", LastSeen: "2015-03-04", Published: true}

	e, err := dto.ToEntity("e1")

	require.NoError(t, err)
	assert.Equal(t, "e1", e.Identifier)
	assert.True(t, e.Published)
	assert.Nil(t, e.FirstSeen)
	require.NotNil(t, e.LastSeen)
	assert.Equal(t, 4, e.LastSeen.Day())

	_, err = (&EventDTO{FirstSeen: "03/04/2015"}).ToEntity("")
	assert.Error(t, err)
}

func TestCommentDTO(t *testing.T) {
	_, ok := (&CommentDTO{Comment: " \n"}).Ok(context.Background())
	assert.False(t, ok)

	dto := &CommentDTO{Comment: " looks bad "}
	_, ok = dto.Ok(context.Background())
	require.True(t, ok)
	assert.Equal(t, &event.Comment{Identifier: "c1", Comment: "looks bad"}, dto.ToEntity("c1"))
}

func TestConfirmDTO(t *testing.T) {
	assert.True(t, (&ConfirmDTO{Confirm: "yes"}).Confirmed())
	assert.False(t, (&ConfirmDTO{Confirm: "no"}).Confirmed())
	assert.False(t, (&ConfirmDTO{}).Confirmed())
}
