package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNavigationItem_IsActive(t *testing.T) {
	events := NavigationItem{Name: "Events", Href: "/events/all"}
	admin := NavigationItem{
		Name: "Administration",
		Children: []NavigationItem{
			{Name: "Validation", Href: "/admin/validation/all"},
		},
	}

	assert.True(t, events.IsActive("/events/all"))
	assert.True(t, events.IsActive("/events/event/abc"))
	assert.False(t, events.IsActive("/eventsx"))
	assert.True(t, admin.IsActive("/admin/validation/event/abc"))
	assert.False(t, admin.IsActive("/events/all"))
}
