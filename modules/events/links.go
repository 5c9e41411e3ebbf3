package events

import "github.com/ce1sus/ce1sus-console/pkg/types"

var RecentEventsLink = types.NavigationItem{
	Name: "Recent events",
	Href: "/events/all",
}

var AddEventLink = types.NavigationItem{
	Name: "Add event",
	Href: "/events/add",
}

var ValidationLink = types.NavigationItem{
	Name: "Validation",
	Href: "/admin/validation/all",
}

var AdministrationLink = types.NavigationItem{
	Name:     "Administration",
	Href:     "#",
	Children: []types.NavigationItem{ValidationLink},
}

var NavItems = []types.NavigationItem{
	RecentEventsLink,
	AddEventLink,
	AdministrationLink,
}
