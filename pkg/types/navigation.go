package types

import "strings"

type NavigationItem struct {
	Name     string
	Href     string
	Children []NavigationItem
}

// IsActive reports whether path belongs to this item or one of its children.
func (n NavigationItem) IsActive(path string) bool {
	if n.Href != "" && (path == n.Href || strings.HasPrefix(path, strings.TrimSuffix(n.Href, "/all")+"/")) {
		return true
	}
	for _, child := range n.Children {
		if child.IsActive(path) {
			return true
		}
	}
	return false
}
