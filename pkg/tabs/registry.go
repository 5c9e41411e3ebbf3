// Package tabs keeps track of the records a user has open as tabs.
package tabs

import "slices"

// Section describes one tab strip: where a tab links to and where the user
// lands once the tab they were looking at is closed.
type Section struct {
	Key          string
	DetailPrefix string
	ListingPath  string
}

var (
	Events = Section{
		Key:          "events",
		DetailPrefix: "/events/event/",
		ListingPath:  "/events/all",
	}
	Validation = Section{
		Key:          "validation",
		DetailPrefix: "/admin/validation/event/",
		ListingPath:  "/admin/validation/all",
	}
)

func (s Section) DetailPath(identifier string) string {
	return s.DetailPrefix + identifier
}

type Entry struct {
	Identifier string `json:"identifier"`
	Title      string `json:"title"`
	Path       string `json:"path"`
	Closable   bool   `json:"closable"`
}

// Registry is the ordered set of open tabs of one section. Identifiers are unique.
type Registry struct {
	section Section
	entries []Entry
}

func New(section Section, entries ...Entry) *Registry {
	r := &Registry{section: section}
	for _, e := range entries {
		if e.Identifier == "" || r.index(e.Identifier) >= 0 {
			continue
		}
		r.entries = append(r.entries, e)
	}
	return r
}

func (r *Registry) Section() Section {
	return r.section
}

// Add opens a tab for identifier unless one is already open. It returns the
// location to navigate to: the tab's path when a tab was added and navigate is
// set, "" otherwise. Re-adding an open tab never navigates.
func (r *Registry) Add(identifier, title string, navigate bool) string {
	if r.index(identifier) >= 0 {
		return ""
	}
	path := r.section.DetailPath(identifier)
	r.entries = append(r.entries, Entry{
		Identifier: identifier,
		Title:      title,
		Path:       path,
		Closable:   true,
	})
	if navigate {
		return path
	}
	return ""
}

// Remove closes the tab for identifier. When a tab was closed it returns the
// section's listing path, "" otherwise.
func (r *Registry) Remove(identifier string) string {
	i := r.index(identifier)
	if i < 0 {
		return ""
	}
	r.entries = slices.Delete(r.entries, i, i+1)
	return r.section.ListingPath
}

// Rename updates the title of an open tab and reports whether one matched.
func (r *Registry) Rename(identifier, title string) bool {
	i := r.index(identifier)
	if i < 0 {
		return false
	}
	r.entries[i].Title = title
	return true
}

func (r *Registry) Contains(identifier string) bool {
	return r.index(identifier) >= 0
}

func (r *Registry) Entries() []Entry {
	return slices.Clone(r.entries)
}

func (r *Registry) Len() int {
	return len(r.entries)
}

func (r *Registry) index(identifier string) int {
	if identifier == "" {
		return -1
	}
	return slices.IndexFunc(r.entries, func(e Entry) bool {
		return e.Identifier == identifier
	})
}
