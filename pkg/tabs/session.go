package tabs

import (
	"encoding/json"
	"fmt"

	"github.com/gorilla/sessions"
)

func sessionKey(section Section) string {
	return "tabs." + section.Key
}

// FromSession restores the registry of section from sess. A missing or
// unreadable value yields an empty registry.
func FromSession(sess *sessions.Session, section Section) *Registry {
	raw, ok := sess.Values[sessionKey(section)].(string)
	if !ok || raw == "" {
		return New(section)
	}
	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		return New(section)
	}
	return New(section, entries...)
}

// ToSession stores the registry in sess. The caller saves the session.
func ToSession(sess *sessions.Session, r *Registry) error {
	raw, err := json.Marshal(r.entries)
	if err != nil {
		return fmt.Errorf("encode %s tabs: %w", r.section.Key, err)
	}
	sess.Values[sessionKey(r.section)] = string(raw)
	return nil
}
