package routing

import (
	"net/http"
	"sort"
	"strings"
)

// Classifier maps request paths to route classes. The longest matching
// prefix wins; unmatched paths are UI pages.
type Classifier struct {
	rules []AllowlistRule
}

func NewClassifier(rules []AllowlistRule) *Classifier {
	c := &Classifier{rules: make([]AllowlistRule, 0, len(rules))}
	for _, rule := range rules {
		if rule.Prefix = strings.TrimSpace(rule.Prefix); rule.Prefix != "" {
			c.rules = append(c.rules, rule)
		}
	}
	sort.SliceStable(c.rules, func(i, j int) bool {
		return len(c.rules[i].Prefix) > len(c.rules[j].Prefix)
	})
	return c
}

// Match returns the rule that governs path.
func (c *Classifier) Match(path string) (AllowlistRule, bool) {
	for _, rule := range c.rules {
		if HasPathPrefixOnBoundary(path, rule.Prefix) {
			return rule, true
		}
	}
	return AllowlistRule{}, false
}

func (c *Classifier) ClassifyPath(path string) RouteClass {
	if rule, ok := c.Match(path); ok {
		return rule.Class
	}
	return RouteClassUI
}

func (c *Classifier) ClassifyRequest(r *http.Request) RouteClass {
	return c.ClassifyPath(r.URL.Path)
}

// HasPathPrefixOnBoundary reports whether prefix matches path up to a "/"
// boundary, so "/api" matches "/api/v1" but not "/apiary".
func HasPathPrefixOnBoundary(path, prefix string) bool {
	switch {
	case prefix == "":
		return false
	case !strings.HasPrefix(path, prefix):
		return false
	case len(path) == len(prefix), strings.HasSuffix(prefix, "/"):
		return true
	}
	return path[len(prefix)] == '/'
}
