package routing

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type RouteClass string

const (
	RouteClassUI     RouteClass = "ui"
	RouteClassAPI    RouteClass = "api"
	RouteClassOps    RouteClass = "ops"
	RouteClassStatic RouteClass = "static"
)

// IsJSON reports whether errors on routes of this class are answered with a
// JSON envelope instead of an HTML page.
func (c RouteClass) IsJSON() bool {
	return c == RouteClassAPI || c == RouteClassOps
}

var ErrAllowlistNotFound = errors.New("routing allowlist not found")

type AllowlistRule struct {
	Prefix string     `yaml:"prefix"`
	Class  RouteClass `yaml:"class"`
}

// DefaultRules classify the console's own endpoints.
var DefaultRules = []AllowlistRule{
	{Prefix: "/health", Class: RouteClassOps},
	{Prefix: "/debug", Class: RouteClassOps},
	{Prefix: "/api", Class: RouteClassAPI},
	{Prefix: "/static", Class: RouteClassStatic},
}

type allowlistFile struct {
	Version int             `yaml:"version"`
	Rules   []AllowlistRule `yaml:"rules"`
}

// LoadAllowlist reads extra rules from a YAML file. An empty path yields the
// default rules only.
func LoadAllowlist(path string) ([]AllowlistRule, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultRules, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrAllowlistNotFound, path)
		}
		return nil, err
	}

	var file allowlistFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, err
	}
	if file.Version != 1 {
		return nil, fmt.Errorf("unsupported allowlist version: %d", file.Version)
	}

	for i := range file.Rules {
		file.Rules[i].Prefix = strings.TrimSpace(file.Rules[i].Prefix)
		if file.Rules[i].Prefix == "" {
			return nil, fmt.Errorf("allowlist rule[%d]: empty prefix", i)
		}
		if !strings.HasPrefix(file.Rules[i].Prefix, "/") {
			return nil, fmt.Errorf("allowlist rule[%d]: prefix must start with '/': %q", i, file.Rules[i].Prefix)
		}
		switch file.Rules[i].Class {
		case RouteClassUI, RouteClassAPI, RouteClassOps, RouteClassStatic:
		default:
			return nil, fmt.Errorf("allowlist rule[%d]: unknown class: %q", i, file.Rules[i].Class)
		}
	}

	return append(file.Rules, DefaultRules...), nil
}
