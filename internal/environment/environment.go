// Package environment names the backend deployments the dashboard can
// target and resolves their API base URLs.
package environment

import (
	"errors"
	"fmt"
	"strings"
)

type Environment string

const (
	Dev        Environment = "dev"
	Stage      Environment = "stage"
	Production Environment = "production"
)

// ErrUnknown is returned for environment names outside the fixed set.
var ErrUnknown = errors.New("unknown environment")

var baseURLs = map[Environment]string{
	Dev:        "https://dev-api.battle-royale.site/api",
	Stage:      "https://stage-api.battle-royale.site/api",
	Production: "https://production-api.battle-royale.site/api",
}

// legacy selector values used by older dashboard links
var selectors = map[string]Environment{
	"1": Dev,
	"2": Stage,
	"3": Production,
}

// All returns the environments in display order.
func All() []Environment {
	return []Environment{Dev, Stage, Production}
}

// Parse resolves a name ("dev", "stage", "production") or legacy selector
// ("1", "2", "3") to an Environment.
func Parse(s string) (Environment, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if env, ok := selectors[s]; ok {
		return env, nil
	}
	env := Environment(s)
	if _, ok := baseURLs[env]; ok {
		return env, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknown, s)
}

// BaseURL returns the default API base URL for env.
func BaseURL(env Environment) (string, bool) {
	u, ok := baseURLs[env]
	return u, ok
}

func (e Environment) String() string { return string(e) }

// Valid reports whether e is one of the known environments.
func (e Environment) Valid() bool {
	_, ok := baseURLs[e]
	return ok
}

// Table is an immutable environment -> base URL mapping. It starts from the
// built-in URLs and applies any overrides given at construction.
type Table struct {
	urls map[Environment]string
}

// NewTable builds a Table. Overrides for unknown environments are rejected.
func NewTable(overrides map[Environment]string) (*Table, error) {
	urls := make(map[Environment]string, len(baseURLs))
	for env, u := range baseURLs {
		urls[env] = u
	}
	for env, u := range overrides {
		if !env.Valid() {
			return nil, fmt.Errorf("%w: %q", ErrUnknown, env)
		}
		if u = strings.TrimRight(strings.TrimSpace(u), "/"); u != "" {
			urls[env] = u
		}
	}
	return &Table{urls: urls}, nil
}

// BaseURL returns the base URL configured for env.
func (t *Table) BaseURL(env Environment) (string, bool) {
	u, ok := t.urls[env]
	return u, ok
}
