package proxy

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Rule forwards requests whose path starts with Prefix to the backend.
// WebSocket rules complete the upgrade and tunnel frames instead of
// forwarding plain HTTP.
type Rule struct {
	Prefix    string `yaml:"prefix"`
	WebSocket bool   `yaml:"websocket"`
}

type Table struct {
	Target string `yaml:"target"`
	Rules  []Rule `yaml:"rules"`
}

// DefaultTable mirrors the dev-server routing the frontend was built
// against: two plain API prefixes and the socket.io upgrade path, all
// pointed at one backend origin.
func DefaultTable(target string) Table {
	return Table{
		Target: target,
		Rules: []Rule{
			{Prefix: "/api/v1"},
			{Prefix: "/api"},
			{Prefix: "/socket.io", WebSocket: true},
		},
	}
}

func LoadTable(path string) (Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Table{}, fmt.Errorf("read rule table: %w", err)
	}
	var t Table
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Table{}, fmt.Errorf("parse rule table: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Table{}, err
	}
	return t, nil
}

func (t Table) Validate() error {
	u, err := url.Parse(t.Target)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("rule table target %q is not an absolute URL", t.Target)
	}
	if len(t.Rules) == 0 {
		return fmt.Errorf("rule table has no rules")
	}
	for _, r := range t.Rules {
		if !strings.HasPrefix(r.Prefix, "/") {
			return fmt.Errorf("rule prefix %q must start with /", r.Prefix)
		}
	}
	return nil
}

// Match returns the rule with the longest prefix matching path, so /api/v1
// wins over /api for the same request.
func (t Table) Match(path string) (Rule, bool) {
	var best Rule
	found := false
	for _, r := range t.Rules {
		if strings.HasPrefix(path, r.Prefix) && (!found || len(r.Prefix) > len(best.Prefix)) {
			best = r
			found = true
		}
	}
	return best, found
}
