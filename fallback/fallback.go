// Package fallback holds the static event table used whenever the database
// has no row for an event name. It is loaded once from an embedded file and
// never mutated afterwards.
package fallback

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed events.yaml
var eventsYAML []byte

// Entry is the hardcoded metadata for a single event.
type Entry struct {
	Name             string `yaml:"name"`
	Description      string `yaml:"description"`
	RoundsInfo       string `yaml:"rounds_info"`
	Rules            string `yaml:"rules"`
	TeamRequirements string `yaml:"team_requirements"`
	Prizes           string `yaml:"prizes"`
	Icon             string `yaml:"icon"`
}

const (
	defaultPrizes           = "1st: ₹3,000 | 2nd: ₹2,000 | 3rd: ₹1,000"
	defaultTeamRequirements = "See rules for team size."
	defaultIcon             = "fas fa-code"
)

var (
	order   []string
	entries map[string]Entry
)

func init() {
	var doc struct {
		Events []Entry `yaml:"events"`
	}
	if err := yaml.Unmarshal(eventsYAML, &doc); err != nil {
		panic(fmt.Sprintf("fallback: bad embedded events.yaml: %v", err))
	}
	entries = make(map[string]Entry, len(doc.Events))
	for _, e := range doc.Events {
		order = append(order, e.Name)
		entries[e.Name] = e
	}
}

// Names returns the event names in display order.
func Names() []string {
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// Get returns the fallback entry for an event name.
func Get(name string) (Entry, bool) {
	e, ok := entries[name]
	return e, ok
}

// Prizes returns the prize line for an event, with a generic default for
// names outside the table.
func Prizes(name string) string {
	if e, ok := entries[name]; ok && e.Prizes != "" {
		return e.Prizes
	}
	return defaultPrizes
}

// TeamRequirements returns the team-size line for an event.
func TeamRequirements(name string) string {
	if e, ok := entries[name]; ok && e.TeamRequirements != "" {
		return e.TeamRequirements
	}
	return defaultTeamRequirements
}

// Icon returns the icon class used by the home page cards.
func Icon(name string) string {
	if e, ok := entries[name]; ok && e.Icon != "" {
		return e.Icon
	}
	return defaultIcon
}
