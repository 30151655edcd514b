// Package channel holds the distribution targets a summary can be sent
// to and reconciles agent delivery results against them.
package channel

import (
	"fmt"
	"strings"
)

// Channel is a named distribution target. Enabled is user-controlled.
// Status is informational history written only by reconciliation after
// a distribution attempt; toggling never touches it.
type Channel struct {
	ID      string         `yaml:"id" json:"id"`
	Name    string         `yaml:"name" json:"name"`
	Enabled bool           `yaml:"enabled" json:"enabled"`
	Status  DeliveryStatus `yaml:"-" json:"status,omitempty"`
}

// DefaultCatalog returns the built-in distribution targets. A config
// file may replace this list; it cannot change during a session.
func DefaultCatalog() []Channel {
	return []Channel{
		{ID: "slack", Name: "Slack"},
		{ID: "email", Name: "Email"},
		{ID: "teams", Name: "Microsoft Teams"},
		{ID: "discord", Name: "Discord"},
		{ID: "notion", Name: "Notion"},
	}
}

// Set is an ordered collection of channels keyed by identifier.
// Channels are created once at startup and never removed. Set is not
// safe for concurrent use; the owning session serializes access.
type Set struct {
	chans []*Channel
	byID  map[string]*Channel
}

// NewSet builds a set from catalog entries, preserving order. Entries
// with empty or duplicate identifiers are dropped.
func NewSet(catalog ...Channel) *Set {
	s := &Set{byID: make(map[string]*Channel, len(catalog))}
	for _, c := range catalog {
		if c.ID == "" {
			continue
		}
		if _, dup := s.byID[c.ID]; dup {
			continue
		}
		ch := c
		if ch.Name == "" {
			ch.Name = ch.ID
		}
		s.chans = append(s.chans, &ch)
		s.byID[ch.ID] = &ch
	}
	return s
}

// Len returns the number of known channels.
func (s *Set) Len() int { return len(s.chans) }

// All returns a copy of every channel in catalog order.
func (s *Set) All() []Channel {
	out := make([]Channel, len(s.chans))
	for i, ch := range s.chans {
		out[i] = *ch
	}
	return out
}

// Get returns the channel with the given identifier.
func (s *Set) Get(id string) (Channel, bool) {
	ch, ok := s.byID[id]
	if !ok {
		return Channel{}, false
	}
	return *ch, true
}

// Toggle flips the enabled flag of the identified channel. Returns
// false when the identifier is unknown.
func (s *Set) Toggle(id string) bool {
	ch, ok := s.byID[id]
	if !ok {
		return false
	}
	ch.Enabled = !ch.Enabled
	return true
}

// Enabled returns the enabled channels in catalog order.
func (s *Set) Enabled() []Channel {
	var out []Channel
	for _, ch := range s.chans {
		if ch.Enabled {
			out = append(out, *ch)
		}
	}
	return out
}

// EnableOnly enables exactly the named channels (by identifier or
// case-insensitive display name) and disables the rest. An unknown
// name is an error and leaves the set unchanged.
func (s *Set) EnableOnly(names ...string) error {
	resolved := make([]*Channel, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		ch := s.resolve(name)
		if ch == nil {
			return fmt.Errorf("unknown channel %q (known: %s)", name, strings.Join(s.ids(), ", "))
		}
		resolved = append(resolved, ch)
	}

	for _, ch := range s.chans {
		ch.Enabled = false
	}
	for _, ch := range resolved {
		ch.Enabled = true
	}
	return nil
}

// resolve finds a channel by identifier, then by case-insensitive
// display name.
func (s *Set) resolve(key string) *Channel {
	if ch, ok := s.byID[key]; ok {
		return ch
	}
	for _, ch := range s.chans {
		if strings.EqualFold(ch.Name, key) || strings.EqualFold(ch.ID, key) {
			return ch
		}
	}
	return nil
}

func (s *Set) ids() []string {
	out := make([]string, len(s.chans))
	for i, ch := range s.chans {
		out[i] = ch.ID
	}
	return out
}
