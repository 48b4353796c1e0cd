// Package dates converts between the dd.mm.yyyy form people type and read,
// and the canonical instant stored on documents.
//
// A canonical instant is the start of a calendar day in the configured
// location, written in UTC with millisecond precision, e.g.
// "2025-12-25T00:00:00.000Z" when the location is UTC.
package dates

import (
	"regexp"
	"strings"
	"time"
)

const (
	// CanonicalLayout is the layout of persisted instants (always UTC)
	CanonicalLayout = "2006-01-02T15:04:05.000Z07:00"

	// DisplayLayout is the layout used for display and editing
	DisplayLayout = "02.01.2006"
)

var reDisplay = regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`)

// absoluteLayouts carry their own offset and are parsed as-is
var absoluteLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000Z0700",
}

// localLayouts have no offset and are interpreted in the normalizer's location
var localLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006/01/02",
}

// Normalizer parses and renders dates relative to a location.
// The zero value is not usable; use New.
type Normalizer struct {
	loc *time.Location
}

// New creates a Normalizer for loc. A nil loc means UTC.
func New(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{loc: loc}
}

// Location returns the location days are computed in
func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Parse accepts either dd.mm.yyyy or a generic date string and returns the
// start of that calendar day in the normalizer's location.
// Empty input and invalid calendar dates return false.
func (n *Normalizer) Parse(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}

	if reDisplay.MatchString(s) {
		// time.ParseInLocation rejects out of range days (31.02) and months (13)
		t, err := time.ParseInLocation(DisplayLayout, s, n.loc)
		if err != nil {
			return time.Time{}, false
		}
		return n.startOfDay(t), true
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return n.startOfDay(t), true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, n.loc); err == nil {
			return n.startOfDay(t), true
		}
	}

	return time.Time{}, false
}

// Canonicalize returns the canonical instant for value.
// The second return is false when value is empty or not a valid date,
// which callers persist as null.
func (n *Normalizer) Canonicalize(value string) (string, bool) {
	t, ok := n.Parse(value)
	if !ok {
		return "", false
	}
	return n.Format(t), true
}

// Format renders t as a canonical instant for the day it falls on
func (n *Normalizer) Format(t time.Time) string {
	return n.startOfDay(t).UTC().Format(CanonicalLayout)
}

// Display renders value as dd.mm.yyyy. Empty input gives "", and values
// that cannot be parsed are returned unchanged so nothing typed is lost.
func (n *Normalizer) Display(value string) string {
	if strings.TrimSpace(value) == "" {
		return ""
	}
	t, ok := n.Parse(value)
	if !ok {
		return value
	}
	return t.Format(DisplayLayout)
}

// DisplayOr is Display with a placeholder for empty values
func (n *Normalizer) DisplayOr(value, placeholder string) string {
	if d := n.Display(value); d != "" {
		return d
	}
	return placeholder
}

// Today returns the canonical instant for the day containing now
func (n *Normalizer) Today(now time.Time) string {
	return n.Format(now)
}

func (n *Normalizer) startOfDay(t time.Time) time.Time {
	t = t.In(n.loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, n.loc)
}

// ParseInstant parses a stored instant without day truncation.
// It is used for ordering documents by date.
func ParseInstant(value string) (time.Time, bool) {
	s := strings.TrimSpace(value)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// LoadLocation resolves a location name from config.
// "" and "Local" mean the system location.
func LoadLocation(name string) (*time.Location, error) {
	switch strings.TrimSpace(name) {
	case "", "Local", "local":
		return time.Local, nil
	case "UTC", "utc":
		return time.UTC, nil
	}
	return time.LoadLocation(strings.TrimSpace(name))
}
