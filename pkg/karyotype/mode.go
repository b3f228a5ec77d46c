package karyotype

import (
	"strings"

	"github.com/karyoview/karyoview/pkg/errors"
)

// Mode selects which overlay a view draws.
type Mode string

// Visualization modes.
const (
	ModeAll    Mode = "all"
	ModeNrph   Mode = "nrph"
	ModeGiesma Mode = "giesma"
)

// Modes lists the valid modes in display order.
var Modes = []Mode{ModeAll, ModeNrph, ModeGiesma}

// Valid reports whether m is one of the three known modes.
func (m Mode) Valid() bool {
	return m == ModeAll || m == ModeNrph || m == ModeGiesma
}

// String returns the mode name.
func (m Mode) String() string { return string(m) }

// Label returns the button caption used for m.
func (m Mode) Label() string {
	switch m {
	case ModeAll:
		return "All Hits"
	case ModeNrph:
		return "NRPH Hits"
	case ModeGiesma:
		return "Giesma"
	}
	return string(m)
}

// ParseMode converts a case-insensitive name to a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", errors.New(errors.ErrCodeInvalidMode, "unknown visualization %q (must be one of: all, nrph, giesma)", s)
	}
	return m, nil
}

// ParseModes parses a comma-separated mode list, dropping duplicates.
// An empty string yields [ModeAll].
func ParseModes(s string) ([]Mode, error) {
	if strings.TrimSpace(s) == "" {
		return []Mode{ModeAll}, nil
	}
	var out []Mode
	seen := make(map[Mode]bool)
	for _, part := range strings.Split(s, ",") {
		m, err := ParseMode(part)
		if err != nil {
			return nil, err
		}
		if !seen[m] {
			seen[m] = true
			out = append(out, m)
		}
	}
	return out, nil
}
