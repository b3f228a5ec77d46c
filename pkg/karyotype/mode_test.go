package karyotype

import (
	"slices"
	"testing"

	"github.com/karyoview/karyoview/pkg/errors"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"all", ModeAll, false},
		{"NRPH", ModeNrph, false},
		{" Giesma ", ModeGiesma, false},
		{"", "", true},
		{"giemsa", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidMode) {
					t.Errorf("ParseMode(%q) err = %v, want INVALID_MODE", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("ParseMode(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestParseModes(t *testing.T) {
	tests := []struct {
		in   string
		want []Mode
	}{
		{"", []Mode{ModeAll}},
		{"all,nrph,giesma", Modes},
		{"nrph, all, nrph", []Mode{ModeNrph, ModeAll}},
	}
	for _, tt := range tests {
		got, err := ParseModes(tt.in)
		if err != nil {
			t.Fatalf("ParseModes(%q): %v", tt.in, err)
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("ParseModes(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}

	if _, err := ParseModes("all,bogus"); !errors.Is(err, errors.ErrCodeInvalidMode) {
		t.Errorf("ParseModes(bogus) err = %v, want INVALID_MODE", err)
	}
}

func TestModeLabel(t *testing.T) {
	want := map[Mode]string{ModeAll: "All Hits", ModeNrph: "NRPH Hits", ModeGiesma: "Giesma"}
	for m, label := range want {
		if got := m.Label(); got != label {
			t.Errorf("%s.Label() = %q, want %q", m, got, label)
		}
	}
}
