package karyotype

import (
	"math"

	"github.com/karyoview/karyoview/pkg/errors"
)

// Geometry fixes the pixel dimensions of glyphs and the legend panel.
type Geometry struct {
	GlyphWidth      int
	GlyphSeparation int
	CapSize         int // vertical room reserved for each end cap
	CapCurve        int // control point offset of the cap curve
	Height          int // canvas height
	LegendWidth     int
	LegendHeight    int
	SwatchSize      int
	SwatchGap       int
}

// DefaultGeometry returns the standard 300px-high karyotype geometry.
func DefaultGeometry() Geometry {
	return Geometry{
		GlyphWidth:      18,
		GlyphSeparation: 14,
		CapSize:         10,
		CapCurve:        12,
		Height:          300,
		LegendWidth:     160,
		LegendHeight:    200,
		SwatchSize:      18,
		SwatchGap:       2,
	}
}

// Validate checks that every dimension is usable.
func (g Geometry) Validate() error {
	switch {
	case g.GlyphWidth <= 2:
		return errors.New(errors.ErrCodeInvalidConfig, "glyph width must be greater than 2, got %d", g.GlyphWidth)
	case g.GlyphSeparation < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "glyph separation cannot be negative, got %d", g.GlyphSeparation)
	case g.CapSize < 0 || g.CapCurve < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "cap dimensions cannot be negative")
	case g.Height <= 2*g.CapSize:
		return errors.New(errors.ErrCodeInvalidConfig, "height %d leaves no room between caps of %d", g.Height, g.CapSize)
	case g.LegendWidth < 0 || g.LegendHeight < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "legend dimensions cannot be negative")
	case g.SwatchSize <= 0 || g.SwatchGap < 0:
		return errors.New(errors.ErrCodeInvalidConfig, "legend swatch dimensions must be positive")
	}
	return nil
}

// Scale is the fixed pixel scale of a view.
type Scale struct {
	PixelsPerBasePair float64
	Width             int
	Height            int
}

// NewScale derives the scale from the reference contig. Width reserves two
// glyph widths per slot plus the legend; a remaining-genome contig takes a
// slot of its own.
func NewScale(s Summary, g Geometry) Scale {
	slots := s.ContigCount
	if s.HasRemaining {
		slots++
	}
	sc := Scale{
		Width:  2*g.GlyphWidth*slots + g.LegendWidth,
		Height: g.Height,
	}
	if s.ReferenceSize > 0 {
		sc.PixelsPerBasePair = float64(g.Height-2*g.CapSize) / float64(s.ReferenceSize)
	}
	return sc
}

// Pixels converts a base-pair coordinate to a pixel offset, rounding down.
func (sc Scale) Pixels(bp int) int {
	return int(math.Floor(float64(bp) * sc.PixelsPerBasePair))
}
