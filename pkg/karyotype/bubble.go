package karyotype

import (
	"strconv"
	"strings"
)

// Segment is one command of an SVG path.
type Segment struct {
	Cmd  byte // M, V, L, Q, H or z
	Args []float64
}

// BubbleOutline returns the speech-bubble contour as path segments. The
// numbered points are visited in order:
//
//	 6____________________7      -  -
//	/                      \     |  |
//	5                      8     |  |
//	|                      |     H  |
//	4                      9     |  FH
//	\                      /     |  |
//	 3--2  11------------10      _  |
//	    | /              |--|       |
//	     1                R         _
//	|----|---|
//	  off  S
//
// fh is the tail tip depth, h and w the body size, r the corner radius, c
// the curve control offset (c <= r), s the tail width and off its offset
// from the left corner.
func BubbleOutline(fh, h, w, r, c, s, off float64) []Segment {
	k := r - c
	return []Segment{
		{'M', []float64{r + off, fh}},
		{'V', []float64{h}},
		{'L', []float64{r, h}},
		{'Q', []float64{k, h - k, 0, h - r}},
		{'V', []float64{r}},
		{'Q', []float64{k, k, r, 0}},
		{'H', []float64{w - r}},
		{'Q', []float64{w - k, 0, w, r}},
		{'V', []float64{h - r}},
		{'Q', []float64{w - k, h - k, w - r, h}},
		{'H', []float64{r + off + s}},
		{'L', []float64{r + off, fh}},
		{'z', nil},
	}
}

// BubblePath renders [BubbleOutline] as SVG path data, e.g.
// "M 10,30 V 25 L 5,25 ... L 10,30 z".
func BubblePath(fh, h, w, r, c, s, off float64) string {
	return FormatPath(BubbleOutline(fh, h, w, r, c, s, off))
}

// FormatPath joins segments as "Cmd a,b,..." separated by spaces.
func FormatPath(segs []Segment) string {
	var b strings.Builder
	for i, seg := range segs {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteByte(seg.Cmd)
		for j, a := range seg.Args {
			if j == 0 {
				b.WriteByte(' ')
			} else {
				b.WriteByte(',')
			}
			b.WriteString(num(a))
		}
	}
	return b.String()
}

// num formats v the shortest way that round-trips, so whole numbers print
// without a decimal point.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
