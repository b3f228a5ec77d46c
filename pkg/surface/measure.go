package surface

import "golang.org/x/image/font"

// MeasureText returns the advance width of s in face, in pixels.
func MeasureText(face font.Face, s string) float64 {
	if s == "" {
		return 0
	}
	return float64(font.MeasureString(face, s)) / 64
}
