package karyotype

import (
	"math"
	"strconv"
)

// Bucket is one legend row.
type Bucket struct {
	Color string
	Label string
}

// Legend bins hit counts into colored ranges.
type Legend struct {
	Buckets []Bucket
	Width   int // range size of every bucket but the zero and the last
	Max     int // the magnitude the legend was computed for
}

// ComputeLegend partitions [1, maxMagnitude] into len(colors)-1 ranges of
// width ceil(max/(n-1)). Bucket 0 is labeled "0". The last bucket ends at
// maxMagnitude, so it can be narrower or wider than the rest.
func ComputeLegend(maxMagnitude int, colors []string) Legend {
	l := Legend{Max: maxMagnitude, Buckets: make([]Bucket, len(colors))}
	if len(colors) == 0 {
		return l
	}
	l.Buckets[0] = Bucket{Color: colors[0], Label: "0"}
	n := len(colors)
	if n < 2 {
		return l
	}

	l.Width = int(math.Ceil(float64(maxMagnitude) / float64(n-1)))
	start := 1
	for i := 1; i < n-1; i++ {
		l.Buckets[i] = Bucket{Color: colors[i], Label: rangeLabel(start, start+l.Width-1)}
		start += l.Width
	}
	l.Buckets[n-1] = Bucket{Color: colors[n-1], Label: rangeLabel(start, maxMagnitude)}
	return l
}

func rangeLabel(lo, hi int) string {
	return strconv.Itoa(lo) + "-" + strconv.Itoa(hi)
}

// Index returns the bucket index for count: ceil(count/Width). A zero-width
// legend maps everything to bucket 0. The result may be out of range.
func (l Legend) Index(count int) int {
	if l.Width == 0 {
		return 0
	}
	return int(math.Ceil(float64(count) / float64(l.Width)))
}

// ColorFor returns the fill for a hit count. Counts beyond the last bucket,
// which arise when a count exceeds the legend's maximum, get [Unmapped].
func (l Legend) ColorFor(count int) string {
	i := l.Index(count)
	if i < 0 || i >= len(l.Buckets) {
		return Unmapped
	}
	return l.Buckets[i].Color
}
