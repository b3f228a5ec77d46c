package karyotype

// Summary holds dataset statistics computed once when a view is created.
type Summary struct {
	MaxHitMagnitude     int  `json:"max_hit_magnitude"`      // largest hit cluster count
	MaxNrphHitMagnitude int  `json:"max_nrph_hit_magnitude"` // largest NRPH hit cluster count
	HasStainingData     bool `json:"has_staining_data"`      // some contig carries Giesma bands
	ReferenceSize       int  `json:"reference_size"`         // size of the first (largest) contig
	ContigCount         int  `json:"contig_count"`
	HasRemaining        bool `json:"has_remaining"` // a remaining-genome contig is present
}

// Summarize scans ds once. It does not reorder contigs: ReferenceSize is the
// size of ds.Contigs[0].
func Summarize(ds *Dataset) Summary {
	s := Summary{
		ContigCount:  len(ds.Contigs),
		HasRemaining: ds.RemainingGenomeContig != nil,
	}
	if len(ds.Contigs) > 0 {
		s.ReferenceSize = ds.Contigs[0].Size
	}
	for i := range ds.Contigs {
		c := &ds.Contigs[i]
		if len(c.GiesmaBands) > 0 {
			s.HasStainingData = true
		}
		for _, iv := range c.HitClusters {
			s.MaxHitMagnitude = max(s.MaxHitMagnitude, iv.Count)
		}
		for _, iv := range c.NrphHitClusters {
			s.MaxNrphHitMagnitude = max(s.MaxNrphHitMagnitude, iv.Count)
		}
	}
	return s
}

// MaxMagnitude returns the maximum used to bin mode m.
func (s Summary) MaxMagnitude(m Mode) int {
	switch m {
	case ModeNrph:
		return s.MaxNrphHitMagnitude
	case ModeGiesma:
		return 0
	default:
		return s.MaxHitMagnitude
	}
}
