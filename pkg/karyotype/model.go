package karyotype

// Dataset is the caller-supplied karyotype. It is never mutated.
type Dataset struct {
	// Contigs are expected sorted by Size, largest first.
	Contigs []Contig `json:"singleton_contigs"`

	// RemainingGenomeContig is reserved for an aggregate glyph of the
	// sequence not covered by Contigs. It only reserves width today.
	RemainingGenomeContig *Contig `json:"remaining_genome_contig,omitempty"`
}

// Contig is one chromosome or assembled sequence.
type Contig struct {
	Name            string     `json:"name"`
	Size            int        `json:"size"`
	HitClusters     []Interval `json:"hit_clusters"`
	NrphHitClusters []Interval `json:"nrph_hit_clusters"`
	GiesmaBands     []Band     `json:"giesma_bands,omitempty"`
}

// Interval is a hit cluster: 1-based inclusive coordinates and a hit count.
type Interval struct {
	Start, End, Count int
}

// Band is a Giesma staining band; ColorCode indexes [GiesmaPalette].
type Band struct {
	Start, End, ColorCode int
}

// Clusters returns the cluster list drawn in mode m.
func (c *Contig) Clusters(m Mode) []Interval {
	if m == ModeNrph {
		return c.NrphHitClusters
	}
	return c.HitClusters
}
