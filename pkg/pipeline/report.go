package pipeline

import (
	"github.com/karyoview/karyoview/pkg/karyotype"
)

// Report describes a dataset and the legends each mode would use. It is the
// body of the JSON format and of the server's /summary endpoint.
type Report struct {
	Summary karyotype.Summary `json:"summary"`
	Modes   []ModeReport      `json:"modes"`
	Contigs []ContigReport    `json:"contigs"`
}

// ModeReport is the legend of one requested mode.
type ModeReport struct {
	Requested    karyotype.Mode `json:"requested"`
	Effective    karyotype.Mode `json:"effective"`
	MaxMagnitude int            `json:"max_magnitude"`
	Legend       []LegendRow    `json:"legend,omitempty"`
}

type LegendRow struct {
	Color string `json:"color"`
	Label string `json:"label"`
}

// ContigReport counts the clusters and bands of one contig.
type ContigReport struct {
	Name         string `json:"name"`
	Size         int    `json:"size"`
	HitClusters  int    `json:"hit_clusters"`
	NrphClusters int    `json:"nrph_hit_clusters"`
	Bands        int    `json:"giesma_bands"`
	MaxCount     int    `json:"max_count"`
}

// NewReport computes the report for ds under opts, which must already have
// render defaults applied.
func NewReport(ds *karyotype.Dataset, opts Options) Report {
	s := karyotype.Summarize(ds)
	rep := Report{Summary: s}
	for _, m := range opts.Modes {
		eff := effectiveMode(ds, m)
		mr := ModeReport{Requested: m, Effective: eff, MaxMagnitude: s.MaxMagnitude(eff)}
		if eff != karyotype.ModeGiesma {
			for _, b := range karyotype.ComputeLegend(mr.MaxMagnitude, opts.Colors).Buckets {
				mr.Legend = append(mr.Legend, LegendRow{Color: b.Color, Label: b.Label})
			}
		}
		rep.Modes = append(rep.Modes, mr)
	}
	for _, c := range ds.Contigs {
		cr := ContigReport{
			Name:         c.Name,
			Size:         c.Size,
			HitClusters:  len(c.HitClusters),
			NrphClusters: len(c.NrphHitClusters),
			Bands:        len(c.GiesmaBands),
		}
		for _, iv := range c.HitClusters {
			cr.MaxCount = max(cr.MaxCount, iv.Count)
		}
		rep.Contigs = append(rep.Contigs, cr)
	}
	return rep
}
