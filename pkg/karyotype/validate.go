package karyotype

import (
	"cmp"
	"slices"

	"github.com/karyoview/karyoview/pkg/errors"
)

// Validate rejects datasets the renderer cannot draw meaningfully: no
// contigs, unnamed contigs, non-positive sizes, inverted intervals and
// negative counts. Overlapping intervals are not checked.
func Validate(ds *Dataset) error {
	if ds == nil || len(ds.Contigs) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "dataset has no contigs")
	}
	for i := range ds.Contigs {
		if err := validateContig(&ds.Contigs[i]); err != nil {
			return err
		}
	}
	if rc := ds.RemainingGenomeContig; rc != nil && rc.Size < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "remaining genome contig has negative size %d", rc.Size)
	}
	return nil
}

func validateContig(c *Contig) error {
	if err := errors.ValidateContigName(c.Name); err != nil {
		return err
	}
	if c.Size <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "contig %s: size must be positive, got %d", c.Name, c.Size)
	}
	for _, list := range [][]Interval{c.HitClusters, c.NrphHitClusters} {
		for _, iv := range list {
			if iv.Start < 0 || iv.Start > iv.End {
				return errors.New(errors.ErrCodeInvalidInput, "contig %s: invalid interval %d-%d", c.Name, iv.Start, iv.End)
			}
			if iv.Count < 0 {
				return errors.New(errors.ErrCodeInvalidInput, "contig %s: negative count %d at %d-%d", c.Name, iv.Count, iv.Start, iv.End)
			}
		}
	}
	for _, b := range c.GiesmaBands {
		if b.Start < 0 || b.Start > b.End {
			return errors.New(errors.ErrCodeInvalidInput, "contig %s: invalid band %d-%d", c.Name, b.Start, b.End)
		}
	}
	return nil
}

// SortedBySize reports whether contigs are ordered largest first.
func SortedBySize(ds *Dataset) bool {
	return slices.IsSortedFunc(ds.Contigs, bySizeDesc)
}

// withSortedContigs returns ds when it is already ordered, otherwise a
// shallow copy whose contig slice is stably sorted by size, largest first.
// The caller's slice is never reordered.
func withSortedContigs(ds *Dataset) (*Dataset, bool) {
	if SortedBySize(ds) {
		return ds, false
	}
	cp := *ds
	cp.Contigs = slices.Clone(ds.Contigs)
	slices.SortStableFunc(cp.Contigs, bySizeDesc)
	return &cp, true
}

func bySizeDesc(a, b Contig) int {
	return cmp.Compare(b.Size, a.Size)
}
