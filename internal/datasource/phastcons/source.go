package phastcons

import (
	"context"

	"github.com/rnaseek/splicefeat/internal/coord"
)

// Source wraps a phastCons Store as a feature.ConservationSource.
type Source struct {
	store *Store
}

// NewSource creates a conservation source backed by the given Store.
func NewSource(store *Store) *Source {
	return &Source{store: store}
}

func (s *Source) Name() string { return "phastcons" }

// MeanScore returns the mean conservation of the interval. Chromosome
// naming follows UCSC convention; bare names get a "chr" prefix so
// Ensembl-style events still hit UCSC-named score tracks.
func (s *Source) MeanScore(ctx context.Context, iv coord.Interval) (float64, bool, error) {
	chrom := iv.Chrom
	if len(chrom) > 0 && chrom[0] != 'c' {
		chrom = "chr" + chrom
	}
	return s.store.MeanScore(ctx, chrom, iv.Start, iv.End)
}

// Store returns the underlying phastCons store.
func (s *Source) Store() *Store {
	return s.store
}
