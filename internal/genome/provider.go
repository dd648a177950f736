// Package genome provides read-only access to genome sequence by interval.
//
// This package is the sole seam where strand-aware sequence reasoning
// happens: providers return sequence already reverse-complemented for
// minus-strand intervals, so downstream feature modules always operate
// on 5'->3' biological sequence.
package genome

import (
	"context"
	"errors"

	"github.com/rnaseek/splicefeat/internal/coord"
)

// Access errors. Callers match with errors.Is; sequence-dependent
// features surface either one as an unavailable value, never a crash.
var (
	// ErrUnavailable means the genome (or the requested chromosome)
	// is not present in the provider.
	ErrUnavailable = errors.New("genome unavailable")
	// ErrOutOfBounds means the interval extends past the chromosome end.
	ErrOutOfBounds = errors.New("interval out of bounds")
)

// SequenceProvider fetches genome sequence by interval.
type SequenceProvider interface {
	// Name returns the genome name, e.g. "hg19" or "mm10".
	Name() string

	// Fetch returns the uppercase sequence of the interval, 5'->3':
	// reverse-complemented when the interval is on the minus strand.
	Fetch(ctx context.Context, iv coord.Interval) (string, error)
}
