// Package coord provides genomic coordinate primitives.
//
// All intervals are 0-based, half-open [Start, End) and stored in
// absolute ascending genomic coordinates regardless of strand. Strand
// affects only the 5'->3' interpretation order, never the stored bounds.
package coord

import (
	"fmt"
	"strconv"
	"strings"
)

// Strand is the genomic strand of an interval.
type Strand byte

const (
	// StrandPlus is the forward strand.
	StrandPlus Strand = '+'
	// StrandMinus is the reverse strand.
	StrandMinus Strand = '-'
)

// ParseStrand parses a strand symbol.
func ParseStrand(s string) (Strand, error) {
	switch s {
	case "+":
		return StrandPlus, nil
	case "-":
		return StrandMinus, nil
	}
	return 0, fmt.Errorf("invalid strand %q (expected + or -)", s)
}

// String returns "+" or "-".
func (s Strand) String() string {
	return string(s)
}

// Interval is a half-open genomic interval with strand.
type Interval struct {
	Chrom  string
	Start  int64
	End    int64
	Strand Strand
}

// Length returns End - Start.
func (iv Interval) Length() int64 {
	return iv.End - iv.Start
}

// String formats the interval as "chrom:start:end:strand".
func (iv Interval) String() string {
	var b strings.Builder
	b.WriteString(iv.Chrom)
	b.WriteByte(':')
	b.WriteString(strconv.FormatInt(iv.Start, 10))
	b.WriteByte(':')
	b.WriteString(strconv.FormatInt(iv.End, 10))
	b.WriteByte(':')
	b.WriteByte(byte(iv.Strand))
	return b.String()
}

// Validate checks the interval invariants: non-negative coordinates,
// Start < End (zero-length intervals are invalid), and a known strand.
func (iv Interval) Validate() error {
	if iv.Chrom == "" {
		return fmt.Errorf("empty chromosome")
	}
	if iv.Start < 0 {
		return fmt.Errorf("negative start %d", iv.Start)
	}
	if iv.Start >= iv.End {
		return fmt.Errorf("start %d is not before end %d", iv.Start, iv.End)
	}
	if iv.Strand != StrandPlus && iv.Strand != StrandMinus {
		return fmt.Errorf("invalid strand %q", string(iv.Strand))
	}
	return nil
}

// Overlaps reports whether two intervals on the same chromosome share
// at least one base. Strand is ignored.
func (iv Interval) Overlaps(o Interval) bool {
	return iv.Chrom == o.Chrom && iv.Start < o.End && o.Start < iv.End
}

// Contains reports whether pos falls inside the interval.
func (iv Interval) Contains(pos int64) bool {
	return pos >= iv.Start && pos < iv.End
}

// Precedes reports whether iv ends strictly before o starts in genomic
// coordinates, leaving a gap of at least one base between them.
func (iv Interval) Precedes(o Interval) bool {
	return iv.Chrom == o.Chrom && iv.End < o.Start
}

// Gap returns the interval between two non-adjacent intervals in
// genomic order. The inputs may be given in either order; the result is
// always an ascending-coordinate interval carrying the strand of a.
// ok is false when the intervals overlap or touch.
func Gap(a, b Interval) (Interval, bool) {
	if a.Chrom != b.Chrom {
		return Interval{}, false
	}
	lo, hi := a, b
	if b.Start < a.Start {
		lo, hi = b, a
	}
	if lo.End >= hi.Start {
		return Interval{}, false
	}
	return Interval{Chrom: a.Chrom, Start: lo.End, End: hi.Start, Strand: a.Strand}, true
}
