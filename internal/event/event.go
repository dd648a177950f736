// Package event provides the splice-event model and MISO identifier parsing.
package event

import (
	"strings"

	"github.com/rnaseek/splicefeat/internal/coord"
)

// Type identifies the splice-event topology.
type Type string

const (
	// TypeSE is a skipped-exon event: two flanks plus one alternative exon.
	TypeSE Type = "SE"
	// TypeMXE is a mutually-exclusive-exon event: two flanks plus two
	// alternative exons of which exactly one is included per transcript.
	TypeMXE Type = "MXE"
)

// SpliceEvent is an immutable alternative-splicing event. Exons are
// held in 5'->3' transcription order: ascending genomic coordinates on
// the + strand, descending on the - strand. All exons share one
// chromosome and strand and are pairwise non-overlapping.
type SpliceEvent struct {
	Type  Type
	Exons []coord.Interval
}

// ID re-serializes the event to its MISO identifier form,
// "chrom:start:end:strand" tokens joined by "@". Parsing the result
// yields an identical event.
func (e *SpliceEvent) ID() string {
	tokens := make([]string, len(e.Exons))
	for i, iv := range e.Exons {
		tokens[i] = iv.String()
	}
	return strings.Join(tokens, "@")
}

// Chrom returns the shared chromosome.
func (e *SpliceEvent) Chrom() string {
	return e.Exons[0].Chrom
}

// Strand returns the shared strand.
func (e *SpliceEvent) Strand() coord.Strand {
	return e.Exons[0].Strand
}

// UpstreamFlank returns the 5' constitutive exon.
func (e *SpliceEvent) UpstreamFlank() coord.Interval {
	return e.Exons[0]
}

// DownstreamFlank returns the 3' constitutive exon.
func (e *SpliceEvent) DownstreamFlank() coord.Interval {
	return e.Exons[len(e.Exons)-1]
}

// AlternativeExons returns the inner exon(s): one for SE, two for MXE.
func (e *SpliceEvent) AlternativeExons() []coord.Interval {
	return e.Exons[1 : len(e.Exons)-1]
}

// Introns returns the gaps between transcription-adjacent exons, in
// 5'->3' order. Each intron is an ascending-coordinate genomic
// interval; introns are derived, never stored.
func (e *SpliceEvent) Introns() []coord.Interval {
	introns := make([]coord.Interval, 0, len(e.Exons)-1)
	for i := 0; i+1 < len(e.Exons); i++ {
		gap, ok := coord.Gap(e.Exons[i], e.Exons[i+1])
		if !ok {
			continue // cannot happen for a parsed event
		}
		introns = append(introns, gap)
	}
	return introns
}

// Isoform returns the exons of isoform n (1 or 2) in 5'->3' order.
//
// SE:  isoform 1 skips the alternative exon, isoform 2 includes it.
// MXE: isoform 1 includes the first alternative exon, isoform 2 the
// second.
func (e *SpliceEvent) Isoform(n int) []coord.Interval {
	switch e.Type {
	case TypeSE:
		if n == 1 {
			return []coord.Interval{e.Exons[0], e.Exons[2]}
		}
		return []coord.Interval{e.Exons[0], e.Exons[1], e.Exons[2]}
	case TypeMXE:
		if n == 1 {
			return []coord.Interval{e.Exons[0], e.Exons[1], e.Exons[3]}
		}
		return []coord.Interval{e.Exons[0], e.Exons[2], e.Exons[3]}
	}
	return nil
}
