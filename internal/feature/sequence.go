package feature

import (
	"context"
	"strings"

	"github.com/rnaseek/splicefeat/internal/coord"
	"github.com/rnaseek/splicefeat/internal/event"
	"github.com/rnaseek/splicefeat/internal/genome"
)

// ConservationSource looks up the mean conservation score of an exact
// interval. ok is false when the interval has no score coverage, which
// must surface as unavailable, never as zero.
type ConservationSource interface {
	MeanScore(ctx context.Context, iv coord.Interval) (score float64, ok bool, err error)
}

// Sequence computes sequence-derived features for every exon: the raw
// 5'->3' sequence, GC content, and (when a source is configured)
// conservation. Genome access failures mark the affected exon's
// features unavailable instead of aborting the event.
func Sequence(ctx context.Context, ev *event.SpliceEvent, provider genome.SequenceProvider, cons ConservationSource, rec *Record) {
	for i, exon := range ev.Exons {
		seqName := ExonSeqName(i + 1)
		gcName := ExonGCName(i + 1)

		seq, err := provider.Fetch(ctx, exon)
		if err != nil {
			rec.Set(seqName, Unavailable())
			rec.Set(gcName, Unavailable())
		} else {
			rec.Set(seqName, Str(seq))
			if gc, ok := genome.GCContent(seq); ok {
				rec.Set(gcName, Num(gc))
			} else {
				rec.Set(gcName, Unavailable())
			}
		}

		if cons == nil {
			continue
		}
		consName := ExonConservationName(i + 1)
		score, ok, err := cons.MeanScore(ctx, exon)
		switch {
		case err != nil:
			rec.Set(consName, Failed(err.Error()))
		case !ok:
			rec.Set(consName, Unavailable())
		default:
			rec.Set(consName, Num(score))
		}
	}
}

// IsoformSequences records the concatenated mRNA sequence of each
// isoform, exons joined in 5'->3' order. Any exon fetch failure makes
// that isoform's sequence unavailable.
func IsoformSequences(ctx context.Context, ev *event.SpliceEvent, provider genome.SequenceProvider, rec *Record) {
	for n, name := range map[int]string{1: FeatIsoform1Seq, 2: FeatIsoform2Seq} {
		var b strings.Builder
		ok := true
		for _, exon := range ev.Isoform(n) {
			seq, err := provider.Fetch(ctx, exon)
			if err != nil {
				ok = false
				break
			}
			b.WriteString(seq)
		}
		if ok {
			rec.Set(name, Str(b.String()))
		} else {
			rec.Set(name, Unavailable())
		}
	}
}

// SequenceNames returns the sequence feature schema for an event with
// n exons. Conservation names are included only when withConservation
// is set.
func SequenceNames(n int, withConservation bool) []string {
	var names []string
	for i := 1; i <= n; i++ {
		names = append(names, ExonSeqName(i), ExonGCName(i))
		if withConservation {
			names = append(names, ExonConservationName(i))
		}
	}
	return names
}

// IsoformNames returns the isoform sequence schema.
func IsoformNames() []string {
	return []string{FeatIsoform1Seq, FeatIsoform2Seq}
}
