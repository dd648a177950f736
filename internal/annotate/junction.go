package annotate

import (
	"context"

	"github.com/rnaseek/splicefeat/internal/coord"
	"github.com/rnaseek/splicefeat/internal/feature"
	"github.com/rnaseek/splicefeat/internal/predictor"
)

// MaxEntScan window sizes around an exon boundary. The donor 9-mer is
// the last 3 exonic bases plus the first 6 intronic; the acceptor
// 23-mer is the last 20 intronic bases plus the first 3 exonic.
const (
	donorExonic    = 3
	donorIntronic  = 6
	acceptorExonic = 3
	acceptorIntron = 20
)

// donorWindow returns the genomic interval of the donor-site 9-mer at
// the exon's 3' boundary. The interval carries the exon's strand, so a
// fetch yields the 5'->3' k-mer on either strand.
func donorWindow(exon coord.Interval) coord.Interval {
	if exon.Strand == coord.StrandPlus {
		return coord.Interval{
			Chrom:  exon.Chrom,
			Start:  exon.End - donorExonic,
			End:    exon.End + donorIntronic,
			Strand: exon.Strand,
		}
	}
	return coord.Interval{
		Chrom:  exon.Chrom,
		Start:  exon.Start - donorIntronic,
		End:    exon.Start + donorExonic,
		Strand: exon.Strand,
	}
}

// acceptorWindow returns the genomic interval of the acceptor-site
// 23-mer at the exon's 5' boundary.
func acceptorWindow(exon coord.Interval) coord.Interval {
	if exon.Strand == coord.StrandPlus {
		return coord.Interval{
			Chrom:  exon.Chrom,
			Start:  exon.Start - acceptorIntron,
			End:    exon.Start + acceptorExonic,
			Strand: exon.Strand,
		}
	}
	return coord.Interval{
		Chrom:  exon.Chrom,
		Start:  exon.End - acceptorExonic,
		End:    exon.End + acceptorIntron,
		Strand: exon.Strand,
	}
}

// spliceSites scores the alternative exon's donor and acceptor sites
// with MaxEntScan. A genome access failure marks the score
// unavailable; tool outcomes map per the predictor result status.
func (a *Annotator) spliceSites(ctx context.Context, alt coord.Interval, rec *feature.Record, suffix string) {
	a.scoreSite(ctx, a.tools.MaxEnt5, donorWindow(alt), rec, feature.FeatSpliceSite5pScore+suffix)
	a.scoreSite(ctx, a.tools.MaxEnt3, acceptorWindow(alt), rec, feature.FeatSpliceSite3pScore+suffix)
}

func (a *Annotator) scoreSite(ctx context.Context, tool predictor.Tool, window coord.Interval, rec *feature.Record, name string) {
	if tool == nil {
		return
	}
	if window.Start < 0 {
		rec.Set(name, feature.Unavailable())
		return
	}
	seq, err := a.genome.Fetch(ctx, window)
	if err != nil {
		rec.Set(name, feature.Unavailable())
		return
	}

	res := a.runner.Run(ctx, tool, seq, nil)
	rec.Set(name, resultValue(res, func(v any) feature.Value {
		score, ok := v.(float64)
		if !ok {
			return feature.Failed("unexpected score type")
		}
		return feature.Num(score)
	}))
}

// resultValue maps a predictor result onto a feature value, formatting
// the parsed value only on success.
func resultValue(res predictor.Result, format func(any) feature.Value) feature.Value {
	switch res.Status {
	case predictor.StatusUnavailable:
		return feature.Unavailable()
	case predictor.StatusFailed:
		return feature.Failed(res.Reason)
	}
	return format(res.Value)
}
