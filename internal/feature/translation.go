package feature

import (
	"context"
	"strings"

	"github.com/rnaseek/splicefeat/internal/coord"
	"github.com/rnaseek/splicefeat/internal/event"
	"github.com/rnaseek/splicefeat/internal/genemodel"
	"github.com/rnaseek/splicefeat/internal/genome"
)

// FrameTranslation computes reading_frame, translation, and cai for
// one alternative exon, writing feature names with the given suffix
// ("" for the primary alternative exon, SuffixB for the second exon of
// an MXE event).
//
// When the exon lies entirely outside any annotated coding region all
// three features are unavailable; that is a legitimate outcome for
// non-coding alternative exons, not an error. A missing codon-usage
// table makes only cai unavailable.
func FrameTranslation(ctx context.Context, alt coord.Interval, provider genome.SequenceProvider, lookup genemodel.CodingLookup, usage *UsageTable, rec *Record, suffix string) {
	frameName := FeatReadingFrame + suffix
	translationName := FeatTranslation + suffix
	caiName := FeatCAI + suffix

	cr, ok := lookup.LookupCodingRegion(alt)
	if !ok {
		rec.Set(frameName, Unavailable())
		rec.Set(translationName, Unavailable())
		rec.Set(caiName, Unavailable())
		return
	}

	seq, err := provider.Fetch(ctx, cr.CDSOverlap)
	if err != nil {
		rec.Set(frameName, Unavailable())
		rec.Set(translationName, Unavailable())
		rec.Set(caiName, Unavailable())
		return
	}

	rec.Set(frameName, Num(float64(cr.Frame)))

	// The entry base sits at codon position Frame; skip the bases
	// completing the upstream codon so translation is in-frame.
	skip := (3 - cr.Frame) % 3
	if skip > len(seq) {
		skip = len(seq)
	}
	cds := seq[skip:]

	protein := TranslateToStop(cds)
	rec.Set(translationName, Str(protein))

	if usage == nil {
		rec.Set(caiName, Unavailable())
		return
	}
	if cai, ok := usage.CAI(cds); ok {
		rec.Set(caiName, Num(cai))
	} else {
		rec.Set(caiName, Unavailable())
	}
}

// Genes resolves the event's exons against the gene model and records
// the gene identity features: gene_id, gene_name, and the IDs of every
// overlapping same-strand transcript. Events with no annotation
// overlap get unavailable markers (miso-style unknown events).
func Genes(ev *event.SpliceEvent, lookup genemodel.GeneLookup, rec *Record) {
	seen := make(map[string]bool)
	var geneIDs, geneNames, transcriptIDs []string

	for _, exon := range ev.Exons {
		for _, t := range lookup.TranscriptsAt(exon) {
			if !seen["g:"+t.GeneID] && t.GeneID != "" {
				seen["g:"+t.GeneID] = true
				geneIDs = append(geneIDs, t.GeneID)
			}
			if !seen["n:"+t.GeneName] && t.GeneName != "" {
				seen["n:"+t.GeneName] = true
				geneNames = append(geneNames, t.GeneName)
			}
			if !seen["t:"+t.ID] {
				seen["t:"+t.ID] = true
				transcriptIDs = append(transcriptIDs, t.ID)
			}
		}
	}

	setJoined := func(name string, vals []string) {
		if len(vals) == 0 {
			rec.Set(name, Unavailable())
			return
		}
		rec.Set(name, Str(strings.Join(vals, ",")))
	}
	setJoined(FeatGeneID, geneIDs)
	setJoined(FeatGeneName, geneNames)
	setJoined(FeatTranscriptIDs, transcriptIDs)
}

// GeneNames returns the gene identity schema.
func GeneNames() []string {
	return []string{FeatGeneID, FeatGeneName, FeatTranscriptIDs}
}
