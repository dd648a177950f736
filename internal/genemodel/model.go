package genemodel

import (
	"sort"
	"strings"

	"github.com/rnaseek/splicefeat/internal/coord"
)

// CodingRegion describes how a genomic interval relates to an
// annotated coding sequence.
type CodingRegion struct {
	TranscriptID string
	GeneID       string
	GeneName     string
	// Frame is the reading-frame offset (0, 1, or 2) at the 5' entry
	// of the coding overlap: upstream coding length modulo 3.
	Frame int
	// CDSOverlap is the coding portion of the query interval as a
	// 0-based half-open genomic interval.
	CDSOverlap coord.Interval
}

// CodingLookup locates the coding region overlapping an interval.
// ok is false when the interval lies entirely outside any annotated
// coding region, which is a legitimate outcome for non-coding exons,
// not an error.
type CodingLookup interface {
	LookupCodingRegion(iv coord.Interval) (CodingRegion, bool)
}

// GeneLookup resolves an interval to the transcripts whose exons or
// bodies overlap it.
type GeneLookup interface {
	TranscriptsAt(iv coord.Interval) []*Transcript
}

// Model indexes transcripts by chromosome for overlap queries.
// Build must be called after the last AddTranscript; the model is
// read-only and safe for concurrent use afterwards.
type Model struct {
	transcripts map[string][]*Transcript
	trees       map[string]*intervalTree
}

// NewModel creates an empty gene model.
func NewModel() *Model {
	return &Model{
		transcripts: make(map[string][]*Transcript),
		trees:       make(map[string]*intervalTree),
	}
}

// AddTranscript adds a transcript to the model.
func (m *Model) AddTranscript(t *Transcript) {
	chrom := normalizeChrom(t.Chrom)
	m.transcripts[chrom] = append(m.transcripts[chrom], t)
}

// Build constructs the per-chromosome interval indexes.
func (m *Model) Build() {
	for chrom, ts := range m.transcripts {
		m.trees[chrom] = buildIntervalTree(ts)
	}
}

// TranscriptCount returns the total number of transcripts.
func (m *Model) TranscriptCount() int {
	count := 0
	for _, ts := range m.transcripts {
		count += len(ts)
	}
	return count
}

// Chromosomes returns a sorted list of chromosomes in the model.
func (m *Model) Chromosomes() []string {
	chroms := make([]string, 0, len(m.transcripts))
	for chrom := range m.transcripts {
		chroms = append(chroms, chrom)
	}
	sort.Strings(chroms)
	return chroms
}

// TranscriptsAt returns same-strand transcripts overlapping the
// interval, ordered canonical first, then protein_coding biotype,
// then by ID for determinism.
func (m *Model) TranscriptsAt(iv coord.Interval) []*Transcript {
	tree, ok := m.trees[normalizeChrom(iv.Chrom)]
	if !ok {
		return nil
	}

	start1, end1 := iv.Start+1, iv.End // 1-based inclusive
	var result []*Transcript
	for _, t := range tree.findOverlapping(start1, end1) {
		if strandMatches(t, iv.Strand) {
			result = append(result, t)
		}
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].IsCanonical != result[j].IsCanonical {
			return result[i].IsCanonical
		}
		ci, cj := result[i].Biotype == "protein_coding", result[j].Biotype == "protein_coding"
		if ci != cj {
			return ci
		}
		return result[i].ID < result[j].ID
	})
	return result
}

// LookupCodingRegion finds the annotated coding region overlapping the
// interval. Overlap is computed against per-exon CDS segments, never
// the transcript-level CDS genomic span: an interval inside an intron
// of a coding transcript is non-coding. Transcript preference order
// follows TranscriptsAt.
func (m *Model) LookupCodingRegion(iv coord.Interval) (CodingRegion, bool) {
	start1, end1 := iv.Start+1, iv.End

	for _, t := range m.TranscriptsAt(iv) {
		oStart, oEnd, frame, ok := t.CodingOverlap(start1, end1)
		if !ok {
			continue
		}

		return CodingRegion{
			TranscriptID: t.ID,
			GeneID:       t.GeneID,
			GeneName:     t.GeneName,
			Frame:        frame,
			CDSOverlap: coord.Interval{
				Chrom:  iv.Chrom,
				Start:  oStart - 1,
				End:    oEnd,
				Strand: iv.Strand,
			},
		}, true
	}

	return CodingRegion{}, false
}

func strandMatches(t *Transcript, s coord.Strand) bool {
	if s == coord.StrandMinus {
		return !t.IsForwardStrand()
	}
	return t.IsForwardStrand()
}

// normalizeChrom removes the "chr" prefix so MISO identifiers and
// GENCODE annotation agree on chromosome naming.
func normalizeChrom(chrom string) string {
	return strings.TrimPrefix(chrom, "chr")
}
