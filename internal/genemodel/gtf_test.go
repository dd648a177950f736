package genemodel

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rnaseek/splicefeat/internal/coord"
)

// Two transcripts: one forward, one reverse, each with three exons and
// a CDS spanning part of the first and last exon.
const testGTF = `#!genome-build test
chr1	TEST	transcript	101	600	.	+	.	gene_id "ENSG0001.1"; transcript_id "ENST0001.2"; gene_name "FWD1"; gene_type "protein_coding"; transcript_type "protein_coding"; tag "Ensembl_canonical";
chr1	TEST	exon	101	200	.	+	.	gene_id "ENSG0001.1"; transcript_id "ENST0001.2"; exon_number 1;
chr1	TEST	exon	301	400	.	+	.	gene_id "ENSG0001.1"; transcript_id "ENST0001.2"; exon_number 2;
chr1	TEST	exon	501	600	.	+	.	gene_id "ENSG0001.1"; transcript_id "ENST0001.2"; exon_number 3;
chr1	TEST	CDS	151	200	.	+	0	gene_id "ENSG0001.1"; transcript_id "ENST0001.2";
chr1	TEST	CDS	301	400	.	+	1	gene_id "ENSG0001.1"; transcript_id "ENST0001.2";
chr1	TEST	CDS	501	550	.	+	2	gene_id "ENSG0001.1"; transcript_id "ENST0001.2";
chr2	TEST	transcript	101	600	.	-	.	gene_id "ENSG0002.1"; transcript_id "ENST0002.1"; gene_name "REV1"; gene_type "protein_coding"; transcript_type "protein_coding";
chr2	TEST	exon	501	600	.	-	.	gene_id "ENSG0002.1"; transcript_id "ENST0002.1"; exon_number 1;
chr2	TEST	exon	301	400	.	-	.	gene_id "ENSG0002.1"; transcript_id "ENST0002.1"; exon_number 2;
chr2	TEST	exon	101	200	.	-	.	gene_id "ENSG0002.1"; transcript_id "ENST0002.1"; exon_number 3;
chr2	TEST	CDS	501	550	.	-	0	gene_id "ENSG0002.1"; transcript_id "ENST0002.1";
chr2	TEST	CDS	301	400	.	-	1	gene_id "ENSG0002.1"; transcript_id "ENST0002.1";
chr2	TEST	CDS	151	200	.	-	2	gene_id "ENSG0002.1"; transcript_id "ENST0002.1";
`

func loadTestModel(t *testing.T) *Model {
	t.Helper()
	m := NewModel()
	err := NewGTFLoader("").LoadFrom(m, strings.NewReader(testGTF))
	require.NoError(t, err)
	return m
}

func TestGTFLoad(t *testing.T) {
	m := loadTestModel(t)
	assert.Equal(t, 2, m.TranscriptCount())
	assert.Equal(t, []string{"1", "2"}, m.Chromosomes())
}

func TestGTFFrames(t *testing.T) {
	m := loadTestModel(t)

	fwd := m.TranscriptsAt(coord.Interval{Chrom: "chr1", Start: 100, End: 600, Strand: coord.StrandPlus})
	require.Len(t, fwd, 1)
	tr := fwd[0]

	assert.Equal(t, "ENST0001", tr.ID, "version suffix stripped")
	assert.Equal(t, "ENSG0001", tr.GeneID)
	assert.True(t, tr.IsCanonical)
	assert.True(t, tr.IsProteinCoding())
	assert.Equal(t, int64(151), tr.CDSStart)
	assert.Equal(t, int64(550), tr.CDSEnd)

	require.Len(t, tr.Exons, 3)
	// Forward strand: 50 coding bases in exon 1, so exon 2 enters at 50%3=2.
	assert.Equal(t, 0, tr.Exons[0].Frame)
	assert.Equal(t, 2, tr.Exons[1].Frame)
	assert.Equal(t, 0, tr.Exons[2].Frame) // 150 % 3

	rev := m.TranscriptsAt(coord.Interval{Chrom: "chr2", Start: 100, End: 600, Strand: coord.StrandMinus})
	require.Len(t, rev, 1)
	tr = rev[0]

	require.Len(t, tr.Exons, 3)
	// Exons stored in ascending genomic order; frames counted 3'->5'
	// genomically for the reverse strand.
	assert.Equal(t, 0, tr.Exons[2].Frame) // genomically last = transcription first
	assert.Equal(t, 2, tr.Exons[1].Frame)
	assert.Equal(t, 0, tr.Exons[0].Frame)
}

func TestLookupCodingRegionForward(t *testing.T) {
	m := loadTestModel(t)

	// The middle exon of the forward transcript.
	iv := coord.Interval{Chrom: "chr1", Start: 300, End: 400, Strand: coord.StrandPlus}
	cr, ok := m.LookupCodingRegion(iv)
	require.True(t, ok)

	assert.Equal(t, "ENST0001", cr.TranscriptID)
	assert.Equal(t, "FWD1", cr.GeneName)
	assert.Equal(t, 2, cr.Frame)
	assert.Equal(t, int64(300), cr.CDSOverlap.Start)
	assert.Equal(t, int64(400), cr.CDSOverlap.End)
}

func TestLookupCodingRegionReverse(t *testing.T) {
	m := loadTestModel(t)

	iv := coord.Interval{Chrom: "chr2", Start: 300, End: 400, Strand: coord.StrandMinus}
	cr, ok := m.LookupCodingRegion(iv)
	require.True(t, ok)

	assert.Equal(t, "ENST0002", cr.TranscriptID)
	assert.Equal(t, 2, cr.Frame, "50 coding bases lie 5' of the middle exon on the - strand")
	assert.Equal(t, int64(300), cr.CDSOverlap.Start)
	assert.Equal(t, int64(400), cr.CDSOverlap.End)
}

func TestLookupCodingRegionPartialOverlap(t *testing.T) {
	m := loadTestModel(t)

	// First exon: only its 3' half (151-200) is coding.
	iv := coord.Interval{Chrom: "chr1", Start: 100, End: 200, Strand: coord.StrandPlus}
	cr, ok := m.LookupCodingRegion(iv)
	require.True(t, ok)

	assert.Equal(t, 0, cr.Frame)
	assert.Equal(t, int64(150), cr.CDSOverlap.Start)
	assert.Equal(t, int64(200), cr.CDSOverlap.End)
}

func TestLookupCodingRegionIntronic(t *testing.T) {
	m := loadTestModel(t)

	// Between exons 2 and 3 of the forward transcript: inside the
	// CDS genomic span [151, 550] but not inside any coding exon.
	_, ok := m.LookupCodingRegion(coord.Interval{Chrom: "chr1", Start: 410, End: 450, Strand: coord.StrandPlus})
	assert.False(t, ok, "intronic intervals are non-coding")

	_, ok = m.LookupCodingRegion(coord.Interval{Chrom: "chr1", Start: 200, End: 300, Strand: coord.StrandPlus})
	assert.False(t, ok)

	// Same on the reverse transcript.
	_, ok = m.LookupCodingRegion(coord.Interval{Chrom: "chr2", Start: 410, End: 450, Strand: coord.StrandMinus})
	assert.False(t, ok)
}

func TestLookupCodingRegionClippedToExon(t *testing.T) {
	m := loadTestModel(t)

	// Overlaps the 3' half of exon 2 and runs into the intron: the
	// overlap is clipped to the exon's CDS and the frame advances by
	// the 50 coding bases skipped inside the exon.
	iv := coord.Interval{Chrom: "chr1", Start: 350, End: 450, Strand: coord.StrandPlus}
	cr, ok := m.LookupCodingRegion(iv)
	require.True(t, ok)

	assert.Equal(t, int64(350), cr.CDSOverlap.Start)
	assert.Equal(t, int64(400), cr.CDSOverlap.End)
	assert.Equal(t, 1, cr.Frame, "(2 + 50) mod 3")
}

func TestLookupCodingRegionNonCoding(t *testing.T) {
	m := loadTestModel(t)

	// An interval on the right chromosome but past the gene.
	_, ok := m.LookupCodingRegion(coord.Interval{Chrom: "chr1", Start: 10000, End: 10100, Strand: coord.StrandPlus})
	assert.False(t, ok)

	// Wrong strand never matches.
	_, ok = m.LookupCodingRegion(coord.Interval{Chrom: "chr1", Start: 300, End: 400, Strand: coord.StrandMinus})
	assert.False(t, ok)

	// Unknown chromosome.
	_, ok = m.LookupCodingRegion(coord.Interval{Chrom: "chr9", Start: 300, End: 400, Strand: coord.StrandPlus})
	assert.False(t, ok)
}

func TestTranscriptsAtNormalizesChromPrefix(t *testing.T) {
	m := loadTestModel(t)

	with := m.TranscriptsAt(coord.Interval{Chrom: "chr1", Start: 300, End: 400, Strand: coord.StrandPlus})
	without := m.TranscriptsAt(coord.Interval{Chrom: "1", Start: 300, End: 400, Strand: coord.StrandPlus})
	assert.Equal(t, with, without)
}

func TestTranscriptsAtPrefersProteinCoding(t *testing.T) {
	m := NewModel()
	m.AddTranscript(&Transcript{ID: "ENST0002", Chrom: "chr3", Start: 100, End: 200, Strand: 1, Biotype: "retained_intron"})
	m.AddTranscript(&Transcript{ID: "ENST0003", Chrom: "chr3", Start: 100, End: 200, Strand: 1, Biotype: "protein_coding"})
	m.Build()

	got := m.TranscriptsAt(coord.Interval{Chrom: "chr3", Start: 120, End: 150, Strand: coord.StrandPlus})
	require.Len(t, got, 2)
	assert.Equal(t, "ENST0003", got[0].ID, "protein_coding biotype sorts first")
}

func TestCodingOverlap(t *testing.T) {
	m := loadTestModel(t)
	fwd := m.TranscriptsAt(coord.Interval{Chrom: "chr1", Start: 100, End: 600, Strand: coord.StrandPlus})[0]
	rev := m.TranscriptsAt(coord.Interval{Chrom: "chr2", Start: 100, End: 600, Strand: coord.StrandMinus})[0]

	tests := []struct {
		name       string
		tr         *Transcript
		start, end int64
		wantStart  int64
		wantEnd    int64
		wantFrame  int
		wantOK     bool
	}{
		{"at CDS start", fwd, 151, 200, 151, 200, 0, true},
		{"inside first coding exon", fwd, 161, 170, 161, 170, 1, true},
		{"second exon entry", fwd, 301, 400, 301, 400, 2, true},
		{"inside second exon", fwd, 311, 320, 311, 320, 0, true},
		{"third exon entry", fwd, 501, 550, 501, 550, 0, true},
		{"first intron", fwd, 201, 300, 0, 0, 0, false},
		{"second intron", fwd, 411, 450, 0, 0, 0, false},
		{"before CDS", fwd, 101, 150, 0, 0, 0, false},
		{"reverse inside exon", rev, 301, 390, 301, 390, 0, true},
		{"reverse exon entry", rev, 301, 400, 301, 400, 2, true},
		{"reverse intron", rev, 411, 450, 0, 0, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oStart, oEnd, frame, ok := tt.tr.CodingOverlap(tt.start, tt.end)
			require.Equal(t, tt.wantOK, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.wantStart, oStart)
			assert.Equal(t, tt.wantEnd, oEnd)
			assert.Equal(t, tt.wantFrame, frame)
		})
	}
}
