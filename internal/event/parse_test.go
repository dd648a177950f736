package event

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rnaseek/splicefeat/internal/coord"
)

func kindOf(t *testing.T, err error) ParseErrorKind {
	t.Helper()
	var pe *ParseError
	require.True(t, errors.As(err, &pe), "error %v is not a *ParseError", err)
	return pe.Kind
}

func TestParseSE(t *testing.T) {
	ev, err := Parse("chr1:100:200:+@chr1:300:400:+@chr1:500:600:+")
	require.NoError(t, err)

	assert.Equal(t, TypeSE, ev.Type)
	require.Len(t, ev.Exons, 3)
	assert.Equal(t, coord.Interval{Chrom: "chr1", Start: 100, End: 200, Strand: coord.StrandPlus}, ev.Exons[0])
	assert.Equal(t, coord.Interval{Chrom: "chr1", Start: 300, End: 400, Strand: coord.StrandPlus}, ev.Exons[1])
	assert.Equal(t, coord.Interval{Chrom: "chr1", Start: 500, End: 600, Strand: coord.StrandPlus}, ev.Exons[2])
	assert.Equal(t, "chr1", ev.Chrom())
	assert.Equal(t, coord.StrandPlus, ev.Strand())
}

func TestParseMXEMinusStrand(t *testing.T) {
	// - strand tokens are given in descending genomic order, which is
	// already 5'->3' transcription order.
	id := "chr2:700:800:-@chr2:500:600:-@chr2:300:400:-@chr2:100:200:-"
	ev, err := Parse(id)
	require.NoError(t, err)

	assert.Equal(t, TypeMXE, ev.Type)
	require.Len(t, ev.Exons, 4)
	assert.Equal(t, int64(700), ev.Exons[0].Start)
	assert.Equal(t, int64(100), ev.Exons[3].Start)

	alts := ev.AlternativeExons()
	require.Len(t, alts, 2)
	assert.Equal(t, int64(500), alts[0].Start)
	assert.Equal(t, int64(300), alts[1].Start)
}

func TestParseStrandOrderMismatch(t *testing.T) {
	// Reversing the - strand token order puts them in ascending genomic
	// order, which is anti-transcriptional for the - strand.
	id := "chr2:100:200:-@chr2:300:400:-@chr2:500:600:-@chr2:700:800:-"
	_, err := Parse(id)
	require.Error(t, err)
	assert.Equal(t, ErrStrandOrderMismatch, kindOf(t, err))

	// Same for + strand tokens in descending order.
	_, err = Parse("chr1:500:600:+@chr1:300:400:+@chr1:100:200:+")
	require.Error(t, err)
	assert.Equal(t, ErrStrandOrderMismatch, kindOf(t, err))
}

func TestParseUnsupportedArity(t *testing.T) {
	for _, id := range []string{
		"chr1:100:200:+@chr1:300:400:+",
		"chr1:100:200:+@chr1:300:400:+@chr1:500:600:+@chr1:700:800:+@chr1:900:1000:+",
		"chr1:100:200:+",
	} {
		_, err := Parse(id)
		require.Error(t, err, "id %q", id)
		assert.Equal(t, ErrUnsupportedArity, kindOf(t, err), "id %q", id)
	}
}

func TestParseInvalidInterval(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"inverted bounds", "chr1:200:100:+@chr1:300:400:+@chr1:500:600:+"},
		{"zero length", "chr1:100:100:+@chr1:300:400:+@chr1:500:600:+"},
		{"non-numeric start", "chr1:abc:200:+@chr1:300:400:+@chr1:500:600:+"},
		{"negative start", "chr1:-5:200:+@chr1:300:400:+@chr1:500:600:+"},
		{"bad strand", "chr1:100:200:*@chr1:300:400:*@chr1:500:600:*"},
		{"missing field", "chr1:100:200@chr1:300:400:+@chr1:500:600:+"},
		{"mixed chromosomes", "chr1:100:200:+@chr2:300:400:+@chr1:500:600:+"},
		{"mixed strands", "chr1:100:200:+@chr1:300:400:-@chr1:500:600:+"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.id)
			require.Error(t, err)
			assert.Equal(t, ErrInvalidInterval, kindOf(t, err))
		})
	}
}

func TestParseOverlappingExons(t *testing.T) {
	// Overlapping or touching exons leave no intron gap and are rejected.
	for _, id := range []string{
		"chr1:100:350:+@chr1:300:400:+@chr1:500:600:+",
		"chr1:100:300:+@chr1:300:400:+@chr1:500:600:+",
	} {
		_, err := Parse(id)
		require.Error(t, err, "id %q", id)
		assert.Equal(t, ErrStrandOrderMismatch, kindOf(t, err), "id %q", id)
	}
}

func TestRoundTrip(t *testing.T) {
	ids := []string{
		"chr1:100:200:+@chr1:300:400:+@chr1:500:600:+",
		"chr2:700:800:-@chr2:500:600:-@chr2:300:400:-@chr2:100:200:-",
		"chrX:1:10:+@chrX:20:30:+@chrX:40:50:+",
	}

	for _, id := range ids {
		ev, err := Parse(id)
		require.NoError(t, err, "id %q", id)
		assert.Equal(t, id, ev.ID())

		again, err := Parse(ev.ID())
		require.NoError(t, err)
		assert.Equal(t, ev, again)
	}
}

func TestIntrons(t *testing.T) {
	ev, err := Parse("chr1:100:200:+@chr1:300:400:+@chr1:500:600:+")
	require.NoError(t, err)

	introns := ev.Introns()
	require.Len(t, introns, 2)
	assert.Equal(t, int64(200), introns[0].Start)
	assert.Equal(t, int64(300), introns[0].End)
	assert.Equal(t, int64(400), introns[1].Start)
	assert.Equal(t, int64(500), introns[1].End)

	// Minus strand: introns still come out in ascending genomic
	// coordinates, in 5'->3' event order.
	ev, err = Parse("chr2:700:800:-@chr2:500:600:-@chr2:300:400:-@chr2:100:200:-")
	require.NoError(t, err)

	introns = ev.Introns()
	require.Len(t, introns, 3)
	assert.Equal(t, int64(600), introns[0].Start)
	assert.Equal(t, int64(700), introns[0].End)
	assert.Equal(t, int64(200), introns[2].Start)
	assert.Equal(t, int64(300), introns[2].End)
}

func TestIsoforms(t *testing.T) {
	se, err := Parse("chr1:100:200:+@chr1:300:400:+@chr1:500:600:+")
	require.NoError(t, err)

	iso1 := se.Isoform(1)
	require.Len(t, iso1, 2)
	assert.Equal(t, int64(100), iso1[0].Start)
	assert.Equal(t, int64(500), iso1[1].Start)

	iso2 := se.Isoform(2)
	require.Len(t, iso2, 3)

	mxe, err := Parse("chr1:100:200:+@chr1:300:400:+@chr1:500:600:+@chr1:700:800:+")
	require.NoError(t, err)

	iso1 = mxe.Isoform(1)
	require.Len(t, iso1, 3)
	assert.Equal(t, int64(300), iso1[1].Start, "MXE isoform 1 includes the first alternative exon")

	iso2 = mxe.Isoform(2)
	require.Len(t, iso2, 3)
	assert.Equal(t, int64(500), iso2[1].Start, "MXE isoform 2 includes the second alternative exon")
}

func TestParseIsPure(t *testing.T) {
	id := "chr1:100:200:+@chr1:300:400:+@chr1:500:600:+"
	a, err := Parse(id)
	require.NoError(t, err)
	b, err := Parse(id)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
