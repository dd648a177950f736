package feature

import (
	"testing"

	"github.com/rnaseek/splicefeat/internal/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, id string) *event.SpliceEvent {
	t.Helper()
	ev, err := event.Parse(id)
	require.NoError(t, err)
	return ev
}

func getNum(t *testing.T, rec *Record, name string) float64 {
	t.Helper()
	v, ok := rec.Get(name)
	require.True(t, ok, "feature %s missing", name)
	f, ok := v.Float()
	require.True(t, ok, "feature %s not numeric", name)
	return f
}

func TestStructuralSE(t *testing.T) {
	ev := mustParse(t, "chr1:100:200:+@chr1:300:400:+@chr1:500:600:+")
	rec := NewRecord(ev.ID())

	Structural(ev, rec)

	assert.Equal(t, 100.0, getNum(t, rec, "exon_1_length"))
	assert.Equal(t, 100.0, getNum(t, rec, "exon_2_length"))
	assert.Equal(t, 100.0, getNum(t, rec, "exon_3_length"))
	assert.Equal(t, 100.0, getNum(t, rec, "intron_1_length"))
	assert.Equal(t, 100.0, getNum(t, rec, "intron_2_length"))
	assert.Equal(t, 100.0, getNum(t, rec, FeatFlankUpstreamLength))
	assert.Equal(t, 100.0, getNum(t, rec, FeatFlankDownstreamLength))
}

func TestStructuralMinusStrand(t *testing.T) {
	ev := mustParse(t, "chr2:500:650:-@chr2:300:400:-@chr2:100:150:-")
	rec := NewRecord(ev.ID())

	Structural(ev, rec)

	// Exon indices follow 5'->3' order, so exon 1 is the upstream
	// flank at the highest genomic coordinates.
	assert.Equal(t, 150.0, getNum(t, rec, "exon_1_length"))
	assert.Equal(t, 100.0, getNum(t, rec, "exon_2_length"))
	assert.Equal(t, 50.0, getNum(t, rec, "exon_3_length"))
	assert.Equal(t, 100.0, getNum(t, rec, "intron_1_length"))
	assert.Equal(t, 150.0, getNum(t, rec, "intron_2_length"))
	assert.Equal(t, 150.0, getNum(t, rec, FeatFlankUpstreamLength))
	assert.Equal(t, 50.0, getNum(t, rec, FeatFlankDownstreamLength))
}

func TestStructuralDeterministic(t *testing.T) {
	ev := mustParse(t, "chr1:100:200:+@chr1:300:400:+@chr1:500:600:+")

	a := NewRecord(ev.ID())
	b := NewRecord(ev.ID())
	Structural(ev, a)
	Structural(ev, b)

	require.Equal(t, a.Names(), b.Names())
	for _, name := range a.Names() {
		va, _ := a.Get(name)
		vb, _ := b.Get(name)
		assert.Equal(t, va, vb, name)
	}
}

func TestStructuralNamesSchema(t *testing.T) {
	names := StructuralNames(3)
	assert.Equal(t, []string{
		"exon_1_length", "exon_2_length", "exon_3_length",
		"intron_1_length", "intron_2_length",
		FeatFlankUpstreamLength, FeatFlankDownstreamLength,
	}, names)
}
