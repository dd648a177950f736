package feature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueStatuses(t *testing.T) {
	n := Num(0)
	assert.True(t, n.IsOK())
	f, ok := n.Float()
	require.True(t, ok)
	assert.Equal(t, 0.0, f)
	assert.Equal(t, "0", n.Format())

	s := Str("MKV")
	assert.True(t, s.IsOK())
	txt, ok := s.Text()
	require.True(t, ok)
	assert.Equal(t, "MKV", txt)

	u := Unavailable()
	assert.False(t, u.IsOK())
	_, ok = u.Float()
	assert.False(t, ok)
	assert.Equal(t, "NA", u.Format())

	fail := Failed("tool timed out")
	assert.False(t, fail.IsOK())
	assert.Equal(t, "FAIL", fail.Format())
	assert.Equal(t, "tool timed out", fail.Reason)
}

func TestZeroIsNotUnavailable(t *testing.T) {
	rec := NewRecord("ev1")
	rec.Set("score", Num(0))

	v, ok := rec.Get("score")
	require.True(t, ok)
	assert.True(t, v.IsOK())
	assert.NotEqual(t, "NA", v.Format())
}

func TestRecordFillMissing(t *testing.T) {
	rec := NewRecord("ev1")
	rec.Set("a", Num(1))

	rec.FillMissing([]string{"a", "b", "c"})

	assert.Equal(t, 3, rec.Len())
	a, _ := rec.Get("a")
	assert.True(t, a.IsOK())
	b, ok := rec.Get("b")
	require.True(t, ok)
	assert.Equal(t, StatusUnavailable, b.Status)
}

func TestRecordNamesSorted(t *testing.T) {
	rec := NewRecord("ev1")
	rec.Set("z", Num(1))
	rec.Set("a", Num(2))
	rec.Set("m", Num(3))

	assert.Equal(t, []string{"a", "m", "z"}, rec.Names())
}

func TestFeatureNameBuilders(t *testing.T) {
	assert.Equal(t, "exon_1_length", ExonLengthName(1))
	assert.Equal(t, "intron_2_length", IntronLengthName(2))
	assert.Equal(t, "exon_3_gc", ExonGCName(3))
	assert.Equal(t, "exon_2_seq", ExonSeqName(2))
	assert.Equal(t, "exon_1_conservation", ExonConservationName(1))
}
