package genome

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rnaseek/splicefeat/internal/coord"
)

const testFASTA = `>chr1 test chromosome
ACGTACGTAC
GTACGTACGT
>chr2
NNNNACGTNN
`

func newTestProvider(t *testing.T) *FASTAProvider {
	t.Helper()
	p, err := NewFASTAProviderFrom("testgenome", strings.NewReader(testFASTA))
	require.NoError(t, err)
	return p
}

func TestFASTAProviderLoad(t *testing.T) {
	p := newTestProvider(t)
	assert.Equal(t, "testgenome", p.Name())
	assert.Equal(t, 2, p.Chromosomes())
	assert.True(t, p.HasChromosome("chr1"))
	assert.True(t, p.HasChromosome("chr2"))
	assert.False(t, p.HasChromosome("chr3"))
}

func TestFetchPlusStrand(t *testing.T) {
	p := newTestProvider(t)

	seq, err := p.Fetch(context.Background(), coord.Interval{Chrom: "chr1", Start: 0, End: 4, Strand: coord.StrandPlus})
	require.NoError(t, err)
	assert.Equal(t, "ACGT", seq)

	// Spans the line break in the FASTA
	seq, err = p.Fetch(context.Background(), coord.Interval{Chrom: "chr1", Start: 8, End: 12, Strand: coord.StrandPlus})
	require.NoError(t, err)
	assert.Equal(t, "ACGT", seq)
}

func TestFetchMinusStrandReverseComplements(t *testing.T) {
	p := newTestProvider(t)

	seq, err := p.Fetch(context.Background(), coord.Interval{Chrom: "chr1", Start: 0, End: 4, Strand: coord.StrandMinus})
	require.NoError(t, err)
	assert.Equal(t, "ACGT", ReverseComplement("ACGT"))
	assert.Equal(t, "ACGT", seq) // ACGT is its own reverse complement

	seq, err = p.Fetch(context.Background(), coord.Interval{Chrom: "chr2", Start: 4, End: 8, Strand: coord.StrandMinus})
	require.NoError(t, err)
	assert.Equal(t, "ACGT", seq) // forward ACGT -> RC ACGT

	seq, err = p.Fetch(context.Background(), coord.Interval{Chrom: "chr2", Start: 4, End: 7, Strand: coord.StrandMinus})
	require.NoError(t, err)
	assert.Equal(t, "CGT", seq) // forward ACG -> RC CGT
}

func TestFetchErrors(t *testing.T) {
	p := newTestProvider(t)

	_, err := p.Fetch(context.Background(), coord.Interval{Chrom: "chrMissing", Start: 0, End: 4, Strand: coord.StrandPlus})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnavailable))

	_, err = p.Fetch(context.Background(), coord.Interval{Chrom: "chr1", Start: 15, End: 100, Strand: coord.StrandPlus})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestReverseComplement(t *testing.T) {
	tests := []struct {
		seq  string
		want string
	}{
		{"ATGC", "GCAT"},
		{"A", "T"},
		{"AAAA", "TTTT"},
		{"", ""},
		{"ATGN", "NCAT"},
	}
	for _, tt := range tests {
		if got := ReverseComplement(tt.seq); got != tt.want {
			t.Errorf("ReverseComplement(%q) = %q, want %q", tt.seq, got, tt.want)
		}
	}
}

func TestGCContent(t *testing.T) {
	tests := []struct {
		name   string
		seq    string
		want   float64
		wantOK bool
	}{
		{"all GC", "GCGC", 1.0, true},
		{"no GC", "ATAT", 0.0, true},
		{"half", "ACGT", 0.5, true},
		{"lowercase", "acgt", 0.5, true},
		{"empty is unavailable, not zero", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GCContent(tt.seq)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.InDelta(t, tt.want, got, 1e-9)
				assert.GreaterOrEqual(t, got, 0.0)
				assert.LessOrEqual(t, got, 1.0)
			}
		})
	}
}

// countingProvider counts Fetch calls to verify caching.
type countingProvider struct {
	inner SequenceProvider
	calls int
}

func (c *countingProvider) Name() string { return c.inner.Name() }
func (c *countingProvider) Fetch(ctx context.Context, iv coord.Interval) (string, error) {
	c.calls++
	return c.inner.Fetch(ctx, iv)
}

func TestCachedProvider(t *testing.T) {
	counting := &countingProvider{inner: newTestProvider(t)}
	p, err := NewCachedProvider(counting, 16)
	require.NoError(t, err)

	iv := coord.Interval{Chrom: "chr1", Start: 0, End: 4, Strand: coord.StrandPlus}
	for range 3 {
		seq, err := p.Fetch(context.Background(), iv)
		require.NoError(t, err)
		assert.Equal(t, "ACGT", seq)
	}
	assert.Equal(t, 1, counting.calls, "repeated fetches of the same interval hit the cache")

	// Opposite strand is a distinct cache key.
	minus := iv
	minus.Strand = coord.StrandMinus
	_, err = p.Fetch(context.Background(), minus)
	require.NoError(t, err)
	assert.Equal(t, 2, counting.calls)

	// Errors are not cached.
	bad := coord.Interval{Chrom: "nope", Start: 0, End: 4, Strand: coord.StrandPlus}
	_, err = p.Fetch(context.Background(), bad)
	require.Error(t, err)
	_, err = p.Fetch(context.Background(), bad)
	require.Error(t, err)
	assert.Equal(t, 4, counting.calls)
}
