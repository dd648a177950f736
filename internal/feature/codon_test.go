package feature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslateCodon(t *testing.T) {
	assert.Equal(t, byte('M'), TranslateCodon("ATG"))
	assert.Equal(t, byte('M'), TranslateCodon("atg"))
	assert.Equal(t, byte('K'), TranslateCodon("AAA"))
	assert.Equal(t, byte('*'), TranslateCodon("TAA"))
	assert.Equal(t, byte('X'), TranslateCodon("ANA"))
}

func TestIsStopCodon(t *testing.T) {
	assert.True(t, IsStopCodon("TAA"))
	assert.True(t, IsStopCodon("TAG"))
	assert.True(t, IsStopCodon("TGA"))
	assert.False(t, IsStopCodon("TGG"))
}

func TestTranslateToStop(t *testing.T) {
	tests := []struct {
		name string
		seq  string
		want string
	}{
		{"stops at first stop", "ATGAAATAAGGG", "MK"},
		{"no stop", "ATGAAAGGG", "MKG"},
		{"trailing partial codon ignored", "ATGAAAGG", "MK"},
		{"empty", "", ""},
		{"stop at start", "TAAATG", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TranslateToStop(tt.seq))
		})
	}
}

func TestCodonsToStop(t *testing.T) {
	assert.Equal(t, []string{"ATG", "AAA"}, CodonsToStop("ATGAAATAAGGG"))
	assert.Empty(t, CodonsToStop("TAA"))
}

func TestUsageTableCAI(t *testing.T) {
	// Lysine: AAA twice as frequent as AAG, so w(AAA)=1, w(AAG)=0.5.
	table := NewUsageTable(map[string]float64{
		"AAA": 20.0,
		"AAG": 10.0,
		"ATG": 22.0,
	})

	cai, ok := table.CAI("AAA")
	require.True(t, ok)
	assert.InDelta(t, 1.0, cai, 1e-9)

	cai, ok = table.CAI("AAG")
	require.True(t, ok)
	assert.InDelta(t, 0.5, cai, 1e-9)

	// Geometric mean of 1.0 and 0.5.
	cai, ok = table.CAI("AAAAAG")
	require.True(t, ok)
	assert.InDelta(t, math.Sqrt(0.5), cai, 1e-9)
}

func TestCAIStopsAtStopCodon(t *testing.T) {
	table := NewUsageTable(map[string]float64{
		"AAA": 20.0,
		"AAG": 10.0,
	})

	withStop, ok := table.CAI("AAATAAAAG")
	require.True(t, ok)
	without, ok2 := table.CAI("AAA")
	require.True(t, ok2)
	assert.Equal(t, without, withStop)
}

func TestCAINoCodons(t *testing.T) {
	table := NewUsageTable(map[string]float64{"AAA": 20.0})

	_, ok := table.CAI("")
	assert.False(t, ok)
	_, ok = table.CAI("TA")
	assert.False(t, ok)
}
