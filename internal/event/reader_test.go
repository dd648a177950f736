package event

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReaderSkipsCommentsAndBlanks(t *testing.T) {
	input := `# skipped exon events
chr1:100:200:+@chr1:300:400:+@chr1:500:600:+

chr2:700:800:-@chr2:500:600:-@chr2:300:400:-@chr2:100:200:-
`
	r := NewReaderFrom(strings.NewReader(input))
	defer r.Close()

	id, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "chr1:100:200:+@chr1:300:400:+@chr1:500:600:+", id)

	id, err = r.Next()
	require.NoError(t, err)
	assert.Equal(t, "chr2:700:800:-@chr2:500:600:-@chr2:300:400:-@chr2:100:200:-", id)
	assert.Equal(t, 4, r.LineNumber())

	id, err = r.Next()
	require.NoError(t, err)
	assert.Empty(t, id, "end of input returns empty id")
}

func TestReaderNoTrailingNewline(t *testing.T) {
	r := NewReaderFrom(strings.NewReader("chr1:1:2:+@chr1:3:4:+@chr1:5:6:+"))
	defer r.Close()

	id, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "chr1:1:2:+@chr1:3:4:+@chr1:5:6:+", id)

	id, err = r.Next()
	require.NoError(t, err)
	assert.Empty(t, id)
}

func TestReaderEmptyInput(t *testing.T) {
	r := NewReaderFrom(strings.NewReader(""))
	defer r.Close()

	id, err := r.Next()
	require.NoError(t, err)
	assert.Empty(t, id)
}
