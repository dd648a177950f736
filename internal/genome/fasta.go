package genome

import (
	"bufio"
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rnaseek/splicefeat/internal/coord"
)

// FASTAProvider serves genome sequence from a multi-record FASTA file
// loaded into memory. Record IDs are chromosome names (text after the
// first whitespace in a header is ignored).
type FASTAProvider struct {
	name      string
	sequences map[string]string // chromosome -> uppercase sequence
}

// NewFASTAProvider loads a genome FASTA file (plain or gzipped) and
// returns a provider named after the genome, e.g. "hg19".
func NewFASTAProvider(name, path string) (*FASTAProvider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open genome FASTA: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	p := &FASTAProvider{name: name, sequences: make(map[string]string)}
	if err := p.parseFASTA(reader); err != nil {
		return nil, err
	}
	return p, nil
}

// NewFASTAProviderFrom loads FASTA records from an io.Reader.
// Used by tests and by callers with pre-opened inputs.
func NewFASTAProviderFrom(name string, r io.Reader) (*FASTAProvider, error) {
	p := &FASTAProvider{name: name, sequences: make(map[string]string)}
	if err := p.parseFASTA(r); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *FASTAProvider) parseFASTA(reader io.Reader) error {
	scanner := bufio.NewScanner(reader)
	// Increase buffer size for long sequence lines
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)

	var currentID string
	var currentSeq strings.Builder

	flush := func() {
		if currentID != "" && currentSeq.Len() > 0 {
			p.sequences[currentID] = strings.ToUpper(currentSeq.String())
		}
	}

	for scanner.Scan() {
		line := scanner.Text()

		if strings.HasPrefix(line, ">") {
			flush()
			header := strings.TrimPrefix(line, ">")
			if idx := strings.IndexAny(header, " \t"); idx != -1 {
				header = header[:idx]
			}
			currentID = header
			currentSeq.Reset()
		} else {
			currentSeq.WriteString(strings.TrimSpace(line))
		}
	}
	flush()

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan genome FASTA: %w", err)
	}
	return nil
}

// Name returns the genome name.
func (p *FASTAProvider) Name() string {
	return p.name
}

// Chromosomes returns the number of loaded chromosomes.
func (p *FASTAProvider) Chromosomes() int {
	return len(p.sequences)
}

// HasChromosome reports whether the genome contains the chromosome.
func (p *FASTAProvider) HasChromosome(chrom string) bool {
	_, ok := p.sequences[chrom]
	return ok
}

// Fetch returns the 5'->3' sequence of the interval.
func (p *FASTAProvider) Fetch(_ context.Context, iv coord.Interval) (string, error) {
	seq, ok := p.sequences[iv.Chrom]
	if !ok {
		return "", fmt.Errorf("%w: chromosome %q not in genome %s", ErrUnavailable, iv.Chrom, p.name)
	}
	if iv.Start < 0 || iv.End > int64(len(seq)) || iv.Start >= iv.End {
		return "", fmt.Errorf("%w: %s (chromosome length %d)", ErrOutOfBounds, iv, len(seq))
	}

	s := seq[iv.Start:iv.End]
	if iv.Strand == coord.StrandMinus {
		s = ReverseComplement(s)
	}
	return s, nil
}
