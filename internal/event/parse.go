package event

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rnaseek/splicefeat/internal/coord"
)

// ParseErrorKind classifies identifier parse failures.
type ParseErrorKind int

const (
	// ErrUnsupportedArity means the token count matched no known event type.
	ErrUnsupportedArity ParseErrorKind = iota
	// ErrInvalidInterval means a token had malformed coordinates, a
	// bad strand, or the tokens disagreed on chromosome or strand.
	ErrInvalidInterval
	// ErrStrandOrderMismatch means the tokens were not given in
	// 5'->3' transcription order for their strand. Such identifiers
	// are rejected rather than re-sorted: silently reordering could
	// mask an upstream data error.
	ErrStrandOrderMismatch
)

func (k ParseErrorKind) String() string {
	switch k {
	case ErrUnsupportedArity:
		return "unsupported arity"
	case ErrInvalidInterval:
		return "invalid interval"
	case ErrStrandOrderMismatch:
		return "strand order mismatch"
	}
	return "unknown"
}

// ParseError reports why an event identifier could not be parsed.
// It is fatal for that single identifier only; the caller decides
// whether to skip the item or abort the batch.
type ParseError struct {
	Kind ParseErrorKind
	ID   string
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse event %q: %s: %s", e.ID, e.Kind, e.Msg)
}

func parseErr(kind ParseErrorKind, id, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, ID: id, Msg: fmt.Sprintf(format, args...)}
}

// Parse converts a MISO-style event identifier into a SpliceEvent.
//
// The identifier is an "@"-joined list of "chrom:start:end:strand"
// tokens sharing one chromosome and strand. 3 tokens parse as SE,
// 4 as MXE. Tokens must already be in 5'->3' order for their strand
// (ascending genomic coordinates on +, descending on -) with a gap of
// at least one base between consecutive exons.
//
// Parse is a pure function: it knows nothing about sequence or
// external tools.
func Parse(id string) (*SpliceEvent, error) {
	tokens := strings.Split(id, "@")

	var typ Type
	switch len(tokens) {
	case 3:
		typ = TypeSE
	case 4:
		typ = TypeMXE
	default:
		return nil, parseErr(ErrUnsupportedArity, id, "%d interval tokens (want 3 for SE or 4 for MXE)", len(tokens))
	}

	exons := make([]coord.Interval, len(tokens))
	for i, tok := range tokens {
		iv, err := parseToken(tok)
		if err != nil {
			return nil, parseErr(ErrInvalidInterval, id, "token %d: %v", i+1, err)
		}
		exons[i] = iv
	}

	// All tokens share one chromosome and strand.
	for _, iv := range exons[1:] {
		if iv.Chrom != exons[0].Chrom {
			return nil, parseErr(ErrInvalidInterval, id, "mixed chromosomes %q and %q", exons[0].Chrom, iv.Chrom)
		}
		if iv.Strand != exons[0].Strand {
			return nil, parseErr(ErrInvalidInterval, id, "mixed strands")
		}
	}

	// Tokens must be in 5'->3' transcription order with intron gaps
	// between consecutive exons.
	for i := 0; i+1 < len(exons); i++ {
		cur, next := exons[i], exons[i+1]
		var ordered bool
		if exons[0].Strand == coord.StrandPlus {
			ordered = cur.Precedes(next)
		} else {
			ordered = next.Precedes(cur)
		}
		if !ordered {
			return nil, parseErr(ErrStrandOrderMismatch, id,
				"exons %d and %d are not in 5'->3' order for the %s strand", i+1, i+2, exons[0].Strand)
		}
	}

	return &SpliceEvent{Type: typ, Exons: exons}, nil
}

// parseToken parses one "chrom:start:end:strand" token.
func parseToken(tok string) (coord.Interval, error) {
	fields := strings.Split(tok, ":")
	if len(fields) != 4 {
		return coord.Interval{}, fmt.Errorf("%q: want chrom:start:end:strand", tok)
	}

	start, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil || start < 0 {
		return coord.Interval{}, fmt.Errorf("%q: start is not a non-negative integer", tok)
	}
	end, err := strconv.ParseInt(fields[2], 10, 64)
	if err != nil || end < 0 {
		return coord.Interval{}, fmt.Errorf("%q: end is not a non-negative integer", tok)
	}
	strand, err := coord.ParseStrand(fields[3])
	if err != nil {
		return coord.Interval{}, fmt.Errorf("%q: %v", tok, err)
	}

	iv := coord.Interval{Chrom: fields[0], Start: start, End: end, Strand: strand}
	if err := iv.Validate(); err != nil {
		return coord.Interval{}, fmt.Errorf("%q: %v", tok, err)
	}
	return iv, nil
}
