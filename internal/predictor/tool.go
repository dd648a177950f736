// Package predictor wraps external sequence-analysis tools behind a
// single adapter contract with caching, coalescing, timeouts, and
// failure isolation. Tool binaries are black boxes; adapters only know
// how to invoke them and parse their output.
package predictor

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// InputType is the sequence alphabet a tool accepts.
type InputType int

const (
	// InputNucleotide tools take DNA sequence.
	InputNucleotide InputType = iota
	// InputProtein tools take amino-acid sequence.
	InputProtein
)

// ErrNotInstalled marks a tool whose binary cannot be found. The
// runner maps it to an unavailable result, distinct from a failure.
var ErrNotInstalled = errors.New("tool not installed")

// Params are tool invocation parameters. They participate in the
// result cache key, so encoding must be canonical.
type Params map[string]string

// Encode renders params as "k=v;k=v" with keys sorted.
func (p Params) Encode() string {
	if len(p) == 0 {
		return ""
	}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(';')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(p[k])
	}
	return b.String()
}

// Status reports the outcome of one tool invocation.
type Status int

const (
	// StatusOK means the tool ran and its output parsed.
	StatusOK Status = iota
	// StatusUnavailable means the tool was not attempted (not
	// installed or not licensed).
	StatusUnavailable
	// StatusFailed means the invocation or parse failed.
	StatusFailed
)

// Result is the outcome of invoking one tool on one sequence.
type Result struct {
	Tool   string
	Status Status
	Value  any    // adapter-specific parsed value, set only for StatusOK
	Reason string // failure reason, set only for StatusFailed
}

// Tool is the adapter contract every external predictor conforms to.
// Invoke runs the tool and returns its raw output; Parse is a pure
// function from raw output to the adapter's structured value.
type Tool interface {
	Name() string
	Input() InputType
	Invoke(ctx context.Context, seq string, params Params) (string, error)
	Parse(raw string) (any, error)
}
