package predictor

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// TMHMM predicts transmembrane helices. The adapter runs tmhmm in
// short (one line per sequence) mode and reads the helix spans out of
// the Topology field, e.g. "Topology=o10-32i44-66o".
type TMHMM struct {
	binary string
}

// NewTMHMM creates a TMHMM adapter; binary defaults to "tmhmm".
func NewTMHMM(binary string) *TMHMM {
	if binary == "" {
		binary = "tmhmm"
	}
	return &TMHMM{binary: binary}
}

func (t *TMHMM) Name() string     { return "tmhmm" }
func (t *TMHMM) Input() InputType { return InputProtein }

func (t *TMHMM) Invoke(ctx context.Context, seq string, _ Params) (string, error) {
	in, err := writeTempFASTA("tmhmm", seq)
	if err != nil {
		return "", err
	}
	defer os.Remove(in)
	return runCommand(ctx, t.binary, []string{"--short", in}, "", "")
}

// Parse extracts helix spans from the short-format Topology field.
// Spans are 1-based inclusive in tmhmm output.
func (t *TMHMM) Parse(raw string) (any, error) {
	var regions []Region
	for _, line := range strings.Split(raw, "\n") {
		for _, field := range strings.Fields(line) {
			if !strings.HasPrefix(field, "Topology=") {
				continue
			}
			topo := strings.TrimPrefix(field, "Topology=")
			spans, err := parseTopology(topo)
			if err != nil {
				return nil, err
			}
			regions = append(regions, spans...)
		}
	}
	return regions, nil
}

// parseTopology walks a topology string like "o10-32i44-66o",
// collecting each "start-end" helix span.
func parseTopology(topo string) ([]Region, error) {
	var regions []Region
	i := 0
	for i < len(topo) {
		if topo[i] == 'i' || topo[i] == 'o' {
			i++
			continue
		}
		j := i
		for j < len(topo) && topo[j] != 'i' && topo[j] != 'o' {
			j++
		}
		span := topo[i:j]
		dash := strings.IndexByte(span, '-')
		if dash < 0 {
			return nil, fmt.Errorf("tmhmm: bad topology span %q", span)
		}
		start, err1 := strconv.Atoi(span[:dash])
		end, err2 := strconv.Atoi(span[dash+1:])
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("tmhmm: bad topology span %q", span)
		}
		regions = append(regions, Region{Start: start - 1, End: end})
		i = j
	}
	return regions, nil
}
