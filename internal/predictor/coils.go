package predictor

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// COILS predicts coiled-coil regions with the ncoils binary. The
// protein is piped as FASTA on stdin and ncoils prints one line per
// residue ("pos aa ... probability"); residues at or above the
// probability threshold form the coiled-coil regions.
type COILS struct {
	binary    string
	threshold float64
}

// NewCOILS creates a COILS adapter. binary defaults to "ncoils", the
// region threshold to 0.5.
func NewCOILS(binary string) *COILS {
	if binary == "" {
		binary = "ncoils"
	}
	return &COILS{binary: binary, threshold: 0.5}
}

func (c *COILS) Name() string     { return "coils" }
func (c *COILS) Input() InputType { return InputProtein }

func (c *COILS) Invoke(ctx context.Context, seq string, _ Params) (string, error) {
	return runCommand(ctx, c.binary, []string{"-c"}, ">query\n"+seq+"\n", "")
}

// Parse collapses consecutive above-threshold residues into regions.
func (c *COILS) Parse(raw string) (any, error) {
	var regions []Region
	open := -1
	pos := 0
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			continue // header or separator line
		}
		prob, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil {
			return nil, fmt.Errorf("coils: bad probability in %q: %w", line, err)
		}
		pos = n - 1 // ncoils positions are 1-based
		if prob >= c.threshold {
			if open < 0 {
				open = pos
			}
		} else if open >= 0 {
			regions = append(regions, Region{Start: open, End: pos})
			open = -1
		}
	}
	if open >= 0 {
		regions = append(regions, Region{Start: open, End: pos + 1})
	}
	return regions, nil
}
