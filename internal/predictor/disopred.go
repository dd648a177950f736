package predictor

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DISOPRED predicts intrinsically disordered regions. Its documented
// pipeline masks coiled-coil and transmembrane residues first, so the
// aggregator feeds it the COILS- then TMHMM-masked protein; the
// adapter itself only runs the binary. Output is a .diso file with one
// line per residue: "pos aa mark score", '*' marking disorder.
type DISOPRED struct {
	binary string
}

// NewDISOPRED creates a DISOPRED adapter; binary defaults to
// "run_disopred.pl".
func NewDISOPRED(binary string) *DISOPRED {
	if binary == "" {
		binary = "run_disopred.pl"
	}
	return &DISOPRED{binary: binary}
}

func (d *DISOPRED) Name() string     { return "disopred" }
func (d *DISOPRED) Input() InputType { return InputProtein }

func (d *DISOPRED) Invoke(ctx context.Context, seq string, _ Params) (string, error) {
	in, err := writeTempFASTA("disopred", seq)
	if err != nil {
		return "", err
	}
	defer os.Remove(in)

	if _, err := runCommand(ctx, d.binary, []string{in}, "", ""); err != nil {
		return "", err
	}

	// DISOPRED writes results next to the input file.
	diso := strings.TrimSuffix(in, filepath.Ext(in)) + ".diso"
	defer os.Remove(diso)
	out, err := os.ReadFile(diso)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Parse collapses consecutive '*'-marked residues into regions.
func (d *DISOPRED) Parse(raw string) (any, error) {
	var regions []Region
	open := -1
	pos := 0
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 3 {
			continue
		}
		n, err := strconv.Atoi(fields[0])
		if err != nil {
			continue // comment or header line
		}
		pos = n - 1
		if fields[2] == "*" {
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
