package predictor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// MaxEntScan scores splice-site strength with the MaxEntScan perl
// scripts (Yeo & Burge 2004). The 5' adapter scores donor 9-mers with
// score5.pl, the 3' adapter scores acceptor 23-mers with score3.pl.
// Both scripts load their model files relative to their own directory,
// so invocations run from ScriptDir.
type MaxEntScan struct {
	name      string
	script    string
	scriptDir string
	seqLen    int
}

// NewMaxEnt5 creates the donor-site adapter. scriptDir is the
// MaxEntScan installation directory containing score5.pl and its
// splicemodels/.
func NewMaxEnt5(scriptDir string) *MaxEntScan {
	return &MaxEntScan{name: "maxentscan_5p", script: "score5.pl", scriptDir: scriptDir, seqLen: 9}
}

// NewMaxEnt3 creates the acceptor-site adapter for score3.pl 23-mers.
func NewMaxEnt3(scriptDir string) *MaxEntScan {
	return &MaxEntScan{name: "maxentscan_3p", script: "score3.pl", scriptDir: scriptDir, seqLen: 23}
}

func (m *MaxEntScan) Name() string     { return m.name }
func (m *MaxEntScan) Input() InputType { return InputNucleotide }

// Invoke writes the k-mer to a temp file and runs the scoring script
// on it.
func (m *MaxEntScan) Invoke(ctx context.Context, seq string, _ Params) (string, error) {
	if len(seq) != m.seqLen {
		return "", fmt.Errorf("%s expects a %d-mer, got %d bases", m.name, m.seqLen, len(seq))
	}

	f, err := os.CreateTemp("", m.name+"-in-*.txt")
	if err != nil {
		return "", fmt.Errorf("create temp input: %w", err)
	}
	defer os.Remove(f.Name())
	if _, err := f.WriteString(seq + "\n"); err != nil {
		f.Close()
		return "", fmt.Errorf("write temp input: %w", err)
	}
	f.Close()

	script := m.script
	if m.scriptDir != "" {
		script = filepath.Join(m.scriptDir, m.script)
	}
	return runCommand(ctx, "perl", []string{script, f.Name()}, "", m.scriptDir)
}

// Parse extracts the score from the script's "sequence<TAB>score"
// output line.
func (m *MaxEntScan) Parse(raw string) (any, error) {
	for _, line := range strings.Split(raw, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		score, err := strconv.ParseFloat(fields[len(fields)-1], 64)
		if err != nil {
			return nil, fmt.Errorf("%s: bad score in %q: %w", m.name, line, err)
		}
		return score, nil
	}
	return nil, fmt.Errorf("%s: no score line in output", m.name)
}
