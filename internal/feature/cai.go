package feature

import (
	"bufio"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
)

// UsageTable holds relative codon adaptiveness weights derived from a
// per-genome reference codon-usage table: w(codon) = usage(codon) /
// max usage among its synonymous codons.
type UsageTable struct {
	weights map[string]float64
}

// LoadUsageTable loads a reference codon-usage file. Each line is
// "CODON<tab>frequency"; blank lines and '#' comments are skipped.
// Frequencies may be counts or per-thousand values: only ratios within
// a synonymous group matter.
func LoadUsageTable(path string) (*UsageTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open codon usage table: %w", err)
	}
	defer f.Close()

	usage := make(map[string]float64)
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("codon usage table line %d: want codon and frequency", lineNum)
		}
		codon := strings.ToUpper(fields[0])
		if _, known := codonTable[codon]; !known {
			return nil, fmt.Errorf("codon usage table line %d: unknown codon %q", lineNum, fields[0])
		}
		freq, err := strconv.ParseFloat(fields[1], 64)
		if err != nil || freq < 0 {
			return nil, fmt.Errorf("codon usage table line %d: bad frequency %q", lineNum, fields[1])
		}
		usage[codon] = freq
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read codon usage table: %w", err)
	}
	if len(usage) == 0 {
		return nil, fmt.Errorf("codon usage table is empty")
	}

	return NewUsageTable(usage), nil
}

// NewUsageTable builds adaptiveness weights from raw usage frequencies.
func NewUsageTable(usage map[string]float64) *UsageTable {
	// Max usage per amino acid across its synonymous codons.
	maxByAA := make(map[byte]float64)
	for codon, freq := range usage {
		aa := codonTable[codon]
		if freq > maxByAA[aa] {
			maxByAA[aa] = freq
		}
	}

	weights := make(map[string]float64, len(usage))
	for codon, freq := range usage {
		aa := codonTable[codon]
		if m := maxByAA[aa]; m > 0 {
			weights[codon] = freq / m
		}
	}
	return &UsageTable{weights: weights}
}

// CAI computes the codon adaptation index of a coding sequence: the
// geometric mean of the adaptiveness weights of its codons, in (0, 1].
// Stop codons and codons missing from the table are excluded; ok is
// false when no scorable codon remains.
func (u *UsageTable) CAI(seq string) (float64, bool) {
	var logSum float64
	n := 0
	for _, codon := range CodonsToStop(seq) {
		w, ok := u.weights[codon]
		if !ok || w <= 0 {
			continue
		}
		logSum += math.Log(w)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return math.Exp(logSum / float64(n)), true
}
