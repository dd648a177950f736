package predictor

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Domain is one Pfam domain hit from hmmscan.
type Domain struct {
	Name      string
	Accession string // version-stripped, e.g. PF00046
	EValue    float64
}

// HMMScan finds Pfam domains in a protein with hmmscan against a
// Pfam-A HMM database.
type HMMScan struct {
	binary string
	db     string
}

// NewHMMScan creates an hmmscan adapter for the given Pfam database
// path; binary defaults to "hmmscan".
func NewHMMScan(binary, db string) *HMMScan {
	if binary == "" {
		binary = "hmmscan"
	}
	return &HMMScan{binary: binary, db: db}
}

func (h *HMMScan) Name() string     { return "hmmscan" }
func (h *HMMScan) Input() InputType { return InputProtein }

func (h *HMMScan) Invoke(ctx context.Context, seq string, _ Params) (string, error) {
	in, err := writeTempFASTA("hmmscan", seq)
	if err != nil {
		return "", err
	}
	defer os.Remove(in)

	out, err := os.CreateTemp("", "hmmscan-out-*.tbl")
	if err != nil {
		return "", fmt.Errorf("create temp output: %w", err)
	}
	out.Close()
	defer os.Remove(out.Name())

	if _, err := runCommand(ctx, h.binary, []string{"--noali", "--tblout", out.Name(), h.db, in}, "", ""); err != nil {
		return "", err
	}
	tbl, err := os.ReadFile(out.Name())
	if err != nil {
		return "", err
	}
	return string(tbl), nil
}

// Parse reads hmmscan --tblout format: whitespace-separated columns
// with target name, accession, query, and E-value; '#' lines are
// comments.
func (h *HMMScan) Parse(raw string) (any, error) {
	var domains []Domain
	for _, line := range strings.Split(raw, "\n") {
		if line == "" || line[0] == '#' {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 5 {
			continue
		}
		evalue, err := strconv.ParseFloat(fields[4], 64)
		if err != nil {
			return nil, fmt.Errorf("hmmscan: bad E-value in %q: %w", line, err)
		}
		domains = append(domains, Domain{
			Name:      fields[0],
			Accession: stripAccessionVersion(fields[1]),
			EValue:    evalue,
		})
	}
	return domains, nil
}

func stripAccessionVersion(acc string) string {
	if i := strings.IndexByte(acc, '.'); i >= 0 {
		return acc[:i]
	}
	return acc
}

// Pfam2GO maps Pfam accessions to GO term IDs, loaded from the GO
// consortium's pfam2go mapping file.
type Pfam2GO map[string][]string

// LoadPfam2GO reads a pfam2go mapping file. Lines look like:
//
//	Pfam:PF00046 Homeodomain > GO:DNA binding ; GO:0003677
//
// '!' lines are comments.
func LoadPfam2GO(path string) (Pfam2GO, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pfam2go: %w", err)
	}
	defer f.Close()

	mapping := make(Pfam2GO)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || line[0] == '!' {
			continue
		}
		if !strings.HasPrefix(line, "Pfam:") {
			continue
		}
		rest := strings.TrimPrefix(line, "Pfam:")
		space := strings.IndexByte(rest, ' ')
		if space < 0 {
			continue
		}
		acc := rest[:space]
		semi := strings.LastIndex(line, "; ")
		if semi < 0 {
			continue
		}
		goID := strings.TrimSpace(line[semi+2:])
		if !strings.HasPrefix(goID, "GO:") {
			continue
		}
		mapping[acc] = append(mapping[acc], goID)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read pfam2go: %w", err)
	}
	return mapping, nil
}

// Terms returns the GO IDs for a set of domains, deduplicated, in
// first-seen order.
func (m Pfam2GO) Terms(domains []Domain) []string {
	seen := make(map[string]bool)
	var terms []string
	for _, d := range domains {
		for _, id := range m[d.Accession] {
			if !seen[id] {
				seen[id] = true
				terms = append(terms, id)
			}
		}
	}
	return terms
}
