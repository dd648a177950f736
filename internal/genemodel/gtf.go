package genemodel

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
)

// GTFLoader loads transcript models from GENCODE-style GTF files.
type GTFLoader struct {
	path string
}

// NewGTFLoader creates a new GTF loader.
func NewGTFLoader(path string) *GTFLoader {
	return &GTFLoader{path: path}
}

// Load loads all transcripts from the GTF file into the model.
func (l *GTFLoader) Load(m *Model) error {
	f, err := os.Open(l.path)
	if err != nil {
		return fmt.Errorf("open GTF file: %w", err)
	}
	defer f.Close()

	var reader io.Reader = f
	if strings.HasSuffix(l.path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return fmt.Errorf("open gzip reader: %w", err)
		}
		defer gz.Close()
		reader = gz
	}

	return l.LoadFrom(m, reader)
}

// LoadFrom parses GTF content from a reader into the model.
func (l *GTFLoader) LoadFrom(m *Model, reader io.Reader) error {
	transcripts, err := parseGTF(reader)
	if err != nil {
		return err
	}
	for _, t := range transcripts {
		m.AddTranscript(t)
	}
	m.Build()
	return nil
}

// gtfFeature represents a parsed GTF line.
type gtfFeature struct {
	chrom       string
	source      string
	featureType string
	start       int64
	end         int64
	strand      string
	attributes  map[string]string
}

// parseGTF parses GTF content and returns assembled transcripts.
func parseGTF(reader io.Reader) (map[string]*Transcript, error) {
	scanner := bufio.NewScanner(reader)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	transcripts := make(map[string]*Transcript)
	exonsByTranscript := make(map[string][]Exon)
	cdsByTranscript := make(map[string][][2]int64)

	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") || line == "" {
			continue
		}

		feat, err := parseLine(line)
		if err != nil {
			continue // skip malformed lines
		}

		transcriptID := feat.attributes["transcript_id"]
		if transcriptID == "" {
			continue
		}
		transcriptID = stripVersion(transcriptID)

		switch feat.featureType {
		case "transcript":
			transcripts[transcriptID] = &Transcript{
				ID:          transcriptID,
				GeneID:      stripVersion(feat.attributes["gene_id"]),
				GeneName:    feat.attributes["gene_name"],
				Chrom:       feat.chrom,
				Start:       feat.start,
				End:         feat.end,
				Strand:      parseStrand(feat.strand),
				Biotype:     feat.attributes["transcript_type"],
				IsCanonical: strings.Contains(feat.attributes["tag"], "Ensembl_canonical"),
			}

		case "exon":
			exonNum, _ := strconv.Atoi(feat.attributes["exon_number"])
			exonsByTranscript[transcriptID] = append(exonsByTranscript[transcriptID], Exon{
				Number: exonNum,
				Start:  feat.start,
				End:    feat.end,
				Frame:  -1, // set from CDS below
			})

		case "CDS":
			cdsByTranscript[transcriptID] = append(cdsByTranscript[transcriptID], [2]int64{feat.start, feat.end})

		case "start_codon":
			if t, ok := transcripts[transcriptID]; ok {
				if t.Strand == 1 {
					if t.CDSStart == 0 || feat.start < t.CDSStart {
						t.CDSStart = feat.start
					}
				} else {
					if feat.end > t.CDSEnd {
						t.CDSEnd = feat.end
					}
				}
			}

		case "stop_codon":
			if t, ok := transcripts[transcriptID]; ok {
				if t.Strand == 1 {
					if feat.end > t.CDSEnd {
						t.CDSEnd = feat.end
					}
				} else {
					if t.CDSStart == 0 || feat.start < t.CDSStart {
						t.CDSStart = feat.start
					}
				}
			}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan GTF: %w", err)
	}

	for id, t := range transcripts {
		exons := exonsByTranscript[id]
		if len(exons) == 0 {
			continue
		}

		sort.Slice(exons, func(i, j int) bool {
			return exons[i].Start < exons[j].Start
		})

		// CDS boundaries from CDS features when start/stop codons are absent
		if cdsRegions := cdsByTranscript[id]; len(cdsRegions) > 0 {
			minStart := cdsRegions[0][0]
			maxEnd := cdsRegions[0][1]
			for _, region := range cdsRegions[1:] {
				if region[0] < minStart {
					minStart = region[0]
				}
				if region[1] > maxEnd {
					maxEnd = region[1]
				}
			}
			if t.CDSStart == 0 {
				t.CDSStart = minStart
			}
			if t.CDSEnd == 0 {
				t.CDSEnd = maxEnd
			}
		}

		// CDS portions of exons and their entry frames
		if t.CDSStart > 0 && t.CDSEnd > 0 {
			for i := range exons {
				e := &exons[i]
				if e.End >= t.CDSStart && e.Start <= t.CDSEnd {
					e.CDSStart = max(e.Start, t.CDSStart)
					e.CDSEnd = min(e.End, t.CDSEnd)
				}
			}

			cdsPosition := int64(0)
			if t.Strand == 1 {
				for i := range exons {
					e := &exons[i]
					if e.IsCoding() {
						e.Frame = int(cdsPosition % 3)
						cdsPosition += e.CDSEnd - e.CDSStart + 1
					}
				}
			} else {
				for i := len(exons) - 1; i >= 0; i-- {
					e := &exons[i]
					if e.IsCoding() {
						e.Frame = int(cdsPosition % 3)
						cdsPosition += e.CDSEnd - e.CDSStart + 1
					}
				}
			}
		}

		t.Exons = exons
	}

	return transcripts, nil
}

// parseLine parses a single GTF line.
func parseLine(line string) (*gtfFeature, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 9 {
		return nil, fmt.Errorf("invalid GTF line: expected 9 fields, got %d", len(fields))
	}

	start, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse start: %w", err)
	}
	end, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse end: %w", err)
	}

	return &gtfFeature{
		chrom:       fields[0],
		source:      fields[1],
		featureType: fields[2],
		start:       start,
		end:         end,
		strand:      fields[6],
		attributes:  parseAttributes(fields[8]),
	}, nil
}

// parseAttributes parses the GTF attribute column.
// Format: key "value"; key "value"; ...
func parseAttributes(attrStr string) map[string]string {
	attrs := make(map[string]string)

	for _, part := range strings.Split(attrStr, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idx := strings.Index(part, " ")
		if idx == -1 {
			continue
		}

		key := part[:idx]
		value := strings.Trim(strings.TrimSpace(part[idx+1:]), "\"")

		// GTF repeats keys like "tag"; accumulate so canonical
		// detection sees all values.
		if prev, ok := attrs[key]; ok {
			attrs[key] = prev + "," + value
		} else {
			attrs[key] = value
		}
	}

	return attrs
}

// parseStrand converts strand string to int8.
func parseStrand(s string) int8 {
	if s == "-" {
		return -1
	}
	return 1
}

// stripVersion removes the version suffix from an Ensembl ID.
// e.g., "ENST00000456328.2" -> "ENST00000456328"
func stripVersion(id string) string {
	if idx := strings.LastIndex(id, "."); idx != -1 {
		return id[:idx]
	}
	return id
}
