// Package genemodel provides GTF-derived gene and transcript models and
// the coding-region lookup used by reading-frame computation.
//
// Coordinates in this package are GTF-native: 1-based, inclusive on
// both ends. The lookup port converts from the 0-based half-open
// intervals used by the rest of the system at its boundary.
package genemodel

// Transcript represents a specific gene isoform.
type Transcript struct {
	ID          string // Transcript ID (e.g., ENST00000311936)
	GeneID      string // Parent gene ID
	GeneName    string // Parent gene symbol
	Chrom       string // Chromosome
	Start       int64  // Transcript start (1-based)
	End         int64  // Transcript end (1-based, inclusive)
	Strand      int8   // +1 or -1
	Biotype     string // Transcript biotype
	IsCanonical bool   // Ensembl canonical flag
	Exons       []Exon // Exons in ascending genomic order
	CDSStart    int64  // CDS start (genomic, 1-based), 0 if non-coding
	CDSEnd      int64  // CDS end (genomic, 1-based), 0 if non-coding
}

// Exon represents a single exon within a transcript.
type Exon struct {
	Number   int   // Exon number (1-based, transcription order)
	Start    int64 // Genomic start (1-based)
	End      int64 // Genomic end (1-based, inclusive)
	CDSStart int64 // CDS portion start, 0 if entirely non-coding
	CDSEnd   int64 // CDS portion end, 0 if entirely non-coding
	Frame    int   // Reading frame at CDS entry (0, 1, or 2), -1 if non-coding
}

// IsProteinCoding returns true if the transcript has a coding sequence.
func (t *Transcript) IsProteinCoding() bool {
	return t.CDSStart > 0 && t.CDSEnd > 0
}

// IsForwardStrand returns true if the transcript is on the forward strand.
func (t *Transcript) IsForwardStrand() bool {
	return t.Strand == 1
}

// CodingOverlap intersects the 1-based inclusive range [start, end]
// with the transcript's per-exon CDS segments and returns the 5'-most
// overlapping segment in transcription order, clipped to the range,
// with the reading frame at its 5' entry. ok is false when no exon's
// coding portion overlaps; a range inside an intron of the CDS span is
// non-coding even though it falls between CDSStart and CDSEnd.
func (t *Transcript) CodingOverlap(start, end int64) (oStart, oEnd int64, frame int, ok bool) {
	if !t.IsProteinCoding() {
		return 0, 0, 0, false
	}
	if t.Strand == 1 {
		for i := range t.Exons {
			e := &t.Exons[i]
			if !e.IsCoding() || e.CDSStart > end || e.CDSEnd < start {
				continue
			}
			oStart = max(e.CDSStart, start)
			oEnd = min(e.CDSEnd, end)
			return oStart, oEnd, int((int64(e.Frame) + oStart - e.CDSStart) % 3), true
		}
	} else {
		for i := len(t.Exons) - 1; i >= 0; i-- {
			e := &t.Exons[i]
			if !e.IsCoding() || e.CDSStart > end || e.CDSEnd < start {
				continue
			}
			oStart = max(e.CDSStart, start)
			oEnd = min(e.CDSEnd, end)
			return oStart, oEnd, int((int64(e.Frame) + e.CDSEnd - oEnd) % 3), true
		}
	}
	return 0, 0, 0, false
}

// IsCoding returns true if the exon contains coding sequence.
func (e *Exon) IsCoding() bool {
	return e.CDSStart > 0 && e.CDSEnd > 0
}
