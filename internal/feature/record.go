// Package feature provides the per-event feature record and the
// structural, sequence, and frame/translation feature modules.
package feature

import (
	"fmt"
	"sort"
	"strconv"
)

// Status reports whether a feature value was computed.
type Status int

const (
	// StatusOK means the value was computed.
	StatusOK Status = iota
	// StatusUnavailable means the feature was not computed: missing
	// input, no annotation coverage, or a tool that is not installed.
	// Distinct from a computed value of zero.
	StatusUnavailable
	// StatusFailed means computation was attempted and failed.
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnavailable:
		return "unavailable"
	case StatusFailed:
		return "failed"
	}
	return "unknown"
}

// Value is a single feature value: a number, a string, or an explicit
// unavailable/failed marker. Absence of a value and a computed zero
// are never conflated.
type Value struct {
	Status Status
	Reason string // failure reason, set only for StatusFailed

	num   float64
	str   string
	isNum bool
}

// Num returns a computed numeric value.
func Num(v float64) Value {
	return Value{Status: StatusOK, num: v, isNum: true}
}

// Str returns a computed string value.
func Str(s string) Value {
	return Value{Status: StatusOK, str: s}
}

// Unavailable returns a not-computed marker.
func Unavailable() Value {
	return Value{Status: StatusUnavailable}
}

// Failed returns a computation-failure marker.
func Failed(reason string) Value {
	return Value{Status: StatusFailed, Reason: reason}
}

// IsOK reports whether the value was computed.
func (v Value) IsOK() bool {
	return v.Status == StatusOK
}

// Float returns the numeric value; ok is false for string, unavailable,
// or failed values.
func (v Value) Float() (float64, bool) {
	if v.Status != StatusOK || !v.isNum {
		return 0, false
	}
	return v.num, true
}

// Text returns the string value; ok is false for numeric, unavailable,
// or failed values.
func (v Value) Text() (string, bool) {
	if v.Status != StatusOK || v.isNum {
		return "", false
	}
	return v.str, true
}

// Format renders the value for tabular output: numbers with minimal
// digits, "NA" for unavailable, "FAIL" for failed.
func (v Value) Format() string {
	switch v.Status {
	case StatusUnavailable:
		return "NA"
	case StatusFailed:
		return "FAIL"
	}
	if v.isNum {
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	}
	return v.str
}

// Record maps feature names to values for one event. Built
// incrementally by the feature modules and finalized by the
// aggregator; not safe for concurrent mutation (each event is
// annotated by a single worker).
type Record struct {
	EventID string
	values  map[string]Value
}

// NewRecord creates an empty record for the event.
func NewRecord(eventID string) *Record {
	return &Record{EventID: eventID, values: make(map[string]Value)}
}

// Set stores a feature value.
func (r *Record) Set(name string, v Value) {
	r.values[name] = v
}

// Get returns the value for a feature name.
func (r *Record) Get(name string) (Value, bool) {
	v, ok := r.values[name]
	return v, ok
}

// Names returns all feature names in the record, sorted.
func (r *Record) Names() []string {
	names := make([]string, 0, len(r.values))
	for name := range r.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of features in the record.
func (r *Record) Len() int {
	return len(r.values)
}

// FillMissing sets every named feature that has no entry yet to
// Unavailable, guaranteeing a stable output schema across events.
func (r *Record) FillMissing(names []string) {
	for _, name := range names {
		if _, ok := r.values[name]; !ok {
			r.values[name] = Unavailable()
		}
	}
}

// Core feature names.
const (
	FeatReadingFrame  = "reading_frame"
	FeatTranslation   = "translation"
	FeatCAI           = "cai"
	FeatGeneID        = "gene_id"
	FeatGeneName      = "gene_name"
	FeatTranscriptIDs = "transcript_ids"

	FeatFlankUpstreamLength   = "flank_upstream_length"
	FeatFlankDownstreamLength = "flank_downstream_length"

	FeatSpliceSite5pScore = "splice_site_5p_score"
	FeatSpliceSite3pScore = "splice_site_3p_score"

	FeatIsoform1Seq = "isoform_1_seq"
	FeatIsoform2Seq = "isoform_2_seq"

	FeatCoiledCoilRegions    = "coiled_coil_regions"
	FeatTransmembraneRegions = "transmembrane_regions"
	FeatDisorderedRegions    = "disordered_regions"
	FeatPfamDomains          = "pfam_domains"
	FeatPfamGOTerms          = "pfam_go_terms"
)

// SuffixB marks features of the second alternative exon of an MXE event.
const SuffixB = "_b"

// ExonLengthName returns the structural length feature name for exon i
// (1-based, 5'->3' order).
func ExonLengthName(i int) string {
	return fmt.Sprintf("exon_%d_length", i)
}

// IntronLengthName returns the length feature name for intron gap i (1-based).
func IntronLengthName(i int) string {
	return fmt.Sprintf("intron_%d_length", i)
}

// ExonGCName returns the GC-content feature name for exon i.
func ExonGCName(i int) string {
	return fmt.Sprintf("exon_%d_gc", i)
}

// ExonSeqName returns the raw-sequence feature name for exon i.
func ExonSeqName(i int) string {
	return fmt.Sprintf("exon_%d_seq", i)
}

// ExonConservationName returns the conservation feature name for exon i.
func ExonConservationName(i int) string {
	return fmt.Sprintf("exon_%d_conservation", i)
}
