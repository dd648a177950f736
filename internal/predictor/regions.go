package predictor

import (
	"fmt"
	"sort"
	"strings"
)

// Region is a half-open residue range [Start, End) within the input
// sequence, 0-based.
type Region struct {
	Start int
	End   int
}

// String formats the region as "start-end".
func (r Region) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// FormatRegions joins regions as "s1-e1,s2-e2" in ascending order.
func FormatRegions(regions []Region) string {
	sorted := make([]Region, len(regions))
	copy(sorted, regions)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	parts := make([]string, len(sorted))
	for i, r := range sorted {
		parts[i] = r.String()
	}
	return strings.Join(parts, ",")
}

// MaskRegions replaces the residues covered by regions with 'X' so a
// downstream tool ignores them. Out-of-range regions are clipped.
func MaskRegions(seq string, regions []Region) string {
	if len(regions) == 0 {
		return seq
	}
	b := []byte(seq)
	for _, r := range regions {
		start, end := r.Start, r.End
		if start < 0 {
			start = 0
		}
		if end > len(b) {
			end = len(b)
		}
		for i := start; i < end; i++ {
			b[i] = 'X'
		}
	}
	return string(b)
}
