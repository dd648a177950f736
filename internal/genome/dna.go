package genome

import "strings"

// Complement returns the complement of a single base.
func Complement(base byte) byte {
	switch base {
	case 'A':
		return 'T'
	case 'T':
		return 'A'
	case 'G':
		return 'C'
	case 'C':
		return 'G'
	case 'a':
		return 't'
	case 't':
		return 'a'
	case 'g':
		return 'c'
	case 'c':
		return 'g'
	default:
		return 'N'
	}
}

// ReverseComplement returns the reverse complement of a DNA sequence.
func ReverseComplement(seq string) string {
	n := len(seq)
	result := make([]byte, n)
	for i := 0; i < n; i++ {
		result[i] = Complement(seq[n-1-i])
	}
	return string(result)
}

// GCContent returns the fraction of G and C bases, in [0, 1].
// ok is false for an empty sequence: GC content is defined only for
// length > 0 and an absent value must never be reported as zero.
func GCContent(seq string) (float64, bool) {
	if len(seq) == 0 {
		return 0, false
	}
	gc := strings.Count(seq, "G") + strings.Count(seq, "C") +
		strings.Count(seq, "g") + strings.Count(seq, "c")
	return float64(gc) / float64(len(seq)), true
}
