package feature

import "strings"

// Standard genetic code: DNA codon to amino acid (single letter).
var codonTable = map[string]byte{
	"TTT": 'F', "TTC": 'F', "TTA": 'L', "TTG": 'L',
	"TCT": 'S', "TCC": 'S', "TCA": 'S', "TCG": 'S',
	"TAT": 'Y', "TAC": 'Y', "TAA": '*', "TAG": '*',
	"TGT": 'C', "TGC": 'C', "TGA": '*', "TGG": 'W',

	"CTT": 'L', "CTC": 'L', "CTA": 'L', "CTG": 'L',
	"CCT": 'P', "CCC": 'P', "CCA": 'P', "CCG": 'P',
	"CAT": 'H', "CAC": 'H', "CAA": 'Q', "CAG": 'Q',
	"CGT": 'R', "CGC": 'R', "CGA": 'R', "CGG": 'R',

	"ATT": 'I', "ATC": 'I', "ATA": 'I', "ATG": 'M',
	"ACT": 'T', "ACC": 'T', "ACA": 'T', "ACG": 'T',
	"AAT": 'N', "AAC": 'N', "AAA": 'K', "AAG": 'K',
	"AGT": 'S', "AGC": 'S', "AGA": 'R', "AGG": 'R',

	"GTT": 'V', "GTC": 'V', "GTA": 'V', "GTG": 'V',
	"GCT": 'A', "GCC": 'A', "GCA": 'A', "GCG": 'A',
	"GAT": 'D', "GAC": 'D', "GAA": 'E', "GAG": 'E',
	"GGT": 'G', "GGC": 'G', "GGA": 'G', "GGG": 'G',
}

// TranslateCodon translates a DNA codon to its amino acid.
// Returns 'X' for unknown codons and '*' for stop codons.
func TranslateCodon(codon string) byte {
	if len(codon) != 3 {
		return 'X'
	}
	if aa, ok := codonTable[strings.ToUpper(codon)]; ok {
		return aa
	}
	return 'X'
}

// IsStopCodon returns true if the codon is a stop codon (TAA, TAG, TGA).
func IsStopCodon(codon string) bool {
	return TranslateCodon(codon) == '*'
}

// TranslateToStop translates a DNA sequence, stopping at the first
// in-frame stop codon or at the end of the sequence. The trailing
// partial codon, if any, is dropped. The stop itself is not included
// in the protein.
func TranslateToStop(seq string) string {
	var result strings.Builder
	result.Grow(len(seq) / 3)

	for i := 0; i+3 <= len(seq); i += 3 {
		aa := TranslateCodon(seq[i : i+3])
		if aa == '*' {
			break
		}
		result.WriteByte(aa)
	}

	return result.String()
}

// CodonsToStop returns the in-frame codons of a sequence up to (not
// including) the first stop codon. Used for codon-usage statistics
// over the same span that TranslateToStop covers.
func CodonsToStop(seq string) []string {
	var codons []string
	for i := 0; i+3 <= len(seq); i += 3 {
		codon := strings.ToUpper(seq[i : i+3])
		if IsStopCodon(codon) {
			break
		}
		codons = append(codons, codon)
	}
	return codons
}
