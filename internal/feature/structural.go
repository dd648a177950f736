package feature

import (
	"github.com/rnaseek/splicefeat/internal/event"
)

// Structural computes the length features of an event: per-exon
// lengths, per-intron gap lengths, and the constitutive flank lengths.
// Purely arithmetic over already-validated intervals; it has no
// failure modes and is deterministic.
func Structural(ev *event.SpliceEvent, rec *Record) {
	for i, exon := range ev.Exons {
		rec.Set(ExonLengthName(i+1), Num(float64(exon.Length())))
	}
	for i, intron := range ev.Introns() {
		rec.Set(IntronLengthName(i+1), Num(float64(intron.Length())))
	}
	rec.Set(FeatFlankUpstreamLength, Num(float64(ev.UpstreamFlank().Length())))
	rec.Set(FeatFlankDownstreamLength, Num(float64(ev.DownstreamFlank().Length())))
}

// StructuralNames returns the structural feature schema for an event
// with n exons.
func StructuralNames(n int) []string {
	names := make([]string, 0, 2*n+1)
	for i := 1; i <= n; i++ {
		names = append(names, ExonLengthName(i))
	}
	for i := 1; i < n; i++ {
		names = append(names, IntronLengthName(i))
	}
	names = append(names, FeatFlankUpstreamLength, FeatFlankDownstreamLength)
	return names
}
