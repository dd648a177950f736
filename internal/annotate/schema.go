package annotate

import (
	"github.com/rnaseek/splicefeat/internal/feature"
)

// Feature group names, in pipeline dependency order.
const (
	GroupStructural  = "structural"
	GroupSequence    = "sequence"
	GroupGenes       = "genes"
	GroupTranslation = "translation"
	GroupSpliceSites = "splice_sites"
	GroupProtein     = "protein"
	GroupDomains     = "domains"
)

// Groups returns every feature group name.
func Groups() []string {
	return []string{
		GroupStructural,
		GroupSequence,
		GroupGenes,
		GroupTranslation,
		GroupSpliceSites,
		GroupProtein,
		GroupDomains,
	}
}

// maxExons is the widest event shape (MXE). SE records carry
// unavailable markers for the fourth exon's columns so one schema
// covers mixed batches.
const maxExons = 4

// Schema returns the stable output column set for the enabled groups
// and configured tools. Every annotated record carries an entry
// (possibly unavailable) for each name.
func (a *Annotator) Schema() []string {
	var names []string

	if a.enabled[GroupStructural] {
		names = append(names, feature.StructuralNames(maxExons)...)
	}
	if a.enabled[GroupSequence] {
		names = append(names, feature.SequenceNames(maxExons, a.cons != nil)...)
		names = append(names, feature.IsoformNames()...)
	}
	if a.enabled[GroupGenes] && a.model != nil {
		names = append(names, feature.GeneNames()...)
	}
	if a.enabled[GroupTranslation] && a.model != nil {
		names = appendSuffixed(names,
			feature.FeatReadingFrame, feature.FeatTranslation, feature.FeatCAI)
	}
	if a.enabled[GroupSpliceSites] {
		if a.tools.MaxEnt5 != nil {
			names = appendSuffixed(names, feature.FeatSpliceSite5pScore)
		}
		if a.tools.MaxEnt3 != nil {
			names = appendSuffixed(names, feature.FeatSpliceSite3pScore)
		}
	}
	if a.enabled[GroupProtein] {
		if a.tools.COILS != nil {
			names = appendSuffixed(names, feature.FeatCoiledCoilRegions)
		}
		if a.tools.TMHMM != nil {
			names = appendSuffixed(names, feature.FeatTransmembraneRegions)
		}
		if a.tools.DISOPRED != nil {
			names = appendSuffixed(names, feature.FeatDisorderedRegions)
		}
	}
	if a.enabled[GroupDomains] && a.tools.HMMScan != nil {
		names = appendSuffixed(names, feature.FeatPfamDomains)
		if a.pfam2go != nil {
			names = appendSuffixed(names, feature.FeatPfamGOTerms)
		}
	}

	return names
}

// appendSuffixed appends each name twice: bare for the first
// alternative exon and with the MXE second-exon suffix.
func appendSuffixed(names []string, add ...string) []string {
	for _, name := range add {
		names = append(names, name, name+feature.SuffixB)
	}
	return names
}
