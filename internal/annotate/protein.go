package annotate

import (
	"context"
	"strings"

	"github.com/rnaseek/splicefeat/internal/feature"
	"github.com/rnaseek/splicefeat/internal/predictor"
)

// proteinFeatures runs the protein-level predictors on the alternative
// exon's translation. DISOPRED follows its documented pipeline order:
// COILS regions are masked out, TMHMM runs on the masked protein, its
// helices are masked too, and DISOPRED sees the doubly-masked input.
// Pfam hmmscan runs on the unmasked translation.
func (a *Annotator) proteinFeatures(ctx context.Context, rec *feature.Record, suffix string) {
	v, ok := rec.Get(feature.FeatTranslation + suffix)
	if !ok {
		return // translation group disabled
	}
	protein, txOK := v.Text()
	if !txOK || protein == "" {
		a.markProteinUnavailable(rec, suffix)
		return
	}

	if a.enabled["protein"] {
		masked := protein

		coilRegions := a.regionTool(ctx, a.tools.COILS, protein, rec, feature.FeatCoiledCoilRegions+suffix)
		masked = predictor.MaskRegions(masked, coilRegions)

		tmRegions := a.regionTool(ctx, a.tools.TMHMM, masked, rec, feature.FeatTransmembraneRegions+suffix)
		masked = predictor.MaskRegions(masked, tmRegions)

		a.regionTool(ctx, a.tools.DISOPRED, masked, rec, feature.FeatDisorderedRegions+suffix)
	}

	if a.enabled["domains"] && a.tools.HMMScan != nil {
		res := a.runner.Run(ctx, a.tools.HMMScan, protein, nil)
		rec.Set(feature.FeatPfamDomains+suffix, resultValue(res, formatDomains))
		if a.pfam2go != nil {
			rec.Set(feature.FeatPfamGOTerms+suffix, resultValue(res, a.formatGOTerms))
		}
	}
}

// regionTool runs one region-producing predictor and records its
// formatted regions. It returns the regions so callers can mask with
// them; a non-OK result yields nil, masking nothing.
func (a *Annotator) regionTool(ctx context.Context, tool predictor.Tool, protein string, rec *feature.Record, name string) []predictor.Region {
	if tool == nil {
		return nil
	}
	res := a.runner.Run(ctx, tool, protein, nil)
	rec.Set(name, resultValue(res, func(v any) feature.Value {
		regions, ok := v.([]predictor.Region)
		if !ok {
			return feature.Failed("unexpected region type")
		}
		return feature.Str(predictor.FormatRegions(regions))
	}))
	if res.Status != predictor.StatusOK {
		return nil
	}
	regions, _ := res.Value.([]predictor.Region)
	return regions
}

// markProteinUnavailable records unavailable protein features when the
// alternative exon has no translation to analyze.
func (a *Annotator) markProteinUnavailable(rec *feature.Record, suffix string) {
	if a.enabled["protein"] {
		if a.tools.COILS != nil {
			rec.Set(feature.FeatCoiledCoilRegions+suffix, feature.Unavailable())
		}
		if a.tools.TMHMM != nil {
			rec.Set(feature.FeatTransmembraneRegions+suffix, feature.Unavailable())
		}
		if a.tools.DISOPRED != nil {
			rec.Set(feature.FeatDisorderedRegions+suffix, feature.Unavailable())
		}
	}
	if a.enabled["domains"] && a.tools.HMMScan != nil {
		rec.Set(feature.FeatPfamDomains+suffix, feature.Unavailable())
		if a.pfam2go != nil {
			rec.Set(feature.FeatPfamGOTerms+suffix, feature.Unavailable())
		}
	}
}

func formatDomains(v any) feature.Value {
	domains, ok := v.([]predictor.Domain)
	if !ok {
		return feature.Failed("unexpected domain type")
	}
	names := make([]string, 0, len(domains))
	seen := make(map[string]bool)
	for _, d := range domains {
		if !seen[d.Name] {
			seen[d.Name] = true
			names = append(names, d.Name)
		}
	}
	return feature.Str(strings.Join(names, ","))
}

func (a *Annotator) formatGOTerms(v any) feature.Value {
	domains, ok := v.([]predictor.Domain)
	if !ok {
		return feature.Failed("unexpected domain type")
	}
	return feature.Str(strings.Join(a.pfam2go.Terms(domains), ","))
}
