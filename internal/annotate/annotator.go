// Package annotate computes feature records for alternative-splicing
// events, running the feature modules in dependency order with
// per-feature failure isolation.
package annotate

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"

	"github.com/rnaseek/splicefeat/internal/event"
	"github.com/rnaseek/splicefeat/internal/feature"
	"github.com/rnaseek/splicefeat/internal/genemodel"
	"github.com/rnaseek/splicefeat/internal/genome"
	"github.com/rnaseek/splicefeat/internal/predictor"
)

// GeneModel combines the two gene-model lookups the annotator needs.
type GeneModel interface {
	genemodel.CodingLookup
	genemodel.GeneLookup
}

// Tools holds the external predictor adapters. Nil entries disable the
// corresponding features.
type Tools struct {
	MaxEnt5  predictor.Tool
	MaxEnt3  predictor.Tool
	COILS    predictor.Tool
	TMHMM    predictor.Tool
	DISOPRED predictor.Tool
	HMMScan  predictor.Tool
}

// Annotator computes a feature record per splice event.
type Annotator struct {
	genome  genome.SequenceProvider
	model   GeneModel
	runner  *predictor.Runner
	tools   Tools
	cons    feature.ConservationSource
	usage   *feature.UsageTable
	pfam2go predictor.Pfam2GO
	enabled map[string]bool
	schema  []string
	logger  *zap.Logger
}

// NewAnnotator creates an annotator. groups selects the enabled
// feature groups (see Groups); empty means all.
func NewAnnotator(g genome.SequenceProvider, model GeneModel, runner *predictor.Runner, groups []string) *Annotator {
	enabled := make(map[string]bool)
	if len(groups) == 0 {
		groups = Groups()
	}
	for _, g := range groups {
		enabled[g] = true
	}
	a := &Annotator{
		genome:  g,
		model:   model,
		runner:  runner,
		enabled: enabled,
		logger:  zap.NewNop(),
	}
	a.schema = a.Schema()
	return a
}

// SetLogger sets the logger for warning and info messages.
func (a *Annotator) SetLogger(l *zap.Logger) {
	a.logger = l
	if a.runner != nil {
		a.runner.SetLogger(l)
	}
}

// SetTools configures the external predictor adapters.
func (a *Annotator) SetTools(t Tools) {
	a.tools = t
	a.schema = a.Schema()
}

// SetConservation configures the conservation score source.
func (a *Annotator) SetConservation(c feature.ConservationSource) {
	a.cons = c
	a.schema = a.Schema()
}

// SetUsageTable configures the codon-usage table for CAI.
func (a *Annotator) SetUsageTable(u *feature.UsageTable) {
	a.usage = u
}

// SetPfam2GO configures the Pfam accession to GO term mapping.
func (a *Annotator) SetPfam2GO(m predictor.Pfam2GO) {
	a.pfam2go = m
	a.schema = a.Schema()
}

// Annotate parses an event identifier and computes its feature record.
// A parse failure returns the error; everything downstream of parsing
// resolves to a recorded per-feature status, never an error. The
// record always carries an entry for every name in the schema.
func (a *Annotator) Annotate(ctx context.Context, id string) (*feature.Record, error) {
	ev, err := event.Parse(id)
	if err != nil {
		return nil, err
	}

	rec := feature.NewRecord(ev.ID())

	if a.enabled["structural"] {
		feature.Structural(ev, rec)
	}
	if a.enabled["sequence"] {
		feature.Sequence(ctx, ev, a.genome, a.cons, rec)
		feature.IsoformSequences(ctx, ev, a.genome, rec)
	}
	if a.enabled["genes"] && a.model != nil {
		feature.Genes(ev, a.model, rec)
	}

	for i, alt := range ev.AlternativeExons() {
		suffix := ""
		if i == 1 {
			suffix = feature.SuffixB
		}
		if a.enabled["translation"] && a.model != nil {
			feature.FrameTranslation(ctx, alt, a.genome, a.model, a.usage, rec, suffix)
		}
		if a.enabled["splice_sites"] {
			a.spliceSites(ctx, alt, rec, suffix)
		}
		if a.enabled["protein"] || a.enabled["domains"] {
			a.proteinFeatures(ctx, rec, suffix)
		}
	}

	rec.FillMissing(a.schema)
	return rec, nil
}

// AnnotateAll reads event identifiers from src, annotates them in
// parallel, and writes records in input order. Unparseable identifiers
// never abort the batch; they are logged and returned in the manifest.
func (a *Annotator) AnnotateAll(ctx context.Context, src event.Source, writer RecordWriter, workers int) ([]ItemError, error) {
	if err := writer.WriteHeader(a.schema); err != nil {
		return nil, fmt.Errorf("write header: %w", err)
	}

	items := make(chan WorkItem, 2*runtime.NumCPU())
	var readErr error

	go func() {
		defer close(items)
		seq := 0
		for {
			id, err := src.Next()
			if err != nil {
				readErr = fmt.Errorf("read event id: %w", err)
				return
			}
			if id == "" {
				return
			}
			items <- WorkItem{Seq: seq, ID: id, Line: src.LineNumber()}
			seq++
		}
	}()

	results := a.ParallelAnnotate(ctx, items, workers)

	var manifest []ItemError
	if err := OrderedCollect(results, func(r WorkResult) error {
		if r.Err != nil {
			a.logger.Warn("failed to parse event",
				zap.String("id", r.ID),
				zap.Int("line", r.Line),
				zap.Error(r.Err))
			manifest = append(manifest, ItemError{ID: r.ID, Line: r.Line, Err: r.Err})
			return nil
		}
		if err := writer.Write(r.Record); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
		return nil
	}); err != nil {
		return manifest, err
	}

	if readErr != nil {
		return manifest, readErr
	}
	return manifest, writer.Flush()
}

// ItemError reports one identifier that failed to parse in a batch.
type ItemError struct {
	ID   string
	Line int // input line the identifier came from
	Err  error
}

// RecordWriter defines the interface for writing feature records.
type RecordWriter interface {
	WriteHeader(names []string) error
	Write(rec *feature.Record) error
	Flush() error
}
