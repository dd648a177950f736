package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/rnaseek/splicefeat/internal/annotate"
	"github.com/rnaseek/splicefeat/internal/datasource/phastcons"
	"github.com/rnaseek/splicefeat/internal/event"
	"github.com/rnaseek/splicefeat/internal/feature"
	"github.com/rnaseek/splicefeat/internal/genemodel"
	"github.com/rnaseek/splicefeat/internal/genome"
	"github.com/rnaseek/splicefeat/internal/output"
	"github.com/rnaseek/splicefeat/internal/predictor"
)

type annotateOptions struct {
	genomeFASTA    string
	genomeName     string
	gtf            string
	conservationDB string
	caiTable       string
	pfam2go        string
	outputFile     string
	features       []string
	workers        int
	toolWorkers    int
	toolTimeout    time.Duration
	cacheSize      int
	verbose        bool

	maxentDir string
	coilsBin  string
	tmhmmBin  string
	disoBin   string
	hmmscan   string
	pfamDB    string
}

func newAnnotateCmd() *cobra.Command {
	opts := &annotateOptions{}

	cmd := &cobra.Command{
		Use:   "annotate <events-file>",
		Short: "Annotate splice events from a file of MISO identifiers",
		Long: `Annotate reads event identifiers (one per line, '#' comments and
blank lines skipped, plain or gzipped, '-' for stdin) and writes one
tab-delimited feature row per event. Unparseable identifiers are
reported at the end; they never abort the batch.`,
		Example: `  splicefeat annotate --genome hg19.fa --gtf gencode.gtf events.txt
  splicefeat annotate --genome hg19.fa --features structural,sequence -o out.tsv events.txt.gz
  cat events.txt | splicefeat annotate --genome hg19.fa -`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnnotate(cmd.Context(), opts, args[0])
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.genomeFASTA, "genome", "", "genome FASTA file (plain or gzipped)")
	flags.StringVar(&opts.genomeName, "genome-name", "", "genome assembly name (default: FASTA basename)")
	flags.StringVar(&opts.gtf, "gtf", "", "GTF gene annotation for gene/frame features")
	flags.StringVar(&opts.conservationDB, "conservation-db", "", "phastCons DuckDB database")
	flags.StringVar(&opts.caiTable, "cai-table", "", "codon usage table for CAI")
	flags.StringVar(&opts.pfam2go, "pfam2go", "", "pfam2go mapping file for GO term features")
	flags.StringVarP(&opts.outputFile, "output", "o", "", "output file (default: stdout)")
	flags.StringSliceVar(&opts.features, "features", nil, "feature groups to compute (default: all)")
	flags.IntVar(&opts.workers, "workers", 0, "event-level workers (default: NumCPU)")
	flags.IntVar(&opts.toolWorkers, "tool-workers", 4, "concurrent external tool processes")
	flags.DurationVar(&opts.toolTimeout, "tool-timeout", time.Minute, "per-tool invocation timeout")
	flags.IntVar(&opts.cacheSize, "cache-size", 4096, "predictor result cache entries")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log per-item warnings")

	flags.StringVar(&opts.maxentDir, "maxentscan-dir", "", "MaxEntScan installation directory")
	flags.StringVar(&opts.coilsBin, "coils-bin", "", "COILS binary (default: ncoils)")
	flags.StringVar(&opts.tmhmmBin, "tmhmm-bin", "", "TMHMM binary (default: tmhmm)")
	flags.StringVar(&opts.disoBin, "disopred-bin", "", "DISOPRED binary (default: run_disopred.pl)")
	flags.StringVar(&opts.hmmscan, "hmmscan-bin", "", "hmmscan binary (default: hmmscan)")
	flags.StringVar(&opts.pfamDB, "pfam-db", "", "Pfam-A HMM database for hmmscan")

	cobra.CheckErr(cmd.MarkFlagRequired("genome"))

	return cmd
}

func runAnnotate(ctx context.Context, opts *annotateOptions, eventsPath string) error {
	logger := zap.NewNop()
	if opts.verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			return fmt.Errorf("create logger: %w", err)
		}
		defer l.Sync()
		logger = l
	}

	name := opts.genomeName
	if name == "" {
		name = viper.GetString("genome_name")
	}
	provider, err := genome.NewFASTAProvider(name, opts.genomeFASTA)
	if err != nil {
		return fmt.Errorf("load genome: %w", err)
	}
	cached, err := genome.NewCachedProvider(provider, opts.cacheSize)
	if err != nil {
		return fmt.Errorf("wrap genome cache: %w", err)
	}

	var model annotate.GeneModel
	if opts.gtf != "" {
		m := genemodel.NewModel()
		loader := genemodel.NewGTFLoader(opts.gtf)
		if err := loader.Load(m); err != nil {
			return fmt.Errorf("load gene model: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Loaded %d transcripts from %s\n", m.TranscriptCount(), opts.gtf)
		model = m
	}

	runnerCfg := predictor.RunnerConfig{
		CacheSize:      opts.cacheSize,
		PoolSize:       opts.toolWorkers,
		DefaultTimeout: opts.toolTimeout,
		Timeouts:       viperToolTimeouts(),
	}
	if viper.GetString("cache_policy") == "persistent" {
		dbc, err := predictor.OpenDBCache(viper.GetString("cache_db"))
		if err != nil {
			return fmt.Errorf("open persistent cache: %w", err)
		}
		defer dbc.Close()
		runnerCfg.Persistent = dbc
	}
	runner, err := predictor.NewRunner(runnerCfg)
	if err != nil {
		return fmt.Errorf("create tool runner: %w", err)
	}

	groups := opts.features
	if len(groups) == 0 {
		groups = viper.GetStringSlice("enabled_features")
	}
	a := annotate.NewAnnotator(cached, model, runner, groups)
	a.SetLogger(logger)
	a.SetTools(buildTools(opts))

	if opts.conservationDB != "" {
		store, err := phastcons.Open(opts.conservationDB)
		if err != nil {
			return fmt.Errorf("open conservation database: %w", err)
		}
		defer store.Close()
		if !store.Loaded() {
			logger.Warn("conservation database has no scores; run `splicefeat conservation load` first",
				zap.String("db", opts.conservationDB))
		}
		a.SetConservation(phastcons.NewSource(store))
	}
	if opts.caiTable != "" {
		usage, err := feature.LoadUsageTable(opts.caiTable)
		if err != nil {
			return fmt.Errorf("load codon usage table: %w", err)
		}
		a.SetUsageTable(usage)
	}
	if opts.pfam2go != "" {
		mapping, err := predictor.LoadPfam2GO(opts.pfam2go)
		if err != nil {
			return fmt.Errorf("load pfam2go: %w", err)
		}
		a.SetPfam2GO(mapping)
	}

	src, err := event.NewReader(eventsPath)
	if err != nil {
		return err
	}
	defer src.Close()

	var out io.Writer = os.Stdout
	if opts.outputFile != "" {
		f, err := os.Create(opts.outputFile)
		if err != nil {
			return fmt.Errorf("create output file: %w", err)
		}
		defer f.Close()
		out = f
	}
	writer := output.NewTabWriter(out)

	manifest, err := a.AnnotateAll(ctx, src, writer, opts.workers)
	if err != nil {
		return err
	}

	if len(manifest) > 0 {
		fmt.Fprintf(os.Stderr, "%d identifier(s) failed to parse:\n", len(manifest))
		for _, item := range manifest {
			fmt.Fprintf(os.Stderr, "  line %d: %s: %v\n", item.Line, item.ID, item.Err)
		}
	}
	return nil
}

// buildTools constructs the predictor adapters. MaxEntScan and hmmscan
// need explicit install locations; the membrane/disorder/coil tools
// fall back to their conventional binary names on PATH.
func buildTools(opts *annotateOptions) annotate.Tools {
	tools := annotate.Tools{
		COILS:    predictor.NewCOILS(opts.coilsBin),
		TMHMM:    predictor.NewTMHMM(opts.tmhmmBin),
		DISOPRED: predictor.NewDISOPRED(opts.disoBin),
	}
	if opts.maxentDir != "" {
		tools.MaxEnt5 = predictor.NewMaxEnt5(opts.maxentDir)
		tools.MaxEnt3 = predictor.NewMaxEnt3(opts.maxentDir)
	}
	if opts.pfamDB != "" {
		tools.HMMScan = predictor.NewHMMScan(opts.hmmscan, opts.pfamDB)
	}
	return tools
}

// viperToolTimeouts reads per-tool timeout overrides from the
// tool_timeouts config map.
func viperToolTimeouts() map[string]time.Duration {
	raw := viper.GetStringMapString("tool_timeouts")
	if len(raw) == 0 {
		return nil
	}
	timeouts := make(map[string]time.Duration, len(raw))
	for tool, val := range raw {
		d, err := time.ParseDuration(val)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: bad timeout %q for tool %s, ignoring\n", val, tool)
			continue
		}
		timeouts[tool] = d
	}
	return timeouts
}
