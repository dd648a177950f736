package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rnaseek/splicefeat/internal/datasource/phastcons"
)

func newConservationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conservation",
		Short: "Manage the conservation score database",
	}
	cmd.AddCommand(newConservationLoadCmd())
	return cmd
}

func newConservationLoadCmd() *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "load <scores.tsv>",
		Short: "Bulk-load phastCons scores into a DuckDB database",
		Long: `Load reads a BED-style TSV (chrom, start, end, score; plain or
gzipped) into the conservation database used by annotate
--conservation-db. Reloading replaces existing data.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := phastcons.Open(dbPath)
			if err != nil {
				return fmt.Errorf("open conservation database: %w", err)
			}
			defer store.Close()

			if err := store.Load(args[0]); err != nil {
				return err
			}
			count, err := store.Count()
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Loaded %d score intervals into %s\n", count, dbPath)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "DuckDB database path")
	cobra.CheckErr(cmd.MarkFlagRequired("db"))

	return cmd
}
