// Package main provides the splicefeat command-line tool.
package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "splicefeat",
		Short: "Feature annotator for alternative-splicing events",
		Long: `splicefeat annotates alternative-splicing events (SE, MXE) with
structural, sequence, and protein-level features derived from a genome
FASTA, a GTF gene model, and external sequence-analysis tools.

Events are MISO-style identifiers, one per line:
  chr1:100:200:+@chr1:300:400:+@chr1:500:600:+`,
		Version:       fmt.Sprintf("%s (%s) built %s", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig()
		},
	}

	root.AddCommand(newAnnotateCmd())
	root.AddCommand(newConservationCmd())
	root.AddCommand(newConfigCmd())

	return root
}

// initConfig wires viper to ~/.splicefeat.yaml and SPLICEFEAT_*
// environment variables.
func initConfig() error {
	home, err := os.UserHomeDir()
	if err == nil {
		viper.AddConfigPath(home)
		viper.SetConfigName(".splicefeat")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("splicefeat")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}
