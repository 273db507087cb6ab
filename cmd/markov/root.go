package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Output formats.
const (
	textFormat = "text"
	jsonFormat = "json"
	yamlFormat = "yaml"
)

var (
	// Global flags.
	verbose bool
	output  string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "markov",
	Short: "A Markov chain sentence generator",
	Long: `Markov builds first-order Markov chains from text corpora and
generates novel sentences from them.

Ingest text into a chain snapshot, then generate from it:

  markov ingest --manifest corpus.yaml --out chain.json
  markov generate chain.json --count 3`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVar(&output, "output", textFormat, "Output format (text, json, yaml)")

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
