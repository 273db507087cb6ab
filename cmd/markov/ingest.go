package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/parlance/markov"
	"github.com/parlance/markov/batch"
	"github.com/parlance/markov/corpus"
)

var (
	ingestManifest    string
	ingestOut         string
	ingestConcurrency int
)

// ingestCmd builds a chain from text input and writes its snapshot.
var ingestCmd = &cobra.Command{
	Use:   "ingest [files...]",
	Short: "Build a chain snapshot from text",
	Long: `Ingest text into a new Markov chain and write it as a JSON snapshot.

Input comes from a corpus manifest (--manifest), from plain text files
given as arguments (one phrase per line), or both.`,
	Example: `  # Ingest a corpus described by a YAML manifest
  markov ingest --manifest corpus.yaml --out chain.json

  # Ingest line-oriented text files directly
  markov ingest quotes.txt proverbs.txt --out chain.json`,
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().StringVar(&ingestManifest, "manifest", "", "Corpus manifest (YAML)")
	ingestCmd.Flags().StringVar(&ingestOut, "out", "chain.json", "Snapshot output path")
	ingestCmd.Flags().IntVar(&ingestConcurrency, "concurrency", 8, "Concurrent ingestion workers")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestManifest == "" && len(args) == 0 {
		return fmt.Errorf("nothing to ingest: provide --manifest or input files")
	}

	var phrases []string
	if ingestManifest != "" {
		m, err := corpus.Load(ingestManifest)
		if err != nil {
			return err
		}
		p, err := m.Phrases()
		if err != nil {
			return err
		}
		phrases = append(phrases, p...)
		if verbose {
			cmd.Printf("manifest %s: %d phrases from %d sources\n", ingestManifest, len(p), len(m.Sources))
		}
	}
	for _, path := range args {
		data, err := os.ReadFile(path) // #nosec G304 - input files are caller-supplied by design
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		p := splitFileLines(string(data))
		phrases = append(phrases, p...)
		if verbose {
			cmd.Printf("%s: %d phrases\n", path, len(p))
		}
	}

	chain := markov.New(markov.WithConcurrency(), markov.WithTraversal())
	ingester := batch.New(chain, batch.WithConcurrency(ingestConcurrency))
	if err := ingester.Phrases(cmd.Context(), phrases); err != nil {
		return fmt.Errorf("ingest: %w", err)
	}

	data, err := chain.ToJSON()
	if err != nil {
		return fmt.Errorf("encode chain: %w", err)
	}
	if err := os.WriteFile(ingestOut, data, 0o600); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	cmd.Printf("wrote %s: %d phrases, %d keys\n", ingestOut, len(phrases), chain.Len())
	return nil
}
