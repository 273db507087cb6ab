package main

import (
	"fmt"
	"sort"

	"github.com/ohler55/ojg/oj"
	"github.com/spf13/cobra"

	"github.com/parlance/markov"
)

var inspectTop int

// chainStats summarizes a snapshot for display.
type chainStats struct {
	Keys        int       `json:"keys"`
	Transitions int       `json:"transitions"`
	Starts      int       `json:"starts"`
	Suffixes    int       `json:"suffixes"`
	TopFanOut   []keyStat `json:"topFanOut"`
}

type keyStat struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// inspectCmd summarizes a chain snapshot.
var inspectCmd = &cobra.Command{
	Use:   "inspect <snapshot.json>",
	Short: "Summarize a chain snapshot",
	Long:  `Load a chain snapshot and print key counts and fan-out statistics.`,
	Example: `  # Text summary
  markov inspect chain.json

  # JSON summary with the ten widest keys
  markov inspect chain.json --top 10 --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runInspect,
}

func init() {
	inspectCmd.Flags().IntVar(&inspectTop, "top", 5, "Number of widest keys to report")
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(cmd *cobra.Command, args []string) error {
	chain, err := loadChain(args[0])
	if err != nil {
		return err
	}
	snap, err := chain.Snapshot()
	if err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}

	stats := summarize(snap, inspectTop)

	if output == jsonFormat {
		cmd.Println(oj.JSON(stats, 2))
		return nil
	}

	cmd.Printf("keys:        %d\n", stats.Keys)
	cmd.Printf("transitions: %d\n", stats.Transitions)
	cmd.Printf("starts:      %d\n", stats.Starts)
	cmd.Printf("suffixes:    %d\n", stats.Suffixes)
	cmd.Println("widest keys:")
	for _, ks := range stats.TopFanOut {
		cmd.Printf("  %-20s %d\n", ks.Key, ks.Count)
	}
	return nil
}

func summarize(snap *markov.Snapshot, top int) chainStats {
	stats := chainStats{
		Keys:     len(snap.Transitions),
		Starts:   len(snap.Transitions[markov.ChainStart]),
		Suffixes: len(snap.Suffixes),
	}

	fanOut := make([]keyStat, 0, len(snap.Transitions))
	for key, successors := range snap.Transitions {
		stats.Transitions += len(successors)
		if key == markov.ChainStart || key == markov.ChainEnd {
			continue
		}
		fanOut = append(fanOut, keyStat{Key: key, Count: len(successors)})
	}

	sort.Slice(fanOut, func(i, j int) bool {
		if fanOut[i].Count != fanOut[j].Count {
			return fanOut[i].Count > fanOut[j].Count
		}
		return fanOut[i].Key < fanOut[j].Key
	})
	if top > len(fanOut) {
		top = len(fanOut)
	}
	stats.TopFanOut = fanOut[:top]
	return stats
}
