package batch_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/parlance/markov"
	"github.com/parlance/markov/batch"
)

func TestPhrases(t *testing.T) {
	chain := markov.New(markov.WithConcurrency())

	phrases := make([]string, 200)
	for i := range phrases {
		phrases[i] = "one two three."
	}

	ingester := batch.New(chain, batch.WithConcurrency(16))
	if err := ingester.Phrases(context.Background(), phrases); err != nil {
		t.Fatalf("Phrases() error = %v", err)
	}

	snap, err := chain.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if got := len(snap.Transitions["one"]); got != len(phrases) {
		t.Errorf("len(transitions[one]) = %d, want %d", got, len(phrases))
	}
	if got := len(snap.Transitions[markov.ChainStart]); got != len(phrases) {
		t.Errorf("len(start list) = %d, want %d", got, len(phrases))
	}
}

func TestReader(t *testing.T) {
	chain := markov.New(markov.WithConcurrency())

	var input strings.Builder
	for i := 0; i < 50; i++ {
		input.WriteString("alpha beta gamma.\n")
	}
	// Blank lines are noise the chain ignores.
	input.WriteString("\n\n")

	ingester := batch.New(chain)
	if err := ingester.Reader(context.Background(), strings.NewReader(input.String())); err != nil {
		t.Fatalf("Reader() error = %v", err)
	}

	snap, err := chain.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	if got := len(snap.Transitions["alpha"]); got != 50 {
		t.Errorf("len(transitions[alpha]) = %d, want 50", got)
	}
}

func TestPhrasesPropagatesChainErrors(t *testing.T) {
	// An uninitialized chain rejects every AddPhrase; the ingester must
	// surface that instead of swallowing it.
	chain, err := markov.FromJSON([]byte(`{"transitions": {}}`))
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}

	ingester := batch.New(chain, batch.WithConcurrency(4))
	err = ingester.Phrases(context.Background(), []string{"one two."})
	if !errors.Is(err, markov.ErrNotInitialized) {
		t.Errorf("Phrases() error = %v, want ErrNotInitialized", err)
	}
}

func TestPhrasesHonorsCancellation(t *testing.T) {
	chain := markov.New(markov.WithConcurrency())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ingester := batch.New(chain)
	err := ingester.Phrases(ctx, []string{"one two.", "three four."})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Phrases() error = %v, want context.Canceled", err)
	}
}
