// Package batch feeds phrases into a chain from a pool of goroutines.
//
// It exists for bulk corpus loading: the chain's per-list guards keep
// single appends cheap, so ingestion throughput comes from running many
// AddPhrase calls in parallel. The chain must have been built with
// markov.WithConcurrency.
package batch

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/parlance/markov"
)

// defaultConcurrency bounds the worker pool when no option is given.
const defaultConcurrency = 8

// Ingester pushes phrases into a single chain concurrently.
type Ingester struct {
	chain          *markov.Chain
	maxConcurrency int
}

// Option configures an Ingester.
type Option func(*options)

type options struct {
	maxConcurrency int
}

// WithConcurrency sets the maximum number of concurrent workers.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.maxConcurrency = n
	}
}

// New creates an ingester for chain.
func New(chain *markov.Chain, opts ...Option) *Ingester {
	o := &options{maxConcurrency: defaultConcurrency}
	for _, opt := range opts {
		opt(o)
	}
	if o.maxConcurrency < 1 {
		o.maxConcurrency = 1
	}
	return &Ingester{
		chain:          chain,
		maxConcurrency: o.maxConcurrency,
	}
}

// Phrases ingests every phrase in the slice, running up to the configured
// number of AddPhrase calls in parallel. The first error cancels the rest.
func (in *Ingester) Phrases(ctx context.Context, phrases []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(in.maxConcurrency)

	for i, phrase := range phrases {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		i, phrase := i, phrase
		g.Go(func() error {
			if err := in.chain.AddPhrase(phrase); err != nil {
				return fmt.Errorf("phrase %d: %w", i, err)
			}
			return nil
		})
	}

	return g.Wait()
}

// Reader ingests r line by line, treating each line as one phrase. Blank
// lines are passed through to the chain, which ignores them.
func (in *Ingester) Reader(ctx context.Context, r io.Reader) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(in.maxConcurrency)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line++
		n, text := line, scanner.Text()
		g.Go(func() error {
			if err := in.chain.AddPhrase(text); err != nil {
				return fmt.Errorf("line %d: %w", n, err)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan input: %w", err)
	}
	return nil
}
