/*
Package markov provides a first-order Markov chain text generator with
pluggable concurrency policies and a two-phase serialization lifecycle.

Key features:
  - Word-level transition store with frequency encoded by repetition
  - Functional options for configuration
  - Per-list or read-write-lock concurrency policies for parallel ingestion
  - Seeded generation and consistent whole-chain copies (traversal mode)
  - JSON snapshots with schema validation and an explicit re-init step

Basic usage:

	chain := markov.New()
	chain.AddPhrase("The quick fox jumps over the lazy dog.")
	chain.AddPhrase("The lazy dog sleeps.")

	sentence, err := chain.Generate()

Concurrent ingestion:

	// A concurrent chain accepts AddPhrase from many goroutines.
	chain := markov.New(markov.WithConcurrency())

	var wg sync.WaitGroup
	for _, phrase := range phrases {
		wg.Add(1)
		go func(p string) {
			defer wg.Done()
			chain.AddPhrase(p)
		}(phrase)
	}
	wg.Wait()

Seeded generation and copies require traversal mode:

	chain := markov.New(markov.WithConcurrency(), markov.WithTraversal())
	sentence, err := chain.GenerateFrom("The")
	clone, err := chain.Copy()

Serialization is a two-phase lifecycle. Encoding captures only the chain's
data; the random source and lock state never cross the boundary. A decoded
chain is unusable until Init re-attaches those runtime resources:

	data, err := chain.ToJSON()

	restored, err := markov.FromJSON(data)
	err = restored.Init(markov.WithConcurrency(), markov.WithTraversal())

Calling any operation on a decoded chain before Init fails with
ErrNotInitialized. This is deliberate: silently attaching a default lock on
first use would hide configuration mistakes and could race under concurrent
first access.
*/
package markov
