package markov_test

import (
	"fmt"
	"log"

	"github.com/parlance/markov"
)

// ExampleChain_Generate builds a chain from a single phrase; with only one
// recorded transition per token the walk is deterministic.
func ExampleChain_Generate() {
	chain := markov.New()
	if err := chain.AddPhrase("The quick fox jumps."); err != nil {
		log.Fatal(err)
	}

	sentence, err := chain.Generate()
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(sentence)
	// Output: The quick fox jumps.
}

// ExampleFromJSON shows the two-phase deserialization lifecycle: decode
// the snapshot, then re-attach runtime resources with Init.
func ExampleFromJSON() {
	chain := markov.New(markov.WithTraversal())
	if err := chain.AddPhrase("The quick fox jumps."); err != nil {
		log.Fatal(err)
	}

	data, err := chain.ToJSON()
	if err != nil {
		log.Fatal(err)
	}

	restored, err := markov.FromJSON(data)
	if err != nil {
		log.Fatal(err)
	}

	// Using the chain before Init fails fast.
	if _, err := restored.Generate(); err != nil {
		fmt.Println(err)
	}

	if err := restored.Init(markov.WithTraversal()); err != nil {
		log.Fatal(err)
	}
	sentence, err := restored.GenerateFrom("The")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(sentence)
	// Output:
	// markov: chain not initialized; call Init after decoding
	// The quick fox jumps.
}
