package markov

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Common errors.
var (
	// ErrNotInitialized is returned when a chain decoded from a snapshot is
	// used before Init has re-attached its runtime resources.
	ErrNotInitialized = errors.New("markov: chain not initialized; call Init after decoding")

	// ErrAlreadyInitialized is returned when Init is called more than once
	// on the same chain.
	ErrAlreadyInitialized = errors.New("markov: chain already initialized")

	// ErrNotTraversable is returned when Copy is requested on a chain built
	// without WithTraversal.
	ErrNotTraversable = errors.New("markov: chain was not built with traversal enabled")
)

// Reserved sentinel tokens bounding every recorded walk. They appear in the
// transition map (and in snapshots) as ordinary keys but are never emitted
// as generated output.
const (
	ChainStart = "\x00"
	ChainEnd   = "\x01"
)

// NoChain is the defined empty-result value returned by Generate when the
// chain has no recorded transitions. It is not an error state.
const NoChain = ""

// Source supplies the random draws used to pick successors during
// generation. It must be safe to call from every goroutine that generates
// or ingests on the chain it is attached to. *rand.Rand satisfies Source
// but is not safe for concurrent use; see NewSource for a guarded one.
type Source interface {
	// Intn returns a uniformly distributed integer in [0, n).
	// n must be positive.
	Intn(n int) int
}

// Transform rewrites a single token during ingestion. The zero behavior
// (nil transform) keeps tokens as-is.
type Transform func(word string) string

// config holds the construction-time configuration for a Chain.
type config struct {
	concurrent  bool
	traversable bool
	pattern     *regexp.Regexp
	random      Source
	transform   Transform
}

// Option configures a Chain at construction or re-initialization.
type Option func(*config)

// WithConcurrency makes the chain safe for parallel AddPhrase and Generate
// calls. Without traversal this selects the per-list policy: appends on
// different keys never block each other. Combined with WithTraversal it
// selects the read-write-lock policy, which additionally gives Copy and
// Snapshot a consistent view of the whole map.
func WithConcurrency() Option {
	return func(c *config) {
		c.concurrent = true
	}
}

// WithTraversal enables seeded generation (GenerateFrom honoring its seed)
// and whole-chain copies.
func WithTraversal() Option {
	return func(c *config) {
		c.traversable = true
	}
}

// WithPattern overrides the tokenization pattern used to split phrases.
// The default splits on runs of whitespace.
func WithPattern(pattern *regexp.Regexp) Option {
	return func(c *config) {
		c.pattern = pattern
	}
}

// WithRandom overrides the random source used to pick successors. Inject a
// seeded source for deterministic generation in tests.
func WithRandom(src Source) Option {
	return func(c *config) {
		c.random = src
	}
}

// WithTransform sets a per-token rewrite applied during ingestion, e.g.
// case folding or trimming.
func WithTransform(fn Transform) Option {
	return func(c *config) {
		c.transform = fn
	}
}

// Chain is a first-order Markov chain over word tokens. Phrases are
// ingested with AddPhrase and novel sentences are produced by Generate and
// GenerateFrom.
//
// A Chain's concurrency guarantees are fixed at construction by its
// options; see WithConcurrency and WithTraversal. The zero Chain is not
// usable: obtain one from New or FromJSON.
type Chain struct {
	store       Store
	rand        Source
	pattern     *regexp.Regexp
	transform   Transform
	traversable bool
	concurrent  bool

	// initialized flips once, in Init. A decoded chain carries its data in
	// pending until Init rebuilds the store with live guards.
	initialized bool
	pending     *Snapshot
}

// New creates an empty, fully initialized chain.
func New(opts ...Option) *Chain {
	c := &Chain{}
	// A fresh chain cannot already be initialized, so Init cannot fail.
	_ = c.Init(opts...)
	return c
}

// Init attaches the runtime resources that never cross the serialization
// boundary: the random source and the concurrency guard, along with the
// tokenization pattern. It must be called exactly once on a chain returned
// by FromJSON before any other operation; New calls it for you.
//
// A second call returns ErrAlreadyInitialized.
func (c *Chain) Init(opts ...Option) error {
	if c.initialized {
		return ErrAlreadyInitialized
	}

	cfg := config{pattern: defaultPattern}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.random == nil {
		cfg.random = NewSource(randomSeed())
	}

	c.pattern = cfg.pattern
	c.rand = cfg.random
	c.transform = cfg.transform
	c.traversable = cfg.traversable
	c.concurrent = cfg.concurrent
	c.store = newStore(cfg.concurrent, cfg.traversable)

	if c.pending != nil {
		loadSnapshot(c.store, c.pending)
		c.pending = nil
	}

	c.initialized = true
	return nil
}

// AddPhrase tokenizes phrase and records its transitions. Input that is
// empty or only whitespace/line-break noise is silently ignored: ingestion
// is best-effort over arbitrary text. A phrase without terminal punctuation
// gets the default terminator appended before splitting.
//
// Safe for concurrent use when the chain was built with WithConcurrency.
func (c *Chain) AddPhrase(phrase string) error {
	if !c.initialized {
		return ErrNotInitialized
	}
	if strings.TrimSpace(phrase) == "" {
		return nil
	}

	words := c.tokens(terminate(phrase))
	if len(words) == 0 {
		return nil
	}

	// Each store call acquires and releases its guard independently, so a
	// long phrase never holds a lock across the whole ingestion.
	for i, word := range words {
		switch {
		case i == 0:
			c.store.Add(ChainStart, word)
			c.store.AddSuffix(word)
			c.store.Ensure(word)
			if len(words) > 1 {
				c.store.Add(word, words[1])
			}
		case i == len(words)-1:
			c.store.Add(ChainEnd, word)
		default:
			c.store.Add(word, words[i+1])
		}
	}
	return nil
}

// Generate produces a sentence by walking random transitions from the
// start sentinel until a punctuation-terminated token is reached. An empty
// chain yields NoChain. A walk that dead-ends before punctuation returns
// the tokens accumulated so far; callers can tell the two apart only by
// the absence of a trailing terminator.
func (c *Chain) Generate() (string, error) {
	if !c.initialized {
		return "", ErrNotInitialized
	}
	first, ok := c.next(ChainStart)
	if !ok {
		return NoChain, nil
	}
	return c.walk(first), nil
}

// GenerateFrom behaves like Generate but begins the walk at seed. The seed
// must be a known sentence-starting token; otherwise, or when the chain
// was built without WithTraversal, it degrades to plain Generate.
func (c *Chain) GenerateFrom(seed string) (string, error) {
	if !c.initialized {
		return "", ErrNotInitialized
	}
	if !c.traversable || !c.store.HasSuffix(seed) {
		first, ok := c.next(ChainStart)
		if !ok {
			return NoChain, nil
		}
		return c.walk(first), nil
	}
	return c.walk(seed), nil
}

// walk appends successors to first until the current token ends with a
// terminator or has none recorded.
func (c *Chain) walk(first string) string {
	var sentence strings.Builder
	current := first
	for {
		if sentence.Len() > 0 {
			sentence.WriteByte(' ')
		}
		sentence.WriteString(current)
		if isTerminated(current) {
			break
		}
		next, ok := c.next(current)
		if !ok {
			// Dead end: surface the unterminated prefix rather than fail.
			break
		}
		current = next
	}
	return sentence.String()
}

// next draws a successor of key by position, or ok=false when key has no
// recorded successors.
func (c *Chain) next(key string) (word string, ok bool) {
	successors := c.store.Successors(key)
	if len(successors) == 0 {
		return "", false
	}
	return successors[c.rand.Intn(len(successors))], true
}

// Copy produces an independent chain whose state is value-equal to this
// one at the instant of the copy. The copy shares the random source and
// pattern (both safe for concurrent use) but no mutable container.
// Requires WithTraversal; only the read-write-lock tier can observe a
// consistent snapshot across the entire map while appends proceed.
func (c *Chain) Copy() (*Chain, error) {
	if !c.initialized {
		return nil, ErrNotInitialized
	}
	if !c.traversable {
		return nil, ErrNotTraversable
	}
	return &Chain{
		store:       c.store.Copy(),
		rand:        c.rand,
		pattern:     c.pattern,
		transform:   c.transform,
		traversable: c.traversable,
		concurrent:  c.concurrent,
		initialized: true,
	}, nil
}

// Len reports the number of keys in the transition map, sentinels
// included.
func (c *Chain) Len() int {
	if !c.initialized {
		return 0
	}
	return c.store.Len()
}

// Suffixes returns the tokens eligible as GenerateFrom seeds, sorted.
func (c *Chain) Suffixes() []string {
	if !c.initialized {
		return nil
	}
	_, suffixes := c.store.Snapshot()
	sort.Strings(suffixes)
	return suffixes
}

// String renders the transition map as one "key| successors" line per key,
// sorted by key, with the sentinels shown as START and END. Intended for
// logging and debugging; the output is a wall of text on any real corpus.
func (c *Chain) String() string {
	if !c.initialized {
		return "<uninitialized chain>"
	}
	transitions, _ := c.store.Snapshot()

	keys := make([]string, 0, len(transitions))
	for key := range transitions {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		fmt.Fprintf(&b, "%s| %s\n", printableKey(key), strings.Join(transitions[key], " "))
	}
	return b.String()
}

func printableKey(key string) string {
	switch key {
	case ChainStart:
		return "START"
	case ChainEnd:
		return "END"
	default:
		return key
	}
}
