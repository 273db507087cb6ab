package markov_test

import (
	"encoding/json"
	"reflect"
	"sort"
	"strings"
	"testing"

	"github.com/parlance/markov"
)

func mustJSON(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshal fixture: %v", err)
	}
	return data
}

func TestRoundTrip(t *testing.T) {
	chain := markov.New(markov.WithConcurrency(), markov.WithTraversal())
	phrases := []string{
		"The quick fox jumps over the dog.",
		"The dog sleeps!",
		"A fox is quick?",
		"hi.",
	}
	for _, p := range phrases {
		if err := chain.AddPhrase(p); err != nil {
			t.Fatalf("AddPhrase(%q) error = %v", p, err)
		}
	}

	data, err := chain.ToJSON()
	if err != nil {
		t.Fatalf("ToJSON() error = %v", err)
	}

	restored, err := markov.FromJSON(data)
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if err := restored.Init(markov.WithConcurrency(), markov.WithTraversal()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	want, err := chain.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	got, err := restored.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}

	if !reflect.DeepEqual(got.Transitions, want.Transitions) {
		t.Errorf("round-trip transitions = %v, want %v", got.Transitions, want.Transitions)
	}
	sort.Strings(got.Suffixes)
	sort.Strings(want.Suffixes)
	if !reflect.DeepEqual(got.Suffixes, want.Suffixes) {
		t.Errorf("round-trip suffixes = %v, want %v", got.Suffixes, want.Suffixes)
	}

	// The sentinel keys survive as ordinary map entries.
	if _, ok := got.Transitions[markov.ChainStart]; !ok {
		t.Error("round-trip lost the start sentinel entry")
	}
	if _, ok := got.Transitions[markov.ChainEnd]; !ok {
		t.Error("round-trip lost the end sentinel entry")
	}
}

func TestFromJSONRejectsMalformedSnapshots(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not json", "not json at all"},
		{"missing transitions", `{"version": 1}`},
		{"transitions not an object", `{"transitions": [1, 2, 3]}`},
		{"successor list not strings", `{"transitions": {"a": [1]}}`},
		{"suffixes not strings", `{"transitions": {}, "suffixes": [42]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := markov.FromJSON([]byte(tt.data)); err == nil {
				t.Errorf("FromJSON(%q) expected error, got nil", tt.data)
			}
		})
	}
}

func TestUninitializedChainFailsFast(t *testing.T) {
	decode := func(t *testing.T) *markov.Chain {
		t.Helper()
		chain, err := markov.FromJSON([]byte(`{"transitions": {"a": ["b."]}}`))
		if err != nil {
			t.Fatalf("FromJSON() error = %v", err)
		}
		return chain
	}

	tests := []struct {
		name string
		op   func(c *markov.Chain) error
	}{
		{"AddPhrase", func(c *markov.Chain) error { return c.AddPhrase("x y.") }},
		{"Generate", func(c *markov.Chain) error { _, err := c.Generate(); return err }},
		{"GenerateFrom", func(c *markov.Chain) error { _, err := c.GenerateFrom("a"); return err }},
		{"Copy", func(c *markov.Chain) error { _, err := c.Copy(); return err }},
		{"Snapshot", func(c *markov.Chain) error { _, err := c.Snapshot(); return err }},
		{"ToJSON", func(c *markov.Chain) error { _, err := c.ToJSON(); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chain := decode(t)
			if err := tt.op(chain); err != markov.ErrNotInitialized {
				t.Errorf("%s on uninitialized chain error = %v, want ErrNotInitialized", tt.name, err)
			}

			// The same operation succeeds once Init attaches the runtime
			// resources.
			if err := chain.Init(markov.WithTraversal()); err != nil {
				t.Fatalf("Init() error = %v", err)
			}
			if err := tt.op(chain); err != nil {
				t.Errorf("%s after Init error = %v", tt.name, err)
			}
		})
	}
}

func TestInitExactlyOnce(t *testing.T) {
	t.Run("second Init on decoded chain", func(t *testing.T) {
		chain, err := markov.FromJSON([]byte(`{"transitions": {}}`))
		if err != nil {
			t.Fatalf("FromJSON() error = %v", err)
		}
		if err := chain.Init(); err != nil {
			t.Fatalf("first Init() error = %v", err)
		}
		if err := chain.Init(); err != markov.ErrAlreadyInitialized {
			t.Errorf("second Init() error = %v, want ErrAlreadyInitialized", err)
		}
	})

	t.Run("Init on a chain from New", func(t *testing.T) {
		chain := markov.New()
		if err := chain.Init(); err != markov.ErrAlreadyInitialized {
			t.Errorf("Init() error = %v, want ErrAlreadyInitialized", err)
		}
	})
}

func TestFromJSONDerivesSuffixes(t *testing.T) {
	// A bare mapping without a suffix set, as another producer might emit:
	// the set is rebuilt from the start sentinel's list.
	chain := markov.New(markov.WithTraversal())
	if err := chain.AddPhrase("The quick fox jumps."); err != nil {
		t.Fatalf("AddPhrase() error = %v", err)
	}
	snap, err := chain.Snapshot()
	if err != nil {
		t.Fatalf("Snapshot() error = %v", err)
	}
	snap.Suffixes = nil

	restored, err := markov.FromJSON(mustJSON(t, snap))
	if err != nil {
		t.Fatalf("FromJSON() error = %v", err)
	}
	if err := restored.Init(markov.WithTraversal()); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	if got := restored.Suffixes(); !reflect.DeepEqual(got, []string{"The"}) {
		t.Errorf("derived suffixes = %v, want [The]", got)
	}

	// A derived suffix seeds generation the same way a stored one does.
	got, err := restored.GenerateFrom("The")
	if err != nil {
		t.Fatalf("GenerateFrom() error = %v", err)
	}
	if !strings.HasPrefix(got, "The") {
		t.Errorf("GenerateFrom(The) = %q, want prefix The", got)
	}
}
