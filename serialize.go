package markov

import (
	"fmt"
	"strings"

	"github.com/ohler55/ojg/oj"
	"github.com/xeipuuv/gojsonschema"
)

// Snapshot is the exchange form of a chain's state: the transition map
// keyed by token (sentinels included as ordinary entries) and the suffix
// set. The suffix set is derivable from the start sentinel's list but is
// carried for round-trip fidelity. Runtime resources - the random source
// and the concurrency guard - are excluded by contract and must be
// re-attached with Init after decoding.
type Snapshot struct {
	Version     int                 `json:"version"`
	Transitions map[string][]string `json:"transitions"`
	Suffixes    []string            `json:"suffixes,omitempty"`
}

// snapshotVersion is the current exchange format version.
const snapshotVersion = 1

// snapshotSchema rejects malformed payloads before any state is rebuilt
// from them.
const snapshotSchema = `{
	"type": "object",
	"required": ["transitions"],
	"properties": {
		"version": {"type": "integer", "minimum": 1},
		"transitions": {
			"type": "object",
			"additionalProperties": {
				"type": "array",
				"items": {"type": "string"}
			}
		},
		"suffixes": {
			"type": "array",
			"items": {"type": "string"}
		}
	}
}`

// Snapshot captures the chain's state at one instant. On the
// read-write-lock tier the snapshot is consistent across the entire map
// even while appends proceed elsewhere.
func (c *Chain) Snapshot() (*Snapshot, error) {
	if !c.initialized {
		return nil, ErrNotInitialized
	}
	transitions, suffixes := c.store.Snapshot()
	return &Snapshot{
		Version:     snapshotVersion,
		Transitions: transitions,
		Suffixes:    suffixes,
	}, nil
}

// ToJSON encodes a snapshot of the chain as JSON.
func (c *Chain) ToJSON() ([]byte, error) {
	snap, err := c.Snapshot()
	if err != nil {
		return nil, err
	}
	data, err := oj.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("encode snapshot: %w", err)
	}
	return data, nil
}

// FromJSON validates and decodes a snapshot, returning an UNINITIALIZED
// chain: its data is present but the random source and concurrency guard
// are not. Every guarded operation fails with ErrNotInitialized until Init
// is called with the desired options.
//
// A payload whose suffix set is absent (a bare token-to-successors mapping
// produced elsewhere) is accepted; the set is derived from the start
// sentinel's list during Init.
func FromJSON(data []byte) (*Chain, error) {
	if err := validateSnapshot(data); err != nil {
		return nil, err
	}

	var snap Snapshot
	if err := oj.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	if snap.Transitions == nil {
		snap.Transitions = make(map[string][]string)
	}

	return &Chain{pending: &snap}, nil
}

// validateSnapshot checks the payload against the exchange format schema.
func validateSnapshot(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(snapshotSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return fmt.Errorf("validate snapshot: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			msgs = append(msgs, desc.String())
		}
		return fmt.Errorf("snapshot validation failed: %s", strings.Join(msgs, "; "))
	}
	return nil
}
