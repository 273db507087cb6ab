// Package corpus loads phrase sources described by a YAML manifest.
//
// A manifest names a set of text files and how each is cut into phrases,
// so ingestion runs can be described declaratively instead of wired up in
// code:
//
//	name: grimm
//	sources:
//	  - path: tales/hansel.txt
//	    split: sentences
//	  - path: quotes.txt
//	    split: lines
package corpus

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
)

// Split modes for a source.
const (
	SplitLines     = "lines"
	SplitSentences = "sentences"
)

// ErrUnknownSplit is returned when a source names a split mode other than
// "lines" or "sentences".
var ErrUnknownSplit = errors.New("corpus: unknown split mode")

// sentence-terminating characters recognized by the sentences split mode.
// Mirrors the punctuation set the chain itself terminates on.
const terminators = ".!?"

// Manifest describes a set of phrase sources.
type Manifest struct {
	Name    string   `yaml:"name"`
	Sources []Source `yaml:"sources"`

	// dir anchors relative source paths to the manifest's location.
	dir string
}

// Source is one text file and the rule for cutting it into phrases.
type Source struct {
	Path string `yaml:"path"`
	// Split selects how the file becomes phrases: "lines" (default) or
	// "sentences".
	Split string `yaml:"split"`
}

// Load reads and parses a manifest file. Relative source paths resolve
// against the manifest's directory.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path) // #nosec G304 - manifests are caller-supplied by design
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, err
	}
	m.dir = filepath.Dir(path)
	return m, nil
}

// Parse parses manifest bytes. Relative source paths resolve against the
// working directory; prefer Load for file-based manifests.
func Parse(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	for i := range m.Sources {
		switch m.Sources[i].Split {
		case "":
			m.Sources[i].Split = SplitLines
		case SplitLines, SplitSentences:
		default:
			return nil, fmt.Errorf("%w: %q (source %d)", ErrUnknownSplit, m.Sources[i].Split, i)
		}
	}
	return &m, nil
}

// Phrases reads every source and returns all phrases in manifest order.
func (m *Manifest) Phrases() ([]string, error) {
	var phrases []string
	for _, src := range m.Sources {
		path := src.Path
		if m.dir != "" && !filepath.IsAbs(path) {
			path = filepath.Join(m.dir, path)
		}
		data, err := os.ReadFile(path) // #nosec G304 - paths come from the manifest
		if err != nil {
			return nil, fmt.Errorf("read source %s: %w", src.Path, err)
		}
		phrases = append(phrases, split(string(data), src.Split)...)
	}
	return phrases, nil
}

func split(text, mode string) []string {
	if mode == SplitSentences {
		return splitSentences(text)
	}
	return splitLines(text)
}

func splitLines(text string) []string {
	var phrases []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			phrases = append(phrases, line)
		}
	}
	return phrases
}

// splitSentences cuts text at terminator characters, keeping the
// terminator with its sentence. Whitespace runs inside a sentence are
// left for the chain's tokenizer to handle.
func splitSentences(text string) []string {
	var phrases []string
	var current strings.Builder
	for _, r := range text {
		current.WriteRune(r)
		if strings.ContainsRune(terminators, r) {
			phrase := strings.TrimSpace(current.String())
			if phrase != "" {
				phrases = append(phrases, phrase)
			}
			current.Reset()
		}
	}
	if tail := strings.TrimSpace(current.String()); tail != "" {
		phrases = append(phrases, tail)
	}
	return phrases
}
