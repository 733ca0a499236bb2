// Package subs loads the character substitution table used for
// leetspeak-style username variants.
//
// A table is an ordered list of literal replacement rules. It is built once
// before processing starts and is only read afterwards, so a *Table can be
// shared between goroutines without locking.
package subs

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultFile is the substitution file looked up in the working directory.
const DefaultFile = "common_substitutions.txt"

//go:embed common_substitutions.txt
var defaultTable string

var (
	ErrMissingSeparator = errors.New("rule must contain exactly one '='")
	ErrEmptyKey         = errors.New("rule key is empty")
	ErrInvalidYAML      = errors.New("substitution YAML must be a mapping of strings")
)

// LoadError reports a malformed rule in a substitution source.
type LoadError struct {
	Line int
	Text string
	Err  error
}

func (e *LoadError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("substitutions line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Rule replaces every occurrence of Key with Value.
type Rule struct {
	Key   string
	Value string
}

// Table is an immutable, ordered set of substitution rules.
type Table struct {
	rules []Rule
}

// Len returns the number of rules.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.rules)
}

// Rules returns a copy of the rules in table order.
func (t *Table) Rules() []Rule {
	if t == nil {
		return nil
	}
	out := make([]Rule, len(t.rules))
	copy(out, t.rules)
	return out
}

// Apply returns one variant of s per rule, in rule order. A rule whose key does
// not occur in s still yields an unchanged copy.
func (t *Table) Apply(s string) []string {
	if t == nil {
		return nil
	}
	out := make([]string, 0, len(t.rules))
	for _, r := range t.rules {
		out = append(out, strings.ReplaceAll(s, r.Key, r.Value))
	}
	return out
}

// builder keeps first-seen key order while letting a repeated key take the
// last value.
type builder struct {
	rules []Rule
	index map[string]int
}

func newBuilder() *builder {
	return &builder{index: make(map[string]int)}
}

func (b *builder) set(key, value string) {
	if i, ok := b.index[key]; ok {
		b.rules[i].Value = value
		return
	}
	b.index[key] = len(b.rules)
	b.rules = append(b.rules, Rule{Key: key, Value: value})
}

func (b *builder) table() *Table {
	return &Table{rules: b.rules}
}

// Load reads "key=value" rules, one per line. Whitespace-only lines are
// skipped. Any other line without exactly one '=' or with an empty key fails
// the whole load.
func Load(r io.Reader) (*Table, error) {
	b := newBuilder()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "=")
		if len(parts) != 2 {
			return nil, &LoadError{Line: lineNo, Text: line, Err: ErrMissingSeparator}
		}
		if parts[0] == "" {
			return nil, &LoadError{Line: lineNo, Text: line, Err: ErrEmptyKey}
		}
		b.set(parts[0], parts[1])
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read substitutions: %w", err)
	}
	return b.table(), nil
}

// LoadYAML reads a YAML mapping of key to replacement. Document order is kept.
func LoadYAML(r io.Reader) (*Table, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return &Table{}, nil
		}
		return nil, fmt.Errorf("failed to parse substitutions: %w", err)
	}
	if len(doc.Content) == 0 {
		return &Table{}, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, ErrInvalidYAML
	}

	b := newBuilder()
	for i := 0; i+1 < len(root.Content); i += 2 {
		k, v := root.Content[i], root.Content[i+1]
		if k.Kind != yaml.ScalarNode || v.Kind != yaml.ScalarNode {
			return nil, &LoadError{Line: k.Line, Text: k.Value, Err: ErrInvalidYAML}
		}
		if k.Value == "" {
			return nil, &LoadError{Line: k.Line, Text: k.Value, Err: ErrEmptyKey}
		}
		b.set(k.Value, v.Value)
	}
	return b.table(), nil
}

// LoadFile loads a table from disk, choosing the YAML reader for .yaml and
// .yml files.
func LoadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open substitutions: %w", err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return LoadYAML(f)
	default:
		return Load(f)
	}
}

// Resolve loads path, falling back to the embedded table when path is the
// default file name and it does not exist.
func Resolve(path string) (*Table, error) {
	if path == "" {
		path = DefaultFile
	}
	t, err := LoadFile(path)
	if err == nil {
		return t, nil
	}
	if path == DefaultFile && errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return nil, err
}

// Default returns the built-in table.
func Default() *Table {
	t, err := Load(strings.NewReader(defaultTable))
	if err != nil {
		panic(fmt.Sprintf("embedded substitution table is invalid: %v", err))
	}
	return t
}
