package expand

import (
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uncreator/internal/config"
	"uncreator/internal/names"
	"uncreator/internal/subs"
)

var johnDoe = names.Record{First: "John", Last: "Doe"}

var johnDoeBase = []string{"John", "Doe", "JohnDoe", "John.Doe", "JDoe", "J.Doe", "DoeJohn", "DoeJ", "DJohn"}

func mustTable(t *testing.T, rules string) *subs.Table {
	t.Helper()
	table, err := subs.Load(strings.NewReader(rules))
	require.NoError(t, err)
	return table
}

func newPipeline(t *testing.T, cfg config.RunConfig, table *subs.Table) *Pipeline {
	t.Helper()
	p, err := New(cfg, table)
	require.NoError(t, err)
	return p
}

func TestExpandBaseOnly(t *testing.T) {
	p := newPipeline(t, config.RunConfig{NumberRange: config.NoNumbers}, nil)

	got, err := p.Expand(johnDoe)
	require.NoError(t, err)
	if diff := cmp.Diff(johnDoeBase, got); diff != "" {
		t.Fatalf("Expand mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, p.Size(), len(got))
}

func TestExpandNumbers(t *testing.T) {
	p := newPipeline(t, config.RunConfig{NumberRange: 1}, nil)

	got, err := p.Expand(johnDoe)
	require.NoError(t, err)
	require.Len(t, got, 27)

	assert.Equal(t, johnDoeBase, got[:9])
	assert.Equal(t, []string{"John0", "John1", "Doe0", "Doe1", "JohnDoe0", "JohnDoe1"}, got[9:15])
	assert.Equal(t, "DJohn1", got[26])
	assert.Equal(t, p.Size(), len(got))
}

func TestExpandNumbersZeroRange(t *testing.T) {
	p := newPipeline(t, config.RunConfig{NumberRange: 0}, nil)

	got, err := p.Expand(johnDoe)
	require.NoError(t, err)
	require.Len(t, got, 18)
	assert.Equal(t, "John0", got[9])
	assert.Equal(t, "DJohn0", got[17])
}

func TestExpandCaseSensitive(t *testing.T) {
	p := newPipeline(t, config.RunConfig{NumberRange: config.NoNumbers, CaseSensitive: true}, nil)

	got, err := p.Expand(johnDoe)
	require.NoError(t, err)
	require.Len(t, got, 18)
	assert.Equal(t, johnDoeBase, got[:9])
	assert.Equal(t, []string{"john", "doe", "johndoe", "john.doe", "jdoe", "j.doe", "doejohn", "doej", "djohn"}, got[9:])
}

func TestExpandCaseSensitiveDoublesEveryStage(t *testing.T) {
	table := mustTable(t, "o=0\ne=3\n")
	plain := newPipeline(t, config.RunConfig{NumberRange: 2, SpecialChars: true}, table)
	cased := newPipeline(t, config.RunConfig{NumberRange: 2, SpecialChars: true, CaseSensitive: true}, table)

	a, err := plain.Expand(johnDoe)
	require.NoError(t, err)
	b, err := cased.Expand(johnDoe)
	require.NoError(t, err)
	assert.Equal(t, 2*len(a), len(b))
}

func TestExpandSpecialChars(t *testing.T) {
	table := mustTable(t, "o=0\nJ=j\n")
	p := newPipeline(t, config.RunConfig{NumberRange: config.NoNumbers, SpecialChars: true}, table)

	got, err := p.Expand(johnDoe)
	require.NoError(t, err)
	require.Len(t, got, 9*3)
	assert.Equal(t, johnDoeBase, got[:9])
	// candidate-major: every candidate yields one variant per rule
	assert.Equal(t, []string{"J0hn", "john", "D0e", "Doe"}, got[9:13])
}

func TestExpandFullPipelineOrder(t *testing.T) {
	table := mustTable(t, "a=@\n")
	p := newPipeline(t, config.RunConfig{NumberRange: 0, SpecialChars: true, CaseSensitive: true}, table)

	got, err := p.Expand(names.Record{First: "Al", Last: "Ba"})
	require.NoError(t, err)

	// 9 base + 9 lowered = 18; numbered: 18 + 18 = 36; substituted: 36 * 2 = 72
	require.Len(t, got, 72)
	assert.Equal(t, p.Size(), len(got))
	assert.Equal(t, "Al", got[0])
	assert.Equal(t, "al", got[9])
	assert.Equal(t, "Al0", got[18])
	assert.Equal(t, "Al", got[36])
	assert.Equal(t, "B@", got[37])
}

func TestExpandDeterministic(t *testing.T) {
	table := subs.Default()
	p := newPipeline(t, config.RunConfig{NumberRange: 3, SpecialChars: true, CaseSensitive: true}, table)

	first, err := p.Expand(johnDoe)
	require.NoError(t, err)
	second, err := p.Expand(johnDoe)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestExpandInvalidRecord(t *testing.T) {
	p := newPipeline(t, config.RunConfig{NumberRange: config.NoNumbers}, nil)

	_, err := p.Expand(names.Record{First: "", Last: "Doe"})
	assert.ErrorIs(t, err, names.ErrInvalidRecord)
}

func TestNewRequiresTableForSpecialChars(t *testing.T) {
	_, err := New(config.RunConfig{SpecialChars: true}, nil)
	assert.ErrorIs(t, err, ErrNoTable)

	p := &Pipeline{Config: config.RunConfig{SpecialChars: true}}
	_, err = p.Expand(johnDoe)
	assert.ErrorIs(t, err, ErrNoTable)
}

func TestSizeOverflow(t *testing.T) {
	table := mustTable(t, "a=4\n")
	for _, cfg := range []config.RunConfig{
		{NumberRange: math.MaxInt},
		{NumberRange: math.MaxInt - 1, CaseSensitive: true},
		{NumberRange: math.MaxInt / 4, CaseSensitive: true, SpecialChars: true},
	} {
		p := &Pipeline{Config: cfg, Table: table}
		assert.Equal(t, -1, p.Size(), "config %+v", cfg)

		_, err := New(cfg, table)
		assert.ErrorIs(t, err, ErrTooLarge)

		out, err := p.Expand(johnDoe)
		assert.ErrorIs(t, err, ErrTooLarge)
		assert.Nil(t, out)
	}

	p := newPipeline(t, config.RunConfig{NumberRange: config.MaxNumberRange, CaseSensitive: true}, nil)
	assert.Equal(t, names.OptionCount*2*(config.MaxNumberRange+2), p.Size())
}

func TestNumberedCardinality(t *testing.T) {
	in := []string{"a", "b", "c"}
	for n := 0; n < 5; n++ {
		got := Numbered(in, n)
		assert.Len(t, got, len(in)+len(in)*(n+1))
		assert.Equal(t, in, got[:len(in)])
	}
	assert.Equal(t, in, Numbered(in, -1))
}

func TestSubstitutedCardinality(t *testing.T) {
	in := []string{"alpha", "beta"}
	table := mustTable(t, "a=4\nb=8\nz=2\n")
	got := Substituted(in, table)
	assert.Len(t, got, len(in)*(table.Len()+1))
	assert.Equal(t, []string{"alpha", "beta", "4lph4", "alpha", "alpha", "bet4", "8eta", "beta"}, got)
}
