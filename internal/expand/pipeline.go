// Package expand turns one name record into its full candidate list.
//
// Expansion runs three additive steps in a fixed order: case variants,
// numeric suffixes, then substitution variants. Each step appends to the
// list built so far; nothing is filtered, sorted or deduplicated.
package expand

import (
	"errors"
	"math"
	"strconv"

	"uncreator/internal/config"
	"uncreator/internal/names"
	"uncreator/internal/subs"
)

var (
	// ErrNoTable is returned when special-char mode is on without a table.
	ErrNoTable = errors.New("special-char mode requires a substitution table")

	// ErrTooLarge is returned when one record's candidate count overflows int.
	ErrTooLarge = errors.New("expansion too large")
)

// Pipeline holds the read-only inputs shared by every record.
type Pipeline struct {
	Config config.RunConfig
	Table  *subs.Table
}

// New validates the combination of config and table.
func New(cfg config.RunConfig, table *subs.Table) (*Pipeline, error) {
	if cfg.SpecialChars && table == nil {
		return nil, ErrNoTable
	}
	p := &Pipeline{Config: cfg, Table: table}
	if p.Size() < 0 {
		return nil, ErrTooLarge
	}
	return p, nil
}

// Expand produces the candidate list for one record. The result is a pure
// function of the record, config and table.
func (p *Pipeline) Expand(rec names.Record) ([]string, error) {
	if p.Config.SpecialChars && p.Table == nil {
		return nil, ErrNoTable
	}

	candidates, err := CaseVariants(rec, p.Config.CaseSensitive)
	if err != nil {
		return nil, err
	}
	if p.Config.NumbersEnabled() {
		candidates = Numbered(candidates, p.Config.NumberRange)
	}
	if p.Config.SpecialChars {
		candidates = Substituted(candidates, p.Table)
	}
	return candidates, nil
}

// Size returns how many candidates Expand yields per valid record, or -1
// when that count does not fit in an int.
func (p *Pipeline) Size() int {
	n := names.OptionCount
	if p.Config.CaseSensitive {
		n *= 2
	}
	ok := true
	if p.Config.NumbersEnabled() {
		n, ok = mulInt(n, p.Config.NumberRange+2)
	}
	if ok && p.Config.SpecialChars {
		n, ok = mulInt(n, p.Table.Len()+1)
	}
	if !ok {
		return -1
	}
	return n
}

// mulInt multiplies two positive ints. A non-positive factor is an
// overflowed operand and reports false.
func mulInt(a, b int) (int, bool) {
	if a <= 0 || b <= 0 || a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// capHint is a slice capacity for n*m elements, or n when that overflows.
func capHint(n, m int) int {
	if c, ok := mulInt(n, m); ok {
		return c
	}
	return n
}

// CaseVariants returns the base options of rec and, when caseSensitive is set,
// the base options of the lowercased record after them. Lowercasing is
// applied once; it never recurses.
func CaseVariants(rec names.Record, caseSensitive bool) ([]string, error) {
	out, err := rec.Options()
	if err != nil {
		return nil, err
	}
	if !caseSensitive {
		return out, nil
	}
	lowered, err := rec.Lower().Options()
	if err != nil {
		return nil, err
	}
	return append(out, lowered...), nil
}

// Numbered returns candidates followed by candidate+i for i in 0..=upper,
// grouped per candidate. A negative upper returns candidates unchanged.
func Numbered(candidates []string, upper int) []string {
	if upper < 0 {
		return candidates
	}
	out := make([]string, 0, capHint(len(candidates), upper+2))
	out = append(out, candidates...)
	for _, c := range candidates {
		for i := 0; i <= upper; i++ {
			out = append(out, c+strconv.Itoa(i))
		}
	}
	return out
}

// Substituted returns candidates followed by one variant per candidate and
// table rule, candidate-major.
func Substituted(candidates []string, table *subs.Table) []string {
	out := make([]string, 0, capHint(len(candidates), table.Len()+1))
	out = append(out, candidates...)
	for _, c := range candidates {
		out = append(out, table.Apply(c)...)
	}
	return out
}
