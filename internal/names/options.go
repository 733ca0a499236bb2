package names

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// OptionCount is the number of conventions BaseOptions produces.
const OptionCount = 9

// BaseOptions applies the fixed username conventions to a name pair, in order:
//
//	first, last, firstlast, first.last, flast, f.last, lastfirst, lastf, lfirst
//
// The initials are the first code point of each name. Both names must be
// non-empty. No case transformation is applied.
func BaseOptions(first, last string) ([]string, error) {
	if first == "" {
		return nil, &InvalidRecordError{Reason: "first name is empty"}
	}
	if last == "" {
		return nil, &InvalidRecordError{Reason: "last name is empty"}
	}

	f := initial(first)
	l := initial(last)

	return []string{
		first,
		last,
		first + last,
		first + "." + last,
		f + last,
		f + "." + last,
		last + first,
		last + f,
		l + first,
	}, nil
}

// Options is BaseOptions applied to a Record.
func (r Record) Options() ([]string, error) {
	return BaseOptions(r.First, r.Last)
}

func initial(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	return s[:size]
}

// lower builds a fresh Caser per call; cases.Caser is not safe for concurrent use.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
