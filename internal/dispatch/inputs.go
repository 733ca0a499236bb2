package dispatch

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNoInputs is returned when a glob pattern matches no files.
var ErrNoInputs = errors.New("no input files match")

// ResolveInputs expands pattern into input file paths. A pattern without glob
// meta characters is returned as-is and opened later, so a missing file
// surfaces as an open error. Glob matches are sorted.
func ResolveInputs(pattern string) ([]string, error) {
	if !strings.ContainsAny(pattern, "*?[{") {
		return []string{pattern}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("invalid input pattern %q: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoInputs, pattern)
	}
	sort.Strings(matches)
	return matches, nil
}
