package clubs

import (
	"errors"
	"fmt"
	"strings"

	"coffeehouse/api"
	"coffeehouse/set"

	"github.com/fatih/structs"
)

var ErrInvalidMask = errors.New("invalid update mask")

// updatable lists the club fields the backend accepts in an update mask,
// keyed by mask path.
var updatable = []struct {
	path  string
	field []string
}{
	{path: "description", field: []string{"Description"}},
	{path: "contentWarnings", field: []string{"ContentWarnings"}},
	{path: "currentBook.title", field: []string{"CurrentBook", "Title"}},
	{path: "currentBook.author", field: []string{"CurrentBook", "Author"}},
	{path: "currentBook.isbn", field: []string{"CurrentBook", "ISBN"}},
}

// UpdateMask names every updatable field that is set on club. An empty but
// non-nil ContentWarnings counts as set so warnings can be cleared.
func UpdateMask(club api.Club) string {
	s := structs.New(club)
	var paths []string
	for _, u := range updatable {
		f := s.Field(u.field[0])
		for _, name := range u.field[1:] {
			f = f.Field(name)
		}
		if !f.IsZero() {
			paths = append(paths, u.path)
		}
	}
	return strings.Join(paths, ",")
}

// ValidateMask rejects paths the backend does not allow updating and returns
// the mask as the backend expects it: trimmed paths, no blanks or repeats,
// joined with ",". The result is empty when mask names no path.
func ValidateMask(mask string) (string, error) {
	paths := set.New[string]()
	for _, p := range strings.Split(mask, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if !isUpdatable(p) {
			return "", fmt.Errorf("%w: field %q cannot be updated", ErrInvalidMask, p)
		}
		paths.Add(p)
	}
	return strings.Join(paths.ToSlice(), ","), nil
}

// maskNames reports whether the canonical mask contains path.
func maskNames(mask, path string) bool {
	for _, p := range strings.Split(mask, ",") {
		if p == path {
			return true
		}
	}
	return false
}

func isUpdatable(path string) bool {
	for _, u := range updatable {
		if u.path == path {
			return true
		}
	}
	return false
}
