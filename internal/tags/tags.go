// Package tags implements the tag input rules: tags are trimmed and
// lowercased, empty and duplicate entries are dropped, and a question
// carries at most MaxTags of them.
package tags

import (
	"errors"
	"slices"
	"strings"
)

const (
	MaxTags   = 5
	MaxLength = 35
)

var (
	ErrNoTags      = errors.New("at least one tag is required")
	ErrTooMany     = errors.New("too many tags")
	ErrTagTooLong  = errors.New("tag is too long")
	ErrEmptyTag    = errors.New("tag is empty")
	ErrDuplicate   = errors.New("tag already added")
	ErrTagNotFound = errors.New("tag not found")
)

// Clean normalizes a single raw tag.
func Clean(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Add appends raw to current following the input box rules. current is
// assumed to be normalized already; the returned slice is a new one.
func Add(current []string, raw string) ([]string, error) {
	tag := Clean(raw)
	switch {
	case tag == "":
		return current, ErrEmptyTag
	case len([]rune(tag)) > MaxLength:
		return current, ErrTagTooLong
	case slices.Contains(current, tag):
		return current, ErrDuplicate
	case len(current) >= MaxTags:
		return current, ErrTooMany
	}

	out := make([]string, 0, len(current)+1)
	out = append(out, current...)
	return append(out, tag), nil
}

// Remove drops tag from current.
func Remove(current []string, tag string) ([]string, error) {
	tag = Clean(tag)
	idx := slices.Index(current, tag)
	if idx < 0 {
		return current, ErrTagNotFound
	}
	return slices.Delete(slices.Clone(current), idx, idx+1), nil
}

// Split breaks comma separated input the way pressing comma does in the
// input box.
func Split(input string) []string {
	return strings.Split(input, ",")
}

// Normalize runs every raw tag through Add. Empty entries and duplicates are
// skipped silently, exceeding MaxTags or MaxLength is an error, and an empty
// result is ErrNoTags.
func Normalize(raw []string) ([]string, error) {
	var out []string
	for _, r := range raw {
		next, err := Add(out, r)
		switch {
		case errors.Is(err, ErrEmptyTag), errors.Is(err, ErrDuplicate):
			continue
		case err != nil:
			return nil, err
		}
		out = next
	}
	if len(out) == 0 {
		return nil, ErrNoTags
	}
	return out, nil
}
