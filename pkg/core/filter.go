package core

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Filter selects a subset of the collection. The zero value matches
// everything. Search and the tag criteria compose with AND; the tag
// criteria (Tags, TagPattern, Untagged) are mutually exclusive in
// practice but are all honored if set together.
type Filter struct {
	// Search is a case-insensitive substring matched against front and
	// back text.
	Search string

	// Tags selects cards carrying at least one of the given tags.
	Tags []string

	// TagPattern selects cards with at least one tag matching a
	// doublestar glob (hierarchical tags such as "biology/cells" match
	// "biology/**").
	TagPattern string

	// Untagged selects only cards with no tags at all.
	Untagged bool
}

// IsZero reports whether the filter matches the whole collection.
func (f Filter) IsZero() bool {
	return f.Search == "" && len(f.Tags) == 0 && f.TagPattern == "" && !f.Untagged
}

// Matches reports whether the card passes the filter.
func (f Filter) Matches(card Flashcard) bool {
	if f.Search != "" {
		term := strings.ToLower(f.Search)
		if !strings.Contains(strings.ToLower(card.Front), term) &&
			!strings.Contains(strings.ToLower(card.Back), term) {
			return false
		}
	}

	if f.Untagged && len(card.Tags) > 0 {
		return false
	}

	if len(f.Tags) > 0 && !hasAnyTag(card.Tags, f.Tags) {
		return false
	}

	if f.TagPattern != "" && !hasTagMatch(card.Tags, f.TagPattern) {
		return false
	}

	return true
}

func hasAnyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

func hasTagMatch(tags []string, pattern string) bool {
	for _, t := range tags {
		// Pattern validity was the caller's responsibility; a bad
		// pattern simply matches nothing.
		if ok, err := doublestar.Match(pattern, t); err == nil && ok {
			return true
		}
	}
	return false
}
