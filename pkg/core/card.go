// Flashcard is the central entity of the domain.
package core

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Source records where a flashcard was captured from. It is set at
// creation and never mutated afterwards.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Flashcard is a front/back question-answer record with provenance and
// review metadata. The JSON shape matches the persisted collection
// format, so existing exports remain readable.
type Flashcard struct {
	ID           string     `json:"id"`
	Front        string     `json:"front"`
	Back         string     `json:"back"`
	Source       *Source    `json:"source"`
	Tags         []string   `json:"tags"`
	Created      time.Time  `json:"created"`
	LastReviewed *time.Time `json:"lastReviewed"`
}

// Draft is an unpersisted candidate flashcard, typically produced by the
// generation pipeline before finalization.
type Draft struct {
	Front string   `json:"front"`
	Back  string   `json:"back"`
	Tags  []string `json:"tags,omitempty"`
}

// NewID returns a fresh collision-resistant flashcard identifier.
// Timestamp-based ids collide under rapid successive creation, so a
// random UUID is used instead.
func NewID() string {
	return uuid.NewString()
}

// UnmarshalJSON normalizes legacy records whose id was stored as a JSON
// number (early versions generated ids from Date.now()). Numeric ids are
// converted to their decimal string form so lookups behave uniformly.
func (f *Flashcard) UnmarshalJSON(data []byte) error {
	type alias Flashcard
	aux := struct {
		ID json.RawMessage `json:"id"`
		*alias
	}{alias: (*alias)(f)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	f.ID = normalizeRawID(aux.ID)
	return nil
}

func normalizeRawID(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if s == "" || s == "null" {
		return ""
	}
	if s[0] == '"' {
		var id string
		if err := json.Unmarshal(raw, &id); err == nil {
			return id
		}
	}
	return s
}

// SameID reports whether two identifiers refer to the same record.
// Comparison is type-normalized: an id arriving as text must match one
// stored numerically with the same value (e.g. "42" and 42.0).
func SameID(a, b string) bool {
	if a == b {
		return true
	}
	fa, errA := strconv.ParseFloat(a, 64)
	fb, errB := strconv.ParseFloat(b, 64)
	return errA == nil && errB == nil && fa == fb
}

// NormalizeTags trims whitespace and drops empty entries, preserving
// first-seen order and removing duplicates.
func NormalizeTags(tags []string) []string {
	var out []string
	seen := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
