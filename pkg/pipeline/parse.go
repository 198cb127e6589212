package pipeline

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/webflash/webflash/pkg/core"
)

// ParseDrafts decodes the completion output into flashcard drafts. The
// service is instructed to answer with a bare JSON array of
// {front, back} objects, but models routinely wrap it in a fenced code
// block, so fences are stripped before decoding. Anything that is not a
// JSON array is an ErrParse; callers degrade to an empty draft set.
func ParseDrafts(raw string) ([]core.Draft, error) {
	raw = stripFences(strings.TrimSpace(raw))
	if raw == "" {
		return nil, fmt.Errorf("%w: empty generation output", core.ErrParse)
	}

	var drafts []core.Draft
	if err := json.Unmarshal([]byte(raw), &drafts); err != nil {
		return nil, fmt.Errorf("%w: generation output is not a flashcard array: %v", core.ErrParse, err)
	}
	return drafts, nil
}

// stripFences removes a surrounding markdown code fence, with or
// without a language tag.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// Drop the language tag line ("json", "JSON", or empty).
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
