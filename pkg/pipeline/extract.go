package pipeline

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

// PlaceholderText is recorded as the extraction result when a page
// yields no meaningful text. The pipeline proceeds with it rather than
// aborting; the generation result is then treated as empty.
const PlaceholderText = "Failed to extract meaningful content."

// ImageRef is an image occurrence on the captured page.
type ImageRef struct {
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// Capture is one page-extraction request: the raw page plus its
// provenance. HTML may be a full document or a fragment.
type Capture struct {
	Title  string
	URL    string
	HTML   string
	Images []ImageRef
}

var stripPolicy = bluemonday.StrictPolicy()

// ExtractText reduces page HTML to plain text: all markup is stripped,
// whitespace runs are collapsed. An empty result yields PlaceholderText.
func ExtractText(rawHTML string) string {
	text := stripPolicy.Sanitize(rawHTML)
	text = html.UnescapeString(text)
	text = strings.Join(strings.Fields(text), " ")
	if text == "" {
		return PlaceholderText
	}
	return text
}

// ExtractTitle returns the text of the document's title element, or ""
// when there is none.
func ExtractTitle(rawHTML string) string {
	tz := html.NewTokenizer(strings.NewReader(rawHTML))
	for {
		tt := tz.Next()
		if tt == html.ErrorToken {
			return ""
		}
		if tt != html.StartTagToken {
			continue
		}
		if tok := tz.Token(); tok.Data != "title" {
			continue
		}
		if tz.Next() == html.TextToken {
			return strings.TrimSpace(tz.Token().Data)
		}
		return ""
	}
}

// ExtractImages collects the src/alt pairs of all img elements in the
// document, in document order. Images without a src are skipped; a
// missing alt becomes the empty string.
func ExtractImages(rawHTML string) []ImageRef {
	var refs []ImageRef
	tz := html.NewTokenizer(strings.NewReader(rawHTML))
	for {
		tt := tz.Next()
		if tt == html.ErrorToken {
			return refs
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}
		tok := tz.Token()
		if tok.Data != "img" {
			continue
		}
		var ref ImageRef
		for _, attr := range tok.Attr {
			switch attr.Key {
			case "src":
				ref.Src = attr.Val
			case "alt":
				ref.Alt = attr.Val
			}
		}
		if ref.Src != "" {
			refs = append(refs, ref)
		}
	}
}
