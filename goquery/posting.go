// Package goquery reads structured job posting data from HTML using goquery.
package goquery

import (
	"encoding/json"
	"html"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/tailor"
)

// Ensure JSONLDExtractor implements tailor.ContentExtractor at compile time.
var _ tailor.ContentExtractor = (*JSONLDExtractor)(nil)

// JSONLDExtractor reads the schema.org JobPosting object that job boards
// embed as JSON-LD. It is exact where present, so it runs before any
// boilerplate-removal extractor.
type JSONLDExtractor struct{}

// NewJSONLDExtractor creates a new JSONLDExtractor.
func NewJSONLDExtractor() *JSONLDExtractor {
	return &JSONLDExtractor{}
}

// ExtractContent returns the first JobPosting description in the page.
// Returns ENOTFOUND when the page has none.
func (e *JSONLDExtractor) ExtractContent(rawHTML string) (*tailor.PostingContent, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, tailor.Errorf(tailor.EINVALID, "failed to parse HTML: %v", err)
	}

	var found *tailor.PostingContent
	doc.Find(`script[type="application/ld+json"]`).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		var v any
		if err := json.Unmarshal([]byte(sel.Text()), &v); err != nil {
			// Malformed blocks are common; skip them.
			return true
		}
		found = findPosting(v)
		return found == nil
	})

	if found == nil {
		return nil, tailor.Errorf(tailor.ENOTFOUND, "no JobPosting data")
	}
	return found, nil
}

// findPosting walks a decoded JSON-LD value, including arrays and @graph
// containers, for a JobPosting with a description.
func findPosting(v any) *tailor.PostingContent {
	switch v := v.(type) {
	case []any:
		for _, item := range v {
			if p := findPosting(item); p != nil {
				return p
			}
		}
	case map[string]any:
		if isJobPosting(v["@type"]) {
			desc, _ := v["description"].(string)
			if strings.TrimSpace(desc) == "" {
				return nil
			}
			title, _ := v["title"].(string)
			return &tailor.PostingContent{
				Title:       strings.TrimSpace(title),
				ContentHTML: descriptionHTML(desc),
			}
		}
		if graph, ok := v["@graph"]; ok {
			return findPosting(graph)
		}
	}
	return nil
}

func isJobPosting(t any) bool {
	switch t := t.(type) {
	case string:
		return t == "JobPosting"
	case []any:
		for _, s := range t {
			if s == "JobPosting" {
				return true
			}
		}
	}
	return false
}

// descriptionHTML returns the description as HTML. Some boards escape the
// markup inside the JSON string; others send plain text.
func descriptionHTML(desc string) string {
	if strings.Contains(desc, "&lt;") {
		desc = html.UnescapeString(desc)
	}
	if !strings.Contains(desc, "<") {
		return "<p>" + html.EscapeString(desc) + "</p>"
	}
	return desc
}
