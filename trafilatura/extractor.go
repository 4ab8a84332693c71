// Package trafilatura extracts job posting bodies from arbitrary pages using
// go-trafilatura.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/tailor"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements tailor.ContentExtractor at compile time.
var _ tailor.ContentExtractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura to find the main content of a page.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractContent processes raw HTML and returns the main content.
func (e *Extractor) ExtractContent(rawHTML string) (*tailor.PostingContent, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, tailor.Errorf(tailor.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, tailor.Errorf(tailor.ENOTFOUND, "no main content: %v", err)
	}
	if result.ContentNode == nil {
		return nil, tailor.Errorf(tailor.ENOTFOUND, "no main content")
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	return &tailor.PostingContent{
		Title:       result.Metadata.Title,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
