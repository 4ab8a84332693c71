// Package pdf implements structural text extraction using the PDF object
// model, falling back to another extractor when the document cannot be
// parsed or yields no text.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/fwojciec/tailor"
	"github.com/ledongthuc/pdf"
)

var _ tailor.Extractor = (*Extractor)(nil)

// Extractor reads page text through a real PDF parser. Scanned documents,
// encrypted files and anything the parser rejects are handed to Fallback.
type Extractor struct {
	Fallback tailor.Extractor
}

// NewExtractor creates an Extractor that defers to fallback on failure.
func NewExtractor(fallback tailor.Extractor) *Extractor {
	return &Extractor{Fallback: fallback}
}

// Extract implements tailor.Extractor.
func (e *Extractor) Extract(data []byte) *tailor.Extraction {
	attempt := tailor.Attempt{Method: tailor.MethodStructural}

	text, err := readText(data)
	switch {
	case err != nil:
		attempt.Status = tailor.StageFailed
		attempt.Error = err.Error()
	case text == "":
		attempt.Status = tailor.StageRejected
	default:
		attempt.Status = tailor.StageAccepted
		return &tailor.Extraction{
			Text:     text,
			Method:   tailor.MethodStructural,
			Outcome:  tailor.OutcomeExtracted,
			Attempts: []tailor.Attempt{attempt},
		}
	}

	ext := e.Fallback.Extract(data)
	ext.Attempts = append([]tailor.Attempt{attempt}, ext.Attempts...)
	return ext
}

// readText returns the plain text of every page. The parser panics on some
// malformed inputs, so panics are reported as errors.
func readText(data []byte) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(pageText)
	}

	return sb.String(), nil
}
