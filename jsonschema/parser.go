// Package jsonschema validates analysis backend responses against the
// analysis contract and normalizes them into display cards.
package jsonschema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/fwojciec/tailor"
	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed analysis.schema.json
var analysisSchema string

const schemaURL = "analysis.schema.json"

var _ tailor.AnalysisParser = (*Parser)(nil)

// Parser decodes analysis responses. It accepts a bare object, a
// one-element array wrapping the object, and either form inside a
// Markdown code fence.
type Parser struct {
	schema *jsonschema.Schema
}

// NewParser compiles the embedded analysis schema.
func NewParser() (*Parser, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(schemaURL, strings.NewReader(analysisSchema)); err != nil {
		return nil, fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &Parser{schema: schema}, nil
}

// ParseAnalysis implements tailor.AnalysisParser. Responses that are not
// JSON or do not match the contract fail with EINVALID.
func (p *Parser) ParseAnalysis(data []byte) (*tailor.Analysis, error) {
	var v any
	if err := json.Unmarshal(stripFence(data), &v); err != nil {
		return nil, tailor.Errorf(tailor.EINVALID, "analysis response is not valid JSON: %v", err)
	}

	if arr, ok := v.([]any); ok {
		if len(arr) != 1 {
			return nil, tailor.Errorf(tailor.EINVALID, "analysis response must hold exactly one result, got %d", len(arr))
		}
		v = arr[0]
	}

	if err := p.schema.Validate(v); err != nil {
		return nil, tailor.Errorf(tailor.EINVALID, "analysis response does not match contract: %v", err)
	}

	obj := v.(map[string]any)
	score, err := parseScore(obj["score"])
	if err != nil {
		return nil, err
	}

	a := &tailor.Analysis{
		Skills:   toList(obj["skills"], ",;\n"),
		Summary:  strings.TrimSpace(obj["summary"].(string)),
		Score:    score,
		Projects: toList(obj["projects"], "\n"),
	}
	if s, ok := obj["explanation"].(string); ok {
		a.Explanation = strings.TrimSpace(s)
	}
	return a, nil
}

// stripFence removes a surrounding Markdown code fence, if any.
func stripFence(data []byte) []byte {
	s := strings.TrimSpace(string(data))
	if !strings.HasPrefix(s, "```") {
		return []byte(s)
	}
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	} else {
		s = strings.TrimPrefix(s, "```")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return []byte(strings.TrimSpace(s))
}

func parseScore(v any) (float64, error) {
	var score float64
	switch x := v.(type) {
	case float64:
		score = x
	case string:
		s := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(x), "%"))
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, tailor.Errorf(tailor.EINVALID, "invalid score %q", x)
		}
		score = f
	default:
		return 0, tailor.Errorf(tailor.EINVALID, "invalid score type %T", v)
	}
	return math.Max(0, math.Min(100, score)), nil
}

// toList normalizes a string array or a delimited string into trimmed,
// non-empty items. Any other value yields nil.
func toList(v any, seps string) []string {
	var items []string
	switch x := v.(type) {
	case []any:
		for _, item := range x {
			if s, ok := item.(string); ok {
				items = append(items, s)
			}
		}
	case string:
		items = strings.FieldsFunc(x, func(r rune) bool {
			return strings.ContainsRune(seps, r)
		})
	default:
		return nil
	}

	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
