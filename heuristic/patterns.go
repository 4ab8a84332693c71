package heuristic

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"regexp"
	"slices"
	"strings"
	"sync"

	"github.com/fwojciec/tailor"
	"gopkg.in/yaml.v3"
)

//go:embed patterns.yaml
var defaultPatterns []byte

// PatternGroup is a named, ordered set of compiled patterns.
type PatternGroup struct {
	Name     string
	Patterns []*regexp.Regexp
}

// PatternLibrary holds the vocabulary used by the harvesting strategies.
// A library is immutable once loaded and safe for concurrent use.
type PatternLibrary struct {
	harvest []PatternGroup
	names   []PatternGroup
}

// Harvest returns the groups consulted by the pattern-harvest strategy.
func (l *PatternLibrary) Harvest() []PatternGroup {
	return slices.Clone(l.harvest)
}

// Names returns the groups consulted by the name-harvest strategy.
func (l *PatternLibrary) Names() []PatternGroup {
	return slices.Clone(l.names)
}

type patternTable struct {
	Harvest []patternGroupSpec `yaml:"harvest"`
	Names   []patternGroupSpec `yaml:"names"`
}

type patternGroupSpec struct {
	Name     string   `yaml:"name"`
	Patterns []string `yaml:"patterns"`
}

// LoadPatternLibrary parses a YAML pattern table with "harvest" and "names"
// sections. Unknown keys, unnamed groups, empty groups and patterns that do
// not compile are rejected with EINVALID.
func LoadPatternLibrary(r io.Reader) (*PatternLibrary, error) {
	var table patternTable
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&table); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, tailor.Errorf(tailor.EINVALID, "pattern table is empty")
		}
		return nil, tailor.Errorf(tailor.EINVALID, "parse pattern table: %v", err)
	}

	harvest, err := compileGroups("harvest", table.Harvest)
	if err != nil {
		return nil, err
	}
	names, err := compileGroups("names", table.Names)
	if err != nil {
		return nil, err
	}
	if len(harvest) == 0 && len(names) == 0 {
		return nil, tailor.Errorf(tailor.EINVALID, "pattern table defines no groups")
	}

	return &PatternLibrary{harvest: harvest, names: names}, nil
}

func compileGroups(section string, specs []patternGroupSpec) ([]PatternGroup, error) {
	groups := make([]PatternGroup, 0, len(specs))
	for i, spec := range specs {
		name := strings.TrimSpace(spec.Name)
		if name == "" {
			return nil, tailor.Errorf(tailor.EINVALID, "%s group %d: name required", section, i)
		}
		if len(spec.Patterns) == 0 {
			return nil, tailor.Errorf(tailor.EINVALID, "%s group %q: at least one pattern required", section, name)
		}
		group := PatternGroup{Name: name, Patterns: make([]*regexp.Regexp, 0, len(spec.Patterns))}
		for _, expr := range spec.Patterns {
			if expr == "" {
				return nil, tailor.Errorf(tailor.EINVALID, "%s group %q: empty pattern", section, name)
			}
			re, err := regexp.Compile(expr)
			if err != nil {
				return nil, tailor.Errorf(tailor.EINVALID, "%s group %q: %v", section, name, err)
			}
			group.Patterns = append(group.Patterns, re)
		}
		groups = append(groups, group)
	}
	return groups, nil
}

var defaultLibrary = sync.OnceValue(func() *PatternLibrary {
	lib, err := LoadPatternLibrary(bytes.NewReader(defaultPatterns))
	if err != nil {
		panic(fmt.Sprintf("heuristic: embedded pattern table: %v", err))
	}
	return lib
})

// DefaultPatternLibrary returns the built-in résumé vocabulary.
func DefaultPatternLibrary() *PatternLibrary {
	return defaultLibrary()
}
