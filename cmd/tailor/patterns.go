package main

import (
	"fmt"

	"github.com/fwojciec/tailor"
	"github.com/fwojciec/tailor/heuristic"
)

// Run executes the patterns command.
func (c *PatternsCmd) Run(deps *Dependencies) error {
	lib := heuristic.DefaultPatternLibrary()
	if c.Patterns != "" {
		var err error
		if lib, err = loadPatterns(c.Patterns); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", tailor.ErrorMessage(err))
			return err
		}
	}

	c.printSection(deps, "harvest", lib.Harvest())
	fmt.Fprintln(deps.Stdout)
	c.printSection(deps, "names", lib.Names())
	return nil
}

func (c *PatternsCmd) printSection(deps *Dependencies, title string, groups []heuristic.PatternGroup) {
	fmt.Fprintf(deps.Stdout, "%s:\n", title)
	for _, g := range groups {
		fmt.Fprintf(deps.Stdout, "  %-14s %d patterns\n", g.Name, len(g.Patterns))
		if c.Full {
			for _, re := range g.Patterns {
				fmt.Fprintf(deps.Stdout, "      %s\n", re)
			}
		}
	}
}
