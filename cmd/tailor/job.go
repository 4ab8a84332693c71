package main

import (
	"fmt"

	"github.com/fwojciec/tailor"
)

// Run executes the job command.
func (c *JobCmd) Run(deps *Dependencies) error {
	posting, err := deps.Postings.FetchJobPosting(deps.Ctx, c.URL)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", tailor.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, posting.FullDescription())
	return nil
}
