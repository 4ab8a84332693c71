package main

import (
	"os"
	"os/signal"
	"syscall"

	tailorhttp "github.com/fwojciec/tailor/http"
	"github.com/fwojciec/tailor/tailoring"
)

// Run executes the serve command.
func (c *ServeCmd) Run(deps *Dependencies) error {
	ctx, stop := signal.NotifyContext(deps.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := &tailorhttp.Server{
		Addr:           c.Addr,
		AllowedOrigins: c.Origins,
		Logger:         deps.Logger,
		Extractor:      deps.Extractor,
		ReportService:  deps.Reports,
		JobPostings:    deps.Postings,
	}
	if deps.Analyzer != nil {
		s.TailorService = &tailoring.Tailorer{
			Extractor:     deps.Extractor,
			Analyzer:      deps.Analyzer,
			Reports:       deps.Reports,
			AllowFallback: c.AllowFallback,
		}
	}

	return s.ListenAndServe(ctx)
}
