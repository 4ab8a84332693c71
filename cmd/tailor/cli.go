package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/tailor"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Extractor tailor.Extractor
	Analyzer  tailor.Analyzer
	Reports   tailor.ReportService
	Postings  tailor.JobPostingService
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Log each extraction and analysis to stderr"`

	Extract  ExtractCmd  `cmd:"" help:"Extract readable text from resume files"`
	Analyze  AnalyzeCmd  `cmd:"" help:"Tailor a resume to a job description"`
	Reports  ReportsCmd  `cmd:"" help:"List saved tailoring reports"`
	Show     ShowCmd     `cmd:"" help:"Show a saved tailoring report"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a saved tailoring report"`
	Patterns PatternsCmd `cmd:"" help:"List the pattern groups used for extraction"`
	Job      JobCmd      `cmd:"" help:"Fetch a job posting and print its description"`
	Serve    ServeCmd    `cmd:"" help:"Serve the HTTP API"`
}

// ExtractorFlags configure the extraction pipeline.
type ExtractorFlags struct {
	Structural bool   `help:"Read the PDF text layer before falling back to heuristics"`
	Patterns   string `type:"existingfile" env:"TAILOR_PATTERNS" help:"YAML pattern table replacing the built-in one"`
}

// BackendFlags configure the analysis backend.
type BackendFlags struct {
	Backend    string  `enum:"webhook,gemini,openai" default:"webhook" env:"TAILOR_BACKEND" help:"Analysis backend (${enum})"`
	AnalyzeURL string  `name:"analyze-url" env:"TAILOR_ANALYZE_URL" help:"Endpoint for the webhook backend"`
	Model      string  `env:"TAILOR_MODEL" help:"Model name for the gemini and openai backends"`
	MaxTokens  int     `name:"max-tokens" help:"Refuse prompts above this many tokens (gemini only)"`
	RateLimit  float64 `name:"rate-limit" help:"Maximum webhook requests per second"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	Files       []string `arg:"" type:"path" help:"Resume files"`
	Out         string   `short:"o" help:"Write one text file per resume into this directory"`
	JSON        bool     `help:"Print extractions as JSON"`
	Concurrency int      `short:"c" default:"4" help:"Concurrent extraction limit"`

	ExtractorFlags `embed:""`
}

// AnalyzeCmd is the "analyze" subcommand.
type AnalyzeCmd struct {
	File          string `arg:"" type:"existingfile" help:"Resume file"`
	Job           string `short:"j" xor:"job" help:"Job description text"`
	JobFile       string `name:"job-file" type:"existingfile" xor:"job" help:"File containing the job description"`
	JobURL        string `name:"job-url" xor:"job" help:"Job posting URL to fetch the description from"`
	AllowFallback bool   `name:"allow-fallback" help:"Analyze the placeholder resume when no text can be read"`
	NoSave        bool   `name:"no-save" help:"Do not store the report"`
	JSON          bool   `help:"Print the report as JSON"`

	ExtractorFlags `embed:""`
	BackendFlags   `embed:""`
}

// ReportsCmd is the "reports" subcommand.
type ReportsCmd struct {
	Hash  string `help:"Only list reports for this content hash"`
	Limit int    `short:"n" default:"20" help:"Maximum number of reports"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID   string `arg:"" help:"Report ID"`
	Text bool   `help:"Include the extracted resume text"`
	JSON bool   `help:"Print the report as JSON"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Report ID"`
	Force bool   `help:"Confirm deletion"`
}

// PatternsCmd is the "patterns" subcommand.
type PatternsCmd struct {
	Patterns string `type:"existingfile" env:"TAILOR_PATTERNS" help:"YAML pattern table to inspect instead of the built-in one"`
	Full     bool   `help:"Print every expression"`
}

// JobCmd is the "job" subcommand.
type JobCmd struct {
	URL string `arg:"" help:"Job posting URL"`
}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr          string   `default:":8080" env:"TAILOR_ADDR" help:"Listen address"`
	Origins       []string `env:"TAILOR_CORS_ORIGINS" help:"Allowed CORS origins"`
	AllowFallback bool     `name:"allow-fallback" help:"Analyze the placeholder resume when no text can be read"`

	ExtractorFlags `embed:""`
	BackendFlags   `embed:""`
}
