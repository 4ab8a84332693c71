package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/tailor"
	"github.com/fwojciec/tailor/gemini"
	"github.com/fwojciec/tailor/goquery"
	"github.com/fwojciec/tailor/heuristic"
	"github.com/fwojciec/tailor/htmltomarkdown"
	tailorhttp "github.com/fwojciec/tailor/http"
	"github.com/fwojciec/tailor/jsonschema"
	"github.com/fwojciec/tailor/openai"
	"github.com/fwojciec/tailor/pdf"
	tailorslog "github.com/fwojciec/tailor/slog"
	"github.com/fwojciec/tailor/sqlite"
	"github.com/fwojciec/tailor/tailoring"
	"github.com/fwojciec/tailor/trafilatura"
	"github.com/joho/godotenv"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	// A missing .env file is fine.
	_ = godotenv.Load()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Services for end-to-end testing.
	ReportService tailor.ReportService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("tailor"),
		kong.Description("Extract resume text and tailor it to job descriptions."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'tailor --help' to see available commands")
	}

	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd := strings.Fields(kongCtx.Command())[0]

	level := slog.LevelWarn
	if cli.Verbose || cmd == "serve" {
		level = slog.LevelInfo
	}
	deps.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire the extraction pipeline for commands that read documents.
	var extractorFlags *ExtractorFlags
	switch cmd {
	case "extract":
		extractorFlags = &cli.Extract.ExtractorFlags
	case "analyze":
		extractorFlags = &cli.Analyze.ExtractorFlags
	case "serve":
		extractorFlags = &cli.Serve.ExtractorFlags
	}
	if extractorFlags != nil {
		extractor, err := newExtractor(*extractorFlags)
		if err != nil {
			fmt.Fprintf(stderr, "error: %s\n", tailor.ErrorMessage(err))
			return err
		}
		deps.Extractor = tailorslog.NewLoggingExtractor(extractor, deps.Logger)
	}

	// Wire the analysis backend.
	switch cmd {
	case "analyze":
		analyzer, err := newAnalyzer(ctx, cli.Analyze.BackendFlags, stderr)
		if err != nil {
			return err
		}
		deps.Analyzer = tailorslog.NewLoggingAnalyzer(analyzer, deps.Logger)
	case "serve":
		analyzer, err := newAnalyzer(ctx, cli.Serve.BackendFlags, stderr)
		if err != nil {
			// The server still extracts without a backend.
			deps.Logger.Warn("tailoring disabled", "err", err)
		} else {
			deps.Analyzer = tailorslog.NewLoggingAnalyzer(analyzer, deps.Logger)
		}
	}

	// Wire job posting retrieval.
	if cmd == "analyze" || cmd == "serve" || cmd == "job" {
		deps.Postings = newPostingFetcher(deps.Logger)
	}

	// Open the database for commands that read or write reports.
	needsDB := cmd == "reports" || cmd == "show" || cmd == "delete" || cmd == "serve" ||
		(cmd == "analyze" && !cli.Analyze.NoSave)
	if needsDB {
		m.DB = sqlite.NewDB(m.DBPath)
		if err := m.DB.Open(); err != nil {
			fmt.Fprintf(stderr, "Hint: Set TAILOR_DB to use a different database path\n")
			return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
		}
		defer m.Close()

		m.ReportService = sqlite.NewReportService(m.DB)
		deps.Reports = m.ReportService
	}

	return kongCtx.Run(deps)
}

// newExtractor builds the extraction pipeline: the heuristic chain,
// optionally behind the PDF text layer reader.
func newExtractor(flags ExtractorFlags) (tailor.Extractor, error) {
	var opts []heuristic.Option
	if flags.Patterns != "" {
		lib, err := loadPatterns(flags.Patterns)
		if err != nil {
			return nil, err
		}
		opts = append(opts, heuristic.WithPatternLibrary(lib))
	}

	var extractor tailor.Extractor = heuristic.NewExtractor(opts...)
	if flags.Structural {
		extractor = pdf.NewExtractor(extractor)
	}
	return extractor, nil
}

func loadPatterns(path string) (*heuristic.PatternLibrary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lib, err := heuristic.LoadPatternLibrary(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}

// newPostingFetcher builds the job posting pipeline: JSON-LD first, then
// boilerplate removal.
func newPostingFetcher(logger *slog.Logger) *tailoring.PostingFetcher {
	return &tailoring.PostingFetcher{
		Fetcher: tailorslog.NewLoggingFetcher(tailorhttp.NewFetcher(), logger),
		Extractors: []tailor.ContentExtractor{
			goquery.NewJSONLDExtractor(),
			trafilatura.NewExtractor(),
		},
		Converter: htmltomarkdown.NewConverter(),
	}
}

// newAnalyzer builds the analysis backend selected by flags.
func newAnalyzer(ctx context.Context, flags BackendFlags, stderr io.Writer) (tailor.Analyzer, error) {
	parser, err := jsonschema.NewParser()
	if err != nil {
		return nil, fmt.Errorf("failed to compile analysis schema: %w", err)
	}

	switch flags.Backend {
	case "gemini":
		apiKey := os.Getenv("GEMINI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "GEMINI_API_KEY environment variable not set. Get an API key at https://aistudio.google.com/apikey")
			return nil, fmt.Errorf("GEMINI_API_KEY not set. Get a key at https://aistudio.google.com/apikey")
		}

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  apiKey,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Check your GEMINI_API_KEY is valid")
			return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
		}

		model := flags.Model
		if model == "" {
			model = gemini.DefaultModel
		}
		opts := []gemini.Option{gemini.WithModel(model)}
		if flags.MaxTokens > 0 {
			counter, err := gemini.NewTokenCounter(model)
			if err != nil {
				return nil, fmt.Errorf("failed to create token counter: %w", err)
			}
			opts = append(opts, gemini.WithTokenLimit(counter, flags.MaxTokens))
		}
		return gemini.NewAnalyzer(client, parser, opts...), nil

	case "openai":
		apiKey := os.Getenv("OPENAI_API_KEY")
		if apiKey == "" {
			fmt.Fprintln(stderr, "OPENAI_API_KEY environment variable not set")
			return nil, fmt.Errorf("OPENAI_API_KEY not set")
		}
		return &openai.Analyzer{
			Client: openai.NewClient(apiKey, os.Getenv("OPENAI_BASE_URL")),
			Parser: parser,
			Model:  flags.Model,
		}, nil

	default:
		if flags.AnalyzeURL == "" {
			fmt.Fprintln(stderr, "Hint: Set TAILOR_ANALYZE_URL or pass --analyze-url, or choose --backend gemini|openai")
			return nil, tailor.Errorf(tailor.EINVALID, "analysis endpoint not configured")
		}
		var opts []tailorhttp.Option
		if flags.RateLimit > 0 {
			opts = append(opts, tailorhttp.WithRateLimit(flags.RateLimit))
		}
		return tailorhttp.NewAnalyzer(flags.AnalyzeURL, parser, opts...), nil
	}
}

func defaultDBPath() string {
	if path := os.Getenv("TAILOR_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "tailor.db"
	}
	dir := filepath.Join(home, ".tailor")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "tailor.db")
}
