// Package main provides a terminal client for the fact-check API.
// Usage: factcheck "claim" [--lang en] [--compose news|tweet] [--output json]
//
//	factcheck --review "article text"
//	factcheck --review --url https://example.com/story
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"factcheck-web/internal/config"
	"factcheck-web/internal/domain/entity"
	"factcheck-web/internal/i18n"
	"factcheck-web/internal/infra/factcheckapi"
	"factcheck-web/internal/infra/fetcher"
	"factcheck-web/internal/observability/logging"
	fcUC "factcheck-web/internal/usecase/factcheck"
)

// options are the parsed command-line flags.
type options struct {
	lang    i18n.Language
	compose string
	output  string
	review  bool
	url     string
	timeout time.Duration
	input   string
}

func main() {
	_ = godotenv.Load()

	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		os.Exit(2)
	}

	logger := logging.NewTextLogger(os.Stderr)
	slog.SetDefault(logger)

	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		fmt.Fprintf(os.Stderr, "Error: Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	svc := newService(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), opts.timeout)
	defer cancel()

	st := newStyles(lipgloss.NewRenderer(os.Stdout))
	if err := run(ctx, svc, opts, st, os.Stdout); err != nil {
		logger.Debug("command failed", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, st.Error.Render(fcUC.UserMessage(err, opts.lang)))
		os.Exit(1)
	}
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("factcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		opts options
		lang string
	)
	fs.StringVar(&lang, "lang", "arabic", "Output language: arabic, english, ar or en")
	fs.StringVar(&opts.compose, "compose", "", "Also compose from the verdict: news or tweet")
	fs.StringVar(&opts.output, "output", "text", "Output format: text or json")
	fs.BoolVar(&opts.review, "review", false, "Review an article instead of verifying a claim")
	fs.StringVar(&opts.url, "url", "", "Article URL to fetch and review (with --review)")
	fs.DurationVar(&opts.timeout, "timeout", 3*time.Minute, "Overall deadline")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: factcheck \"claim\" [--lang en] [--compose news|tweet] [--output json]")
		fmt.Fprintln(stderr, "       factcheck --review \"article text\" | --review --url URL")
		fmt.Fprintln(stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return opts, err
	}

	l, ok := i18n.Parse(lang)
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown language %q\n", lang)
		return opts, errors.New("invalid --lang")
	}
	opts.lang = l

	switch opts.compose {
	case "", "news", "tweet":
	default:
		fmt.Fprintf(stderr, "Error: --compose must be news or tweet, got %q\n", opts.compose)
		return opts, errors.New("invalid --compose")
	}
	if opts.output != "text" && opts.output != "json" {
		fmt.Fprintf(stderr, "Error: --output must be text or json, got %q\n", opts.output)
		return opts, errors.New("invalid --output")
	}

	opts.input = strings.Join(fs.Args(), " ")
	if opts.input == "" && !(opts.review && opts.url != "") {
		fs.Usage()
		return opts, errors.New("missing input")
	}
	return opts, nil
}

func newService(cfg *config.Config) *fcUC.Service {
	client := factcheckapi.New(factcheckapi.Config{
		BaseURL: cfg.FactCheck.BaseURL,
		Timeout: cfg.FactCheck.Timeout,
	})

	fetchCfg := fetcher.DefaultConfig()
	fetchCfg.Enabled = cfg.Fetcher.Enabled
	fetchCfg.Timeout = cfg.Fetcher.Timeout
	fetchCfg.MaxBodySize = cfg.Fetcher.MaxBodySize
	fetchCfg.MaxRedirects = cfg.Fetcher.MaxRedirects
	fetchCfg.DenyPrivateIPs = cfg.Fetcher.DenyPrivateIPs

	return &fcUC.Service{API: client, Fetcher: fetcher.NewReadabilityFetcher(fetchCfg)}
}

// service is the part of the use case the CLI drives.
type service interface {
	Verify(ctx context.Context, query string, lang i18n.Language) (*entity.VerificationResult, error)
	ComposeNews(ctx context.Context, claim string, result *entity.VerificationResult, lang i18n.Language) (*entity.VerificationResult, error)
	ComposePost(ctx context.Context, claim string, result *entity.VerificationResult, lang i18n.Language) (*entity.VerificationResult, error)
	Review(ctx context.Context, in fcUC.ReviewInput) (*entity.ReviewResult, error)
}

func run(ctx context.Context, svc service, opts options, st styles, out io.Writer) error {
	if opts.review {
		res, err := svc.Review(ctx, fcUC.ReviewInput{NewsText: opts.input, NewsURL: opts.url})
		if err != nil {
			return err
		}
		if opts.output == "json" {
			return writeJSON(out, res)
		}
		_, err = io.WriteString(out, renderReview(st, res, opts.lang))
		return err
	}

	result, err := svc.Verify(ctx, opts.input, opts.lang)
	if err != nil {
		return err
	}

	// A failed compose still prints the verdict.
	var composeErr error
	switch opts.compose {
	case "news":
		if merged, err := svc.ComposeNews(ctx, opts.input, result, opts.lang); err == nil {
			result = merged
		} else {
			composeErr = err
		}
	case "tweet":
		if merged, err := svc.ComposePost(ctx, opts.input, result, opts.lang); err == nil {
			result = merged
		} else {
			composeErr = err
		}
	}

	if opts.output == "json" {
		err = writeJSON(out, result)
	} else {
		_, err = io.WriteString(out, renderResult(st, result, opts.lang))
	}
	return errors.Join(composeErr, err)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
