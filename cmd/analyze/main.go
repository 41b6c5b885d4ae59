package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"job-recommender/internal/advisor"
	"job-recommender/internal/analyses"
	"job-recommender/internal/extract"
	"job-recommender/internal/jobsearch"
	"job-recommender/internal/llm"
	"job-recommender/internal/llm/gemini"
	"job-recommender/internal/shared/config"
	"job-recommender/internal/shared/telemetry"
)

// deps are the collaborators run needs; newDeps builds the real ones.
type deps struct {
	extract analyses.ExtractFunc
	llm     llm.Generator
	jobs    advisor.JobSearcher
}

func newDeps(cfg config.Config, model string) deps {
	return deps{
		extract: extract.ExtractTextFromBytes,
		llm: llm.NewLazy(gemini.Factory(gemini.Options{
			Model:       model,
			Temperature: llm.Temperature(cfg.GeminiTemperature),
			BaseURL:     cfg.GeminiBaseURL,
		})),
		jobs: jobsearch.NewClient(jobsearch.Options{BaseURL: cfg.ApifyBaseURL}),
	}
}

func main() {
	cfg := config.Load()
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Args[1:], os.Stdout, os.Stderr, nil); err != nil {
		exitErr(err.Error())
	}
}

// run executes the pipeline. Logs go to stderr so stdout carries only the report.
// A nil d builds the production dependencies from cfg and the -model flag.
func run(ctx context.Context, cfg config.Config, args []string, stdout, stderr io.Writer, d *deps) error {
	defer telemetry.SetOutput(stderr)()

	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	resumePath := fs.String("resume", "", "Path to resume PDF")
	recommend := fs.Bool("recommend", false, "Also search LinkedIn jobs for the resume")
	location := fs.String("location", cfg.JobSearchLocation, "Job search location")
	rows := fs.Int("rows", cfg.JobSearchRows, "Maximum jobs to request")
	model := fs.String("model", cfg.GeminiModel, "Gemini model")
	asJSON := fs.Bool("json", false, "Print JSON instead of text")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if strings.TrimSpace(*resumePath) == "" {
		return errors.New("resume path is required")
	}
	data, err := os.ReadFile(*resumePath)
	if err != nil {
		return fmt.Errorf("read resume: %w", err)
	}

	if d == nil {
		built := newDeps(cfg, *model)
		d = &built
	}
	resumeText, err := d.extract(ctx, data, "application/pdf", filepath.Base(*resumePath))
	if err != nil {
		return fmt.Errorf("extract resume text: %w", err)
	}

	svc := &advisor.Service{LLM: d.llm, Jobs: d.jobs}
	analysis, err := svc.Analyze(ctx, resumeText)
	var cfgErr *config.ConfigurationError
	if errors.As(err, &cfgErr) {
		return cfgErr
	}

	out := report{}
	for _, sec := range analysis.Sections() {
		out.Sections = append(out.Sections, sectionReport{Title: sec.Step.Title(), Text: sec.Text, Error: errString(sec.Err)})
	}

	if *recommend {
		summary, ok := analysis.SummaryText()
		if !ok {
			return errors.New("job recommendations need a resume summary")
		}
		rec, err := svc.Recommend(ctx, summary, jobsearch.Query{Location: *location, Rows: *rows})
		if err != nil {
			return fmt.Errorf("recommend: %w", err)
		}
		view := analyses.NewRecommendationView(rec)
		out.Recommendation = &view
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("write stdout: %w", err)
		}
		return nil
	}
	writeText(stdout, out)
	return nil
}

type sectionReport struct {
	Title string `json:"title"`
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

type report struct {
	Sections       []sectionReport              `json:"sections"`
	Recommendation *analyses.RecommendationView `json:"recommendation,omitempty"`
}

func writeText(w io.Writer, out report) {
	for _, sec := range out.Sections {
		fmt.Fprintf(w, "## %s\n", sec.Title)
		if sec.Error != "" {
			fmt.Fprintf(w, "error: %s\n\n", sec.Error)
			continue
		}
		fmt.Fprintf(w, "%s\n\n", sec.Text)
	}
	rec := out.Recommendation
	if rec == nil {
		return
	}
	fmt.Fprintf(w, "## Top LinkedIn Jobs (%s, %s)\n", rec.Keyword, rec.Location)
	if rec.Warning != "" {
		fmt.Fprintf(w, "warning: %s\n", rec.Warning)
	}
	if rec.Empty {
		fmt.Fprintln(w, "No LinkedIn jobs found.")
		return
	}
	for _, job := range rec.Jobs {
		fmt.Fprintf(w, "**%s** at *%s*\n  %s\n  %s\n", job.Title, job.CompanyName, job.Location, job.Link)
	}
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}

func exitErr(msg string) {
	_, _ = fmt.Fprintln(os.Stderr, msg)
	os.Exit(1)
}
