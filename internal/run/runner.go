package run

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mathlib-ci/prsummary/internal/config"
	"github.com/mathlib-ci/prsummary/internal/diff"
	"github.com/mathlib-ci/prsummary/internal/githubapi"
	"github.com/mathlib-ci/prsummary/internal/llm"
	"github.com/mathlib-ci/prsummary/internal/logging"
	"github.com/mathlib-ci/prsummary/internal/prompt"
	"github.com/mathlib-ci/prsummary/internal/report"
	"github.com/mathlib-ci/prsummary/internal/sorry"
	"github.com/mathlib-ci/prsummary/internal/style"
	"github.com/mathlib-ci/prsummary/internal/summarize"
)

// Options is the immutable per-run configuration, built once at start
// and passed to every component. Nothing reads config ambiently after
// this point.
type Options struct {
	DiffPath        string
	GitHubToken     string
	Repository      string
	PRNumber        int
	EventPath       string
	LLM             llm.Config
	LeanKeywords    []string
	StyleGuidePath  string
	PromptDir       string
	MaxDiffTokens   int
	MapWorkers      int
	SorryIssueLabel string
}

func OptionsFromConfig() Options {
	return Options{
		DiffPath:        config.DiffPath(),
		GitHubToken:     config.GitHubToken(),
		Repository:      config.GitHubRepository(),
		PRNumber:        config.PRNumber(),
		EventPath:       config.EventPath(),
		LLM: llm.Config{
			Provider:     config.LLMProvider(),
			Model:        config.LLMModel(),
			GeminiAPIKey: config.GeminiAPIKey(),
			OllamaURL:    config.OllamaURL(),
			CallTimeout:  time.Duration(config.LLMTimeoutSeconds()) * time.Second,
		},
		LeanKeywords:    config.LeanKeywords(),
		StyleGuidePath:  config.StyleGuidePath(),
		PromptDir:       config.PromptDir(),
		MaxDiffTokens:   config.MaxDiffTokens(),
		MapWorkers:      config.MapWorkers(),
		SorryIssueLabel: config.SorryIssueLabel(),
	}
}

type Runner struct {
	opts Options
	log  logging.Logger
	now  func() time.Time
}

func New(opts Options, log logging.Logger) *Runner {
	return &Runner{opts: opts, log: log, now: time.Now}
}

// Run executes one analysis pass: parse the diff, classify sorries,
// summarize via the AI collaborator, and post (or print) the report.
// Stages after parsing run strictly sequentially; only map-phase AI
// requests fan out.
func (r *Runner) Run(ctx context.Context) error {
	rawDiff, err := os.ReadFile(r.opts.DiffPath)
	if err != nil {
		return fmt.Errorf("read diff %s: %w", r.opts.DiffPath, err)
	}

	files, err := diff.Parse(string(rawDiff))
	if err != nil {
		// A desynchronized parse would corrupt every downstream
		// line-number computation, so this aborts the run.
		return err
	}
	stats := diff.CollectStats(files)
	r.log.Info("parsed diff", "files", stats.FilesChanged, "added", stats.LinesAdded, "removed", stats.LinesRemoved)

	scanner := sorry.NewScanner(r.opts.LeanKeywords)
	sorries := sorry.Analyze(files, scanner)
	r.log.Info("sorry analysis",
		"added", sorries.Total.Added,
		"removed", sorries.Total.Removed,
		"shifted", sorries.Total.Shifted,
		"unchanged", sorries.Total.Unchanged,
	)

	prompts, err := prompt.Load(r.opts.PromptDir)
	if err != nil {
		return fmt.Errorf("load prompt templates: %w", err)
	}
	completer, err := llm.NewClient(ctx, r.opts.LLM)
	if err != nil {
		return err
	}

	gh, pr, err := r.githubContext(ctx)
	if err != nil {
		return err
	}

	aiDiff, truncated := summarize.TruncateDiff(string(rawDiff), r.opts.MaxDiffTokens)
	if truncated {
		r.log.Info("diff truncated for AI input", "max_tokens", r.opts.MaxDiffTokens)
	}

	styleReport := ""
	if r.opts.StyleGuidePath != "" {
		checker := style.NewChecker(completer, prompts.CheckStyle, r.log.WithName("style"))
		styleReport, err = checker.Check(ctx, r.opts.StyleGuidePath, aiDiff)
		if err != nil {
			// The style section is optional; its failure never costs
			// the sorry report.
			r.log.Error(err, "style check failed, omitting section")
			styleReport = ""
		}
	}

	orchestrator := summarize.New(completer, prompts, r.log.WithName("summarize"), r.opts.MapWorkers)
	result := orchestrator.Run(ctx, summarize.PRContext{Title: pr.Title, Body: pr.Body}, files)

	issueRefs := r.lookupIssueRefs(ctx, gh, sorries)

	summaryErr := ""
	if result.SummaryErr != nil {
		summaryErr = result.SummaryErr.Error()
	}
	body := report.Assemble(report.Input{
		Summary:       result.Summary,
		SummaryErr:    summaryErr,
		Stats:         stats,
		Sorries:       sorries,
		StyleReport:   styleReport,
		FileSummaries: result.FileSummaries,
		Truncated:     truncated || result.Truncated,
		IssueRefs:     issueRefs,
		GeneratedAt:   r.now(),
	})

	if gh == nil || pr.Number == 0 {
		r.log.Info("no GitHub context, printing report instead of posting")
		fmt.Println(body)
	} else if err := gh.UpsertComment(ctx, pr.Number, report.Marker, body); err != nil {
		// The computed report would be lost, so log it in full.
		r.log.Error(err, "posting failed, dumping report", "body", body)
		return err
	}

	if result.SummaryErr != nil {
		return fmt.Errorf("summary generation failed: %w", result.SummaryErr)
	}
	return nil
}

// githubContext resolves the PR metadata. The Actions event payload is
// the default source; explicit configuration overrides it, and missing
// title/body are fetched from the API when a client is available.
func (r *Runner) githubContext(ctx context.Context) (*githubapi.Client, githubapi.PRMetadata, error) {
	var pr githubapi.PRMetadata

	if r.opts.EventPath != "" {
		meta, err := githubapi.ReadEvent(r.opts.EventPath)
		if err != nil {
			r.log.Error(err, "could not read event payload", "path", r.opts.EventPath)
		} else {
			pr = meta
		}
	}
	if r.opts.PRNumber != 0 {
		pr.Number = r.opts.PRNumber
	}

	if r.opts.Repository == "" {
		return nil, pr, nil
	}
	gh, err := githubapi.NewClient(r.opts.GitHubToken, r.opts.Repository, r.log.WithName("github"))
	if err != nil {
		return nil, pr, err
	}
	if pr.Number != 0 && pr.Title == "" {
		meta, err := gh.PR(ctx, pr.Number)
		if err != nil {
			return nil, pr, err
		}
		pr = meta
	}
	return gh, pr, nil
}

// lookupIssueRefs cross-links shifted sorries to open tracking issues.
// Lookup failures only cost the links, never the report.
func (r *Runner) lookupIssueRefs(ctx context.Context, gh *githubapi.Client, sorries sorry.Report) map[string]int {
	shifted := sorries.ByStatus(sorry.StatusShifted)
	if gh == nil || len(shifted) == 0 {
		return nil
	}
	ids := make([]string, 0, len(shifted))
	for _, rec := range shifted {
		if rec.DeclName != "" {
			ids = append(ids, report.TrackerID(rec))
		}
	}
	if len(ids) == 0 {
		return nil
	}
	issues, err := gh.FindTrackedIssues(ctx, r.opts.SorryIssueLabel)
	if err != nil {
		r.log.Error(err, "could not fetch tracking issues")
		return nil
	}
	return githubapi.IssueRefs(issues, ids)
}
