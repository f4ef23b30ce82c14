package summarize

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tmc/langchaingo/textsplitter"
	"golang.org/x/sync/errgroup"

	"github.com/mathlib-ci/prsummary/internal/diff"
	"github.com/mathlib-ci/prsummary/internal/llm"
	"github.com/mathlib-ci/prsummary/internal/logging"
	"github.com/mathlib-ci/prsummary/internal/prompt"
)

// mapContextTokens bounds one map-phase request; oversized file diffs
// are split at hunk boundaries and summarized per chunk.
const mapContextTokens = 8192

// FileSummary is one map-phase result. Write-once, keyed by file path,
// consumed only by the reduce phase.
type FileSummary struct {
	FilePath string
	Text     string
	Failed   bool
}

// PRContext carries the pull-request metadata fed to the reduce phase.
type PRContext struct {
	Title string
	Body  string
}

// Result is the orchestrator output. Summary is empty when SummaryErr is
// set; the sorry report is posted regardless. Truncated records that a
// prompt input was cut down to fit its token budget.
type Result struct {
	Summary       string
	SummaryErr    error
	FileSummaries []FileSummary
	Truncated     bool
}

type Orchestrator struct {
	completer llm.Completer
	prompts   prompt.Set
	log       logging.Logger
	workers   int
}

func New(completer llm.Completer, prompts prompt.Set, log logging.Logger, workers int) *Orchestrator {
	if workers <= 0 {
		workers = 1
	}
	return &Orchestrator{completer: completer, prompts: prompts, log: log, workers: workers}
}

// Run executes the map phase over every summarizable file and then the
// reduce phase. With exactly one summarizable file the map phase is
// skipped and the file diff goes straight into the reduce request.
func (o *Orchestrator) Run(ctx context.Context, pr PRContext, files []diff.File) Result {
	eligible := summarizable(files)
	if len(eligible) == 0 {
		return Result{Summary: "No textual changes to summarize."}
	}

	if len(eligible) == 1 {
		return o.runSingleFile(ctx, pr, eligible[0])
	}

	summaries := o.mapPhase(ctx, eligible)
	summary, err := o.reducePhase(ctx, pr, summaries)
	if err != nil {
		o.log.Error(err, "reduce stage failed")
		return Result{SummaryErr: err, FileSummaries: summaries}
	}
	return Result{Summary: strings.TrimSpace(summary), FileSummaries: summaries}
}

// summarizable drops binary entries and entries with no textual hunks
// (rename-only, mode-only, deleted binaries).
func summarizable(files []diff.File) []diff.File {
	var eligible []diff.File
	for _, f := range files {
		if f.Binary || len(f.Hunks) == 0 {
			continue
		}
		eligible = append(eligible, f)
	}
	return eligible
}

// mapPhase issues independent requests through a bounded pool. Each
// result lands in its own pre-sized slot, so there is no shared mutable
// state; g.Wait is the barrier before the reduce phase. A failed request
// yields a visible placeholder summary instead of aborting the run.
func (o *Orchestrator) mapPhase(ctx context.Context, files []diff.File) []FileSummary {
	summaries := make([]FileSummary, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, f := range files {
		g.Go(func() error {
			text, err := o.summarizeFile(gctx, f)
			if err != nil {
				o.log.Error(err, "map stage failed", "file", f.Path())
				summaries[i] = FileSummary{
					FilePath: f.Path(),
					Text:     fmt.Sprintf("summary could not be generated (%v)", err),
					Failed:   true,
				}
				return nil
			}
			summaries[i] = FileSummary{FilePath: f.Path(), Text: strings.TrimSpace(text)}
			return nil
		})
	}
	_ = g.Wait()

	sort.Slice(summaries, func(a, b int) bool { return summaries[a].FilePath < summaries[b].FilePath })
	return summaries
}

func (o *Orchestrator) summarizeFile(ctx context.Context, f diff.File) (string, error) {
	chunks := splitOversized(f.Raw, f.Path())
	parts := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		p, err := prompt.Render(o.prompts.SummarizeFile, map[string]string{
			"FilePath": f.Path(),
			"FileDiff": chunk,
		})
		if err != nil {
			return "", err
		}
		out, err := o.completer.Complete(ctx, p)
		if err != nil {
			return "", err
		}
		parts = append(parts, strings.TrimSpace(out))
	}
	return strings.Join(parts, " "), nil
}

// splitOversized returns the diff text as a single chunk when it fits
// the map budget, or hunk-boundary chunks annotated with their position.
func splitOversized(raw, path string) []string {
	if estimateTokens(raw) <= mapContextTokens {
		return []string{raw}
	}
	splitter := textsplitter.NewRecursiveCharacter(
		textsplitter.WithSeparators([]string{"\n@@", "\ndiff --git", "\n", ""}),
		textsplitter.WithChunkSize(mapContextTokens*approxCharsPerToken*3/4),
		textsplitter.WithChunkOverlap(0),
	)
	parts, err := splitter.SplitText(raw)
	if err != nil || len(parts) == 0 {
		return []string{raw}
	}
	chunks := make([]string, len(parts))
	for i, part := range parts {
		chunks[i] = fmt.Sprintf("File: %s\nChunk: %d/%d\n\n%s", path, i+1, len(parts), strings.TrimSpace(part))
	}
	return chunks
}

func (o *Orchestrator) reducePhase(ctx context.Context, pr PRContext, summaries []FileSummary) (string, error) {
	lines := make([]string, len(summaries))
	for i, s := range summaries {
		lines[i] = fmt.Sprintf("- **%s**: %s", s.FilePath, s.Text)
	}
	p, err := prompt.Render(o.prompts.Synthesize, map[string]string{
		"PRTitle":          pr.Title,
		"PRBody":           pr.Body,
		"PerFileSummaries": strings.Join(lines, "\n"),
	})
	if err != nil {
		return "", err
	}
	return o.completer.Complete(ctx, p)
}

// runSingleFile saves one round trip: zero map requests, one reduce
// request carrying the file diff directly.
func (o *Orchestrator) runSingleFile(ctx context.Context, pr PRContext, f diff.File) Result {
	fileDiff, truncated := TruncateDiff(f.Raw, mapContextTokens)
	if truncated {
		o.log.Info("single-file diff truncated for prompt", "file", f.Path())
	}
	p, err := prompt.Render(o.prompts.SynthesizeSingleFile, map[string]string{
		"PRTitle":  pr.Title,
		"PRBody":   pr.Body,
		"FilePath": f.Path(),
		"FileDiff": fileDiff,
	})
	if err != nil {
		return Result{SummaryErr: err, Truncated: truncated}
	}
	out, err := o.completer.Complete(ctx, p)
	if err != nil {
		o.log.Error(err, "reduce stage failed", "file", f.Path())
		return Result{SummaryErr: err, Truncated: truncated}
	}
	return Result{Summary: strings.TrimSpace(out), Truncated: truncated}
}
