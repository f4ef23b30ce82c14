// Package style checks the diff against a repository style guide via a
// single AI request. Its output is rendered verbatim in the PR comment,
// never re-summarized.
package style

import (
	"context"
	"os"
	"strings"

	"github.com/mathlib-ci/prsummary/internal/llm"
	"github.com/mathlib-ci/prsummary/internal/logging"
	"github.com/mathlib-ci/prsummary/internal/prompt"
)

// Sentinel is the exact pass response requested from the model.
const Sentinel = "All changes adhere to the style guide."

type Checker struct {
	completer llm.Completer
	template  string
	log       logging.Logger
}

func NewChecker(completer llm.Completer, template string, log logging.Logger) *Checker {
	return &Checker{completer: completer, template: template, log: log}
}

// Check runs the style review for the guide at guidePath. It returns ""
// when the check is skipped: no path configured, or the guide file is
// missing (logged as a warning, matching a repo that removed its guide).
func (c *Checker) Check(ctx context.Context, guidePath, diffText string) (string, error) {
	if guidePath == "" {
		return "", nil
	}
	guide, err := os.ReadFile(guidePath)
	if err != nil {
		if os.IsNotExist(err) {
			c.log.Info("style guide not found, skipping check", "path", guidePath)
			return "", nil
		}
		return "", err
	}

	p, err := prompt.Render(c.template, map[string]string{
		"StyleGuide": string(guide),
		"Diff":       diffText,
	})
	if err != nil {
		return "", err
	}

	out, err := c.completer.Complete(ctx, p)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(out), nil
}
