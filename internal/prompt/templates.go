package prompt

import (
	"os"
	"path/filepath"
)

const summarizeFileTemplate = `You are a code analysis tool summarizing one file of a pull request diff.

File path: {{.FilePath}}

Rules:
- Report only facts directly visible in the diff (lines starting with '+' or '-').
- Never speculate or use words like "likely", "suggests", "appears", or "possibly".
- Respond with exactly one sentence describing the change to this file.

<diff>
{{.FileDiff}}
</diff>`

const synthesizeTemplate = `You are a technical summarizer. Analyze the provided pull request context and produce a factual, concise summary of the changes.

## Rules:
1.  **Extract, Don't Infer:** Only report changes explicitly mentioned in the context. Do not invent goals or risks.
2.  **Be Direct and Factual:** Use clear, technical language. Avoid buzzwords.
3.  Respond with one short paragraph followed by a bulleted list of the most significant modifications.

**PR Title:**
{{.PRTitle}}

**PR Description:**
{{.PRBody}}

**Summaries of Per-File Changes:**
{{.PerFileSummaries}}`

const synthesizeSingleFileTemplate = `You are a technical summarizer. Analyze the provided pull request context and produce a factual, concise summary of the change to its single modified file.

## Rules:
1.  **Extract, Don't Infer:** Only report changes explicitly visible in the diff. Do not invent goals or risks.
2.  **Be Direct and Factual:** Use clear, technical language. Avoid buzzwords.
3.  Respond with one short paragraph.

**PR Title:**
{{.PRTitle}}

**PR Description:**
{{.PRBody}}

**File path:** {{.FilePath}}

<diff>
{{.FileDiff}}
</diff>`

const checkStyleTemplate = `You are a style reviewer. Check every changed line in the diff below against the style guide.

If all changes adhere to the guide, respond with exactly:
All changes adhere to the style guide.

Otherwise respond with an ordered list where each item quotes the offending line(s) and the rule being violated, verbatim. Do not paraphrase either.

**Style guide:**
{{.StyleGuide}}

<diff>
{{.Diff}}
</diff>`

// Set holds the four prompt templates used for one run.
type Set struct {
	SummarizeFile        string
	Synthesize           string
	SynthesizeSingleFile string
	CheckStyle           string
}

// Load returns the built-in templates, with any present file in dir
// overriding its counterpart. An empty dir keeps all built-ins.
func Load(dir string) (Set, error) {
	set := Set{
		SummarizeFile:        summarizeFileTemplate,
		Synthesize:           synthesizeTemplate,
		SynthesizeSingleFile: synthesizeSingleFileTemplate,
		CheckStyle:           checkStyleTemplate,
	}
	if dir == "" {
		return set, nil
	}

	overrides := []struct {
		name   string
		target *string
	}{
		{"summarize_file.txt", &set.SummarizeFile},
		{"synthesize_summary.md", &set.Synthesize},
		{"synthesize_single_file.md", &set.SynthesizeSingleFile},
		{"check_style.md", &set.CheckStyle},
	}
	for _, o := range overrides {
		data, err := os.ReadFile(filepath.Join(dir, o.name))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return Set{}, err
		}
		*o.target = string(data)
	}
	return set, nil
}
