package summarize

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const approxCharsPerToken = 4

var (
	tokenEncoderOnce sync.Once
	tokenEncoder     *tiktoken.Tiktoken

	estimateTokensFunc = defaultEstimateTokens
)

func estimateTokens(text string) int {
	return estimateTokensFunc(text)
}

func defaultEstimateTokens(text string) int {
	enc := getTokenEncoder()
	if enc != nil {
		tokens := enc.Encode(text, nil, nil)
		if len(tokens) > 0 {
			return len(tokens)
		}
	}
	return max(1, len(text)/approxCharsPerToken)
}

func getTokenEncoder() *tiktoken.Tiktoken {
	tokenEncoderOnce.Do(func() {
		enc, err := tiktoken.EncodingForModel("gpt-4o-mini")
		if err != nil {
			enc, _ = tiktoken.GetEncoding("cl100k_base")
		}
		tokenEncoder = enc
	})
	return tokenEncoder
}

// TruncateDiff caps the diff text fed to the AI collaborator at roughly
// maxTokens, cutting at a line boundary. The sorry analysis always runs
// on the full diff; only prompt inputs are truncated.
func TruncateDiff(text string, maxTokens int) (string, bool) {
	estimate := estimateTokens(text)
	if maxTokens <= 0 || estimate <= maxTokens {
		return text, false
	}
	budget := len(text) / estimate * maxTokens
	cut := strings.LastIndexByte(text[:budget], '\n')
	if cut <= 0 {
		cut = budget
	}
	return text[:cut], true
}
