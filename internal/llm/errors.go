package llm

import (
	"context"
	"errors"
	"fmt"
)

type FailureCategory string

const (
	FailureCategoryTimeout FailureCategory = "timeout"
	FailureCategoryError   FailureCategory = "error"
)

// CompletionError wraps a failed AI completion request. Map-phase
// callers recover from it locally; the reduce phase treats it as fatal
// to the summary text.
type CompletionError struct {
	Model    string
	Category FailureCategory
	Err      error
}

func (e *CompletionError) Error() string {
	return fmt.Sprintf("completion request to %s failed (%s): %v", e.Model, e.Category, e.Err)
}

func (e *CompletionError) Unwrap() error {
	return e.Err
}

// Categorize distinguishes timeouts from other request failures.
func Categorize(err error) FailureCategory {
	if errors.Is(err, context.DeadlineExceeded) {
		return FailureCategoryTimeout
	}
	return FailureCategoryError
}
