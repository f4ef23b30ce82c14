package githubapi

import (
	"fmt"
	"os"

	"github.com/tidwall/gjson"
)

// ReadEvent extracts the pull-request metadata from a GitHub Actions
// event payload (the file at GITHUB_EVENT_PATH). Explicit configuration
// takes precedence over the payload.
func ReadEvent(path string) (PRMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PRMetadata{}, fmt.Errorf("read event payload: %w", err)
	}
	return parseEvent(data)
}

func parseEvent(data []byte) (PRMetadata, error) {
	pr := gjson.GetBytes(data, "pull_request")
	if !pr.Exists() {
		return PRMetadata{}, fmt.Errorf("event payload has no pull_request field")
	}
	number := pr.Get("number")
	if !number.Exists() {
		return PRMetadata{}, fmt.Errorf("event payload has no pull_request.number")
	}
	return PRMetadata{
		Number: int(number.Int()),
		Title:  pr.Get("title").String(),
		Body:   pr.Get("body").String(),
	}, nil
}
