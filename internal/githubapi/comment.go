package githubapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v66/github"
)

// CommentPostError is surfaced after all computation succeeds. It keeps
// the assembled body so the caller can log it: an unpostable report
// would otherwise be silently lost.
type CommentPostError struct {
	Body string
	Err  error
}

func (e *CommentPostError) Error() string {
	return fmt.Sprintf("post PR comment: %v", e.Err)
}

func (e *CommentPostError) Unwrap() error {
	return e.Err
}

// UpsertComment updates the existing bot comment identified by marker,
// or creates a new one. Repeated runs therefore keep a single comment.
func (c *Client) UpsertComment(ctx context.Context, prNumber int, marker, body string) error {
	existing, err := c.findMarkedComment(ctx, prNumber, marker)
	if err != nil {
		return &CommentPostError{Body: body, Err: err}
	}

	comment := &github.IssueComment{Body: github.String(body)}
	if existing != nil {
		if _, _, err := c.gh.Issues.EditComment(ctx, c.owner, c.repo, existing.GetID(), comment); err != nil {
			return &CommentPostError{Body: body, Err: err}
		}
		c.log.Info("updated existing comment", "id", existing.GetID())
		return nil
	}

	if _, _, err := c.gh.Issues.CreateComment(ctx, c.owner, c.repo, prNumber, comment); err != nil {
		return &CommentPostError{Body: body, Err: err}
	}
	c.log.Info("created new comment", "pr", prNumber)
	return nil
}

func (c *Client) findMarkedComment(ctx context.Context, prNumber int, marker string) (*github.IssueComment, error) {
	opts := &github.IssueListCommentsOptions{ListOptions: github.ListOptions{PerPage: 100}}
	for {
		comments, resp, err := c.gh.Issues.ListComments(ctx, c.owner, c.repo, prNumber, opts)
		if err != nil {
			return nil, fmt.Errorf("list PR #%d comments: %w", prNumber, err)
		}
		for _, comment := range comments {
			if MatchesMarker(comment.GetBody(), marker) {
				return comment, nil
			}
		}
		if resp.NextPage == 0 {
			return nil, nil
		}
		opts.Page = resp.NextPage
	}
}

// MatchesMarker reports whether a comment body carries the hidden bot
// marker.
func MatchesMarker(body, marker string) bool {
	return marker != "" && strings.Contains(body, marker)
}
