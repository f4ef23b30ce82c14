// Package githubapi is the CI comment collaborator: PR metadata lookup,
// idempotent comment posting, and sorry tracking-issue discovery.
package githubapi

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/go-github/v66/github"
	"golang.org/x/oauth2"

	"github.com/mathlib-ci/prsummary/internal/logging"
)

type Client struct {
	gh    *github.Client
	owner string
	repo  string
	log   logging.Logger
}

// NewClient builds a client for "owner/repo". An empty token yields an
// unauthenticated client, good enough for local dry runs.
func NewClient(token, repository string, log logging.Logger) (*Client, error) {
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("repository must be owner/repo, got %q", repository)
	}

	var httpClient *http.Client
	if token == "" {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	} else {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
		httpClient.Timeout = 30 * time.Second
	}

	return &Client{
		gh:    github.NewClient(httpClient),
		owner: owner,
		repo:  repo,
		log:   log,
	}, nil
}

// PRMetadata is the subset of pull-request fields the run needs.
type PRMetadata struct {
	Number int
	Title  string
	Body   string
}

func (c *Client) PR(ctx context.Context, number int) (PRMetadata, error) {
	pr, _, err := c.gh.PullRequests.Get(ctx, c.owner, c.repo, number)
	if err != nil {
		return PRMetadata{}, fmt.Errorf("get PR #%d: %w", number, err)
	}
	return PRMetadata{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		Body:   pr.GetBody(),
	}, nil
}

// FindTrackedIssues returns open issues carrying the given label, used
// to cross-link moved sorries to their tracking issues.
func (c *Client) FindTrackedIssues(ctx context.Context, label string) ([]*github.Issue, error) {
	opts := &github.IssueListByRepoOptions{
		State:       "open",
		Labels:      []string{label},
		ListOptions: github.ListOptions{PerPage: 100},
	}
	var all []*github.Issue
	for {
		issues, resp, err := c.gh.Issues.ListByRepo(ctx, c.owner, c.repo, opts)
		if err != nil {
			return nil, fmt.Errorf("list %q issues: %w", label, err)
		}
		all = append(all, issues...)
		if resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

// IssueRefs scans issue bodies for sorry tracker ids and maps each found
// id to its issue number.
func IssueRefs(issues []*github.Issue, trackerIDs []string) map[string]int {
	refs := make(map[string]int)
	for _, id := range trackerIDs {
		needle := fmt.Sprintf("<!-- sorry-tracker-id: %s -->", id)
		for _, issue := range issues {
			if strings.Contains(issue.GetBody(), needle) {
				refs[id] = issue.GetNumber()
				break
			}
		}
	}
	return refs
}
