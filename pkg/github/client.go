package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v60/github"
	"github.com/ksysoev/pr-checklist-action/pkg/core"
	"golang.org/x/oauth2"
)

const defaultAPIURL = "https://api.github.com"

// Client handles interaction with the GitHub API
type Client struct {
	client *github.Client
	owner  string
	repo   string
}

type options struct {
	apiURL     string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*options)

// WithAPIURL points the client at a GitHub Enterprise Server API
func WithAPIURL(apiURL string) Option {
	return func(o *options) {
		o.apiURL = apiURL
	}
}

// WithHTTPClient sets the underlying HTTP client; the token is not applied to it
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *options) {
		o.httpClient = httpClient
	}
}

// NewClient creates a new GitHub client for the repository given as owner/repo
func NewClient(token, repoFullName string, opts ...Option) (*Client, error) {
	parts := strings.Split(repoFullName, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return nil, fmt.Errorf("invalid repository %q, expected owner/repo", repoFullName)
	}

	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = NewTokenHTTPClient(token)
	}

	client := github.NewClient(httpClient)
	if o.apiURL != "" && strings.TrimSuffix(o.apiURL, "/") != defaultAPIURL {
		var err error
		client, err = client.WithEnterpriseURLs(o.apiURL, o.apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid API URL %s: %w", o.apiURL, err)
		}
	}

	return &Client{
		client: client,
		owner:  parts[0],
		repo:   parts[1],
	}, nil
}

// NewTokenHTTPClient creates an HTTP client that authenticates with a static token
func NewTokenHTTPClient(token string) *http.Client {
	ctx := context.Background()
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	return oauth2.NewClient(ctx, ts)
}

// ListPullRequestFiles returns the paths of files touched by the pull request.
// Only the first page of results is requested.
func (c *Client) ListPullRequestFiles(ctx context.Context, number int) ([]string, error) {
	files, _, err := c.client.PullRequests.ListFiles(ctx, c.owner, c.repo, number, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list files of PR #%d: %w", number, err)
	}

	return filenames(files), nil
}

// CompareFiles returns the paths of files that differ between the spec's base and head
func (c *Client) CompareFiles(ctx context.Context, spec core.CompareSpec) ([]string, error) {
	comparison, _, err := c.client.Repositories.CompareCommits(ctx, spec.Owner, spec.Repo, spec.Base, spec.Head, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to compare %s/%s %s...%s: %w", spec.Owner, spec.Repo, spec.Base, spec.Head, err)
	}

	return filenames(comparison.Files), nil
}

// ListComments returns the first page of comments on the issue or pull request
func (c *Client) ListComments(ctx context.Context, number int) ([]core.Comment, error) {
	comments, _, err := c.client.Issues.ListComments(ctx, c.owner, c.repo, number, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments of #%d: %w", number, err)
	}

	result := make([]core.Comment, 0, len(comments))
	for _, comment := range comments {
		result = append(result, core.Comment{
			ID:   comment.GetID(),
			Body: comment.GetBody(),
		})
	}

	return result, nil
}

// CreateComment posts a new comment and returns its ID
func (c *Client) CreateComment(ctx context.Context, number int, body string) (int64, error) {
	comment, _, err := c.client.Issues.CreateComment(ctx, c.owner, c.repo, number, &github.IssueComment{
		Body: &body,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create comment on #%d: %w", number, err)
	}

	return comment.GetID(), nil
}

// UpdateComment replaces the body of an existing comment
func (c *Client) UpdateComment(ctx context.Context, commentID int64, body string) error {
	_, _, err := c.client.Issues.EditComment(ctx, c.owner, c.repo, commentID, &github.IssueComment{
		Body: &body,
	})
	if err != nil {
		return fmt.Errorf("failed to update comment %d: %w", commentID, err)
	}

	return nil
}

// DeleteComment removes a comment
func (c *Client) DeleteComment(ctx context.Context, commentID int64) error {
	if _, err := c.client.Issues.DeleteComment(ctx, c.owner, c.repo, commentID); err != nil {
		return fmt.Errorf("failed to delete comment %d: %w", commentID, err)
	}

	return nil
}

func filenames(files []*github.CommitFile) []string {
	paths := make([]string, 0, len(files))
	for _, file := range files {
		paths = append(paths, file.GetFilename())
	}
	return paths
}
