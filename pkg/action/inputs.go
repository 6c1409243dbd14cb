package action

import (
	"errors"
	"fmt"

	"github.com/ksysoev/pr-checklist-action/pkg/core"
	"github.com/sethvargo/go-githubactions"
)

// Input names as declared in action.yml
const (
	InputHeader         = "comment-header"
	InputFooter         = "comment-footer"
	InputFile           = "input-file"
	InputShowPaths      = "show-paths"
	InputIncludeHidden  = "include-hidden-files"
	InputToken          = "gh-token"
	InputCompareCommits = "compareCommits"
)

var (
	// ErrNoTarget is returned when the event payload carries no issue or pull request number
	ErrNoTarget = errors.New("could not determine issue or pull request number from event payload")
	// ErrMissingFooter is returned when comment-footer is empty; the footer identifies the comment
	ErrMissingFooter = errors.New("comment-footer input is required")
	// ErrMissingToken is returned when neither gh-token nor GITHUB_TOKEN is set
	ErrMissingToken = errors.New("gh-token input is required")
)

// LoadConfig reads the action inputs and the workflow context into a Config
func LoadConfig(a *githubactions.Action) (core.Config, error) {
	token := a.GetInput(InputToken)
	if token == "" {
		token = a.Getenv("GITHUB_TOKEN")
		if token == "" {
			return core.Config{}, ErrMissingToken
		}
	}

	footer := a.GetInput(InputFooter)
	if footer == "" {
		return core.Config{}, ErrMissingFooter
	}

	inputFile := a.GetInput(InputFile)
	if inputFile == "" {
		return core.Config{}, fmt.Errorf("%s input is required", InputFile)
	}

	compares, err := core.ParseCompareCommits(a.GetInput(InputCompareCommits))
	if err != nil {
		return core.Config{}, err
	}

	ghctx, err := a.Context()
	if err != nil {
		return core.Config{}, fmt.Errorf("failed to read workflow context: %w", err)
	}

	owner, repo := ghctx.Repo()
	if owner == "" || repo == "" {
		return core.Config{}, fmt.Errorf("could not determine repository from workflow context")
	}

	number, err := TargetNumber(ghctx.Event)
	if err != nil {
		return core.Config{}, err
	}

	return core.Config{
		GitHubToken:        token,
		APIURL:             ghctx.APIURL,
		Owner:              owner,
		Repo:               repo,
		Number:             number,
		Header:             a.GetInput(InputHeader),
		Footer:             footer,
		InputFile:          inputFile,
		ShowPaths:          a.GetInput(InputShowPaths) == "true",
		IncludeHiddenFiles: a.GetInput(InputIncludeHidden) == "true",
		CompareCommits:     compares,
	}, nil
}

// TargetNumber picks the issue number, then the pull request number, then the
// top-level number from an event payload
func TargetNumber(event map[string]any) (int, error) {
	for _, key := range []string{"issue", "pull_request"} {
		if obj, ok := event[key].(map[string]any); ok {
			if n, ok := payloadNumber(obj); ok {
				return n, nil
			}
		}
	}

	if n, ok := payloadNumber(event); ok {
		return n, nil
	}

	return 0, ErrNoTarget
}

func payloadNumber(obj map[string]any) (int, bool) {
	switch n := obj["number"].(type) {
	case float64:
		return int(n), n > 0
	case int:
		return n, n > 0
	default:
		return 0, false
	}
}
