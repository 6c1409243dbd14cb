package main

import (
	"context"
	"strconv"

	"github.com/ksysoev/pr-checklist-action/pkg/action"
	"github.com/ksysoev/pr-checklist-action/pkg/github"
	"github.com/sethvargo/go-githubactions"
)

func main() {
	// Set up action
	a := githubactions.New()
	ctx := context.Background()

	cfg, err := action.LoadConfig(a)
	if err != nil {
		a.Fatalf("%v", err)
	}

	a.Infof("Checking checklist for %s/%s#%d", cfg.Owner, cfg.Repo, cfg.Number)

	client, err := github.NewClient(cfg.GitHubToken, cfg.Owner+"/"+cfg.Repo, github.WithAPIURL(cfg.APIURL))
	if err != nil {
		a.Fatalf("%v", err)
	}

	result, err := action.Run(ctx, cfg, client, a)
	if err != nil {
		a.Fatalf("%v", err)
	}

	a.SetOutput("action", string(result.Action))
	a.SetOutput("comment-id", strconv.FormatInt(result.CommentID, 10))

	if result.Body != "" {
		a.AddStepSummary(result.Body)
	}
}
