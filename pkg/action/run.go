package action

import (
	"context"
	"fmt"

	"github.com/ksysoev/pr-checklist-action/pkg/core"
	"golang.org/x/sync/errgroup"
)

const (
	noMatchesMessage = "No paths were modified that match checklist paths"
	maxCompareFetch  = 4
)

// Logger is the subset of githubactions.Action used for progress messages
type Logger interface {
	Debugf(msg string, args ...any)
	Infof(msg string, args ...any)
	Warningf(msg string, args ...any)
}

// ChangeSource lists files changed by a pull request or between two revisions
type ChangeSource interface {
	ListPullRequestFiles(ctx context.Context, number int) ([]string, error)
	CompareFiles(ctx context.Context, spec core.CompareSpec) ([]string, error)
}

// CommentLister lists comments on an issue or pull request
type CommentLister interface {
	ListComments(ctx context.Context, number int) ([]core.Comment, error)
}

// CommentStore reads and writes comments on an issue or pull request
type CommentStore interface {
	CommentLister
	CreateComment(ctx context.Context, number int, body string) (int64, error)
	UpdateComment(ctx context.Context, commentID int64, body string) error
	DeleteComment(ctx context.Context, commentID int64) error
}

// API is everything a full run needs from GitHub
type API interface {
	ChangeSource
	CommentStore
}

// Result describes what a run decided and, after Apply, did
type Result struct {
	Action        core.Action
	CommentID     int64
	Body          string
	Applicable    []core.ApplicablePattern
	ModifiedPaths []string
	Existing      *core.Comment
}

// Run computes the checklist for the configured pull request and upserts or removes the comment
func Run(ctx context.Context, cfg core.Config, api API, log Logger) (*Result, error) {
	result, err := Plan(ctx, cfg, api, api, log)
	if err != nil {
		return nil, err
	}

	if err := Apply(ctx, cfg, api, result, log); err != nil {
		return nil, err
	}

	return result, nil
}

// Plan gathers the change set, selects applicable patterns, finds a previous
// checklist comment and decides what to do with it, without writing anything
func Plan(ctx context.Context, cfg core.Config, changes ChangeSource, comments CommentLister, log Logger) (*Result, error) {
	checklist, err := core.LoadChecklist(cfg.InputFile)
	if err != nil {
		return nil, err
	}

	log.Debugf("Loaded %d checklist patterns from %s", len(checklist), cfg.InputFile)

	modifiedPaths, err := CollectChangedPaths(ctx, changes, cfg.Number, cfg.CompareCommits, log)
	if err != nil {
		return nil, err
	}

	log.Debugf("Found %d modified paths", len(modifiedPaths))

	applicable := core.Select(checklist, modifiedPaths, cfg.MatchOptions())

	existingComments, err := comments.ListComments(ctx, cfg.Number)
	if err != nil {
		return nil, err
	}

	existing := core.FindByMarker(existingComments, cfg.Footer)

	result := &Result{
		Action:        core.Decide(existing, len(applicable)),
		Applicable:    applicable,
		ModifiedPaths: modifiedPaths,
		Existing:      existing,
	}

	if existing != nil {
		result.CommentID = existing.ID
	}

	if len(applicable) > 0 {
		result.Body = core.RenderBody(cfg.Header, cfg.Footer, applicable, cfg.ShowPaths)
	}

	return result, nil
}

// Apply performs the comment action chosen by Plan
func Apply(ctx context.Context, cfg core.Config, store CommentStore, result *Result, log Logger) error {
	switch result.Action {
	case core.ActionCreate:
		id, err := store.CreateComment(ctx, cfg.Number, result.Body)
		if err != nil {
			return err
		}

		result.CommentID = id
		log.Infof("Created checklist comment %d with %d matching patterns", id, len(result.Applicable))
	case core.ActionUpdate:
		if err := store.UpdateComment(ctx, result.CommentID, result.Body); err != nil {
			return err
		}

		log.Infof("Updated checklist comment %d with %d matching patterns", result.CommentID, len(result.Applicable))
	case core.ActionDelete:
		if err := store.DeleteComment(ctx, result.CommentID); err != nil {
			return err
		}

		log.Infof("Deleted checklist comment %d", result.CommentID)
		log.Infof(noMatchesMessage)
	case core.ActionNone:
		log.Infof(noMatchesMessage)
	default:
		return fmt.Errorf("unknown comment action %q", result.Action)
	}

	return nil
}

// CollectChangedPaths lists the pull request's files, then the files of every comparison.
// All comparisons are awaited before returning; their paths follow the PR's in spec order.
// A failed comparison is reported and skipped, a failed PR listing is returned.
func CollectChangedPaths(ctx context.Context, changes ChangeSource, number int, specs []core.CompareSpec, log Logger) ([]string, error) {
	paths, err := changes.ListPullRequestFiles(ctx, number)
	if err != nil {
		return nil, err
	}

	if len(specs) == 0 {
		return paths, nil
	}

	compared := make([][]string, len(specs))
	errs := make([]error, len(specs))

	var eg errgroup.Group
	eg.SetLimit(maxCompareFetch)

	for i, spec := range specs {
		eg.Go(func() error {
			compared[i], errs[i] = changes.CompareFiles(ctx, spec)
			return nil
		})
	}

	_ = eg.Wait()

	for i, files := range compared {
		if errs[i] != nil {
			log.Warningf("Skipping comparison %s/%s %s...%s: %v", specs[i].Owner, specs[i].Repo, specs[i].Base, specs[i].Head, errs[i])
			continue
		}

		paths = append(paths, files...)
	}

	return paths, nil
}
