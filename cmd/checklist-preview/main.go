package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/ksysoev/pr-checklist-action/pkg/action"
	"github.com/ksysoev/pr-checklist-action/pkg/core"
	"github.com/ksysoev/pr-checklist-action/pkg/github"
	"github.com/ksysoev/pr-checklist-action/pkg/logging"
	"github.com/spf13/cobra"
)

const (
	defaultInputFile = ".github/checklist.yml"
	defaultHeader    = "## Checklist"
	defaultFooter    = "<!-- pr-checklist-action -->"
)

type options struct {
	inputFile     string
	header        string
	footer        string
	showPaths     bool
	includeHidden bool
	repo          string
	pr            int
	compare       string
	logLevel      string
}

type envConfig struct {
	Token      string `env:"GITHUB_TOKEN"`
	Repository string `env:"GITHUB_REPOSITORY"`
	APIURL     string `env:"GITHUB_API_URL"`
}

func main() {
	// Missing .env is fine
	_ = godotenv.Load()

	if err := newRootCommand().Execute(); err != nil {
		logging.NewLogger(os.Stderr, logging.ParseLevel("error")).Error("preview failed", "error", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "checklist-preview [paths...]",
		Short: "Render the PR checklist comment locally",
		Long: "checklist-preview renders the checklist comment for the given changed paths, " +
			"or for a pull request fetched read-only with --repo and --pr, and prints what the action would do.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPreview(cmd.Context(), cmd.OutOrStdout(), opts, args)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.inputFile, "input-file", "f", defaultInputFile, "Path to the checklist YAML file")
	flags.StringVar(&opts.header, "header", defaultHeader, "Comment header")
	flags.StringVar(&opts.footer, "footer", defaultFooter, "Comment footer, also used to find a previous comment")
	flags.BoolVar(&opts.showPaths, "show-paths", false, "Show the matching pattern above each group of items")
	flags.BoolVar(&opts.includeHidden, "include-hidden-files", false, "Let wildcards match dot-prefixed path segments")
	flags.StringVar(&opts.repo, "repo", "", "Repository as owner/repo (defaults to GITHUB_REPOSITORY)")
	flags.IntVar(&opts.pr, "pr", 0, "Pull request number to read changed files and comments from")
	flags.StringVar(&opts.compare, "compare", "", "JSON array of {owner, repo, base, head} comparisons")
	flags.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")

	return cmd
}

func runPreview(ctx context.Context, out io.Writer, opts *options, args []string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	logger := logging.NewPrintf(logging.NewLogger(os.Stderr, logging.ParseLevel(opts.logLevel)))

	compares, err := core.ParseCompareCommits(opts.compare)
	if err != nil {
		return err
	}

	cfg := core.Config{
		Number:             opts.pr,
		Header:             opts.header,
		Footer:             opts.footer,
		InputFile:          opts.inputFile,
		ShowPaths:          opts.showPaths,
		IncludeHiddenFiles: opts.includeHidden,
		CompareCommits:     compares,
	}

	var (
		changes  action.ChangeSource
		comments action.CommentLister
	)

	if opts.pr > 0 {
		client, err := newClient(opts, &cfg)
		if err != nil {
			return err
		}
		changes, comments = client, client
	} else {
		if len(compares) > 0 {
			return errors.New("--compare needs --pr")
		}
		changes, comments = staticChanges(args), noComments{}
	}

	result, err := action.Plan(ctx, cfg, changes, comments, logger)
	if err != nil {
		return err
	}

	logger.Infof("%d checklist patterns apply to %d modified paths, action: %s", len(result.Applicable), len(result.ModifiedPaths), result.Action)

	if result.Body == "" {
		_, err = fmt.Fprintln(out, "No checklist items apply.")
		return err
	}

	_, err = fmt.Fprintln(out, result.Body)
	return err
}

func newClient(opts *options, cfg *core.Config) (*github.Client, error) {
	var ec envConfig
	if err := env.Parse(&ec); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	repo := opts.repo
	if repo == "" {
		repo = ec.Repository
	}
	if repo == "" {
		return nil, errors.New("--repo or GITHUB_REPOSITORY is required with --pr")
	}
	if strings.TrimSpace(cfg.Footer) == "" {
		return nil, errors.New("--footer must not be empty with --pr")
	}

	cfg.GitHubToken = ec.Token
	cfg.APIURL = ec.APIURL

	clientOpts := []github.Option{github.WithAPIURL(ec.APIURL)}
	if ec.Token == "" {
		// Public repositories can be read anonymously
		clientOpts = append(clientOpts, github.WithHTTPClient(http.DefaultClient))
	}

	return github.NewClient(ec.Token, repo, clientOpts...)
}

// staticChanges serves paths given on the command line as the pull request's files
type staticChanges []string

func (s staticChanges) ListPullRequestFiles(context.Context, int) ([]string, error) {
	return s, nil
}

func (s staticChanges) CompareFiles(context.Context, core.CompareSpec) ([]string, error) {
	return nil, nil
}

type noComments struct{}

func (noComments) ListComments(context.Context, int) ([]core.Comment, error) {
	return nil, nil
}
