package core

// ChecklistEntry is one pattern from the checklist file with its items
type ChecklistEntry struct {
	Pattern string
	Items   []string
}

// ChecklistMap is the ordered pattern to items mapping loaded from the checklist file.
// Order follows the document and determines the order of the rendered comment.
type ChecklistMap []ChecklistEntry

// ApplicablePattern is a checklist entry for which at least one modified path matched
type ApplicablePattern struct {
	Pattern string
	Items   []string
}

// CompareSpec describes an extra base...head comparison whose changed files join the change set
type CompareSpec struct {
	Owner string `json:"owner"`
	Repo  string `json:"repo"`
	Base  string `json:"base"`
	Head  string `json:"head"`
}

// Comment is an issue or pull request comment as seen by the upsert logic
type Comment struct {
	ID   int64
	Body string
}

// Config represents the GitHub Action configuration
type Config struct {
	GitHubToken        string
	APIURL             string
	Owner              string
	Repo               string
	Number             int
	Header             string
	Footer             string
	InputFile          string
	ShowPaths          bool
	IncludeHiddenFiles bool
	CompareCommits     []CompareSpec
}

// MatchOptions returns the glob options derived from the configuration
func (c Config) MatchOptions() MatchOptions {
	return MatchOptions{Dot: c.IncludeHiddenFiles}
}
