package model

// GitHubRepo holds the repository fields returned by the GitHub API that
// issuehub cares about.
type GitHubRepo struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Private       bool   `json:"private"`
	Description   string `json:"description"`
	Stars         int    `json:"stars"`
	Forks         int    `json:"forks"`
	OpenIssues    int    `json:"open_issues"`
	DefaultBranch string `json:"default_branch"`
	Owner         string `json:"owner"`
	HTMLURL       string `json:"html_url"`
}

// GitHubIssue is the request payload for issue creation.
type GitHubIssue struct {
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Labels    []string `json:"labels,omitempty"`
	Assignees []string `json:"assignees,omitempty"`
}

// IssueRef identifies an issue created via the GitHub API.
type IssueRef struct {
	HTMLURL string `json:"html_url"`
	Number  int    `json:"number"`
}
