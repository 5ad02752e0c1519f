package model

import (
	"encoding/json"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/issuehub/pkg/domain/types"
)

// VerifyRepositoryInput is a request to validate a token/repository pair,
// optionally saving the connection on success.
type VerifyRepositoryInput struct {
	Token    types.AccessToken `json:"token" masq:"secret"`
	Username string            `json:"username"`
	RepoName types.RepoName    `json:"repo_name"`
	Save     bool              `json:"save"`
	UserID   types.UserID      `json:"user_id,omitempty"`
	Metadata json.RawMessage   `json:"metadata,omitempty"`
}

func (x *VerifyRepositoryInput) Validate() error {
	if x.Token == "" {
		return goerr.Wrap(types.ErrValidationFailed, "token is empty")
	}
	if x.Username == "" {
		return goerr.Wrap(types.ErrValidationFailed, "username is empty")
	}
	if x.RepoName == "" {
		return goerr.Wrap(types.ErrValidationFailed, "repo name is empty")
	}
	return nil
}

// VerifyResult reports the outcome of a verification. Valid refers to the
// token; RepoExists to the repository. A missing repository with a valid
// token is not a failure.
type VerifyResult struct {
	Valid      bool         `json:"valid"`
	RepoExists bool         `json:"repo_exists"`
	Message    string       `json:"message"`
	Repo       *GitHubRepo  `json:"repo_data,omitempty"`
	UserID     types.UserID `json:"user_id,omitempty"`
	Saved      bool         `json:"saved,omitempty"`
}

// CreateIssueInput is a request to create an issue. Either Token or UserID
// must be set; with UserID the stored connection supplies the token and
// username.
type CreateIssueInput struct {
	Token     types.AccessToken  `json:"token,omitempty" masq:"secret"`
	UserID    types.UserID       `json:"user_id,omitempty"`
	Username  string             `json:"username"`
	RepoName  types.RepoName     `json:"repo_name"`
	Title     string             `json:"title"`
	Body      string             `json:"body"`
	Labels    []string           `json:"labels,omitempty"`
	Assignees []string           `json:"assignees,omitempty"`
	Template  types.TemplateName `json:"template,omitempty"`
}

func (x *CreateIssueInput) Validate() error {
	if x.Token == "" && x.UserID == "" {
		return goerr.Wrap(types.ErrValidationFailed, "either token or user ID is required")
	}
	if x.RepoName == "" {
		return goerr.Wrap(types.ErrValidationFailed, "repo name is empty")
	}
	if x.Title == "" && x.Template == "" {
		return goerr.Wrap(types.ErrValidationFailed, "title is empty")
	}
	return nil
}

// IssueResult reports the outcome of an issue creation.
type IssueResult struct {
	Success     bool   `json:"success"`
	IssueURL    string `json:"issue_url,omitempty"`
	IssueNumber int    `json:"issue_number,omitempty"`
	Message     string `json:"message"`
}
