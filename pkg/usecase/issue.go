package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/secmon-lab/issuehub/pkg/domain/model"
	"github.com/secmon-lab/issuehub/pkg/domain/types"
)

// CreateIssue opens an issue on the target repository. The token comes from
// the request, or from the stored connection when only a user ID is given.
// Upstream failures become a failed result, not an error; a decryption
// failure on the stored token is returned as an error.
func (x *UseCase) CreateIssue(ctx context.Context, input *model.CreateIssueInput) (*model.IssueResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	token := input.Token
	username := input.Username
	if token == "" {
		record, err := x.GetRepository(ctx, input.UserID, input.RepoName)
		if err != nil {
			return nil, err
		}
		if record == nil {
			return &model.IssueResult{
				Success: false,
				Message: fmt.Sprintf("No stored connection for repository '%s'", input.RepoName),
			}, nil
		}
		token = types.AccessToken(record.Token)
		if username == "" {
			username = record.Username
		}
	}

	issue := &model.GitHubIssue{
		Title:     input.Title,
		Body:      input.Body,
		Labels:    input.Labels,
		Assignees: input.Assignees,
	}

	if input.Template != "" {
		tmpl := x.resolveTemplate(ctx, input.UserID, input.Template)
		if tmpl == nil {
			return &model.IssueResult{
				Success: false,
				Message: fmt.Sprintf("Template '%s' not found", input.Template),
			}, nil
		}
		applyTemplate(issue, tmpl)
	}

	ref, err := x.clients.GitHub().CreateIssue(ctx, token, username, input.RepoName, issue)
	if err != nil {
		msg := err.Error()
		if errors.Is(err, types.ErrNetwork) {
			msg = fmt.Sprintf("Network error: %v", err)
		}
		return &model.IssueResult{
			Success: false,
			Message: msg,
		}, nil
	}

	return &model.IssueResult{
		Success:     true,
		IssueURL:    ref.HTMLURL,
		IssueNumber: ref.Number,
		Message:     "Issue created successfully",
	}, nil
}

// applyTemplate fills the issue from a template: the template title is a
// prefix, the body is used when the request has none, and labels are merged.
func applyTemplate(issue *model.GitHubIssue, tmpl *model.IssueTemplate) {
	if tmpl.Title != "" {
		issue.Title = tmpl.Title + issue.Title
	}
	if issue.Body == "" {
		issue.Body = tmpl.Body
	}

	seen := map[string]struct{}{}
	for _, l := range issue.Labels {
		seen[l] = struct{}{}
	}
	for _, l := range tmpl.Labels {
		if _, ok := seen[l]; !ok {
			issue.Labels = append(issue.Labels, l)
		}
	}
}
