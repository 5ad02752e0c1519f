package interfaces

import (
	"context"
	"encoding/json"

	"github.com/secmon-lab/issuehub/pkg/domain/model"
	"github.com/secmon-lab/issuehub/pkg/domain/types"
)

type UseCase interface {
	// Repository registry
	SaveRepository(ctx context.Context, userID types.UserID, repoName types.RepoName, token types.AccessToken, username string, metadata json.RawMessage) bool
	GetRepository(ctx context.Context, userID types.UserID, repoName types.RepoName) (*model.RepositoryRecord, error)
	DeleteRepository(ctx context.Context, userID types.UserID, repoName types.RepoName) bool
	ListRepositories(ctx context.Context, userID types.UserID) []string
	ListAllUsers(ctx context.Context) []string

	// Template registry
	SaveTemplate(ctx context.Context, userID types.UserID, name types.TemplateName, body json.RawMessage) bool
	ListTemplates(ctx context.Context, userID types.UserID) map[string]json.RawMessage

	// GitHub operations
	VerifyRepository(ctx context.Context, input *model.VerifyRepositoryInput) (*model.VerifyResult, error)
	CreateIssue(ctx context.Context, input *model.CreateIssueInput) (*model.IssueResult, error)
}
