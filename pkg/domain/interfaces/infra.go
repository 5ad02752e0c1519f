package interfaces

import (
	"context"

	"github.com/secmon-lab/issuehub/pkg/domain/model"
	"github.com/secmon-lab/issuehub/pkg/domain/types"
)

// Cipher protects tokens at rest. Decrypt must fail with an error wrapping
// types.ErrDecryptionFailed on ciphertext not produced by Encrypt with the
// same key.
type Cipher interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// GitHubClient is the consumed contract of the GitHub REST API.
type GitHubClient interface {
	// VerifyToken confirms the token is valid by fetching the authenticated
	// user. A rejected token yields an error wrapping types.ErrInvalidToken
	// with the HTTP status code in the message.
	VerifyToken(ctx context.Context, token types.AccessToken) error

	// GetRepository fetches repository metadata. 404 yields
	// types.ErrRepoNotFound, 403 yields types.ErrRateLimited, other non-2xx
	// yields types.ErrGitHubAPI with the upstream message.
	GetRepository(ctx context.Context, token types.AccessToken, owner string, repo types.RepoName) (*model.GitHubRepo, error)

	// CreateIssue opens an issue. Transport-level failures yield
	// types.ErrNetwork, distinct from HTTP-status errors.
	CreateIssue(ctx context.Context, token types.AccessToken, owner string, repo types.RepoName, issue *model.GitHubIssue) (*model.IssueRef, error)
}
