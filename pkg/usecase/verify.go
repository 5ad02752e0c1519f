package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/secmon-lab/issuehub/pkg/domain/model"
	"github.com/secmon-lab/issuehub/pkg/domain/types"
	"github.com/secmon-lab/issuehub/pkg/utils/logging"
)

// VerifyRepository validates a token/repository pair against the GitHub API
// and optionally saves the connection. Upstream failures are converted to a
// structured result, never returned as errors; only invalid input is an
// error.
func (x *UseCase) VerifyRepository(ctx context.Context, input *model.VerifyRepositoryInput) (*model.VerifyResult, error) {
	if err := input.Validate(); err != nil {
		return nil, err
	}

	gh := x.clients.GitHub()

	if err := gh.VerifyToken(ctx, input.Token); err != nil {
		msg := err.Error()
		if errors.Is(err, types.ErrNetwork) {
			msg = fmt.Sprintf("Network error: %v", err)
		}
		return &model.VerifyResult{
			Valid:      false,
			RepoExists: false,
			Message:    msg,
		}, nil
	}

	result := &model.VerifyResult{Valid: true}

	repo, err := gh.GetRepository(ctx, input.Token, input.Username, input.RepoName)
	switch {
	case err == nil:
		result.RepoExists = true
		result.Repo = repo
		result.Message = "Token and repository are valid"

	case errors.Is(err, types.ErrRepoNotFound):
		result.Message = fmt.Sprintf("Repository '%s' not found for user '%s'", input.RepoName, input.Username)

	case errors.Is(err, types.ErrNetwork):
		result.Message = fmt.Sprintf("Network error: %v", err)

	default:
		// Rate limit, forbidden and any other upstream error: pass the
		// message through.
		result.Message = err.Error()
	}

	if input.Save {
		x.saveVerified(ctx, input, result)
	}

	return result, nil
}

// saveVerified persists the verified connection, generating a user ID when
// the caller did not supply one and stamping verification timestamps into
// the metadata.
func (x *UseCase) saveVerified(ctx context.Context, input *model.VerifyRepositoryInput, result *model.VerifyResult) {
	userID := input.UserID
	if userID == "" {
		userID = types.UserID(uuid.NewString())
		logging.From(ctx).Info("generated user ID for new connection", "user_id", userID)
	}

	meta := map[string]any{}
	if len(input.Metadata) > 0 {
		// Malformed caller metadata is dropped, not fatal.
		_ = json.Unmarshal(input.Metadata, &meta)
	}
	now := logging.CtxTime(ctx).UTC().Format(time.RFC3339)
	meta["verified_at"] = now
	meta["saved_at"] = now
	meta["user_id"] = string(userID)

	raw, err := json.Marshal(meta)
	if err != nil {
		raw = json.RawMessage("{}")
	}

	result.UserID = userID
	result.Saved = x.SaveRepository(ctx, userID, input.RepoName, input.Token, input.Username, raw)
}
