package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/issuehub/pkg/domain/model"
	"github.com/secmon-lab/issuehub/pkg/domain/types"
	"github.com/secmon-lab/issuehub/pkg/store"
	"github.com/secmon-lab/issuehub/pkg/utils/errutil"
	"github.com/secmon-lab/issuehub/pkg/utils/logging"
)

// SaveRepository encrypts the token and stores the connection under
// user:{userID}:repo:{repoName}, then registers the repo name in the user's
// index set and refreshes the set's TTL so the index never expires before
// its newest member. Returns false only on store failure.
func (x *UseCase) SaveRepository(ctx context.Context, userID types.UserID, repoName types.RepoName, token types.AccessToken, username string, metadata json.RawMessage) bool {
	ciphertext, err := x.clients.Cipher().Encrypt(string(token))
	if err != nil {
		errutil.HandleError(ctx, "failed to encrypt token", err)
		return false
	}

	if len(metadata) == 0 {
		metadata = json.RawMessage("{}")
	}

	now := logging.CtxTime(ctx)
	record := model.RepositoryRecord{
		Token:     ciphertext,
		Username:  username,
		RepoName:  repoName,
		Metadata:  metadata,
		CreatedAt: now,
		UpdatedAt: now,
	}

	raw, err := json.Marshal(record)
	if err != nil {
		errutil.HandleError(ctx, "failed to marshal repository record", goerr.Wrap(err, "marshal failed"))
		return false
	}

	s := x.clients.KeyedStore()
	if err := s.Put(ctx, repoKey(userID, repoName), raw, x.repoTTL); err != nil {
		errutil.HandleError(ctx, "failed to save repository record", err)
		return false
	}

	indexKey := repoIndexKey(userID)
	if err := s.AddSetMember(ctx, indexKey, string(repoName)); err != nil {
		errutil.HandleError(ctx, "failed to update repository index", err)
		return false
	}
	if err := s.ExpireSet(ctx, indexKey, x.repoTTL); err != nil {
		errutil.HandleError(ctx, "failed to refresh repository index TTL", err)
		return false
	}

	logging.From(ctx).Info("repository connection saved",
		"user_id", userID,
		"repo_name", repoName,
	)

	return true
}

// GetRepository returns the stored connection with the token decrypted, or
// (nil, nil) when absent. Decryption failure is surfaced as an error so
// callers can distinguish "no data" from "un-decryptable data".
func (x *UseCase) GetRepository(ctx context.Context, userID types.UserID, repoName types.RepoName) (*model.RepositoryRecord, error) {
	raw, err := x.clients.KeyedStore().Get(ctx, repoKey(userID, repoName))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil
		}
		errutil.HandleError(ctx, "failed to get repository record", err)
		return nil, nil
	}

	var record model.RepositoryRecord
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal repository record",
			goerr.V("user_id", userID),
			goerr.V("repo_name", repoName),
		)
	}

	plaintext, err := x.clients.Cipher().Decrypt(record.Token)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to decrypt stored token",
			goerr.V("user_id", userID),
			goerr.V("repo_name", repoName),
		)
	}
	record.Token = plaintext

	return &record, nil
}

// DeleteRepository removes the record and its index entry. Returns true iff
// the record existed. Index removal is best-effort and does not gate the
// return value.
func (x *UseCase) DeleteRepository(ctx context.Context, userID types.UserID, repoName types.RepoName) bool {
	s := x.clients.KeyedStore()

	existed, err := s.Delete(ctx, repoKey(userID, repoName))
	if err != nil {
		errutil.HandleError(ctx, "failed to delete repository record", err)
		return false
	}

	if err := s.RemoveSetMember(ctx, repoIndexKey(userID), string(repoName)); err != nil {
		errutil.HandleError(ctx, "failed to remove repository index entry", err)
	}

	return existed
}

// ListRepositories returns the repo names in the user's index set. Members
// are not validated against live records; callers must treat a failed
// lookup of a listed name as a stale entry and skip it.
func (x *UseCase) ListRepositories(ctx context.Context, userID types.UserID) []string {
	members, err := x.clients.KeyedStore().SetMembers(ctx, repoIndexKey(userID))
	if err != nil {
		errutil.HandleError(ctx, "failed to list repositories", err)
		return nil
	}

	sort.Strings(members)
	return members
}

// ListAllUsers enumerates index-set keys and extracts the user ID segment.
// Diagnostic use only.
func (x *UseCase) ListAllUsers(ctx context.Context) []string {
	keys, err := x.clients.KeyedStore().Keys(ctx, allUsersPattern)
	if err != nil {
		errutil.HandleError(ctx, "failed to list users", err)
		return nil
	}

	var users []string
	for _, key := range keys {
		parts := strings.Split(key, ":")
		if len(parts) > 1 {
			users = append(users, parts[1])
		}
	}

	sort.Strings(users)
	return users
}
