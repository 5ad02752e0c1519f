package types

import "github.com/m-mizutani/goerr/v2"

var (
	ErrInvalidOption    = goerr.New("invalid option")
	ErrValidationFailed = goerr.New("validation failed")

	// GitHub API errors
	ErrInvalidToken = goerr.New("invalid token")
	ErrRepoNotFound = goerr.New("repository not found")
	ErrRateLimited  = goerr.New("access forbidden or rate limited")
	ErrGitHubAPI    = goerr.New("github api error")
	ErrNetwork      = goerr.New("network error")

	// Persistence errors
	ErrStoreUnavailable = goerr.New("store unavailable")
	ErrDecryptionFailed = goerr.New("decryption failed")
)
