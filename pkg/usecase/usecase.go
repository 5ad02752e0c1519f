package usecase

import (
	"fmt"
	"time"

	"github.com/secmon-lab/issuehub/pkg/domain/interfaces"
	"github.com/secmon-lab/issuehub/pkg/domain/types"
	"github.com/secmon-lab/issuehub/pkg/infra"
)

const defaultRepositoryTTL = 24 * time.Hour

// Templates live much longer than repository connections.
const templateTTLFactor = 30

type UseCase struct {
	clients *infra.Clients
	repoTTL time.Duration
}

var _ interfaces.UseCase = (*UseCase)(nil)

type Option func(*UseCase)

// WithRepositoryTTL sets the TTL of stored repository connections. The
// template TTL is always 30x this value.
func WithRepositoryTTL(ttl time.Duration) Option {
	return func(x *UseCase) {
		if ttl > 0 {
			x.repoTTL = ttl
		}
	}
}

func New(clients *infra.Clients, options ...Option) *UseCase {
	uc := &UseCase{
		clients: clients,
		repoTTL: defaultRepositoryTTL,
	}
	for _, opt := range options {
		opt(uc)
	}

	return uc
}

func (x *UseCase) templateTTL() time.Duration {
	return x.repoTTL * templateTTLFactor
}

// Store key namespace. The layout is persisted data and must stay stable.

func repoKey(userID types.UserID, repoName types.RepoName) string {
	return fmt.Sprintf("user:%s:repo:%s", userID, repoName)
}

func repoIndexKey(userID types.UserID) string {
	return fmt.Sprintf("user:%s:repositories", userID)
}

func templateKey(userID types.UserID, name types.TemplateName) string {
	return fmt.Sprintf("user:%s:template:%s", userID, name)
}

const allUsersPattern = "user:*:repositories"
