package model

import (
	"encoding/json"
	"time"

	"github.com/secmon-lab/issuehub/pkg/domain/types"
)

// RepositoryRecord is a stored repository connection. The JSON layout is the
// persisted format and must stay stable: the Token field holds ciphertext at
// rest, and is replaced with the plaintext token only on retrieval.
type RepositoryRecord struct {
	Token     string          `json:"token" masq:"secret"`
	Username  string          `json:"username"`
	RepoName  types.RepoName  `json:"repo_name"`
	Metadata  json.RawMessage `json:"metadata"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
