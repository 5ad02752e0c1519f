package infra

import (
	"github.com/secmon-lab/issuehub/pkg/domain/interfaces"
	"github.com/secmon-lab/issuehub/pkg/infra/cipher"
	"github.com/secmon-lab/issuehub/pkg/infra/ghclient"
	"github.com/secmon-lab/issuehub/pkg/store/memory"
)

type Clients struct {
	keyedStore interfaces.KeyedStore
	cipher     interfaces.Cipher
	github     interfaces.GitHubClient
}

type Option func(*Clients)

func New(options ...Option) *Clients {
	client := &Clients{
		keyedStore: memory.New(),
		cipher:     cipher.NewPlaintext(),
		github:     ghclient.New(),
	}

	for _, opt := range options {
		opt(client)
	}

	return client
}

func (x *Clients) KeyedStore() interfaces.KeyedStore {
	return x.keyedStore
}
func (x *Clients) Cipher() interfaces.Cipher {
	return x.cipher
}
func (x *Clients) GitHub() interfaces.GitHubClient {
	return x.github
}

func WithKeyedStore(s interfaces.KeyedStore) Option {
	return func(x *Clients) {
		x.keyedStore = s
	}
}

func WithCipher(c interfaces.Cipher) Option {
	return func(x *Clients) {
		x.cipher = c
	}
}

func WithGitHub(client interfaces.GitHubClient) Option {
	return func(x *Clients) {
		x.github = client
	}
}
