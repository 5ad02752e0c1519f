package cipher

import (
	"github.com/secmon-lab/issuehub/pkg/domain/interfaces"
)

// Plaintext is a passthrough cipher for the explicit insecure mode. Tokens
// are persisted unencrypted. It must only be selected by configuration at
// startup, never as a silent fallback.
type Plaintext struct{}

var _ interfaces.Cipher = (*Plaintext)(nil)

func NewPlaintext() *Plaintext {
	return &Plaintext{}
}

func (x *Plaintext) Encrypt(plaintext string) (string, error) {
	return plaintext, nil
}

func (x *Plaintext) Decrypt(ciphertext string) (string, error) {
	return ciphertext, nil
}
