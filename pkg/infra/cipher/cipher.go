package cipher

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/issuehub/pkg/domain/interfaces"
	"github.com/secmon-lab/issuehub/pkg/domain/types"
)

// Cipher encrypts tokens at rest with XChaCha20-Poly1305. The key is the
// SHA-256 digest of the configured passphrase, so any passphrase length
// yields a valid 32-byte key.
type Cipher struct {
	key [sha256.Size]byte
}

var _ interfaces.Cipher = (*Cipher)(nil)

func New(passphrase types.EncryptionPassphrase) (*Cipher, error) {
	if passphrase == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "passphrase is empty")
	}

	return &Cipher{
		key: sha256.Sum256([]byte(passphrase)),
	}, nil
}

func (x *Cipher) Encrypt(plaintext string) (string, error) {
	aead, err := chacha20poly1305.NewX(x.key[:])
	if err != nil {
		return "", goerr.Wrap(err, "failed to initialize AEAD")
	}

	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := rand.Read(nonce); err != nil {
		return "", goerr.Wrap(err, "failed to generate nonce")
	}

	out := make([]byte, 0, len(nonce)+len(plaintext)+aead.Overhead())
	out = append(out, nonce...)
	out = append(out, aead.Seal(nil, nonce, []byte(plaintext), nil)...)

	return base64.StdEncoding.EncodeToString(out), nil
}

func (x *Cipher) Decrypt(ciphertext string) (string, error) {
	raw, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return "", goerr.Wrap(types.ErrDecryptionFailed, "ciphertext is not valid base64")
	}
	if len(raw) < chacha20poly1305.NonceSizeX {
		return "", goerr.Wrap(types.ErrDecryptionFailed, "ciphertext too short")
	}

	aead, err := chacha20poly1305.NewX(x.key[:])
	if err != nil {
		return "", goerr.Wrap(err, "failed to initialize AEAD")
	}

	nonce := raw[:chacha20poly1305.NonceSizeX]
	plaintext, err := aead.Open(nil, nonce, raw[chacha20poly1305.NonceSizeX:], nil)
	if err != nil {
		return "", goerr.Wrap(types.ErrDecryptionFailed, "failed to authenticate ciphertext")
	}

	return string(plaintext), nil
}
