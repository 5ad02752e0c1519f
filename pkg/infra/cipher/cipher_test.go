package cipher_test

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/issuehub/pkg/domain/types"
	"github.com/secmon-lab/issuehub/pkg/infra/cipher"
)

func TestRoundTrip(t *testing.T) {
	c := gt.R1(cipher.New("test-passphrase")).NoError(t)

	for _, token := range []string{
		"ghp_1234567890abcdef",
		"",
		"token with spaces and \x00 bytes",
		"日本語トークン",
	} {
		encrypted := gt.R1(c.Encrypt(token)).NoError(t)
		decrypted := gt.R1(c.Decrypt(encrypted)).NoError(t)
		gt.V(t, decrypted).Equal(token)
	}
}

func TestCiphertextIsNotPlaintext(t *testing.T) {
	c := gt.R1(cipher.New("test-passphrase")).NoError(t)

	encrypted := gt.R1(c.Encrypt("ghp_secret")).NoError(t)
	gt.V(t, encrypted).NotEqual("ghp_secret")

	// Same plaintext encrypts differently each time (random nonce)
	encrypted2 := gt.R1(c.Encrypt("ghp_secret")).NoError(t)
	gt.V(t, encrypted).NotEqual(encrypted2)
}

func TestTamperDetection(t *testing.T) {
	c := gt.R1(cipher.New("test-passphrase")).NoError(t)

	encrypted := gt.R1(c.Encrypt("ghp_secret")).NoError(t)
	raw := gt.R1(base64.StdEncoding.DecodeString(encrypted)).NoError(t)

	for i := range raw {
		tampered := append([]byte(nil), raw...)
		tampered[i] ^= 0x01

		_, err := c.Decrypt(base64.StdEncoding.EncodeToString(tampered))
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrDecryptionFailed))
	}
}

func TestDecryptWithWrongKey(t *testing.T) {
	c1 := gt.R1(cipher.New("passphrase-one")).NoError(t)
	c2 := gt.R1(cipher.New("passphrase-two")).NoError(t)

	encrypted := gt.R1(c1.Encrypt("ghp_secret")).NoError(t)

	_, err := c2.Decrypt(encrypted)
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrDecryptionFailed))
}

func TestDecryptGarbage(t *testing.T) {
	c := gt.R1(cipher.New("test-passphrase")).NoError(t)

	for _, ciphertext := range []string{
		"not base64 at all!!",
		"",
		base64.StdEncoding.EncodeToString([]byte("short")),
		base64.StdEncoding.EncodeToString(make([]byte, 64)),
	} {
		_, err := c.Decrypt(ciphertext)
		gt.Error(t, err)
		gt.True(t, errors.Is(err, types.ErrDecryptionFailed))
	}
}

func TestEmptyPassphrase(t *testing.T) {
	_, err := cipher.New("")
	gt.Error(t, err)
	gt.True(t, errors.Is(err, types.ErrInvalidOption))
}

func TestPassphraseOfAnyLength(t *testing.T) {
	for _, passphrase := range []types.EncryptionPassphrase{
		"x",
		"a passphrase that is much longer than thirty-two bytes for sure",
	} {
		c := gt.R1(cipher.New(passphrase)).NoError(t)
		encrypted := gt.R1(c.Encrypt("token")).NoError(t)
		gt.V(t, gt.R1(c.Decrypt(encrypted)).NoError(t)).Equal("token")
	}
}

func TestPlaintextPassthrough(t *testing.T) {
	c := cipher.NewPlaintext()

	encrypted := gt.R1(c.Encrypt("ghp_secret")).NoError(t)
	gt.V(t, encrypted).Equal("ghp_secret")
	gt.V(t, gt.R1(c.Decrypt(encrypted)).NoError(t)).Equal("ghp_secret")
}
