package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/issuehub/pkg/domain/interfaces"
	"github.com/secmon-lab/issuehub/pkg/domain/types"
	"github.com/secmon-lab/issuehub/pkg/infra/cipher"
	"github.com/secmon-lab/issuehub/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Encryption selects exactly one of the two cipher variants at startup:
// encryption enabled (passphrase required) or explicitly disabled. There is
// no silent fallback to plaintext.
type Encryption struct {
	passphrase       types.EncryptionPassphrase `masq:"secret"`
	disabledInsecure bool
}

func (x *Encryption) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "encryption-passphrase",
			Usage:       "Passphrase for token encryption at rest",
			Category:    "Encryption",
			Sources:     cli.EnvVars("ISSUEHUB_ENCRYPTION_PASSPHRASE"),
			Destination: (*string)(&x.passphrase),
		},
		&cli.BoolFlag{
			Name:        "encryption-disabled-insecure",
			Usage:       "Store tokens in PLAINTEXT. Only for local development",
			Category:    "Encryption",
			Sources:     cli.EnvVars("ISSUEHUB_ENCRYPTION_DISABLED_INSECURE"),
			Destination: &x.disabledInsecure,
		},
	}
}

func (x *Encryption) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("passphrase.len", len(x.passphrase)),
		slog.Bool("disabledInsecure", x.disabledInsecure),
	)
}

func (x *Encryption) NewCipher(ctx context.Context) (interfaces.Cipher, error) {
	if x.disabledInsecure {
		if x.passphrase != "" {
			return nil, goerr.Wrap(types.ErrInvalidOption, "encryption-passphrase and encryption-disabled-insecure are mutually exclusive")
		}
		logging.From(ctx).Warn("token encryption is DISABLED, tokens will be stored in plaintext")
		return cipher.NewPlaintext(), nil
	}

	if x.passphrase == "" {
		return nil, goerr.Wrap(types.ErrInvalidOption, "encryption-passphrase is required unless encryption is explicitly disabled")
	}

	return cipher.New(x.passphrase)
}
