package types

import (
	"log/slog"

	"github.com/google/uuid"
)

type (
	UserID               string
	RepoName             string
	TemplateName         string
	AccessToken          string
	EncryptionPassphrase string
	RequestID            string
)

func NewRequestID() RequestID {
	return RequestID(uuid.NewString())
}

func (x AccessToken) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x AccessToken) String() string {
	return "***********"
}

func (x EncryptionPassphrase) LogValue() slog.Value {
	return slog.StringValue("***********")
}

func (x EncryptionPassphrase) String() string {
	return "***********"
}
