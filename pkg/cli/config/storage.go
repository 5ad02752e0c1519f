package config

import (
	"log/slog"
	"time"

	"github.com/urfave/cli/v3"
)

type Storage struct {
	repositoryTTL time.Duration
}

func (x *Storage) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.DurationFlag{
			Name:        "repository-ttl",
			Usage:       "TTL of stored repository connections (templates live 30x longer)",
			Category:    "Storage",
			Sources:     cli.EnvVars("ISSUEHUB_REPOSITORY_TTL"),
			Value:       24 * time.Hour,
			Destination: &x.repositoryTTL,
		},
	}
}

func (x *Storage) RepositoryTTL() time.Duration {
	return x.repositoryTTL
}

func (x *Storage) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Duration("repositoryTTL", x.repositoryTTL),
	)
}
