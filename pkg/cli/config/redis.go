package config

import (
	"context"
	"log/slog"

	"github.com/secmon-lab/issuehub/pkg/domain/interfaces"
	"github.com/secmon-lab/issuehub/pkg/store/memory"
	"github.com/secmon-lab/issuehub/pkg/store/redis"
	"github.com/secmon-lab/issuehub/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

type Redis struct {
	addr     string
	password string `masq:"secret"`
	db       int64
}

func (x *Redis) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "redis-addr",
			Usage:       "Redis address, e.g. localhost:6379 (empty selects the in-memory store)",
			Category:    "Redis",
			Sources:     cli.EnvVars("ISSUEHUB_REDIS_ADDR"),
			Destination: &x.addr,
		},
		&cli.StringFlag{
			Name:        "redis-password",
			Usage:       "Redis password",
			Category:    "Redis",
			Sources:     cli.EnvVars("ISSUEHUB_REDIS_PASSWORD"),
			Destination: &x.password,
		},
		&cli.Int64Flag{
			Name:        "redis-db",
			Usage:       "Redis database number",
			Category:    "Redis",
			Sources:     cli.EnvVars("ISSUEHUB_REDIS_DB"),
			Destination: &x.db,
		},
	}
}

func (x *Redis) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("addr", x.addr),
		slog.Int("password.len", len(x.password)),
		slog.Int64("db", x.db),
	)
}

// NewStore builds the keyed store. An empty address selects the in-memory
// store, which loses all data on restart; it exists for development only.
func (x *Redis) NewStore(ctx context.Context) (interfaces.KeyedStore, error) {
	if x.addr == "" {
		logging.From(ctx).Warn("no redis address configured, using in-memory store")
		return memory.New(), nil
	}

	return redis.New(ctx, x.addr, x.password, int(x.db))
}
