package config

import (
	"log/slog"

	"github.com/secmon-lab/issuehub/pkg/infra/ghclient"
	"github.com/urfave/cli/v3"
)

type GitHub struct {
	baseURL string
}

func (x *GitHub) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "github-base-url",
			Usage:       "GitHub API base URL (for GitHub Enterprise)",
			Category:    "GitHub",
			Sources:     cli.EnvVars("ISSUEHUB_GITHUB_BASE_URL"),
			Destination: &x.baseURL,
		},
	}
}

func (x *GitHub) NewClient() *ghclient.Client {
	var options []ghclient.Option
	if x.baseURL != "" {
		options = append(options, ghclient.WithBaseURL(x.baseURL))
	}

	return ghclient.New(options...)
}

func (x *GitHub) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("baseURL", x.baseURL),
	)
}
