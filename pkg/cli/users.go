package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/gots/slice"
	"github.com/secmon-lab/issuehub/pkg/cli/config"
	"github.com/secmon-lab/issuehub/pkg/domain/types"
	"github.com/secmon-lab/issuehub/pkg/infra"
	"github.com/secmon-lab/issuehub/pkg/usecase"
	"github.com/secmon-lab/issuehub/pkg/utils/safe"

	"github.com/urfave/cli/v3"
)

// usersCommand lists all user IDs that currently have stored repository
// connections. Diagnostic use only.
func usersCommand() *cli.Command {
	var (
		redisCfg config.Redis
		verbose  bool
	)

	return &cli.Command{
		Name:  "users",
		Usage: "List user IDs with stored repository connections",
		Flags: slice.Flatten(
			[]cli.Flag{
				&cli.BoolFlag{
					Name:        "verbose",
					Aliases:     []string{"v"},
					Usage:       "Also list each user's repositories",
					Destination: &verbose,
				},
			},
			redisCfg.Flags(),
		),
		Action: func(ctx context.Context, c *cli.Command) error {
			keyedStore, err := redisCfg.NewStore(ctx)
			if err != nil {
				return err
			}
			defer safe.Close(keyedStore)

			uc := usecase.New(infra.New(infra.WithKeyedStore(keyedStore)))

			users := uc.ListAllUsers(ctx)
			for _, userID := range users {
				fmt.Println(userID)
				if verbose {
					for _, repoName := range uc.ListRepositories(ctx, types.UserID(userID)) {
						fmt.Printf("  %s\n", repoName)
					}
				}
			}
			fmt.Printf("%d user(s)\n", len(users))

			return nil
		},
	}
}
