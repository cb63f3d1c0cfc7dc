package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/fintrack/cmd/app/commands"
	"github.com/allisson/fintrack/internal/app"
	"github.com/allisson/fintrack/internal/config"
	cryptoService "github.com/allisson/fintrack/internal/crypto/service"
)

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"f"},
		Value:   "text",
		Usage:   "Output format: 'text' or 'json'",
	}
}

func operatorCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "create-master-key",
			Usage: "Generate a new master key for per-user key wrapping",
			Flags: []cli.Flag{
				&cli.IntFlag{Name: "size", Aliases: []string{"s"}, Value: 32, Usage: "Key size in bytes (16, 24 or 32)"},
				&cli.StringFlag{
					Name:  "kms-key-uri",
					Usage: "KMS key URI that encrypts the new key (e.g., base64key://, gcpkms://projects/.../cryptoKeys/...)",
				},
			},
			Action: withContainer(func(ctx context.Context, cmd *cli.Command, _ *config.Config, c *app.Container) error {
				return commands.RunCreateMasterKey(
					ctx,
					cryptoService.NewKMSService(),
					c.Logger(),
					commands.DefaultIO().Writer,
					int(cmd.Int("size")),
					cmd.String("kms-key-uri"),
				)
			}),
		},
		{
			Name:  "create-user",
			Usage: "Create a user and issue its data key",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Required: true, Usage: "Display name"},
				&cli.StringFlag{Name: "email", Aliases: []string{"e"}, Required: true, Usage: "Login email"},
				&cli.StringFlag{Name: "password", Aliases: []string{"p"}, Usage: "Password (omit to read it from stdin)"},
				formatFlag(),
			},
			Action: withContainer(func(ctx context.Context, cmd *cli.Command, _ *config.Config, c *app.Container) error {
				users, err := c.UserUseCase()
				if err != nil {
					return err
				}
				return commands.RunCreateUser(
					ctx,
					users,
					c.Logger(),
					cmd.String("name"),
					cmd.String("email"),
					cmd.String("password"),
					cmd.String("format"),
					commands.DefaultIO(),
				)
			}),
		},
		{
			Name:  "provision-user-keys",
			Usage: "Issue data keys for users created before encryption was enabled",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:    "batch-size",
					Aliases: []string{"b"},
					Usage:   "Users per batch (defaults to KEY_PROVISION_BATCH_SIZE)",
				},
				formatFlag(),
			},
			Action: withContainer(func(ctx context.Context, cmd *cli.Command, cfg *config.Config, c *app.Container) error {
				keys, err := c.UserKeyUseCase()
				if err != nil {
					return err
				}
				batchSize := int(cmd.Int("batch-size"))
				if batchSize <= 0 {
					batchSize = cfg.KeyProvisionBatchSize
				}
				return commands.RunProvisionUserKeys(
					ctx,
					keys,
					c.Logger(),
					commands.DefaultIO().Writer,
					batchSize,
					cmd.String("format"),
				)
			}),
		},
	}
}
