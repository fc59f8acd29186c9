package api

import (
	"context"

	"github.com/cargotrack/cargotrack/pkg/database"
	"github.com/cargotrack/cargotrack/pkg/store"
	"github.com/urfave/cli/v2"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "web-api",
		Usage: "Provides the tracking web API",
		Subcommands: []*cli.Command{
			{
				Name:  "run",
				Usage: "run web api server",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "listen",
						Value: ":8080",
						Usage: "listen target for the web server",
					},
				},
				Action: func(c *cli.Context) error {
					instance, err := database.Connect(c.Context)
					if err != nil {
						return err
					}
					defer instance.Disconnect(context.Background())

					return SetupServer(c.String("listen"), store.New(instance))
				},
			},
		},
	}
}
