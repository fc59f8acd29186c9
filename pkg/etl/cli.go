package etl

import (
	"context"
	"time"

	"github.com/cargotrack/cargotrack/pkg/carrier"
	"github.com/cargotrack/cargotrack/pkg/database"
	"github.com/cargotrack/cargotrack/pkg/freight"
	"github.com/cargotrack/cargotrack/pkg/store"
	"github.com/cargotrack/cargotrack/pkg/vessels"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	_ "time/tzdata"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "etl",
		Usage: "Run the container tracking batch jobs",
		Subcommands: []*cli.Command{
			{
				Name:      "init",
				Usage:     "Onboard new shipments from bill numbers",
				ArgsUsage: "BILLNO [BILLNO...]",
				Action: func(c *cli.Context) error {
					return withStore(c.Context, func(s *store.Store) error {
						job := InitJob{Store: s, Carrier: carrier.NewFetcher()}
						job.Run(c.Context, c.Args().Slice())
						return nil
					})
				},
			},
			{
				Name:  "update",
				Usage: "Refresh the schedule of due in-flight shipments",
				Flags: []cli.Flag{repeatEveryFlag()},
				Action: func(c *cli.Context) error {
					return repeatStage(c, func() error {
						return withStore(c.Context, func(s *store.Store) error {
							job := UpdateJob{Store: s, Carrier: carrier.NewFetcher()}
							return job.Run(c.Context, time.Now())
						})
					})
				},
			},
			{
				Name:  "track-end",
				Usage: "Close fully delivered shipments",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "policy",
						Value: string(freight.ClosePolicyAllActual),
						Usage: "close policy: all-actual or last-actual",
					},
					repeatEveryFlag(),
				},
				Action: func(c *cli.Context) error {
					policy, err := freight.ParseClosePolicy(c.String("policy"))
					if err != nil {
						return err
					}

					return repeatStage(c, func() error {
						return withStore(c.Context, func(s *store.Store) error {
							job := TrackEndJob{Store: s, Policy: policy}
							return job.Run(c.Context, time.Now())
						})
					})
				},
			},
			{
				Name:  "positions",
				Usage: "Resolve vessel identity and location for in-flight shipments",
				Flags: []cli.Flag{repeatEveryFlag()},
				Action: func(c *cli.Context) error {
					return repeatStage(c, func() error {
						return withStore(c.Context, func(s *store.Store) error {
							job := PositionJob{
								Store:     s,
								Directory: vessels.NewDirectoryFetcher(),
								Position:  vessels.NewPositionFetcher(),
							}
							return job.Run(c.Context, time.Now())
						})
					})
				},
			},
			{
				Name:  "census",
				Usage: "Bulk populate the vessel directory from a registry id walk",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "start",
						Value: 0,
						Usage: "first registry ship id",
					},
					&cli.IntFlag{
						Name:     "end",
						Usage:    "last registry ship id",
						Required: true,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Value: 100,
						Usage: "ids per logged batch",
					},
				},
				Action: func(c *cli.Context) error {
					return withStore(c.Context, func(s *store.Store) error {
						job := CensusJob{
							Store:     s,
							Directory: vessels.NewDirectoryFetcher(),
							StartID:   c.Int("start"),
							EndID:     c.Int("end"),
							BatchSize: c.Int("batch-size"),
						}
						job.Run(c.Context)
						return nil
					})
				},
			},
		},
	}
}

func repeatEveryFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "repeat-every",
		Usage: "Repeat this job every X (e.g. 30m)",
	}
}

// withStore scopes a store connection to one job invocation: acquired
// up front, released on every exit path.
func withStore(ctx context.Context, run func(s *store.Store) error) error {
	instance, err := database.Connect(ctx)
	if err != nil {
		return err
	}
	defer instance.Disconnect(context.Background())

	return run(store.New(instance))
}

func repeatStage(c *cli.Context, run func() error) error {
	repeatEvery := c.String("repeat-every")
	repeat := repeatEvery != ""
	var repeatDuration time.Duration
	if repeat {
		var err error
		repeatDuration, err = time.ParseDuration(repeatEvery)

		if err != nil {
			return err
		}
	}

	for {
		startTime := time.Now()

		if err := run(); err != nil {
			return err
		}
		if !repeat {
			break
		}

		executionDuration := time.Since(startTime)
		log.Info().Msgf("Operation took %s", executionDuration.String())

		waitTime := repeatDuration - executionDuration

		if waitTime.Seconds() > 0 {
			time.Sleep(waitTime)
		}
	}

	return nil
}
