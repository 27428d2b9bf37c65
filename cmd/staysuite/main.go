package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/travelqa/staysuite/internal/browser"
	internalcli "github.com/travelqa/staysuite/internal/cli"
	"github.com/travelqa/staysuite/internal/config"
	"github.com/travelqa/staysuite/internal/database"
	"github.com/travelqa/staysuite/internal/logging"
	"github.com/travelqa/staysuite/internal/models"
	"github.com/travelqa/staysuite/internal/repository"
	"github.com/travelqa/staysuite/internal/scenarios"
	"github.com/travelqa/staysuite/internal/services"
)

var version = "0.1.0"

// buildCatalog returns the hotel catalog the site is served from, and a
// cleanup to run on exit
func buildCatalog(kind string, log logrus.FieldLogger) (services.CatalogService, func(), error) {
	switch kind {
	case "memory":
		repo := repository.NewMemoryHotelRepository()
		if _, err := repository.Seed(repo, models.SeedHotels()); err != nil {
			return nil, nil, err
		}
		return services.NewCatalogService(repo), func() {}, nil
	case "postgres":
	default:
		return nil, nil, fmt.Errorf("unknown catalog %q, want memory or postgres", kind)
	}

	if !config.PostgresConfigured(os.Getenv) {
		return nil, nil, errors.New("catalog postgres needs POSTGRES_* configuration")
	}
	pgConfig, err := config.LoadPostgresConfig(os.Getenv)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load postgres config: %w", err)
	}
	if err := database.Connect(pgConfig); err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	cleanup := func() {
		if err := database.Close(); err != nil {
			log.WithError(err).Warn("Failed to close database")
		}
	}
	log.Info("Connected to database successfully")

	if err := database.RunMigrations(log); err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	repo := repository.NewHotelRepository()
	inserted, err := repository.Seed(repo, models.SeedHotels())
	if err != nil {
		cleanup()
		return nil, nil, fmt.Errorf("failed to seed catalog: %w", err)
	}
	log.WithField("hotels", inserted).Info("Catalog seeded")

	return services.NewCatalogService(repo), cleanup, nil
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the fixture travel site",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "listen port, overrides PORT"},
			&cli.StringFlag{Name: "catalog", Value: "memory", Usage: "hotel catalog: memory or postgres"},
			&cli.StringFlag{Name: "root", Value: ".", Usage: "directory holding templates/ and static/"},
			&cli.StringFlag{Name: "log-level", Value: "info", EnvVars: []string{"LOG_LEVEL"}},
			&cli.StringFlag{Name: "log-format", Value: "text", EnvVars: []string{"LOG_FORMAT"}},
		},
		Action: func(c *cli.Context) error {
			level, err := logrus.ParseLevel(c.String("log-level"))
			if err != nil {
				return err
			}
			log, err := logging.New(level, c.String("log-format"), os.Stderr)
			if err != nil {
				return err
			}

			serverConfig, err := config.LoadServerConfig(os.Getenv)
			if err != nil {
				return err
			}
			if c.IsSet("port") {
				serverConfig.Port = c.String("port")
			}

			catalog, cleanup, err := buildCatalog(c.String("catalog"), log)
			if err != nil {
				return err
			}
			defer cleanup()

			deps, err := internalcli.BuildServerDependencies(serverConfig, catalog, c.String("root"), log)
			if err != nil {
				return err
			}
			return internalcli.RunServe(deps)
		},
	}
}

// JourneyCommand returns the journey command
func JourneyCommand() *cli.Command {
	return &cli.Command{
		Name:  "journey",
		Usage: "Run the search and filter journeys against the configured site",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "properties", Value: config.DefaultPropertiesFile, Usage: "key=value file with browser and url"},
			&cli.StringFlag{Name: "location", Value: scenarios.DefaultSearch.Location},
			&cli.StringFlag{Name: "room", Value: scenarios.DefaultSearch.RoomSize},
			&cli.IntFlag{Name: "months", Value: scenarios.DefaultSearch.MonthsForward, Usage: "months between check-in and check-out"},
			&cli.StringFlag{Name: "filter", Usage: "amenity filter; without it the Spa and Free WiFi journeys run"},
			&cli.StringFlag{Name: "present", Usage: "hotel expected in the filtered results"},
			&cli.StringFlag{Name: "absent", Usage: "hotel expected missing from the filtered results"},
			&cli.BoolFlag{Name: "reset", Usage: "reset the filter between the absent and present checks"},
		},
		Action: func(c *cli.Context) error {
			props, err := config.ReadProperties(c.String("properties"))
			if err != nil {
				return err
			}
			suite, err := config.LoadSuiteConfig(config.Lookup(props, os.Getenv))
			if err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}
			log, err := logging.New(suite.LogLevel, suite.LogFormat, os.Stderr)
			if err != nil {
				return err
			}

			search := scenarios.SearchCriteria{
				Location:      c.String("location"),
				RoomSize:      c.String("room"),
				MonthsForward: c.Int("months"),
			}
			plans := []scenarios.Plan{scenarios.SpaPlan, scenarios.WiFiPlan}
			if c.IsSet("filter") {
				plans = []scenarios.Plan{{
					Check: scenarios.FilterCheck{
						Filter:  c.String("filter"),
						Present: c.String("present"),
						Absent:  c.String("absent"),
					},
					Reset: c.Bool("reset"),
				}}
			}

			for _, plan := range plans {
				plan.Search = search
				entry := log.WithField("filter", plan.Check.Filter)
				if err := internalcli.RunJourney(suite, plan, browser.Open, entry); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug(".env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "staysuite",
		Usage:   "Browser journeys for the hotel search site, and a fixture site to run them against",
		Version: version,
		Commands: []*cli.Command{
			ServeCommand(),
			JourneyCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Error("staysuite failed")
		os.Exit(1)
	}
}
