package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/okian/pitchside/internal/app"
	"github.com/okian/pitchside/internal/fixtures"
	"github.com/okian/pitchside/pkg/logger"
)

// Default configuration constants.
const (
	defaultSeed    = 1
	defaultOutput  = "dataset.json"
	defaultWait    = 2 * time.Minute
	defaultTimeout = 5 * time.Minute
)

func main() {
	var (
		seed         = flag.Int64("seed", defaultSeed, "Generator seed; equal seeds give equal datasets")
		competitions = flag.Int("competitions", 0, "Competitions to generate (default 1)")
		events       = flag.Int("events", 0, "Events per competition (default 1)")
		teams        = flag.Int("teams", 0, "Teams per event (default 8)")
		players      = flag.Int("players", 0, "Players per team (default 11)")
		matches      = flag.Int("matches", 0, "Matches per event (default 12)")
		ratings      = flag.Int("ratings", 0, "Ratings per rated player (default 5)")
		dangling     = flag.Bool("dangling", false, "Let the last match of each event name an unknown team")
		output       = flag.String("output", defaultOutput, "Dataset file to write")
		baseURL      = flag.String("url", "", "Verify /players/top of the server at this URL after writing")
		wait         = flag.Duration("wait", defaultWait, "How long to wait for the server to serve the new dataset")
		verbose      = flag.Bool("verbose", false, "Enable debug logging")
		help         = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		showHelp()
		return
	}

	if err := logger.Init(logger.WithFormat(logger.FormatConsole)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}
	log := logger.Named("dataset-gen")

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	ds := fixtures.Generate(fixtures.GenConfig{
		Seed:                 *seed,
		Competitions:         *competitions,
		EventsPerCompetition: *events,
		Teams:                *teams,
		PlayersPerTeam:       *players,
		Matches:              *matches,
		RatingsPerPlayer:     *ratings,
		DanglingRefs:         *dangling,
	})
	if err := fixtures.WriteFile(*output, ds); err != nil {
		log.Error(ctx, "write dataset failed", logger.Error(err))
		os.Exit(1)
	}
	log.Info(ctx, "dataset written",
		logger.String("output", *output),
		logger.Int64("seed", *seed),
		logger.Any("expectedTop", fixtures.ExpectedTop(ds, app.TopN)),
	)

	if *baseURL == "" {
		return
	}
	if err := fixtures.Verify(ctx, *baseURL, ds, app.TopN, *wait); err != nil {
		log.Error(ctx, "verification failed", logger.String("url", *baseURL), logger.Error(err))
		os.Exit(1)
	}
}

// showHelp prints usage information for the dataset generator.
func showHelp() {
	os.Stdout.WriteString(`Pitchside Dataset Generator
===========================

Writes a reproducible synthetic dataset and optionally checks that a running
server ranks it the same way it is ranked locally.

Usage:
  go run ./cmd/dataset-gen [options]

Examples:
  # Default dataset: one league, eight teams of eleven
  go run ./cmd/dataset-gen -output /tmp/dataset.json

  # Larger dataset with an unknown team reference per event
  go run ./cmd/dataset-gen -seed 7 -events 4 -teams 12 -dangling

  # Write to the file a local server reloads, then verify its ranking
  PITCHSIDE_DATA_FILE=/tmp/dataset.json PITCHSIDE_REFRESH_INTERVAL_SEC=2 go run ./cmd &
  go run ./cmd/dataset-gen -output /tmp/dataset.json -url http://localhost:9080 -wait 30s

Options:
`)
	flag.PrintDefaults()
}
