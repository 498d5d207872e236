package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/courtside/matchday/internal/seeding"
)

// Default configuration constants.
const (
	defaultNumPlayers  = 24
	defaultNumGames    = 1
	defaultWorkers     = 2 // multiplier for runtime.NumCPU()
	defaultTimeout     = 30 * time.Second
	defaultSeedTimeout = 10 * time.Minute
)

func main() {
	var (
		baseURL    = flag.String("url", "http://localhost:8880", "Base URL of the service")
		numPlayers = flag.Int("players", defaultNumPlayers, "Number of players to register")
		numGames   = flag.Int("games", defaultNumGames, "Number of games to schedule")
		workers    = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout    = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		generate   = flag.Bool("generate", true, "Generate teams for each game after voting")
		logFile    = flag.String("log", "", "Log file for seeding output (default: seed_log_TIMESTAMP.log)")
		verbose    = flag.Bool("verbose", false, "Enable verbose logging")
		help       = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		seeding.ShowHelp()
		return
	}

	if err := seeding.SetupLogging(*logFile); err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultSeedTimeout)
	defer cancel()

	config := &seeding.Config{
		BaseURL:    *baseURL,
		NumPlayers: *numPlayers,
		NumGames:   *numGames,
		Workers:    *workers,
		Timeout:    *timeout,
		Generate:   *generate,
		LogFile:    *logFile,
		Verbose:    *verbose,
	}

	if err := seeding.Run(ctx, config); err != nil {
		os.Stderr.WriteString("Seeding failed: " + err.Error() + "\n")
		return
	}
}
