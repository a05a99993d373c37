// Command arena is a first-person target shooter: find and destroy the
// numbered red pillars hidden among a thousand obstacles before the clock or
// the ammunition runs out.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"arena/internal/desktop"
	"arena/internal/game"
	"arena/internal/radar"
)

type options struct {
	cfg   game.Config
	radar bool
}

// parseArgs loads the dotenv config named by -config, then applies any flags
// given explicitly on top of it.
func parseArgs(args []string, stderr io.Writer) (options, error) {
	fs := flag.NewFlagSet("arena", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", ".env", "dotenv file with ARENA_* settings")
	seed := fs.Uint64("seed", 0, "world seed; 0 picks one from the clock")
	name := fs.String("name", "", "player name")
	useRadar := fs.Bool("radar", false, "play on the terminal radar instead of a window")
	debug := fs.Bool("debug", false, "write a log to logs/arena.log")
	fullscreen := fs.Bool("fullscreen", false, "open the window fullscreen")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}

	cfg, err := game.LoadConfig(*configPath)
	if err != nil {
		return options{}, fmt.Errorf("config: %w", err)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "seed":
			cfg.Seed = *seed
		case "name":
			cfg.PlayerName = *name
		case "debug":
			cfg.Debug = *debug
		case "fullscreen":
			cfg.Fullscreen = *fullscreen
		}
	})
	if err := cfg.Validate(); err != nil {
		return options{}, fmt.Errorf("config: %w", err)
	}
	return options{cfg: cfg, radar: *useRadar}, nil
}

func main() {
	opts, err := parseArgs(os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "arena: %v\n", err)
		os.Exit(2)
	}

	logFile := setupLogging(logDir, opts.cfg.Debug)

	run := desktop.Run
	if opts.radar {
		run = radar.Run
	}
	err = run(opts.cfg)
	if logFile != nil {
		logFile.Close()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "arena: %v\n", err)
		os.Exit(1)
	}
}
