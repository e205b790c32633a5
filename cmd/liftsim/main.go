package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Milford1337/Lift-Simulation/internal/liftbatch"
	"github.com/Milford1337/Lift-Simulation/internal/liftconfig"
	"github.com/Milford1337/Lift-Simulation/internal/liftio"
	"github.com/Milford1337/Lift-Simulation/internal/liftlog"
	"github.com/Milford1337/Lift-Simulation/internal/liftmetadata"
	"github.com/Milford1337/Lift-Simulation/internal/liftsim"
	"github.com/Milford1337/Lift-Simulation/internal/liftutils"
	"github.com/Milford1337/Lift-Simulation/internal/logger"
	"github.com/rs/zerolog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	EXIT_OK         = 0
	EXIT_INPUT      = 1
	EXIT_USAGE      = 2
	EXIT_TICK_LIMIT = 3
	EXIT_WRITE      = 4
	EXIT_INTERNAL   = 5
)

var Logger = logger.GetLoggerConfigured(zerolog.InfoLevel)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, stdout io.Writer) int {
	cmdArgs, err := liftutils.ProcessCmdArgs(args, stdout)
	if err != nil {
		Logger.Error().Err(err).Msg("Invalid arguments, see -help")
		return EXIT_USAGE
	}
	if cmdArgs.Help || cmdArgs.Version {
		return EXIT_OK
	}
	if cmdArgs.Verbose {
		logger.GetLoggerConfigured(zerolog.DebugLevel)
	}

	cfg, err := loadConfig(cmdArgs)
	if err != nil {
		Logger.Error().Err(err).Msg("Invalid configuration")
		return EXIT_INPUT
	}

	requests, err := liftio.ReadRequests(cmdArgs.InputPath)
	if err != nil {
		Logger.Error().Err(err).Msg("Rejected input, nothing was simulated")
		return EXIT_INPUT
	}

	metadata := liftmetadata.RunMetaData{
		SoftwareVersion: liftutils.GetGitHash(),
		Identifier:      cmdArgs.Identifier,
		InputPath:       cmdArgs.InputPath,
		Policy:          cfg.Policy,
		Capacity:        cfg.Capacity,
		TickLimit:       cfg.TickLimit,
	}
	Logger.Info().Msgf("Starting Lift Simulation: %v", metadata.String())

	if bound := liftsim.WorstCaseTicks(requests, cfg.StartFloor, cfg.Timing()); cfg.TickLimit < bound {
		Logger.Warn().Msgf("Tick limit %d is below the worst case bound %d for this input", cfg.TickLimit, bound)
	}

	names := liftbatch.PolicyNames(cfg.Policy)
	results := liftbatch.RunPolicies(context.Background(), cmdArgs.Identifier, requests, cfg, names)

	printer := message.NewPrinter(language.English)
	failure := EXIT_OK
	writeFailed := false

	for _, result := range results {
		if result.Err != nil {
			code := runErrorCode(result.Err)
			if code == EXIT_TICK_LIMIT {
				Logger.Error().Err(result.Err).Str("policy", result.Policy).Msgf("ANOMALY: tick limit of %d reached with passengers still waiting", cfg.TickLimit)
			} else {
				Logger.Error().Err(result.Err).Str("policy", result.Policy).Msg("ANOMALY: run aborted")
			}
			if failure != EXIT_INTERNAL {
				failure = code
			}
		} else {
			if len(names) > 1 {
				fmt.Fprintf(stdout, "%s %d\n", result.Policy, result.TotalSeconds)
			} else {
				fmt.Fprintf(stdout, "%d\n", result.TotalSeconds)
			}
			Logger.Info().Str("policy", result.Policy).Msg(summary(printer, result.Result))
		}

		if result.Log == nil {
			continue
		}
		logPath := liftio.LogPath(cmdArgs.InputPath)
		if len(names) > 1 {
			logPath = liftio.PolicyLogPath(cmdArgs.InputPath, result.Policy)
		}
		if err := liftio.WriteLog(logPath, result.Log); err != nil {
			Logger.Error().Err(err).Msgf("Could not write log for %s", result.Policy)
			writeFailed = true
			continue
		}
		Logger.Info().Msgf("Wrote %d events to %s", result.Log.Len(), logPath)
	}

	switch {
	case failure != EXIT_OK:
		return failure
	case writeFailed:
		return EXIT_WRITE
	default:
		return EXIT_OK
	}
}

func loadConfig(cmdArgs liftutils.CmdArgs) (liftconfig.Config, error) {
	cfg := liftconfig.Default()
	if cmdArgs.ConfigPath != "" {
		loaded, err := liftconfig.LoadFile(cmdArgs.ConfigPath)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	if cmdArgs.Policy != "" {
		cfg.Policy = cmdArgs.Policy
	}
	if cmdArgs.CapacitySet {
		cfg.Capacity = cmdArgs.Capacity
	}
	if cmdArgs.TickLimitSet {
		cfg.TickLimit = cmdArgs.TickLimit
	}
	return cfg, cfg.Validate()
}

// runErrorCode separates the tick limit safety valve from broken invariants and guard refusals.
func runErrorCode(err error) int {
	if errors.Is(err, liftsim.ErrTickLimitExceeded) {
		return EXIT_TICK_LIMIT
	}
	return EXIT_INTERNAL
}

func summary(printer *message.Printer, result liftsim.Result) string {
	stats := result.Stats
	text := printer.Sprintf("%s: %d passengers served in %d seconds, mean wait %.1f s, longest wait %d s, mean ride %.1f s, %d floors travelled",
		result.Policy, result.Log.Count(liftlog.DropComplete), result.TotalSeconds,
		stats.MeanWait(), stats.MaxWait(), stats.MeanRide(), stats.FloorsTravelled)
	if stats.EmergencyCycles > 0 {
		text += printer.Sprintf(", %d emergency retreats", stats.EmergencyCycles)
	}
	return text
}
