package liftutils

import (
	_ "embed"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/Milford1337/Lift-Simulation/internal/liftconsts"
	"github.com/xyproto/randomstring"
)

//go:generate sh -c "printf %s $(git rev-parse HEAD) > githash.txt"
//go:embed githash.txt
var gitHash string

const IDENTIFIER_DEFAULT_LEN = 10

var ErrUsage = errors.New("usage error")

func GetGitHash() string {
	return strings.TrimSpace(gitHash)
}

type CmdArgs struct {
	Help       bool
	Version    bool
	Verbose    bool
	ConfigPath string
	Policy     string
	Identifier string
	InputPath  string

	// Overrides, only meaningful when the matching flag was given.
	Capacity     int
	CapacitySet  bool
	TickLimit    int
	TickLimitSet bool
}

// NewRunID returns a random identifier for a run.
func NewRunID() string {
	return randomstring.EnglishFrequencyString(IDENTIFIER_DEFAULT_LEN)
}

// ProcessCmdArgs parses args (without the program name). Help and version
// output goes to output; the caller exits when Help or Version is set.
func ProcessCmdArgs(args []string, output io.Writer) (CmdArgs, error) {
	var cmdArgs CmdArgs
	flags := flag.NewFlagSet("liftsim", flag.ContinueOnError)
	flags.SetOutput(output)

	flags.BoolVar(&cmdArgs.Help, "help", false, "Show Help Window")
	flags.BoolVar(&cmdArgs.Version, "version", false, "Show Version")
	flags.BoolVar(&cmdArgs.Verbose, "verbose", false, "Log every tick at debug level")
	flags.StringVar(&cmdArgs.ConfigPath, "config", "", "Load configuration from a .yaml, .toml or .env file")
	flags.StringVar(&cmdArgs.Policy, "policy", "", "Dispatch policy: opportunistic, directional, basic or all. Defaults to the configured policy")
	flags.StringVar(&cmdArgs.Identifier, "id", "", "Set the identifier of the run. Defaults to random string")
	flags.IntVar(&cmdArgs.Capacity, "capacity", liftconsts.DEFAULT_CAPACITY, "Override the lift capacity")
	flags.IntVar(&cmdArgs.TickLimit, "ticklimit", liftconsts.DEFAULT_TICK_LIMIT, "Override the safety tick limit")

	if err := flags.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			cmdArgs.Help = true
			return cmdArgs, nil
		}
		return cmdArgs, fmt.Errorf("%v: %w", err, ErrUsage)
	}

	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "capacity":
			cmdArgs.CapacitySet = true
		case "ticklimit":
			cmdArgs.TickLimitSet = true
		}
	})

	if cmdArgs.Version {
		fmt.Fprintln(output, "Version:", GetGitHash())
		return cmdArgs, nil
	}

	if cmdArgs.Help {
		printHelp(flags, output)
		return cmdArgs, nil
	}

	if flags.NArg() != 1 {
		return cmdArgs, fmt.Errorf("expected exactly one input file, got %d: %w", flags.NArg(), ErrUsage)
	}
	cmdArgs.InputPath = flags.Arg(0)

	if cmdArgs.Identifier == "" {
		cmdArgs.Identifier = NewRunID()
	}
	return cmdArgs, nil
}

func printHelp(flags *flag.FlagSet, output io.Writer) {
	fmt.Fprintln(output, "Usage: ./liftsim [OPTIONS] <passengers.csv>")
	fmt.Fprintln(output, "Lift Simulation. Prints the total elapsed seconds, or one \"<policy> <seconds>\" line per policy with -policy all")
	fmt.Fprintln(output)
	fmt.Fprintln(output, "Options:")
	flags.PrintDefaults()
	fmt.Fprintln(output)
	fmt.Fprintln(output, "Exit codes:")
	fmt.Fprintln(output, "	0 all passengers served")
	fmt.Fprintln(output, "	1 invalid input or configuration")
	fmt.Fprintln(output, "	2 usage error")
	fmt.Fprintln(output, "	3 tick limit reached before all passengers were served")
	fmt.Fprintln(output, "	4 log file could not be written")
	fmt.Fprintln(output, "	5 run aborted by a broken lift invariant or guard")
}
