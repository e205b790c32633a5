package liftbatch

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Milford1337/Lift-Simulation/internal/liftconfig"
	"github.com/Milford1337/Lift-Simulation/internal/liftconsts"
	"github.com/Milford1337/Lift-Simulation/internal/liftfifo"
	"github.com/Milford1337/Lift-Simulation/internal/liftrequest"
	"github.com/Milford1337/Lift-Simulation/internal/liftsim"
	"github.com/Milford1337/Lift-Simulation/internal/liftsweep"
	"github.com/Milford1337/Lift-Simulation/internal/logger"
)

var Log = logger.GetLogger()

var ErrUnknownPolicy = errors.New("unknown policy")

type Result struct {
	liftsim.Result
	Err error
}

// NewPolicy builds a fresh policy instance from the configuration.
func NewPolicy(name string, cfg liftconfig.Config) (liftsim.Policy, error) {
	switch name {
	case liftconsts.POLICY_OPPORTUNISTIC:
		return liftfifo.New(cfg.StartFloor, cfg.Capacity, cfg.Timing()), nil
	case liftconsts.POLICY_DIRECTIONAL:
		return liftsweep.New(cfg.StartFloor, cfg.Capacity, cfg.Timing()), nil
	case liftconsts.POLICY_BASIC:
		return liftfifo.NewBasic(cfg.StartFloor, cfg.Timing()), nil
	default:
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownPolicy)
	}
}

// PolicyNames expands "all" into every policy.
func PolicyNames(name string) []string {
	if name == liftconsts.POLICY_ALL {
		names := make([]string, len(liftconsts.Policies))
		copy(names, liftconsts.Policies)
		return names
	}
	return []string{name}
}

// RunPolicies runs every named policy on its own copy of the requests, one
// goroutine per policy. Results come back in the order of names.
func RunPolicies(ctx context.Context, runID string, requests []liftrequest.Request, cfg liftconfig.Config, names []string, opts ...liftsim.Option) []Result {
	results := make([]Result, len(names))
	var waitGroup sync.WaitGroup

	for index, name := range names {
		results[index].Policy = name

		if err := ctx.Err(); err != nil {
			results[index].Err = err
			continue
		}

		policy, err := NewPolicy(name, cfg)
		if err != nil {
			results[index].Err = err
			continue
		}

		runOpts := append([]liftsim.Option{liftsim.WithLogger(logger.ForRun(runID, name))}, opts...)

		waitGroup.Add(1)
		go func(index int, policy liftsim.Policy) {
			defer waitGroup.Done()
			result, err := liftsim.RunUntilComplete(requests, policy, cfg.TickLimit, runOpts...)
			results[index] = Result{Result: result, Err: err}
		}(index, policy)
	}

	waitGroup.Wait()
	Log.Debug().Msgf("Batch %s finished %d policies", runID, len(names))
	return results
}
