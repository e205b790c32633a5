package liftsim

import (
	"errors"
	"fmt"

	"github.com/Milford1337/Lift-Simulation/internal/liftconsts"
	"github.com/Milford1337/Lift-Simulation/internal/liftlog"
	"github.com/Milford1337/Lift-Simulation/internal/liftrequest"
	"github.com/Milford1337/Lift-Simulation/internal/liftstate"
	"github.com/Milford1337/Lift-Simulation/internal/logger"
	"github.com/rs/zerolog"
)

var Log = logger.GetLogger()

var (
	ErrTickLimitExceeded = errors.New("tick limit exceeded before all passengers were served")
	ErrInvariantViolated = errors.New("lift invariant violated")
	ErrInvalidTickLimit  = errors.New("tick limit must be positive")
)

type Timing struct {
	FloorTime   int
	CollectTime int
	DropTime    int
}

func DefaultTiming() Timing {
	return Timing{
		FloorTime:   liftconsts.DEFAULT_FLOOR_TIME,
		CollectTime: liftconsts.DEFAULT_COLLECT_TIME,
		DropTime:    liftconsts.DEFAULT_DROP_TIME,
	}
}

// Policy is a dispatch strategy. Advance is called exactly once per tick.
type Policy interface {
	Name() string
	Variant() liftlog.Variant
	Advance(ctx *Context) error
	Snapshot() liftstate.Snapshot
}

// EmergencyReporter is implemented by policies that run emergency retreats.
type EmergencyReporter interface {
	EmergencyCycles() int
}

type TraceFrame struct {
	Time     int                   `json:"time"`
	Snapshot liftstate.Snapshot    `json:"snapshot"`
	Open     []liftrequest.Request `json:"open"`
}

type Result struct {
	Policy       string
	TotalSeconds int
	Log          *liftlog.Log
	Stats        Stats
	Trace        []TraceFrame
}

type runOptions struct {
	trace bool
	log   *zerolog.Logger
}

type Option func(*runOptions)

// WithTrace records a snapshot of the lift and the open calls after every tick.
func WithTrace() Option {
	return func(o *runOptions) {
		o.trace = true
	}
}

func WithLogger(log zerolog.Logger) Option {
	return func(o *runOptions) {
		o.log = &log
	}
}

// RunUntilComplete drives policy over requests until every passenger is served.
// On failure the returned Result still holds the log produced so far.
func RunUntilComplete(requests []liftrequest.Request, policy Policy, tickLimit int, opts ...Option) (Result, error) {
	options := runOptions{log: Log}
	for _, opt := range opts {
		opt(&options)
	}
	runLog := options.log

	pending := make([]liftrequest.Request, len(requests))
	copy(pending, requests)
	liftrequest.Sort(pending)

	ctx := NewContext(policy.Variant())
	result := Result{Policy: policy.Name(), Log: ctx.Log}

	if err := liftrequest.ValidateAll(pending); err != nil {
		return result, err
	}
	if tickLimit < 1 {
		return result, fmt.Errorf("tick limit %d: %w", tickLimit, ErrInvalidTickLimit)
	}

	total := len(pending)
	runLog.Info().Msgf("Starting %s run with %d passengers, tick limit %d", policy.Name(), total, tickLimit)
	if total == 0 {
		return result, nil
	}

	next := 0
	for ctx.clock = 0; ; ctx.clock++ {
		if ctx.clock >= tickLimit {
			finish(&result, ctx, policy)
			runLog.Error().Msgf("Tick limit %d reached with %d of %d passengers served", tickLimit, ctx.served, total)
			return result, fmt.Errorf("%d of %d passengers served after %d ticks, %d calls still open: %w", ctx.served, total, tickLimit, ctx.Ledger.Len(), ErrTickLimitExceeded)
		}

		for next < total && pending[next].Release <= ctx.clock {
			ctx.Ledger.Release(pending[next])
			runLog.Debug().Msgf("t=%d released %s", ctx.clock, pending[next])
			next++
		}

		if err := policy.Advance(ctx); err != nil {
			finish(&result, ctx, policy)
			return result, fmt.Errorf("%s policy at t=%d: %w", policy.Name(), ctx.clock, err)
		}

		snapshot := policy.Snapshot()
		if !snapshot.WithinCapacity() {
			finish(&result, ctx, policy)
			return result, fmt.Errorf("t=%d: %d aboard with capacity %d: %w", ctx.clock, len(snapshot.Aboard), snapshot.Capacity, ErrInvariantViolated)
		}
		if options.trace {
			result.Trace = append(result.Trace, TraceFrame{Time: ctx.clock, Snapshot: snapshot, Open: ctx.Ledger.Open()})
		}
		runLog.Debug().
			Int("t", ctx.clock).
			Int("floor", snapshot.Floor).
			Str("state", snapshot.State).
			Ints("aboard", snapshot.Aboard).
			Msg("Tick")

		if ctx.served == total {
			break
		}
	}

	result.TotalSeconds = ctx.clock
	finish(&result, ctx, policy)
	runLog.Info().Msgf("Run complete after %d seconds", result.TotalSeconds)
	return result, nil
}

func finish(result *Result, ctx *Context, policy Policy) {
	result.Stats = ctx.stats
	result.Stats.FloorsTravelled = policy.Snapshot().Travelled
	if reporter, ok := policy.(EmergencyReporter); ok {
		result.Stats.EmergencyCycles = reporter.EmergencyCycles()
	}
}

// WorstCaseTicks bounds the completion time of any policy that serves requests
// one floor span at a time. It is meant for sizing the tick limit.
func WorstCaseTicks(requests []liftrequest.Request, startFloor int, timing Timing) int {
	if len(requests) == 0 {
		return 0
	}
	lowest, highest := startFloor, startFloor
	maxRelease := 0
	for _, r := range requests {
		lowest = min(lowest, r.Origin, r.Destination)
		highest = max(highest, r.Origin, r.Destination)
		maxRelease = max(maxRelease, r.Release)
	}
	span := highest - lowest
	maxAction := max(timing.CollectTime, timing.DropTime)
	perRequest := 4*span*timing.FloorTime + 2*maxAction
	return maxRelease + len(requests)*perRequest + maxAction + timing.FloorTime
}
