package liftsim

import (
	"errors"
	"strings"
	"testing"

	"github.com/Milford1337/Lift-Simulation/internal/liftlog"
	"github.com/Milford1337/Lift-Simulation/internal/liftrequest"
	"github.com/Milford1337/Lift-Simulation/internal/liftstate"
	"github.com/Milford1337/Lift-Simulation/internal/logger"
	"github.com/rs/zerolog"
)

func init() {
	_ = logger.GetLoggerConfigured(zerolog.Disabled)
}

// teleportPolicy collects the earliest open call and drops it two ticks later.
type teleportPolicy struct {
	lift    *liftstate.Lift
	current *liftrequest.Request
	elapsed int
}

func (p *teleportPolicy) Name() string             { return "teleport" }
func (p *teleportPolicy) Variant() liftlog.Variant { return liftlog.Targeted }

func (p *teleportPolicy) Advance(ctx *Context) error {
	if p.current == nil {
		r, ok := ctx.Ledger.Earliest(nil)
		if !ok {
			return nil
		}
		p.lift.Floor = r.Origin
		if err := p.lift.Board(r); err != nil {
			return err
		}
		ctx.Boarded(r)
		p.current = &r
		p.elapsed = 0
		return ctx.Emit(liftlog.Entry{Floor: p.lift.Floor, Kind: liftlog.CollectionComplete, Target: r.ID, Passengers: p.lift.AboardIDs()})
	}
	p.elapsed++
	if p.elapsed < 2 {
		return nil
	}
	p.lift.Floor = p.current.Destination
	r, err := p.lift.Alight(p.current.ID)
	if err != nil {
		return err
	}
	ctx.Serve(r)
	p.current = nil
	return ctx.Emit(liftlog.Entry{Floor: p.lift.Floor, Kind: liftlog.DropComplete, Target: r.ID, Passengers: p.lift.AboardIDs()})
}

func (p *teleportPolicy) Snapshot() liftstate.Snapshot {
	s := p.lift.Snapshot()
	s.State = "Teleporting"
	return s
}

type stuckPolicy struct {
	lift *liftstate.Lift
}

func (p *stuckPolicy) Name() string                 { return "stuck" }
func (p *stuckPolicy) Variant() liftlog.Variant     { return liftlog.Directional }
func (p *stuckPolicy) Advance(ctx *Context) error   { return nil }
func (p *stuckPolicy) Snapshot() liftstate.Snapshot { return p.lift.Snapshot() }

type overfullPolicy struct{}

func (p overfullPolicy) Name() string             { return "overfull" }
func (p overfullPolicy) Variant() liftlog.Variant { return liftlog.Targeted }
func (p overfullPolicy) Advance(ctx *Context) error {
	return nil
}
func (p overfullPolicy) Snapshot() liftstate.Snapshot {
	return liftstate.Snapshot{Capacity: 1, Aboard: []int{1, 2}}
}

func TestRunUntilCompleteReleasesInOrder(t *testing.T) {
	requests := []liftrequest.Request{
		{ID: 2, Origin: 4, Destination: 1, Release: 3},
		{ID: 1, Origin: 1, Destination: 2, Release: 0},
	}
	policy := &teleportPolicy{lift: liftstate.NewLift(1, 1)}

	result, err := RunUntilComplete(requests, policy, 100, WithTrace())
	if err != nil {
		t.Fatalf("Expected run to complete, got %v", err)
	}
	// passenger 1: collected t0, dropped t2; passenger 2: collected t3, dropped t5
	if result.TotalSeconds != 5 {
		t.Errorf("Expected 5 seconds, got %d", result.TotalSeconds)
	}
	if len(result.Trace) != 6 {
		t.Fatalf("Expected 6 trace frames, got %d", len(result.Trace))
	}
	// passengers aboard stay open until dropped off
	openAt := map[int][]int{0: {1}, 1: {1}, 2: {}, 3: {2}, 5: {}}
	for tick, want := range openAt {
		open := result.Trace[tick].Open
		if len(open) != len(want) || (len(want) > 0 && open[0].ID != want[0]) {
			t.Errorf("t=%d: expected open calls %v, got %v", tick, want, open)
		}
	}
	if len(result.Stats.Passengers) != 2 {
		t.Fatalf("Expected stats for 2 passengers, got %d", len(result.Stats.Passengers))
	}
	first := result.Stats.Passengers[0]
	if first.ID != 1 || first.Wait != 0 || first.Ride != 2 {
		t.Errorf("Unexpected stats for passenger 1: %+v", first)
	}
	if result.Log.Count(liftlog.DropComplete) != 2 {
		t.Errorf("Expected 2 drop-complete entries, got %d", result.Log.Count(liftlog.DropComplete))
	}
}

func TestRunUntilCompleteTickLimit(t *testing.T) {
	requests := []liftrequest.Request{{ID: 1, Origin: 1, Destination: 2}}
	policy := &stuckPolicy{lift: liftstate.NewLift(1, 1)}

	result, err := RunUntilComplete(requests, policy, 50)
	if !errors.Is(err, ErrTickLimitExceeded) {
		t.Fatalf("Expected ErrTickLimitExceeded, got %v", err)
	}
	if result.TotalSeconds != 0 {
		t.Errorf("Expected no total on an aborted run, got %d", result.TotalSeconds)
	}
	if result.Log == nil {
		t.Errorf("Expected partial log to be returned")
	}
	if !strings.Contains(err.Error(), "0 of 1 passengers served after 50 ticks, 1 calls still open") {
		t.Errorf("Expected error to report the open calls, got %v", err)
	}
}

func TestRunUntilCompleteInvariant(t *testing.T) {
	requests := []liftrequest.Request{{ID: 1, Origin: 1, Destination: 2}}
	_, err := RunUntilComplete(requests, overfullPolicy{}, 50)
	if !errors.Is(err, ErrInvariantViolated) {
		t.Errorf("Expected ErrInvariantViolated, got %v", err)
	}
}

func TestRunUntilCompleteRejectsInvalidInput(t *testing.T) {
	requests := []liftrequest.Request{{ID: 1, Origin: 3, Destination: 3}}
	policy := &stuckPolicy{lift: liftstate.NewLift(1, 1)}
	result, err := RunUntilComplete(requests, policy, 50)
	if !errors.Is(err, liftrequest.ErrSameFloor) {
		t.Errorf("Expected ErrSameFloor, got %v", err)
	}
	if result.Log.Len() != 0 {
		t.Errorf("Expected empty log, got %d entries", result.Log.Len())
	}

	_, err = RunUntilComplete(nil, policy, 0)
	if !errors.Is(err, ErrInvalidTickLimit) {
		t.Errorf("Expected ErrInvalidTickLimit, got %v", err)
	}
}

func TestRunUntilCompleteEmptyInput(t *testing.T) {
	policy := &stuckPolicy{lift: liftstate.NewLift(1, 1)}
	result, err := RunUntilComplete(nil, policy, 10)
	if err != nil || result.TotalSeconds != 0 {
		t.Errorf("Expected empty run to finish at 0, got %d, %v", result.TotalSeconds, err)
	}
}

func TestWorstCaseTicks(t *testing.T) {
	requests := []liftrequest.Request{{ID: 1, Origin: 1, Destination: 5, Release: 0}}
	bound := WorstCaseTicks(requests, 1, DefaultTiming())
	// 0 + 1*(4*4*10 + 2*5) + 5 + 10
	if bound != 185 {
		t.Errorf("Expected bound 185, got %d", bound)
	}
	if WorstCaseTicks(nil, 1, DefaultTiming()) != 0 {
		t.Errorf("Expected bound 0 for no requests")
	}
}

func TestStats(t *testing.T) {
	stats := Stats{Passengers: []PassengerStats{{ID: 1, Wait: 4, Ride: 10}, {ID: 2, Wait: 8, Ride: 20}}}
	if stats.MeanWait() != 6 || stats.MeanRide() != 15 || stats.MaxWait() != 8 {
		t.Errorf("Unexpected stats %v/%v/%v", stats.MeanWait(), stats.MeanRide(), stats.MaxWait())
	}
	if (Stats{}).MeanWait() != 0 {
		t.Errorf("Expected zero mean for no passengers")
	}
}
