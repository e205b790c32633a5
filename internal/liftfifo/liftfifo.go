package liftfifo

import (
	"errors"
	"fmt"

	"github.com/Milford1337/Lift-Simulation/internal/liftconsts"
	"github.com/Milford1337/Lift-Simulation/internal/liftlog"
	"github.com/Milford1337/Lift-Simulation/internal/liftrequest"
	"github.com/Milford1337/Lift-Simulation/internal/liftsim"
	"github.com/Milford1337/Lift-Simulation/internal/liftstate"
	"github.com/Milford1337/Lift-Simulation/internal/logger"
)

var Log = logger.GetLogger()

var ErrNoEvictee = errors.New("lift is full but carries no passengers")

// Policy serves one committed target at a time, oldest call first, and picks up
// or drops other passengers at floors it passes on the way.
type Policy struct {
	name   string
	lift   *liftstate.Lift
	timing liftsim.Timing

	//Internal Variables
	state       state
	target      *liftrequest.Request
	emergencies int
}

func New(startFloor int, capacity int, timing liftsim.Timing) *Policy {
	return &Policy{
		name:   liftconsts.POLICY_OPPORTUNISTIC,
		lift:   liftstate.NewLift(startFloor, capacity),
		timing: timing,
		state:  &idle{},
	}
}

// NewBasic returns the capacity-less variant. The guard always admits, so the
// emergency retreat never runs.
func NewBasic(startFloor int, timing liftsim.Timing) *Policy {
	policy := New(startFloor, liftconsts.UNLIMITED_CAPACITY, timing)
	policy.name = liftconsts.POLICY_BASIC
	return policy
}

func (p *Policy) Name() string {
	return p.name
}

func (p *Policy) Variant() liftlog.Variant {
	return liftlog.Targeted
}

func (p *Policy) EmergencyCycles() int {
	return p.emergencies
}

func (p *Policy) Snapshot() liftstate.Snapshot {
	snapshot := p.lift.Snapshot()
	snapshot.State = p.state.name()
	snapshot.Countdown = p.state.countdown()
	snapshot.Target = p.targetID()
	switch s := p.state.(type) {
	case *emergencyRetreating:
		snapshot.Emergency = s.evictee.ID
	case *emergencyDropping:
		snapshot.Emergency = s.evictee.ID
	}
	return snapshot
}

func (p *Policy) Advance(ctx *liftsim.Context) error {
	switch s := p.state.(type) {
	case *idle:
		return p.decide(ctx)

	case *movingToCollect:
		if !expired(&s.remaining) {
			return nil
		}
		return p.arrive(ctx, p.target.Origin)

	case *movingToDrop:
		if !expired(&s.remaining) {
			return nil
		}
		return p.arrive(ctx, p.target.Destination)

	case *collecting:
		if !expired(&s.remaining) {
			return nil
		}
		if err := p.collect(ctx, *p.target); err != nil {
			return err
		}
		return p.decide(ctx)

	case *dropping:
		if !expired(&s.remaining) {
			return nil
		}
		if err := p.drop(ctx, p.target.ID); err != nil {
			return err
		}
		p.target = nil
		return p.decide(ctx)

	case *collectingExtra:
		if !expired(&s.remaining) {
			return nil
		}
		if err := p.collect(ctx, s.passenger); err != nil {
			return err
		}
		return p.decide(ctx)

	case *droppingExtra:
		if !expired(&s.remaining) {
			return nil
		}
		if err := p.drop(ctx, s.passenger.ID); err != nil {
			return err
		}
		return p.decide(ctx)

	case *emergencyRetreating:
		if !expired(&s.remaining) {
			return nil
		}
		if err := p.step(ctx, s.evictee.Destination); err != nil {
			return err
		}
		if p.lift.Floor == s.evictee.Destination {
			return p.enter(ctx, &emergencyDropping{evictee: s.evictee, remaining: p.timing.DropTime})
		}
		s.remaining = p.timing.FloorTime
		return nil

	case *emergencyDropping:
		if !expired(&s.remaining) {
			return nil
		}
		if err := p.drop(ctx, s.evictee.ID); err != nil {
			return err
		}
		return p.enter(ctx, &emergencyReturning{remaining: p.timing.FloorTime})

	case *emergencyReturning:
		if !expired(&s.remaining) {
			return nil
		}
		if err := p.step(ctx, p.target.Origin); err != nil {
			return err
		}
		if p.lift.Floor == p.target.Origin {
			return p.decide(ctx)
		}
		s.remaining = p.timing.FloorTime
		return nil

	default:
		return fmt.Errorf("unknown state %T", p.state)
	}
}

// decide picks the next action for a stationary lift. The order is fixed:
// drop the target, drop others, collect the target, collect others, move.
func (p *Policy) decide(ctx *liftsim.Context) error {
	if p.target == nil {
		next, ok := ctx.Ledger.Earliest(nil)
		if !ok {
			return p.enter(ctx, &idle{})
		}
		p.target = &next
		Log.Debug().Msgf("t=%d committed to %s", ctx.Now(), next)
	}

	target := *p.target
	floor := p.lift.Floor
	targetAboard := p.lift.Has(target.ID)

	if targetAboard && floor == target.Destination {
		return p.enter(ctx, &dropping{remaining: p.timing.DropTime})
	}

	if other, ok := p.lift.DestinedHere(target.ID); ok {
		return p.enter(ctx, &droppingExtra{passenger: other, remaining: p.timing.DropTime})
	}

	if !targetAboard && floor == target.Origin {
		if !p.lift.CanBoard() {
			return p.startEmergency(ctx)
		}
		return p.enter(ctx, &collecting{remaining: p.timing.CollectTime})
	}

	if other, ok := ctx.Ledger.Collectable(floor, p.lift, target.ID); ok {
		return p.enter(ctx, &collectingExtra{passenger: other, remaining: p.timing.CollectTime})
	}

	if targetAboard {
		return p.enter(ctx, &movingToDrop{remaining: p.timing.FloorTime})
	}
	return p.enter(ctx, &movingToCollect{remaining: p.timing.FloorTime})
}

// startEmergency frees one seat by carrying the passenger with the nearest
// destination there first. Nothing else is collected or dropped on the detour.
func (p *Policy) startEmergency(ctx *liftsim.Context) error {
	evictee, ok := p.lift.Nearest()
	if !ok {
		return fmt.Errorf("emergency at floor %d: %w", p.lift.Floor, ErrNoEvictee)
	}
	p.emergencies++
	Log.Info().Msgf("t=%d lift full at floor %d for passenger %d, retreating with passenger %d to floor %d",
		ctx.Now(), p.lift.Floor, p.target.ID, evictee.ID, evictee.Destination)
	return p.enter(ctx, &emergencyRetreating{evictee: evictee, remaining: p.timing.FloorTime})
}

func (p *Policy) arrive(ctx *liftsim.Context, goal int) error {
	if err := p.step(ctx, goal); err != nil {
		return err
	}
	return p.decide(ctx)
}

func (p *Policy) step(ctx *liftsim.Context, goal int) error {
	p.lift.Step(liftconsts.DirectionOf(p.lift.Floor, goal))
	return p.emit(ctx, liftlog.FloorArrival)
}

func (p *Policy) collect(ctx *liftsim.Context, r liftrequest.Request) error {
	if err := p.lift.Board(r); err != nil {
		return err
	}
	ctx.Boarded(r)
	return p.emit(ctx, liftlog.CollectionComplete)
}

func (p *Policy) drop(ctx *liftsim.Context, id int) error {
	r, err := p.lift.Alight(id)
	if err != nil {
		return err
	}
	ctx.Serve(r)
	return p.emit(ctx, liftlog.DropComplete)
}

// enter switches state and logs a state change when the state name differs.
func (p *Policy) enter(ctx *liftsim.Context, next state) error {
	previous := p.state
	p.state = next
	if previous.name() == next.name() {
		return nil
	}
	return p.emit(ctx, liftlog.StateChange)
}

func (p *Policy) emit(ctx *liftsim.Context, kind liftlog.EventKind) error {
	return ctx.Emit(liftlog.Entry{
		Floor:      p.lift.Floor,
		Kind:       kind,
		State:      p.state.name(),
		Target:     p.targetID(),
		Passengers: p.lift.AboardIDs(),
	})
}

func (p *Policy) targetID() int {
	if p.target == nil {
		return 0
	}
	return p.target.ID
}
