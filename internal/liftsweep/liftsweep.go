package liftsweep

import (
	"fmt"

	"github.com/Milford1337/Lift-Simulation/internal/liftconsts"
	"github.com/Milford1337/Lift-Simulation/internal/liftlog"
	"github.com/Milford1337/Lift-Simulation/internal/liftrequest"
	"github.com/Milford1337/Lift-Simulation/internal/liftsim"
	"github.com/Milford1337/Lift-Simulation/internal/liftstate"
	"github.com/Milford1337/Lift-Simulation/internal/logger"
)

var Log = logger.GetLogger()

// Policy sweeps in one direction, serving every floor on the way, and only
// turns around once nothing is left ahead.
type Policy struct {
	lift   *liftstate.Lift
	timing liftsim.Timing

	//Internal Variables
	state     state
	direction liftconsts.Direction
}

func New(startFloor int, capacity int, timing liftsim.Timing) *Policy {
	return &Policy{
		lift:      liftstate.NewLift(startFloor, capacity),
		timing:    timing,
		state:     &idle{},
		direction: liftconsts.None,
	}
}

func (p *Policy) Name() string {
	return liftconsts.POLICY_DIRECTIONAL
}

func (p *Policy) Variant() liftlog.Variant {
	return liftlog.Directional
}

func (p *Policy) Snapshot() liftstate.Snapshot {
	snapshot := p.lift.Snapshot()
	snapshot.State = p.state.name()
	snapshot.Countdown = p.state.countdown()
	snapshot.Direction = p.direction
	return snapshot
}

func (p *Policy) Advance(ctx *liftsim.Context) error {
	switch s := p.state.(type) {
	case *idle:
		return p.start(ctx)

	case *movingUp:
		if !expired(&s.remaining) {
			return nil
		}
		return p.arrive(ctx)

	case *movingDown:
		if !expired(&s.remaining) {
			return nil
		}
		return p.arrive(ctx)

	case *collecting:
		if !expired(&s.remaining) {
			return nil
		}
		if err := p.lift.Board(s.passenger); err != nil {
			return err
		}
		ctx.Boarded(s.passenger)
		if err := p.emit(ctx, liftlog.CollectionComplete); err != nil {
			return err
		}
		return p.settle(ctx)

	case *dropping:
		if !expired(&s.remaining) {
			return nil
		}
		r, err := p.lift.Alight(s.passenger.ID)
		if err != nil {
			return err
		}
		ctx.Serve(r)
		if err := p.emit(ctx, liftlog.DropComplete); err != nil {
			return err
		}
		return p.settle(ctx)

	default:
		return fmt.Errorf("unknown state %T", p.state)
	}
}

// start leaves Idle for the earliest waiting call, collecting on the spot
// when it is on this floor.
func (p *Policy) start(ctx *liftsim.Context) error {
	call, ok := ctx.Ledger.Waiting(p.lift, nil)
	if !ok {
		return nil
	}
	if call.Origin == p.lift.Floor {
		p.direction = liftconsts.None
		return p.enter(ctx, &collecting{passenger: call, remaining: p.timing.CollectTime})
	}
	p.direction = liftconsts.DirectionOf(p.lift.Floor, call.Origin)
	Log.Debug().Msgf("t=%d leaving idle %s for %s", ctx.Now(), p.direction, call)
	return p.move(ctx)
}

func (p *Policy) arrive(ctx *liftsim.Context) error {
	p.lift.Step(p.direction)
	if err := p.emit(ctx, liftlog.FloorArrival); err != nil {
		return err
	}
	return p.settle(ctx)
}

// settle chooses the next action at the current floor. Drops come before
// collections, and the direction only flips once nothing is left ahead.
func (p *Policy) settle(ctx *liftsim.Context) error {
	if r, ok := p.lift.DestinedHere(0); ok {
		return p.enter(ctx, &dropping{passenger: r, remaining: p.timing.DropTime})
	}
	if r, ok := ctx.Ledger.Collectable(p.lift.Floor, p.lift, 0); ok {
		return p.enter(ctx, &collecting{passenger: r, remaining: p.timing.CollectTime})
	}

	if p.direction == liftconsts.None {
		p.direction = p.preferredDirection(ctx)
	}

	switch {
	case p.workAhead(ctx, p.direction):
		return p.move(ctx)
	case p.workAhead(ctx, p.direction.Opposite()):
		Log.Debug().Msgf("t=%d reversing to %s at floor %d", ctx.Now(), p.direction.Opposite(), p.lift.Floor)
		p.direction = p.direction.Opposite()
		return p.move(ctx)
	default:
		p.direction = liftconsts.None
		return p.enter(ctx, &idle{})
	}
}

// preferredDirection is used when a collection completes with no direction
// set. Passengers aboard decide first, then the oldest waiting call.
func (p *Policy) preferredDirection(ctx *liftsim.Context) liftconsts.Direction {
	if r, ok := liftrequest.Earliest(p.lift.Aboard(), nil); ok {
		return liftconsts.DirectionOf(p.lift.Floor, r.Destination)
	}
	if r, ok := ctx.Ledger.Waiting(p.lift, nil); ok {
		return liftconsts.DirectionOf(p.lift.Floor, r.Origin)
	}
	return liftconsts.None
}

// workAhead reports whether a passenger aboard is headed past the current
// floor in dirn, or a waiting call lies past it and there is room to take it.
func (p *Policy) workAhead(ctx *liftsim.Context, dirn liftconsts.Direction) bool {
	if dirn == liftconsts.None {
		return false
	}
	floor := p.lift.Floor
	if p.lift.AnyAboard(func(r liftrequest.Request) bool {
		return dirn.Beyond(floor, r.Destination)
	}) {
		return true
	}
	if !p.lift.CanBoard() {
		return false
	}
	_, ok := ctx.Ledger.Waiting(p.lift, func(r liftrequest.Request) bool {
		return dirn.Beyond(floor, r.Origin)
	})
	return ok
}

func (p *Policy) move(ctx *liftsim.Context) error {
	if p.direction == liftconsts.Up {
		return p.enter(ctx, &movingUp{remaining: p.timing.FloorTime})
	}
	return p.enter(ctx, &movingDown{remaining: p.timing.FloorTime})
}

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
		Direction:  p.direction,
		Passengers: p.lift.AboardIDs(),
	})
}
