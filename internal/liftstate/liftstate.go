package liftstate

import (
	"errors"
	"fmt"

	"github.com/Milford1337/Lift-Simulation/internal/liftconsts"
	"github.com/Milford1337/Lift-Simulation/internal/liftrequest"
	"github.com/Milford1337/Lift-Simulation/internal/logger"
)

var Log = logger.GetLogger()

var (
	ErrCapacityExceeded = errors.New("lift capacity exceeded")
	ErrWrongFloor       = errors.New("lift is at the wrong floor")
	ErrNotAboard        = errors.New("passenger is not aboard")
	ErrAlreadyAboard    = errors.New("passenger is already aboard")
)

// Lift is the physical part of the simulation: where the car is and who is in it.
// Policy specific state lives in the policies themselves.
type Lift struct {
	Floor    int
	Capacity int

	//Internal Variables
	aboard    []liftrequest.Request
	travelled int
}

func NewLift(startFloor int, capacity int) *Lift {
	return &Lift{
		Floor:    startFloor,
		Capacity: capacity,
	}
}

// limited reports whether the lift enforces a capacity at all.
func (l *Lift) limited() bool {
	return l.Capacity != liftconsts.UNLIMITED_CAPACITY
}

func (l *Lift) load() int {
	return len(l.aboard)
}

func (l *Lift) full() bool {
	return l.limited() && len(l.aboard) >= l.Capacity
}

// CanBoard is the capacity guard. Every collection path asks it before boarding.
func (l *Lift) CanBoard() bool {
	return !l.full()
}

func (l *Lift) Has(id int) bool {
	for _, r := range l.aboard {
		if r.ID == id {
			return true
		}
	}
	return false
}

func (l *Lift) Board(r liftrequest.Request) error {
	if r.Origin != l.Floor {
		return fmt.Errorf("boarding passenger %d at floor %d, origin is %d: %w", r.ID, l.Floor, r.Origin, ErrWrongFloor)
	}
	if l.Has(r.ID) {
		return fmt.Errorf("boarding passenger %d: %w", r.ID, ErrAlreadyAboard)
	}
	if !l.CanBoard() {
		return fmt.Errorf("boarding passenger %d with %d/%d aboard: %w", r.ID, l.load(), l.Capacity, ErrCapacityExceeded)
	}

	index := len(l.aboard)
	for i, existing := range l.aboard {
		if liftrequest.Less(r, existing) {
			index = i
			break
		}
	}
	l.aboard = append(l.aboard, liftrequest.Request{})
	copy(l.aboard[index+1:], l.aboard[index:])
	l.aboard[index] = r
	return nil
}

// Alight removes a passenger, which must be aboard and at its destination.
func (l *Lift) Alight(id int) (liftrequest.Request, error) {
	for i, r := range l.aboard {
		if r.ID != id {
			continue
		}
		if r.Destination != l.Floor {
			return r, fmt.Errorf("dropping passenger %d at floor %d, destination is %d: %w", r.ID, l.Floor, r.Destination, ErrWrongFloor)
		}
		l.aboard = append(l.aboard[:i], l.aboard[i+1:]...)
		return r, nil
	}
	return liftrequest.Request{}, fmt.Errorf("dropping passenger %d: %w", id, ErrNotAboard)
}

func (l *Lift) Step(dirn liftconsts.Direction) {
	if dirn == liftconsts.None {
		Log.Warn().Msgf("Lift asked to step with no direction at floor %d", l.Floor)
		return
	}
	l.Floor += int(dirn)
	l.travelled++
}

// Aboard returns the passengers in (release, id) order.
func (l *Lift) Aboard() []liftrequest.Request {
	out := make([]liftrequest.Request, len(l.aboard))
	copy(out, l.aboard)
	return out
}

func (l *Lift) AboardIDs() []int {
	return liftrequest.IDs(l.aboard)
}

// DestinedHere returns the earliest passenger aboard whose destination is the current floor.
func (l *Lift) DestinedHere(exceptID int) (liftrequest.Request, bool) {
	return liftrequest.Earliest(l.aboard, func(r liftrequest.Request) bool {
		return r.Destination == l.Floor && r.ID != exceptID
	})
}

// AnyAboard reports whether some passenger aboard is accepted by keep.
func (l *Lift) AnyAboard(keep func(liftrequest.Request) bool) bool {
	_, ok := liftrequest.Earliest(l.aboard, keep)
	return ok
}

// Nearest returns the passenger aboard whose destination is closest to the
// current floor. Ties go to the lowest id.
func (l *Lift) Nearest() (liftrequest.Request, bool) {
	var best liftrequest.Request
	bestDistance := -1
	for _, r := range l.aboard {
		distance := abs(r.Destination - l.Floor)
		if bestDistance == -1 || distance < bestDistance || (distance == bestDistance && r.ID < best.ID) {
			best = r
			bestDistance = distance
		}
	}
	return best, bestDistance != -1
}

// Snapshot fills in the physical part of a snapshot. Policies add their own fields.
func (l *Lift) Snapshot() Snapshot {
	return Snapshot{
		Floor:     l.Floor,
		Capacity:  l.Capacity,
		Aboard:    l.AboardIDs(),
		Travelled: l.travelled,
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
