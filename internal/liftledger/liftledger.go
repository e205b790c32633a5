package liftledger

import (
	"github.com/Milford1337/Lift-Simulation/internal/liftrequest"
)

// Boarder is the part of the lift the ledger needs to filter collectable calls.
type Boarder interface {
	Has(id int) bool
	CanBoard() bool
}

// Ledger holds every request that has been released and not yet dropped off,
// including passengers currently aboard. Requests are kept in (release, id) order.
type Ledger struct {
	open []liftrequest.Request
}

func NewLedger() *Ledger {
	return &Ledger{}
}

func (l *Ledger) Release(r liftrequest.Request) {
	index := len(l.open)
	for i, existing := range l.open {
		if liftrequest.Less(r, existing) {
			index = i
			break
		}
	}
	l.open = append(l.open, liftrequest.Request{})
	copy(l.open[index+1:], l.open[index:])
	l.open[index] = r
}

// Remove drops the request with the given id. It reports whether it was present.
func (l *Ledger) Remove(id int) bool {
	for i, r := range l.open {
		if r.ID == id {
			l.open = append(l.open[:i], l.open[i+1:]...)
			return true
		}
	}
	return false
}

func (l *Ledger) Len() int {
	return len(l.open)
}

// Open returns a copy of the open requests in (release, id) order.
func (l *Ledger) Open() []liftrequest.Request {
	out := make([]liftrequest.Request, len(l.open))
	copy(out, l.open)
	return out
}

func (l *Ledger) Earliest(keep func(liftrequest.Request) bool) (liftrequest.Request, bool) {
	return liftrequest.Earliest(l.open, keep)
}

// Waiting returns the earliest open call that is not yet aboard and is accepted by keep.
func (l *Ledger) Waiting(lift Boarder, keep func(liftrequest.Request) bool) (liftrequest.Request, bool) {
	return l.Earliest(func(r liftrequest.Request) bool {
		if lift.Has(r.ID) {
			return false
		}
		return keep == nil || keep(r)
	})
}

// Collectable returns the earliest waiting call at floor that can board now.
// exceptID is skipped so a committed target is not collected as an extra.
func (l *Ledger) Collectable(floor int, lift Boarder, exceptID int) (liftrequest.Request, bool) {
	if !lift.CanBoard() {
		return liftrequest.Request{}, false
	}
	return l.Waiting(lift, func(r liftrequest.Request) bool {
		return r.Origin == floor && r.ID != exceptID
	})
}
