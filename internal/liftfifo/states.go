package liftfifo

import (
	"github.com/Milford1337/Lift-Simulation/internal/liftrequest"
)

// state is one variant of the machine. Each variant carries only its own countdown and passenger.
type state interface {
	name() string
	countdown() int
}

type idle struct{}

type movingToCollect struct {
	remaining int
}

type movingToDrop struct {
	remaining int
}

type collecting struct {
	remaining int
}

type dropping struct {
	remaining int
}

type collectingExtra struct {
	passenger liftrequest.Request
	remaining int
}

type droppingExtra struct {
	passenger liftrequest.Request
	remaining int
}

type emergencyRetreating struct {
	evictee   liftrequest.Request
	remaining int
}

type emergencyDropping struct {
	evictee   liftrequest.Request
	remaining int
}

type emergencyReturning struct {
	remaining int
}

func (*idle) name() string                { return "Idle" }
func (*movingToCollect) name() string     { return "MovingToCollect" }
func (*movingToDrop) name() string        { return "MovingToDrop" }
func (*collecting) name() string          { return "Collecting" }
func (*dropping) name() string            { return "Dropping" }
func (*collectingExtra) name() string     { return "CollectingExtra" }
func (*droppingExtra) name() string       { return "DroppingExtra" }
func (*emergencyRetreating) name() string { return "EmergencyRetreating" }
func (*emergencyDropping) name() string   { return "EmergencyDropping" }
func (*emergencyReturning) name() string  { return "EmergencyReturning" }

func (*idle) countdown() int                  { return 0 }
func (s *movingToCollect) countdown() int     { return s.remaining }
func (s *movingToDrop) countdown() int        { return s.remaining }
func (s *collecting) countdown() int          { return s.remaining }
func (s *dropping) countdown() int            { return s.remaining }
func (s *collectingExtra) countdown() int     { return s.remaining }
func (s *droppingExtra) countdown() int       { return s.remaining }
func (s *emergencyRetreating) countdown() int { return s.remaining }
func (s *emergencyDropping) countdown() int   { return s.remaining }
func (s *emergencyReturning) countdown() int  { return s.remaining }

// expired decrements a countdown and reports whether it reached zero.
func expired(remaining *int) bool {
	*remaining--
	return *remaining <= 0
}
