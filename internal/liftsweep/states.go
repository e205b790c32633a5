package liftsweep

import (
	"github.com/Milford1337/Lift-Simulation/internal/liftrequest"
)

type state interface {
	name() string
	countdown() int
}

type idle struct{}

type movingUp struct {
	remaining int
}

type movingDown struct {
	remaining int
}

type collecting struct {
	passenger liftrequest.Request
	remaining int
}

type dropping struct {
	passenger liftrequest.Request
	remaining int
}

func (*idle) name() string       { return "Idle" }
func (*movingUp) name() string   { return "MovingUp" }
func (*movingDown) name() string { return "MovingDown" }
func (*collecting) name() string { return "Collecting" }
func (*dropping) name() string   { return "Dropping" }

func (*idle) countdown() int         { return 0 }
func (s *movingUp) countdown() int   { return s.remaining }
func (s *movingDown) countdown() int { return s.remaining }
func (s *collecting) countdown() int { return s.remaining }
func (s *dropping) countdown() int   { return s.remaining }

func expired(remaining *int) bool {
	*remaining--
	return *remaining <= 0
}
