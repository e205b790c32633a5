package liftconsts

const (
	DEFAULT_START_FLOOR  = 1
	DEFAULT_FLOOR_TIME   = 10
	DEFAULT_COLLECT_TIME = 5
	DEFAULT_DROP_TIME    = 5
	DEFAULT_CAPACITY     = 8
	DEFAULT_TICK_LIMIT   = 10000

	// Capacity value for the capacity-less variant. The guard admits every boarding.
	UNLIMITED_CAPACITY = 0
)

const (
	POLICY_OPPORTUNISTIC = "opportunistic"
	POLICY_DIRECTIONAL   = "directional"
	POLICY_BASIC         = "basic"
	POLICY_ALL           = "all"
)

// Policies lists every runnable policy in a stable order.
var Policies = []string{POLICY_OPPORTUNISTIC, POLICY_DIRECTIONAL, POLICY_BASIC}

type Direction int

const (
	Down Direction = -1
	None Direction = 0
	Up   Direction = 1
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case None:
		return "None"
	default:
		return "Undefined"
	}
}

func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	default:
		return None
	}
}

// DirectionOf returns the direction of travel from one floor to another.
func DirectionOf(from, to int) Direction {
	switch {
	case to > from:
		return Up
	case to < from:
		return Down
	default:
		return None
	}
}

// Beyond reports whether floor lies strictly past from when travelling in d.
func (d Direction) Beyond(from, floor int) bool {
	switch d {
	case Up:
		return floor > from
	case Down:
		return floor < from
	default:
		return false
	}
}
