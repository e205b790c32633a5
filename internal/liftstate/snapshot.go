package liftstate

import (
	"encoding/json"

	"github.com/Milford1337/Lift-Simulation/internal/liftconsts"
)

// Snapshot is a copy of the lift and its policy state at the end of a tick.
type Snapshot struct {
	Floor     int                  `json:"floor"`
	Capacity  int                  `json:"capacity"`
	Aboard    []int                `json:"aboard"`
	State     string               `json:"state"`
	Countdown int                  `json:"countdown"`
	Target    int                  `json:"target"`
	Emergency int                  `json:"emergency"`
	Direction liftconsts.Direction `json:"direction"`
	Travelled int                  `json:"travelled"`
}

// WithinCapacity reports whether the snapshot respects the lift's capacity.
func (s Snapshot) WithinCapacity() bool {
	if s.Capacity == liftconsts.UNLIMITED_CAPACITY {
		return true
	}
	return len(s.Aboard) <= s.Capacity
}

func (s Snapshot) String() string {
	jsonData, err := json.Marshal(s)

	if err != nil {
		Log.Error().Msg("Error Serialising Snapshot Object to JSON")
		return ""
	}
	return string(jsonData)
}
