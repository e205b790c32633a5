package liftrequest

import (
	"errors"
	"fmt"
	"sort"
)

var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrSameFloor      = errors.New("origin and destination are the same floor")
)

// Request is a single passenger call. It is never mutated after construction.
type Request struct {
	ID          int `json:"id"`
	Origin      int `json:"origin"`
	Destination int `json:"destination"`
	Release     int `json:"release"`
}

func (r Request) String() string {
	return fmt.Sprintf("P%d(%d->%d @%d)", r.ID, r.Origin, r.Destination, r.Release)
}

func (r Request) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("passenger %d: id must be positive: %w", r.ID, ErrInvalidRequest)
	}
	if r.Release < 0 {
		return fmt.Errorf("passenger %d: release time %d is negative: %w", r.ID, r.Release, ErrInvalidRequest)
	}
	if r.Origin == r.Destination {
		return fmt.Errorf("passenger %d: floor %d: %w", r.ID, r.Origin, ErrSameFloor)
	}
	return nil
}

// Less orders requests by release time, then by id. Every selection in the
// simulator breaks ties with this function.
func Less(a, b Request) bool {
	if a.Release != b.Release {
		return a.Release < b.Release
	}
	return a.ID < b.ID
}

// Earliest returns the lowest ordered request accepted by keep. A nil keep accepts all.
func Earliest(reqs []Request, keep func(Request) bool) (Request, bool) {
	var best Request
	found := false
	for _, r := range reqs {
		if keep != nil && !keep(r) {
			continue
		}
		if !found || Less(r, best) {
			best = r
			found = true
		}
	}
	return best, found
}

func Sort(reqs []Request) {
	sort.Slice(reqs, func(i, j int) bool {
		return Less(reqs[i], reqs[j])
	})
}

// ValidateAll checks every request and rejects duplicate ids.
func ValidateAll(reqs []Request) error {
	seen := make(map[int]bool, len(reqs))
	for _, r := range reqs {
		if err := r.Validate(); err != nil {
			return err
		}
		if seen[r.ID] {
			return fmt.Errorf("passenger %d: duplicate id: %w", r.ID, ErrInvalidRequest)
		}
		seen[r.ID] = true
	}
	return nil
}

// IDs returns the ids of reqs in ascending order.
func IDs(reqs []Request) []int {
	ids := make([]int, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.ID)
	}
	sort.Ints(ids)
	return ids
}
