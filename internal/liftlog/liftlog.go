package liftlog

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Milford1337/Lift-Simulation/internal/liftconsts"
	"github.com/tiendc/go-deepcopy"
)

var ErrOutOfOrder = errors.New("log entry is earlier than the previous entry")

type EventKind int

const (
	StateChange EventKind = iota
	FloorArrival
	CollectionComplete
	DropComplete
)

func (ek EventKind) String() string {
	switch ek {
	case StateChange:
		return "state-change"
	case FloorArrival:
		return "floor-arrival"
	case CollectionComplete:
		return "collection-complete"
	case DropComplete:
		return "drop-complete"
	default:
		return "unknown"
	}
}

// Variant selects the policy specific column of the log.
type Variant int

const (
	Targeted Variant = iota
	Directional
)

func (v Variant) String() string {
	switch v {
	case Targeted:
		return "targeted"
	case Directional:
		return "directional"
	default:
		return "unknown"
	}
}

func (v Variant) Header() []string {
	switch v {
	case Directional:
		return []string{"time", "floor", "event", "state", "direction", "passengers"}
	default:
		return []string{"time", "floor", "event", "state", "target", "passengers"}
	}
}

type Entry struct {
	Time       int
	Floor      int
	Kind       EventKind
	State      string
	Target     int                  //Committed target id, 0 if none. Targeted logs only
	Direction  liftconsts.Direction //Directional logs only
	Passengers []int                //Sorted ids aboard
}

func (e Entry) String() string {
	return fmt.Sprintf("t=%d floor=%d %s %s aboard=[%s]", e.Time, e.Floor, e.Kind, e.State, joinIDs(e.Passengers))
}

// Log is an append-only sequence of entries with non-decreasing time.
type Log struct {
	variant Variant
	entries []Entry
}

func NewLog(variant Variant) *Log {
	return &Log{variant: variant}
}

func (l *Log) Append(entry Entry) error {
	if n := len(l.entries); n > 0 && entry.Time < l.entries[n-1].Time {
		return fmt.Errorf("entry at t=%d after t=%d: %w", entry.Time, l.entries[n-1].Time, ErrOutOfOrder)
	}
	entry.Passengers = append([]int(nil), entry.Passengers...)
	l.entries = append(l.entries, entry)
	return nil
}

// Entries returns a deep copy, so callers may edit the passenger lists freely.
func (l *Log) Entries() []Entry {
	var out []Entry
	if err := deepcopy.Copy(&out, &l.entries); err != nil {
		panic("Failed to deepcopy log entries")
	}
	return out
}

func (l *Log) Len() int {
	return len(l.entries)
}

func (l *Log) Variant() Variant {
	return l.variant
}

func (l *Log) Header() []string {
	return l.variant.Header()
}

// Record renders one entry as a row matching Header.
func (l *Log) Record(e Entry) []string {
	policyField := strconv.Itoa(e.Target)
	if l.variant == Directional {
		policyField = e.Direction.String()
	}
	return []string{
		strconv.Itoa(e.Time),
		strconv.Itoa(e.Floor),
		e.Kind.String(),
		e.State,
		policyField,
		joinIDs(e.Passengers),
	}
}

func (l *Log) Rows() [][]string {
	rows := make([][]string, 0, len(l.entries))
	for _, e := range l.entries {
		rows = append(rows, l.Record(e))
	}
	return rows
}

func (l *Log) Count(kind EventKind) int {
	count := 0
	for _, e := range l.entries {
		if e.Kind == kind {
			count++
		}
	}
	return count
}

func joinIDs(ids []int) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, ",")
}
