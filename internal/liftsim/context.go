package liftsim

import (
	"github.com/Milford1337/Lift-Simulation/internal/liftledger"
	"github.com/Milford1337/Lift-Simulation/internal/liftlog"
	"github.com/Milford1337/Lift-Simulation/internal/liftrequest"
)

// Context is the state a single run owns and threads through every tick.
// Policies read the clock and ledger from it and report progress through it.
type Context struct {
	Ledger *liftledger.Ledger
	Log    *liftlog.Log

	//Internal Variables
	clock     int
	served    int
	collected map[int]int
	stats     Stats
}

func NewContext(variant liftlog.Variant) *Context {
	return &Context{
		Ledger:    liftledger.NewLedger(),
		Log:       liftlog.NewLog(variant),
		collected: make(map[int]int),
	}
}

func (c *Context) Now() int {
	return c.clock
}

// Emit stamps the entry with the current time and appends it to the log.
func (c *Context) Emit(entry liftlog.Entry) error {
	entry.Time = c.clock
	return c.Log.Append(entry)
}

// Boarded records the moment a collection completed.
func (c *Context) Boarded(r liftrequest.Request) {
	c.collected[r.ID] = c.clock
}

// Serve removes a dropped passenger from the ledger and records its timings.
func (c *Context) Serve(r liftrequest.Request) {
	c.Ledger.Remove(r.ID)
	c.served++

	collectedAt, ok := c.collected[r.ID]
	if !ok {
		Log.Warn().Msgf("Passenger %d served without a recorded collection", r.ID)
		collectedAt = c.clock
	}
	delete(c.collected, r.ID)

	c.stats.Passengers = append(c.stats.Passengers, PassengerStats{
		ID:   r.ID,
		Wait: collectedAt - r.Release,
		Ride: c.clock - collectedAt,
	})
}
