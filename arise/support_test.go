package arise

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeClock is a settable wall clock for day-boundary and booster tests.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func (c *fakeClock) NextDay() { c.now = c.now.AddDate(0, 0, 1) }

// scriptedRand replays fixed sequences. Exhausted sequences return zero,
// which is the lowest roll.
type scriptedRand struct {
	ints   []int
	floats []float64
}

func (r *scriptedRand) Intn(n int) int {
	if len(r.ints) == 0 {
		return 0
	}
	v := r.ints[0]
	r.ints = r.ints[1:]
	if v >= n {
		v = n - 1
	}
	return v
}

func (r *scriptedRand) Float64() float64 {
	if len(r.floats) == 0 {
		return 0
	}
	v := r.floats[0]
	r.floats = r.floats[1:]
	return v
}

// testDay is a Wednesday at noon, far from midnight so hour-sensitive
// achievements stay out of the way.
var testDay = time.Date(2025, 6, 4, 12, 0, 0, 0, time.UTC)

func newTestHub(t *testing.T, clock Clock, rnd Rand) Arise {
	t.Helper()
	opts := []Option{}
	if clock != nil {
		opts = append(opts, WithClock(clock))
	}
	if rnd != nil {
		opts = append(opts, WithRand(rnd))
	}
	hub, err := Init(zap.NewNop(), NewCatalog(), opts...)
	require.NoError(t, err)
	return hub
}

// addQuestWithObjective creates a quest with a single objective and returns
// both.
func addQuestWithObjective(t *testing.T, hub Arise, state *State, title, rank, rarity string, isBoss bool) (*Quest, *Objective) {
	t.Helper()
	q, err := hub.GetQuestsSystem().AddQuest(state, title, rank, "hunt", rarity, isBoss, false, nil)
	require.NoError(t, err)
	o, err := hub.GetQuestsSystem().AddObjective(state, q.ID, "objective")
	require.NoError(t, err)
	return q, o
}

func findQueueEntryByType(state *State, entryType string) *RewardQueueEntry {
	for i := range state.RewardsQueue {
		if state.RewardsQueue[i].Type == entryType {
			return &state.RewardsQueue[i]
		}
	}
	return nil
}

func eventOfType(events []Event, typ EventType) *Event {
	for i := range events {
		if events[i].Type == typ {
			return &events[i]
		}
	}
	return nil
}

func countInventory(state *State, itemID string) int {
	n := 0
	for _, it := range state.Inventory {
		if it.ID == itemID {
			n++
		}
	}
	return n
}
