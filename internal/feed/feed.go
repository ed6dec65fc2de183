// Package feed turns ledger notifications into a buffered event stream that
// other goroutines can follow.
package feed

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// Event types.
const (
	TypeSnapshot     = "snapshot"
	TypeBudgetSet    = "budget_set"
	TypeExpenseAdded = "expense_added"
	TypeUnchanged    = "unchanged"
)

// Config controls the feed.
type Config struct {
	EventsBuffer int
	Now          func() time.Time
}

// Snapshot is the ledger state carried by an event.
type Snapshot struct {
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Budget        decimal.Decimal `json:"budget"`
	Remaining     decimal.Decimal `json:"remaining"`
	OverBudget    bool            `json:"over_budget"`
}

// Delta captures what moved between two notifications.
type Delta struct {
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	Budget        decimal.Decimal `json:"budget"`
}

func (d Delta) isZero() bool {
	return d.TotalExpenses.IsZero() && d.Budget.IsZero()
}

// Event is emitted for every ledger notification.
type Event struct {
	ID        int64     `json:"id"`
	Type      string    `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	Snapshot  Snapshot  `json:"snapshot"`
	Delta     Delta     `json:"delta"`
}

// Status summarises the feed.
type Status struct {
	StartedAt       time.Time `json:"started_at"`
	LastEventAt     time.Time `json:"last_event_at"`
	Current         Snapshot  `json:"current"`
	EventCount      int       `json:"event_count"`
	TotalEvents     int64     `json:"total_events"`
	SubscriberCount int       `json:"subscriber_count"`
	Dropped         int64     `json:"dropped"`
}

// Feed is a ledger.Observer that records events in a ring buffer and fans
// them out to channel subscribers. Update runs on the ledger's goroutine;
// readers may be anywhere.
type Feed struct {
	cfg Config

	mu          sync.RWMutex
	startedAt   time.Time
	lastEventAt time.Time
	current     Snapshot
	nextEventID int64
	dropped     int64
	events      []Event

	nextSubID int
	subs      map[int]chan Event
}

// New returns a feed with the provided config.
func New(cfg Config) *Feed {
	if cfg.EventsBuffer < 1 {
		cfg.EventsBuffer = 200
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	return &Feed{
		cfg:       cfg,
		startedAt: cfg.Now(),
		current:   zeroSnapshot(),
		subs:      make(map[int]chan Event),
	}
}

func zeroSnapshot() Snapshot {
	return Snapshot{
		TotalExpenses: decimal.Zero,
		Budget:        decimal.Zero,
		Remaining:     decimal.Zero,
	}
}

func snapshotOf(totalExpenses, budget decimal.Decimal) Snapshot {
	remaining := budget.Sub(totalExpenses)
	return Snapshot{
		TotalExpenses: totalExpenses,
		Budget:        budget,
		Remaining:     remaining,
		OverBudget:    remaining.IsNegative(),
	}
}

func diffSnapshots(prev, curr Snapshot) Delta {
	return Delta{
		TotalExpenses: curr.TotalExpenses.Sub(prev.TotalExpenses),
		Budget:        curr.Budget.Sub(prev.Budget),
	}
}

func eventType(d Delta) string {
	switch {
	case !d.TotalExpenses.IsZero():
		return TypeExpenseAdded
	case !d.Budget.IsZero():
		return TypeBudgetSet
	default:
		return TypeUnchanged
	}
}

// Update implements ledger.Observer.
func (f *Feed) Update(totalExpenses, budget decimal.Decimal) {
	now := f.cfg.Now()
	snap := snapshotOf(totalExpenses, budget)

	f.mu.Lock()
	delta := diffSnapshots(f.current, snap)
	f.current = snap
	f.lastEventAt = now
	f.nextEventID++
	ev := Event{
		ID:        f.nextEventID,
		Type:      eventType(delta),
		Timestamp: now,
		Snapshot:  snap,
		Delta:     delta,
	}
	f.mu.Unlock()

	f.publishEvent(ev)
}

func (f *Feed) publishEvent(ev Event) {
	f.mu.Lock()
	f.events = append(f.events, ev)
	if len(f.events) > f.cfg.EventsBuffer {
		f.events = f.events[len(f.events)-f.cfg.EventsBuffer:]
	}

	for id, ch := range f.subs {
		select {
		case ch <- ev:
		default:
			f.dropped++
			log.Debug().Int("subscriber", id).Int64("event", ev.ID).Msg("Dropped feed event for slow subscriber")
		}
	}
	f.mu.Unlock()
}

// Events returns a copy of the buffered events, oldest first.
func (f *Feed) Events() []Event {
	f.mu.RLock()
	defer f.mu.RUnlock()
	events := make([]Event, len(f.events))
	copy(events, f.events)
	return events
}

// Last returns up to n of the most recent events, oldest first.
func (f *Feed) Last(n int) []Event {
	events := f.Events()
	if n > 0 && len(events) > n {
		events = events[len(events)-n:]
	}
	return events
}

// Status returns a summary of the feed.
func (f *Feed) Status() Status {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return Status{
		StartedAt:       f.startedAt,
		LastEventAt:     f.lastEventAt,
		Current:         f.current,
		EventCount:      len(f.events),
		TotalEvents:     f.nextEventID,
		SubscriberCount: len(f.subs),
		Dropped:         f.dropped,
	}
}

// Subscribe registers a channel subscriber. The channel first receives a
// snapshot of the current state. Sends never block the ledger: when the
// channel is full the event is dropped for that subscriber. Call cancel to
// unsubscribe; it closes the channel.
func (f *Feed) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 1 {
		buffer = 16
	}
	ch := make(chan Event, buffer)

	f.mu.Lock()
	f.nextSubID++
	id := f.nextSubID
	f.subs[id] = ch
	ch <- Event{
		Type:      TypeSnapshot,
		Timestamp: f.cfg.Now(),
		Snapshot:  f.current,
	}
	f.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			f.mu.Lock()
			delete(f.subs, id)
			close(ch)
			f.mu.Unlock()
		})
	}
	return ch, cancel
}
