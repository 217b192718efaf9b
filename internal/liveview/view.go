package liveview

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/Kabele/invoicely/internal/domain/invoice"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/types"
)

// InvoiceView is a user's live invoice collection. It is seeded once from the
// store and kept current by applying invoice events. Applying an event is
// idempotent: created and updated both merge the carried document by ID, so a
// replayed or re-ordered event converges to the same snapshot.
type InvoiceView struct {
	mu       sync.RWMutex
	userID   string
	invoices map[string]*invoice.Invoice
	// ids deleted before the seed arrived; the seed must not resurrect them
	tombstones map[string]struct{}
	subs       map[int]chan []*invoice.Invoice
	nextSub    int
	seeded     bool
	closed     bool
}

func newInvoiceView(userID string) *InvoiceView {
	return &InvoiceView{
		userID:     userID,
		invoices:   make(map[string]*invoice.Invoice),
		tombstones: make(map[string]struct{}),
		subs:       make(map[int]chan []*invoice.Invoice),
	}
}

// seed merges the store snapshot under whatever events arrived first. An
// invoice written or deleted while the snapshot was being listed keeps its
// event state; the snapshot only fills in the rest. Seeding twice is a no-op.
func (v *InvoiceView) seed(list []*invoice.Invoice) {
	v.mu.Lock()
	if v.closed || v.seeded {
		v.mu.Unlock()
		return
	}
	for _, inv := range list {
		if _, ok := v.invoices[inv.ID]; ok {
			continue
		}
		if _, ok := v.tombstones[inv.ID]; ok {
			continue
		}
		v.invoices[inv.ID] = inv
	}
	v.seeded = true
	v.tombstones = nil
	v.mu.Unlock()
	v.notify()
}

func (v *InvoiceView) isSeeded() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.seeded
}

// Apply merges an event into the view and notifies subscribers
func (v *InvoiceView) Apply(event *types.InvoiceEvent) error {
	v.mu.Lock()

	if v.closed {
		v.mu.Unlock()
		return nil
	}

	switch event.EventName {
	case types.EventInvoiceCreated, types.EventInvoiceUpdated:
		var inv invoice.Invoice
		if err := json.Unmarshal(event.Payload, &inv); err != nil {
			v.mu.Unlock()
			return ierr.WithError(err).
				WithHint("Failed to decode invoice event payload").
				Mark(ierr.ErrSystem)
		}
		v.invoices[inv.ID] = &inv
	case types.EventInvoiceDeleted:
		delete(v.invoices, event.InvoiceID)
		if !v.seeded {
			v.tombstones[event.InvoiceID] = struct{}{}
		}
	default:
		v.mu.Unlock()
		return nil
	}

	v.mu.Unlock()
	v.notify()
	return nil
}

// List returns the current snapshot, newest due date first, with statuses
// re-derived against now
func (v *InvoiceView) List(now time.Time) []*invoice.Invoice {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.snapshotLocked(now)
}

func (v *InvoiceView) snapshotLocked(now time.Time) []*invoice.Invoice {
	out := make([]*invoice.Invoice, 0, len(v.invoices))
	for _, inv := range v.invoices {
		out = append(out, inv.WithFreshStatus(now))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].DueDate.After(out[j].DueDate)
	})
	return out
}

// GetByID reads a single invoice out of the live snapshot
func (v *InvoiceView) GetByID(id string, now time.Time) (*invoice.Invoice, error) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	inv, ok := v.invoices[id]
	if !ok {
		return nil, ierr.NewError("invoice not found").
			WithHintf("invoice %s not found", id).
			Mark(ierr.ErrNotFound)
	}
	return inv.WithFreshStatus(now), nil
}

// Subscribe registers for snapshot updates. The channel receives the current
// snapshot immediately and then again after every applied event. A slow
// consumer only ever misses intermediate snapshots, never the latest one.
// The returned function removes the subscription and closes the channel.
func (v *InvoiceView) Subscribe() (<-chan []*invoice.Invoice, func()) {
	v.mu.Lock()

	ch := make(chan []*invoice.Invoice, 1)
	id := v.nextSub
	v.nextSub++
	v.subs[id] = ch

	ch <- v.snapshotLocked(time.Now().UTC())
	v.mu.Unlock()

	unsubscribe := func() {
		v.mu.Lock()
		defer v.mu.Unlock()
		if sub, ok := v.subs[id]; ok {
			delete(v.subs, id)
			close(sub)
		}
	}
	return ch, unsubscribe
}

func (v *InvoiceView) notify() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}

	snapshot := v.snapshotLocked(time.Now().UTC())
	for _, ch := range v.subs {
		// replace a pending snapshot instead of blocking on it
		select {
		case <-ch:
		default:
		}
		ch <- snapshot
	}
}

// Close tears down every subscription
func (v *InvoiceView) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.closed {
		return
	}
	v.closed = true
	for id, ch := range v.subs {
		delete(v.subs, id)
		close(ch)
	}
}
