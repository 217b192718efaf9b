package liveview

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/sourcegraph/conc"

	"github.com/Kabele/invoicely/internal/domain/invoice"
	"github.com/Kabele/invoicely/internal/logger"
	"github.com/Kabele/invoicely/internal/pubsub"
	"github.com/Kabele/invoicely/internal/types"
)

// Manager owns one live view per user. Views are created lazily on first
// access, seeded from the invoice store, and fed from the invoice event topic
// for as long as the manager runs.
type Manager struct {
	mu     sync.RWMutex
	views  map[string]*InvoiceView
	repo   invoice.Repository
	sub    pubsub.Subscriber
	logger *logger.Logger
	wg     conc.WaitGroup
	cancel context.CancelFunc
}

func NewManager(repo invoice.Repository, sub pubsub.Subscriber, logger *logger.Logger) *Manager {
	return &Manager{
		views:  make(map[string]*InvoiceView),
		repo:   repo,
		sub:    sub,
		logger: logger,
	}
}

// Start subscribes to the invoice event topic and begins routing events to
// per-user views. It returns once the subscription is established.
func (m *Manager) Start(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	m.cancel = cancel

	messages, err := m.sub.Subscribe(ctx, types.InvoiceEventTopic)
	if err != nil {
		cancel()
		return err
	}

	m.wg.Go(func() {
		for msg := range messages {
			var event types.InvoiceEvent
			if err := json.Unmarshal(msg.Payload, &event); err != nil {
				m.logger.Errorw("failed to decode invoice event", "error", err, "message_id", msg.UUID)
				msg.Ack()
				continue
			}

			if err := m.dispatch(&event); err != nil {
				m.logger.Errorw("failed to apply invoice event",
					"error", err,
					"event_name", event.EventName,
					"invoice_id", event.InvoiceID,
				)
			}
			msg.Ack()
		}
	})
	return nil
}

func (m *Manager) dispatch(event *types.InvoiceEvent) error {
	m.mu.RLock()
	view, ok := m.views[event.UserID]
	m.mu.RUnlock()

	// nobody is watching this user's invoices, nothing to update
	if !ok {
		return nil
	}
	return view.Apply(event)
}

// View returns the live view of the user in ctx, creating and seeding it on
// first access. The view is registered before the seed snapshot is listed so
// that an event raised while the listing is in flight lands in the view
// instead of being dropped; seed then merges the snapshot under it.
func (m *Manager) View(ctx context.Context) (*InvoiceView, error) {
	userID := types.GetUserID(ctx)

	m.mu.RLock()
	view, ok := m.views[userID]
	m.mu.RUnlock()

	if !ok {
		m.mu.Lock()
		if existing, exists := m.views[userID]; exists {
			view = existing
		} else {
			view = newInvoiceView(userID)
			m.views[userID] = view
		}
		m.mu.Unlock()
	}

	// a failed seed leaves the view registered and unseeded; the next
	// access retries the listing
	if view.isSeeded() {
		return view, nil
	}

	seed, err := m.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	view.seed(seed)
	return view, nil
}

// Close stops event routing and tears down every view
func (m *Manager) Close() error {
	if m.cancel != nil {
		m.cancel()
	}
	m.wg.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()
	for userID, view := range m.views {
		view.Close()
		delete(m.views, userID)
	}
	return nil
}
