package liveview

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/stretchr/testify/require"

	"github.com/Kabele/invoicely/internal/config"
	"github.com/Kabele/invoicely/internal/domain/invoice"
	"github.com/Kabele/invoicely/internal/logger"
	pubsubMemory "github.com/Kabele/invoicely/internal/pubsub/memory"
	memoryRepo "github.com/Kabele/invoicely/internal/repository/memory"
	"github.com/Kabele/invoicely/internal/types"
)

func TestManagerRoutesEventsToTheRightView(t *testing.T) {
	log, err := logger.NewLogger(config.GetDefaultConfig())
	require.NoError(t, err)

	repo := memoryRepo.NewInMemoryInvoiceStore()
	ps := pubsubMemory.NewPubSub(log)
	manager := NewManager(repo, ps, log)
	require.NoError(t, manager.Start(context.Background()))
	defer func() { require.NoError(t, manager.Close()) }()

	now := time.Now().UTC()
	userCtx := context.WithValue(context.Background(), types.CtxUserID, "user_1")
	view, err := manager.View(userCtx)
	require.NoError(t, err)
	require.Empty(t, view.List(now))

	inv := testInvoice("inv_1", now.AddDate(0, 1, 0))
	event := eventFor(t, types.EventInvoiceCreated, inv)
	body, err := json.Marshal(event)
	require.NoError(t, err)

	require.NoError(t, ps.Publish(context.Background(), types.InvoiceEventTopic,
		message.NewMessage(watermill.NewUUID(), body)))

	require.Eventually(t, func() bool {
		return len(view.List(now)) == 1
	}, time.Second, 10*time.Millisecond)

	// another user's view stays empty
	otherCtx := context.WithValue(context.Background(), types.CtxUserID, "user_2")
	otherView, err := manager.View(otherCtx)
	require.NoError(t, err)
	require.Empty(t, otherView.List(now))
}

// blockingListRepo pauses List after taking its snapshot so a write can be
// committed and published inside the seed window.
type blockingListRepo struct {
	invoice.Repository
	listed  chan struct{}
	release chan struct{}
}

func (r *blockingListRepo) List(ctx context.Context) ([]*invoice.Invoice, error) {
	list, err := r.Repository.List(ctx)
	select {
	case r.listed <- struct{}{}:
	default:
	}
	<-r.release
	return list, err
}

func TestManagerViewSeesWriteCommittedDuringSeed(t *testing.T) {
	log, err := logger.NewLogger(config.GetDefaultConfig())
	require.NoError(t, err)

	inner := memoryRepo.NewInMemoryInvoiceStore()
	repo := &blockingListRepo{
		Repository: inner,
		listed:     make(chan struct{}, 1),
		release:    make(chan struct{}),
	}
	ps := pubsubMemory.NewPubSub(log)
	manager := NewManager(repo, ps, log)
	require.NoError(t, manager.Start(context.Background()))
	defer func() { require.NoError(t, manager.Close()) }()

	now := time.Now().UTC()
	userCtx := context.WithValue(context.Background(), types.CtxUserID, "user_1")

	type viewResult struct {
		view *InvoiceView
		err  error
	}
	done := make(chan viewResult, 1)
	go func() {
		view, err := manager.View(userCtx)
		done <- viewResult{view, err}
	}()

	// the seed snapshot is taken and empty; commit and announce a write
	// before letting the seed finish
	<-repo.listed
	inv := testInvoice("inv_1", now.AddDate(0, 1, 0))
	require.NoError(t, inner.Create(userCtx, inv))

	body, err := json.Marshal(eventFor(t, types.EventInvoiceCreated, inv))
	require.NoError(t, err)
	require.NoError(t, ps.Publish(context.Background(), types.InvoiceEventTopic,
		message.NewMessage(watermill.NewUUID(), body)))

	close(repo.release)

	result := <-done
	require.NoError(t, result.err)
	require.Eventually(t, func() bool {
		return len(result.view.List(now)) == 1
	}, time.Second, 10*time.Millisecond, "invoice committed during seeding must appear in the live view")
}
