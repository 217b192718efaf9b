package liveview

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kabele/invoicely/internal/domain/invoice"
	"github.com/Kabele/invoicely/internal/types"
)

func testInvoice(id string, dueDate time.Time) *invoice.Invoice {
	return &invoice.Invoice{
		ID:                 id,
		UserID:             "user_1",
		ClientName:         "Acme Ltd",
		ProjectDescription: "Fit-out",
		DueDate:            dueDate,
		Category:           types.InvoiceCategoryService,
		TaxRate:            decimal.Zero,
		LineItems: []invoice.LineItem{
			{ID: "item_1", Description: "Labour", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(100)},
		},
	}
}

func eventFor(t *testing.T, name string, inv *invoice.Invoice) *types.InvoiceEvent {
	t.Helper()
	payload, err := json.Marshal(inv)
	require.NoError(t, err)
	return &types.InvoiceEvent{
		ID:        types.GenerateUUID(),
		EventName: name,
		UserID:    inv.UserID,
		InvoiceID: inv.ID,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

func TestViewSeededFromStore(t *testing.T) {
	now := time.Now().UTC()
	seed := []*invoice.Invoice{
		testInvoice("inv_1", now.AddDate(0, 1, 0)),
		testInvoice("inv_2", now.AddDate(0, 2, 0)),
	}

	view := newInvoiceView("user_1")
	view.seed(seed)
	list := view.List(now)

	require.Len(t, list, 2)
	// newest due date first
	assert.Equal(t, "inv_2", list[0].ID)
	assert.Equal(t, "inv_1", list[1].ID)
}

func TestSeedMergesUnderEarlierEvents(t *testing.T) {
	now := time.Now().UTC()
	view := newInvoiceView("user_1")

	// events can land before the store snapshot does
	created := testInvoice("inv_new", now.AddDate(0, 1, 0))
	created.ClientName = "Acme International"
	require.NoError(t, view.Apply(eventFor(t, types.EventInvoiceCreated, created)))
	require.NoError(t, view.Apply(&types.InvoiceEvent{
		EventName: types.EventInvoiceDeleted,
		UserID:    "user_1",
		InvoiceID: "inv_gone",
	}))

	// the snapshot carries a stale copy of inv_new and a copy of the
	// already-deleted inv_gone
	view.seed([]*invoice.Invoice{
		testInvoice("inv_new", now.AddDate(0, 1, 0)),
		testInvoice("inv_old", now.AddDate(0, 0, 7)),
		testInvoice("inv_gone", now.AddDate(0, 0, 14)),
	})

	list := view.List(now)
	require.Len(t, list, 2)

	got, err := view.GetByID("inv_new", now)
	require.NoError(t, err)
	assert.Equal(t, "Acme International", got.ClientName)

	_, err = view.GetByID("inv_gone", now)
	assert.Error(t, err)

	// seeding twice is a no-op
	view.seed([]*invoice.Invoice{testInvoice("inv_gone", now)})
	assert.Len(t, view.List(now), 2)
}

func TestViewApplyIsIdempotent(t *testing.T) {
	now := time.Now().UTC()
	view := newInvoiceView("user_1")

	inv := testInvoice("inv_1", now.AddDate(0, 1, 0))
	event := eventFor(t, types.EventInvoiceCreated, inv)

	require.NoError(t, view.Apply(event))
	require.NoError(t, view.Apply(event))

	assert.Len(t, view.List(now), 1)
}

func TestViewCreatedThenUpdatedMergesByID(t *testing.T) {
	now := time.Now().UTC()
	view := newInvoiceView("user_1")

	inv := testInvoice("inv_1", now.AddDate(0, 1, 0))
	require.NoError(t, view.Apply(eventFor(t, types.EventInvoiceCreated, inv)))

	inv.ClientName = "Acme International"
	require.NoError(t, view.Apply(eventFor(t, types.EventInvoiceUpdated, inv)))

	got, err := view.GetByID("inv_1", now)
	require.NoError(t, err)
	assert.Equal(t, "Acme International", got.ClientName)
	assert.Len(t, view.List(now), 1)
}

func TestViewDelete(t *testing.T) {
	now := time.Now().UTC()
	view := newInvoiceView("user_1")
	view.seed([]*invoice.Invoice{testInvoice("inv_1", now)})

	require.NoError(t, view.Apply(&types.InvoiceEvent{
		EventName: types.EventInvoiceDeleted,
		UserID:    "user_1",
		InvoiceID: "inv_1",
	}))

	_, err := view.GetByID("inv_1", now)
	assert.Error(t, err)
	assert.Empty(t, view.List(now))
}

func TestViewListDerivesFreshStatus(t *testing.T) {
	now := time.Now().UTC()
	overdue := testInvoice("inv_1", now.AddDate(0, 0, -3))
	overdue.Status = types.InvoiceStatusPending // stale persisted value

	view := newInvoiceView("user_1")
	view.seed([]*invoice.Invoice{overdue})

	list := view.List(now)
	require.Len(t, list, 1)
	assert.Equal(t, types.InvoiceStatusOverdue, list[0].Status)
}

func TestSubscribeReceivesSnapshots(t *testing.T) {
	now := time.Now().UTC()
	view := newInvoiceView("user_1")
	view.seed([]*invoice.Invoice{testInvoice("inv_1", now.AddDate(0, 1, 0))})

	snapshots, unsubscribe := view.Subscribe()
	defer unsubscribe()

	// the current snapshot arrives without any event
	first := <-snapshots
	require.Len(t, first, 1)

	inv := testInvoice("inv_2", now.AddDate(0, 2, 0))
	require.NoError(t, view.Apply(eventFor(t, types.EventInvoiceCreated, inv)))

	second := <-snapshots
	require.Len(t, second, 2)
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	view := newInvoiceView("user_1")

	snapshots, unsubscribe := view.Subscribe()
	<-snapshots
	unsubscribe()

	_, ok := <-snapshots
	assert.False(t, ok)

	// unsubscribing twice is harmless
	unsubscribe()
}

func TestCloseTearsDownSubscribers(t *testing.T) {
	view := newInvoiceView("user_1")

	snapshots, _ := view.Subscribe()
	<-snapshots
	view.Close()

	_, ok := <-snapshots
	assert.False(t, ok)

	// events after close are ignored
	require.NoError(t, view.Apply(&types.InvoiceEvent{
		EventName: types.EventInvoiceDeleted,
		UserID:    "user_1",
		InvoiceID: "inv_x",
	}))
}
