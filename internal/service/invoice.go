package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/Kabele/invoicely/internal/api/dto"
	"github.com/Kabele/invoicely/internal/domain/invoice"
	"github.com/Kabele/invoicely/internal/liveview"
	"github.com/Kabele/invoicely/internal/pubsub"
	"github.com/Kabele/invoicely/internal/types"
)

type InvoiceService interface {
	CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error)
	GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error)
	ListInvoices(ctx context.Context) (*dto.ListInvoicesResponse, error)
	UpdateInvoice(ctx context.Context, id string, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error)
	DeleteInvoice(ctx context.Context, id string) error
}

type invoiceService struct {
	ServiceParams
	publisher pubsub.Publisher
	views     *liveview.Manager
}

func NewInvoiceService(
	params ServiceParams,
	publisher pubsub.Publisher,
	views *liveview.Manager,
) InvoiceService {
	return &invoiceService{
		ServiceParams: params,
		publisher:     publisher,
		views:         views,
	}
}

// CreateInvoice persists a new invoice from a draft and announces it.
// Derived fields are computed here; whatever the draft claimed for them is
// gone by the time the invoice is stored.
func (s *invoiceService) CreateInvoice(ctx context.Context, req *dto.CreateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	inv := req.ToInvoice(ctx)
	if err := inv.Validate(); err != nil {
		return nil, err
	}
	inv.ApplyDerived(time.Now().UTC())

	if err := s.InvoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, types.EventInvoiceCreated, inv.UserID, inv.ID, inv)
	return dto.NewInvoiceResponse(inv), nil
}

// GetInvoice reads from the user's live view so a subscribed client and a
// point read can never disagree
func (s *invoiceService) GetInvoice(ctx context.Context, id string) (*dto.InvoiceResponse, error) {
	view, err := s.views.View(ctx)
	if err != nil {
		return nil, err
	}

	inv, err := view.GetByID(id, time.Now().UTC())
	if err != nil {
		return nil, err
	}
	return dto.NewInvoiceResponse(inv), nil
}

func (s *invoiceService) ListInvoices(ctx context.Context) (*dto.ListInvoicesResponse, error) {
	view, err := s.views.View(ctx)
	if err != nil {
		return nil, err
	}
	return dto.NewListInvoicesResponse(view.List(time.Now().UTC())), nil
}

// UpdateInvoice replaces an invoice wholesale, last write wins
func (s *invoiceService) UpdateInvoice(ctx context.Context, id string, req *dto.UpdateInvoiceRequest) (*dto.InvoiceResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.InvoiceRepo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	inv := req.ToInvoice(ctx)
	inv.ID = existing.ID
	inv.CreatedAt = existing.CreatedAt
	inv.UpdatedAt = time.Now().UTC()

	if err := inv.Validate(); err != nil {
		return nil, err
	}
	inv.ApplyDerived(time.Now().UTC())

	if err := s.InvoiceRepo.Update(ctx, inv); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, types.EventInvoiceUpdated, inv.UserID, inv.ID, inv)
	return dto.NewInvoiceResponse(inv), nil
}

// DeleteInvoice removes an invoice. Deleting an ID that is already gone is a
// success, not an error.
func (s *invoiceService) DeleteInvoice(ctx context.Context, id string) error {
	if err := s.InvoiceRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.publishEvent(ctx, types.EventInvoiceDeleted, types.GetUserID(ctx), id, nil)
	return nil
}

// publishEvent announces a confirmed write. Publish failures are logged and
// swallowed: the write is already durable and a view seeded from the store
// after it still includes it.
func (s *invoiceService) publishEvent(ctx context.Context, eventName, userID, invoiceID string, inv *invoice.Invoice) {
	event := &types.InvoiceEvent{
		ID:        types.GenerateUUID(),
		EventName: eventName,
		UserID:    userID,
		InvoiceID: invoiceID,
		Timestamp: time.Now().UTC(),
	}

	if inv != nil {
		payload, err := json.Marshal(inv)
		if err != nil {
			s.Logger.Errorw("failed to encode invoice event payload", "error", err, "invoice_id", invoiceID)
			return
		}
		event.Payload = payload
	}

	body, err := json.Marshal(event)
	if err != nil {
		s.Logger.Errorw("failed to encode invoice event", "error", err, "invoice_id", invoiceID)
		return
	}

	msg := message.NewMessage(watermill.NewUUID(), body)
	if err := s.publisher.Publish(ctx, types.InvoiceEventTopic, msg); err != nil {
		s.Logger.Errorw("failed to publish invoice event",
			"error", err,
			"event_name", eventName,
			"invoice_id", invoiceID,
		)
	}
}
