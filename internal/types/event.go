package types

import (
	"encoding/json"
	"time"
)

// Invoice pubsub topic and event names. The live view consumes these to keep
// per-user snapshots current without polling.
const (
	InvoiceEventTopic = "invoices"

	EventInvoiceCreated = "invoice.created"
	EventInvoiceUpdated = "invoice.updated"
	EventInvoiceDeleted = "invoice.deleted"
)

// InvoiceEvent is the message published after a confirmed invoice write.
// Payload holds the full invoice document for created/updated events and is
// empty for deletes.
type InvoiceEvent struct {
	ID        string          `json:"id"`
	EventName string          `json:"event_name"`
	UserID    string          `json:"user_id"`
	InvoiceID string          `json:"invoice_id"`
	Payload   json.RawMessage `json:"payload,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
}
