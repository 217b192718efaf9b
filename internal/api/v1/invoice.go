package v1

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kabele/invoicely/internal/api/dto"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/liveview"
	"github.com/Kabele/invoicely/internal/logger"
	"github.com/Kabele/invoicely/internal/service"
)

type InvoiceHandler struct {
	invoiceService service.InvoiceService
	views          *liveview.Manager
	logger         *logger.Logger
}

func NewInvoiceHandler(invoiceService service.InvoiceService, views *liveview.Manager, logger *logger.Logger) *InvoiceHandler {
	return &InvoiceHandler{
		invoiceService: invoiceService,
		views:          views,
		logger:         logger,
	}
}

func (h *InvoiceHandler) CreateInvoice(c *gin.Context) {
	var req dto.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.invoiceService.CreateInvoice(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *InvoiceHandler) GetInvoice(c *gin.Context) {
	resp, err := h.invoiceService.GetInvoice(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *InvoiceHandler) ListInvoices(c *gin.Context) {
	resp, err := h.invoiceService.ListInvoices(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *InvoiceHandler) UpdateInvoice(c *gin.Context) {
	var req dto.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.invoiceService.UpdateInvoice(c.Request.Context(), c.Param("id"), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *InvoiceHandler) DeleteInvoice(c *gin.Context) {
	if err := h.invoiceService.DeleteInvoice(c.Request.Context(), c.Param("id")); err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// StreamInvoices pushes invoice snapshots over SSE. The client receives the
// full collection immediately and again after every change until it
// disconnects.
func (h *InvoiceHandler) StreamInvoices(c *gin.Context) {
	view, err := h.views.View(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	snapshots, unsubscribe := view.Subscribe()
	defer unsubscribe()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-snapshots:
			if !ok {
				return false
			}
			body, err := json.Marshal(dto.NewListInvoicesResponse(snapshot))
			if err != nil {
				h.logger.Errorw("failed to encode invoice snapshot", "error", err)
				return false
			}
			c.SSEvent("invoices", string(body))
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
