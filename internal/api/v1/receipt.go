package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kabele/invoicely/internal/api/dto"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/logger"
	"github.com/Kabele/invoicely/internal/service"
)

type ReceiptHandler struct {
	receiptService service.ReceiptService
	logger         *logger.Logger
}

func NewReceiptHandler(receiptService service.ReceiptService, logger *logger.Logger) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		logger:         logger,
	}
}

func (h *ReceiptHandler) CreateReceipt(c *gin.Context) {
	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.receiptService.CreateReceipt(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

func (h *ReceiptHandler) GetReceipt(c *gin.Context) {
	resp, err := h.receiptService.GetReceipt(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *ReceiptHandler) ListReceipts(c *gin.Context) {
	resp, err := h.receiptService.ListReceipts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
