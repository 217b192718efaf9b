package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kabele/invoicely/internal/api/dto"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/logger"
	"github.com/Kabele/invoicely/internal/service"
)

type CurrencyHandler struct {
	currencyService service.CurrencyService
	logger          *logger.Logger
}

func NewCurrencyHandler(currencyService service.CurrencyService, logger *logger.Logger) *CurrencyHandler {
	return &CurrencyHandler{
		currencyService: currencyService,
		logger:          logger,
	}
}

func (h *CurrencyHandler) Convert(c *gin.Context) {
	var req dto.ConvertCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.currencyService.Convert(c.Request.Context(), &req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
