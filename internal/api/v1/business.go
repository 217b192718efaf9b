package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Kabele/invoicely/internal/api/dto"
	ierr "github.com/Kabele/invoicely/internal/errors"
	"github.com/Kabele/invoicely/internal/logger"
	"github.com/Kabele/invoicely/internal/service"
)

type BusinessHandler struct {
	businessService service.BusinessService
	logger          *logger.Logger
}

func NewBusinessHandler(businessService service.BusinessService, logger *logger.Logger) *BusinessHandler {
	return &BusinessHandler{
		businessService: businessService,
		logger:          logger,
	}
}

func (h *BusinessHandler) GetBusiness(c *gin.Context) {
	resp, err := h.businessService.LoadBusiness(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

func (h *BusinessHandler) SaveBusiness(c *gin.Context) {
	var req dto.SaveBusinessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(ierr.WithError(err).
			WithHint("Please check the request payload").
			Mark(ierr.ErrValidation))
		return
	}

	resp, err := h.businessService.SaveBusiness(c.Request.Context(), &req)
	if err != nil {
		h.logger.Errorw("failed to save business info", "error", err)
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
