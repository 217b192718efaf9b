package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ierr "github.com/Kabele/invoicely/internal/errors"
)

func setupRouter(handler gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ErrorHandler())
	router.GET("/test", handler)
	return router
}

func doRequest(router *gin.Engine) (*httptest.ResponseRecorder, ierr.ErrorResponse) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	router.ServeHTTP(w, req)

	var body ierr.ErrorResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestErrorHandlerRendersHintAndStatus(t *testing.T) {
	router := setupRouter(func(c *gin.Context) {
		c.Error(ierr.NewError("invoice inv_1 missing from store").
			WithHint("Invoice not found").
			Mark(ierr.ErrNotFound))
	})

	w, body := doRequest(router)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, body.Success)
	assert.Equal(t, "Invoice not found", body.Error.Display)
	// internal message never leaks
	assert.NotContains(t, w.Body.String(), "missing from store")
}

func TestErrorHandlerReportableDetails(t *testing.T) {
	router := setupRouter(func(c *gin.Context) {
		c.Error(ierr.NewError("validation failed").
			WithHint("Please check the request payload").
			WithReportableDetails(map[string]interface{}{"field": "dueDate"}).
			Mark(ierr.ErrValidation))
	})

	w, body := doRequest(router)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NotNil(t, body.Error.Details)
	assert.Equal(t, "dueDate", body.Error.Details["field"])
}

func TestErrorHandlerFallbackMessage(t *testing.T) {
	router := setupRouter(func(c *gin.Context) {
		c.Error(ierr.NewError("boom").Mark(ierr.ErrSystem))
	})

	w, body := doRequest(router)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "An unexpected error occurred", body.Error.Display)
}

func TestErrorHandlerPassesCleanRequests(t *testing.T) {
	router := setupRouter(func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	w, _ := doRequest(router)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}
