package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/auth/service"
	"storefront_backend/internal/auth/transport"
	"storefront_backend/internal/store"
	"storefront_backend/platform/httpkit"
	"storefront_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	tokenTypeBearer     = "Bearer"
)

// Handler handles customer sign-in requests.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new auth handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// Login signs a customer of the current store in.
// POST /api/v1/customer/login
func (h *Handler) Login(c *gin.Context) {
	var req transport.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	merchant, _ := store.FromContext(c)

	token, err := h.svc.Login(c.Request.Context(), req.Username, req.Password, merchant)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.AuthResponse{
		AccessToken: token.Value,
		TokenType:   tokenTypeBearer,
		ExpiresIn:   int64(time.Until(token.ExpiresAt).Seconds()),
	})
}
