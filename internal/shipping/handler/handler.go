package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"storefront_backend/internal/shipping/service"
	"storefront_backend/internal/shipping/transport"
	"storefront_backend/internal/store"
	storerepo "storefront_backend/internal/store/repository"
	"storefront_backend/platform/apperr"
	"storefront_backend/platform/httpkit"
	"storefront_backend/platform/logger"
	"storefront_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgQuoteFailed      = "Error while getting shipping quote"
)

// LocaleMatcher picks the label locale for a request.
type LocaleMatcher interface {
	Match(acceptLanguage string, fallback string) language.Tag
}

// Handler handles HTTP requests for shipping quotes.
type Handler struct {
	svc     *service.Service
	locales LocaleMatcher
	val     *validator.Validator
	log     *logger.Logger
}

// New creates a new shipping handler.
func New(svc *service.Service, locales LocaleMatcher, val *validator.Validator, log *logger.Logger) *Handler {
	return &Handler{svc: svc, locales: locales, val: val, log: log}
}

// CustomerShipping computes the shipping summary of the signed-in
// customer's cart.
// GET /api/v1/auth/cart/:code/shipping
func (h *Handler) CustomerShipping(c *gin.Context) {
	defer h.recoverQuote(c)

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}
	merchant, lang := store.FromContext(c)

	result, err := h.svc.CustomerSummary(c.Request.Context(), identity.Subject(), c.Param("code"), merchant, lang, h.locale(c, lang))
	if h.handleQuoteError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GuestShipping computes the shipping summary of a guest cart for the
// posted delivery address.
// POST /api/v1/cart/:code/shipping
func (h *Handler) GuestShipping(c *gin.Context) {
	defer h.recoverQuote(c)

	var req transport.AddressLocation
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	merchant, lang := store.FromContext(c)

	result, err := h.svc.GuestSummary(c.Request.Context(), c.Param("code"), req, merchant, lang, h.locale(c, lang))
	if h.handleQuoteError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

func (h *Handler) locale(c *gin.Context, lang *storerepo.Language) language.Tag {
	fallback := ""
	if lang != nil {
		fallback = lang.Code
	}
	return h.locales.Match(c.GetHeader("Accept-Language"), fallback)
}

// handleQuoteError maps typed errors through httpkit. Anything untyped came
// from a collaborator failing mid-computation and is reported as 503.
func (h *Handler) handleQuoteError(c *gin.Context, err error) bool {
	if err == nil {
		return false
	}
	var domainErr *apperr.Error
	if errors.As(err, &domainErr) {
		return httpkit.HandleError(c, err)
	}
	h.unavailable(c, err.Error())
	return true
}

func (h *Handler) recoverQuote(c *gin.Context) {
	if r := recover(); r != nil {
		h.unavailable(c, fmt.Sprint(r))
	}
}

func (h *Handler) unavailable(c *gin.Context, msg string) {
	h.log.WithContext(c.Request.Context()).Error("shipping quote failed", "path", c.Request.URL.Path, "error", msg)
	httpkit.Error(c, http.StatusServiceUnavailable, msgQuoteFailed+": "+msg, nil)
	c.Abort()
}
