package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront_backend/internal/catalog/service"
	"storefront_backend/internal/catalog/transport"
	"storefront_backend/internal/store"
	"storefront_backend/platform/httpkit"
	"storefront_backend/platform/validator"
)

// Handler handles HTTP requests for catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid catalog id"
)

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// CreateCatalog creates a catalog in the current store.
// POST /api/v1/private/catalogs
func (h *Handler) CreateCatalog(c *gin.Context) {
	var req transport.PersistableCatalog
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	merchant, lang := store.FromContext(c)

	result, err := h.svc.SaveCatalog(c.Request.Context(), &req, merchant, lang)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

// ListCatalogs lists the store's catalogs.
// GET /api/v1/private/catalogs
func (h *Handler) ListCatalogs(c *gin.Context) {
	var req transport.ListCatalogsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	merchant, lang := store.FromContext(c)

	result, err := h.svc.ListCatalogs(c.Request.Context(), req.Code, merchant, lang, req.Page, req.Count)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CatalogCodeExists checks whether a catalog code is taken.
// GET /api/v1/private/catalogs/unique?code=
func (h *Handler) CatalogCodeExists(c *gin.Context) {
	var req transport.CatalogCodeRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	merchant, _ := store.FromContext(c)

	exists, err := h.svc.CatalogCodeExists(c.Request.Context(), req.Code, merchant)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.EntityExists{Exists: exists})
}

// GetCatalogByCode retrieves a catalog by code.
// GET /api/v1/private/catalogs/code/:code
func (h *Handler) GetCatalogByCode(c *gin.Context) {
	merchant, lang := store.FromContext(c)

	result, err := h.svc.GetCatalogByCode(c.Request.Context(), c.Param("code"), merchant, lang)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetCatalogByID retrieves a catalog by ID.
// GET /api/v1/private/catalogs/:id
func (h *Handler) GetCatalogByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	merchant, lang := store.FromContext(c)

	result, err := h.svc.GetCatalogByID(c.Request.Context(), id, merchant, lang)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// UpdateCatalog updates a catalog's visible and defaultCatalog flags.
// PUT /api/v1/private/catalogs/:id
func (h *Handler) UpdateCatalog(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req transport.PersistableCatalog
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	merchant, lang := store.FromContext(c)

	result, err := h.svc.UpdateCatalog(c.Request.Context(), id, &req, merchant, lang)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteCatalog deletes a catalog.
// DELETE /api/v1/private/catalogs/:id
func (h *Handler) DeleteCatalog(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	merchant, lang := store.FromContext(c)

	if err := h.svc.DeleteCatalog(c.Request.Context(), id, merchant, lang); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// AddCatalogEntry attaches a category to a catalog.
// POST /api/v1/private/catalogs/entries
func (h *Handler) AddCatalogEntry(c *gin.Context) {
	var req transport.PersistableCatalogEntry
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}
	merchant, lang := store.FromContext(c)

	result, err := h.svc.AddCatalogEntry(c.Request.Context(), &req, merchant, lang)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.Created(c, result)
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 1 {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return 0, false
	}
	return id, true
}
