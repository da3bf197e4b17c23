package handler

import (
	"net/http"

	"github.com/gustavo-devfull/fabricas-sub000/internal/factories/service"
	"github.com/gustavo-devfull/fabricas-sub000/internal/factories/transport"
	"github.com/gustavo-devfull/fabricas-sub000/platform/httpkit"
	"github.com/gustavo-devfull/fabricas-sub000/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid id"
)

// Handler handles HTTP requests for factories
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new factories handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the factory routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.PATCH("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
}

// List handles GET /api/v1/factories
func (h *Handler) List(c *gin.Context) {
	factories, err := h.svc.List(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToFactoryResponses(factories))
}

// Create handles POST /api/v1/factories
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateFactoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	factory, err := h.svc.Create(c.Request.Context(), service.CreateParams{
		Name:        service.DisplayName(req.Name, req.LegacyFields),
		Localizacao: req.Localizacao,
		Segmento:    req.Segmento,
		Contato:     req.Contato,
		Telefone:    req.Telefone,
		Email:       req.Email,
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.ToFactoryResponse(*factory))
}

// GetByID handles GET /api/v1/factories/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	factory, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToFactoryResponse(*factory))
}

// Update handles PATCH /api/v1/factories/:id
func (h *Handler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.UpdateFactoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	factory, err := h.svc.Update(c.Request.Context(), id, req.ToUpdateParams())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToFactoryResponse(*factory))
}

// Delete handles DELETE /api/v1/factories/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}
