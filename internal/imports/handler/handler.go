package handler

import (
	"net/http"

	"github.com/gustavo-devfull/fabricas-sub000/internal/aggregation"
	"github.com/gustavo-devfull/fabricas-sub000/internal/imports/service"
	"github.com/gustavo-devfull/fabricas-sub000/internal/imports/transport"
	"github.com/gustavo-devfull/fabricas-sub000/platform/httpkit"
	"github.com/gustavo-devfull/fabricas-sub000/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid id"
	msgSortConflict     = "sortByRecent and sortByDataPedido are mutually exclusive"
)

// Handler handles HTTP requests for the aggregated imports view
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new imports handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the imports view routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/view", h.GetAggregatedView)
	rg.GET("/duplicates", h.DetectDuplicates)
	rg.PUT("/:factoryId/:bucketId/metadata", h.UpsertMetadata)
	rg.PUT("/:factoryId/:bucketId/replacement", h.MarkReplacement)
	rg.POST("/:factoryId/toggle-export", h.ToggleExport)
}

// GetAggregatedView handles GET /api/v1/imports/view
func (h *Handler) GetAggregatedView(c *gin.Context) {
	var query transport.ViewQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}
	if query.SortByRecent && query.SortByDataPedido {
		httpkit.Error(c, http.StatusBadRequest, msgSortConflict, nil)
		return
	}

	views, err := h.svc.GetAggregatedView(c.Request.Context(),
		aggregation.Filters{
			DataPedido: query.DataPedido,
			LotePedido: query.LotePedido,
			BuscaGeral: query.BuscaGeral,
		},
		aggregation.SortFlags{
			ByRecent:     query.SortByRecent,
			ByDataPedido: query.SortByDataPedido,
		},
	)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToFactoryViewResponses(views))
}

// DetectDuplicates handles GET /api/v1/imports/duplicates?scope=factory|global
func (h *Handler) DetectDuplicates(c *gin.Context) {
	scope := aggregation.Scope(c.DefaultQuery("scope", string(aggregation.ScopeFactory)))
	if scope != aggregation.ScopeFactory && scope != aggregation.ScopeGlobal {
		httpkit.Error(c, http.StatusBadRequest, "scope must be factory or global", nil)
		return
	}

	records, err := h.svc.DetectDuplicates(c.Request.Context(), scope)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToDuplicateRecordResponses(records))
}

// UpsertMetadata handles PUT /api/v1/imports/:factoryId/:bucketId/metadata
func (h *Handler) UpsertMetadata(c *gin.Context) {
	factoryID, bucketID, ok := h.pathKeys(c)
	if !ok {
		return
	}

	var req transport.UpsertMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.UpsertImportMetadata(c.Request.Context(), factoryID, bucketID, req.ToUpsertParams()); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// MarkReplacement handles PUT /api/v1/imports/:factoryId/:bucketId/replacement
func (h *Handler) MarkReplacement(c *gin.Context) {
	factoryID, bucketID, ok := h.pathKeys(c)
	if !ok {
		return
	}

	var req transport.MarkReplacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	if err := h.svc.MarkReplacement(c.Request.Context(), factoryID, bucketID, *req.IsReplacement); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleExport handles POST /api/v1/imports/:factoryId/toggle-export
func (h *Handler) ToggleExport(c *gin.Context) {
	factoryID, err := uuid.Parse(c.Param("factoryId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	identity := httpkit.MustGetIdentity(c)
	result, err := h.svc.ToggleFactoryExportStatus(c.Request.Context(), factoryID, identity.UserName())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToToggleResponse(result))
}

func (h *Handler) pathKeys(c *gin.Context) (uuid.UUID, string, bool) {
	factoryID, err := uuid.Parse(c.Param("factoryId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, "", false
	}
	bucketID := c.Param("bucketId")
	if bucketID == "" {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return uuid.Nil, "", false
	}
	return factoryID, bucketID, true
}
