package handler

import (
	"net/http"

	"github.com/gustavo-devfull/fabricas-sub000/internal/comments/repository"
	"github.com/gustavo-devfull/fabricas-sub000/internal/comments/service"
	"github.com/gustavo-devfull/fabricas-sub000/internal/comments/transport"
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

// Handler handles HTTP requests for comments
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new comments handler
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the comment routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.POST("/images/presign", h.PresignImage)
	rg.GET("/images/:imageKey/download", h.ImageDownloadURL)
	rg.DELETE("/:id", h.Delete)
}

// List handles GET /api/v1/comments?factoryId=...&importId=...
func (h *Handler) List(c *gin.Context) {
	factoryID, err := uuid.Parse(c.Query("factoryId"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	importID := c.Query("importId")
	var comments []repository.Comment
	if importID != "" {
		comments, err = h.svc.ListByImport(c.Request.Context(), factoryID, importID)
	} else {
		comments, err = h.svc.ListByFactory(c.Request.Context(), factoryID)
	}
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.ToCommentResponses(comments))
}

// Create handles POST /api/v1/comments
func (h *Handler) Create(c *gin.Context) {
	var req transport.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	comment, err := h.svc.Create(c.Request.Context(), service.CreateParams{
		FactoryID: req.FactoryID,
		ImportID:  req.ImportID,
		Comment:   req.Comment,
		ImageKey:  req.ImageKey,
		UserID:    identity.UserID(),
		UserName:  identity.UserName(),
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, transport.ToCommentResponse(*comment))
}

// PresignImage handles POST /api/v1/comments/images/presign
func (h *Handler) PresignImage(c *gin.Context) {
	var req transport.PresignImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	presigned, err := h.svc.PresignImageUpload(c.Request.Context(), req.FactoryID, req.ImportID, req.FileName, req.ContentType, req.SizeBytes)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, presigned)
}

// ImageDownloadURL handles GET /api/v1/comments/images/:imageKey/download
func (h *Handler) ImageDownloadURL(c *gin.Context) {
	imageKey := c.Param("imageKey")
	presigned, err := h.svc.ImageDownloadURL(c.Request.Context(), imageKey)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, presigned)
}

// Delete handles DELETE /api/v1/comments/:id
func (h *Handler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if err := h.svc.Delete(c.Request.Context(), id, identity.UserID(), identity.HasRole("admin")); httpkit.HandleError(c, err) {
		return
	}
	c.Status(http.StatusNoContent)
}
