package exports

import (
	"net/http"
	"strconv"
	"time"

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

// CreateJobRequest is the request body for requesting a spreadsheet export.
type CreateJobRequest struct {
	FactoryID   *uuid.UUID `json:"factoryId"`
	NotifyEmail string     `json:"notifyEmail" validate:"omitempty,email"`
}

// JobResponse is the API representation of an export job.
type JobResponse struct {
	ID           uuid.UUID  `json:"id"`
	Status       string     `json:"status"`
	FactoryID    *uuid.UUID `json:"factoryId,omitempty"`
	RequestedBy  string     `json:"requestedBy"`
	NotifyEmail  string     `json:"notifyEmail,omitempty"`
	ErrorMessage string     `json:"errorMessage,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

func toJobResponse(j Job) JobResponse {
	return JobResponse{
		ID:           j.ID,
		Status:       j.Status,
		FactoryID:    j.FactoryID,
		RequestedBy:  j.RequestedBy,
		NotifyEmail:  j.NotifyEmail,
		ErrorMessage: j.ErrorMessage,
		CreatedAt:    j.CreatedAt,
		CompletedAt:  j.CompletedAt,
	}
}

// Handler handles HTTP requests for export jobs
type Handler struct {
	svc *Service
	val *validator.Validator
}

// NewHandler creates a new export jobs handler
func NewHandler(svc *Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes registers the export job routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.GetByID)
	rg.GET("/:id/download", h.Download)
}

// Create handles POST /api/v1/exports
func (h *Handler) Create(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	job, err := h.svc.Create(c.Request.Context(), CreateParams{
		FactoryID:   req.FactoryID,
		NotifyEmail: req.NotifyEmail,
		RequestedBy: identity.UserName(),
	})
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusAccepted, toJobResponse(*job))
}

// List handles GET /api/v1/exports
func (h *Handler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	jobs, err := h.svc.List(c.Request.Context(), limit)
	if httpkit.HandleError(c, err) {
		return
	}

	out := make([]JobResponse, 0, len(jobs))
	for _, j := range jobs {
		out = append(out, toJobResponse(j))
	}
	httpkit.OK(c, out)
}

// GetByID handles GET /api/v1/exports/:id
func (h *Handler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	job, err := h.svc.GetByID(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, toJobResponse(*job))
}

// Download handles GET /api/v1/exports/:id/download
func (h *Handler) Download(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	presigned, err := h.svc.DownloadURL(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, presigned)
}
