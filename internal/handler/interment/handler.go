package interment

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/service/interment"
	apperrors "github.com/careops/hospital-api/pkg/errors"
	"github.com/careops/hospital-api/pkg/httputil"
)

type Handler struct {
	service *interment.Service
}

func NewHandler(service *interment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	interments := r.Group("/interments")
	{
		interments.POST("", h.CreateInterment)
		interments.GET("/:id", h.GetInterment)
		interments.PATCH("/:id", h.UpdateInterment)
		interments.POST("/:id/diagnoses", h.AddDiagnosis)
	}
}

func (h *Handler) CreateInterment(c *gin.Context) {
	var req model.CreateIntermentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	created, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, created)
}

func (h *Handler) GetInterment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	found, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, found)
}

func (h *Handler) UpdateInterment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.UpdateIntermentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, updated)
}

func (h *Handler) AddDiagnosis(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.CreateDiagnosisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	diagnosis, err := h.service.AddDiagnosis(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, diagnosis)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("invalid interment ID", err)
	}
	return id, nil
}
