package medicalrecord

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/service/medical"
	apperrors "github.com/careops/hospital-api/pkg/errors"
	"github.com/careops/hospital-api/pkg/httputil"
)

type Handler struct {
	service *medical.Service
}

func NewHandler(service *medical.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	records := r.Group("/medical-records")
	{
		records.POST("", h.CreateMedicalRecord)
		records.GET("/:id", h.GetMedicalRecord)
	}
	r.GET("/patients/:id/medical-records", h.ListPatientMedicalRecords)
}

func (h *Handler) CreateMedicalRecord(c *gin.Context) {
	var req model.CreateMedicalRecordRequest
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

func (h *Handler) GetMedicalRecord(c *gin.Context) {
	id, err := parseID(c, "medical record")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	record, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, record)
}

func (h *Handler) ListPatientMedicalRecords(c *gin.Context) {
	patientID, err := parseID(c, "patient")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	records, err := h.service.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, records)
}

func parseID(c *gin.Context, resource string) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("invalid "+resource+" ID", err)
	}
	return id, nil
}
