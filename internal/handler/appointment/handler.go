package appointment

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/service/appointment"
	apperrors "github.com/careops/hospital-api/pkg/errors"
	"github.com/careops/hospital-api/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PATCH("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)
	}
}

// CreateAppointment performs the same domain operation as the realtime
// path; the REST surface does not broadcast, so the event is discarded.
func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	apt, _, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, apt)
}

func (h *Handler) ListAppointments(c *gin.Context) {
	filter := model.AppointmentStatusFilter(c.DefaultQuery("status", string(model.AppointmentFilterAll)))
	if !filter.Valid() {
		httputil.RespondWithError(c, apperrors.Validation("invalid status filter", nil))
		return
	}

	appointments, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	apt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation(err.Error(), err))
		return
	}

	apt, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	apt, _, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.Validation("invalid appointment ID", err)
	}
	return id, nil
}
