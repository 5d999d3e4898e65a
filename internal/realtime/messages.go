package realtime

import (
	"encoding/json"
	"fmt"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/service/appointment"
	"github.com/careops/hospital-api/pkg/errors"
	"github.com/careops/hospital-api/pkg/httputil"
)

// Client to server events.
const (
	EventCreateAppointment      = "createAppointment"
	EventGetAppointments        = "getAppointments"
	EventUpdateStatusInProgress = "updateStatusInProgress"
	EventUpdateStatusCompleted  = "updateStatusCompleted"
	EventRemoveAppointment      = "removeAppointment"
)

// Server to client events. Status updates carry only the id; dashboards
// patch locally or refetch.
const (
	EventCreatedAppointments = "createdAppointments"
	EventUpdatedInProgress   = "updatedAppointmentStatusInProgress"
	EventUpdatedCompleted    = "updatedAppointmentStatusCompleted"
	EventDeletedAppointment  = "deletedAppointment"
	EventError               = "error"
)

// Envelope is the wire frame in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

type errorPayload struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func encodeMessage(event string, data interface{}) ([]byte, error) {
	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", event, err)
	}
	return json.Marshal(Envelope{Event: event, Data: payload})
}

// encodeEvent maps a committed domain event onto its broadcast frame.
func encodeEvent(ev *appointment.Event) (string, []byte, error) {
	switch ev.Type {
	case appointment.EventCreated:
		data, err := encodeMessage(EventCreatedAppointments, ev.Appointment)
		return EventCreatedAppointments, data, err
	case appointment.EventStatusChanged:
		event := EventUpdatedInProgress
		if ev.NewStatus == model.AppointmentStatusCompleted {
			event = EventUpdatedCompleted
		}
		data, err := encodeMessage(event, ev.ID)
		return event, data, err
	case appointment.EventDeleted:
		data, err := encodeMessage(EventDeletedAppointment, ev.ID)
		return EventDeletedAppointment, data, err
	}
	return "", nil, fmt.Errorf("unknown event type %q", ev.Type)
}

func encodeError(err error) ([]byte, error) {
	code := errors.CodeOf(err)
	message := "internal server error"
	if appErr, ok := err.(*errors.AppError); ok {
		message = appErr.Message
	}
	return encodeMessage(EventError, errorPayload{
		Code:    httputil.HTTPStatus(code),
		Message: message,
	})
}
