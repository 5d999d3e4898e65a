package realtime

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/service/appointment"
	apperrors "github.com/careops/hospital-api/pkg/errors"
)

func decodeEnvelope(t *testing.T, frame []byte) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(frame, &env))
	return env
}

func TestEncodeEventCreated(t *testing.T) {
	apt := &model.Appointment{ID: 7, PatientID: 3, Status: model.AppointmentStatusPending}
	event, frame, err := encodeEvent(&appointment.Event{
		Type:        appointment.EventCreated,
		ID:          apt.ID,
		Appointment: apt,
		NewStatus:   apt.Status,
	})
	require.NoError(t, err)
	assert.Equal(t, EventCreatedAppointments, event)

	env := decodeEnvelope(t, frame)
	assert.Equal(t, EventCreatedAppointments, env.Event)

	var got model.Appointment
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, int64(3), got.PatientID)
}

func TestEncodeEventStatusChanged(t *testing.T) {
	event, frame, err := encodeEvent(&appointment.Event{
		Type:      appointment.EventStatusChanged,
		ID:        5,
		OldStatus: model.AppointmentStatusPending,
		NewStatus: model.AppointmentStatusInProgress,
	})
	require.NoError(t, err)
	assert.Equal(t, EventUpdatedInProgress, event)

	env := decodeEnvelope(t, frame)
	var id int64
	require.NoError(t, json.Unmarshal(env.Data, &id))
	assert.Equal(t, int64(5), id)

	event, _, err = encodeEvent(&appointment.Event{
		Type:      appointment.EventStatusChanged,
		ID:        5,
		OldStatus: model.AppointmentStatusInProgress,
		NewStatus: model.AppointmentStatusCompleted,
	})
	require.NoError(t, err)
	assert.Equal(t, EventUpdatedCompleted, event)
}

func TestEncodeEventDeleted(t *testing.T) {
	event, frame, err := encodeEvent(&appointment.Event{
		Type: appointment.EventDeleted,
		ID:   9,
	})
	require.NoError(t, err)
	assert.Equal(t, EventDeletedAppointment, event)

	env := decodeEnvelope(t, frame)
	assert.Equal(t, EventDeletedAppointment, env.Event)
}

func TestEncodeEventUnknownType(t *testing.T) {
	_, _, err := encodeEvent(&appointment.Event{Type: "exploded"})
	assert.Error(t, err)
}

func TestEncodeError(t *testing.T) {
	frame, err := encodeError(apperrors.NotFound("appointment", nil))
	require.NoError(t, err)

	env := decodeEnvelope(t, frame)
	assert.Equal(t, EventError, env.Event)

	var payload errorPayload
	require.NoError(t, json.Unmarshal(env.Data, &payload))
	assert.Equal(t, http.StatusNotFound, payload.Code)
	assert.NotEmpty(t, payload.Message)
}

func TestDecodeID(t *testing.T) {
	id, err := decodeID(json.RawMessage(`12`))
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)

	_, err = decodeID(json.RawMessage(`"12"`))
	assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))

	_, err = decodeID(json.RawMessage(`0`))
	assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))

	_, err = decodeID(json.RawMessage(`-4`))
	assert.Equal(t, apperrors.ErrValidation, apperrors.CodeOf(err))
}

func TestStrictUnmarshalRejectsUnknownFields(t *testing.T) {
	var req model.CreateAppointmentRequest
	err := strictUnmarshal([]byte(`{"patientsId":1,"bogus":true}`), &req)
	assert.Error(t, err)

	err = strictUnmarshal([]byte(`{"patientsId":1}`), &req)
	require.NoError(t, err)
	assert.Equal(t, int64(1), req.PatientsID)
}
