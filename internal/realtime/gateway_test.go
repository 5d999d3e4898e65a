package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/service/appointment"
)

func newGatewayFixture(t *testing.T) (*Gateway, *Hub, *appointment.Service) {
	t.Helper()
	hub := NewHub()
	svc := appointment.NewService(newMemAppointmentRepo(), memPatientRepo{})
	b := NewBroadcaster(hub, svc, zerolog.Nop())
	return NewGateway(hub, svc, b, 8, zerolog.Nop()), hub, svc
}

func drain(t *testing.T, s *Session) []Envelope {
	t.Helper()
	var out []Envelope
	for {
		select {
		case frame := <-s.Outbound():
			out = append(out, decodeEnvelope(t, frame))
		default:
			return out
		}
	}
}

func TestDispatchCreateBroadcastsToAllSessions(t *testing.T) {
	g, hub, _ := newGatewayFixture(t)
	ctx := context.Background()

	sender := NewSession(8)
	watcher := NewSession(8)
	hub.Register(sender)
	hub.Register(watcher)

	g.dispatch(ctx, sender, []byte(`{"event":"createAppointment","data":{"patientsId":1}}`))

	for _, s := range []*Session{sender, watcher} {
		frames := drain(t, s)
		require.Len(t, frames, 1)
		assert.Equal(t, EventCreatedAppointments, frames[0].Event)
	}
}

func TestDispatchTransitionFlow(t *testing.T) {
	g, hub, svc := newGatewayFixture(t)
	ctx := context.Background()

	apt, _, err := svc.Create(ctx, &model.CreateAppointmentRequest{PatientsID: 1})
	require.NoError(t, err)

	sender := NewSession(8)
	watcher := NewSession(8)
	hub.Register(sender)
	hub.Register(watcher)

	g.dispatch(ctx, sender, []byte(fmt.Sprintf(`{"event":"updateStatusInProgress","data":%d}`, apt.ID)))

	frames := drain(t, watcher)
	require.Len(t, frames, 1)
	assert.Equal(t, EventUpdatedInProgress, frames[0].Event)

	var id int64
	require.NoError(t, json.Unmarshal(frames[0].Data, &id))
	assert.Equal(t, apt.ID, id)

	g.dispatch(ctx, sender, []byte(fmt.Sprintf(`{"event":"updateStatusCompleted","data":%d}`, apt.ID)))
	frames = drain(t, watcher)
	require.Len(t, frames, 1)
	assert.Equal(t, EventUpdatedCompleted, frames[0].Event)
}

func TestDispatchIdempotentTransitionProducesNoBroadcast(t *testing.T) {
	g, hub, svc := newGatewayFixture(t)
	ctx := context.Background()

	apt, _, err := svc.Create(ctx, &model.CreateAppointmentRequest{PatientsID: 1})
	require.NoError(t, err)
	_, _, err = svc.Transition(ctx, apt.ID, model.AppointmentStatusInProgress)
	require.NoError(t, err)

	sender := NewSession(8)
	hub.Register(sender)

	g.dispatch(ctx, sender, []byte(fmt.Sprintf(`{"event":"updateStatusInProgress","data":%d}`, apt.ID)))
	assert.Empty(t, drain(t, sender))
}

func TestDispatchInvalidTransitionRepliesToSenderOnly(t *testing.T) {
	g, hub, svc := newGatewayFixture(t)
	ctx := context.Background()

	apt, _, err := svc.Create(ctx, &model.CreateAppointmentRequest{PatientsID: 1})
	require.NoError(t, err)

	sender := NewSession(8)
	watcher := NewSession(8)
	hub.Register(sender)
	hub.Register(watcher)

	// PENDING cannot jump straight to COMPLETED.
	g.dispatch(ctx, sender, []byte(fmt.Sprintf(`{"event":"updateStatusCompleted","data":%d}`, apt.ID)))

	frames := drain(t, sender)
	require.Len(t, frames, 1)
	assert.Equal(t, EventError, frames[0].Event)
	assert.Empty(t, drain(t, watcher))
}

func TestDispatchRemoveBroadcastsDeletion(t *testing.T) {
	g, hub, svc := newGatewayFixture(t)
	ctx := context.Background()

	apt, _, err := svc.Create(ctx, &model.CreateAppointmentRequest{PatientsID: 1})
	require.NoError(t, err)

	sender := NewSession(8)
	hub.Register(sender)

	g.dispatch(ctx, sender, []byte(fmt.Sprintf(`{"event":"removeAppointment","data":%d}`, apt.ID)))

	frames := drain(t, sender)
	require.Len(t, frames, 1)
	assert.Equal(t, EventDeletedAppointment, frames[0].Event)
}

func TestDispatchRemoveUnknownIDRepliesNotFound(t *testing.T) {
	g, hub, _ := newGatewayFixture(t)
	ctx := context.Background()

	sender := NewSession(8)
	watcher := NewSession(8)
	hub.Register(sender)
	hub.Register(watcher)

	g.dispatch(ctx, sender, []byte(`{"event":"removeAppointment","data":404}`))

	frames := drain(t, sender)
	require.Len(t, frames, 1)
	assert.Equal(t, EventError, frames[0].Event)
	assert.Empty(t, drain(t, watcher))
}

func TestDispatchSnapshotRequest(t *testing.T) {
	g, hub, svc := newGatewayFixture(t)
	ctx := context.Background()

	_, _, err := svc.Create(ctx, &model.CreateAppointmentRequest{PatientsID: 1})
	require.NoError(t, err)

	requester := NewSession(8)
	other := NewSession(8)
	hub.Register(requester)
	hub.Register(other)

	g.dispatch(ctx, requester, []byte(`{"event":"getAppointments"}`))

	frames := drain(t, requester)
	require.Len(t, frames, 1)
	assert.Equal(t, EventGetAppointments, frames[0].Event)
	assert.Empty(t, drain(t, other))
}

func TestDispatchRejectsMalformedFrames(t *testing.T) {
	g, hub, _ := newGatewayFixture(t)
	ctx := context.Background()

	sender := NewSession(8)
	hub.Register(sender)

	cases := [][]byte{
		[]byte(`not json`),
		[]byte(`{"event":"launchMissiles"}`),
		[]byte(`{"event":"createAppointment","data":{"patientsId":1,"extra":true}}`),
		[]byte(`{"event":"createAppointment","data":{"patientsId":-1}}`),
		[]byte(`{"event":"updateStatusInProgress","data":"seven"}`),
	}
	for _, raw := range cases {
		g.dispatch(ctx, sender, raw)
		frames := drain(t, sender)
		require.Len(t, frames, 1, "frame %s", raw)
		assert.Equal(t, EventError, frames[0].Event)
	}
}
