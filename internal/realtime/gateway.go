package realtime

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/careops/hospital-api/internal/model"
	"github.com/careops/hospital-api/internal/service/appointment"
	apperrors "github.com/careops/hospital-api/pkg/errors"
	"github.com/careops/hospital-api/pkg/validator"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins; tighten in production.
	},
}

// Gateway is the WebSocket endpoint: it decodes inbound frames into typed
// commands, runs them through the appointment service and hands the
// resulting events to the Broadcaster.
type Gateway struct {
	hub          *Hub
	appointments *appointment.Service
	broadcaster  *Broadcaster
	validate     *validator.Validator
	bufferSize   int
	logger       zerolog.Logger
}

func NewGateway(hub *Hub, appointments *appointment.Service, broadcaster *Broadcaster, bufferSize int, logger zerolog.Logger) *Gateway {
	return &Gateway{
		hub:          hub,
		appointments: appointments,
		broadcaster:  broadcaster,
		validate:     validator.New(),
		bufferSize:   bufferSize,
		logger:       logger.With().Str("component", "realtime-gateway").Logger(),
	}
}

func (g *Gateway) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/realtime", g.HandleConnect)
}

// HandleConnect upgrades the request, registers the session and starts the
// read/write pumps. The transport signals disconnect by failing the read,
// which unregisters the session; no other cleanup is needed.
func (g *Gateway) HandleConnect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		g.logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	session := NewSession(g.bufferSize)
	g.hub.Register(session)
	g.logger.Info().Str("session_id", session.ID).Msg("client connected")

	go g.writePump(conn, session)
	go g.readPump(conn, session)
}

func (g *Gateway) readPump(conn *websocket.Conn, session *Session) {
	defer func() {
		g.hub.Unregister(session)
		conn.Close()
		g.logger.Info().Str("session_id", session.ID).Msg("client disconnected")
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return
		}
		g.dispatch(context.Background(), session, raw)
	}
}

func (g *Gateway) writePump(conn *websocket.Conn, session *Session) {
	defer conn.Close()

	for frame := range session.Outbound() {
		if err := conn.WriteMessage(websocket.TextMessage, frame); err != nil {
			return
		}
	}
	conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// dispatch routes one inbound frame. Failures are acknowledged to the
// sending session only; nothing is broadcast on a failed request.
func (g *Gateway) dispatch(ctx context.Context, session *Session, raw []byte) {
	var env Envelope
	if err := strictUnmarshal(raw, &env); err != nil {
		g.replyError(session, apperrors.Validation("malformed message", err))
		return
	}

	switch env.Event {
	case EventCreateAppointment:
		g.handleCreate(ctx, session, env.Data)
	case EventGetAppointments:
		if err := g.broadcaster.Snapshot(ctx, session); err != nil {
			g.replyError(session, err)
		}
	case EventUpdateStatusInProgress:
		g.handleTransition(ctx, session, env.Data, model.AppointmentStatusInProgress)
	case EventUpdateStatusCompleted:
		g.handleTransition(ctx, session, env.Data, model.AppointmentStatusCompleted)
	case EventRemoveAppointment:
		g.handleRemove(ctx, session, env.Data)
	default:
		g.replyError(session, apperrors.Validation("unknown event "+env.Event, nil))
	}
}

func (g *Gateway) handleCreate(ctx context.Context, session *Session, data json.RawMessage) {
	var req model.CreateAppointmentRequest
	if err := strictUnmarshal(data, &req); err != nil {
		g.replyError(session, apperrors.Validation("malformed createAppointment payload", err))
		return
	}
	if err := g.validate.Validate(&req); err != nil {
		g.replyError(session, apperrors.Validation(err.Error(), err))
		return
	}

	_, ev, err := g.appointments.Create(ctx, &req)
	if err != nil {
		g.replyError(session, err)
		return
	}
	g.broadcaster.Publish(ctx, ev)
}

func (g *Gateway) handleTransition(ctx context.Context, session *Session, data json.RawMessage, target model.AppointmentStatus) {
	id, err := decodeID(data)
	if err != nil {
		g.replyError(session, err)
		return
	}

	_, ev, err := g.appointments.Transition(ctx, id, target)
	if err != nil {
		g.replyError(session, err)
		return
	}
	// ev is nil when the appointment already had the target status; an
	// idempotent request produces no broadcast.
	g.broadcaster.Publish(ctx, ev)
}

func (g *Gateway) handleRemove(ctx context.Context, session *Session, data json.RawMessage) {
	id, err := decodeID(data)
	if err != nil {
		g.replyError(session, err)
		return
	}

	_, ev, err := g.appointments.Delete(ctx, id)
	if err != nil {
		g.replyError(session, err)
		return
	}
	g.broadcaster.Publish(ctx, ev)
}

func (g *Gateway) replyError(session *Session, err error) {
	frame, encErr := encodeError(err)
	if encErr != nil {
		g.logger.Error().Err(encErr).Msg("failed to encode error frame")
		return
	}
	if sendErr := g.hub.Send(session, frame); sendErr != nil {
		g.logger.Warn().Err(sendErr).Str("session_id", session.ID).Msg("could not deliver error frame")
	}
}

// strictUnmarshal rejects unknown fields before dispatch.
func strictUnmarshal(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// decodeID parses an appointment id payload; ids must be positive integers.
func decodeID(data json.RawMessage) (int64, error) {
	var id int64
	if err := json.Unmarshal(data, &id); err != nil {
		return 0, apperrors.Validation("appointment id must be a number", err)
	}
	if id <= 0 {
		return 0, apperrors.Validation("appointment id must be a positive integer", nil)
	}
	return id, nil
}
