package realtime

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/careops/hospital-api/internal/service/appointment"
	"github.com/careops/hospital-api/pkg/messaging"
)

// Broadcaster fans committed appointment events out to every connected
// session and serves per-session snapshots. With a broker attached it also
// relays events through a shared channel so other process instances can
// deliver them to their own sessions.
type Broadcaster struct {
	hub          *Hub
	appointments *appointment.Service
	broker       messaging.Broker
	channel      string
	instanceID   string
	logger       zerolog.Logger
}

// relayEnvelope wraps a broadcast frame on the shared channel; the origin
// instance id prevents delivering our own events twice.
type relayEnvelope struct {
	Origin string          `json:"origin"`
	Frame  json.RawMessage `json:"frame"`
}

func NewBroadcaster(hub *Hub, appointments *appointment.Service, logger zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		hub:          hub,
		appointments: appointments,
		instanceID:   uuid.New().String(),
		logger:       logger.With().Str("component", "broadcaster").Logger(),
	}
}

// WithRelay attaches the cross-instance relay. channel is the shared
// pub/sub channel every instance subscribes to.
func (b *Broadcaster) WithRelay(broker messaging.Broker, channel string) *Broadcaster {
	b.broker = broker
	b.channel = channel
	return b
}

// Publish delivers one domain event to all local sessions and, when a
// relay is attached, to the shared channel. Per-session delivery is best
// effort: a session that cannot accept the frame is skipped and logged,
// never failing the triggering request.
func (b *Broadcaster) Publish(ctx context.Context, ev *appointment.Event) {
	if ev == nil {
		return
	}

	event, frame, err := encodeEvent(ev)
	if err != nil {
		b.logger.Error().Err(err).Msg("failed to encode event")
		return
	}

	delivered, skipped := b.hub.Broadcast(frame)
	broadcastEvents.WithLabelValues(event).Inc()
	if skipped > 0 {
		b.logger.Warn().
			Str("event", event).
			Int("skipped", skipped).
			Msg("some sessions did not accept broadcast")
	}
	b.logger.Debug().
		Str("event", event).
		Int64("appointment_id", ev.ID).
		Int("delivered", delivered).
		Msg("event broadcast")

	if b.broker != nil {
		relay := relayEnvelope{Origin: b.instanceID, Frame: frame}
		if err := b.broker.Publish(ctx, b.channel, relay); err != nil {
			b.logger.Error().Err(err).Str("event", event).Msg("relay publish failed")
		}
	}
}

// Snapshot sends the active appointment list to the requesting session
// only. Completed appointments never appear in it.
func (b *Broadcaster) Snapshot(ctx context.Context, s *Session) error {
	active, err := b.appointments.ListActive(ctx)
	if err != nil {
		return err
	}

	frame, err := encodeMessage(EventGetAppointments, active)
	if err != nil {
		return err
	}
	return b.hub.Send(s, frame)
}

// Run consumes relayed frames from other instances and fans them out to
// local sessions. It blocks until ctx is cancelled; call it in its own
// goroutine when a relay is attached.
func (b *Broadcaster) Run(ctx context.Context) error {
	if b.broker == nil {
		return nil
	}

	msgs, err := b.broker.Subscribe(ctx, b.channel)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case payload, ok := <-msgs:
			if !ok {
				return nil
			}
			var relay relayEnvelope
			if err := json.Unmarshal(payload, &relay); err != nil {
				b.logger.Warn().Err(err).Msg("dropping malformed relay message")
				continue
			}
			if relay.Origin == b.instanceID {
				continue
			}
			b.hub.Broadcast(relay.Frame)
		}
	}
}
