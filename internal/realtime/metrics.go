package realtime

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	connectedSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "realtime_connected_sessions",
		Help: "Number of currently connected dashboard sessions",
	})

	broadcastEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "realtime_broadcast_events_total",
		Help: "Total broadcast events by wire event name",
	}, []string{"event"})
)
