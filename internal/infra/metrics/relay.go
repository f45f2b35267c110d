package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() { register(inboundUpdatesTotal, notificationsTotal, anchorsRegisteredTotal) }

var inboundUpdatesTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "relay_inbound_updates_total",
		Help: "Inbound webhook updates by resolution outcome.",
	},
	[]string{"outcome"}, // 'relayed', 'unauthorized', 'not_a_reply', ...
)

var notificationsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "relay_notifications_total",
		Help: "Telegram notifications sent by the outbound and mirror relays.",
	},
	[]string{"kind", "success"}, // kind: 'outbound' | 'mirror'
)

var anchorsRegisteredTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "relay_thread_anchors_registered_total",
		Help: "Thread anchors persisted on first notification.",
	},
)

func IncInbound(outcome string) {
	inboundUpdatesTotal.WithLabelValues(norm(outcome)).Inc()
}

func IncNotification(kind string, success bool) {
	s := "false"
	if success {
		s = "true"
	}
	notificationsTotal.WithLabelValues(norm(kind), s).Inc()
}

func IncAnchorRegistered() { anchorsRegisteredTotal.Inc() }
