package metrics

import (
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
)

func init() { register(webhookRequestsTotal, changeEventsTotal) }

var webhookRequestsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "webhook_requests_total",
		Help: "Telegram webhook deliveries by HTTP status returned.",
	},
	[]string{"status"},
)

var changeEventsTotal = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "chat_change_events_total",
		Help: "Chat-store change events received by the dispatcher.",
	},
	[]string{"result"}, // 'dispatched', 'dropped', 'decode_error'
)

func IncWebhookRequest(status int) {
	webhookRequestsTotal.WithLabelValues(strconv.Itoa(status)).Inc()
}

func IncChangeEvent(result string) {
	changeEventsTotal.WithLabelValues(norm(result)).Inc()
}
