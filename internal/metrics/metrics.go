// Package metrics holds the Prometheus instruments shared across the bot.
// Collectors register with the global registry, so importing this package is
// enough to expose them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	TranslationsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "slugbot_translations_total",
			Help: "Cumulative number of messages translated and slugged.",
		})

	TranslateErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "slugbot_translate_errors_total",
			Help: "Cumulative number of failed translation provider calls.",
		})

	HandlerErrorsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "slugbot_handler_errors_total",
			Help: "Cumulative number of update handlers that ended in an error.",
		})

	SessionsCreatedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "slugbot_sessions_created_total",
			Help: "Cumulative number of user sessions created.",
		})
)

func init() {
	prometheus.MustRegister(
		TranslationsTotal,
		TranslateErrorsTotal,
		HandlerErrorsTotal,
		SessionsCreatedTotal,
	)
}
