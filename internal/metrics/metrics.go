// Package metrics собирает prometheus-метрики эскроу-леджера.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	ShipmentsOpened     *prometheus.CounterVec
	ShipmentTransitions *prometheus.CounterVec
	FundsMoved          *prometheus.CounterVec
	Rejections          *prometheus.CounterVec
	Notifications       *prometheus.CounterVec
	Deliveries          *prometheus.CounterVec
	OperationDuration   *prometheus.HistogramVec
}

// New регистрирует метрики в reg. При reg == nil метрики создаются без регистрации, что удобно в тестах.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		ShipmentsOpened: f.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_shipments_opened_total",
			Help: "Total number of escrowed shipments opened",
		}, []string{"origin"}),
		ShipmentTransitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_shipment_transitions_total",
			Help: "Total number of applied shipment status transitions",
		}, []string{"status"}),
		FundsMoved: f.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_funds_moved_total",
			Help: "Total value moved by ledger operations",
		}, []string{"direction"}),
		Rejections: f.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_rejections_total",
			Help: "Total number of operations rejected with a domain error",
		}, []string{"operation", "reason"}),
		Notifications: f.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_notifications_posted_total",
			Help: "Total number of notifications posted",
		}, []string{"severity"}),
		Deliveries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_notification_deliveries_total",
			Help: "Outbox delivery attempts by result",
		}, []string{"result"}),
		OperationDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "escrow_operation_duration_seconds",
			Help:    "Duration of ledger and shipment operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"operation"}),
	}
}

// Методы ниже допускают nil-получатель: сервисы могут работать без метрик.

func (m *Metrics) IncShipmentOpened(origin string) {
	if m == nil {
		return
	}
	m.ShipmentsOpened.WithLabelValues(origin).Inc()
}

func (m *Metrics) IncTransition(status string) {
	if m == nil {
		return
	}
	m.ShipmentTransitions.WithLabelValues(status).Inc()
}

func (m *Metrics) AddFundsMoved(direction string, amount float64) {
	if m == nil {
		return
	}
	m.FundsMoved.WithLabelValues(direction).Add(amount)
}

func (m *Metrics) IncRejection(operation, reason string) {
	if m == nil {
		return
	}
	m.Rejections.WithLabelValues(operation, reason).Inc()
}

func (m *Metrics) IncNotification(severity string) {
	if m == nil {
		return
	}
	m.Notifications.WithLabelValues(severity).Inc()
}

func (m *Metrics) IncDelivery(result string) {
	if m == nil {
		return
	}
	m.Deliveries.WithLabelValues(result).Inc()
}

// ObserveOperation фиксирует длительность операции. Вызывать с time.Now() на старте операции.
func (m *Metrics) ObserveOperation(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.OperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
