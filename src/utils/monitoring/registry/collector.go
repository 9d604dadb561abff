package monitor_registry

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Collector struct {
	monitor *Monitor

	// Run
	UpForSeconds *prometheus.Desc

	// Registry
	OperationsSucceeded *prometheus.Desc
	OperationsFailed    *prometheus.Desc
	EventsEmitted       *prometheus.Desc
	ThirdPartiesAdded   *prometheus.Desc
	ItemsAdded          *prometheus.Desc
	SlotsBought         *prometheus.Desc
	SlotsConsumed       *prometheus.Desc

	// Registry errors
	AuthorizationErrors *prometheus.Desc
	ValidationErrors    *prometheus.Desc
	CapacityErrors      *prometheus.Desc
	SignatureErrors     *prometheus.Desc
	OracleErrors        *prometheus.Desc
	TransferErrors      *prometheus.Desc
	StoreErrors         *prometheus.Desc

	// Gateway
	RequestsServed       *prometheus.Desc
	InvalidCallerErrors  *prometheus.Desc
	ReplayedCallErrors   *prometheus.Desc
	RateLimitedErrors    *prometheus.Desc
	GatewayInternalError *prometheus.Desc

	// Redis publisher
	MessagesPublished       *prometheus.Desc
	PublishErrors           *prometheus.Desc
	PublishPersistentErrors *prometheus.Desc
	PublishDroppedErrors    *prometheus.Desc
}

func NewCollector() *Collector {
	labels := prometheus.Labels{
		"app": "thirdparty_registry",
	}

	return &Collector{
		UpForSeconds: prometheus.NewDesc("up_for_seconds", "", nil, labels),

		OperationsSucceeded: prometheus.NewDesc("registry_operations_succeeded", "", nil, labels),
		OperationsFailed:    prometheus.NewDesc("registry_operations_failed", "", nil, labels),
		EventsEmitted:       prometheus.NewDesc("registry_events_emitted", "", nil, labels),
		ThirdPartiesAdded:   prometheus.NewDesc("registry_third_parties_added", "", nil, labels),
		ItemsAdded:          prometheus.NewDesc("registry_items_added", "", nil, labels),
		SlotsBought:         prometheus.NewDesc("registry_slots_bought", "", nil, labels),
		SlotsConsumed:       prometheus.NewDesc("registry_slots_consumed", "", nil, labels),

		AuthorizationErrors: prometheus.NewDesc("error_registry_authorization", "", nil, labels),
		ValidationErrors:    prometheus.NewDesc("error_registry_validation", "", nil, labels),
		CapacityErrors:      prometheus.NewDesc("error_registry_capacity", "", nil, labels),
		SignatureErrors:     prometheus.NewDesc("error_registry_signature", "", nil, labels),
		OracleErrors:        prometheus.NewDesc("error_registry_oracle", "", nil, labels),
		TransferErrors:      prometheus.NewDesc("error_registry_transfer", "", nil, labels),
		StoreErrors:         prometheus.NewDesc("error_registry_store", "", nil, labels),

		RequestsServed:       prometheus.NewDesc("gateway_requests_served", "", nil, labels),
		InvalidCallerErrors:  prometheus.NewDesc("error_gateway_invalid_caller", "", nil, labels),
		ReplayedCallErrors:   prometheus.NewDesc("error_gateway_replayed_call", "", nil, labels),
		RateLimitedErrors:    prometheus.NewDesc("error_gateway_rate_limited", "", nil, labels),
		GatewayInternalError: prometheus.NewDesc("error_gateway_internal", "", nil, labels),

		MessagesPublished:       prometheus.NewDesc("redis_publisher_messages_published", "", nil, labels),
		PublishErrors:           prometheus.NewDesc("error_redis_publisher_publish", "", nil, labels),
		PublishPersistentErrors: prometheus.NewDesc("error_redis_publisher_persistent", "", nil, labels),
		PublishDroppedErrors:    prometheus.NewDesc("error_redis_publisher_dropped", "", nil, labels),
	}
}

func (self *Collector) WithMonitor(m *Monitor) *Collector {
	self.monitor = m
	return self
}

func (self *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- self.UpForSeconds

	ch <- self.OperationsSucceeded
	ch <- self.OperationsFailed
	ch <- self.EventsEmitted
	ch <- self.ThirdPartiesAdded
	ch <- self.ItemsAdded
	ch <- self.SlotsBought
	ch <- self.SlotsConsumed

	ch <- self.AuthorizationErrors
	ch <- self.ValidationErrors
	ch <- self.CapacityErrors
	ch <- self.SignatureErrors
	ch <- self.OracleErrors
	ch <- self.TransferErrors
	ch <- self.StoreErrors

	ch <- self.RequestsServed
	ch <- self.InvalidCallerErrors
	ch <- self.ReplayedCallErrors
	ch <- self.RateLimitedErrors
	ch <- self.GatewayInternalError

	ch <- self.MessagesPublished
	ch <- self.PublishErrors
	ch <- self.PublishPersistentErrors
	ch <- self.PublishDroppedErrors
}

// Collect implements the required collect function for all prometheus collectors
func (self *Collector) Collect(ch chan<- prometheus.Metric) {
	r := self.monitor.GetReport()

	ch <- prometheus.MustNewConstMetric(self.UpForSeconds, prometheus.GaugeValue, float64(r.Run.State.UpForSeconds.Load()))

	ch <- prometheus.MustNewConstMetric(self.OperationsSucceeded, prometheus.CounterValue, float64(r.Registry.State.OperationsSucceeded.Load()))
	ch <- prometheus.MustNewConstMetric(self.OperationsFailed, prometheus.CounterValue, float64(r.Registry.State.OperationsFailed.Load()))
	ch <- prometheus.MustNewConstMetric(self.EventsEmitted, prometheus.CounterValue, float64(r.Registry.State.EventsEmitted.Load()))
	ch <- prometheus.MustNewConstMetric(self.ThirdPartiesAdded, prometheus.CounterValue, float64(r.Registry.State.ThirdPartiesAdded.Load()))
	ch <- prometheus.MustNewConstMetric(self.ItemsAdded, prometheus.CounterValue, float64(r.Registry.State.ItemsAdded.Load()))
	ch <- prometheus.MustNewConstMetric(self.SlotsBought, prometheus.CounterValue, float64(r.Registry.State.SlotsBought.Load()))
	ch <- prometheus.MustNewConstMetric(self.SlotsConsumed, prometheus.CounterValue, float64(r.Registry.State.SlotsConsumed.Load()))

	ch <- prometheus.MustNewConstMetric(self.AuthorizationErrors, prometheus.CounterValue, float64(r.Registry.Errors.Authorization.Load()))
	ch <- prometheus.MustNewConstMetric(self.ValidationErrors, prometheus.CounterValue, float64(r.Registry.Errors.Validation.Load()))
	ch <- prometheus.MustNewConstMetric(self.CapacityErrors, prometheus.CounterValue, float64(r.Registry.Errors.Capacity.Load()))
	ch <- prometheus.MustNewConstMetric(self.SignatureErrors, prometheus.CounterValue, float64(r.Registry.Errors.Signature.Load()))
	ch <- prometheus.MustNewConstMetric(self.OracleErrors, prometheus.CounterValue, float64(r.Registry.Errors.Oracle.Load()))
	ch <- prometheus.MustNewConstMetric(self.TransferErrors, prometheus.CounterValue, float64(r.Registry.Errors.Transfer.Load()))
	ch <- prometheus.MustNewConstMetric(self.StoreErrors, prometheus.CounterValue, float64(r.Registry.Errors.Store.Load()))

	ch <- prometheus.MustNewConstMetric(self.RequestsServed, prometheus.CounterValue, float64(r.Gateway.State.RequestsServed.Load()))
	ch <- prometheus.MustNewConstMetric(self.InvalidCallerErrors, prometheus.CounterValue, float64(r.Gateway.Errors.InvalidCaller.Load()))
	ch <- prometheus.MustNewConstMetric(self.ReplayedCallErrors, prometheus.CounterValue, float64(r.Gateway.Errors.ReplayedCall.Load()))
	ch <- prometheus.MustNewConstMetric(self.RateLimitedErrors, prometheus.CounterValue, float64(r.Gateway.Errors.RateLimited.Load()))
	ch <- prometheus.MustNewConstMetric(self.GatewayInternalError, prometheus.CounterValue, float64(r.Gateway.Errors.Internal.Load()))

	ch <- prometheus.MustNewConstMetric(self.MessagesPublished, prometheus.CounterValue, float64(r.RedisPublisher.State.MessagesPublished.Load()))
	ch <- prometheus.MustNewConstMetric(self.PublishErrors, prometheus.CounterValue, float64(r.RedisPublisher.Errors.Publish.Load()))
	ch <- prometheus.MustNewConstMetric(self.PublishPersistentErrors, prometheus.CounterValue, float64(r.RedisPublisher.Errors.PersistentFailure.Load()))
	ch <- prometheus.MustNewConstMetric(self.PublishDroppedErrors, prometheus.CounterValue, float64(r.RedisPublisher.Errors.Dropped.Load()))
}
