package monitor_registry

import (
	"math"
	"net/http"
	"time"

	"github.com/decentraland/thirdparty-registry/src/utils/monitoring/report"
	"github.com/decentraland/thirdparty-registry/src/utils/task"

	"github.com/gammazero/deque"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Stores and computes monitor counters
type Monitor struct {
	*task.Task

	Report report.Report

	historySize int

	collector *Collector

	// Operation processing speed
	Operations *deque.Deque[uint64]
	Failures   *deque.Deque[uint64]

	// Computed from the history
	operationsPerMinute float64
	failuresPerMinute   float64
}

func NewMonitor() (self *Monitor) {
	self = new(Monitor)

	self.Report = report.Report{
		Run:            &report.RunReport{},
		Registry:       &report.RegistryReport{},
		Gateway:        &report.GatewayReport{},
		RedisPublisher: &report.RedisPublisherReport{},
	}

	// Initialization
	self.Report.Run.State.StartTimestamp.Store(time.Now().Unix())

	self.collector = NewCollector().WithMonitor(self)

	self.Task = task.NewTask(nil, "monitor").
		WithPeriodicSubtaskFunc(time.Minute, self.monitorOperations)

	return self.WithMaxHistorySize(10)
}

func (self *Monitor) WithMaxHistorySize(maxHistorySize int) *Monitor {
	self.historySize = maxHistorySize
	self.Operations = deque.New[uint64](self.historySize)
	self.Failures = deque.New[uint64](self.historySize)
	return self
}

func (self *Monitor) GetReport() *report.Report {
	return &self.Report
}

func (self *Monitor) GetPrometheusCollector() (collector prometheus.Collector) {
	return self.collector
}

func round(f float64) float64 {
	return math.Round(f*100) / 100
}

func push(history *deque.Deque[uint64], value uint64, size int) float64 {
	history.PushBack(value)
	if history.Len() > size {
		history.PopFront()
	}
	return float64(history.Back()-history.Front()) / float64(history.Len())
}

// Measure operation processing speed
func (self *Monitor) monitorOperations() (err error) {
	state := &self.Report.Registry.State
	self.operationsPerMinute = round(push(self.Operations, state.OperationsSucceeded.Load(), self.historySize))
	self.failuresPerMinute = round(push(self.Failures, state.OperationsFailed.Load(), self.historySize))
	return
}

// Unhealthy when the store keeps failing
func (self *Monitor) IsOK() bool {
	return self.Report.Registry.Errors.Store.Load() == 0 || self.failuresPerMinute <= self.operationsPerMinute
}

func (self *Monitor) OnGetState(c *gin.Context) {
	self.Report.Run.State.UpForSeconds.Store(uint64(time.Now().Unix() - self.Report.Run.State.StartTimestamp.Load()))
	c.JSON(http.StatusOK, &self.Report)
}

func (self *Monitor) OnGetHealth(c *gin.Context) {
	if self.IsOK() {
		c.Status(http.StatusOK)
	} else {
		c.Status(http.StatusServiceUnavailable)
	}
}
