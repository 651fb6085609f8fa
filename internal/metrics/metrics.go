package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "wheel"

	labelResult = "result"
	labelValue  = "value"
	labelRoute  = "route"
	labelCode   = "code"
)

const (
	FlingAccepted = "accepted"
	FlingBusy     = "busy"
)

var (
	flings = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "flings_total",
		Help:      "Fling gestures by result",
	}, []string{labelResult})

	spins = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "spins_total",
		Help:      "Settled spins by prize value",
	}, []string{labelValue})

	payout = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payout_total",
		Help:      "Sum of credited prizes",
	})

	spinDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "spin_duration_seconds",
		Help:      "Time from release to settle",
		Buckets:   []float64{0.3, 1, 2, 4, 6, 8, 12, 20},
	})

	forcedSettles = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "forced_settles_total",
		Help:      "Spins settled by the watchdog or inline on pool saturation",
	})

	settleErrors = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settle_errors_total",
		Help:      "Spins whose prize could not be stored",
	})

	activeWheels = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_wheels",
		Help:      "Wheels held in memory",
	})

	subscribers = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "frame_subscribers",
		Help:      "Open frame streams",
	})

	httpRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests by route and status code",
	}, []string{labelRoute, labelCode})
)

func ObserveFling(result string) {
	flings.WithLabelValues(result).Inc()
}

// ObserveSpin учитывает остановленный спин
func ObserveSpin(value int, d time.Duration) {
	spins.WithLabelValues(strconv.Itoa(value)).Inc()
	payout.Add(float64(value))
	spinDuration.Observe(d.Seconds())
}

func ObserveForcedSettle() {
	forcedSettles.Inc()
}

func ObserveSettleError() {
	settleErrors.Inc()
}

func SetActiveWheels(n int) {
	activeWheels.Set(float64(n))
}

func SubscriberOpened() {
	subscribers.Inc()
}

func SubscriberClosed() {
	subscribers.Dec()
}

func ObserveHTTP(route string, code int) {
	httpRequests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}
