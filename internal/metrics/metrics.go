// Package metrics provides Prometheus collectors for the signaling relay.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "huddle"

// Metrics groups every collector the relay updates. All methods are safe
// for concurrent use.
type Metrics struct {
	roomsActive        prometheus.Gauge
	participantsActive prometheus.Gauge
	connectionsActive  prometheus.Gauge
	roomsCreated       prometheus.Counter
	roomsEvicted       *prometheus.CounterVec
	eventsReceived     *prometheus.CounterVec
	relays             *prometheus.CounterVec
	dropped            *prometheus.CounterVec
	heapBytes          prometheus.Gauge
	rssBytes           prometheus.Gauge
	memoryWarnings     prometheus.Counter
	sweeps             prometheus.Counter
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		roomsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "rooms_active",
			Help:      "Number of rooms currently held in memory",
		}),
		participantsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "participants_active",
			Help:      "Number of participants across all rooms",
		}),
		connectionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connections_active",
			Help:      "Number of open websocket connections",
		}),
		roomsCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_created_total",
			Help:      "Total number of rooms created",
		}),
		roomsEvicted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rooms_evicted_total",
			Help:      "Total number of empty rooms evicted, by the path that evicted them",
		}, []string{"path"}),
		eventsReceived: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_received_total",
			Help:      "Total number of inbound signaling events",
		}, []string{"event"}),
		relays: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "relays_total",
			Help:      "Total number of offers, answers and candidates relayed",
		}, []string{"kind"}),
		dropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_events_total",
			Help:      "Total number of inbound events ignored, by reason",
		}, []string{"reason"}),
		heapBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "heap_inuse_bytes",
			Help:      "Go heap in use at the last sweep",
		}),
		rssBytes: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "resident_memory_bytes",
			Help:      "Resident set size at the last sweep",
		}),
		memoryWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "memory_warnings_total",
			Help:      "Total number of sweeps that found heap usage over the threshold",
		}),
		sweeps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sweeps_total",
			Help:      "Total number of reconciliation sweeps run",
		}),
	}

	reg.MustRegister(
		m.roomsActive,
		m.participantsActive,
		m.connectionsActive,
		m.roomsCreated,
		m.roomsEvicted,
		m.eventsReceived,
		m.relays,
		m.dropped,
		m.heapBytes,
		m.rssBytes,
		m.memoryWarnings,
		m.sweeps,
	)
	return m
}

func (m *Metrics) RoomCreated() {
	m.roomsCreated.Inc()
	m.roomsActive.Inc()
}

// RoomEvicted records an eviction; path is "leave" or "sweep".
func (m *Metrics) RoomEvicted(path string) {
	m.roomsEvicted.WithLabelValues(path).Inc()
	m.roomsActive.Dec()
}

func (m *Metrics) ParticipantJoined() {
	m.participantsActive.Inc()
}

func (m *Metrics) ParticipantLeft() {
	m.participantsActive.Dec()
}

func (m *Metrics) ConnectionOpened() {
	m.connectionsActive.Inc()
}

func (m *Metrics) ConnectionClosed() {
	m.connectionsActive.Dec()
}

func (m *Metrics) EventReceived(eventType string) {
	m.eventsReceived.WithLabelValues(eventType).Inc()
}

func (m *Metrics) Relayed(kind string) {
	m.relays.WithLabelValues(kind).Inc()
}

func (m *Metrics) Dropped(reason string) {
	m.dropped.WithLabelValues(reason).Inc()
}

func (m *Metrics) SweepCompleted() {
	m.sweeps.Inc()
}

// ObserveMemory stores the latest memory sample.
func (m *Metrics) ObserveMemory(heapInUse, rss uint64) {
	m.heapBytes.Set(float64(heapInUse))
	m.rssBytes.Set(float64(rss))
}

func (m *Metrics) MemoryWarning() {
	m.memoryWarnings.Inc()
}
