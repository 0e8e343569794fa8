package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records a single grading run. The registry is private to the run so
// that the textfile only ever holds this run's values.
type Metrics struct {
	registry *prometheus.Registry

	StudentsGraded *prometheus.CounterVec
	RowsRead       prometheus.Gauge
	CellsUpdated   prometheus.Gauge
	RunDuration    prometheus.Gauge
	LastSuccess    prometheus.Gauge
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),

		StudentsGraded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "gradebook_students_graded_total",
			Help: "Number of students graded, by status",
		}, []string{"status"}),
		RowsRead: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gradebook_rows_read",
			Help: "Number of rows read from the input range",
		}),
		CellsUpdated: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gradebook_cells_updated",
			Help: "Number of cells updated by the last write",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gradebook_run_duration_seconds",
			Help: "Duration of the grading run",
		}),
		LastSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "gradebook_last_success_timestamp_seconds",
			Help: "Unix time of the last successful grading run",
		}),
	}

	m.registry.MustRegister(m.StudentsGraded, m.RowsRead, m.CellsUpdated, m.RunDuration, m.LastSuccess)

	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveStudent(status string) {
	m.StudentsGraded.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveRead(rows int) {
	m.RowsRead.Set(float64(rows))
}

// ObserveWrite records a completed run. Call with time.Now() at the start of
// the run.
func (m *Metrics) ObserveWrite(start time.Time, cells int64) {
	m.CellsUpdated.Set(float64(cells))
	m.RunDuration.Set(time.Since(start).Seconds())
	m.LastSuccess.SetToCurrentTime()
}

// WriteTextfile writes the metrics in the Prometheus text format for the
// node_exporter textfile collector. The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, m.registry)
}
