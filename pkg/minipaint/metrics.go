package minipaint

import (
	"expvar"
	"sync/atomic"
	"time"
)

// Metrics counts what a Painter does. Counters are exposed through
// expvar after RegisterExpvar; importing expvar's HTTP handler then
// serves them at /debug/vars.
//
// Thread-safe for concurrent use.
type Metrics struct {
	starts        atomic.Int64
	stops         atomic.Int64
	gestures      atomic.Int64
	commits       atomic.Int64
	undos         atomic.Int64
	redos         atomic.Int64
	clears        atomic.Int64
	saves         atomic.Int64
	saveErrors    atomic.Int64
	configReloads atomic.Int64
	frames        atomic.Int64
	scriptRuns    atomic.Int64
	scriptErrors  atomic.Int64
	errorsTotal   atomic.Int64
	eventsEmitted atomic.Int64

	scriptLatencyNs    atomic.Int64
	scriptLatencyCount atomic.Int64

	running atomic.Int32

	registered atomic.Bool
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	return &Metrics{}
}

// RegisterExpvar publishes the counters with expvar under minipaint_*
// names. expvar names are process-global, so only the first call in a
// process registers; later calls are no-ops.
func (m *Metrics) RegisterExpvar() {
	if m.registered.Swap(true) || !globalRegistered.CompareAndSwap(false, true) {
		return
	}

	counters := map[string]*atomic.Int64{
		"minipaint_starts_total":         &m.starts,
		"minipaint_stops_total":          &m.stops,
		"minipaint_gestures_total":       &m.gestures,
		"minipaint_commits_total":        &m.commits,
		"minipaint_undos_total":          &m.undos,
		"minipaint_redos_total":          &m.redos,
		"minipaint_clears_total":         &m.clears,
		"minipaint_saves_total":          &m.saves,
		"minipaint_save_errors_total":    &m.saveErrors,
		"minipaint_config_reloads_total": &m.configReloads,
		"minipaint_frames_total":         &m.frames,
		"minipaint_script_runs_total":    &m.scriptRuns,
		"minipaint_script_errors_total":  &m.scriptErrors,
		"minipaint_errors_total":         &m.errorsTotal,
		"minipaint_events_emitted_total": &m.eventsEmitted,
	}
	for name, c := range counters {
		c := c
		expvar.Publish(name, expvar.Func(func() any { return c.Load() }))
	}

	expvar.Publish("minipaint_running", expvar.Func(func() any { return m.running.Load() }))
	expvar.Publish("minipaint_script_latency_avg_ms", expvar.Func(func() any {
		return float64(m.Snapshot().ScriptLatencyAvg) / float64(time.Millisecond)
	}))
}

var globalRegistered atomic.Bool

// Snapshot returns a point-in-time copy of all metrics.
func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Starts:           m.starts.Load(),
		Stops:            m.stops.Load(),
		Gestures:         m.gestures.Load(),
		Commits:          m.commits.Load(),
		Undos:            m.undos.Load(),
		Redos:            m.redos.Load(),
		Clears:           m.clears.Load(),
		Saves:            m.saves.Load(),
		SaveErrors:       m.saveErrors.Load(),
		ConfigReloads:    m.configReloads.Load(),
		Frames:           m.frames.Load(),
		ScriptRuns:       m.scriptRuns.Load(),
		ScriptErrors:     m.scriptErrors.Load(),
		ErrorsTotal:      m.errorsTotal.Load(),
		EventsEmitted:    m.eventsEmitted.Load(),
		Running:          m.running.Load() > 0,
		ScriptLatencyAvg: safeDivide(m.scriptLatencyNs.Load(), m.scriptLatencyCount.Load()),
	}
}

// MetricsSnapshot is a point-in-time copy of all metrics.
type MetricsSnapshot struct {
	Starts        int64
	Stops         int64
	Gestures      int64
	Commits       int64
	Undos         int64
	Redos         int64
	Clears        int64
	Saves         int64
	SaveErrors    int64
	ConfigReloads int64
	Frames        int64
	ScriptRuns    int64
	ScriptErrors  int64
	ErrorsTotal   int64
	EventsEmitted int64

	Running bool

	ScriptLatencyAvg time.Duration
}

// IncrementStarts records a Run.
func (m *Metrics) IncrementStarts() { m.starts.Add(1) }

// IncrementStops records a completed Stop.
func (m *Metrics) IncrementStops() { m.stops.Add(1) }

// IncrementGestures records a pointer-down that started a gesture.
func (m *Metrics) IncrementGestures() { m.gestures.Add(1) }

// IncrementCommits records a history commit from a finished gesture.
func (m *Metrics) IncrementCommits() { m.commits.Add(1) }

// IncrementUndos records a successful undo.
func (m *Metrics) IncrementUndos() { m.undos.Add(1) }

// IncrementRedos records a successful redo.
func (m *Metrics) IncrementRedos() { m.redos.Add(1) }

// IncrementClears records a canvas clear.
func (m *Metrics) IncrementClears() { m.clears.Add(1) }

// IncrementSaves records a written file.
func (m *Metrics) IncrementSaves() { m.saves.Add(1) }

// IncrementSaveErrors records a failed save.
func (m *Metrics) IncrementSaveErrors() { m.saveErrors.Add(1) }

// IncrementConfigReloads records a configuration reload.
func (m *Metrics) IncrementConfigReloads() { m.configReloads.Add(1) }

// IncrementFrames records one frame update.
func (m *Metrics) IncrementFrames() { m.frames.Add(1) }

// IncrementErrors records an error reported to the error handler.
func (m *Metrics) IncrementErrors() { m.errorsTotal.Add(1) }

// IncrementEventsEmitted records an event emission.
func (m *Metrics) IncrementEventsEmitted() { m.eventsEmitted.Add(1) }

// RecordScript records one script run, its duration and whether it failed.
func (m *Metrics) RecordScript(d time.Duration, failed bool) {
	m.scriptRuns.Add(1)
	if failed {
		m.scriptErrors.Add(1)
	}
	m.scriptLatencyNs.Add(d.Nanoseconds())
	m.scriptLatencyCount.Add(1)
}

// SetRunning sets the running gauge.
func (m *Metrics) SetRunning(running bool) {
	if running {
		m.running.Store(1)
	} else {
		m.running.Store(0)
	}
}

// Reset zeroes all counters and gauges. Registration is kept.
func (m *Metrics) Reset() {
	for _, c := range []*atomic.Int64{
		&m.starts, &m.stops, &m.gestures, &m.commits, &m.undos, &m.redos,
		&m.clears, &m.saves, &m.saveErrors, &m.configReloads, &m.frames,
		&m.scriptRuns, &m.scriptErrors, &m.errorsTotal, &m.eventsEmitted,
		&m.scriptLatencyNs, &m.scriptLatencyCount,
	} {
		c.Store(0)
	}
	m.running.Store(0)
}

func safeDivide(total, count int64) time.Duration {
	if count == 0 {
		return 0
	}
	return time.Duration(total / count)
}
