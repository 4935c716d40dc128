package minipaint

import (
	"expvar"
	"testing"
	"time"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.IncrementStarts()
	m.IncrementGestures()
	m.IncrementGestures()
	m.IncrementCommits()
	m.IncrementUndos()
	m.IncrementRedos()
	m.IncrementClears()
	m.IncrementSaves()
	m.IncrementSaveErrors()
	m.IncrementConfigReloads()
	m.IncrementFrames()
	m.IncrementErrors()
	m.IncrementEventsEmitted()
	m.IncrementStops()
	m.SetRunning(true)

	s := m.Snapshot()
	if s.Starts != 1 || s.Stops != 1 || s.Gestures != 2 || s.Commits != 1 {
		t.Errorf("lifecycle counters = %+v", s)
	}
	if s.Undos != 1 || s.Redos != 1 || s.Clears != 1 || s.Saves != 1 || s.SaveErrors != 1 {
		t.Errorf("command counters = %+v", s)
	}
	if s.ConfigReloads != 1 || s.Frames != 1 || s.ErrorsTotal != 1 || s.EventsEmitted != 1 {
		t.Errorf("other counters = %+v", s)
	}
	if !s.Running {
		t.Error("Running should be true")
	}

	m.Reset()
	if s := m.Snapshot(); s != (MetricsSnapshot{}) {
		t.Errorf("after Reset() snapshot = %+v, want zero", s)
	}
}

func TestMetricsScriptLatency(t *testing.T) {
	m := NewMetrics()
	if got := m.Snapshot().ScriptLatencyAvg; got != 0 {
		t.Errorf("empty average = %v, want 0", got)
	}

	m.RecordScript(10*time.Millisecond, false)
	m.RecordScript(30*time.Millisecond, true)

	s := m.Snapshot()
	if s.ScriptRuns != 2 || s.ScriptErrors != 1 {
		t.Errorf("runs = %d errors = %d, want 2 and 1", s.ScriptRuns, s.ScriptErrors)
	}
	if s.ScriptLatencyAvg != 20*time.Millisecond {
		t.Errorf("average = %v, want 20ms", s.ScriptLatencyAvg)
	}
}

func TestMetricsRegisterExpvar(t *testing.T) {
	m := NewMetrics()
	m.RegisterExpvar()
	m.RegisterExpvar() // must not panic on duplicate names

	m.IncrementCommits()
	v := expvar.Get("minipaint_commits_total")
	if v == nil {
		t.Fatal("minipaint_commits_total not published")
	}
	if v.String() != "1" {
		t.Errorf("published value = %s, want 1", v.String())
	}

	// A second collector cannot take over the process-wide names.
	NewMetrics().RegisterExpvar()
}
