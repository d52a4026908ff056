package metrics

import (
	"time"

	"github.com/transita/ptdelta/core/summary"
)

// RunReport captures one completed analysis run.
type RunReport struct {
	RunID    string
	Mode     string
	SimDir   string
	Sims     int
	Values   int
	Records  int
	Started  time.Time
	Finished time.Time
}

// Sink records analysis results for observability purposes.
type Sink interface {
	RecordRun(report RunReport) error
	RecordValueSummaries(stats []summary.Stats) error
}

// NopSink discards everything.
type NopSink struct{}

func (NopSink) RecordRun(RunReport) error                  { return nil }
func (NopSink) RecordValueSummaries([]summary.Stats) error { return nil }

// MultiSink fans out to several sinks, returning the first error.
type MultiSink struct {
	sinks []Sink
}

// NewMultiSink combines the given sinks into one.
func NewMultiSink(sinks ...Sink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordRun(report RunReport) error {
	for _, s := range m.sinks {
		if err := s.RecordRun(report); err != nil {
			return err
		}
	}
	return nil
}

func (m *MultiSink) RecordValueSummaries(stats []summary.Stats) error {
	for _, s := range m.sinks {
		if err := s.RecordValueSummaries(stats); err != nil {
			return err
		}
	}
	return nil
}
