package metrics

import (
	"github.com/transita/ptdelta/core/logger"
	coremetrics "github.com/transita/ptdelta/core/metrics"
)

// NewSink assembles the configured sinks, falling back to a NopSink when
// nothing is enabled.
func NewSink(cfg coremetrics.Config, runID, mode string, log logger.Logger) coremetrics.Sink {
	var sinks []coremetrics.Sink
	if cfg.InfluxEnabled {
		sinks = append(sinks, NewInfluxSinkWithFallback(cfg, runID, mode, log))
	}
	switch len(sinks) {
	case 0:
		return coremetrics.NopSink{}
	case 1:
		return sinks[0]
	default:
		return coremetrics.NewMultiSink(sinks...)
	}
}
