package metrics

import (
	"context"
	"net/http"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/transita/ptdelta/core/logger"
	coremetrics "github.com/transita/ptdelta/core/metrics"
	"github.com/transita/ptdelta/core/summary"
)

// InfluxSink writes run reports and per-value summaries to an InfluxDB
// instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	runID    string
	mode     string
	log      logger.Logger
}

// NewInfluxSink creates a sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg coremetrics.Config, runID, mode string, log logger.Logger) *InfluxSink {
	base := strings.TrimSuffix(cfg.InfluxURL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.InfluxToken,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxOrg, cfg.InfluxBucket),
		runID:    runID,
		mode:     mode,
		log:      log,
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg coremetrics.Config, runID, mode string, log logger.Logger) coremetrics.Sink {
	sink := NewInfluxSink(cfg, runID, mode, log)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			log.Errorf("influx health check error: %v", err)
		} else {
			log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordRun writes one point describing the completed run.
func (s *InfluxSink) RecordRun(r coremetrics.RunReport) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("ptdelta_run").
		AddTag("run_id", r.RunID).
		AddTag("mode", r.Mode).
		AddField("sims", r.Sims).
		AddField("values", r.Values).
		AddField("records", r.Records).
		AddField("duration_ms", r.Finished.Sub(r.Started).Milliseconds()).
		SetTime(r.Finished)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordValueSummaries writes one point per perturbation value.
func (s *InfluxSink) RecordValueSummaries(stats []summary.Stats) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	now := time.Now()
	for _, st := range stats {
		p := write.NewPointWithMeasurement("ptdelta_value_summary").
			AddTag("run_id", s.runID).
			AddTag("mode", s.mode).
			AddField("value", st.Value).
			AddField("count", st.Count).
			AddField("mean", st.Mean).
			AddField("median", st.Median).
			AddField("p10", st.P10).
			AddField("p90", st.P90).
			AddField("min", st.Min).
			AddField("max", st.Max).
			SetTime(now)
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}
