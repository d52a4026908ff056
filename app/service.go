package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/transita/ptdelta/config"
	"github.com/transita/ptdelta/core/align"
	"github.com/transita/ptdelta/core/corpus"
	"github.com/transita/ptdelta/core/logger"
	"github.com/transita/ptdelta/core/measure"
	coremetrics "github.com/transita/ptdelta/core/metrics"
	"github.com/transita/ptdelta/core/summary"
	"github.com/transita/ptdelta/infra/excel"
	infralogger "github.com/transita/ptdelta/infra/logger"
	inframetrics "github.com/transita/ptdelta/infra/metrics"
	"github.com/transita/ptdelta/infra/sumo"
	"github.com/transita/ptdelta/pkg/export"
)

// Service runs one report pass: index the corpus, align replicates against
// baselines, summarize, and emit the workbook.
type Service struct {
	cfg   *config.Config
	log   logger.Logger
	sink  coremetrics.Sink
	runID string
}

// New creates a Service from the configuration. Mode is the analysis kind
// ("stops" or "trips") and tags all logs and metrics of the run.
func New(cfg *config.Config, mode string) (*Service, error) {
	if err := infralogger.SetGlobalLevel(cfg.Logging.Level); err != nil {
		return nil, fmt.Errorf("logging level: %w", err)
	}
	runID := uuid.NewString()
	logg := infralogger.New(mode)
	sink := inframetrics.NewSink(cfg.Metrics, runID, mode, logg)
	return &Service{cfg: cfg, log: logg, sink: sink, runID: runID}, nil
}

// RunStops builds the stop-delay report: per-sim baselines with naming
// fallback, the fixed perturbation value enumeration, and one sheet per
// value. Fatal only when no sim has a usable baseline.
func (s *Service) RunStops(ctx context.Context) error {
	started := time.Now()
	rep := s.cfg.Report
	s.log.Infof("run %s: stop-delay report over %s (%d sims)", s.runID, rep.SimDir, rep.Sims)

	baselines := corpus.LoadBaselines(rep.SimDir, rep.Sims, func(path string) measure.Extraction {
		return sumo.StopDelays(path, s.log)
	}, s.log)
	if len(baselines) == 0 {
		return fmt.Errorf("no usable baseline stop delays under %s", rep.SimDir)
	}

	index, err := corpus.Scan(rep.SimDir, corpus.StopEventsPattern, s.log)
	if err != nil {
		return err
	}

	values := rep.ValueSet()
	w := excel.NewWriter()
	stats := make([]summary.Stats, 0, len(values))
	records := 0
	for _, value := range values {
		if err := ctx.Err(); err != nil {
			return err
		}
		var rows []align.Record
		for sim := 1; sim <= rep.Sims; sim++ {
			base, ok := baselines[sim]
			if !ok {
				continue
			}
			path := index.Path(value, sim)
			if path == "" {
				s.log.Warnf("missing replicate file for value=%d sim=%d", value, sim)
				continue
			}
			ext := sumo.StopDelays(path, s.log)
			rows = append(rows, align.Pair(value, sim, base, ext.Set)...)
		}
		if err := w.WriteStopSheet(value, rows, summary.IdentityMeans(rows)); err != nil {
			return err
		}
		stats = append(stats, summary.Describe(value, rows))
		records += len(rows)
	}

	if err := s.finish(w, stats, "delta"); err != nil {
		return err
	}
	s.recordMetrics("stops", started, len(values), records, stats)
	return nil
}

// RunTrips builds the vehicle-duration report: one shared baseline tripinfo
// file, values discovered from the corpus, durations averaged across
// replicates per vehicle. Fatal when the baseline yields no PT durations.
func (s *Service) RunTrips(ctx context.Context) error {
	started := time.Now()
	rep := s.cfg.Report
	s.log.Infof("run %s: trip-duration report over %s", s.runID, rep.SimDir)

	baseline := sumo.TripDurations(rep.Baseline, s.log)
	if baseline.Set.Len() == 0 {
		return fmt.Errorf("no baseline PT durations parsed from %s", rep.Baseline)
	}

	index, err := corpus.Scan(rep.SimDir, corpus.TripOutputsPattern, s.log)
	if err != nil {
		return err
	}

	values := index.Values()
	w := excel.NewWriter()
	stats := make([]summary.Stats, 0, len(values))
	records := 0
	for _, value := range values {
		if err := ctx.Err(); err != nil {
			return err
		}
		var sets []measure.Set
		for _, sim := range index.Sims(value) {
			ext := sumo.TripDurations(index.Path(value, sim), s.log)
			sets = append(sets, ext.Set)
		}
		rows := align.PairAveraged(value, baseline.Set, sets)
		if err := w.WriteTripSheet(value, rows); err != nil {
			return err
		}
		stats = append(stats, summary.Describe(value, rows))
		records += len(rows)
	}

	if err := s.finish(w, stats, "delay"); err != nil {
		return err
	}
	s.recordMetrics("trips", started, len(values), records, stats)
	return nil
}

// finish writes the summary sheet sorted by ascending value, saves the
// workbook and mirrors the summary to the optional export file.
func (s *Service) finish(w *excel.Writer, stats []summary.Stats, metric string) error {
	ordered := append([]summary.Stats(nil), stats...)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].Value < ordered[j].Value })
	if err := w.WriteSummary(ordered, metric); err != nil {
		return err
	}
	if err := w.Save(s.cfg.Report.Out); err != nil {
		return err
	}
	if err := s.exportSummary(ordered, metric); err != nil {
		return err
	}
	s.log.Infof("excel written: %s", s.cfg.Report.Out)
	return nil
}

func (s *Service) exportSummary(stats []summary.Stats, metric string) error {
	path := s.cfg.Report.SummaryExport
	if path == "" {
		return nil
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create summary export: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			s.log.Errorf("close summary export: %v", cerr)
		}
	}()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		err = export.WriteJSON(f, stats)
	default:
		err = export.WriteCSV(f, stats, metric)
	}
	if err != nil {
		return fmt.Errorf("summary export: %w", err)
	}
	s.log.Infof("summary exported: %s", path)
	return nil
}

// recordMetrics pushes run observability data. The artifact is already
// saved at this point, so sink failures are logged, never fatal.
func (s *Service) recordMetrics(mode string, started time.Time, values, records int, stats []summary.Stats) {
	if err := s.sink.RecordValueSummaries(stats); err != nil {
		s.log.Errorf("record value summaries: %v", err)
	}
	report := coremetrics.RunReport{
		RunID:    s.runID,
		Mode:     mode,
		SimDir:   s.cfg.Report.SimDir,
		Sims:     s.cfg.Report.Sims,
		Values:   values,
		Records:  records,
		Started:  started,
		Finished: time.Now(),
	}
	if err := s.sink.RecordRun(report); err != nil {
		s.log.Errorf("record run: %v", err)
	}
}
