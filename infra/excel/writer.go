package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/transita/ptdelta/core/align"
	"github.com/transita/ptdelta/core/summary"
)

// Writer emits one detail sheet per perturbation value plus a trailing
// summary sheet into a single xlsx workbook. Sheets are created in the
// order they are written; a save failure aborts the whole artifact.
type Writer struct {
	f     *excelize.File
	first bool
}

// NewWriter creates an empty workbook.
func NewWriter() *Writer {
	return &Writer{f: excelize.NewFile(), first: true}
}

func (w *Writer) addSheet(name string) error {
	if w.first {
		w.first = false
		return w.f.SetSheetName("Sheet1", name)
	}
	_, err := w.f.NewSheet(name)
	return err
}

func (w *Writer) writeRow(sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return w.f.SetSheetRow(sheet, cell, &values)
}

// WriteStopSheet writes the stop-delay detail rows for one value. The
// per-stop mean-delta column is present only when the sheet has rows.
func (w *Writer) WriteStopSheet(value int, records []align.Record, stopMeans map[string]float64) error {
	sheet := strconv.Itoa(value)
	if err := w.addSheet(sheet); err != nil {
		return err
	}
	header := []any{"value", "sim", "stop", "occurrence", "delay_baseline_s", "delay_mixed_s", "delay_delta_s"}
	if len(records) > 0 {
		header = append(header, "stop_avg_delta_s")
	}
	if err := w.writeRow(sheet, 1, header); err != nil {
		return err
	}
	for i, r := range records {
		row := []any{r.Value, r.Sim, r.ID, r.Occurrence, r.Baseline, r.Perturbed, r.Delta, stopMeans[r.ID]}
		if err := w.writeRow(sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// WriteTripSheet writes the averaged per-vehicle rows for one value.
func (w *Writer) WriteTripSheet(value int, records []align.Record) error {
	sheet := strconv.Itoa(value)
	if err := w.addSheet(sheet); err != nil {
		return err
	}
	header := []any{"vehicle_id", "baseline_duration_s", "avg_duration_s", "delay_s", "sims_count"}
	if err := w.writeRow(sheet, 1, header); err != nil {
		return err
	}
	for i, r := range records {
		row := []any{r.ID, r.Baseline, r.Perturbed, r.Delta, r.SimsCount}
		if err := w.writeRow(sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary writes the cross-value summary sheet. The metric label names
// the delta columns: "delta" for stop mode, "delay" for trip mode.
func (w *Writer) WriteSummary(stats []summary.Stats, metric string) error {
	const sheet = "summary"
	if err := w.addSheet(sheet); err != nil {
		return err
	}
	header := []any{
		"value", "count",
		fmt.Sprintf("mean_%s_s", metric),
		fmt.Sprintf("median_%s_s", metric),
		fmt.Sprintf("p10_%s_s", metric),
		fmt.Sprintf("p90_%s_s", metric),
		fmt.Sprintf("min_%s_s", metric),
		fmt.Sprintf("max_%s_s", metric),
	}
	if err := w.writeRow(sheet, 1, header); err != nil {
		return err
	}
	for i, s := range stats {
		row := []any{s.Value, s.Count, s.Mean, s.Median, s.P10, s.P90, s.Min, s.Max}
		if err := w.writeRow(sheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

// Save writes the workbook to path, creating the parent directory when
// needed, and closes the underlying file.
func (w *Writer) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := w.f.SaveAs(path); err != nil {
		return fmt.Errorf("write workbook %s: %w", path, err)
	}
	return w.f.Close()
}
