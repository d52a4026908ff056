package app

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/transita/ptdelta/config"
)

func write(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func stopsFixture(t *testing.T) string {
	dir := t.TempDir()
	write(t, dir, "stop_events_baseline_1.xml", `<stops>
  <stopinfo busStop="A" delay="10.0"/>
  <stopinfo busStop="A" delay="20.0"/>
  <stopinfo busStop="B" delay="5.0"/>
</stops>`)
	write(t, dir, "stop_events_baseline_2.xml", `<stops>
  <stopinfo busStop="A" delay="30.0"/>
</stops>`)
	write(t, dir, "stop_events_1000_1.xml", `<stops>
  <stopinfo busStop="A" delay="21.0"/>
  <stopinfo busStop="A" delay="12.0"/>
  <stopinfo busStop="B" delay="6.0"/>
  <stopinfo busStop="C" delay="99.0"/>
</stops>`)
	return dir
}

func TestRunStops(t *testing.T) {
	dir := stopsFixture(t)
	out := filepath.Join(t.TempDir(), "pt_delay.xlsx")
	summaryCSV := filepath.Join(t.TempDir(), "summary.csv")

	cfg := config.Default()
	cfg.Report.SimDir = dir
	cfg.Report.Sims = 2
	cfg.Report.Out = out
	cfg.Report.SummaryExport = summaryCSV
	cfg.Report.Values = []config.ValueRange{{From: 1000, To: 2000, Step: 1000}}

	svc, err := New(cfg, "stops")
	require.NoError(t, err)
	require.NoError(t, svc.RunStops(context.Background()))

	f, err := excelize.OpenFile(out)
	require.NoError(t, err)
	defer func() { assert.NoError(t, f.Close()) }()
	assert.Equal(t, []string{"1000", "2000", "summary"}, f.GetSheetList())

	rows, err := f.GetRows("1000")
	require.NoError(t, err)
	// sim 1 contributes A x2 and B; sim 2's replicate file is missing and
	// the one-sided stop C is excluded
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"1000", "1", "A", "1", "10", "12", "2", "1.5"}, rows[1])
	assert.Equal(t, []string{"1000", "1", "A", "2", "20", "21", "1", "1.5"}, rows[2])
	assert.Equal(t, "B", rows[3][2])

	// empty value still has a sheet and a zeroed summary row
	rows, err = f.GetRows("2000")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	rows, err = f.GetRows("summary")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "1000", rows[1][0])
	assert.Equal(t, "3", rows[1][1])
	mean, err := strconv.ParseFloat(rows[1][2], 64)
	require.NoError(t, err)
	assert.InDelta(t, 4.0/3.0, mean, 1e-9)
	assert.Equal(t, []string{"2000", "0", "0", "0", "0", "0", "0", "0"}, rows[2])

	data, err := os.ReadFile(summaryCSV)
	require.NoError(t, err)
	assert.Contains(t, string(data), "mean_delta_s")
	assert.Contains(t, string(data), "2000,0,0,0,0,0,0,0")
}

func TestRunStopsFatalWithoutBaselines(t *testing.T) {
	cfg := config.Default()
	cfg.Report.SimDir = t.TempDir()
	cfg.Report.Sims = 2
	cfg.Report.Out = filepath.Join(t.TempDir(), "out.xlsx")

	svc, err := New(cfg, "stops")
	require.NoError(t, err)
	err = svc.RunStops(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no usable baseline")
	assert.NoFileExists(t, cfg.Report.Out)
}

func TestRunTrips(t *testing.T) {
	dir := t.TempDir()
	baseline := filepath.Join(dir, "tripinfo.xml")
	require.NoError(t, os.WriteFile(baseline, []byte(`<tripinfos>
  <tripinfo id="bus_1" vType="bus" duration="100.0"/>
  <tripinfo id="bus_2" vType="bus" duration="50.0"/>
</tripinfos>`), 0o644))

	simdir := t.TempDir()
	write(t, simdir, "4_7000_1_run_sim_output.xml", `<tripinfos>
  <tripinfo id="bus_1" vType="bus" duration="110.0"/>
</tripinfos>`)
	write(t, simdir, "4_7000_2_run_sim_output.xml", `<tripinfos>
  <tripinfo id="bus_1" vType="bus" duration="130.0"/>
</tripinfos>`)

	cfg := config.Default()
	cfg.Report.SimDir = simdir
	cfg.Report.Sims = 2
	cfg.Report.Baseline = baseline
	cfg.Report.Out = filepath.Join(t.TempDir(), "trips.xlsx")

	svc, err := New(cfg, "trips")
	require.NoError(t, err)
	require.NoError(t, svc.RunTrips(context.Background()))

	f, err := excelize.OpenFile(cfg.Report.Out)
	require.NoError(t, err)
	defer func() { assert.NoError(t, f.Close()) }()
	assert.Equal(t, []string{"7000", "summary"}, f.GetSheetList())

	rows, err := f.GetRows("7000")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"bus_1", "100", "120", "20", "2"}, rows[1])

	rows, err = f.GetRows("summary")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "7000", rows[1][0])
	assert.Equal(t, "1", rows[1][1])
}

func TestRunTripsFatalWithoutBaseline(t *testing.T) {
	cfg := config.Default()
	cfg.Report.SimDir = t.TempDir()
	cfg.Report.Baseline = filepath.Join(t.TempDir(), "absent.xml")
	cfg.Report.Out = filepath.Join(t.TempDir(), "out.xlsx")

	svc, err := New(cfg, "trips")
	require.NoError(t, err)
	err = svc.RunTrips(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no baseline PT durations")
}
