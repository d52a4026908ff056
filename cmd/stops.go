package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/transita/ptdelta/app"
	"github.com/transita/ptdelta/config"
)

var (
	stopsSimDir string
	stopsSims   int
	stopsOut    string
	stopsExport string
)

var stopsCmd = &cobra.Command{
	Use:   "stops",
	Short: "Per-stop schedule-delay delta report",
	Long: `Builds an Excel workbook with one sheet per perturbation value showing
schedule-delay deltas per stop occurrence against per-sim baselines, plus a
cross-value summary sheet.`,
	RunE: runStops,
}

func init() {
	stopsCmd.Flags().StringVar(&stopsSimDir, "simdir", "", "directory with stop_events_*.xml replicate files")
	stopsCmd.Flags().IntVar(&stopsSims, "sims", 0, "number of simulations per value")
	stopsCmd.Flags().StringVar(&stopsOut, "out", "", "output xlsx path")
	stopsCmd.Flags().StringVar(&stopsExport, "summary-export", "", "also write the summary as .csv or .json")
	rootCmd.AddCommand(stopsCmd)
}

func runStops(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	mergeReportFlags(cmd, cfg, stopsSimDir, stopsSims, stopsOut, stopsExport)
	if err := requireReportInputs(cfg); err != nil {
		return err
	}

	svc, err := app.New(cfg, "stops")
	if err != nil {
		return err
	}
	return svc.RunStops(ctx)
}

// mergeReportFlags lets explicit flags override the config file while a
// config value survives an unset flag.
func mergeReportFlags(cmd *cobra.Command, cfg *config.Config, simdir string, sims int, out, export string) {
	if cmd.Flags().Changed("simdir") || cfg.Report.SimDir == "" {
		cfg.Report.SimDir = simdir
	}
	if cmd.Flags().Changed("sims") || cfg.Report.Sims == 0 {
		cfg.Report.Sims = sims
	}
	if cmd.Flags().Changed("out") || cfg.Report.Out == "" {
		cfg.Report.Out = out
	}
	if cmd.Flags().Changed("summary-export") {
		cfg.Report.SummaryExport = export
	}
}

func requireReportInputs(cfg *config.Config) error {
	if cfg.Report.SimDir == "" {
		return fmt.Errorf("--simdir is required")
	}
	if cfg.Report.Sims < 1 {
		return fmt.Errorf("--sims must be at least 1")
	}
	if cfg.Report.Out == "" {
		return fmt.Errorf("--out is required")
	}
	return nil
}
