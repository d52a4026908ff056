package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/transita/ptdelta/app"
	"github.com/transita/ptdelta/config"
)

var (
	tripsSimDir   string
	tripsSims     int
	tripsOut      string
	tripsBaseline string
	tripsExport   string
)

var tripsCmd = &cobra.Command{
	Use:   "trips",
	Short: "Per-vehicle trip-duration delay report",
	Long: `Builds an Excel workbook with one sheet per perturbation value showing
per-vehicle trip durations averaged across replicates against a single
baseline tripinfo file, plus a cross-value summary sheet. Values are
discovered from the replicate file names.`,
	RunE: runTrips,
}

func init() {
	tripsCmd.Flags().StringVar(&tripsSimDir, "simdir", filepath.Join("outputs", "sim"), "directory with *_sim_output.xml replicate files")
	tripsCmd.Flags().IntVar(&tripsSims, "sims", 10, "number of simulations per value")
	tripsCmd.Flags().StringVar(&tripsOut, "out", filepath.Join("outputs", "analysis", "pt_delay_tripinfo.xlsx"), "output xlsx path")
	tripsCmd.Flags().StringVar(&tripsBaseline, "baseline", filepath.Join("old_method", "tripinfo.xml"), "baseline PT-only tripinfo.xml")
	tripsCmd.Flags().StringVar(&tripsExport, "summary-export", "", "also write the summary as .csv or .json")
	rootCmd.AddCommand(tripsCmd)
}

func runTrips(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	mergeReportFlags(cmd, cfg, tripsSimDir, tripsSims, tripsOut, tripsExport)
	if cmd.Flags().Changed("baseline") {
		cfg.Report.Baseline = tripsBaseline
	}
	if err := requireReportInputs(cfg); err != nil {
		return err
	}

	svc, err := app.New(cfg, "trips")
	if err != nil {
		return err
	}
	return svc.RunTrips(ctx)
}
