package main

import (
	"fmt"

	"github.com/Harshitk-cp/consensus/internal/config"
	"github.com/Harshitk-cp/consensus/internal/domain"
	"github.com/Harshitk-cp/consensus/internal/report"
	"github.com/Harshitk-cp/consensus/internal/service"
	"github.com/Harshitk-cp/consensus/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type fitFlags struct {
	dataPath string
	idColumn string
	draws    int
	chains   int
	tune     int
	seed     uint64
	hdiProb  float64
	plotDir  string
	noPlots  bool
	format   string
}

func newFitCmd(c *cli) *cobra.Command {
	f := &fitFlags{}

	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit the consensus model to a response CSV and report the posterior",
		Long: `Loads a CSV of binary responses (one identifier column, one column per item),
samples the Cultural Consensus Theory posterior, prints a summary of informant
competence (D) and consensus answers (Z), renders posterior plots and compares
the consensus with a simple majority vote.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFit(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.dataPath, "data", config.DataPath(), "path to the response CSV")
	flags.StringVar(&f.idColumn, "id-column", config.IDColumn(), "name of the informant identifier column")
	flags.IntVar(&f.draws, "draws", config.Draws(), "retained draws per chain")
	flags.IntVar(&f.chains, "chains", config.Chains(), "number of independent chains")
	flags.IntVar(&f.tune, "tune", config.Tune(), "warm-up iterations per chain (discarded)")
	flags.Uint64Var(&f.seed, "seed", config.Seed(), "random seed; 0 derives one from the clock")
	flags.Float64Var(&f.hdiProb, "hdi-prob", config.HDIProb(), "probability mass of the reported credible intervals")
	flags.StringVar(&f.plotDir, "plot-dir", config.PlotDir(), "directory for posterior plots")
	flags.BoolVar(&f.noPlots, "no-plots", false, "skip rendering posterior plots")
	flags.StringVar(&f.format, "format", config.OutputFormat(), "output format: text, json, yaml")

	return cmd
}

func (c *cli) runFit(cmd *cobra.Command, f *fitFlags) error {
	if !report.ValidFormat(f.format) {
		return fmt.Errorf("unknown output format %q", f.format)
	}

	var plots domain.PlotRenderer
	if !f.noPlots {
		plots = report.NewPlotRenderer(f.plotDir)
	}

	analysis := service.NewAnalysisService(
		store.NewResponseStore(f.idColumn),
		service.NewGibbsSampler(service.NewCCTModel(), c.logger),
		plots,
		c.logger,
	)

	opts := service.AnalysisOpts{
		Sample: domain.SampleOpts{
			Draws:  f.draws,
			Chains: f.chains,
			Tune:   f.tune,
			Seed:   f.seed,
		},
		HDIProb: f.hdiProb,
	}

	rep, _, err := analysis.Run(cmd.Context(), f.dataPath, opts)
	if err != nil {
		c.logger.Error("analysis failed", zap.Error(err))
		return err
	}

	return report.Write(cmd.OutOrStdout(), rep, report.Format(f.format))
}
