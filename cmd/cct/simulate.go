package main

import (
	"time"

	"github.com/Harshitk-cp/consensus/internal/config"
	"github.com/Harshitk-cp/consensus/internal/service"
	"github.com/Harshitk-cp/consensus/internal/store"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newSimulateCmd(c *cli) *cobra.Command {
	var (
		informants int
		items      int
		seed       uint64
		out        string
	)

	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Write a synthetic response CSV drawn from the consensus model",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if seed == 0 {
				seed = uint64(time.Now().UnixNano())
			}
			sim, err := service.NewCCTModel().Simulate(informants, items, seed)
			if err != nil {
				return err
			}

			s := store.NewResponseStore(config.IDColumn())
			if out == "" || out == "-" {
				if err := s.Write(cmd.OutOrStdout(), sim.Data); err != nil {
					return err
				}
			} else if err := s.Save(cmd.Context(), out, sim.Data); err != nil {
				return err
			}

			c.logger.Info("simulated responses",
				zap.Int("informants", informants),
				zap.Int("items", items),
				zap.Uint64("seed", seed),
				zap.Float64s("competence", sim.Competence),
				zap.Ints("consensus", sim.Consensus),
				zap.String("out", out))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&informants, "informants", 10, "number of informants (rows)")
	flags.IntVar(&items, "items", 20, "number of items (columns)")
	flags.Uint64Var(&seed, "seed", 0, "random seed; 0 derives one from the clock")
	flags.StringVarP(&out, "out", "o", "", "output path (default stdout)")

	return cmd
}
