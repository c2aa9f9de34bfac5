package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Harshitk-cp/consensus/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	// initJitter spreads chain starting points around the prior mean.
	initJitter          = 0.05
	cancelCheckEvery    = 64
	progressLogInterval = 2 * time.Second
)

// GibbsSampler draws from the CCT posterior by alternating exact draws from
// the full conditionals of Z and D. Chains run concurrently.
type GibbsSampler struct {
	model  *CCTModel
	logger *zap.Logger
}

func NewGibbsSampler(model *CCTModel, logger *zap.Logger) *GibbsSampler {
	if model == nil {
		model = NewCCTModel()
	}
	return &GibbsSampler{model: model, logger: logger}
}

func (s *GibbsSampler) Sample(ctx context.Context, data *domain.ResponseMatrix, opts domain.SampleOpts) (*domain.Trace, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	if data == nil {
		return nil, domain.ErrEmptyData
	}
	n, m := data.Dims()
	if n == 0 || m == 0 {
		return nil, fmt.Errorf("%w: %d informants x %d items", domain.ErrEmptyData, n, m)
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	s.logger.Info("sampling posterior",
		zap.Int("informants", n),
		zap.Int("items", m),
		zap.Int("chains", opts.Chains),
		zap.Int("draws", opts.Draws),
		zap.Int("tune", opts.Tune),
		zap.Uint64("seed", seed))

	trace := &domain.Trace{
		D:    make([][][]float64, opts.Chains),
		Z:    make([][][]int, opts.Chains),
		Seed: seed,
		Tune: opts.Tune,
	}

	start := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	for c := 0; c < opts.Chains; c++ {
		g.Go(func() error {
			d, z, err := s.runChain(gctx, data, opts, c, seed+uint64(c))
			if err != nil {
				return err
			}
			// Each goroutine writes only its own chain slot.
			trace.D[c] = d
			trace.Z[c] = z
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	trace.Duration = time.Since(start)

	s.logger.Info("sampling finished", zap.Duration("duration", trace.Duration))
	return trace, nil
}

func (s *GibbsSampler) runChain(ctx context.Context, data *domain.ResponseMatrix, opts domain.SampleOpts, chain int, seed uint64) ([][]float64, [][]int, error) {
	n, m := data.Dims()
	src := rand.NewSource(seed)
	rng := rand.New(src)

	d := make([]float64, n)
	mean := s.model.PriorMeanCompetence()
	for i := range d {
		d[i] = clampProbability(mean + initJitter*(2*rng.Float64()-1))
	}
	z := make([]int, m)

	draws := make([][]float64, 0, opts.Draws)
	zDraws := make([][]int, 0, opts.Draws)
	progress := rate.Sometimes{Interval: progressLogInterval}
	total := opts.Tune + opts.Draws

	for it := 0; it < total; it++ {
		if it%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, nil, err
			}
		}

		for j := 0; j < m; j++ {
			if rng.Float64() < s.model.ConsensusConditional(data, d, j) {
				z[j] = 1
			} else {
				z[j] = 0
			}
		}
		for i := 0; i < n; i++ {
			a, b := s.model.CompetenceConditional(data, z, i)
			conditional := distuv.Beta{Alpha: a, Beta: b, Src: src}
			d[i] = clampProbability(conditional.Rand())
		}

		progress.Do(func() {
			phase := "tune"
			if it >= opts.Tune {
				phase = "draw"
			}
			s.logger.Debug("chain progress",
				zap.Int("chain", chain),
				zap.String("phase", phase),
				zap.Int("iteration", it),
				zap.Int("total", total))
		})

		if it >= opts.Tune {
			draws = append(draws, append([]float64(nil), d...))
			zDraws = append(zDraws, append([]int(nil), z...))
		}
	}

	return draws, zDraws, nil
}
