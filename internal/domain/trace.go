package domain

import (
	"fmt"
	"time"
)

const (
	DefaultDraws  = 2000
	DefaultChains = 4
	DefaultTune   = 1000
)

// SampleOpts controls a sampler run. Tune iterations are discarded.
type SampleOpts struct {
	Draws  int
	Chains int
	Tune   int
	Seed   uint64
}

func DefaultSampleOpts() SampleOpts {
	return SampleOpts{
		Draws:  DefaultDraws,
		Chains: DefaultChains,
		Tune:   DefaultTune,
	}
}

func (o SampleOpts) Validate() error {
	if o.Draws <= 0 {
		return fmt.Errorf("%w: draws must be positive, got %d", ErrInvalidOptions, o.Draws)
	}
	if o.Chains <= 0 {
		return fmt.Errorf("%w: chains must be positive, got %d", ErrInvalidOptions, o.Chains)
	}
	if o.Tune < 0 {
		return fmt.Errorf("%w: tune must not be negative, got %d", ErrInvalidOptions, o.Tune)
	}
	return nil
}

// Trace holds retained posterior draws.
// D is indexed [chain][draw][informant], Z is indexed [chain][draw][item].
type Trace struct {
	D [][][]float64
	Z [][][]int

	Seed     uint64
	Tune     int
	Duration time.Duration
}

// Dims returns chains, draws per chain, informants and items.
func (t *Trace) Dims() (chains, draws, n, m int) {
	chains = len(t.D)
	if chains == 0 || len(t.D[0]) == 0 {
		return chains, 0, 0, 0
	}
	draws = len(t.D[0])
	n = len(t.D[0][0])
	if len(t.Z) > 0 && len(t.Z[0]) > 0 {
		m = len(t.Z[0][0])
	}
	return chains, draws, n, m
}

// CompetenceChains returns every chain's draws of D[i].
func (t *Trace) CompetenceChains(i int) [][]float64 {
	out := make([][]float64, len(t.D))
	for c, chain := range t.D {
		out[c] = make([]float64, len(chain))
		for d, draw := range chain {
			out[c][d] = draw[i]
		}
	}
	return out
}

// ConsensusChains returns every chain's draws of Z[j] as floats.
func (t *Trace) ConsensusChains(j int) [][]float64 {
	out := make([][]float64, len(t.Z))
	for c, chain := range t.Z {
		out[c] = make([]float64, len(chain))
		for d, draw := range chain {
			out[c][d] = float64(draw[j])
		}
	}
	return out
}

// Pooled concatenates per-chain draws.
func Pooled(chains [][]float64) []float64 {
	total := 0
	for _, c := range chains {
		total += len(c)
	}
	out := make([]float64, 0, total)
	for _, c := range chains {
		out = append(out, c...)
	}
	return out
}
