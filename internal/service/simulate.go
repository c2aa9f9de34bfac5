package service

import (
	"fmt"

	"github.com/Harshitk-cp/consensus/internal/domain"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Simulation is a response matrix drawn from the model together with the
// latent values that generated it.
type Simulation struct {
	Data       *domain.ResponseMatrix
	Competence []float64
	Consensus  []int
}

// Simulate draws D and Z from the priors and answers from the likelihood.
func (m *CCTModel) Simulate(n, items int, seed uint64) (*Simulation, error) {
	if n <= 0 || items <= 0 {
		return nil, fmt.Errorf("%w: %d informants x %d items", domain.ErrEmptyData, n, items)
	}

	src := rand.NewSource(seed)
	rng := rand.New(src)
	prior := distuv.Beta{Alpha: m.CompetenceAlpha, Beta: m.CompetenceBeta, Src: src}

	d := make([]float64, n)
	for i := range d {
		d[i] = prior.Rand()
	}
	z := make([]int, items)
	for j := range z {
		if rng.Float64() < m.ConsensusPrior {
			z[j] = 1
		}
	}

	informants := make([]string, n)
	rows := make([][]float64, n)
	for i := range rows {
		informants[i] = fmt.Sprintf("P%d", i+1)
		rows[i] = make([]float64, items)
		for j := range rows[i] {
			if rng.Float64() < ResponseProbability(d[i], z[j]) {
				rows[i][j] = 1
			}
		}
	}
	names := make([]string, items)
	for j := range names {
		names[j] = fmt.Sprintf("PQ%d", j+1)
	}

	data, err := domain.NewResponseMatrix(informants, names, rows)
	if err != nil {
		return nil, err
	}
	return &Simulation{Data: data, Competence: d, Consensus: z}, nil
}
