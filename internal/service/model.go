package service

import (
	"math"

	"github.com/Harshitk-cp/consensus/internal/domain"
	"gonum.org/v1/gonum/stat/distuv"
)

const (
	DefaultCompetenceAlpha = 2.0
	DefaultCompetenceBeta  = 1.0
	DefaultConsensusPrior  = 0.5
)

// CCTModel is the Cultural Consensus Theory generative model:
//
//	D_i  ~ Beta(CompetenceAlpha, CompetenceBeta)
//	Z_j  ~ Bernoulli(ConsensusPrior)
//	X_ij ~ Bernoulli(Z_j*D_i + (1-Z_j)*(1-D_i))
type CCTModel struct {
	CompetenceAlpha float64
	CompetenceBeta  float64
	ConsensusPrior  float64
}

func NewCCTModel() *CCTModel {
	return &CCTModel{
		CompetenceAlpha: DefaultCompetenceAlpha,
		CompetenceBeta:  DefaultCompetenceBeta,
		ConsensusPrior:  DefaultConsensusPrior,
	}
}

// ResponseProbability is the probability that an informant with competence d
// answers 1 on an item whose consensus answer is z.
func ResponseProbability(d float64, z int) float64 {
	zf := float64(z)
	return zf*d + (1-zf)*(1-d)
}

// PriorMeanCompetence is the mean of the competence prior.
func (m *CCTModel) PriorMeanCompetence() float64 {
	return m.CompetenceAlpha / (m.CompetenceAlpha + m.CompetenceBeta)
}

func (m *CCTModel) competencePrior() distuv.Beta {
	return distuv.Beta{Alpha: m.CompetenceAlpha, Beta: m.CompetenceBeta}
}

// LogPrior is the joint prior log density of (d, z).
func (m *CCTModel) LogPrior(d []float64, z []int) float64 {
	prior := m.competencePrior()
	lp := 0.0
	for _, di := range d {
		lp += prior.LogProb(di)
	}
	for _, zj := range z {
		if zj == 1 {
			lp += math.Log(m.ConsensusPrior)
		} else {
			lp += math.Log(1 - m.ConsensusPrior)
		}
	}
	return lp
}

// LogLikelihood is log P(X | d, z).
func (m *CCTModel) LogLikelihood(data *domain.ResponseMatrix, d []float64, z []int) float64 {
	n, items := data.Dims()
	ll := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < items; j++ {
			p := clampProbability(ResponseProbability(d[i], z[j]))
			if data.At(i, j) == 1 {
				ll += math.Log(p)
			} else {
				ll += math.Log(1 - p)
			}
		}
	}
	return ll
}

func (m *CCTModel) LogPosterior(data *domain.ResponseMatrix, d []float64, z []int) float64 {
	return m.LogPrior(d, z) + m.LogLikelihood(data, d, z)
}

// ConsensusConditional returns P(Z_j = 1 | D = d, X).
func (m *CCTModel) ConsensusConditional(data *domain.ResponseMatrix, d []float64, j int) float64 {
	n, _ := data.Dims()
	logOdds := Logit(m.ConsensusPrior)
	for i := 0; i < n; i++ {
		if data.At(i, j) == 1 {
			logOdds += Logit(d[i])
		} else {
			logOdds -= Logit(d[i])
		}
	}
	return Sigmoid(logOdds)
}

// CompetenceConditional returns the Beta full conditional of D_i given z:
// each answer matching z is a success.
func (m *CCTModel) CompetenceConditional(data *domain.ResponseMatrix, z []int, i int) (alpha, beta float64) {
	_, items := data.Dims()
	matches := 0
	for j := 0; j < items; j++ {
		if int(data.At(i, j)) == z[j] {
			matches++
		}
	}
	return m.CompetenceAlpha + float64(matches), m.CompetenceBeta + float64(items-matches)
}
