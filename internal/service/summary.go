package service

import (
	"fmt"
	"math"
	"sort"

	"github.com/Harshitk-cp/consensus/internal/domain"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

const DefaultHDIProb = 0.94

// Summarize computes per-variable posterior statistics for every D_i and Z_j.
// Rows are ordered D[0..N-1] then Z[0..M-1].
func Summarize(data *domain.ResponseMatrix, trace *domain.Trace, hdiProb float64) (domain.Summary, error) {
	if hdiProb <= 0 || hdiProb >= 1 {
		return domain.Summary{}, fmt.Errorf("%w: hdi probability %v outside (0,1)", domain.ErrInvalidOptions, hdiProb)
	}
	chains, draws, n, m := trace.Dims()
	if chains == 0 || draws == 0 {
		return domain.Summary{}, fmt.Errorf("%w: trace has no draws", domain.ErrEmptyData)
	}
	dn, dm := data.Dims()
	if dn != n || dm != m {
		return domain.Summary{}, fmt.Errorf("%w: data is %dx%d, trace is %dx%d", domain.ErrShapeMismatch, dn, dm, n, m)
	}

	informants := data.Informants()
	items := data.Items()
	rows := make([]domain.SummaryRow, 0, n+m)
	for i := 0; i < n; i++ {
		row := summarizeVariable(trace.CompetenceChains(i), hdiProb)
		row.Name = fmt.Sprintf("D[%d]", i)
		row.Kind = domain.VariableCompetence
		row.Index = i
		row.Label = informants[i]
		rows = append(rows, row)
	}
	for j := 0; j < m; j++ {
		row := summarizeVariable(trace.ConsensusChains(j), hdiProb)
		row.Name = fmt.Sprintf("Z[%d]", j)
		row.Kind = domain.VariableConsensus
		row.Index = j
		row.Label = items[j]
		rows = append(rows, row)
	}

	return domain.Summary{HDIProb: hdiProb, Rows: rows}, nil
}

func summarizeVariable(chains [][]float64, hdiProb float64) domain.SummaryRow {
	pooled := domain.Pooled(chains)
	mean, sd := stat.MeanStdDev(pooled, nil)
	if len(pooled) < 2 {
		sd = 0
	}
	lo, hi := HDI(pooled, hdiProb)
	ess := EffectiveSampleSize(chains)

	mcse := math.NaN()
	switch {
	case sd == 0:
		mcse = 0
	case !math.IsNaN(ess) && ess > 0:
		mcse = sd / math.Sqrt(ess)
	}

	return domain.SummaryRow{
		Mean:     mean,
		SD:       sd,
		HDILower: lo,
		HDIUpper: hi,
		MCSEMean: domain.Metric(mcse),
		ESS:      domain.Metric(ess),
		RHat:     domain.Metric(SplitRHat(chains)),
	}
}

// HDI returns the narrowest interval containing prob of the samples.
func HDI(samples []float64, prob float64) (lower, upper float64) {
	n := len(samples)
	if n == 0 {
		return math.NaN(), math.NaN()
	}
	sorted := append([]float64(nil), samples...)
	sort.Float64s(sorted)

	width := int(math.Floor(prob * float64(n)))
	if width >= n {
		width = n - 1
	}
	candidates := n - width

	best := 0
	bestWidth := math.Inf(1)
	for k := 0; k < candidates; k++ {
		if w := sorted[k+width] - sorted[k]; w < bestWidth {
			best, bestWidth = k, w
		}
	}
	return sorted[best], sorted[best+width]
}

// SplitRHat is the Gelman-Rubin potential scale reduction computed on chains
// split in half. It is NaN when a chain holds fewer than four draws, 1 when
// every draw is the same value, and +Inf when chains are individually
// constant but disagree.
func SplitRHat(chains [][]float64) float64 {
	halves := splitChains(chains)
	if len(halves) == 0 {
		return math.NaN()
	}
	n := float64(len(halves[0]))

	means := make([]float64, len(halves))
	within := 0.0
	for k, h := range halves {
		var v float64
		means[k], v = stat.MeanVariance(h, nil)
		within += v
	}
	within /= float64(len(halves))
	between := n * stat.Variance(means, nil)

	if within == 0 {
		if between == 0 {
			return 1
		}
		return math.Inf(1)
	}
	varPlus := (n-1)/n*within + between/n
	return math.Sqrt(varPlus / within)
}

func splitChains(chains [][]float64) [][]float64 {
	if len(chains) == 0 {
		return nil
	}
	half := len(chains[0]) / 2
	if half < 2 {
		return nil
	}
	out := make([][]float64, 0, 2*len(chains))
	for _, c := range chains {
		if len(c)/2 != half {
			return nil
		}
		out = append(out, c[:half], c[len(c)-half:])
	}
	return out
}

// EffectiveSampleSize estimates the number of independent draws using
// Geyer's initial monotone sequence over the multi-chain autocorrelation.
// Constant draws count as fully independent.
func EffectiveSampleSize(chains [][]float64) float64 {
	m := len(chains)
	if m == 0 {
		return math.NaN()
	}
	n := len(chains[0])
	if n < 4 {
		return math.NaN()
	}
	for _, c := range chains {
		if len(c) != n {
			return math.NaN()
		}
	}

	means := make([]float64, m)
	for k, c := range chains {
		means[k] = floats.Sum(c) / float64(n)
	}
	// acov(t) averaged over chains, computed on demand.
	acov := func(t int) float64 {
		sum := 0.0
		for k, c := range chains {
			sum += autocovariance(c, means[k], t)
		}
		return sum / float64(m)
	}

	nf := float64(n)
	meanVar := acov(0) * nf / (nf - 1)
	varPlus := meanVar * (nf - 1) / nf
	if m > 1 {
		varPlus += stat.Variance(means, nil)
	}
	total := float64(m * n)
	if varPlus == 0 {
		return total
	}

	rho := make([]float64, n)
	rhoAt := func(t int) float64 {
		return 1 - (meanVar-acov(t))/varPlus
	}

	rho[0] = 1
	even, odd := 1.0, rhoAt(1)
	rho[1] = odd
	t := 1
	for t < n-4 && even+odd > 0 {
		even, odd = rhoAt(t+1), rhoAt(t+2)
		if even+odd >= 0 {
			rho[t+1], rho[t+2] = even, odd
		}
		t += 2
	}
	maxT := t

	for t = 1; t <= maxT-2; t += 2 {
		if rho[t+1]+rho[t+2] > rho[t-1]+rho[t] {
			rho[t+1] = (rho[t-1] + rho[t]) / 2
			rho[t+2] = rho[t+1]
		}
	}

	tau := -1 + 2*floats.Sum(rho[:maxT+1])
	if floor := 1 / math.Log10(total); tau < floor {
		tau = floor
	}
	return total / tau
}

func autocovariance(x []float64, mean float64, lag int) float64 {
	n := len(x)
	sum := 0.0
	for i := 0; i+lag < n; i++ {
		sum += (x[i] - mean) * (x[i+lag] - mean)
	}
	return sum / float64(n)
}
