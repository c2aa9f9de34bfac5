package service

import (
	"fmt"

	"github.com/Harshitk-cp/consensus/internal/domain"
)

// Compare derives binary consensus calls from the posterior mean of Z and
// checks them against a per-item majority vote over the raw responses.
func Compare(data *domain.ResponseMatrix, trace *domain.Trace) (domain.Comparison, error) {
	chains, draws, _, m := trace.Dims()
	if chains == 0 || draws == 0 {
		return domain.Comparison{}, fmt.Errorf("%w: trace has no draws", domain.ErrEmptyData)
	}
	_, dm := data.Dims()
	if dm != m {
		return domain.Comparison{}, fmt.Errorf("%w: data has %d items, trace has %d", domain.ErrShapeMismatch, dm, m)
	}

	zMean := ConsensusMeans(trace)
	items := data.Items()
	result := domain.Comparison{
		Items:         items,
		ZMean:         zMean,
		ZEstimated:    make([]int, m),
		MajorityVote:  MajorityVote(data),
		Disagreements: []string{},
	}

	matches := 0
	for j := 0; j < m; j++ {
		result.ZEstimated[j] = Threshold(zMean[j])
		if result.ZEstimated[j] == result.MajorityVote[j] {
			matches++
		} else {
			result.Disagreements = append(result.Disagreements, items[j])
		}
	}
	result.MatchPercent = 100 * float64(matches) / float64(m)

	return result, nil
}

// ConsensusMeans averages each Z_j over every retained draw of every chain.
func ConsensusMeans(trace *domain.Trace) []float64 {
	_, _, _, m := trace.Dims()
	sums := make([]float64, m)
	total := 0
	for _, chain := range trace.Z {
		for _, draw := range chain {
			for j, z := range draw {
				sums[j] += float64(z)
			}
			total++
		}
	}
	if total == 0 {
		return sums
	}
	for j := range sums {
		sums[j] /= float64(total)
	}
	return sums
}

// MajorityVote is 1 for every item that at least half the informants answered 1.
func MajorityVote(data *domain.ResponseMatrix) []int {
	_, m := data.Dims()
	votes := make([]int, m)
	for j := range votes {
		votes[j] = Threshold(data.ColumnMean(j))
	}
	return votes
}
