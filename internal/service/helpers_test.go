package service

import (
	"fmt"
	"testing"

	"github.com/Harshitk-cp/consensus/internal/domain"
	"github.com/stretchr/testify/require"
)

// newMatrix labels rows I0.. and columns Q0.. for test data.
func newMatrix(t *testing.T, rows [][]float64) *domain.ResponseMatrix {
	t.Helper()
	informants := make([]string, len(rows))
	for i := range informants {
		informants[i] = fmt.Sprintf("I%d", i)
	}
	items := make([]string, len(rows[0]))
	for j := range items {
		items[j] = fmt.Sprintf("Q%d", j)
	}
	data, err := domain.NewResponseMatrix(informants, items, rows)
	require.NoError(t, err)
	return data
}

// newTrace builds a single-chain trace with constant D from Z draws.
func newTrace(n int, zDraws [][]int) *domain.Trace {
	d := make([][]float64, len(zDraws))
	for k := range d {
		d[k] = make([]float64, n)
		for i := range d[k] {
			d[k][i] = 0.7
		}
	}
	return &domain.Trace{
		D: [][][]float64{d},
		Z: [][][]int{zDraws},
	}
}

// consensusData has eight informants who each deviate from the pattern
// 1,0,1,1,0,0 on at most one item.
func consensusData(t *testing.T) (*domain.ResponseMatrix, []int) {
	pattern := []int{1, 0, 1, 1, 0, 0}
	rows := make([][]float64, 8)
	for i := range rows {
		rows[i] = make([]float64, len(pattern))
		for j, z := range pattern {
			rows[i][j] = float64(z)
		}
		if i < len(pattern) {
			rows[i][i] = 1 - rows[i][i]
		}
	}
	return newMatrix(t, rows), pattern
}
