package domain

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// ResponseMatrix is the N x M binary response table: rows are informants,
// columns are items. It is immutable once built.
type ResponseMatrix struct {
	data       *mat.Dense
	informants []string
	items      []string
}

// NewResponseMatrix builds a matrix from row-major {0,1} values.
// informants and items label the rows and columns in source order.
func NewResponseMatrix(informants, items []string, rows [][]float64) (*ResponseMatrix, error) {
	n, m := len(informants), len(items)
	if n == 0 || m == 0 {
		return nil, fmt.Errorf("%w: %d informants x %d items", ErrEmptyData, n, m)
	}
	if len(rows) != n {
		return nil, fmt.Errorf("%w: %d rows for %d informants", ErrShapeMismatch, len(rows), n)
	}

	values := make([]float64, 0, n*m)
	for i, row := range rows {
		if len(row) != m {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrShapeMismatch, i, len(row), m)
		}
		for j, v := range row {
			if v != 0 && v != 1 {
				return nil, fmt.Errorf("%w: value %v at (%d,%d) is not binary", ErrDataFormat, v, i, j)
			}
		}
		values = append(values, row...)
	}

	return &ResponseMatrix{
		data:       mat.NewDense(n, m, values),
		informants: append([]string(nil), informants...),
		items:      append([]string(nil), items...),
	}, nil
}

// Dims returns the number of informants and items.
func (r *ResponseMatrix) Dims() (n, m int) {
	return r.data.Dims()
}

func (r *ResponseMatrix) At(i, j int) float64 {
	return r.data.At(i, j)
}

// Informants returns a copy of the row labels.
func (r *ResponseMatrix) Informants() []string {
	return append([]string(nil), r.informants...)
}

// Items returns a copy of the column labels.
func (r *ResponseMatrix) Items() []string {
	return append([]string(nil), r.items...)
}

// Row returns a copy of informant i's answers.
func (r *ResponseMatrix) Row(i int) []float64 {
	return mat.Row(nil, i, r.data)
}

// ColumnMean is the share of informants answering 1 on item j.
func (r *ResponseMatrix) ColumnMean(j int) float64 {
	n, _ := r.data.Dims()
	return mat.Sum(r.data.ColView(j)) / float64(n)
}

// Matrix exposes a read-only view of the underlying values.
func (r *ResponseMatrix) Matrix() mat.Matrix {
	return r.data
}
