package store

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Harshitk-cp/consensus/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponseStore_Load(t *testing.T) {
	s := NewResponseStore("")

	data, err := s.Load(context.Background(), filepath.Join("testdata", "responses.csv"))
	require.NoError(t, err)

	n, m := data.Dims()
	assert.Equal(t, 3, n)
	assert.Equal(t, 4, m)

	if diff := cmp.Diff([]string{"P1", "P2", "P3"}, data.Informants()); diff != "" {
		t.Errorf("informants mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"PQ1", "PQ2", "PQ3", "PQ4"}, data.Items()); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}

	want := [][]float64{
		{1, 0, 1, 1},
		{1, 1, 1, 0},
		{0, 0, 1, 1},
	}
	for i := range want {
		assert.Equal(t, want[i], data.Row(i), "row %d", i)
	}
}

func TestResponseStore_Load_ShapeDropsIDColumn(t *testing.T) {
	csv := "Informant,A,B,C,D,E\nx,1,0,1,0,1\ny,0,0,0,0,0\n"

	data, err := NewResponseStore("").Parse(strings.NewReader(csv))
	require.NoError(t, err)

	n, m := data.Dims()
	assert.Equal(t, 2, n)
	assert.Equal(t, 5, m)
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			v := data.At(i, j)
			assert.True(t, v == 0 || v == 1, "cell (%d,%d) = %v", i, j, v)
		}
	}
}

func TestResponseStore_Parse_IDColumnAnywhere(t *testing.T) {
	csv := "A,Name,B\n1,alice,0\n0,bob,1\n"

	data, err := NewResponseStore("Name").Parse(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, []string{"alice", "bob"}, data.Informants())
	assert.Equal(t, []string{"A", "B"}, data.Items())
	assert.Equal(t, []float64{1, 0}, data.Row(0))
	assert.Equal(t, []float64{0, 1}, data.Row(1))
}

func TestResponseStore_Parse_AcceptedSpellings(t *testing.T) {
	csv := "Informant,A,B,C,D\np, 1.0 ,false,TRUE,0\n"

	data, err := NewResponseStore("").Parse(strings.NewReader(csv))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 0, 1, 0}, data.Row(0))
}

func TestResponseStore_Load_NotFound(t *testing.T) {
	_, err := NewResponseStore("").Load(context.Background(), filepath.Join("testdata", "missing.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestResponseStore_Load_DataFormatErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
	}{
		{"non binary cell", "non_binary.csv"},
		{"missing id column", "no_id.csv"},
		{"empty file", "empty.csv"},
	}

	s := NewResponseStore("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := s.Load(context.Background(), filepath.Join("testdata", tt.file))
			assert.Nil(t, data)
			assert.ErrorIs(t, err, domain.ErrDataFormat)
		})
	}
}

func TestResponseStore_Parse_Malformed(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"header only", "Informant,A,B\n"},
		{"ragged row", "Informant,A,B\np,1\n"},
		{"missing value", "Informant,A,B\np,1,\n"},
		{"only id column", "Informant\np\n"},
		{"fractional value", "Informant,A\np,0.5\n"},
	}

	s := NewResponseStore("")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Parse(strings.NewReader(tt.csv))
			assert.ErrorIs(t, err, domain.ErrDataFormat)
		})
	}
}

func TestResponseStore_Load_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewResponseStore("").Load(ctx, filepath.Join("testdata", "responses.csv"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResponseStore_SaveThenLoad(t *testing.T) {
	s := NewResponseStore("")
	orig, err := s.Load(context.Background(), filepath.Join("testdata", "responses.csv"))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "copy.csv")
	require.NoError(t, s.Save(context.Background(), path, orig))

	loaded, err := s.Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, orig.Informants(), loaded.Informants())
	assert.Equal(t, orig.Items(), loaded.Items())
	n, _ := orig.Dims()
	for i := 0; i < n; i++ {
		assert.Equal(t, orig.Row(i), loaded.Row(i))
	}
}
