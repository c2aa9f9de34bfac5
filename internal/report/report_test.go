package report

import (
	"bytes"
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Harshitk-cp/consensus/internal/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func testReport() *domain.Report {
	return &domain.Report{
		RunID:       uuid.MustParse("6f1c1d44-8a0e-4b4e-9d53-7d2f0f3c1a10"),
		DataPath:    "plant_knowledge.csv",
		Informants:  2,
		Items:       3,
		Chains:      1,
		Draws:       4,
		Tune:        2,
		Seed:        9,
		FitDuration: 1500 * time.Millisecond,
		Summary: domain.Summary{
			HDIProb: 0.94,
			Rows: []domain.SummaryRow{
				{Name: "D[0]", Kind: domain.VariableCompetence, Index: 0, Label: "P1", Mean: 0.8123, SD: 0.1, HDILower: 0.6, HDIUpper: 0.95, MCSEMean: 0.01, ESS: 812.4, RHat: 1.001},
				{Name: "D[1]", Kind: domain.VariableCompetence, Index: 1, Label: "P2", Mean: 0.7, SD: 0.1, HDILower: 0.5, HDIUpper: 0.9, MCSEMean: 0.01, ESS: 700, RHat: 1.0},
				{Name: "Z[0]", Kind: domain.VariableConsensus, Index: 0, Label: "PQ1", Mean: 1, ESS: domain.Metric(math.NaN()), RHat: domain.Metric(math.Inf(1))},
				{Name: "Z[1]", Kind: domain.VariableConsensus, Index: 1, Label: "PQ2", Mean: 0.25, SD: 0.4},
				{Name: "Z[2]", Kind: domain.VariableConsensus, Index: 2, Label: "PQ3", Mean: 0.5, SD: 0.5},
			},
		},
		Comparison: domain.Comparison{
			Items:         []string{"PQ1", "PQ2", "PQ3"},
			ZMean:         []float64{1, 0.25, 0.5},
			ZEstimated:    []int{1, 0, 1},
			MajorityVote:  []int{1, 1, 1},
			MatchPercent:  200.0 / 3,
			Disagreements: []string{"PQ2"},
		},
	}
}

func testTrace() *domain.Trace {
	return &domain.Trace{
		D: [][][]float64{{{0.9, 0.6}, {0.8, 0.7}, {0.7, 0.8}, {0.85, 0.75}}},
		Z: [][][]int{{{1, 0, 1}, {1, 1, 0}, {1, 0, 1}, {1, 0, 0}}},
	}
}

func TestTextRenderer_WriteReport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewTextRenderer(&buf).WriteReport(testReport()))
	out := buf.String()

	for _, want := range []string{
		"6f1c1d44-8a0e-4b4e-9d53-7d2f0f3c1a10",
		"2 informants x 3 items",
		"hdi_3%", "hdi_97%", "r_hat",
		"D[0]", "P1", "0.812", "812",
		"Z[0]", "nan", "inf",
		"Consensus vs. Majority Vote:",
		"Estimated Z:        [1 0 1]",
		"Majority Vote:      [1 1 1]",
		"Match (%):          66.7",
		"Disagree on:        PQ2",
	} {
		assert.Contains(t, out, want)
	}
}

func TestTextRenderer_WriteComparison_NoDisagreements(t *testing.T) {
	c := testReport().Comparison
	c.Disagreements = nil
	c.MajorityVote = c.ZEstimated
	c.MatchPercent = 100

	var buf bytes.Buffer
	require.NoError(t, NewTextRenderer(&buf).WriteComparison(c))
	assert.Contains(t, buf.String(), "Match (%):          100.0")
	assert.NotContains(t, buf.String(), "Disagree on:")
}

func TestWrite_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testReport(), FormatJSON))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "6f1c1d44-8a0e-4b4e-9d53-7d2f0f3c1a10", decoded["run_id"])

	comparison := decoded["comparison"].(map[string]any)
	assert.InDelta(t, 66.67, comparison["match_percent"], 0.01)

	rows := decoded["summary"].(map[string]any)["rows"].([]any)
	require.Len(t, rows, 5)
	z0 := rows[2].(map[string]any)
	assert.Nil(t, z0["ess"])
	assert.Nil(t, z0["r_hat"])
}

func TestWrite_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, testReport(), FormatYAML))

	var decoded struct {
		RunID      string `yaml:"run_id"`
		Comparison struct {
			ZEstimated   []int `yaml:"z_estimated"`
			MajorityVote []int `yaml:"majority_vote"`
		} `yaml:"comparison"`
	}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "6f1c1d44-8a0e-4b4e-9d53-7d2f0f3c1a10", decoded.RunID)
	assert.Equal(t, []int{1, 0, 1}, decoded.Comparison.ZEstimated)
	assert.Equal(t, []int{1, 1, 1}, decoded.Comparison.MajorityVote)
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, testReport(), Format("xml"))
	assert.Error(t, err)
	assert.False(t, ValidFormat("xml"))
	assert.True(t, ValidFormat("yaml"))
}

func TestPlotRenderer_Render(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plots")
	paths, err := NewPlotRenderer(dir).Render(testReport(), testTrace())
	require.NoError(t, err)

	require.Equal(t, []string{
		filepath.Join(dir, CompetencePlotFile),
		filepath.Join(dir, ConsensusPlotFile),
	}, paths)
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Greater(t, info.Size(), int64(0))
		assert.True(t, strings.HasSuffix(p, ".png"))
	}
}
