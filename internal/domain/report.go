package domain

import (
	"encoding/json"
	"math"
	"time"

	"github.com/google/uuid"
)

type VariableKind string

const (
	VariableCompetence VariableKind = "D"
	VariableConsensus  VariableKind = "Z"
)

// Metric is a diagnostic value that may be undefined (NaN) or unbounded.
// Non-finite values encode as JSON null.
type Metric float64

func (v Metric) MarshalJSON() ([]byte, error) {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return []byte("null"), nil
	}
	return json.Marshal(f)
}

// SummaryRow is one line of the posterior summary table.
type SummaryRow struct {
	Name     string       `json:"name" yaml:"name"`
	Kind     VariableKind `json:"kind" yaml:"kind"`
	Index    int          `json:"index" yaml:"index"`
	Label    string       `json:"label" yaml:"label"`
	Mean     float64      `json:"mean" yaml:"mean"`
	SD       float64      `json:"sd" yaml:"sd"`
	HDILower float64      `json:"hdi_lower" yaml:"hdi_lower"`
	HDIUpper float64      `json:"hdi_upper" yaml:"hdi_upper"`
	MCSEMean Metric       `json:"mcse_mean" yaml:"mcse_mean"`
	ESS      Metric       `json:"ess" yaml:"ess"`
	RHat     Metric       `json:"r_hat" yaml:"r_hat"`
}

// Summary is the tabular posterior summary for D and Z.
type Summary struct {
	HDIProb float64      `json:"hdi_prob" yaml:"hdi_prob"`
	Rows    []SummaryRow `json:"rows" yaml:"rows"`
}

// Comparison contrasts the model's consensus with a majority vote.
type Comparison struct {
	Items         []string  `json:"items" yaml:"items"`
	ZMean         []float64 `json:"z_mean" yaml:"z_mean"`
	ZEstimated    []int     `json:"z_estimated" yaml:"z_estimated"`
	MajorityVote  []int     `json:"majority_vote" yaml:"majority_vote"`
	MatchPercent  float64   `json:"match_percent" yaml:"match_percent"`
	Disagreements []string  `json:"disagreements" yaml:"disagreements"`
}

// Report is everything one analysis run produces.
type Report struct {
	RunID       uuid.UUID     `json:"run_id" yaml:"run_id"`
	DataPath    string        `json:"data_path" yaml:"data_path"`
	Informants  int           `json:"informants" yaml:"informants"`
	Items       int           `json:"items" yaml:"items"`
	Chains      int           `json:"chains" yaml:"chains"`
	Draws       int           `json:"draws" yaml:"draws"`
	Tune        int           `json:"tune" yaml:"tune"`
	Seed        uint64        `json:"seed" yaml:"seed"`
	FitDuration time.Duration `json:"fit_duration" yaml:"fit_duration"`
	Summary     Summary       `json:"summary" yaml:"summary"`
	Comparison  Comparison    `json:"comparison" yaml:"comparison"`
	PlotPaths   []string      `json:"plot_paths,omitempty" yaml:"plot_paths,omitempty"`
}
