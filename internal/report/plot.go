package report

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Harshitk-cp/consensus/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const (
	CompetencePlotFile = "posterior_D.png"
	ConsensusPlotFile  = "posterior_Z.png"

	CompetencePlotTitle = "Posterior of Informant Competence (D)"
	ConsensusPlotTitle  = "Posterior of Consensus Answers (Z)"
)

// PlotRenderer writes the D and Z posterior plots as PNG files into a directory.
type PlotRenderer struct {
	dir    string
	height vg.Length
}

func NewPlotRenderer(dir string) *PlotRenderer {
	if dir == "" {
		dir = "."
	}
	return &PlotRenderer{dir: dir, height: 4 * vg.Inch}
}

func (r *PlotRenderer) Render(rep *domain.Report, trace *domain.Trace) ([]string, error) {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create plot dir: %w", err)
	}

	dPath := filepath.Join(r.dir, CompetencePlotFile)
	if err := r.renderCompetence(dPath, rep.Summary, trace); err != nil {
		return nil, err
	}
	zPath := filepath.Join(r.dir, ConsensusPlotFile)
	if err := r.renderConsensus(zPath, rep.Comparison); err != nil {
		return nil, err
	}
	return []string{dPath, zPath}, nil
}

// renderCompetence draws one box per informant over the pooled D draws.
func (r *PlotRenderer) renderCompetence(path string, summary domain.Summary, trace *domain.Trace) error {
	p := plot.New()
	p.Title.Text = CompetencePlotTitle
	p.X.Label.Text = "informant"
	p.Y.Label.Text = "D"
	p.Y.Min, p.Y.Max = 0, 1

	var labels []string
	for _, row := range summary.Rows {
		if row.Kind != domain.VariableCompetence {
			continue
		}
		values := plotter.Values(domain.Pooled(trace.CompetenceChains(row.Index)))
		box, err := plotter.NewBoxPlot(vg.Points(12), float64(len(labels)), values)
		if err != nil {
			return fmt.Errorf("box plot for %s: %w", row.Name, err)
		}
		p.Add(box)
		labels = append(labels, row.Label)
	}
	p.NominalX(labels...)

	if err := p.Save(r.width(len(labels)), r.height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

// renderConsensus draws the posterior probability that each Z_j is 1.
func (r *PlotRenderer) renderConsensus(path string, c domain.Comparison) error {
	p := plot.New()
	p.Title.Text = ConsensusPlotTitle
	p.X.Label.Text = "item"
	p.Y.Label.Text = "P(Z = 1)"
	p.Y.Min, p.Y.Max = 0, 1

	bars, err := plotter.NewBarChart(plotter.Values(c.ZMean), vg.Points(12))
	if err != nil {
		return fmt.Errorf("bar chart: %w", err)
	}
	p.Add(bars)

	cutoff := plotter.NewFunction(func(float64) float64 { return 0.5 })
	cutoff.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(cutoff)
	p.NominalX(c.Items...)

	if err := p.Save(r.width(len(c.Items)), r.height, path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

func (r *PlotRenderer) width(columns int) vg.Length {
	w := vg.Length(columns) * 0.4 * vg.Inch
	if w < 6*vg.Inch {
		return 6 * vg.Inch
	}
	return w
}
