package report

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/Harshitk-cp/consensus/internal/domain"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

var (
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	headerStyle = cellStyle.Bold(true)
	titleStyle  = lipgloss.NewStyle().Bold(true)
)

// TextRenderer prints reports for a terminal.
type TextRenderer struct {
	w io.Writer
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{w: w}
}

func (r *TextRenderer) WriteReport(rep *domain.Report) error {
	header := fmt.Sprintf("Run %s: %d informants x %d items, %d chains x %d draws (tune %d, seed %d) in %s",
		rep.RunID, rep.Informants, rep.Items, rep.Chains, rep.Draws, rep.Tune, rep.Seed, rep.FitDuration.Round(time.Millisecond))
	if _, err := fmt.Fprintln(r.w, titleStyle.Render(header)); err != nil {
		return err
	}
	if err := r.WriteSummary(rep.Summary); err != nil {
		return err
	}
	if err := r.WriteComparison(rep.Comparison); err != nil {
		return err
	}
	for _, p := range rep.PlotPaths {
		if _, err := fmt.Fprintf(r.w, "Plot written: %s\n", p); err != nil {
			return err
		}
	}
	return nil
}

// WriteSummary prints one table row per posterior variable.
func (r *TextRenderer) WriteSummary(s domain.Summary) error {
	pct := int(math.Round(s.HDIProb * 100))
	lowPct := (100 - pct) / 2
	t := table.New().
		Border(lipgloss.NormalBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == 0 {
				return headerStyle
			}
			return cellStyle
		}).
		Headers("", "label", "mean", "sd",
			fmt.Sprintf("hdi_%d%%", lowPct), fmt.Sprintf("hdi_%d%%", lowPct+pct),
			"mcse_mean", "ess", "r_hat")

	for _, row := range s.Rows {
		t.Row(row.Name, row.Label,
			formatFloat(row.Mean), formatFloat(row.SD),
			formatFloat(row.HDILower), formatFloat(row.HDIUpper),
			formatFloat(float64(row.MCSEMean)),
			formatCount(float64(row.ESS)),
			formatFloat(float64(row.RHat)))
	}

	_, err := fmt.Fprintln(r.w, t.Render())
	return err
}

// WriteComparison prints the consensus and majority-vote vectors and their agreement.
func (r *TextRenderer) WriteComparison(c domain.Comparison) error {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Consensus vs. Majority Vote:") + "\n")
	fmt.Fprintf(&b, "%-19s %s\n", "Estimated Z:", formatVector(c.ZEstimated))
	fmt.Fprintf(&b, "%-19s %s\n", "Majority Vote:", formatVector(c.MajorityVote))
	fmt.Fprintf(&b, "%-19s %.1f\n", "Match (%):", c.MatchPercent)
	if len(c.Disagreements) > 0 {
		fmt.Fprintf(&b, "%-19s %s\n", "Disagree on:", strings.Join(c.Disagreements, ", "))
	}
	_, err := io.WriteString(r.w, b.String())
	return err
}

func formatVector(v []int) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.Itoa(x)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func formatCount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return formatFloat(v)
	}
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}

func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	}
	return strconv.FormatFloat(v, 'f', 3, 64)
}
