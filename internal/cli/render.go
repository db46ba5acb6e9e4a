package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/kcalvin/solarsizer/internal/calculator"
	"github.com/kcalvin/solarsizer/internal/greenops"
	"github.com/kcalvin/solarsizer/internal/sizing"
)

// Rendering constants.
const (
	defaultBoxWidth  = 60
	minBoxWidth      = 40
	boxPaddingWidth  = 4
	tabPadding       = 2
	layoutPercentage = 0.8
)

// noMatchWarning is printed when every configuration is undersized.
const noMatchWarning = "[WARN] No configuration fully meets 100% usage. Selecting largest available."

func boxBorderColor() lipgloss.Color { return lipgloss.Color("240") }
func boxTitleColor() lipgloss.Color  { return lipgloss.Color("39") }
func colorOK() lipgloss.Color        { return lipgloss.Color("42") }
func colorWarning() lipgloss.Color   { return lipgloss.Color("214") }

// estimateView is everything the estimate renderers need.
type estimateView struct {
	Source           string
	MonthlyBill      float64
	Rate             float64
	PerformanceRatio float64
	Precision        int
	Result           calculator.Result
	Impact           *greenops.Impact
}

// renderEstimate writes the estimate in the requested format.
func renderEstimate(w io.Writer, format string, v estimateView) error {
	if format == outputJSON {
		return writeJSON(w, v.Result)
	}
	if isWriterTerminal(w) {
		return renderStyledEstimate(w, v)
	}
	return renderPlainEstimate(w, v)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// isWriterTerminal reports whether w is a terminal.
func isWriterTerminal(w io.Writer) bool {
	if f, ok := w.(*os.File); ok {
		return isTerminal(f)
	}
	return false
}

// getTerminalWidth returns the width of w, or a default for non-terminals.
func getTerminalWidth(w io.Writer) int {
	if f, ok := w.(*os.File); ok {
		width, _, err := term.GetSize(int(f.Fd()))
		if err == nil && width > 0 {
			return width
		}
	}
	return defaultBoxWidth + boxPaddingWidth
}

func calculateBoxWidth(termWidth int) int {
	width := int(float64(termWidth) * layoutPercentage)
	return max(minBoxWidth, min(width, defaultBoxWidth))
}

func renderPlainEstimate(w io.Writer, v estimateView) error {
	var b strings.Builder
	b.WriteString("Solar Sizing Estimate\n")
	b.WriteString("=====================\n\n")
	writeSummary(&b, v)
	b.WriteString("\n")
	if err := writeEvaluationTable(&b, v); err != nil {
		return err
	}
	b.WriteString("\n")
	writeRecommendation(&b, v)
	_, err := io.WriteString(w, b.String())
	return err
}

func renderStyledEstimate(w io.Writer, v estimateView) error {
	boxWidth := calculateBoxWidth(getTerminalWidth(w))

	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(boxTitleColor())
	borderStyle := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(boxBorderColor()).
		Padding(0, 1).
		Width(boxWidth)

	var content strings.Builder
	content.WriteString(titleStyle.Render("SOLAR SIZING ESTIMATE"))
	content.WriteString("\n")
	content.WriteString(strings.Repeat("─", boxWidth-boxPaddingWidth))
	content.WriteString("\n\n")
	writeSummary(&content, v)
	content.WriteString("\n")
	if err := writeEvaluationTable(&content, v); err != nil {
		return err
	}
	content.WriteString("\n")

	var rec strings.Builder
	writeRecommendation(&rec, v)
	color := colorOK()
	if !v.Result.Matched {
		color = colorWarning()
	}
	content.WriteString(lipgloss.NewStyle().Foreground(color).Render(strings.TrimRight(rec.String(), "\n")))

	_, err := fmt.Fprintln(w, borderStyle.Render(content.String()))
	return err
}

func writeSummary(b *strings.Builder, v estimateView) {
	fmt.Fprintf(b, "Roof data:          %s\n", v.Source)
	fmt.Fprintf(b, "Monthly bill:       %s\n", sizing.FormatCurrency(v.MonthlyBill))
	fmt.Fprintf(b, "Electricity rate:   $%.4f/kWh\n", v.Rate)
	fmt.Fprintf(b, "Annual usage:       %s\n", sizing.FormatKwh(v.Result.AnnualUsageKwh))
	fmt.Fprintf(b, "Performance ratio:  %.2f\n", v.PerformanceRatio)
}

// writeEvaluationTable lists each configuration scanned, up to the chosen one.
func writeEvaluationTable(b *strings.Builder, v estimateView) error {
	if len(v.Result.Evaluations) == 0 {
		b.WriteString("No panel configurations available for this roof.\n")
		return nil
	}

	tw := tabwriter.NewWriter(b, 0, 0, tabPadding, ' ', 0)
	fmt.Fprintln(tw, "Panels\tSystem Size\tEst. AC Production\tCoverage")
	fmt.Fprintln(tw, "------\t-----------\t------------------\t--------")
	for _, e := range v.Result.Evaluations {
		mark := ""
		if e.MeetsTarget {
			mark = " *"
		}
		fmt.Fprintf(tw, "%d\t%s kW\t%s\t%s%s\n",
			e.PanelsCount,
			sizing.FormatNumber(e.SystemSizeKw, v.Precision),
			sizing.FormatKwh(e.AcProductionKwh),
			sizing.FormatPercent(e.CoveragePercent),
			mark,
		)
	}
	return tw.Flush()
}

func writeRecommendation(b *strings.Builder, v estimateView) {
	rec := v.Result.Recommendation
	if rec == nil {
		b.WriteString("No recommendation: the provider returned no panel configurations.\n")
		return
	}
	if !v.Result.Matched {
		b.WriteString(noMatchWarning + "\n")
	}
	fmt.Fprintf(b, "Recommended system: %d panels x %s W = %s kW\n",
		rec.PanelCount,
		sizing.FormatNumber(rec.PanelWattage, 0),
		sizing.FormatNumber(rec.SystemSizeKw, v.Precision),
	)
	fmt.Fprintf(b, "Est. AC production: %s/yr (%s offset)\n",
		sizing.FormatKwh(rec.AcProductionKwh),
		sizing.FormatPercent(rec.OffsetPercentage),
	)
	writeImpact(b, v.Impact)
}

func writeImpact(b *strings.Builder, impact *greenops.Impact) {
	if impact == nil {
		return
	}
	fmt.Fprintf(b, "Avoided emissions:  %s CO2e/yr", greenops.FormatKg(impact.AvoidedKg))
	if impact.DisplayText != "" {
		fmt.Fprintf(b, ", %s", impact.DisplayText)
	}
	b.WriteString("\n")
}
