// Package report renders a simulation result as a one-page PDF brief.
package report

import (
	"errors"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"

	"sia-analytics/internal/simulation"
	"sia-analytics/internal/theme"
)

// Page geometry in millimetres.
const (
	marginLeft  = 15.0
	chartTop    = 110.0
	chartWidth  = 180.0
	chartHeight = 90.0
)

// WriteRiskPDF writes the risk brief for res to w.
func WriteRiskPDF(w io.Writer, res *simulation.Result, th theme.Theme) error {
	if res == nil {
		return errors.New("no simulation result to report")
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Delay Risk Simulation", false)
	pdf.AddPage()

	drawHeader(pdf, th)
	drawIndicators(pdf, res, th)
	drawHistogram(pdf, res, th)

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return pdf.Output(w)
}

func setFill(pdf *gofpdf.Fpdf, hex string) {
	if r, g, b, err := theme.RGB(hex); err == nil {
		pdf.SetFillColor(r, g, b)
	}
}

func setText(pdf *gofpdf.Fpdf, hex string) {
	if r, g, b, err := theme.RGB(hex); err == nil {
		pdf.SetTextColor(r, g, b)
	}
}

func drawHeader(pdf *gofpdf.Fpdf, th theme.Theme) {
	setFill(pdf, th.Navy)
	pdf.Rect(0, 0, 210, 32, "F")

	pdf.SetXY(marginLeft, 9)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 8, "Delay Risk Simulation")
	pdf.SetXY(marginLeft, 18)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, "Monte-Carlo estimate of departure delays under disruption")
}

func drawIndicators(pdf *gofpdf.Fpdf, res *simulation.Result, th theme.Theme) {
	ind := res.Indicators
	sc := res.Scenario

	setText(pdf, th.Ink)
	pdf.SetXY(marginLeft, 40)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(0, 8, "Scenario")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	rows := [][2]string{
		{"Historical mean delay", fmt.Sprintf("%.2f min", res.Baseline.Mean)},
		{"Historical std. deviation", fmt.Sprintf("%.2f min", res.Baseline.StdDev)},
		{"Simulations", fmt.Sprintf("%d", sc.Simulations)},
		{"Delay threshold", fmt.Sprintf("%.0f min", sc.Threshold)},
		{"Crisis multiplier", fmt.Sprintf("%.2f", sc.CrisisMultiplier)},
	}
	for _, r := range rows {
		pdf.SetX(marginLeft)
		pdf.CellFormat(70, 6, r[0], "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 6, r[1], "", 1, "L", false, 0, "")
	}

	kpis := [][2]string{
		{"Expected Delay", fmt.Sprintf("%.1f min", ind.Expected)},
		{fmt.Sprintf("P(Delay > %.0f)", sc.Threshold), fmt.Sprintf("%.1f%%", ind.Probability)},
		{"95th Percentile", fmt.Sprintf("%.1f min", ind.P95)},
		{"Worst Case", fmt.Sprintf("%.1f min", ind.Worst)},
	}
	boxW := chartWidth / float64(len(kpis))
	y := 82.0
	for i, k := range kpis {
		x := marginLeft + float64(i)*boxW
		setFill(pdf, th.Badge)
		pdf.Rect(x+1, y, boxW-2, 20, "F")

		setText(pdf, th.Muted)
		pdf.SetFont("Arial", "", 8)
		pdf.SetXY(x+3, y+2)
		pdf.Cell(boxW-6, 5, k[0])

		setText(pdf, th.Ink)
		pdf.SetFont("Arial", "B", 14)
		pdf.SetXY(x+3, y+9)
		pdf.Cell(boxW-6, 8, k[1])
	}
}

func drawHistogram(pdf *gofpdf.Fpdf, res *simulation.Result, th theme.Theme) {
	h := res.Histogram
	if h == nil || len(h.Counts) == 0 {
		return
	}

	setText(pdf, th.Ink)
	pdf.SetFont("Arial", "B", 12)
	pdf.SetXY(marginLeft, chartTop-10)
	pdf.Cell(0, 8, "Distribution of simulated delays")

	maxCount := h.MaxCount()
	if maxCount == 0 {
		maxCount = 1
	}
	barW := chartWidth / float64(len(h.Counts))
	base := chartTop + chartHeight

	for i, c := range h.Counts {
		if c == 0 {
			continue
		}
		setFill(pdf, th.Blue)
		if h.LowerEdges[i] >= res.Scenario.Threshold {
			setFill(pdf, th.Gold)
		}
		barH := chartHeight * float64(c) / float64(maxCount)
		pdf.Rect(marginLeft+float64(i)*barW, base-barH, barW*0.9, barH, "F")
	}

	pdf.SetDrawColor(80, 80, 80)
	pdf.SetLineWidth(0.2)
	pdf.Line(marginLeft, base, marginLeft+chartWidth, base)

	setText(pdf, th.Muted)
	pdf.SetFont("Arial", "", 7)
	for i := 0; i < len(h.LowerEdges); i += 6 {
		pdf.SetXY(marginLeft+float64(i)*barW-2, base+1)
		pdf.Cell(10, 4, fmt.Sprintf("%.0f", h.LowerEdges[i]))
	}
	pdf.SetXY(marginLeft, base+6)
	pdf.SetFont("Arial", "", 8)
	pdf.Cell(0, 5, fmt.Sprintf("Delay in minutes (bins of %.0f, tallest bar %d simulations)", h.BinWidth, h.MaxCount()))
	if h.Omitted > 0 {
		pdf.SetXY(marginLeft, base+11)
		pdf.Cell(0, 5, fmt.Sprintf("%d simulations beyond %.0f minutes are not shown", h.Omitted, h.Upper))
	}
	if res.ID != "" {
		pdf.SetXY(marginLeft, 285)
		pdf.Cell(0, 5, "Run "+res.ID)
	}
}
