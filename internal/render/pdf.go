package render

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"jobview-engine/internal/aggregate"
)

// Report is the input of the PDF chart report.
type Report struct {
	Title       string
	Scope       string
	Matching    int
	Aggregates  aggregate.Aggregates
	GeneratedAt time.Time
}

const (
	pageWidth  = 210.0
	margin     = 15.0
	chartWidth = pageWidth - 2*margin
	labelWidth = 55.0
)

type reportWriter struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

// PDFReport draws the salary histogram, top cities, top companies and the
// most frequent description terms.
func PDFReport(w io.Writer, r Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(r.Title, true)
	pdf.AddPage()

	rw := &reportWriter{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, rw.tr(r.Title), "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	s := r.Aggregates.Summary
	generated := r.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}
	pdf.CellFormat(0, 5, rw.tr(fmt.Sprintf("Generated %s · charts cover %s listings (%d records, %d matching the filter)",
		generated.Format("2006-01-02 15:04"), r.Scope, s.Total, r.Matching)), "", 1, "L", false, 0, "")
	if s.Known > 0 {
		pdf.CellFormat(0, 5, rw.tr(fmt.Sprintf("Disclosed salaries: %d · mean %s · median %s · undisclosed: %d",
			s.Known, FormatEuro(s.MeanSalary), FormatEuro(s.MedianSalary), s.Unknown)), "", 1, "L", false, 0, "")
	} else {
		pdf.CellFormat(0, 5, rw.tr(fmt.Sprintf("No disclosed salaries · undisclosed: %d", s.Unknown)), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	rw.histogram("Salary distribution", r.Aggregates.SalaryHistogram)
	rw.bars("Top cities", r.Aggregates.TopCities, [3]int{46, 134, 193})
	rw.bars("Top companies", r.Aggregates.TopCompanies, [3]int{231, 126, 34})
	rw.bars("Most frequent terms", r.Aggregates.SkillTerms, [3]int{39, 174, 96})

	return pdf.Output(w)
}

func (rw *reportWriter) heading(title string) {
	rw.pdf.SetFont("Helvetica", "B", 12)
	rw.pdf.CellFormat(0, 7, rw.tr(title), "", 1, "L", false, 0, "")
	rw.pdf.SetFont("Helvetica", "", 8)
}

func (rw *reportWriter) empty() {
	rw.pdf.SetTextColor(120, 120, 120)
	rw.pdf.CellFormat(0, 6, "No data", "", 1, "L", false, 0, "")
	rw.pdf.SetTextColor(0, 0, 0)
	rw.pdf.Ln(3)
}

func (rw *reportWriter) histogram(title string, bins []aggregate.Bin) {
	rw.heading(title)
	if len(bins) == 0 {
		rw.empty()
		return
	}

	const height = 45.0
	maxCount := 0
	for _, b := range bins {
		maxCount = max(maxCount, b.Count)
	}

	pdf := rw.pdf
	if _, pageHeight := pdf.GetPageSize(); pdf.GetY()+height+12 > pageHeight-margin {
		pdf.AddPage()
	}

	top := pdf.GetY()
	base := top + height
	barWidth := chartWidth / float64(len(bins))

	pdf.SetDrawColor(160, 160, 160)
	pdf.Line(margin, base, margin+chartWidth, base)
	pdf.SetFillColor(52, 73, 94)
	for i, b := range bins {
		if b.Count == 0 {
			continue
		}
		h := height * float64(b.Count) / float64(maxCount)
		pdf.Rect(margin+float64(i)*barWidth+0.3, base-h, barWidth-0.6, h, "F")
	}

	pdf.SetXY(margin, base+1)
	pdf.CellFormat(chartWidth/2, 5, rw.tr(FormatEuro(bins[0].Low)), "", 0, "L", false, 0, "")
	pdf.CellFormat(chartWidth/2, 5, rw.tr(FormatEuro(bins[len(bins)-1].High)), "", 1, "R", false, 0, "")
	pdf.CellFormat(0, 5, fmt.Sprintf("tallest bar: %d listings", maxCount), "", 1, "L", false, 0, "")
	pdf.Ln(4)
}

func (rw *reportWriter) bars(title string, counts []aggregate.Count, rgb [3]int) {
	rw.heading(title)
	if len(counts) == 0 {
		rw.empty()
		return
	}

	const rowHeight = 5.0
	maxCount := counts[0].Count
	for _, c := range counts {
		maxCount = max(maxCount, c.Count)
	}

	pdf := rw.pdf
	barSpace := chartWidth - labelWidth - 12
	for _, c := range counts {
		label := fitLabel(c.Value, func(s string) bool {
			return pdf.GetStringWidth(rw.tr(s)) <= labelWidth-2
		})
		pdf.CellFormat(labelWidth, rowHeight, rw.tr(label), "", 0, "L", false, 0, "")

		x, y := pdf.GetXY()
		w := barSpace * float64(c.Count) / float64(maxCount)
		pdf.SetFillColor(rgb[0], rgb[1], rgb[2])
		pdf.Rect(x, y+0.8, w, rowHeight-1.6, "F")
		pdf.SetX(x + w + 1)
		pdf.CellFormat(12, rowHeight, fmt.Sprintf("%d", c.Count), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)
}

// fitLabel shortens s a rune at a time, ending it with "...", until fits
// accepts it.
func fitLabel(s string, fits func(string) bool) string {
	if fits(s) {
		return s
	}
	r := []rune(s)
	for n := len(r) - 1; n > 0; n-- {
		if label := string(r[:n]) + "..."; fits(label) {
			return label
		}
	}
	return "..."
}
