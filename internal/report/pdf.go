package report

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"carboquiz/internal/domain"
	"carboquiz/internal/scoring"
)

// Report carries everything the PDF and email body render. All figures come
// from the scoring engine; nothing here recomputes them.
type Report struct {
	PlayerName      string
	Email           string
	Totals          scoring.Totals
	AnnualTonnes    float64
	TreesToOffset   int
	Rating          scoring.Rating
	Recommendations []string
	Date            string
}

// BuildReport derives a Report from a session's answers.
func BuildReport(name, email string, answers []domain.Answer, now time.Time) Report {
	totals := scoring.Aggregate(answers)
	tonnes := scoring.AnnualTonnes(totals.TotalCarbon)
	trees := scoring.TreesToOffset(tonnes)
	rating := scoring.EffortRating(scoring.PercentageOffset(trees, tonnes))
	return Report{
		PlayerName:      name,
		Email:           email,
		Totals:          totals,
		AnnualTonnes:    tonnes,
		TreesToOffset:   trees,
		Rating:          rating,
		Recommendations: scoring.Recommendations(scoring.TopEmittingChoices(answers, 5)),
		Date:            now.Format("2 January 2006"),
	}
}

// BuildPDF renders the report as an A4 document.
func BuildPDF(r Report) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 20)
	pdf.Cell(0, 12, "CarboQuiz Carbon Footprint Report")
	pdf.Ln(16)

	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Prepared for %s on %s", r.PlayerName, r.Date))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Your Year in Carbon")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	lines := []string{
		fmt.Sprintf("Total footprint: %.0f kg CO2e (%.2f tonnes) per year", r.Totals.TotalCarbon, r.AnnualTonnes),
		fmt.Sprintf("Tree equivalent of your choices: %.0f trees", r.Totals.TotalTrees),
		fmt.Sprintf("Trees needed to offset your footprint: %d", r.TreesToOffset),
		fmt.Sprintf("Effort rating: %s (%s)", r.Rating.Label, stars(r.Rating.Stars)),
	}
	for _, line := range lines {
		pdf.Cell(0, 8, line)
		pdf.Ln(8)
	}
	pdf.Ln(4)
	pdf.MultiCell(0, 6, r.Rating.Message, "", "L", false)
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 14)
	pdf.Cell(0, 10, "Where to Focus Next")
	pdf.Ln(10)

	for i, rec := range r.Recommendations {
		parts := strings.SplitN(rec, "\n", 3)
		pdf.SetFont("Arial", "B", 11)
		pdf.MultiCell(0, 6, fmt.Sprintf("%d. %s", i+1, parts[0]), "", "L", false)
		pdf.SetFont("Arial", "I", 10)
		if len(parts) > 1 {
			pdf.MultiCell(0, 5, "Your choice: "+parts[1], "", "L", false)
		}
		pdf.SetFont("Arial", "", 10)
		if len(parts) > 2 {
			pdf.MultiCell(0, 5, parts[2], "", "L", false)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > 5 {
		n = 5
	}
	return strings.Repeat("*", n) + strings.Repeat("-", 5-n) + " " + fmt.Sprintf("%d/5", n)
}
