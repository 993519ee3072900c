// Package scoring is the single source of truth for carbon arithmetic.
// Every presentation surface (results API, email body, PDF report) calls
// these functions; none reimplements them.
package scoring

import (
	"fmt"
	"math"
	"sort"

	"carboquiz/internal/domain"
)

// TreeSequestrationTonnes is the fixed sequestration rate used throughout:
// tonnes of CO2 absorbed per tree per year.
const TreeSequestrationTonnes = 0.02

// DefaultImprovement is used when a choice has no improvement text of its own.
const DefaultImprovement = "Consider more eco-friendly alternatives for this activity."

// ReferenceDistanceKm is the distance the catalog's travel option values are
// defined for.
const ReferenceDistanceKm = 10.0

// Totals holds exact sums over a session's answers. No rounding happens here;
// display layers round as they see fit.
type Totals struct {
	TotalCarbon float64 `json:"totalCarbon"`
	TotalTrees  float64 `json:"totalTrees"`
}

// Aggregate sums carbon and tree-equivalent values across all selected
// options of all answers.
func Aggregate(answers []domain.Answer) Totals {
	var t Totals
	for _, answer := range answers {
		for _, opt := range answer.Options {
			t.TotalCarbon += opt.CarbonFootprint
			t.TotalTrees += opt.TreeEquivalent
		}
	}
	return t
}

// AnnualTonnes converts a kg total to tonnes.
func AnnualTonnes(totalCarbonKg float64) float64 {
	return totalCarbonKg / 1000
}

// TreesToOffset returns how many trees would offset the given annual tonnage.
// Always a non-negative integer.
func TreesToOffset(annualTonnes float64) int {
	if annualTonnes <= 0 {
		return 0
	}
	return int(math.Floor(annualTonnes / TreeSequestrationTonnes))
}

// PercentageOffset is the share of annual emissions the given trees would
// absorb, guarded to 0 when there are no emissions.
func PercentageOffset(trees int, annualTonnes float64) float64 {
	if annualTonnes <= 0 {
		return 0
	}
	return float64(trees) * TreeSequestrationTonnes / annualTonnes * 100
}

// Rating is the bucketed effort verdict shown with a star count out of 5.
type Rating struct {
	Label   string `json:"label"`
	Message string `json:"message"`
	Stars   int    `json:"stars"`
}

// EffortRating buckets a percentage offset. Thresholds are closed below and
// evaluated top-down; the first match wins.
func EffortRating(percentageOffset float64) Rating {
	switch {
	case percentageOffset >= 50:
		return Rating{Label: "Excellent", Message: "Your choices offset most of your footprint. Outstanding effort!", Stars: 5}
	case percentageOffset >= 20:
		return Rating{Label: "Good", Message: "You're well on your way to a balanced footprint.", Stars: 4}
	case percentageOffset >= 10:
		return Rating{Label: "Fair", Message: "A solid start with clear room to grow.", Stars: 3}
	case percentageOffset >= 5:
		return Rating{Label: "Needs Work", Message: "A few targeted changes would move the needle quickly.", Stars: 2}
	default:
		return Rating{Label: "Beginning", Message: "Every journey starts somewhere. Pick one change to begin.", Stars: 1}
	}
}

// Choice is a flattened selected option, carrying enough context to render a
// recommendation.
type Choice struct {
	QuestionText    string  `json:"questionText"`
	OptionText      string  `json:"optionText"`
	CarbonFootprint float64 `json:"carbonFootprint"`
	Improvement     string  `json:"improvement"`
}

// TopEmittingChoices flattens all selected options across answers, sorts
// descending by footprint and returns the first n. The sort is stable: equal
// footprints keep their original answer/option order.
func TopEmittingChoices(answers []domain.Answer, n int) []Choice {
	choices := make([]Choice, 0, len(answers))
	for _, answer := range answers {
		for _, opt := range answer.Options {
			choices = append(choices, Choice{
				QuestionText:    answer.QuestionText,
				OptionText:      opt.Text,
				CarbonFootprint: opt.CarbonFootprint,
				Improvement:     opt.Improvement,
			})
		}
	}
	sort.SliceStable(choices, func(i, j int) bool {
		return choices[i].CarbonFootprint > choices[j].CarbonFootprint
	})
	if n > 0 && len(choices) > n {
		choices = choices[:n]
	}
	return choices
}

// Recommendations renders each choice as a three-line text block.
func Recommendations(choices []Choice) []string {
	recs := make([]string, 0, len(choices))
	for _, c := range choices {
		improvement := c.Improvement
		if improvement == "" {
			improvement = DefaultImprovement
		}
		recs = append(recs, fmt.Sprintf("%s\n%s\n%s", c.QuestionText, c.OptionText, improvement))
	}
	return recs
}

// AdjustForDistance scales a travel option's values from the catalog's
// reference distance to the player's distance, rounding to the nearest whole
// kg/tree. The reference distance itself is a fixed point.
func AdjustForDistance(opt domain.Option, distanceKm float64) domain.Option {
	adjusted := opt
	adjusted.CarbonFootprint = math.Round(opt.CarbonFootprint * distanceKm / ReferenceDistanceKm)
	adjusted.TreeEquivalent = math.Round(opt.TreeEquivalent * distanceKm / ReferenceDistanceKm)
	return adjusted
}

// BestChoice returns the text of the single lowest-footprint option selected
// across the whole session. Earlier answers win ties.
func BestChoice(answers []domain.Answer) string {
	best := ""
	bestCarbon := math.Inf(1)
	for _, answer := range answers {
		for _, opt := range answer.Options {
			if opt.CarbonFootprint < bestCarbon {
				bestCarbon = opt.CarbonFootprint
				best = opt.Text
			}
		}
	}
	return best
}
