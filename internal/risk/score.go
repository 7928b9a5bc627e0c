package risk

import "github.com/wisespend/installment-service/internal/models"

// Severity weights. Summed and capped at 100, so a single critical factor
// lands in orange; red needs two criticals' worth of accumulated weight.
var severityWeights = map[models.Severity]float64{
	models.SeverityCritical: 35,
	models.SeverityHigh:     20,
	models.SeverityMedium:   10,
	models.SeverityLow:      5,
}

// Classification thresholds, inclusive lower bounds.
const (
	scoreRed    = 70
	scoreOrange = 40
	scoreYellow = 15
)

// Score aggregates factors into a numeric score in [0,100] and its risk
// level. Adding a factor never decreases the score. A critical factor floors
// the level at orange regardless of the numeric score: a lone critical (35)
// must never read as merely yellow.
func Score(factors []models.RiskFactor) (float64, models.RiskLevel) {
	score := 0.0
	hasCritical := false
	for _, f := range factors {
		score += severityWeights[f.Severity]
		if f.Severity == models.SeverityCritical {
			hasCritical = true
		}
	}
	if score > 100 {
		score = 100
	}

	level := Classify(score)
	if hasCritical && level.Rank() < models.RiskLevelOrange.Rank() {
		level = models.RiskLevelOrange
	}
	return score, level
}

// Classify maps a score to its risk level.
func Classify(score float64) models.RiskLevel {
	switch {
	case score >= scoreRed:
		return models.RiskLevelRed
	case score >= scoreOrange:
		return models.RiskLevelOrange
	case score >= scoreYellow:
		return models.RiskLevelYellow
	default:
		return models.RiskLevelGreen
	}
}
