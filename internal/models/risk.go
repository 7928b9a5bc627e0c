package models

// Severity tags how strongly a risk factor weighs on the assessment.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities: low < medium < high < critical.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// RiskFactor is a named condition detected from the financial snapshot.
type RiskFactor struct {
	Name           string   `json:"factor_name"`
	Severity       Severity `json:"severity"`
	Message        string   `json:"message"`
	SupportingStat string   `json:"supporting_stat,omitempty"`
}

// RiskLevel is the overall classification: green < yellow < orange < red.
type RiskLevel string

const (
	RiskLevelGreen  RiskLevel = "green"
	RiskLevelYellow RiskLevel = "yellow"
	RiskLevelOrange RiskLevel = "orange"
	RiskLevelRed    RiskLevel = "red"
)

// Rank orders risk levels ascending.
func (l RiskLevel) Rank() int {
	switch l {
	case RiskLevelRed:
		return 3
	case RiskLevelOrange:
		return 2
	case RiskLevelYellow:
		return 1
	default:
		return 0
	}
}

// ShouldProceed reports whether the purchase is advisable (green or yellow).
func (l RiskLevel) ShouldProceed() bool {
	return l == RiskLevelGreen || l == RiskLevelYellow
}
