// Package risk implements the deterministic risk assessment engine:
// category classification, the five factor calculators, score aggregation,
// and recommendation generation. Pure functions over immutable inputs,
// no I/O, safe for concurrent use.
package risk

import (
	"math"

	"github.com/poliscan/poliscan/internal/model"
)

// fallbackWeight applies to categories missing from the table. The table
// covers the full taxonomy, so this only applies to future additions.
const fallbackWeight = 0.5

// Weights maps each taxonomy category to its sensitivity weight.
// Process-wide constant, never mutated.
var Weights = map[model.DataCategory]float64{
	// Sensitive data (highest risk)
	model.CategoryFinancial:            1.0,
	model.CategoryHealth:               1.0,
	model.CategoryBiometric:            1.0,
	model.CategoryGovernmentID:         1.0,
	model.CategoryPreciseLocation:      1.0,
	model.CategoryRacialEthnic:         1.0,
	model.CategoryPoliticalOpinions:    1.0,
	model.CategoryReligiousBeliefs:     1.0,
	model.CategorySexualOrientation:    1.0,
	model.CategoryTradeUnionMembership: 1.0,
	model.CategoryGeneticData:          1.0,

	// Personal identifiers (high risk)
	model.CategoryFullName:           0.8,
	model.CategoryEmail:              0.8,
	model.CategoryPhone:              0.8,
	model.CategoryAddress:            0.8,
	model.CategoryIPAddress:          0.8,
	model.CategoryDeviceID:           0.8,
	model.CategoryAccountCredentials: 0.8,

	// Behavioral data (medium risk)
	model.CategoryBrowsingHistory: 0.6,
	model.CategorySearchHistory:   0.6,
	model.CategoryPurchaseHistory: 0.6,
	model.CategoryAppUsage:        0.6,
	model.CategoryInteractionData: 0.6,
	model.CategoryPreferences:     0.6,

	// Diagnostic/technical data (low risk)
	model.CategoryCrashReports:    0.3,
	model.CategoryPerformanceData: 0.3,
	model.CategoryDiagnosticLogs:  0.3,
	model.CategorySystemActivity:  0.3,
	model.CategoryErrorReports:    0.3,
}

// WeightFor returns the sensitivity weight for a category.
func WeightFor(c model.DataCategory) float64 {
	if w, ok := Weights[c]; ok {
		return w
	}
	return fallbackWeight
}

// ItemRiskScore is the per-item display score: round(weight*100).
func ItemRiskScore(c model.DataCategory) int {
	return int(math.Round(WeightFor(c) * 100))
}

// bucket is one row of the display bucket table.
type bucket struct {
	min, max int
	info     model.BucketInfo
}

// Display bucket table. The boundaries differ from the authoritative level
// thresholds in Assess (75/50/25); both schemes are exposed separately in
// the result.
var buckets = []bucket{
	{0, 39, model.BucketInfo{
		Level:       model.LevelLow,
		Color:       "green",
		Label:       "Low Risk",
		Description: "Minimal privacy concerns. Standard data collection with good security practices.",
	}},
	{40, 69, model.BucketInfo{
		Level:       model.LevelMedium,
		Color:       "yellow",
		Label:       "Medium Risk",
		Description: "Moderate privacy concerns. Review data collection practices and sharing policies.",
	}},
	{70, 89, model.BucketInfo{
		Level:       model.LevelHigh,
		Color:       "orange",
		Label:       "High Risk",
		Description: "Significant privacy concerns. Exercise caution and review the policy carefully.",
	}},
	{90, 100, model.BucketInfo{
		Level:       model.LevelCritical,
		Color:       "red",
		Label:       "Critical Risk",
		Description: "Severe privacy concerns. Consider avoiding this service or consulting a privacy professional.",
	}},
}

// BucketFor returns display metadata for the bucket containing score.
// Scores outside [0,100] clamp to the nearest bucket.
func BucketFor(score int) model.BucketInfo {
	for _, b := range buckets {
		if score >= b.min && score <= b.max {
			return b.info
		}
	}
	if score < 0 {
		return buckets[0].info
	}
	return buckets[len(buckets)-1].info
}

// ItemRiskLevel is the per-item display tag: the bucket of weight*100.
// It reflects category sensitivity alone, independent of the document score.
func ItemRiskLevel(c model.DataCategory) model.RiskLevel {
	return BucketFor(ItemRiskScore(c)).Level
}
