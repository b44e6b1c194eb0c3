package risk

import (
	"math"

	"github.com/poliscan/poliscan/internal/model"
)

// Aggregation weights for the five factors. Must sum to 1.
const (
	weightDataSensitivity   = 0.4
	weightCollectionContext = 0.2
	weightStorageSecurity   = 0.2
	weightDataSharing       = 0.15
	weightUserControls      = 0.05
)

// Assess runs the full pipeline over classified items: factors, aggregate
// score, level, display bucket, per-item reports, recommendations.
// Deterministic: identical ordered input yields identical output.
func Assess(items []model.DataCollectionItem) model.RiskAssessmentResult {
	if len(items) == 0 {
		return model.RiskAssessmentResult{
			Score:           0,
			Level:           model.LevelLow,
			DisplayBucket:   BucketFor(0),
			Factors:         model.RiskFactors{},
			Recommendations: []string{},
			Items:           []model.ItemReport{},
		}
	}

	factors := model.RiskFactors{
		DataSensitivity:   DataSensitivity(items),
		CollectionContext: CollectionContext(items),
		StorageSecurity:   StorageSecurity(items),
		DataSharing:       DataSharing(items),
		UserControls:      UserControls(items),
	}

	weighted := factors.DataSensitivity*weightDataSensitivity +
		factors.CollectionContext*weightCollectionContext +
		factors.StorageSecurity*weightStorageSecurity +
		factors.DataSharing*weightDataSharing +
		factors.UserControls*weightUserControls

	// The weighted sum is bounded by 100 already; the clamp guards the
	// invariant, it is not a normal-path correction.
	score := int(math.Round(weighted))
	if score > 100 {
		score = 100
	}

	return model.RiskAssessmentResult{
		Score:           score,
		Level:           levelFor(score),
		DisplayBucket:   BucketFor(score),
		Factors:         factors,
		Recommendations: Recommend(score, factors, items),
		Items:           itemReports(items),
	}
}

// levelFor applies the authoritative level thresholds.
func levelFor(score int) model.RiskLevel {
	switch {
	case score >= 75:
		return model.LevelCritical
	case score >= 50:
		return model.LevelHigh
	case score >= 25:
		return model.LevelMedium
	default:
		return model.LevelLow
	}
}

func itemReports(items []model.DataCollectionItem) []model.ItemReport {
	reports := make([]model.ItemReport, len(items))
	for i, item := range items {
		reports[i] = model.ItemReport{
			Type:      item.Type,
			Purpose:   item.Purpose,
			Category:  item.Category,
			Risk:      ItemRiskLevel(item.Category),
			RiskScore: ItemRiskScore(item.Category),
		}
	}
	return reports
}
