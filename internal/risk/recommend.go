package risk

import (
	"strings"

	"github.com/poliscan/poliscan/internal/model"
)

// Advisory text for the recommendation rule chain.
const (
	recCriticalBanner = "Critical: This privacy policy indicates significant privacy risks. Consider consulting with a privacy professional."
	recHighBanner     = "High Risk: This privacy policy has concerning elements. Review carefully before proceeding."
	recSensitivity    = "High sensitivity data detected: Consider if all collected data is necessary for the service's functionality."
	recStorage        = "Security concerns: The policy indicates potential security vulnerabilities in data storage and handling."
	recSharing        = "Extensive data sharing: Your data may be shared with multiple third parties. Review the 'Third-Party Sharing' section carefully."
	recControls       = "Limited user controls: The policy provides limited options for controlling your data. Consider requesting additional controls from the service provider."
	recTransfers      = "International data transfers detected: Your data may be transferred to and processed in countries with different data protection laws."
)

// highRiskCategories trigger the sensitive-collection advisory (rule 6).
var highRiskCategories = map[model.DataCategory]bool{
	model.CategoryFinancial:    true,
	model.CategoryHealth:       true,
	model.CategoryBiometric:    true,
	model.CategoryGovernmentID: true,
}

// Recommend runs the fixed-priority rule chain. Each rule appends at most one
// advisory; output order is rule order and nothing is deduplicated, since
// consumers may depend on the declared priority ordering.
func Recommend(score int, factors model.RiskFactors, items []model.DataCollectionItem) []string {
	recs := []string{}

	// Rule 1: severity banner. Critical and high are mutually exclusive,
	// independent of everything below.
	if score >= 75 {
		recs = append(recs, recCriticalBanner)
	} else if score >= 50 {
		recs = append(recs, recHighBanner)
	}

	if factors.DataSensitivity > 70 {
		recs = append(recs, recSensitivity)
	}
	if factors.StorageSecurity > 70 {
		recs = append(recs, recStorage)
	}
	if factors.DataSharing > 70 {
		recs = append(recs, recSharing)
	}
	if factors.UserControls < 40 {
		recs = append(recs, recControls)
	}

	// Rule 6: list distinct type labels of high-risk items, first-seen order.
	var seen map[string]bool
	var types []string
	for _, item := range items {
		if !highRiskCategories[item.Category] {
			continue
		}
		if seen == nil {
			seen = make(map[string]bool)
		}
		if !seen[item.Type] {
			seen[item.Type] = true
			types = append(types, item.Type)
		}
	}
	if len(types) > 0 {
		recs = append(recs, "Sensitive data collection detected: "+strings.Join(types, ", ")+". Ensure you understand why this data is being collected.")
	}

	// Rule 7: recomputed independently from the dataSharing factor's check.
	if anyMeasureContains(items, "international", "transfer") {
		recs = append(recs, recTransfers)
	}

	return recs
}
