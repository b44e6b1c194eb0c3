package risk

import (
	"strings"

	"github.com/poliscan/poliscan/internal/model"
)

// The five factor calculators. Each is a pure function over the full item
// list producing a score in [0,100]. Signals are set-wide: one matching item
// flips the flag for the whole document.

// DataSensitivity is the arithmetic mean of weight*100 over all items.
// Zero only for an empty list.
func DataSensitivity(items []model.DataCollectionItem) float64 {
	if len(items) == 0 {
		return 0
	}
	var total float64
	for _, item := range items {
		total += WeightFor(item.Category) * 100
	}
	return total / float64(len(items))
}

// CollectionContext scores purpose limitation and consent signals.
// Base 50; penalties are independent and additive.
func CollectionContext(items []model.DataCollectionItem) float64 {
	hasVaguePurposes := anyPurposeContains(items, "improve", "enhance", "personalize")
	hasExplicitConsent := anyPurposeContains(items, "consent", "agreement")

	hasMinimization := true
	for _, item := range items {
		if item.Purpose == "" || strings.Contains(strings.ToLower(item.Purpose), "all data") {
			hasMinimization = false
			break
		}
	}

	score := 50.0
	if hasVaguePurposes {
		score += 20
	}
	if !hasExplicitConsent {
		score += 15
	}
	if !hasMinimization {
		score += 15
	}
	return clamp(score)
}

// StorageSecurity scores protective controls and retention.
func StorageSecurity(items []model.DataCollectionItem) float64 {
	hasEncryption := anyMeasureContains(items, "encrypt")
	hasAccessControls := anyMeasureContains(items, "access", "authentication")
	hasIndefiniteRetention := false
	for _, item := range items {
		if item.RetentionPeriod == "" {
			continue
		}
		lower := strings.ToLower(item.RetentionPeriod)
		if strings.Contains(lower, "indefinite") || strings.Contains(lower, "forever") || strings.Contains(lower, "retained") {
			hasIndefiniteRetention = true
			break
		}
	}

	score := 50.0
	if !hasEncryption {
		score += 30
	}
	if !hasAccessControls {
		score += 20
	}
	if hasIndefiniteRetention {
		score += 20
	}
	return clamp(score)
}

// DataSharing scores third-party and cross-border exposure.
// Base 30: sharing defaults to elevated risk.
func DataSharing(items []model.DataCollectionItem) float64 {
	sharesWithThirdParties := false
	for _, item := range items {
		if item.SharedWithThirdParties {
			sharesWithThirdParties = true
			break
		}
	}
	hasInternationalTransfers := anyMeasureContains(items, "international", "transfer")
	hasAggregation := anyMeasureContains(items, "aggregate", "anonymize", "pseudonymize")

	score := 30.0
	if sharesWithThirdParties {
		score += 40
	}
	if hasInternationalTransfers {
		score += 20
	}
	if !hasAggregation {
		score += 10
	}
	return clamp(score)
}

// UserControls scores the presence of access, deletion, and opt-out rights.
// Base 70 with subtractive penalties, floored at 0.
func UserControls(items []model.DataCollectionItem) float64 {
	hasAccessRights := anyMeasureContains(items, "access", "download")
	hasDeletionRights := anyMeasureContains(items, "delete", "erasure")
	hasOptOut := anyMeasureContains(items, "opt", "preference")

	score := 70.0
	if !hasAccessRights {
		score -= 20
	}
	if !hasDeletionRights {
		score -= 20
	}
	if !hasOptOut {
		score -= 10
	}
	if score < 0 {
		return 0
	}
	return score
}

// anyMeasureContains reports whether any item has a security measure whose
// lowercased text contains any of the substrings.
func anyMeasureContains(items []model.DataCollectionItem, subs ...string) bool {
	for _, item := range items {
		for _, measure := range item.SecurityMeasures {
			lower := strings.ToLower(measure)
			for _, sub := range subs {
				if strings.Contains(lower, sub) {
					return true
				}
			}
		}
	}
	return false
}

func anyPurposeContains(items []model.DataCollectionItem, subs ...string) bool {
	for _, item := range items {
		lower := strings.ToLower(item.Purpose)
		for _, sub := range subs {
			if strings.Contains(lower, sub) {
				return true
			}
		}
	}
	return false
}

func clamp(score float64) float64 {
	if score > 100 {
		return 100
	}
	return score
}
