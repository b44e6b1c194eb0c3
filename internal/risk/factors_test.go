package risk

import (
	"testing"

	"github.com/poliscan/poliscan/internal/model"
)

func item(mutate func(*model.DataCollectionItem)) model.DataCollectionItem {
	it := model.DataCollectionItem{
		Type:             "Email Address",
		Purpose:          "Account creation",
		Category:         model.CategoryEmail,
		SecurityMeasures: []string{},
	}
	if mutate != nil {
		mutate(&it)
	}
	return it
}

func TestDataSensitivityMean(t *testing.T) {
	items := []model.DataCollectionItem{
		item(func(i *model.DataCollectionItem) { i.Category = model.CategoryFinancial }), // 100
		item(func(i *model.DataCollectionItem) { i.Category = model.CategoryEmail }),     // 80
		item(func(i *model.DataCollectionItem) { i.Category = model.CategoryAppUsage }),  // 60
	}
	if got := DataSensitivity(items); got != 80 {
		t.Errorf("expected mean 80, got %f", got)
	}
	if got := DataSensitivity(nil); got != 0 {
		t.Errorf("expected 0 for empty list, got %f", got)
	}
	// Duplicate categories count per item, not per distinct category.
	items = append(items, items[0])
	if got := DataSensitivity(items); got != 85 {
		t.Errorf("expected 85 with duplicate financial item, got %f", got)
	}
}

func TestCollectionContextPenalties(t *testing.T) {
	tests := []struct {
		name  string
		items []model.DataCollectionItem
		want  float64
	}{
		{
			"consent present, nothing vague",
			[]model.DataCollectionItem{item(func(i *model.DataCollectionItem) {
				i.Purpose = "Processing with your consent"
			})},
			50,
		},
		{
			"no consent signal anywhere",
			[]model.DataCollectionItem{item(nil)},
			65,
		},
		{
			"vague purpose adds 20",
			[]model.DataCollectionItem{item(func(i *model.DataCollectionItem) {
				i.Purpose = "Improve our services per user agreement"
			})},
			70,
		},
		{
			"one empty purpose breaks minimization for the whole set",
			[]model.DataCollectionItem{
				item(func(i *model.DataCollectionItem) { i.Purpose = "With consent" }),
				item(func(i *model.DataCollectionItem) { i.Purpose = "" }),
			},
			65,
		},
		{
			"all penalties stack",
			[]model.DataCollectionItem{
				item(func(i *model.DataCollectionItem) { i.Purpose = "Personalize content" }),
				item(func(i *model.DataCollectionItem) { i.Purpose = "We use all data" }),
			},
			100,
		},
	}
	for _, tt := range tests {
		if got := CollectionContext(tt.items); got != tt.want {
			t.Errorf("%s: expected %f, got %f", tt.name, tt.want, got)
		}
	}
}

func TestStorageSecurityPenalties(t *testing.T) {
	// Nothing stated → 50 + 30 + 20 = 100
	if got := StorageSecurity([]model.DataCollectionItem{item(nil)}); got != 100 {
		t.Errorf("expected 100 with no measures, got %f", got)
	}

	items := []model.DataCollectionItem{item(func(i *model.DataCollectionItem) {
		i.SecurityMeasures = []string{"Encryption at rest", "Access controls"}
	})}
	if got := StorageSecurity(items); got != 50 {
		t.Errorf("expected 50 with encryption and access controls, got %f", got)
	}

	items[0].RetentionPeriod = "Retained indefinitely"
	if got := StorageSecurity(items); got != 70 {
		t.Errorf("expected 70 with indefinite retention, got %f", got)
	}
}

func TestDataSharingPenalties(t *testing.T) {
	base := []model.DataCollectionItem{item(func(i *model.DataCollectionItem) {
		i.SecurityMeasures = []string{"Anonymized and aggregated data"}
	})}
	if got := DataSharing(base); got != 30 {
		t.Errorf("expected base 30 with aggregation, got %f", got)
	}

	// Matching is literal substring: "Anonymization" contains neither
	// "anonymize" nor "aggregate", so the no-aggregation penalty applies.
	nearMiss := []model.DataCollectionItem{item(func(i *model.DataCollectionItem) {
		i.SecurityMeasures = []string{"Anonymization"}
	})}
	if got := DataSharing(nearMiss); got != 40 {
		t.Errorf("expected 40 when no aggregation substring matches, got %f", got)
	}

	shared := []model.DataCollectionItem{item(func(i *model.DataCollectionItem) {
		i.SharedWithThirdParties = true
		i.SecurityMeasures = []string{"International transfer safeguards"}
	})}
	// 30 + 40 shared + 20 transfer + 10 no-aggregation = 100
	if got := DataSharing(shared); got != 100 {
		t.Errorf("expected clamp at 100, got %f", got)
	}
}

func TestDataSharingMonotonicInSharedFlag(t *testing.T) {
	// Scenario C: flipping sharedWithThirdParties to true never decreases
	// the factor, all else equal.
	items := []model.DataCollectionItem{item(nil), item(nil)}
	before := DataSharing(items)
	items[1].SharedWithThirdParties = true
	after := DataSharing(items)
	if after < before {
		t.Errorf("dataSharing decreased after sharing flag set: %f -> %f", before, after)
	}
}

func TestUserControlsFloor(t *testing.T) {
	// No controls anywhere → 70 - 20 - 20 - 10 = 20
	if got := UserControls([]model.DataCollectionItem{item(nil)}); got != 20 {
		t.Errorf("expected 20 with no controls, got %f", got)
	}

	full := []model.DataCollectionItem{item(func(i *model.DataCollectionItem) {
		i.SecurityMeasures = []string{"Data access and download", "Delete on request", "Opt-out available"}
	})}
	if got := UserControls(full); got != 70 {
		t.Errorf("expected 70 with all controls, got %f", got)
	}

	// "Deletion on request" does not contain the "delete" substring, so the
	// deletion-rights credit is not granted.
	nearMiss := []model.DataCollectionItem{item(func(i *model.DataCollectionItem) {
		i.SecurityMeasures = []string{"Data access and download", "Deletion on request", "Opt-out available"}
	})}
	if got := UserControls(nearMiss); got != 50 {
		t.Errorf("expected 50 when no deletion substring matches, got %f", got)
	}
}

func TestFactorBounds(t *testing.T) {
	lists := [][]model.DataCollectionItem{
		nil,
		{item(nil)},
		{
			item(func(i *model.DataCollectionItem) {
				i.Category = model.CategoryFinancial
				i.Purpose = "improve everything with all data"
				i.RetentionPeriod = "forever"
				i.SharedWithThirdParties = true
				i.SecurityMeasures = []string{"international transfer"}
			}),
		},
	}
	for _, items := range lists {
		for name, got := range map[string]float64{
			"dataSensitivity":   DataSensitivity(items),
			"collectionContext": CollectionContext(items),
			"storageSecurity":   StorageSecurity(items),
			"dataSharing":       DataSharing(items),
			"userControls":      UserControls(items),
		} {
			if got < 0 || got > 100 {
				t.Errorf("%s out of [0,100]: %f", name, got)
			}
		}
	}
}
