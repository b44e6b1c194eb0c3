package risk

import (
	"reflect"
	"testing"

	"github.com/poliscan/poliscan/internal/model"
)

func TestAssessEmptyListZeroResult(t *testing.T) {
	result := Assess(nil)
	if result.Score != 0 {
		t.Errorf("expected score 0, got %d", result.Score)
	}
	if result.Level != model.LevelLow {
		t.Errorf("expected level low, got %s", result.Level)
	}
	if result.Factors != (model.RiskFactors{}) {
		t.Errorf("expected zero factors, got %+v", result.Factors)
	}
	if len(result.Recommendations) != 0 {
		t.Errorf("expected no recommendations, got %v", result.Recommendations)
	}
	if len(result.Items) != 0 {
		t.Errorf("expected no item reports, got %v", result.Items)
	}
	if result.DisplayBucket.Level != model.LevelLow {
		t.Errorf("expected low display bucket, got %s", result.DisplayBucket.Level)
	}
}

func TestAssessFinancialScenario(t *testing.T) {
	items := []model.DataCollectionItem{{
		Type:             "Financial Account Number",
		Purpose:          "Process payments",
		Category:         Classify("Financial Account Number"),
		SecurityMeasures: []string{"Encryption in transit", "Access controls"},
	}}

	result := Assess(items)

	if items[0].Category != model.CategoryFinancial {
		t.Fatalf("expected financial category, got %s", items[0].Category)
	}
	wantFactors := model.RiskFactors{
		DataSensitivity:   100,
		CollectionContext: 65,
		StorageSecurity:   50,
		DataSharing:       40,
		UserControls:      40,
	}
	if result.Factors != wantFactors {
		t.Errorf("factors mismatch:\n got %+v\nwant %+v", result.Factors, wantFactors)
	}
	if result.Score != 71 {
		t.Errorf("expected score 71, got %d", result.Score)
	}
	if result.Level != model.LevelHigh {
		t.Errorf("expected level high, got %s", result.Level)
	}
	// 71 sits in the [70,89] display bucket, so the schemes agree here.
	if result.DisplayBucket.Level != model.LevelHigh {
		t.Errorf("expected high display bucket, got %s", result.DisplayBucket.Level)
	}

	want := []string{
		recHighBanner,
		recSensitivity,
		"Sensitive data collection detected: Financial Account Number. Ensure you understand why this data is being collected.",
	}
	if !reflect.DeepEqual(result.Recommendations, want) {
		t.Errorf("recommendations mismatch:\n got %v\nwant %v", result.Recommendations, want)
	}

	if len(result.Items) != 1 {
		t.Fatalf("expected 1 item report, got %d", len(result.Items))
	}
	report := result.Items[0]
	if report.RiskScore != 100 || report.Risk != model.LevelCritical {
		t.Errorf("expected per-item critical/100 for financial, got %s/%d", report.Risk, report.RiskScore)
	}
}

func TestAssessDeterministic(t *testing.T) {
	items := []model.DataCollectionItem{
		{Type: "Location Data", Purpose: "Provide location-based services", Category: model.CategoryPreciseLocation, SharedWithThirdParties: true, SecurityMeasures: []string{"Encryption in transit"}},
		{Type: "Email Address", Purpose: "Account creation and communication", Category: model.CategoryEmail, SecurityMeasures: []string{"Hashed storage", "Access controls"}},
		{Type: "Usage Data", Purpose: "Improve our services", Category: model.CategoryAppUsage, SharedWithThirdParties: true, SecurityMeasures: []string{"Anonymization", "Aggregation"}},
	}
	first := Assess(items)
	second := Assess(items)
	if !reflect.DeepEqual(first, second) {
		t.Error("identical ordered input must yield identical results")
	}
}

func TestAssessScoreBounded(t *testing.T) {
	worst := make([]model.DataCollectionItem, 5)
	for i := range worst {
		worst[i] = model.DataCollectionItem{
			Type:                   "Health Records",
			Purpose:                "improve using all data",
			Category:               model.CategoryHealth,
			RetentionPeriod:        "retained forever",
			SharedWithThirdParties: true,
			SecurityMeasures:       []string{"international transfer"},
		}
	}
	result := Assess(worst)
	if result.Score < 0 || result.Score > 100 {
		t.Errorf("score out of range: %d", result.Score)
	}
	if result.Level != model.LevelCritical {
		t.Errorf("expected critical for worst case, got %s (score %d)", result.Level, result.Score)
	}
}

func TestLevelSchemesCanDisagree(t *testing.T) {
	// A score of 30 is medium under the authoritative thresholds but lands
	// in the low [0,39] display bucket. Both are exposed, neither is hidden.
	if got := levelFor(30); got != model.LevelMedium {
		t.Errorf("expected medium for 30, got %s", got)
	}
	if got := BucketFor(30).Level; got != model.LevelLow {
		t.Errorf("expected low display bucket for 30, got %s", got)
	}
}

func TestBucketBoundaries(t *testing.T) {
	tests := []struct {
		score int
		want  model.RiskLevel
	}{
		{0, model.LevelLow}, {39, model.LevelLow},
		{40, model.LevelMedium}, {69, model.LevelMedium},
		{70, model.LevelHigh}, {89, model.LevelHigh},
		{90, model.LevelCritical}, {100, model.LevelCritical},
		{-5, model.LevelLow}, {150, model.LevelCritical},
	}
	for _, tt := range tests {
		if got := BucketFor(tt.score).Level; got != tt.want {
			t.Errorf("BucketFor(%d) = %s, want %s", tt.score, got, tt.want)
		}
	}
}

func TestItemRiskReflectsCategoryTierOnly(t *testing.T) {
	tests := []struct {
		cat       model.DataCategory
		wantScore int
		wantLevel model.RiskLevel
	}{
		{model.CategoryBiometric, 100, model.LevelCritical},
		{model.CategoryPhone, 80, model.LevelHigh},
		{model.CategoryPreferences, 60, model.LevelMedium},
		{model.CategoryCrashReports, 30, model.LevelLow},
	}
	for _, tt := range tests {
		if got := ItemRiskScore(tt.cat); got != tt.wantScore {
			t.Errorf("ItemRiskScore(%s) = %d, want %d", tt.cat, got, tt.wantScore)
		}
		if got := ItemRiskLevel(tt.cat); got != tt.wantLevel {
			t.Errorf("ItemRiskLevel(%s) = %s, want %s", tt.cat, got, tt.wantLevel)
		}
	}
}
