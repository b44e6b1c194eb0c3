package model

// DataCategory classifies a collected data type into the fixed taxonomy.
type DataCategory string

// Sensitive tier (weight 1.0).
const (
	CategoryFinancial            DataCategory = "financial"
	CategoryHealth               DataCategory = "health"
	CategoryBiometric            DataCategory = "biometric"
	CategoryGovernmentID         DataCategory = "governmentId"
	CategoryPreciseLocation      DataCategory = "preciseLocation"
	CategoryRacialEthnic         DataCategory = "racialEthnic"
	CategoryPoliticalOpinions    DataCategory = "politicalOpinions"
	CategoryReligiousBeliefs     DataCategory = "religiousBeliefs"
	CategorySexualOrientation    DataCategory = "sexualOrientation"
	CategoryTradeUnionMembership DataCategory = "tradeUnionMembership"
	CategoryGeneticData          DataCategory = "geneticData"
)

// Personal identifier tier (weight 0.8).
const (
	CategoryFullName           DataCategory = "fullName"
	CategoryEmail              DataCategory = "email"
	CategoryPhone              DataCategory = "phone"
	CategoryAddress            DataCategory = "address"
	CategoryIPAddress          DataCategory = "ipAddress"
	CategoryDeviceID           DataCategory = "deviceId"
	CategoryAccountCredentials DataCategory = "accountCredentials"
)

// Behavioral tier (weight 0.6).
const (
	CategoryBrowsingHistory DataCategory = "browsingHistory"
	CategorySearchHistory   DataCategory = "searchHistory"
	CategoryPurchaseHistory DataCategory = "purchaseHistory"
	CategoryAppUsage        DataCategory = "appUsage"
	CategoryInteractionData DataCategory = "interactionData"
	CategoryPreferences     DataCategory = "preferences"
)

// Diagnostic tier (weight 0.3).
const (
	CategoryCrashReports    DataCategory = "crashReports"
	CategoryPerformanceData DataCategory = "performanceData"
	CategoryDiagnosticLogs  DataCategory = "diagnosticLogs"
	CategorySystemActivity  DataCategory = "systemActivity"
	CategoryErrorReports    DataCategory = "errorReports"
)

// RiskLevel is the coarse risk bucket for a score or an item.
type RiskLevel string

const (
	LevelLow      RiskLevel = "low"
	LevelMedium   RiskLevel = "medium"
	LevelHigh     RiskLevel = "high"
	LevelCritical RiskLevel = "critical"
)

// DataCollectionItem is one data-handling statement extracted from a policy.
// Constructed once at ingestion, immutable afterwards.
type DataCollectionItem struct {
	Type                   string         `json:"type"`
	Purpose                string         `json:"purpose"`
	Category               DataCategory   `json:"category"`
	RetentionPeriod        string         `json:"retention_period,omitempty"`
	SharedWithThirdParties bool           `json:"shared_with_third_parties"`
	SecurityMeasures       []string       `json:"security_measures"`
	Extra                  map[string]any `json:"-"`
}

// RiskFactors holds the five independent sub-scores, each in [0,100].
type RiskFactors struct {
	DataSensitivity   float64 `json:"data_sensitivity"`
	CollectionContext float64 `json:"collection_context"`
	StorageSecurity   float64 `json:"storage_security"`
	DataSharing       float64 `json:"data_sharing"`
	UserControls      float64 `json:"user_controls"`
}

// BucketInfo is display metadata for a score range in the bucket table.
type BucketInfo struct {
	Level       RiskLevel `json:"level"`
	Color       string    `json:"color"`
	Label       string    `json:"label"`
	Description string    `json:"description"`
}

// ItemReport is the display-ready record for a single item. The Risk tag and
// RiskScore derive from the item's category weight alone, independent of the
// document score.
type ItemReport struct {
	Type      string       `json:"type"`
	Purpose   string       `json:"purpose"`
	Category  DataCategory `json:"category"`
	Risk      RiskLevel    `json:"risk"`
	RiskScore int          `json:"risk_score"`
}

// RiskAssessmentResult is the output of a single engine invocation.
//
// Level is the authoritative risk level (thresholds 75/50/25). DisplayBucket
// is looked up in a separate bucket table with different boundaries
// (0-39/40-69/70-89/90-100); the two can disagree and both are exposed so
// callers are never silently handed contradictory labels.
type RiskAssessmentResult struct {
	Score           int          `json:"risk_score"`
	Level           RiskLevel    `json:"risk_level"`
	DisplayBucket   BucketInfo   `json:"risk_display"`
	Factors         RiskFactors  `json:"risk_factors"`
	Recommendations []string     `json:"recommendations"`
	Items           []ItemReport `json:"data_collection"`
}

var itemKnownFields = map[string]bool{
	"type": true, "data_type": true,
	"purpose":                   true,
	"category":                  true,
	"retention_period":          true,
	"retentionPeriod":           true,
	"shared_with_third_parties": true,
	"sharedWithThirdParties":    true,
	"security_measures":         true,
	"securityMeasures":          true,
}

// ItemFromMap builds a DataCollectionItem from a raw extraction record with
// lenient coercion. Missing fields get the documented defaults; unknown
// fields are preserved in Extra and never influence scoring. Category is not
// populated here: the classifier owns it.
func ItemFromMap(m map[string]any) DataCollectionItem {
	item := DataCollectionItem{
		Type:             "Unknown",
		Purpose:          "Not specified",
		SecurityMeasures: []string{},
	}
	if m == nil {
		return item
	}

	if s := firstString(m, "type", "data_type"); s != "" {
		item.Type = s
	}
	if s, ok := m["purpose"].(string); ok && s != "" {
		item.Purpose = s
	}
	if s := firstString(m, "retention_period", "retentionPeriod"); s != "" {
		item.RetentionPeriod = s
	}
	item.SharedWithThirdParties = firstBool(m, "shared_with_third_parties", "sharedWithThirdParties")
	if ms := firstStrings(m, "security_measures", "securityMeasures"); ms != nil {
		item.SecurityMeasures = ms
	}

	for k, v := range m {
		if !itemKnownFields[k] {
			if item.Extra == nil {
				item.Extra = make(map[string]any)
			}
			item.Extra[k] = v
		}
	}
	return item
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func firstBool(m map[string]any, keys ...string) bool {
	for _, k := range keys {
		if b, ok := m[k].(bool); ok {
			return b
		}
	}
	return false
}

func firstStrings(m map[string]any, keys ...string) []string {
	for _, k := range keys {
		switch v := m[k].(type) {
		case []string:
			return v
		case []any:
			out := make([]string, 0, len(v))
			for _, e := range v {
				if s, ok := e.(string); ok {
					out = append(out, s)
				}
			}
			return out
		}
	}
	return nil
}
