package risk

import (
	"regexp"

	"github.com/poliscan/poliscan/internal/model"
)

// FallbackCategory receives every label the cascade cannot place. Preferences
// sits in the medium tier, so unclassifiable data lands in a mid-sensitivity
// bucket rather than a true unknown.
const FallbackCategory = model.CategoryPreferences

// catRule pairs one pattern with its category. Rules are evaluated in slice
// order; the first match wins.
type catRule struct {
	re  *regexp.Regexp
	cat model.DataCategory
}

// specialTrigger gates the nested special-category sub-cascade.
var specialTrigger = regexp.MustCompile(`(?i)(race|ethnic|religion|belief|political|union|sexual|orientation)`)

// specialRules disambiguate within the shared trigger set, in fixed sub-order.
var specialRules = []catRule{
	{regexp.MustCompile(`(?i)(race|ethnic)`), model.CategoryRacialEthnic},
	{regexp.MustCompile(`(?i)(political|election)`), model.CategoryPoliticalOpinions},
	{regexp.MustCompile(`(?i)(religion|belief|caste)`), model.CategoryReligiousBeliefs},
	{regexp.MustCompile(`(?i)(union|labor)`), model.CategoryTradeUnionMembership},
	{regexp.MustCompile(`(?i)(sexual|orientation|lgbtq)`), model.CategorySexualOrientation},
}

// Cascade order is priority order: sensitive tier first, then identifiers,
// behavioral, diagnostic. Must not be reordered.
var sensitiveRules = []catRule{
	{regexp.MustCompile(`(?i)(financial|bank|credit|payment|transaction)`), model.CategoryFinancial},
	{regexp.MustCompile(`(?i)(health|medical|prescription|diagnos)`), model.CategoryHealth},
	{regexp.MustCompile(`(?i)(biometric|fingerprint|face|voice|retina)`), model.CategoryBiometric},
	{regexp.MustCompile(`(?i)(ssn|social security|passport|drivers? ?license|government["\s-]?id)`), model.CategoryGovernmentID},
	{regexp.MustCompile(`(?i)(precise|exact|gps|geolocation)`), model.CategoryPreciseLocation},
}

var geneticRule = catRule{regexp.MustCompile(`(?i)(genetic|dna|rna)`), model.CategoryGeneticData}

var identifierRules = []catRule{
	{regexp.MustCompile(`(?i)(name|fullname|first[\s-]?name|last[\s-]?name)`), model.CategoryFullName},
	{regexp.MustCompile(`(?i)(email|e-?mail|e ?mail)`), model.CategoryEmail},
	{regexp.MustCompile(`(?i)(phone|mobile|cell|telephone)`), model.CategoryPhone},
	{regexp.MustCompile(`(?i)(address|street|city|state|zip|postal|country)`), model.CategoryAddress},
	{regexp.MustCompile(`(?i)(ip\s*address|ipv4|ipv6|internet protocol)`), model.CategoryIPAddress},
	{regexp.MustCompile(`(?i)(device[\s-]?id|advertising[\s-]?id|idfa|gaid)`), model.CategoryDeviceID},
	{regexp.MustCompile(`(?i)(username|login|password|credential|auth)`), model.CategoryAccountCredentials},
}

var behavioralRules = []catRule{
	{regexp.MustCompile(`(?i)(brows(?:ing)?[\s-]?history|visited|urls?|websites?)`), model.CategoryBrowsingHistory},
	{regexp.MustCompile(`(?i)(search[\s-]?history|queries|searches)`), model.CategorySearchHistory},
	{regexp.MustCompile(`(?i)(purchase[\s-]?history|transactions?|orders?)`), model.CategoryPurchaseHistory},
	{regexp.MustCompile(`(?i)(app[\s-]?usage|screen[\s-]?time|time[\s-]?spent)`), model.CategoryAppUsage},
	{regexp.MustCompile(`(?i)(interaction|click|tap|scroll|hover|engagement)`), model.CategoryInteractionData},
	{regexp.MustCompile(`(?i)(preference|setting|option|choice)`), model.CategoryPreferences},
}

var diagnosticRules = []catRule{
	{regexp.MustCompile(`(?i)(crash|error|exception|bug|failure)`), model.CategoryCrashReports},
	{regexp.MustCompile(`(?i)(performance|speed|latency|load[\s-]?time)`), model.CategoryPerformanceData},
	{regexp.MustCompile(`(?i)(log|record|audit|diagnostic|debug)`), model.CategoryDiagnosticLogs},
	{regexp.MustCompile(`(?i)(system|device|hardware|os|version|model)`), model.CategorySystemActivity},
}

// Classify maps a free-text data-type label to exactly one taxonomy category.
// Total: any input, including empty, yields a valid category.
func Classify(label string) model.DataCategory {
	for _, r := range sensitiveRules {
		if r.re.MatchString(label) {
			return r.cat
		}
	}

	if specialTrigger.MatchString(label) {
		for _, r := range specialRules {
			if r.re.MatchString(label) {
				return r.cat
			}
		}
	}

	if geneticRule.re.MatchString(label) {
		return geneticRule.cat
	}

	for _, group := range [][]catRule{identifierRules, behavioralRules, diagnosticRules} {
		for _, r := range group {
			if r.re.MatchString(label) {
				return r.cat
			}
		}
	}

	return FallbackCategory
}
