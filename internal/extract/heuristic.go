package extract

import (
	"context"
	"regexp"
	"strings"

	"github.com/poliscan/poliscan/internal/ingest"
)

// HeuristicExtractor is the deterministic fallback when no LLM is available.
// It scans sentences for data-type mentions and collects the sharing,
// retention, and control signals stated alongside them. Coarse, but the
// engine downstream tolerates partial statements.
type HeuristicExtractor struct{}

func NewHeuristicExtractor() *HeuristicExtractor { return &HeuristicExtractor{} }

func (e *HeuristicExtractor) Name() string { return "heuristic" }

// typePatterns map text mentions to a canonical data-type label.
var typePatterns = []struct {
	re    *regexp.Regexp
	label string
}{
	{regexp.MustCompile(`(?i)\b(email|e-mail)\b`), "Email Address"},
	{regexp.MustCompile(`(?i)\b(phone|telephone|mobile)\s+number`), "Phone Number"},
	{regexp.MustCompile(`(?i)\b(full\s+)?name\b`), "Full Name"},
	{regexp.MustCompile(`(?i)\b(postal|mailing|home|street)\s+address`), "Postal Address"},
	{regexp.MustCompile(`(?i)\bip\s+address`), "IP Address"},
	{regexp.MustCompile(`(?i)\bdevice\s+(id|identifier)`), "Device Identifier"},
	{regexp.MustCompile(`(?i)\b(password|credential|login)`), "Account Credentials"},
	{regexp.MustCompile(`(?i)\b(credit\s+card|payment|billing|bank)\b`), "Payment Information"},
	{regexp.MustCompile(`(?i)\b(health|medical)\b`), "Health Information"},
	{regexp.MustCompile(`(?i)\b(biometric|fingerprint|face\s+recognition)`), "Biometric Data"},
	{regexp.MustCompile(`(?i)\b(passport|social\s+security|government\s+id|driver'?s?\s+licen[sc]e)`), "Government ID"},
	{regexp.MustCompile(`(?i)\b(precise|gps|geolocation)\b`), "Precise Location"},
	{regexp.MustCompile(`(?i)\bbrowsing\s+(history|data|activity)`), "Browsing History"},
	{regexp.MustCompile(`(?i)\bsearch\s+(history|queries)`), "Search History"},
	{regexp.MustCompile(`(?i)\bpurchase\s+(history|records)`), "Purchase History"},
	{regexp.MustCompile(`(?i)\b(usage|analytics)\s+(data|information)`), "Usage Data"},
	{regexp.MustCompile(`(?i)\bcookies?\b`), "Cookies and Tracking Data"},
	{regexp.MustCompile(`(?i)\b(crash|diagnostic|error)\s+(report|log|data)`), "Diagnostic Data"},
}

// measurePatterns detect protective controls and rights in a sentence.
var measurePatterns = []struct {
	re      *regexp.Regexp
	measure string
}{
	{regexp.MustCompile(`(?i)encrypt`), "Encryption"},
	{regexp.MustCompile(`(?i)\baccess\s+control|\bauthentication\b`), "Access controls"},
	{regexp.MustCompile(`(?i)\b(delete|deletion|erasure)\b`), "Delete on request"},
	{regexp.MustCompile(`(?i)\bopt[\s-]?out\b`), "Opt-out available"},
	{regexp.MustCompile(`(?i)\b(anonymi[sz]|pseudonymi[sz]|aggregat)`), "Anonymized and aggregated data"},
	{regexp.MustCompile(`(?i)\binternational(ly)?\b.*\btransfer|\btransfer\b.*\binternational`), "International transfer"},
	{regexp.MustCompile(`(?i)\b(access|download)\b.*\byour\s+(data|information)`), "Data access rights"},
}

var (
	sharingRe   = regexp.MustCompile(`(?i)\b(share|shared|sharing|sell|sold|disclose)\b.*\bthird[\s-]part`)
	retentionRe = regexp.MustCompile(`(?i)\b(retain|retained|retention|keep|stored?)\b[^.]*\b(indefinite(ly)?|forever|as\s+long\s+as|\d+\s+(day|month|year))`)
	sentenceRe  = regexp.MustCompile(`[.!?\n]+`)
)

// Extract never fails: text with no recognizable statements yields an empty
// payload, which the engine scores as the zero result.
func (e *HeuristicExtractor) Extract(ctx context.Context, text string) (*ingest.Payload, error) {
	type draft struct {
		purpose   string
		shared    bool
		retention string
		measures  []string
		seen      map[string]bool
	}
	drafts := make(map[string]*draft)
	var order []string

	for _, sentence := range sentenceRe.Split(text, -1) {
		sentence = strings.TrimSpace(sentence)
		if sentence == "" {
			continue
		}

		var measures []string
		for _, mp := range measurePatterns {
			if mp.re.MatchString(sentence) {
				measures = append(measures, mp.measure)
			}
		}
		shared := sharingRe.MatchString(sentence)
		retention := ""
		if m := retentionRe.FindString(sentence); m != "" {
			retention = m
		}

		for _, tp := range typePatterns {
			if !tp.re.MatchString(sentence) {
				continue
			}
			d, ok := drafts[tp.label]
			if !ok {
				d = &draft{purpose: summarizePurpose(sentence), seen: map[string]bool{}}
				drafts[tp.label] = d
				order = append(order, tp.label)
			}
			if shared {
				d.shared = true
			}
			if retention != "" && d.retention == "" {
				d.retention = retention
			}
			for _, m := range measures {
				if !d.seen[m] {
					d.seen[m] = true
					d.measures = append(d.measures, m)
				}
			}
		}
	}

	records := make([]map[string]any, 0, len(order))
	for _, label := range order {
		d := drafts[label]
		record := map[string]any{
			"type":                      label,
			"purpose":                   d.purpose,
			"shared_with_third_parties": d.shared,
			"security_measures":         toAnySlice(d.measures),
		}
		if d.retention != "" {
			record["retention_period"] = d.retention
		}
		records = append(records, record)
	}
	return ingest.FromRecords(records), nil
}

// summarizePurpose keeps the first clause of the sentence that mentioned the
// data, capped to a readable length.
func summarizePurpose(sentence string) string {
	s := strings.Join(strings.Fields(sentence), " ")
	if len(s) > 160 {
		s = s[:160] + "..."
	}
	return s
}

func toAnySlice(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}
