package score

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/JerrySundi/honeypot/internal/core"
)

// DefaultThreshold is the confidence at or above which a message is
// classified as a scam attempt
const DefaultThreshold = 0.4

// keywordCheck is one weighted vocabulary check. The weight is contributed
// once when any term of the category is present, regardless of how many.
type keywordCheck struct {
	label  string
	weight float64
	terms  []string
}

var urgencyTerms = []string{
	"urgent", "immediately", "now", "today", "hurry",
	"quick", "fast", "asap", "right now",
}

var threatTerms = []string{
	"blocked", "suspended", "closed", "locked", "frozen",
	"cancelled", "terminated", "action required", "expired",
	"deactivated", "disabled",
}

var financialTerms = []string{
	"bank account", "credit card", "debit card", "account number",
	"upi", "payment", "transfer", "money", "rupees", "rs.",
	"verify payment", "send money", "pay now",
}

var authorityTerms = []string{
	"bank", "government", "police", "officer", "official",
	"rbi", "income tax", "customs", "cyber cell", "legal",
	"court", "penalty", "fine",
}

var credentialTerms = []string{
	"otp", "cvv", "pin", "password", "user id", "username",
	"date of birth", "aadhar", "pan card", "card number",
}

var prizeTerms = []string{
	"congratulations", "winner", "won", "prize", "reward",
	"lottery", "lucky", "selected", "claim", "gift",
}

// Detector scores messages for scam likelihood with a fixed table of
// weighted keyword checks plus literal fraud patterns. Scoring is a pure
// function of the message text and never fails for any input.
type Detector struct {
	checks    []keywordCheck
	patterns  []*regexp.Regexp
	threshold float64
}

// NewDetector creates a detector with the given classification threshold
func NewDetector(threshold float64) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Detector{
		checks: []keywordCheck{
			{label: "Urgent language", weight: 0.20, terms: urgencyTerms},
			{label: "Threatening language", weight: 0.25, terms: threatTerms},
			{label: "Financial keywords", weight: 0.20, terms: financialTerms},
			{label: "Authority impersonation", weight: 0.15, terms: authorityTerms},
			{label: "Requesting personal info", weight: 0.30, terms: credentialTerms},
			{label: "Prize scam indicators", weight: 0.20, terms: prizeTerms},
		},
		patterns: []*regexp.Regexp{
			regexp.MustCompile(`send\s+(?:rs\.?|rupees|₹)\s*\d+`),
			regexp.MustCompile(`account\s+(?:will be|has been)\s+blocked`),
			regexp.MustCompile(`verify\s+(?:your|the)\s+(?:account|payment|transaction)`),
			regexp.MustCompile(`click\s+(?:here|this|the\s+link)`),
			regexp.MustCompile(`share\s+(?:your|the)\s+otp`),
			regexp.MustCompile(`won\s+(?:rs\.?|rupees|₹)\s*\d+`),
		},
		threshold: threshold,
	}
}

// countTerms counts how many terms of a category appear in the text
func countTerms(lower string, terms []string) int {
	count := 0
	for _, term := range terms {
		if strings.Contains(lower, term) {
			count++
		}
	}
	return count
}

// Score computes the weighted scam likelihood of one message. The history
// parameter is accepted for interface symmetry but does not influence the
// score yet; scoring is per message only.
func (d *Detector) Score(text string, _ []core.Message) *core.ScoreResult {
	if text == "" {
		return &core.ScoreResult{Reason: "Empty message", Category: core.CategoryGeneralScam}
	}

	lower := strings.ToLower(text)
	score := 0.0
	var reasons []string

	for _, check := range d.checks {
		if count := countTerms(lower, check.terms); count > 0 {
			score += check.weight
			reasons = append(reasons, fmt.Sprintf("%s (%d keywords)", check.label, count))
		}
	}

	for _, pattern := range d.patterns {
		if pattern.MatchString(lower) {
			score += 0.30
			reasons = append(reasons, fmt.Sprintf("Scam pattern matched: %s", pattern.String()))
		}
	}

	if score > 1.0 {
		score = 1.0
	}

	reason := "No scam indicators"
	if len(reasons) > 0 {
		reason = strings.Join(reasons, "; ")
	}

	return &core.ScoreResult{
		IsScam:   score >= d.threshold,
		Score:    score,
		Reason:   reason,
		Category: categorize(lower),
	}
}

// categorize picks the scam category by fixed priority: prize language
// first, then credential requests, a literal OTP mention, threats and
// financial requests; the first match wins.
func categorize(lower string) core.ScamCategory {
	switch {
	case countTerms(lower, prizeTerms) > 0:
		return core.CategoryPrizeScam
	case countTerms(lower, credentialTerms) > 0:
		return core.CategoryCredentialTheft
	case strings.Contains(lower, "otp"):
		return core.CategoryOTPScam
	case countTerms(lower, threatTerms) > 0:
		return core.CategoryThreatBasedScam
	case countTerms(lower, financialTerms) > 0:
		return core.CategoryFinancialFraud
	default:
		return core.CategoryGeneralScam
	}
}
