package extract

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// foldText prepares raw message text for pattern matching: NFKC folds
// full-width digits and compatibility forms scammers use to dodge naive
// matchers into their plain equivalents.
func foldText(text string) string {
	return norm.NFKC.String(text)
}

// digitsOnly strips every non-digit rune from a candidate value
func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// isPhoneNumber reports whether a digit run qualifies as an Indian phone
// number: 10 digits starting 6-9, or 12 digits with the 91 country code.
// Phone detection takes precedence over bank account detection, so any run
// matching here is excluded from the account category.
func isPhoneNumber(s string) bool {
	digits := digitsOnly(s)
	if len(digits) == 10 && digits[0] >= '6' && digits[0] <= '9' {
		return true
	}
	if len(digits) == 12 && strings.HasPrefix(digits, "91") {
		return true
	}
	return false
}

// normalizePhone canonicalizes an accepted phone match to +91 followed by
// the 10 significant digits
func normalizePhone(raw string) string {
	digits := digitsOnly(raw)
	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		return "+" + digits
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		return "+91" + digits[1:]
	case len(digits) == 10:
		return "+91" + digits
	default:
		return "+" + digits
	}
}

// stripLinkPrefix removes protocol and www. prefixes for URL comparison
func stripLinkPrefix(u string) string {
	u = strings.TrimPrefix(u, "https://")
	u = strings.TrimPrefix(u, "http://")
	u = strings.TrimPrefix(u, "www.")
	return u
}

// setToSorted turns a value set into a sorted slice, never nil
func setToSorted(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for v := range set {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// splitAddress splits a user@domain candidate into its two halves
func splitAddress(s string) (user, domain string) {
	idx := strings.LastIndex(s, "@")
	if idx < 0 {
		return s, ""
	}
	return s[:idx], s[idx+1:]
}
