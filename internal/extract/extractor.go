package extract

import (
	"regexp"
	"strings"

	"github.com/JerrySundi/honeypot/internal/core"
)

// upiProviders is the payment-provider handle allowlist. A user@domain match
// whose domain contains one of these is treated as a UPI ID even when the
// domain carries a dot, and never as an email address.
var upiProviders = []string{
	"paytm", "phonepe", "googlepay", "gpay", "ybl", "axl",
	"ibl", "okaxis", "okhdfcbank", "okicici", "oksbi", "airtel",
	"amazonpay", "freecharge", "mobikwik", "jio", "whatsapp",
	"okbank", "okmybank", "mybank", "pnb", "boi", "citi",
	"hsbc", "kotak", "federal", "rbl", "yes", "idbi", "indus",
}

// suspiciousVocabulary is the fixed fraud-indicative term list reported in
// the suspiciousKeywords category
var suspiciousVocabulary = []string{
	"urgent", "immediately", "verify", "blocked", "suspended",
	"confirm", "update", "expired", "action required", "click here",
	"account", "bank", "payment", "transfer", "upi", "otp",
	"prize", "winner", "congratulations", "claim", "reward",
	"kyc", "aadhar", "pan", "cvv", "pin", "password", "security",
	"refund", "cashback", "credit", "debit", "loan", "emi",
}

// nameStoplist filters capitalized words that follow introduction phrases
// but are not names
var nameStoplist = map[string]struct{}{
	"Hello": {}, "Please": {}, "Send": {}, "Click": {}, "Visit": {},
	"Thank": {}, "Urgent": {}, "Important": {}, "Dear": {}, "Sir": {},
	"Madam": {},
}

// Extractor turns free-form message text into a categorized evidence record.
// It is a pure function of the text: no state is retained across calls and
// extraction never fails, empty input simply yields the all-empty record.
type Extractor struct {
	phonePlus91    *regexp.Regexp
	phoneBare91    *regexp.Regexp
	phoneLocal     *regexp.Regexp
	phoneLeadZero  *regexp.Regexp
	phoneKeyword   *regexp.Regexp
	cardGrouped    *regexp.Regexp
	accountRun     *regexp.Regexp
	accountKeyword *regexp.Regexp
	upiAddress     *regexp.Regexp
	upiPhoneUser   *regexp.Regexp
	upiKeyword     *regexp.Regexp
	emailStandard  *regexp.Regexp
	emailKeyword   *regexp.Regexp
	emailRelaxed   *regexp.Regexp
	ifscCode       *regexp.Regexp
	ifscKeyword    *regexp.Regexp
	urlProtocol    *regexp.Regexp
	urlWWW         *regexp.Regexp
	urlDomainPath  *regexp.Regexp
	urlShortener   *regexp.Regexp
	urlKeyword     *regexp.Regexp
	urlObfuscated  *regexp.Regexp
	nameIntro      *regexp.Regexp
	nameGreeting   *regexp.Regexp
	nameRole       *regexp.Regexp
}

// New creates an extractor with all patterns compiled once
func New() *Extractor {
	return &Extractor{
		phonePlus91:   regexp.MustCompile(`\+91[\s\-]?[6-9]\d{4}[\s\-]?\d{5}`),
		phoneBare91:   regexp.MustCompile(`\b91[\s\-]?[6-9]\d{9}\b`),
		phoneLocal:    regexp.MustCompile(`\b[6-9]\d{9}\b`),
		phoneLeadZero: regexp.MustCompile(`\b0[6-9]\d{9}\b`),
		phoneKeyword:  regexp.MustCompile(`(?i)(?:call|contact|phone|mobile|whatsapp|number)[\s:\-]*(\+?91[\s\-]?[6-9]\d{9}|\+?[6-9]\d{9})`),

		cardGrouped:    regexp.MustCompile(`\b\d{4} ?\d{4} ?\d{4} ?\d{4}\b`),
		accountRun:     regexp.MustCompile(`\b\d{9,18}\b`),
		accountKeyword: regexp.MustCompile(`(?i)(?:account|acc|a/c|ac|acct)[\s:\-]*(\d{9,18})`),

		upiAddress:   regexp.MustCompile(`\b[a-z0-9._\-]+@[a-z0-9.\-]+\b`),
		upiPhoneUser: regexp.MustCompile(`\b[6-9]\d{9}@[a-z0-9\-]+\b`),
		upiKeyword:   regexp.MustCompile(`(?i)(?:upi|vpa|payment)[\s:\-]*(?:id)?[\s:\-]*([\w.\-]+@[\w\-]+)`),

		emailStandard: regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\.[A-Za-z]{2,}\b`),
		emailKeyword:  regexp.MustCompile(`(?i)(?:email|mail|e-mail)[\s:\-]*([A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+)`),
		emailRelaxed:  regexp.MustCompile(`\b[A-Za-z0-9._%+\-]+@[A-Za-z0-9.\-]+\b`),

		ifscCode:    regexp.MustCompile(`\b[A-Z]{4}0[A-Z0-9]{6}\b`),
		ifscKeyword: regexp.MustCompile(`(?i)(?:ifsc code|ifsc|bank code)[\s:\-]*([A-Za-z]{4}0[A-Za-z0-9]{6})`),

		urlProtocol:   regexp.MustCompile(`(?i)https?://[^\s<>"{}|\\^\[\]]+`),
		urlWWW:        regexp.MustCompile(`(?i)www\.[^\s<>"{}|\\^\[\]]+`),
		urlDomainPath: regexp.MustCompile(`(?i)\b[\w\-]+\.(?:com|net|org|in|co\.in|info|xyz|tk|ml|ga|cf|gq|online|site|club)/[^\s<>"{}|\\^\[\]]*`),
		urlShortener:  regexp.MustCompile(`(?i)\b(?:bit\.ly|tinyurl\.com|goo\.gl|ow\.ly|short\.link|t\.co|rb\.gy)/[\w\-]+`),
		urlKeyword:    regexp.MustCompile(`(?i)(?:visit|click|open|go to|link|url)[\s:\-]*((?:https?://)?[\w\-]+\.[\w\-.]+(?:/[\w\-./?%&=]*)?)`),
		urlObfuscated: regexp.MustCompile(`(?i)\b([\w\-]+)\s*\.\s*(com|net|org|in|co\.in)\b`),

		nameIntro:    regexp.MustCompile(`(?:[Mm]y name is|I am|I'm|[Nn]ame is|[Cc]all me|[Tt]his is)\s+([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
		nameGreeting: regexp.MustCompile(`(?m)^(?:Hello|Hi|Dear)\s+(?:Sir|Madam)?,?\s*(?:I am|I'm|This is)?\s*([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)`),
		nameRole:     regexp.MustCompile(`([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(?:from|calling from|here from|representing)`),
	}
}

// Extract runs every category heuristic against the message text and
// returns the normalized, de-duplicated evidence record
func (e *Extractor) Extract(text string) *core.Evidence {
	if text == "" {
		return core.NewEvidence()
	}
	text = foldText(text)

	return &core.Evidence{
		PhoneNumbers:       e.extractPhones(text),
		BankAccounts:       e.extractBankAccounts(text),
		UPIIDs:             e.extractUPIIDs(text),
		EmailAddresses:     e.extractEmails(text),
		IFSCCodes:          e.extractIFSCCodes(text),
		PhishingLinks:      e.extractURLs(text),
		ScammerNames:       e.extractNames(text),
		SuspiciousKeywords: e.extractKeywords(text),
	}
}

func (e *Extractor) extractPhones(text string) []string {
	found := make(map[string]struct{})

	for _, m := range e.phonePlus91.FindAllString(text, -1) {
		found[normalizePhone(m)] = struct{}{}
	}
	for _, m := range e.phoneBare91.FindAllString(text, -1) {
		found[normalizePhone(m)] = struct{}{}
	}
	for _, m := range e.phoneLocal.FindAllString(text, -1) {
		found[normalizePhone(m)] = struct{}{}
	}
	for _, m := range e.phoneLeadZero.FindAllString(text, -1) {
		found[normalizePhone(m)] = struct{}{}
	}
	for _, m := range e.phoneKeyword.FindAllStringSubmatch(text, -1) {
		found[normalizePhone(m[1])] = struct{}{}
	}

	return setToSorted(found)
}

func (e *Extractor) extractBankAccounts(text string) []string {
	found := make(map[string]struct{})

	// Separators are common in dictated card numbers
	cleaned := strings.NewReplacer("-", " ", "_", " ").Replace(text)
	for _, m := range e.cardGrouped.FindAllString(cleaned, -1) {
		digits := digitsOnly(m)
		if len(digits) == 16 && !isPhoneNumber(digits) {
			found[digits] = struct{}{}
		}
	}

	for _, m := range e.accountRun.FindAllString(text, -1) {
		if !isPhoneNumber(m) {
			found[m] = struct{}{}
		}
	}
	for _, m := range e.accountKeyword.FindAllStringSubmatch(text, -1) {
		if !isPhoneNumber(m[1]) {
			found[m[1]] = struct{}{}
		}
	}

	return setToSorted(found)
}

// domainIsUPIProvider reports whether a domain matches the payment-provider
// allowlist, the single signal that disambiguates UPI IDs from emails
func domainIsUPIProvider(domain string) bool {
	for _, provider := range upiProviders {
		if strings.Contains(domain, provider) {
			return true
		}
	}
	return false
}

func (e *Extractor) extractUPIIDs(text string) []string {
	found := make(map[string]struct{})
	lower := strings.ToLower(text)

	for _, m := range e.upiAddress.FindAllString(lower, -1) {
		user, domain := splitAddress(m)
		// A dotted username is the shape of an email, not a UPI handle
		if strings.Contains(user, ".") {
			continue
		}
		if !strings.Contains(domain, ".") || domainIsUPIProvider(domain) {
			found[m] = struct{}{}
		}
	}
	for _, m := range e.upiPhoneUser.FindAllString(lower, -1) {
		found[m] = struct{}{}
	}
	for _, m := range e.upiKeyword.FindAllStringSubmatch(text, -1) {
		candidate := strings.ToLower(m[1])
		if _, domain := splitAddress(candidate); !strings.Contains(domain, ".") {
			found[candidate] = struct{}{}
		}
	}

	return setToSorted(found)
}

func (e *Extractor) extractEmails(text string) []string {
	found := make(map[string]struct{})

	for _, m := range e.emailStandard.FindAllString(text, -1) {
		found[strings.ToLower(m)] = struct{}{}
	}
	for _, m := range e.emailKeyword.FindAllStringSubmatch(text, -1) {
		found[strings.ToLower(m[1])] = struct{}{}
	}
	// A dotted username marks an email even when the domain lacks a TLD
	// ("user.name@fakebank"); the UPI extractor skips these for the same reason
	for _, m := range e.emailRelaxed.FindAllString(text, -1) {
		lower := strings.ToLower(m)
		if user, _ := splitAddress(lower); strings.Contains(user, ".") {
			found[lower] = struct{}{}
		}
	}

	// Provider-allowlisted domains are presumed UPI IDs; dropping them here
	// keeps every match in exactly one of the two categories.
	emails := make(map[string]struct{}, len(found))
	for email := range found {
		if _, domain := splitAddress(email); !domainIsUPIProvider(domain) {
			emails[email] = struct{}{}
		}
	}

	return setToSorted(emails)
}

func (e *Extractor) extractIFSCCodes(text string) []string {
	found := make(map[string]struct{})

	for _, m := range e.ifscCode.FindAllString(strings.ToUpper(text), -1) {
		found[m] = struct{}{}
	}
	for _, m := range e.ifscKeyword.FindAllStringSubmatch(text, -1) {
		found[strings.ToUpper(m[1])] = struct{}{}
	}

	return setToSorted(found)
}

func (e *Extractor) extractURLs(text string) []string {
	raw := make(map[string]struct{})

	for _, m := range e.urlProtocol.FindAllString(text, -1) {
		raw[m] = struct{}{}
	}
	for _, m := range e.urlWWW.FindAllString(text, -1) {
		raw[m] = struct{}{}
	}
	for _, m := range e.urlDomainPath.FindAllString(text, -1) {
		raw[m] = struct{}{}
	}
	for _, m := range e.urlShortener.FindAllString(text, -1) {
		raw[m] = struct{}{}
	}
	for _, m := range e.urlKeyword.FindAllStringSubmatch(text, -1) {
		raw[m[1]] = struct{}{}
	}
	// Reassemble domains written with spaces around the dot ("evil . com")
	for _, m := range e.urlObfuscated.FindAllStringSubmatch(text, -1) {
		if strings.ContainsAny(m[0], " \t") {
			raw[m[1]+"."+strings.ToLower(m[2])] = struct{}{}
		}
	}

	trimmed := make(map[string]struct{}, len(raw))
	for u := range raw {
		u = strings.TrimRight(u, ".,!?;:")
		if u != "" {
			trimmed[u] = struct{}{}
		}
	}

	return dedupeURLs(trimmed)
}

// dedupeURLs removes entries that are strict substrings of another entry
// once protocol and www. prefixes are stripped. When two entries are equal
// after stripping, the protocol-qualified form wins.
func dedupeURLs(urls map[string]struct{}) []string {
	list := make([]string, 0, len(urls))
	for u := range urls {
		list = append(list, u)
	}

	kept := make(map[string]struct{})
	for _, u := range list {
		stripped := stripLinkPrefix(u)
		duplicate := false
		for _, other := range list {
			if u == other {
				continue
			}
			otherStripped := stripLinkPrefix(other)
			if stripped != otherStripped && strings.Contains(otherStripped, stripped) {
				duplicate = true
				break
			}
			if stripped == otherStripped {
				uHasProto := strings.HasPrefix(u, "http")
				otherHasProto := strings.HasPrefix(other, "http")
				if otherHasProto && !uHasProto {
					duplicate = true
					break
				}
				if uHasProto == otherHasProto && other < u {
					duplicate = true
					break
				}
			}
		}
		if !duplicate {
			kept[u] = struct{}{}
		}
	}

	return setToSorted(kept)
}

func (e *Extractor) extractNames(text string) []string {
	found := make(map[string]struct{})

	for _, m := range e.nameIntro.FindAllStringSubmatch(text, -1) {
		found[m[1]] = struct{}{}
	}
	for _, m := range e.nameGreeting.FindAllStringSubmatch(text, -1) {
		found[m[1]] = struct{}{}
	}
	for _, m := range e.nameRole.FindAllStringSubmatch(text, -1) {
		found[m[1]] = struct{}{}
	}

	names := make(map[string]struct{}, len(found))
	for name := range found {
		if _, stop := nameStoplist[name]; stop || len(name) <= 2 {
			continue
		}
		names[name] = struct{}{}
	}

	return setToSorted(names)
}

func (e *Extractor) extractKeywords(text string) []string {
	lower := strings.ToLower(text)
	found := make(map[string]struct{})

	for _, keyword := range suspiciousVocabulary {
		if strings.Contains(lower, keyword) {
			found[keyword] = struct{}{}
		}
	}

	return setToSorted(found)
}
