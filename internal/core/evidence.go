package core

import (
	"sort"
)

// Evidence holds the normalized artifacts extracted from a conversation,
// one set per category. The JSON keys are the exact keys of the final
// report payload. Slices are always non-nil so categories marshal as []
// rather than null, and values are kept sorted and unique.
type Evidence struct {
	BankAccounts       []string `json:"bankAccounts"`
	UPIIDs             []string `json:"upiIds"`
	PhoneNumbers       []string `json:"phoneNumbers"`
	PhishingLinks      []string `json:"phishingLinks"`
	EmailAddresses     []string `json:"emailAddresses"`
	IFSCCodes          []string `json:"ifscCodes"`
	ScammerNames       []string `json:"scammerName"`
	SuspiciousKeywords []string `json:"suspiciousKeywords"`
}

// NewEvidence creates an evidence record with all categories empty
func NewEvidence() *Evidence {
	return &Evidence{
		BankAccounts:       []string{},
		UPIIDs:             []string{},
		PhoneNumbers:       []string{},
		PhishingLinks:      []string{},
		EmailAddresses:     []string{},
		IFSCCodes:          []string{},
		ScammerNames:       []string{},
		SuspiciousKeywords: []string{},
	}
}

// unionSorted merges two string sets into a sorted, de-duplicated slice
func unionSorted(a, b []string) []string {
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, v := range a {
		seen[v] = struct{}{}
	}
	for _, v := range b {
		seen[v] = struct{}{}
	}
	merged := make([]string, 0, len(seen))
	for v := range seen {
		merged = append(merged, v)
	}
	sort.Strings(merged)
	return merged
}

// Merge returns the per-category set union of two evidence records.
// The operation is commutative, associative and idempotent, so replaying
// the same extraction result never changes the outcome.
func (e *Evidence) Merge(other *Evidence) *Evidence {
	if other == nil {
		other = NewEvidence()
	}
	return &Evidence{
		BankAccounts:       unionSorted(e.BankAccounts, other.BankAccounts),
		UPIIDs:             unionSorted(e.UPIIDs, other.UPIIDs),
		PhoneNumbers:       unionSorted(e.PhoneNumbers, other.PhoneNumbers),
		PhishingLinks:      unionSorted(e.PhishingLinks, other.PhishingLinks),
		EmailAddresses:     unionSorted(e.EmailAddresses, other.EmailAddresses),
		IFSCCodes:          unionSorted(e.IFSCCodes, other.IFSCCodes),
		ScammerNames:       unionSorted(e.ScammerNames, other.ScammerNames),
		SuspiciousKeywords: unionSorted(e.SuspiciousKeywords, other.SuspiciousKeywords),
	}
}

// CriticalCount counts the artifacts that matter for termination decisions:
// bank accounts, UPI IDs, phone numbers and phishing links
func (e *Evidence) CriticalCount() int {
	return len(e.BankAccounts) + len(e.UPIIDs) + len(e.PhoneNumbers) + len(e.PhishingLinks)
}

// IsEmpty reports whether no category holds any value
func (e *Evidence) IsEmpty() bool {
	return len(e.BankAccounts) == 0 &&
		len(e.UPIIDs) == 0 &&
		len(e.PhoneNumbers) == 0 &&
		len(e.PhishingLinks) == 0 &&
		len(e.EmailAddresses) == 0 &&
		len(e.IFSCCodes) == 0 &&
		len(e.ScammerNames) == 0 &&
		len(e.SuspiciousKeywords) == 0
}
