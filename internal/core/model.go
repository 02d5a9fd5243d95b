package core

import (
	"time"
)

// Message represents a single conversation turn as received from the platform
type Message struct {
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	Timestamp string `json:"timestamp"`
}

// ScamCategory classifies the kind of fraud observed in a conversation
type ScamCategory string

const (
	CategoryPrizeScam       ScamCategory = "PRIZE_SCAM"
	CategoryCredentialTheft ScamCategory = "CREDENTIAL_THEFT"
	CategoryOTPScam         ScamCategory = "OTP_SCAM"
	CategoryThreatBasedScam ScamCategory = "THREAT_BASED_SCAM"
	CategoryFinancialFraud  ScamCategory = "FINANCIAL_FRAUD"
	CategoryGeneralScam     ScamCategory = "GENERAL_SCAM"
)

// ScoreResult represents the outcome of scoring a single message.
// It is produced fresh per message and never mutated.
type ScoreResult struct {
	IsScam   bool
	Score    float64
	Reason   string
	Category ScamCategory
}

// Classification captures the frozen verdict of the first positive score.
// A session holds a nil *Classification until the detector flags it; the
// one-way transition is enforced by Session.Classify.
type Classification struct {
	Confidence float64      `json:"confidence"`
	Category   ScamCategory `json:"category"`
	At         time.Time    `json:"at"`
}

// Session is the per-conversation state owned by the engagement engine
type Session struct {
	ID                   string          `json:"sessionId"`
	MessageCount         int             `json:"messageCount"`
	Evidence             *Evidence       `json:"intelligence"`
	Classification       *Classification `json:"classification,omitempty"`
	TerminationTriggered bool            `json:"terminationTriggered"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"lastUpdated"`
}

// NewSession creates a session with zeroed counters and empty evidence
func NewSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		Evidence:  NewEvidence(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ScamDetected reports whether the session has been classified as a scam
func (s *Session) ScamDetected() bool {
	return s.Classification != nil
}

// Classify freezes the scam verdict for the session. The first call wins;
// later calls are ignored so the verdict can never flip back or be rewritten.
func (s *Session) Classify(confidence float64, category ScamCategory) {
	if s.Classification != nil {
		return
	}
	s.Classification = &Classification{
		Confidence: confidence,
		Category:   category,
		At:         time.Now(),
	}
}

// Confidence returns the frozen confidence, or zero while unclassified
func (s *Session) Confidence() float64 {
	if s.Classification == nil {
		return 0
	}
	return s.Classification.Confidence
}

// Category returns the frozen scam category, or empty while unclassified
func (s *Session) Category() ScamCategory {
	if s.Classification == nil {
		return ""
	}
	return s.Classification.Category
}
