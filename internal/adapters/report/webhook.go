// Package report delivers final session intelligence to an external
// callback endpoint.
package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/JerrySundi/honeypot/internal/core"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Payload is the callback body posted when an engagement terminates
type Payload struct {
	SessionID              string         `json:"sessionId"`
	ScamDetected           bool           `json:"scamDetected"`
	TotalMessagesExchanged int            `json:"totalMessagesExchanged"`
	ExtractedIntelligence  *core.Evidence `json:"extractedIntelligence"`
	AgentNotes             string         `json:"agentNotes"`
}

// WebhookReporter is an HTTP implementation of the Reporter interface.
// With no callback URL configured it degrades to logging the payload,
// which keeps local runs working without an endpoint.
type WebhookReporter struct {
	callbackURL string
	client      *http.Client
	logger      *zap.Logger
}

// NewWebhookReporter creates a new webhook reporter
func NewWebhookReporter(callbackURL string, timeout time.Duration, logger *zap.Logger) *WebhookReporter {
	return &WebhookReporter{
		callbackURL: callbackURL,
		client:      &http.Client{Timeout: timeout},
		logger:      logger,
	}
}

// Report posts the final session intelligence to the callback endpoint
func (r *WebhookReporter) Report(ctx context.Context, session *core.Session) error {
	payload := Payload{
		SessionID:              session.ID,
		ScamDetected:           session.ScamDetected(),
		TotalMessagesExchanged: session.MessageCount,
		ExtractedIntelligence:  session.Evidence,
		AgentNotes:             AgentNotes(session),
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode report payload: %w", err)
	}

	if r.callbackURL == "" {
		r.logger.Warn("No callback URL configured, skipping report delivery",
			zap.String("session_id", session.ID),
			zap.ByteString("payload", body))
		return nil
	}

	deliveryID := uuid.New().String()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.callbackURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Delivery-Id", deliveryID)

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to deliver report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("report endpoint returned status %d", resp.StatusCode)
	}

	r.logger.Info("Delivered final report",
		zap.String("session_id", session.ID),
		zap.String("delivery_id", deliveryID),
		zap.Int("status", resp.StatusCode))

	return nil
}

// AgentNotes summarizes the engagement for the callback payload
func AgentNotes(session *core.Session) string {
	var parts []string

	category := "UNKNOWN"
	if session.ScamDetected() {
		category = string(session.Category())
	}
	parts = append(parts, fmt.Sprintf("Scam Type: %s", category))
	parts = append(parts, fmt.Sprintf("Engaged for %d messages", session.MessageCount))

	ev := session.Evidence
	var extracted []string
	if len(ev.BankAccounts) > 0 {
		extracted = append(extracted, fmt.Sprintf("%d bank account(s)", len(ev.BankAccounts)))
	}
	if len(ev.UPIIDs) > 0 {
		extracted = append(extracted, fmt.Sprintf("%d UPI ID(s)", len(ev.UPIIDs)))
	}
	if len(ev.PhoneNumbers) > 0 {
		extracted = append(extracted, fmt.Sprintf("%d phone number(s)", len(ev.PhoneNumbers)))
	}
	if len(ev.PhishingLinks) > 0 {
		extracted = append(extracted, fmt.Sprintf("%d phishing link(s)", len(ev.PhishingLinks)))
	}

	if len(extracted) > 0 {
		parts = append(parts, fmt.Sprintf("Extracted: %s", strings.Join(extracted, ", ")))
	} else {
		parts = append(parts, "No critical intelligence extracted")
	}

	if len(ev.SuspiciousKeywords) > 0 {
		top := ev.SuspiciousKeywords
		if len(top) > 5 {
			top = top[:5]
		}
		parts = append(parts, fmt.Sprintf("Tactics: %s", strings.Join(top, ", ")))
	}

	return strings.Join(parts, ". ")
}
