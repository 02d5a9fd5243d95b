package report

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JerrySundi/honeypot/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func classifiedSession() *core.Session {
	session := core.NewSession("s-report")
	session.MessageCount = 6
	session.Classify(0.75, core.CategoryFinancialFraud)
	session.Evidence = session.Evidence.Merge(&core.Evidence{
		BankAccounts:       []string{"123456789012"},
		UPIIDs:             []string{"fraud@paytm"},
		PhoneNumbers:       []string{"+919876543210"},
		SuspiciousKeywords: []string{"account", "blocked", "otp", "payment", "urgent", "verify"},
	})
	return session
}

func TestReportDeliversCallbackPayload(t *testing.T) {
	var received Payload
	var deliveryID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		deliveryID = r.Header.Get("X-Delivery-Id")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	reporter := NewWebhookReporter(server.URL, 5*time.Second, zap.NewNop())
	require.NoError(t, reporter.Report(context.Background(), classifiedSession()))

	assert.NotEmpty(t, deliveryID)
	assert.Equal(t, "s-report", received.SessionID)
	assert.True(t, received.ScamDetected)
	assert.Equal(t, 6, received.TotalMessagesExchanged)
	require.NotNil(t, received.ExtractedIntelligence)
	assert.Equal(t, []string{"123456789012"}, received.ExtractedIntelligence.BankAccounts)
	assert.Equal(t, []string{"fraud@paytm"}, received.ExtractedIntelligence.UPIIDs)
	assert.NotEmpty(t, received.AgentNotes)
}

func TestReportEndpointFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	reporter := NewWebhookReporter(server.URL, 5*time.Second, zap.NewNop())
	err := reporter.Report(context.Background(), classifiedSession())
	assert.ErrorContains(t, err, "status 500")
}

func TestReportWithoutCallbackURLIsNoop(t *testing.T) {
	reporter := NewWebhookReporter("", 5*time.Second, zap.NewNop())
	assert.NoError(t, reporter.Report(context.Background(), classifiedSession()))
}

func TestAgentNotesSummary(t *testing.T) {
	notes := AgentNotes(classifiedSession())

	assert.Contains(t, notes, "Scam Type: FINANCIAL_FRAUD")
	assert.Contains(t, notes, "Engaged for 6 messages")
	assert.Contains(t, notes, "1 bank account(s)")
	assert.Contains(t, notes, "1 UPI ID(s)")
	assert.Contains(t, notes, "1 phone number(s)")
	// Only the first five keywords make the tactics line
	assert.Contains(t, notes, "Tactics: account, blocked, otp, payment, urgent")
	assert.NotContains(t, notes, "verify")
}

func TestAgentNotesWithoutIntelligence(t *testing.T) {
	session := core.NewSession("s-empty")
	session.MessageCount = 15

	notes := AgentNotes(session)
	assert.Contains(t, notes, "Scam Type: UNKNOWN")
	assert.Contains(t, notes, "No critical intelligence extracted")
}
