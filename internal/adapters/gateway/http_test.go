package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/JerrySundi/honeypot/internal/adapters/reply"
	"github.com/JerrySundi/honeypot/internal/adapters/store"
	"github.com/JerrySundi/honeypot/internal/core"
	"github.com/JerrySundi/honeypot/internal/extract"
	"github.com/JerrySundi/honeypot/internal/score"
	"github.com/JerrySundi/honeypot/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type noopReporter struct{}

func (noopReporter) Report(_ context.Context, _ *core.Session) error { return nil }

func newTestGateway(t *testing.T) *HTTPGateway {
	t.Helper()
	logger := zap.NewNop()

	sessionStore := store.NewMemoryStore(logger, time.Hour, time.Hour)
	t.Cleanup(sessionStore.Stop)

	engine := core.NewEngagementService(
		sessionStore,
		extract.New(),
		score.NewDetector(0.4),
		noopReporter{},
		core.DefaultEngagementPolicy(),
		logger,
	)

	fallback := reply.NewFallback(logger)
	return NewHTTPGateway(engine, fallback, fallback, utils.NewTextProcessor(logger), logger, "127.0.0.1:0", "secret", 8192)
}

func postHoneypot(g *HTTPGateway, apiKey string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/honeypot", strings.NewReader(body))
	if apiKey != "" {
		req.Header.Set("x-api-key", apiKey)
	}
	rec := httptest.NewRecorder()
	g.requireAPIKey(http.HandlerFunc(g.handleMessage)).ServeHTTP(rec, req)
	return rec
}

func TestHTTPGatewayRejectsMissingAPIKey(t *testing.T) {
	g := newTestGateway(t)

	rec := postHoneypot(g, "", `{"sessionId":"s-1","message":{"sender":"scammer","text":"hi"}}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = postHoneypot(g, "wrong", `{"sessionId":"s-1","message":{"sender":"scammer","text":"hi"}}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHTTPGatewayRejectsMalformedBody(t *testing.T) {
	g := newTestGateway(t)

	rec := postHoneypot(g, "secret", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTPGatewayRejectsMissingFields(t *testing.T) {
	g := newTestGateway(t)

	rec := postHoneypot(g, "secret", `{"message":{"sender":"scammer","text":"hi"}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = postHoneypot(g, "secret", `{"sessionId":"s-1","message":{"sender":"scammer","text":""}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHTTPGatewayScamMessageGetsPersonaReply(t *testing.T) {
	g := newTestGateway(t)

	rec := postHoneypot(g, "secret",
		`{"sessionId":"s-scam","message":{"sender":"scammer","text":"Your account is blocked! Share your OTP now"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp honeypotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	// The rule-based generator keys on the blocked-account wording
	assert.Equal(t, "Oh no! I'm very worried. What should I do to fix this?", resp.Reply)
}

func TestHTTPGatewayBenignMessageGetsSafeReply(t *testing.T) {
	g := newTestGateway(t)

	rec := postHoneypot(g, "secret",
		`{"sessionId":"s-benign","message":{"sender":"scammer","text":"hello, are we still meeting tomorrow?"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp honeypotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "success", resp.Status)
	assert.Equal(t, reply.SafeReply, resp.Reply)
}

func TestHTTPGatewaySessionStateAccumulates(t *testing.T) {
	g := newTestGateway(t)

	rec := postHoneypot(g, "secret",
		`{"sessionId":"s-acc","message":{"sender":"scammer","text":"urgent! verify payment or account blocked"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// Second turn hands over a bank account; the session must still be
	// classified from the first turn and keep collecting evidence
	rec = postHoneypot(g, "secret",
		`{"sessionId":"s-acc","message":{"sender":"scammer","text":"deposit the money to 123456789012"}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp honeypotResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "I want to send it immediately! What's your account number?", resp.Reply)
}

func TestHTTPGatewayHealthz(t *testing.T) {
	g := newTestGateway(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	http.HandlerFunc(g.handleHealth).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
