package gateway

import (
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/JerrySundi/honeypot/internal/core"
	"github.com/JerrySundi/honeypot/internal/utils"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// honeypotRequest is the inbound message envelope
type honeypotRequest struct {
	SessionID           string         `json:"sessionId"`
	Message             core.Message   `json:"message"`
	ConversationHistory []core.Message `json:"conversationHistory"`
	Metadata            *metadata      `json:"metadata,omitempty"`
}

type metadata struct {
	Channel  string `json:"channel,omitempty"`
	Language string `json:"language,omitempty"`
	Locale   string `json:"locale,omitempty"`
}

// honeypotResponse carries the persona reply back to the caller
type honeypotResponse struct {
	Status string `json:"status"`
	Reply  string `json:"reply"`
}

type errorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// HTTPGateway exposes the engagement engine over a JSON API. Replies come
// from the configured generator; a generation failure falls back to the
// rule-based replies so the scammer always gets an answer.
type HTTPGateway struct {
	engine        *core.EngagementService
	generator     core.ReplyGenerator
	fallback      core.ReplyGenerator
	textProcessor *utils.TextProcessor
	logger        *zap.Logger
	listenAddr    string
	apiKey        string
	maxTextSize   int
	server        *http.Server
}

// NewHTTPGateway creates a new HTTP gateway
func NewHTTPGateway(
	engine *core.EngagementService,
	generator core.ReplyGenerator,
	fallback core.ReplyGenerator,
	textProcessor *utils.TextProcessor,
	logger *zap.Logger,
	listenAddr string,
	apiKey string,
	maxTextSize int,
) *HTTPGateway {
	return &HTTPGateway{
		engine:        engine,
		generator:     generator,
		fallback:      fallback,
		textProcessor: textProcessor,
		logger:        logger,
		listenAddr:    listenAddr,
		apiKey:        apiKey,
		maxTextSize:   maxTextSize,
	}
}

// Start starts the HTTP server
func (g *HTTPGateway) Start() error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/healthz", g.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(g.requireAPIKey)
		r.Post("/honeypot", g.handleMessage)
	})

	g.server = &http.Server{
		Addr:         g.listenAddr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
	}

	g.logger.Info("HTTP gateway starting", zap.String("address", g.listenAddr))

	go func() {
		if err := g.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			g.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	return nil
}

// Stop stops the HTTP server
func (g *HTTPGateway) Stop() error {
	if g.server == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return g.server.Shutdown(ctx)
}

// requireAPIKey rejects requests without the configured x-api-key header
func (g *HTTPGateway) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		provided := r.Header.Get("x-api-key")
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(g.apiKey)) != 1 {
			writeJSON(w, http.StatusUnauthorized, errorResponse{
				Status:  "error",
				Message: "Invalid API key",
			})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (g *HTTPGateway) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleMessage runs one engagement turn and returns the persona reply
func (g *HTTPGateway) handleMessage(w http.ResponseWriter, r *http.Request) {
	var req honeypotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Status:  "error",
			Message: "Invalid request format",
		})
		return
	}

	if req.SessionID == "" || req.Message.Text == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Status:  "error",
			Message: "sessionId and message.text are required",
		})
		return
	}

	req.Message.Text = g.textProcessor.ProcessText(req.Message.Text, g.maxTextSize)

	g.logger.Info("Incoming message",
		zap.String("session_id", req.SessionID),
		zap.String("sender", req.Message.Sender),
		zap.Int("history_length", len(req.ConversationHistory)))

	turn, err := g.engine.HandleMessage(r.Context(), req.SessionID, req.Message)
	if err != nil {
		g.logger.Error("Failed to process message",
			zap.String("session_id", req.SessionID),
			zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Status:  "error",
			Message: "Internal server error",
		})
		return
	}

	reply := g.generateReply(r.Context(), req.Message.Text, req.ConversationHistory, turn.Session)

	writeJSON(w, http.StatusOK, honeypotResponse{
		Status: "success",
		Reply:  reply,
	})
}

// generateReply picks the persona reply for classified sessions and the
// neutral reply otherwise. Generator failures fall back to rule-based
// replies and never surface to the caller.
func (g *HTTPGateway) generateReply(ctx context.Context, text string, history []core.Message, session *core.Session) string {
	if session.ScamDetected() {
		reply, err := g.generator.GenerateReply(ctx, text, history, session)
		if err == nil {
			return reply
		}
		g.logger.Warn("Reply generation failed, using fallback",
			zap.String("session_id", session.ID),
			zap.Error(err))
		reply, _ = g.fallback.GenerateReply(ctx, text, history, session)
		return reply
	}

	reply, err := g.generator.GenerateSafeReply(ctx, text)
	if err != nil {
		reply, _ = g.fallback.GenerateSafeReply(ctx, text)
	}
	return reply
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
