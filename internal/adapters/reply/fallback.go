package reply

import (
	"context"
	"strings"

	"github.com/JerrySundi/honeypot/internal/core"
	"go.uber.org/zap"
)

// Fallback is a rule-based implementation of the ReplyGenerator interface.
// It never fails, which makes it both a standalone backend and the safety
// net wrapped around the LLM backends.
type Fallback struct {
	logger *zap.Logger
}

// NewFallback creates a new rule-based reply generator
func NewFallback(logger *zap.Logger) *Fallback {
	return &Fallback{logger: logger}
}

// GenerateReply picks a canned persona reply keyed on the scammer's wording
func (f *Fallback) GenerateReply(_ context.Context, text string, _ []core.Message, _ *core.Session) (string, error) {
	lower := strings.ToLower(text)

	switch {
	case containsAny(lower, "account", "blocked", "suspended"):
		return "Oh no! I'm very worried. What should I do to fix this?", nil
	case containsAny(lower, "pay", "send", "money", "transfer"):
		return "I want to send it immediately! What's your account number?", nil
	case containsAny(lower, "verify", "confirm", "otp"):
		return "I'm ready to verify. Can you guide me step by step? What details do you need?", nil
	case containsAny(lower, "link", "click", "website"):
		return "I tried clicking but it's not working. Can you send the link again?", nil
	default:
		return "I don't understand. Can you explain again? I'm not good with technology.", nil
	}
}

// GenerateSafeReply returns the neutral reply for unclassified sessions
func (f *Fallback) GenerateSafeReply(_ context.Context, _ string) (string, error) {
	return SafeReply, nil
}

func containsAny(s string, terms ...string) bool {
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
