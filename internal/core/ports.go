package core

import (
	"context"
)

// SessionStore defines the interface for persisting engagement sessions
type SessionStore interface {
	// Get retrieves a session by identifier
	Get(ctx context.Context, id string) (*Session, error)

	// Put stores or replaces a session
	Put(ctx context.Context, session *Session) error

	// Delete removes a session
	Delete(ctx context.Context, id string) error

	// Cleanup removes sessions that have been idle past their TTL
	Cleanup(ctx context.Context) error
}

// ReplyGenerator defines the interface for producing persona replies.
// Implementations may fail; callers fall back to rule-based replies and
// never let a generation error reach the engagement engine.
type ReplyGenerator interface {
	// GenerateReply produces the persona reply for a scam-classified session
	GenerateReply(ctx context.Context, text string, history []Message, session *Session) (string, error)

	// GenerateSafeReply produces a neutral reply for unclassified sessions
	GenerateSafeReply(ctx context.Context, text string) (string, error)
}

// Reporter delivers the final intelligence of a terminated session.
// Delivery is best-effort: a failure is logged by the engine and never
// blocks session deletion.
type Reporter interface {
	Report(ctx context.Context, session *Session) error
}
