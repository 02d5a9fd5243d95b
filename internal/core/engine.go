package core

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrSessionNotFound is returned by session stores for unknown identifiers
var ErrSessionNotFound = errors.New("session not found")

// Extractor turns one message's text into a categorized evidence record
type Extractor interface {
	Extract(text string) *Evidence
}

// Scorer scores one message for scam likelihood. The history parameter is
// accepted for interface symmetry but current implementations score the
// message text alone.
type Scorer interface {
	Score(text string, history []Message) *ScoreResult
}

// EngagementPolicy holds the thresholds of the four termination predicates
type EngagementPolicy struct {
	// MaxMessages ends the engagement unconditionally once reached
	MaxMessages int
	// CombinedEvidenceMin is the critical artifact count that, together with
	// CombinedMessageFloor messages, ends the engagement
	CombinedEvidenceMin  int
	CombinedMessageFloor int
	// StagnationFloor ends engagements that produced no critical artifact
	StagnationFloor int
}

// DefaultEngagementPolicy mirrors the thresholds the honeypot has always used
func DefaultEngagementPolicy() EngagementPolicy {
	return EngagementPolicy{
		MaxMessages:          20,
		CombinedEvidenceMin:  3,
		CombinedMessageFloor: 10,
		StagnationFloor:      15,
	}
}

// TurnResult is the outcome of processing one incoming message
type TurnResult struct {
	// Session is a snapshot of the session after the transition. When the
	// turn terminated the engagement the session has already been removed
	// from the store; the snapshot is still valid for reply generation.
	Session *Session
	// NewEvidence is what this message alone contributed
	NewEvidence *Evidence
	// Terminated reports whether this turn ended the engagement
	Terminated bool
	// TerminationReason names the predicate that fired, empty otherwise
	TerminationReason string
}

// EngagementService owns the session lifecycle: it merges evidence turn over
// turn, invokes the scorer exactly once per session (sticky verdict) and
// decides when the engagement ends. Transitions for the same session
// identifier are serialized with a per-identifier lock; sessions with
// different identifiers proceed independently.
type EngagementService struct {
	store     SessionStore
	extractor Extractor
	scorer    Scorer
	reporter  Reporter
	policy    EngagementPolicy
	logger    *zap.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewEngagementService creates a new engagement engine
func NewEngagementService(
	store SessionStore,
	extractor Extractor,
	scorer Scorer,
	reporter Reporter,
	policy EngagementPolicy,
	logger *zap.Logger,
) *EngagementService {
	return &EngagementService{
		store:     store,
		extractor: extractor,
		scorer:    scorer,
		reporter:  reporter,
		policy:    policy,
		logger:    logger,
		locks:     make(map[string]*sync.Mutex),
	}
}

// acquireSessionLock returns the held mutex serializing transitions for one
// identifier. Termination retires a session's mutex, so a waiter that finally
// acquires one must confirm it is still the mutex registered for the
// identifier; otherwise another transition may already be running on a
// replacement. On a stale acquisition it starts over.
func (s *EngagementService) acquireSessionLock(id string) *sync.Mutex {
	for {
		s.mu.Lock()
		lock, ok := s.locks[id]
		if !ok {
			lock = &sync.Mutex{}
			s.locks[id] = lock
		}
		s.mu.Unlock()

		lock.Lock()

		s.mu.Lock()
		current := s.locks[id]
		s.mu.Unlock()
		if current == lock {
			return lock
		}
		lock.Unlock()
	}
}

// releaseLock drops the per-session mutex after the session is deleted
func (s *EngagementService) releaseLock(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, id)
}

// HandleMessage runs the state transition for one incoming message:
// load or create the session, merge extracted evidence, score while
// unclassified, then evaluate the termination predicates. Reply generation
// is the caller's concern and never affects this transition.
func (s *EngagementService) HandleMessage(ctx context.Context, sessionID string, msg Message) (*TurnResult, error) {
	lock := s.acquireSessionLock(sessionID)
	defer lock.Unlock()

	session, err := s.store.Get(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
		session = NewSession(sessionID)
		s.logger.Info("Created new session", zap.String("session_id", sessionID))
	}

	session.MessageCount++

	newEvidence := s.extractor.Extract(msg.Text)
	session.Evidence = session.Evidence.Merge(newEvidence)
	if !newEvidence.IsEmpty() {
		s.logger.Info("Extracted new intelligence",
			zap.String("session_id", sessionID),
			zap.Strings("bank_accounts", newEvidence.BankAccounts),
			zap.Strings("upi_ids", newEvidence.UPIIDs),
			zap.Strings("phone_numbers", newEvidence.PhoneNumbers),
			zap.Strings("links", newEvidence.PhishingLinks))
	}

	// The scorer runs only while the session is unclassified; once the
	// verdict is frozen further messages never change it.
	if !session.ScamDetected() {
		result := s.scorer.Score(msg.Text, nil)
		if result.IsScam {
			session.Classify(result.Score, result.Category)
			s.logger.Info("Scam detected",
				zap.String("session_id", sessionID),
				zap.Float64("confidence", result.Score),
				zap.String("category", string(result.Category)),
				zap.String("reason", result.Reason))
		}
	}

	terminate, reason := s.shouldTerminate(session)
	if terminate && !session.TerminationTriggered {
		session.TerminationTriggered = true
		s.terminate(ctx, session, reason)
		return &TurnResult{
			Session:           session,
			NewEvidence:       newEvidence,
			Terminated:        true,
			TerminationReason: reason,
		}, nil
	}

	session.UpdatedAt = time.Now()
	if err := s.store.Put(ctx, session); err != nil {
		return nil, err
	}

	if session.MessageCount%3 == 0 {
		s.logSessionStats(session)
	}

	return &TurnResult{Session: session, NewEvidence: newEvidence}, nil
}

// shouldTerminate evaluates the four termination predicates. Each predicate
// is independent; the final outcome is their disjunction, so evaluation
// order never changes the result.
func (s *EngagementService) shouldTerminate(session *Session) (bool, string) {
	critical := session.Evidence.CriticalCount()

	if session.MessageCount >= s.policy.MaxMessages {
		return true, "message limit reached"
	}
	if len(session.Evidence.BankAccounts) >= 1 && len(session.Evidence.UPIIDs) >= 1 {
		return true, "sufficient intelligence gathered"
	}
	if critical >= s.policy.CombinedEvidenceMin && session.MessageCount >= s.policy.CombinedMessageFloor {
		return true, "multiple intelligence pieces gathered"
	}
	if session.MessageCount >= s.policy.StagnationFloor && critical == 0 {
		return true, "no progress after many messages"
	}
	return false, ""
}

// terminate fires the one-shot termination side effect: report when the
// session was classified as a scam, then remove it from the store. Reporting
// is best-effort; a callback failure never prevents deletion.
func (s *EngagementService) terminate(ctx context.Context, session *Session, reason string) {
	s.logger.Info("Terminating engagement",
		zap.String("session_id", session.ID),
		zap.String("reason", reason),
		zap.Bool("scam_detected", session.ScamDetected()))
	s.logSessionStats(session)

	if session.ScamDetected() {
		if err := s.reporter.Report(ctx, session); err != nil {
			s.logger.Warn("Final report delivery failed",
				zap.String("session_id", session.ID),
				zap.Error(err))
		}
	}

	if err := s.store.Delete(ctx, session.ID); err != nil {
		s.logger.Error("Failed to delete terminated session",
			zap.String("session_id", session.ID),
			zap.Error(err))
	}
	s.releaseLock(session.ID)
}

// logSessionStats emits a structured snapshot of the session state
func (s *EngagementService) logSessionStats(session *Session) {
	s.logger.Info("Session stats",
		zap.String("session_id", session.ID),
		zap.Int("messages", session.MessageCount),
		zap.Bool("scam_detected", session.ScamDetected()),
		zap.Float64("confidence", session.Confidence()),
		zap.Int("bank_accounts", len(session.Evidence.BankAccounts)),
		zap.Int("upi_ids", len(session.Evidence.UPIIDs)),
		zap.Int("phone_numbers", len(session.Evidence.PhoneNumbers)),
		zap.Int("links", len(session.Evidence.PhishingLinks)),
		zap.Int("keywords", len(session.Evidence.SuspiciousKeywords)))
}
