package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeStore is a map-backed SessionStore for engine tests
type fakeStore struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func newFakeStore() *fakeStore {
	return &fakeStore{sessions: make(map[string]*Session)}
}

func (s *fakeStore) Get(_ context.Context, id string) (*Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *fakeStore) Put(_ context.Context, session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return nil
}

func (s *fakeStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *fakeStore) Cleanup(_ context.Context) error { return nil }

func (s *fakeStore) contains(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.sessions[id]
	return ok
}

// fakeExtractor yields evidence for texts registered ahead of time and the
// empty record for everything else
type fakeExtractor struct {
	byText map[string]*Evidence
}

func (e *fakeExtractor) Extract(text string) *Evidence {
	if ev, ok := e.byText[text]; ok {
		return ev
	}
	return NewEvidence()
}

// fakeScorer flags any text containing "scam" with a fixed verdict
type fakeScorer struct {
	score    float64
	category ScamCategory
}

func (s *fakeScorer) Score(text string, _ []Message) *ScoreResult {
	if strings.Contains(text, "scam") {
		return &ScoreResult{IsScam: true, Score: s.score, Reason: "test indicators", Category: s.category}
	}
	return &ScoreResult{Reason: "No scam indicators", Category: CategoryGeneralScam}
}

// captureReporter records every reported session
type captureReporter struct {
	mu       sync.Mutex
	reported []*Session
	err      error
}

func (r *captureReporter) Report(_ context.Context, session *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reported = append(r.reported, session)
	return r.err
}

func (r *captureReporter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.reported)
}

func newTestEngine(store SessionStore, extractor Extractor, scorer Scorer, reporter Reporter) *EngagementService {
	return NewEngagementService(store, extractor, scorer, reporter, DefaultEngagementPolicy(), zap.NewNop())
}

func msg(text string) Message {
	return Message{Sender: "scammer", Text: text}
}

func TestStagnantSessionTerminatesWithoutReport(t *testing.T) {
	store := newFakeStore()
	reporter := &captureReporter{}
	engine := newTestEngine(store, &fakeExtractor{}, &fakeScorer{}, reporter)

	ctx := context.Background()
	var last *TurnResult
	for i := 0; i < 15; i++ {
		var err error
		last, err = engine.HandleMessage(ctx, "dull", msg("hello friend"))
		require.NoError(t, err)
		if last.Terminated {
			break
		}
	}

	require.True(t, last.Terminated)
	assert.Equal(t, "no progress after many messages", last.TerminationReason)
	assert.Equal(t, 15, last.Session.MessageCount)
	assert.False(t, last.Session.ScamDetected())
	assert.Equal(t, 0, reporter.count())
	assert.False(t, store.contains("dull"))
}

func TestBankAndUPITerminatesWithReport(t *testing.T) {
	store := newFakeStore()
	reporter := &captureReporter{}
	extractor := &fakeExtractor{byText: map[string]*Evidence{
		"scam account 123456789012": {BankAccounts: []string{"123456789012"}},
		"pay to fraud@paytm":        {UPIIDs: []string{"fraud@paytm"}},
	}}
	engine := newTestEngine(store, extractor, &fakeScorer{score: 0.65, category: CategoryThreatBasedScam}, reporter)

	ctx := context.Background()
	turn, err := engine.HandleMessage(ctx, "s-1", msg("scam account 123456789012"))
	require.NoError(t, err)
	assert.False(t, turn.Terminated)
	assert.True(t, turn.Session.ScamDetected())

	turn, err = engine.HandleMessage(ctx, "s-1", msg("pay to fraud@paytm"))
	require.NoError(t, err)

	require.True(t, turn.Terminated)
	assert.Equal(t, "sufficient intelligence gathered", turn.TerminationReason)
	assert.Equal(t, 2, turn.Session.MessageCount)

	require.Equal(t, 1, reporter.count())
	reported := reporter.reported[0]
	assert.Equal(t, []string{"123456789012"}, reported.Evidence.BankAccounts)
	assert.Equal(t, []string{"fraud@paytm"}, reported.Evidence.UPIIDs)
	assert.False(t, store.contains("s-1"))
}

func TestMessageLimitTerminates(t *testing.T) {
	store := newFakeStore()
	reporter := &captureReporter{}
	// A link on the first turn keeps the stagnation predicate quiet without
	// tripping the combined evidence predicate
	extractor := &fakeExtractor{byText: map[string]*Evidence{
		"see link http://evil.in": {PhishingLinks: []string{"http://evil.in"}},
	}}
	engine := newTestEngine(store, extractor, &fakeScorer{}, reporter)

	ctx := context.Background()
	var last *TurnResult
	var err error
	last, err = engine.HandleMessage(ctx, "chatty", msg("see link http://evil.in"))
	require.NoError(t, err)
	for i := 0; i < 19; i++ {
		last, err = engine.HandleMessage(ctx, "chatty", msg("anything else"))
		require.NoError(t, err)
		if last.Terminated {
			break
		}
	}

	require.True(t, last.Terminated)
	assert.Equal(t, "message limit reached", last.TerminationReason)
	assert.Equal(t, 20, last.Session.MessageCount)
}

func TestCombinedEvidenceTerminatesAtMessageFloor(t *testing.T) {
	store := newFakeStore()
	reporter := &captureReporter{}
	extractor := &fakeExtractor{byText: map[string]*Evidence{
		"contact details": {
			PhoneNumbers:  []string{"+919876543210", "+918888888888"},
			PhishingLinks: []string{"http://evil.in"},
		},
	}}
	engine := newTestEngine(store, extractor, &fakeScorer{}, reporter)

	ctx := context.Background()
	turn, err := engine.HandleMessage(ctx, "s-floor", msg("contact details"))
	require.NoError(t, err)
	// Three critical artifacts but only one message: no termination yet
	assert.False(t, turn.Terminated)

	var last *TurnResult
	for i := 0; i < 9; i++ {
		last, err = engine.HandleMessage(ctx, "s-floor", msg("hello"))
		require.NoError(t, err)
		if last.Terminated {
			break
		}
	}

	require.True(t, last.Terminated)
	assert.Equal(t, "multiple intelligence pieces gathered", last.TerminationReason)
	assert.Equal(t, 10, last.Session.MessageCount)
}

func TestClassificationIsSticky(t *testing.T) {
	store := newFakeStore()
	engine := newTestEngine(store, &fakeExtractor{}, &fakeScorer{score: 0.6, category: CategoryPrizeScam}, &captureReporter{})

	ctx := context.Background()
	turn, err := engine.HandleMessage(ctx, "sticky", msg("scam prize"))
	require.NoError(t, err)
	require.True(t, turn.Session.ScamDetected())
	assert.Equal(t, CategoryPrizeScam, turn.Session.Category())
	assert.Equal(t, 0.6, turn.Session.Confidence())

	// A second positive message must not rewrite the verdict
	turn, err = engine.HandleMessage(ctx, "sticky", msg("scam again"))
	require.NoError(t, err)
	assert.Equal(t, CategoryPrizeScam, turn.Session.Category())
	assert.Equal(t, 0.6, turn.Session.Confidence())
}

func TestTerminatedIdentifierStartsFresh(t *testing.T) {
	store := newFakeStore()
	reporter := &captureReporter{}
	extractor := &fakeExtractor{byText: map[string]*Evidence{
		"scam bank 123456789 and upi x@ybl": {
			BankAccounts: []string{"123456789"},
			UPIIDs:       []string{"x@ybl"},
		},
	}}
	engine := newTestEngine(store, extractor, &fakeScorer{score: 0.5, category: CategoryFinancialFraud}, reporter)

	ctx := context.Background()
	turn, err := engine.HandleMessage(ctx, "reuse", msg("scam bank 123456789 and upi x@ybl"))
	require.NoError(t, err)
	require.True(t, turn.Terminated)

	// Same identifier after termination is a brand-new engagement
	turn, err = engine.HandleMessage(ctx, "reuse", msg("hello"))
	require.NoError(t, err)
	assert.False(t, turn.Terminated)
	assert.Equal(t, 1, turn.Session.MessageCount)
	assert.False(t, turn.Session.ScamDetected())
	assert.True(t, turn.Session.Evidence.IsEmpty())
}

func TestReporterFailureStillDeletesSession(t *testing.T) {
	store := newFakeStore()
	reporter := &captureReporter{err: errors.New("endpoint down")}
	extractor := &fakeExtractor{byText: map[string]*Evidence{
		"scam bank 123456789 upi x@ybl": {
			BankAccounts: []string{"123456789"},
			UPIIDs:       []string{"x@ybl"},
		},
	}}
	engine := newTestEngine(store, extractor, &fakeScorer{score: 0.5, category: CategoryFinancialFraud}, reporter)

	turn, err := engine.HandleMessage(context.Background(), "flaky", msg("scam bank 123456789 upi x@ybl"))
	require.NoError(t, err)
	require.True(t, turn.Terminated)

	assert.Equal(t, 1, reporter.count())
	assert.False(t, store.contains("flaky"))
}

// slowStore delays reads so overlapping transitions for one identifier would
// interleave if the per-identifier lock ever stopped serializing them
type slowStore struct {
	*fakeStore
	delay time.Duration
}

func (s *slowStore) Get(ctx context.Context, id string) (*Session, error) {
	time.Sleep(s.delay)
	return s.fakeStore.Get(ctx, id)
}

func TestRetiredSessionLockDoesNotLoseTurns(t *testing.T) {
	store := &slowStore{fakeStore: newFakeStore(), delay: 10 * time.Millisecond}
	engine := newTestEngine(store, &fakeExtractor{}, &fakeScorer{}, &captureReporter{})

	// Register and hold a mutex for the identifier, the way an in-flight
	// transition would
	retired := &sync.Mutex{}
	retired.Lock()
	engine.mu.Lock()
	engine.locks["contested"] = retired
	engine.mu.Unlock()

	ctx := context.Background()
	done := make(chan error, 1)
	go func() {
		_, err := engine.HandleMessage(ctx, "contested", msg("hello"))
		done <- err
	}()

	// Let the goroutine park on the held mutex, then retire it the way
	// termination does before waking the waiter
	time.Sleep(20 * time.Millisecond)
	engine.releaseLock("contested")
	retired.Unlock()

	_, err := engine.HandleMessage(ctx, "contested", msg("hello again"))
	require.NoError(t, err)
	require.NoError(t, <-done)

	// Both turns must land; a waiter resuming on the retired mutex while a
	// replacement transition runs would lose one
	session, err := store.Get(ctx, "contested")
	require.NoError(t, err)
	assert.Equal(t, 2, session.MessageCount)
}

func TestConcurrentSessionsStayIndependent(t *testing.T) {
	store := newFakeStore()
	engine := newTestEngine(store, &fakeExtractor{}, &fakeScorer{}, &captureReporter{})

	ctx := context.Background()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("concurrent-%d", n)
			for j := 0; j < 5; j++ {
				_, err := engine.HandleMessage(ctx, id, msg("hello"))
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 8; i++ {
		session, err := store.Get(ctx, fmt.Sprintf("concurrent-%d", i))
		require.NoError(t, err)
		assert.Equal(t, 5, session.MessageCount)
	}
}
