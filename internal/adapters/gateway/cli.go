package gateway

import (
	"context"
	"fmt"
	"time"

	"github.com/JerrySundi/honeypot/internal/core"
	"go.uber.org/zap"
)

// CLIGateway drives the engagement engine from the command line, one
// transcript line per turn
type CLIGateway struct {
	engine    *core.EngagementService
	generator core.ReplyGenerator
	fallback  core.ReplyGenerator
	logger    *zap.Logger
	verbose   bool
}

// NewCLIGateway creates a new CLI gateway
func NewCLIGateway(
	engine *core.EngagementService,
	generator core.ReplyGenerator,
	fallback core.ReplyGenerator,
	logger *zap.Logger,
	verbose bool,
) *CLIGateway {
	return &CLIGateway{
		engine:    engine,
		generator: generator,
		fallback:  fallback,
		logger:    logger,
		verbose:   verbose,
	}
}

// ProcessMessage runs one engagement turn and prints the outcome
func (g *CLIGateway) ProcessMessage(ctx context.Context, sessionID string, text string) (*core.TurnResult, error) {
	g.logger.Debug("Processing message", zap.String("session_id", sessionID))

	message := core.Message{
		Sender:    "scammer",
		Text:      text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	turn, err := g.engine.HandleMessage(ctx, sessionID, message)
	if err != nil {
		g.logger.Error("Failed to process message", zap.Error(err))
		fmt.Printf("Error: %v\n", err)
		return nil, err
	}

	reply := g.generateReply(ctx, text, turn.Session)
	fmt.Printf("\n> %s\n", text)
	fmt.Printf("< %s\n", reply)

	if g.verbose {
		fmt.Printf("\n=== Session ===\n")
		fmt.Printf("Messages: %d\n", turn.Session.MessageCount)
		fmt.Printf("Scam detected: %t\n", turn.Session.ScamDetected())
		if turn.Session.ScamDetected() {
			fmt.Printf("Confidence: %.2f\n", turn.Session.Confidence())
			fmt.Printf("Category: %s\n", turn.Session.Category())
		}
		fmt.Printf("Bank accounts: %v\n", turn.Session.Evidence.BankAccounts)
		fmt.Printf("UPI IDs: %v\n", turn.Session.Evidence.UPIIDs)
		fmt.Printf("Phone numbers: %v\n", turn.Session.Evidence.PhoneNumbers)
		fmt.Printf("Links: %v\n", turn.Session.Evidence.PhishingLinks)
	}

	if turn.Terminated {
		fmt.Printf("\n=== Engagement ended: %s ===\n", turn.TerminationReason)
	}

	return turn, nil
}

func (g *CLIGateway) generateReply(ctx context.Context, text string, session *core.Session) string {
	if session.ScamDetected() {
		reply, err := g.generator.GenerateReply(ctx, text, nil, session)
		if err == nil {
			return reply
		}
		g.logger.Warn("Reply generation failed, using fallback", zap.Error(err))
		reply, _ = g.fallback.GenerateReply(ctx, text, nil, session)
		return reply
	}

	reply, err := g.generator.GenerateSafeReply(ctx, text)
	if err != nil {
		reply, _ = g.fallback.GenerateSafeReply(ctx, text)
	}
	return reply
}

// Start is a no-op for the CLI gateway
func (g *CLIGateway) Start() error {
	return nil
}

// Stop is a no-op for the CLI gateway
func (g *CLIGateway) Stop() error {
	return nil
}
