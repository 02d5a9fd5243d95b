package gateway

import (
	"context"
	"io"
	"net/mail"
	"time"

	"github.com/JerrySundi/honeypot/internal/core"
	"github.com/JerrySundi/honeypot/internal/utils"
	"github.com/emersion/go-smtp"
	"go.uber.org/zap"
)

// SMTPGateway feeds emailed scam messages into the engagement engine.
// Each sender address maps to one engagement session, so a scammer who
// keeps mailing the honeypot keeps feeding the same session. Replies are
// logged rather than mailed back; outbound delivery is the MTA's job.
type SMTPGateway struct {
	engine        *core.EngagementService
	generator     core.ReplyGenerator
	fallback      core.ReplyGenerator
	textProcessor *utils.TextProcessor
	logger        *zap.Logger
	listenAddr    string
	maxTextSize   int
	server        *smtp.Server
}

// NewSMTPGateway creates a new SMTP gateway
func NewSMTPGateway(
	engine *core.EngagementService,
	generator core.ReplyGenerator,
	fallback core.ReplyGenerator,
	textProcessor *utils.TextProcessor,
	logger *zap.Logger,
	listenAddr string,
	maxTextSize int,
) *SMTPGateway {
	return &SMTPGateway{
		engine:        engine,
		generator:     generator,
		fallback:      fallback,
		textProcessor: textProcessor,
		logger:        logger,
		listenAddr:    listenAddr,
		maxTextSize:   maxTextSize,
	}
}

// Start starts the SMTP server
func (g *SMTPGateway) Start() error {
	g.server = smtp.NewServer(&smtpBackend{gateway: g})

	g.server.Addr = g.listenAddr
	g.server.Domain = "localhost"
	g.server.ReadTimeout = 30 * time.Second
	g.server.WriteTimeout = 30 * time.Second
	g.server.MaxMessageBytes = 10 * 1024 * 1024 // 10MB
	g.server.MaxRecipients = 10
	g.server.AllowInsecureAuth = true

	g.logger.Info("SMTP gateway starting", zap.String("address", g.listenAddr))

	go func() {
		if err := g.server.ListenAndServe(); err != nil {
			if err != smtp.ErrServerClosed {
				g.logger.Error("SMTP server error", zap.Error(err))
			}
		}
	}()

	return nil
}

// Stop stops the SMTP server
func (g *SMTPGateway) Stop() error {
	if g.server != nil {
		return g.server.Close()
	}
	return nil
}

// smtpBackend implements the go-smtp Backend interface
type smtpBackend struct {
	gateway *SMTPGateway
}

// NewSession creates a new SMTP session
func (b *smtpBackend) NewSession(_ *smtp.Conn) (smtp.Session, error) {
	return &smtpSession{gateway: b.gateway}, nil
}

// smtpSession implements the go-smtp Session interface
type smtpSession struct {
	gateway *SMTPGateway
	sender  string
}

// Reset resets the session state
func (s *smtpSession) Reset() {
	s.sender = ""
}

// AuthPlain handles PLAIN authentication (not needed for the honeypot)
func (s *smtpSession) AuthPlain(_ []byte) error {
	return smtp.ErrAuthUnsupported
}

// Mail sets the sender address
func (s *smtpSession) Mail(from string, _ *smtp.MailOptions) error {
	s.sender = from
	return nil
}

// Rcpt accepts any recipient; every mailbox is the honeypot
func (s *smtpSession) Rcpt(_ string, _ *smtp.RcptOptions) error {
	return nil
}

// Data parses the email and runs one engagement turn keyed by the sender
func (s *smtpSession) Data(r io.Reader) error {
	msg, err := mail.ReadMessage(r)
	if err != nil {
		s.gateway.logger.Error("Failed to parse email message", zap.Error(err))
		return err
	}

	textContent, err := extractTextFromMessage(msg)
	if err != nil {
		s.gateway.logger.Error("Failed to extract text content", zap.Error(err))
		return err
	}

	text := s.gateway.textProcessor.ProcessText(textContent, s.gateway.maxTextSize)

	message := core.Message{
		Sender:    "scammer",
		Text:      text,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	turn, err := s.gateway.engine.HandleMessage(ctx, s.sender, message)
	if err != nil {
		s.gateway.logger.Error("Failed to process emailed message",
			zap.String("sender", s.sender),
			zap.Error(err))
		return err
	}

	reply := s.generateReply(ctx, text, turn.Session)
	s.gateway.logger.Info("Processed emailed message",
		zap.String("sender", s.sender),
		zap.Bool("scam_detected", turn.Session.ScamDetected()),
		zap.Bool("terminated", turn.Terminated),
		zap.String("reply", reply))

	return nil
}

func (s *smtpSession) generateReply(ctx context.Context, text string, session *core.Session) string {
	if session.ScamDetected() {
		reply, err := s.gateway.generator.GenerateReply(ctx, text, nil, session)
		if err == nil {
			return reply
		}
		s.gateway.logger.Warn("Reply generation failed, using fallback",
			zap.String("sender", s.sender),
			zap.Error(err))
		reply, _ = s.gateway.fallback.GenerateReply(ctx, text, nil, session)
		return reply
	}

	reply, err := s.gateway.generator.GenerateSafeReply(ctx, text)
	if err != nil {
		reply, _ = s.gateway.fallback.GenerateSafeReply(ctx, text)
	}
	return reply
}

// Logout handles SMTP logout
func (s *smtpSession) Logout() error {
	return nil
}
