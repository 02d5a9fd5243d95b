package reply

import (
	"strings"
	"testing"

	"github.com/JerrySundi/honeypot/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestPriorityTargetOrdering(t *testing.T) {
	ev := core.NewEvidence()

	// Opening turns build rapport regardless of evidence
	assert.Contains(t, PriorityTarget(ev, 1), "scared")

	// After that the chase order is link, phone, UPI, bank details, email
	assert.Contains(t, PriorityTarget(ev, 3), "send it again")

	ev.PhishingLinks = []string{"http://evil.in"}
	assert.Contains(t, PriorityTarget(ev, 3), "phone number")

	ev.PhoneNumbers = []string{"+919876543210"}
	assert.Contains(t, PriorityTarget(ev, 3), "UPI")

	ev.UPIIDs = []string{"x@paytm"}
	assert.Contains(t, PriorityTarget(ev, 3), "IFSC")

	ev.BankAccounts = []string{"123456789"}
	ev.IFSCCodes = []string{"HDFC0001234"}
	assert.Contains(t, PriorityTarget(ev, 3), "email")

	ev.EmailAddresses = []string{"a@b.com"}
	assert.Contains(t, PriorityTarget(ev, 9), "one more number")

	ev.PhoneNumbers = append(ev.PhoneNumbers, "+918888888888")
	assert.Contains(t, PriorityTarget(ev, 9), "follow-up")
}

func TestBuildContextEmptyHistory(t *testing.T) {
	session := core.NewSession("s-1")
	session.MessageCount = 1

	prompt := BuildContext(nil, session)
	assert.Contains(t, prompt, "(Start of conversation)")
	assert.Contains(t, prompt, "Nothing extracted yet")
}

func TestBuildContextKeepsLastFourTurns(t *testing.T) {
	session := core.NewSession("s-1")
	session.MessageCount = 6

	history := []core.Message{
		{Sender: "scammer", Text: "first"},
		{Sender: "user", Text: "second"},
		{Sender: "scammer", Text: "third"},
		{Sender: "user", Text: "fourth"},
		{Sender: "scammer", Text: "fifth"},
		{Sender: "user", Text: "sixth"},
	}

	prompt := BuildContext(history, session)
	assert.NotContains(t, prompt, "first")
	assert.NotContains(t, prompt, "second")
	assert.Contains(t, prompt, "THEM: third")
	assert.Contains(t, prompt, "YOU: fourth")
	assert.Contains(t, prompt, "THEM: fifth")
	assert.Contains(t, prompt, "YOU: sixth")
}

func TestBuildContextShowsGatheredEvidence(t *testing.T) {
	session := core.NewSession("s-1")
	session.MessageCount = 5
	session.Evidence = session.Evidence.Merge(&core.Evidence{
		UPIIDs:       []string{"fraud@paytm"},
		PhoneNumbers: []string{"+919876543210"},
	})

	prompt := BuildContext(nil, session)
	assert.Contains(t, prompt, "UPI IDs: fraud@paytm")
	assert.Contains(t, prompt, "Phone Numbers: +919876543210")
	assert.False(t, strings.Contains(prompt, "Nothing extracted yet"))
}
