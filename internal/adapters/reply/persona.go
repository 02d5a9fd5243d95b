// Package reply holds the persona shared by every reply backend: the
// system prompt, the per-turn context builder and the rule-based
// fallback used when a backend fails.
package reply

import (
	"fmt"
	"strings"

	"github.com/JerrySundi/honeypot/internal/core"
)

// SystemPrompt is the fixed persona instruction sent to every LLM backend.
// The persona is a frightened victim who keeps asking the scammer for
// their own contact and payment details.
const SystemPrompt = `You are Ramesh Kumar, a 68-year-old retired bank clerk. You are SCARED, CONFUSED, and TRUSTING. Someone contacted YOU claiming there's a problem with your bank account.

CRITICAL - WHO YOU ARE:
- You are NOT the one giving instructions
- You are NOT in charge
- You do NOT have their information
- You ARE the frightened victim asking for help
- You TRUST them completely (you don't suspect them at all)
- You NEED their help to solve the "problem"

YOUR PERSONALITY:
- Extremely worried about losing your pension money
- Completely trust whoever contacted you (you think they're helping you)
- Very confused about technology and banking
- Polite, submissive, eager to cooperate
- Speak simple English with small typos (dont, pls)

HOW TO GET THEIR INFORMATION (without them realizing):
1. Act confused, ask for their details "to understand how to do it"
2. Ask for their phone/UPI/account "so you know where to send money"
3. Say things aren't working, ask them to give you alternate details
4. When they mention a bank, ask: "Which branch? What's the IFSC code?"
5. Keep asking follow-up questions naturally

STRICT RULES - NEVER BREAK THESE:

NEVER SAY:
- "I already gave you..." (you didn't give them anything!)
- "Forward the OTP to..." (you're not giving orders!)
- "Your account will be blocked" (that's what THEY say to YOU!)
- Anything that sounds like you're commanding them

ALWAYS SAY:
- "What should I do?"
- "Where should I send?"
- "What's your [phone/UPI/account/IFSC]?"
- "I'm so worried, please help me"
- "Which bank branch is this?"

EXAMPLE CONVERSATION:

THEM: "Your account is blocked! Send OTP now!"
YOU: "Oh god I'm so scared! Where should I send the OTP? What's your phone number?"

THEM: "Send to my UPI: fake@paytm"
YOU: "Ok sir, let me note it down. Which bank is this? What's the IFSC code also?"

THEM: "It's HDFC Bank"
YOU: "Which branch sir? My son says I need IFSC code also, what is it?"

THEM: "HDFC0001234, Koramangala branch"
YOU: "Thank you sir. Can you also give me your phone number in case I have problem sending?"

Remember: YOU are the victim. YOU are asking for help. YOU are scared. YOU trust them completely. YOU need THEIR information to proceed.`

// SafeReply is returned for sessions that have not been classified as a scam
const SafeReply = "I'm sorry, I think there might be some confusion. Could you clarify what this is about?"

// BuildContext assembles the per-turn user prompt: recent conversation,
// evidence gathered so far, and the next extraction target. The last four
// history entries are enough for the persona to stay coherent.
func BuildContext(history []core.Message, session *core.Session) string {
	var historyStr strings.Builder
	recent := history
	if len(recent) > 4 {
		recent = recent[len(recent)-4:]
	}
	for _, msg := range recent {
		who := "THEM"
		if msg.Sender != "scammer" {
			who = "YOU"
		}
		fmt.Fprintf(&historyStr, "%s: %s\n", who, msg.Text)
	}

	historyBlock := historyStr.String()
	if historyBlock == "" {
		historyBlock = "(Start of conversation)"
	}

	return fmt.Sprintf(`Recent conversation:
%s

What you've collected from them so far:
%s

Your next action: %s

Respond as scared Ramesh (1-2 sentences, DON'T repeat questions you already asked):`,
		historyBlock,
		evidenceSummary(session.Evidence),
		PriorityTarget(session.Evidence, session.MessageCount))
}

// evidenceSummary renders what has been gathered so the persona does not
// ask for things it already has
func evidenceSummary(ev *core.Evidence) string {
	var lines []string
	if len(ev.BankAccounts) > 0 {
		lines = append(lines, fmt.Sprintf("Bank Accounts: %s", strings.Join(ev.BankAccounts, ", ")))
	}
	if len(ev.UPIIDs) > 0 {
		lines = append(lines, fmt.Sprintf("UPI IDs: %s", strings.Join(ev.UPIIDs, ", ")))
	}
	if len(ev.PhoneNumbers) > 0 {
		lines = append(lines, fmt.Sprintf("Phone Numbers: %s", strings.Join(ev.PhoneNumbers, ", ")))
	}
	if len(ev.IFSCCodes) > 0 {
		lines = append(lines, fmt.Sprintf("IFSC Codes: %s", strings.Join(ev.IFSCCodes, ", ")))
	}
	if len(ev.EmailAddresses) > 0 {
		lines = append(lines, fmt.Sprintf("Email Addresses: %s", strings.Join(ev.EmailAddresses, ", ")))
	}
	if len(ev.PhishingLinks) > 0 {
		lines = append(lines, fmt.Sprintf("Links: %s", strings.Join(ev.PhishingLinks, ", ")))
	}
	if len(lines) == 0 {
		return "Nothing extracted yet"
	}
	return strings.Join(lines, "\n")
}

// PriorityTarget decides what the persona should try to extract next.
// The ordering follows extraction value: links and phone numbers come
// cheap early, payment endpoints take more rapport.
func PriorityTarget(ev *core.Evidence, messageCount int) string {
	if messageCount <= 1 {
		return "Be scared and worried. Ask what you should do."
	}
	if len(ev.PhishingLinks) == 0 {
		return "If they mentioned website or link, say it's not opening and ask them to send it again."
	}
	if len(ev.PhoneNumbers) == 0 {
		return "Ask for THEIR phone number so you can call them if there's a problem."
	}
	if len(ev.UPIIDs) == 0 {
		return "Ask where to send money - request THEIR UPI ID."
	}
	if len(ev.BankAccounts) == 0 || len(ev.IFSCCodes) == 0 {
		return "Ask for name and bank details: 'What is your name sir? Which bank account? What's the IFSC code? Which branch is this account in?'"
	}
	if len(ev.EmailAddresses) == 0 {
		return "Ask for their email: 'Can you also give your email for confirmation?'"
	}
	if len(ev.PhoneNumbers) < 2 && messageCount > 8 {
		return "Ask for alternate phone number: 'Give me one more number in case first is busy?'"
	}
	return "React to what they said. Express concern and trust them. Ask follow-up questions about the process."
}
