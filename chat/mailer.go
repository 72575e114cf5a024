package chat

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// Mailer builds mailto: links for the support inbox. The links are handed
// back to the browser, which opens the staff member's mail client with the
// message prefilled.
type Mailer struct {
	recipient string
}

func NewMailer(recipient string) *Mailer {
	return &Mailer{recipient: recipient}
}

// InkRequest builds the toner request mail for the given cartridge color
// and library location.
func (m *Mailer) InkRequest(color, location string) string {
	subject := fmt.Sprintf("AI Support Toner Request - %s | %s", color, location)
	body := fmt.Sprintf("%s library requests a %s 212x Toner Cartridge.", location, color)
	return m.mailto(subject, body)
}

// History builds the conversation log mail. Button directives are stripped
// from message bodies so the log reads as plain text.
func (m *Mailer) History(messages []Message, now time.Time) string {
	lines := make([]string, len(messages))
	for i, msg := range messages {
		lines[i] = fmt.Sprintf("%s: %s", strings.ToUpper(msg.Role), StripDirectives(msg.Content))
	}
	subject := fmt.Sprintf("LBSYS AI Log - %s", now.Format("02/01/2006"))
	body := "Chat history:\n\n" + strings.Join(lines, "\n\n")
	return m.mailto(subject, body)
}

func (m *Mailer) mailto(subject, body string) string {
	return fmt.Sprintf("mailto:%s?subject=%s&body=%s", m.recipient, escape(subject), escape(body))
}

// escape percent-encodes for a mailto query. QueryEscape's "+" for spaces
// is not understood by mail clients, so spaces become %20.
func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
