package chat

import (
	"strings"
	"testing"
	"time"
)

func TestInkRequestMailto(t *testing.T) {
	mailer := NewMailer("max.thomson@kapiticoast.govt.nz")

	got := mailer.InkRequest("Cyan", "Waikanae")
	if !strings.HasPrefix(got, "mailto:max.thomson@kapiticoast.govt.nz?") {
		t.Fatalf("unexpected recipient: %s", got)
	}
	if !strings.Contains(got, "subject=AI%20Support%20Toner%20Request%20-%20Cyan%20%7C%20Waikanae") {
		t.Errorf("subject not encoded as expected: %s", got)
	}
	if !strings.Contains(got, "body=Waikanae%20library%20requests%20a%20Cyan%20212x%20Toner%20Cartridge.") {
		t.Errorf("body not encoded as expected: %s", got)
	}
	if strings.Contains(got, "+") {
		t.Errorf("spaces must encode as %%20 for mail clients: %s", got)
	}
}

func TestHistoryMailto(t *testing.T) {
	mailer := NewMailer("max.thomson@kapiticoast.govt.nz")

	messages := []Message{
		{Role: RoleUser, Content: "The gates are alarming"},
		{Role: RoleModel, Content: "Try a restart. [[Done]]"},
	}
	now := time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)

	got := mailer.History(messages, now)
	if !strings.Contains(got, "subject=LBSYS%20AI%20Log%20-%2009%2F03%2F2026") {
		t.Errorf("subject not encoded as expected: %s", got)
	}
	// Roles are uppercased and button directives stripped from the log
	if !strings.Contains(got, "USER%3A%20The%20gates%20are%20alarming") {
		t.Errorf("user line missing: %s", got)
	}
	if strings.Contains(got, "Done%5D%5D") || strings.Contains(got, "%5B%5B") {
		t.Errorf("directives should be stripped from the log: %s", got)
	}
	if !strings.Contains(got, "MODEL%3A%20Try%20a%20restart.%20") {
		t.Errorf("model line missing: %s", got)
	}
}
