package twilio

import (
	"strings"
	"testing"
)

func TestTwiMLWithMessage(t *testing.T) {
	body, err := TwiML("You have been unsubscribed.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := string(body)
	if !strings.Contains(out, "<Response><Message>You have been unsubscribed.</Message></Response>") {
		t.Errorf("unexpected TwiML: %s", out)
	}
	if !strings.HasPrefix(out, "<?xml") {
		t.Error("TwiML must carry the XML header")
	}
}

func TestTwiMLEscapesContent(t *testing.T) {
	body, err := TwiML("Rating: 4 < 5 & rising")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(body), "4 &lt; 5 &amp; rising") {
		t.Errorf("content not escaped: %s", body)
	}
}

func TestTwiMLEmptyReply(t *testing.T) {
	body, err := TwiML("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(string(body), "<Response></Response>") {
		t.Errorf("empty reply should produce an empty Response: %s", body)
	}
}

func TestIsConfigured(t *testing.T) {
	tests := []struct {
		name string
		sid  string
		want bool
	}{
		{"valid account sid", "AC123456", true},
		{"placeholder sid", "your_account_sid", false},
		{"empty sid", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewClient(tt.sid, "token", "+15550001111")
			if got := c.IsConfigured(); got != tt.want {
				t.Errorf("IsConfigured() = %v, want %v", got, tt.want)
			}
		})
	}
}
