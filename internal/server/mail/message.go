// Package mail delivers volunteer emails over SMTP or Amazon SES and keeps
// whatever cannot be delivered until the service comes back online.
package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/mercury/internal/common"
)

// ErrOffline is returned by Manager.Send when a message was queued instead
// of delivered.
var ErrOffline = common.ErrMailOffline

// Message is one outbound email. HTML is optional.
type Message struct {
	To      string `json:"to"`
	From    string `json:"from"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}

func (m *Message) validate() error {
	var missing []string
	if m.To == "" {
		missing = append(missing, "to")
	}
	if m.From == "" {
		missing = append(missing, "from")
	}
	if m.Subject == "" {
		missing = append(missing, "subject")
	}
	if m.Text == "" {
		missing = append(missing, "text")
	}
	if len(missing) > 0 {
		return fmt.Errorf("message is missing %s", strings.Join(missing, ", "))
	}
	return nil
}

// Sender is a delivery backend.
type Sender interface {
	Send(ctx context.Context, msg *Message) error
	// Verify checks that the backend is reachable and accepts our credentials.
	Verify(ctx context.Context) error
}
