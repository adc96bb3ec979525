package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
)

// Mailer delivers outbound email through an HTTP mail relay. Delivery is a
// courtesy: callers log failures and never surface them to the client.
type Mailer struct {
	endpoint string
	from     string
}

type mailRequest struct {
	From     string `json:"from"`
	To       string `json:"to"`
	Subject  string `json:"subject"`
	HTMLBody string `json:"html_body"`
}

func NewMailer(endpoint, from string) *Mailer {
	return &Mailer{endpoint: endpoint, from: from}
}

func (m *Mailer) Send(to, subject, htmlBody string) error {
	if m == nil || m.endpoint == "" || to == "" {
		return nil
	}

	body, err := json.Marshal(mailRequest{
		From:     m.from,
		To:       to,
		Subject:  subject,
		HTMLBody: htmlBody,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal mail payload: %w", err)
	}

	resp, err := http.Post(m.endpoint, "application/json", bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to reach mail relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("mail relay returned status %d", resp.StatusCode)
	}

	return nil
}
