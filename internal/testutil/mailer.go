package testutil

import (
	"context"
	"sync"
)

// SentMail is one message captured by RecordingMailer.
type SentMail struct {
	To      string
	Subject string
	HTML    string
}

// RecordingMailer captures messages instead of delivering them.
type RecordingMailer struct {
	mu   sync.Mutex
	sent []SentMail

	Err error
}

func (m *RecordingMailer) Send(_ context.Context, to, subject, htmlBody string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMail{To: to, Subject: subject, HTML: htmlBody})
	return m.Err
}

func (m *RecordingMailer) Sent() []SentMail {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SentMail(nil), m.sent...)
}
