package smtp

import (
	"context"

	"github.com/mrivero/notemail/internal/domain"
	"github.com/mrivero/notemail/internal/observability"
)

// MockMailer logs instead of sending. Useful for local development
// without SMTP credentials.
type MockMailer struct{}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) Deliver(_ context.Context, e *domain.OutboundEmail) error {
	observability.WithFields("component", "mock_mailer").Info("pretending to deliver email",
		"subject", e.SubjectLine,
		"to", e.ToAddress,
		"body_bytes", len(e.BodyHTML),
		"attachments", len(e.Inline),
	)
	return nil
}
