// Package idle implements the supervisory auto-shutdown timer. It lives
// entirely outside the composition core: on expiry it pushes a notice
// through the chat gateway and asks the host to stop dispatching events.
package idle

import (
	"context"
	"time"

	"github.com/mrivero/notemail/internal/domain"
	"github.com/mrivero/notemail/internal/observability"
)

// Supervisor shuts the process down after a fixed window, mirroring the
// hosted deployment where the bot sleeps until its wake-up link is hit.
type Supervisor struct {
	after   time.Duration
	owner   domain.UserID
	gateway domain.ChatGateway
	wakeURL string
	stop    func()
}

// New builds a supervisor. stop is invoked after the shutdown notice has
// been sent (typically the root context's cancel).
func New(after time.Duration, owner domain.UserID, gateway domain.ChatGateway, wakeURL string, stop func()) *Supervisor {
	return &Supervisor{
		after:   after,
		owner:   owner,
		gateway: gateway,
		wakeURL: wakeURL,
		stop:    stop,
	}
}

// Run blocks until the window expires or ctx is canceled. A zero or
// negative window disables the supervisor.
func (s *Supervisor) Run(ctx context.Context) {
	if s.after <= 0 {
		return
	}

	log := observability.WithFields("component", "idle")

	timer := time.NewTimer(s.after)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	log.Info("idle window expired, shutting down", "after", s.after)

	notice := "Bot is shutting down soon!"
	if s.wakeURL != "" {
		notice += " To turn it back on, click this link: " + s.wakeURL
	}
	if err := s.gateway.SendText(ctx, s.owner, notice); err != nil {
		log.Error("failed to send shutdown notice", "error", err)
	}

	s.stop()
}
