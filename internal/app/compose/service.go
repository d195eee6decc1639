// Package compose owns the composition state machine: it admits events for
// the authorized owner, walks the session through the composition phases,
// and hands finished compositions to the mail transport.
package compose

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mrivero/notemail/internal/app/assemble"
	"github.com/mrivero/notemail/internal/app/render"
	"github.com/mrivero/notemail/internal/domain"
	"github.com/mrivero/notemail/internal/observability"
)

const unauthorizedNotice = "⛔ Unauthorized."

// Service handles inbound chat events for the single authorized owner.
// The session is a critical section: HandleEvent serializes on one mutex,
// so overlapping webhook deliveries never observe a torn session.
type Service struct {
	owner   domain.UserID
	from    string
	to      string
	gateway domain.ChatGateway
	mailer  domain.MailTransport
	now     func() time.Time

	mu      sync.Mutex
	session *domain.Session
}

func NewService(
	owner domain.UserID,
	fromAddr, toAddr string,
	gateway domain.ChatGateway,
	mailer domain.MailTransport,
) *Service {
	return &Service{
		owner:   owner,
		from:    fromAddr,
		to:      toAddr,
		gateway: gateway,
		mailer:  mailer,
		now:     time.Now,
		session: domain.NewSession(),
	}
}

// HandleEvent runs the authorization guard and then dispatches the event
// to the current phase. Every admitted event produces some reply; events
// the phase does not accept get a guidance notice and change nothing.
func (s *Service) HandleEvent(ctx context.Context, ev domain.Event) error {
	log := observability.LoggerFromContext(ctx).With("principal", ev.From())

	// Guard first: a rejected principal must not even read the session.
	if ev.From() != s.owner {
		log.Warn("unauthorized event rejected")
		return s.gateway.SendText(ctx, ev.From(), unauthorizedNotice)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch e := ev.(type) {
	case domain.TextReceived:
		return s.handleText(ctx, log, e.Text)
	case domain.ImageReceived:
		return s.handleImage(ctx, log, e)
	case domain.ButtonPressed:
		return s.handleButton(ctx, log, e.Option)
	case domain.CommandReceived:
		return s.handleCommand(ctx, log, e.Name)
	default:
		return s.reject(ctx, log)
	}
}

// Snapshot returns a copy of the current session for inspection.
func (s *Service) Snapshot() domain.Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	cp := *s.session
	cp.Lines = append([]string(nil), s.session.Lines...)
	cp.Images = append([]domain.InlineImage(nil), s.session.Images...)
	return cp
}

func (s *Service) handleText(ctx context.Context, log *slog.Logger, text string) error {
	// The begin trigger restarts composition from any phase, including
	// mid-composition.
	if text == domain.BeginTriggerText {
		return s.begin(ctx, log)
	}

	switch s.session.Phase {
	case domain.PhaseAwaitingSubject:
		s.session.Subject = text
		s.session.Phase = domain.PhaseComposing
		log.Info("subject set", "subject", text)
		v := render.SubjectSet()
		return s.gateway.SendMenu(ctx, s.owner, v.Prompt, v.Options)

	case domain.PhaseComposing:
		if text == domain.StopTriggerText {
			return s.stopComposing(ctx, log, false)
		}
		s.session.Lines = append(s.session.Lines, text)
		log.Info("line added", "lines", len(s.session.Lines))
		v := render.LineAdded()
		return s.gateway.SendMenu(ctx, s.owner, v.Prompt, v.Options)

	default:
		return s.reject(ctx, log)
	}
}

func (s *Service) handleImage(ctx context.Context, log *slog.Logger, e domain.ImageReceived) error {
	if s.session.Phase != domain.PhaseComposing {
		return s.reject(ctx, log)
	}

	s.session.Images = append(s.session.Images, domain.InlineImage{
		Filename: imageFilename(e.SourceID),
		Data:     e.Data,
	})
	log.Info("image added", "images", len(s.session.Images), "bytes", len(e.Data))

	v := render.ImageAdded()
	return s.gateway.SendMenu(ctx, s.owner, v.Prompt, v.Options)
}

func (s *Service) handleButton(ctx context.Context, log *slog.Logger, opt domain.OptionID) error {
	if c, ok := domain.CategoryFromOption(opt); ok {
		if s.session.Phase != domain.PhaseAwaitingCategory {
			return s.reject(ctx, log)
		}
		s.session.Category = c
		s.session.Phase = domain.PhaseAwaitingSubject
		log.Info("category selected", "category", c)
		return s.gateway.EditLastMessage(ctx, render.CategorySelected(c), nil)
	}

	switch opt {
	case domain.OptionBeginComposition:
		return s.begin(ctx, log)
	case domain.OptionStopComposition:
		if s.session.Phase != domain.PhaseComposing {
			return s.reject(ctx, log)
		}
		return s.stopComposing(ctx, log, true)
	case domain.OptionConfirmSend:
		if s.session.Phase != domain.PhaseAwaitingConfirm {
			return s.reject(ctx, log)
		}
		return s.dispatch(ctx, log)
	case domain.OptionConfirmCancel:
		if s.session.Phase != domain.PhaseAwaitingConfirm {
			return s.reject(ctx, log)
		}
		return s.cancel(ctx, log)
	default:
		return s.reject(ctx, log)
	}
}

func (s *Service) handleCommand(ctx context.Context, log *slog.Logger, name string) error {
	switch name {
	case domain.CommandBegin:
		return s.begin(ctx, log)
	case domain.CommandStop:
		if s.session.Phase != domain.PhaseComposing {
			return s.reject(ctx, log)
		}
		return s.stopComposing(ctx, log, false)
	case domain.CommandShowStart:
		// Show the start affordance without touching the session.
		v := render.ForPhase(domain.PhaseIdle)
		return s.gateway.SendMenu(ctx, s.owner, v.Prompt, v.Options)
	default:
		return s.reject(ctx, log)
	}
}

// begin starts (or restarts) a composition from scratch.
func (s *Service) begin(ctx context.Context, log *slog.Logger) error {
	s.session.Reset()
	s.session.Phase = domain.PhaseAwaitingCategory
	log.Info("composition started")

	v := render.ForPhase(domain.PhaseAwaitingCategory)
	return s.gateway.SendMenu(ctx, s.owner, v.Prompt, v.Options)
}

// stopComposing moves to the send/cancel confirmation. An empty
// composition is allowed; the assembler copes with it.
func (s *Service) stopComposing(ctx context.Context, log *slog.Logger, edit bool) error {
	s.session.Phase = domain.PhaseAwaitingConfirm
	log.Info("composition stopped", "lines", len(s.session.Lines), "images", len(s.session.Images))

	v := render.ForPhase(domain.PhaseAwaitingConfirm)
	if edit {
		return s.gateway.EditLastMessage(ctx, v.Prompt, v.Options)
	}
	return s.gateway.SendMenu(ctx, s.owner, v.Prompt, v.Options)
}

// dispatch assembles the composition and makes exactly one delivery
// attempt. Success resets the session; failure preserves it so the user
// can retry the send without recomposing.
func (s *Service) dispatch(ctx context.Context, log *slog.Logger) error {
	msg := assemble.Build(
		s.session.Category,
		s.session.Subject,
		s.session.Lines,
		s.session.Images,
		s.now(),
	)
	msg.FromAddress = s.from
	msg.ToAddress = s.to

	log.Info("dispatching email", "subject", msg.SubjectLine, "attachments", len(msg.Inline))

	if err := s.mailer.Deliver(ctx, msg); err != nil {
		log.Error("mail delivery failed", "error", err)
		if nerr := s.gateway.EditLastMessage(ctx, fmt.Sprintf("❌ Failed to send email: %v", err), nil); nerr != nil {
			return nerr
		}
		// Re-offer the confirmation so the send can be retried as-is.
		v := render.ForPhase(domain.PhaseAwaitingConfirm)
		return s.gateway.SendMenu(ctx, s.owner, v.Prompt, v.Options)
	}

	s.session.Reset()
	log.Info("email sent")

	if err := s.gateway.EditLastMessage(ctx, "📤 Email sent!", nil); err != nil {
		return err
	}
	v := render.ForPhase(domain.PhaseIdle)
	return s.gateway.SendMenu(ctx, s.owner, v.Prompt, v.Options)
}

func (s *Service) cancel(ctx context.Context, log *slog.Logger) error {
	s.session.Reset()
	log.Info("composition canceled")

	if err := s.gateway.EditLastMessage(ctx, "❌ Email canceled.", nil); err != nil {
		return err
	}
	v := render.ForPhase(domain.PhaseIdle)
	return s.gateway.SendMenu(ctx, s.owner, v.Prompt, v.Options)
}

func (s *Service) reject(ctx context.Context, log *slog.Logger) error {
	log.Info("event rejected", "phase", s.session.Phase)
	return s.gateway.SendText(ctx, s.owner, render.Rejection(s.session.Phase))
}

func imageFilename(sourceID string) string {
	if sourceID == "" {
		sourceID = uuid.NewString()
	}
	return "image_" + sourceID + ".jpg"
}
