// Package render maps composition phases to the prompts and buttons the
// chat gateway should present. It is the single source of truth for the
// bot's control surface; the gateway adapter only translates Views into
// platform keyboards.
package render

import (
	"strings"

	"github.com/mrivero/notemail/internal/domain"
)

// View is a declarative description of what to show the user: a prompt,
// zero or more selectable options, and whether a free-text reply is also
// expected.
type View struct {
	Prompt      string
	Options     []domain.MenuOption
	ExpectsText bool
}

// ForPhase returns the view for a phase. The mapping is total: every
// reachable phase has a defined rendering.
func ForPhase(p domain.Phase) View {
	switch p {
	case domain.PhaseAwaitingCategory:
		return View{
			Prompt:  "Please select a category for your email:",
			Options: categoryOptions(),
		}
	case domain.PhaseAwaitingSubject:
		return View{
			Prompt:      "Please send the subject for your email.",
			ExpectsText: true,
		}
	case domain.PhaseComposing:
		return View{
			Prompt:      "You can now compose your email. Send lines or images. When done, press the Stop Email button.",
			Options:     []domain.MenuOption{stopOption()},
			ExpectsText: true,
		}
	case domain.PhaseAwaitingConfirm:
		return View{
			Prompt: "Do you want to send this email?",
			Options: []domain.MenuOption{
				{ID: domain.OptionConfirmSend, Label: "✅ Send"},
				{ID: domain.OptionConfirmCancel, Label: "❌ Cancel"},
			},
		}
	default: // PhaseIdle
		return View{
			Prompt: "Press the button below to start composing an email.",
			Options: []domain.MenuOption{
				{ID: domain.OptionBeginComposition, Label: domain.BeginTriggerText},
			},
		}
	}
}

// Rejection returns the guidance notice for an event that the given phase
// does not accept. Events are never dropped without feedback.
func Rejection(p domain.Phase) string {
	switch p {
	case domain.PhaseAwaitingCategory:
		return "⚠️ Please select a category first by pressing Start Email and choosing a category."
	case domain.PhaseAwaitingSubject:
		return "⚠️ Please send the subject as a plain text message."
	case domain.PhaseComposing:
		return "⚠️ Still composing. Send lines or images, or press Stop Email."
	case domain.PhaseAwaitingConfirm:
		return "⚠️ Please choose Send or Cancel."
	default:
		return "⚠️ Not in compose mode. Press Start Email to begin."
	}
}

// SubjectSet confirms the subject and opens free composition.
func SubjectSet() View {
	return View{
		Prompt:      "Subject set! Now compose your email body. When done, press the Stop Email button.",
		Options:     []domain.MenuOption{stopOption()},
		ExpectsText: true,
	}
}

// LineAdded acknowledges an appended text line.
func LineAdded() View {
	return View{
		Prompt:      "➕ Added to email.",
		Options:     []domain.MenuOption{stopOption()},
		ExpectsText: true,
	}
}

// ImageAdded acknowledges an appended image.
func ImageAdded() View {
	return View{
		Prompt:      "🖼️ Image added to email.",
		Options:     []domain.MenuOption{stopOption()},
		ExpectsText: true,
	}
}

// CategorySelected confirms the picked category and asks for a subject.
func CategorySelected(c domain.Category) string {
	return "Category selected: " + capitalize(string(c)) + "\nPlease send the subject for your email."
}

func categoryOptions() []domain.MenuOption {
	cats := domain.Categories()
	opts := make([]domain.MenuOption, 0, len(cats))
	for _, c := range cats {
		opts = append(opts, domain.MenuOption{
			ID:    domain.OptionSelectCategory(c),
			Label: capitalize(string(c)),
		})
	}
	return opts
}

func stopOption() domain.MenuOption {
	return domain.MenuOption{ID: domain.OptionStopComposition, Label: "🛑 " + domain.StopTriggerText}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
