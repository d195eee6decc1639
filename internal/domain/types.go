package domain

// UserID is the numeric chat identifier of a principal (Telegram user id).
type UserID int64

// Phase is the discrete stage of an email composition.
type Phase string

const (
	PhaseIdle             Phase = "idle"
	PhaseAwaitingCategory Phase = "awaiting_category"
	PhaseAwaitingSubject  Phase = "awaiting_subject"
	PhaseComposing        Phase = "composing"
	PhaseAwaitingConfirm  Phase = "awaiting_send_confirmation"
)

// Category classifies a composed note.
type Category string

const (
	CategoryTask      Category = "task"
	CategoryIdea      Category = "idea"
	CategoryRandom    Category = "random"
	CategoryImportant Category = "important"
	CategoryEvent     Category = "event"

	// CategoryUncategorized is the sentinel for "not picked yet".
	CategoryUncategorized Category = "uncategorized"
)

// Categories returns the selectable categories in menu order.
func Categories() []Category {
	return []Category{
		CategoryTask,
		CategoryIdea,
		CategoryRandom,
		CategoryImportant,
		CategoryEvent,
	}
}

// ParseCategory reports whether s names a selectable category.
func ParseCategory(s string) (Category, bool) {
	for _, c := range Categories() {
		if s == string(c) {
			return c, true
		}
	}
	return CategoryUncategorized, false
}
