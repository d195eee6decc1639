package domain

// OptionID identifies a selectable button. The values double as the wire
// callback data, so they must stay stable.
type OptionID string

const (
	OptionBeginComposition OptionID = "begin-composition"
	OptionStopComposition  OptionID = "stop-composition"
	OptionConfirmSend      OptionID = "confirm-send"
	OptionConfirmCancel    OptionID = "confirm-cancel"
)

const selectCategoryPrefix = "select-category:"

// OptionSelectCategory builds the option id for picking a category.
func OptionSelectCategory(c Category) OptionID {
	return OptionID(selectCategoryPrefix + string(c))
}

// CategoryFromOption extracts the category from a select-category option.
func CategoryFromOption(id OptionID) (Category, bool) {
	s := string(id)
	if len(s) <= len(selectCategoryPrefix) || s[:len(selectCategoryPrefix)] != selectCategoryPrefix {
		return CategoryUncategorized, false
	}
	return ParseCategory(s[len(selectCategoryPrefix):])
}

// Operator command names, as delivered by the chat gateway.
const (
	CommandShowStart = "start"
	CommandBegin     = "begin-composition"
	CommandStop      = "stop-composition"
)

// Trigger texts: plain messages that act as commands. BeginTriggerText is
// what the start reply-keyboard button sends back.
const (
	BeginTriggerText = "Start Email"
	StopTriggerText  = "Stop Email"
)

// Event is an inbound chat event. Every variant carries the principal that
// produced it so the authorization guard can run before anything else.
type Event interface {
	From() UserID
}

// TextReceived is a plain text message.
type TextReceived struct {
	Principal UserID
	Text      string
}

func (e TextReceived) From() UserID { return e.Principal }

// ImageReceived is an image message whose payload has already been fully
// downloaded by the gateway.
type ImageReceived struct {
	Principal UserID
	SourceID  string
	Data      []byte
}

func (e ImageReceived) From() UserID { return e.Principal }

// ButtonPressed is an inline-button selection.
type ButtonPressed struct {
	Principal UserID
	Option    OptionID
}

func (e ButtonPressed) From() UserID { return e.Principal }

// CommandReceived is a slash command.
type CommandReceived struct {
	Principal UserID
	Name      string
}

func (e CommandReceived) From() UserID { return e.Principal }
