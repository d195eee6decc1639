package domain

import "context"

// MenuOption is one selectable button offered to the user.
type MenuOption struct {
	ID    OptionID
	Label string
}

// ChatGateway defines the outbound half of the chat transport. The core
// only ever talks to the authorized owner, addressed by UserID.
type ChatGateway interface {
	// SendText sends a plain notice.
	SendText(ctx context.Context, to UserID, text string) error

	// SendMenu sends a prompt together with selectable options.
	SendMenu(ctx context.Context, to UserID, prompt string, options []MenuOption) error

	// EditLastMessage rewrites the most recent menu message in place,
	// optionally replacing its options. Gateways that cannot edit may fall
	// back to sending a new message.
	EditLastMessage(ctx context.Context, text string, options []MenuOption) error
}

// InlineAttachment is an image embedded in the email body via a
// Content-ID reference.
type InlineAttachment struct {
	ContentID string
	Filename  string
	Data      []byte
}

// OutboundEmail is a fully assembled message ready for delivery.
type OutboundEmail struct {
	SubjectLine string
	BodyHTML    string
	Inline      []InlineAttachment
	FromAddress string
	ToAddress   string
}

// MailTransport delivers an assembled message. Exactly one Deliver call is
// made per confirmed send; the transport does not retry.
type MailTransport interface {
	Deliver(ctx context.Context, msg *OutboundEmail) error
}

// EventHandler consumes inbound chat events. Implementations must be safe
// for concurrent calls.
type EventHandler interface {
	HandleEvent(ctx context.Context, ev Event) error
}
