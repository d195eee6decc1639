package domain

// InlineImage is an image collected during composition, kept in memory
// until the composition is sent or canceled.
type InlineImage struct {
	Filename string
	Data     []byte
}

// Session is the single in-memory record of an in-progress (or idle) email
// composition. There is exactly one Session per process, owned by the
// compose service; it is mutated in place and reset, never replaced.
//
// Lines and Images are append-only while Phase is composing; a send,
// cancel or restart clears them. A process restart loses an in-progress
// composition, which is accepted behavior.
type Session struct {
	Phase    Phase
	Category Category
	Subject  string
	Lines    []string
	Images   []InlineImage
}

// NewSession returns an idle session with all fields at their defaults.
func NewSession() *Session {
	s := &Session{}
	s.Reset()
	return s
}

// Reset returns the session to its idle form, dropping any accumulated
// composition state.
func (s *Session) Reset() {
	s.Phase = PhaseIdle
	s.Category = CategoryUncategorized
	s.Subject = ""
	s.Lines = nil
	s.Images = nil
}

// Empty reports whether nothing has been composed yet.
func (s *Session) Empty() bool {
	return len(s.Lines) == 0 && len(s.Images) == 0
}
