package events

import "slices"

// HandlerFlags select the dispatch phase of a Handler.
type HandlerFlags uint8

const (
	HandlerCapture HandlerFlags = 1 << iota
	HandlerBubble
)

// Handler pairs a callback with the Source that delivers its events.
// Handlers are compared by identity.
type Handler struct {
	Source *Source
	Flags  HandlerFlags
	Fn     func(ev *SyntheticEvent)
}

// IsCapture reports whether the handler runs in the capture phase.
func (h *Handler) IsCapture() bool {
	return h.Flags&HandlerCapture != 0
}

// Attach registers every handler of one element with its source. A handler
// listed twice is registered once.
func Attach(handlers []*Handler) {
	for i, h := range handlers {
		if h != nil && !slices.Contains(handlers[:i], h) {
			h.Source.AddListener(h)
		}
	}
}

// Detach drops the registrations made by Attach for the same handlers.
func Detach(handlers []*Handler) {
	for i, h := range handlers {
		if h != nil && !slices.Contains(handlers[:i], h) {
			h.Source.RemoveListener(h)
		}
	}
}
