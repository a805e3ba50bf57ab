package events

// AdaptNoArgEvent adapts a handler that does not need the event.
func AdaptNoArgEvent(handler func()) func(*SyntheticEvent) {
	return func(*SyntheticEvent) {
		handler()
	}
}
