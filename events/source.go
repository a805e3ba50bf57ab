package events

import "go.uber.org/zap"

// SourceFlags are the static properties of a native event type.
type SourceFlags uint8

const (
	// SourceCapture installs the native listener in the capture phase.
	SourceCapture SourceFlags = 1 << iota
	// SourceBubbles dispatches the bubble phase after the capture phase.
	SourceBubbles
	// SourcePassive marks the native listener as passive.
	SourcePassive
)

// Binder installs native listeners on the host document.
type Binder interface {
	Listen(eventType string, capture, passive bool, fn func(*NativeEvent)) (cancel func())
}

// Source dispatches one native event type to the handlers registered with
// it. Registrations are counted per handler, so one handler may be attached
// to several elements. The native listener is installed with the first
// registration and removed with the last one.
type Source struct {
	name     string
	flags    SourceFlags
	registry *Registry
	handlers map[*Handler]int
	total    int
	cancel   func()
}

func (s *Source) Name() string       { return s.name }
func (s *Source) Flags() SourceFlags { return s.flags }

// ListenerCount returns the number of live registrations.
func (s *Source) ListenerCount() int {
	return s.total
}

// Active reports whether the native listener is installed.
func (s *Source) Active() bool {
	return s.cancel != nil
}

// AddListener registers h once more.
func (s *Source) AddListener(h *Handler) {
	s.handlers[h]++
	s.total++
	if s.total == 1 {
		s.activate()
	}
}

// RemoveListener drops one registration of h. Removing an unknown handler
// has no effect.
func (s *Source) RemoveListener(h *Handler) {
	n, ok := s.handlers[h]
	if !ok {
		return
	}
	if n == 1 {
		delete(s.handlers, h)
	} else {
		s.handlers[h] = n - 1
	}
	s.total--
	if s.total == 0 {
		s.deactivate()
	}
}

func (s *Source) activate() {
	r := s.registry
	if r.binder == nil {
		return
	}
	r.logger.Debug("installing native listener", zap.String("event", s.name))
	s.cancel = r.binder.Listen(s.name, s.flags&SourceCapture != 0, s.flags&SourcePassive != 0, s.DispatchNative)
}

func (s *Source) deactivate() {
	if s.cancel == nil {
		return
	}
	s.registry.logger.Debug("removing native listener", zap.String("event", s.name))
	s.cancel()
	s.cancel = nil
}

// DispatchNative delivers a native event to the handlers registered with s
// on the path from the event target to the root.
func (s *Source) DispatchNative(native *NativeEvent) {
	targets := CollectTargets(native.Target, s.registry.tree, s)
	if len(targets) == 0 {
		return
	}
	var flags EventFlags
	bubbles := s.flags&SourceBubbles != 0
	if bubbles {
		flags |= EventBubbles
	}
	ev := NewSyntheticEvent(s.name, flags, native)
	Dispatch(targets, ev, bubbles, nil)
}
