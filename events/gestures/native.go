package gestures

import (
	"go.uber.org/zap"

	"github.com/vcrobe/vtree/events"
)

// PointerSource maps native pointer events one to one, tracking pointers by
// pointerId between down and up.
type PointerSource struct {
	binder   events.Binder
	dispatch func(PointerEvent)
	logger   *zap.Logger

	active  map[int]struct{}
	cancels []func()
}

// NewPointerSource creates a source for platforms with native pointer events.
func NewPointerSource(binder events.Binder, dispatch func(PointerEvent), logger *zap.Logger) *PointerSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PointerSource{
		binder:   binder,
		dispatch: dispatch,
		logger:   logger.Named("gestures.pointer"),
		active:   make(map[int]struct{}),
	}
}

// Activate installs the pointer listeners.
func (s *PointerSource) Activate() {
	if s.cancels != nil {
		return
	}
	s.cancels = []func(){
		s.binder.Listen("pointerdown", true, false, s.onDown),
		s.binder.Listen("pointermove", true, false, s.onMove),
		s.binder.Listen("pointerup", true, false, s.onUp),
		s.binder.Listen("pointercancel", true, false, s.onCancel),
	}
}

// Deactivate removes the listeners.
func (s *PointerSource) Deactivate() {
	for _, cancel := range s.cancels {
		cancel()
	}
	s.cancels = nil
	clear(s.active)
}

func pointerFromNative(ev *events.NativeEvent, action Action) PointerEvent {
	return PointerEvent{
		ID:        ev.PointerID,
		Action:    action,
		X:         ev.ClientX,
		Y:         ev.ClientY,
		PageX:     ev.PageX,
		PageY:     ev.PageY,
		Buttons:   ev.Buttons,
		IsPrimary: ev.IsPrimary,
		Target:    ev.Target,
		Timestamp: ev.Timestamp,
	}
}

func (s *PointerSource) onDown(ev *events.NativeEvent) {
	if _, ok := s.active[ev.PointerID]; ok {
		s.dispatch(pointerFromNative(ev, ActionMove))
		return
	}
	s.active[ev.PointerID] = struct{}{}
	s.dispatch(pointerFromNative(ev, ActionDown))
}

func (s *PointerSource) onMove(ev *events.NativeEvent) {
	if _, ok := s.active[ev.PointerID]; !ok {
		return
	}
	if ev.Buttons == 0 {
		s.onUp(ev)
		return
	}
	s.dispatch(pointerFromNative(ev, ActionMove))
}

func (s *PointerSource) onUp(ev *events.NativeEvent) {
	if _, ok := s.active[ev.PointerID]; !ok {
		return
	}
	if ev.Buttons != 0 {
		s.dispatch(pointerFromNative(ev, ActionMove))
		return
	}
	delete(s.active, ev.PointerID)
	s.dispatch(pointerFromNative(ev, ActionUp))
}

func (s *PointerSource) onCancel(ev *events.NativeEvent) {
	if _, ok := s.active[ev.PointerID]; !ok {
		return
	}
	delete(s.active, ev.PointerID)
	p := pointerFromNative(ev, ActionUp)
	p.Buttons = 0
	s.dispatch(p)
}
