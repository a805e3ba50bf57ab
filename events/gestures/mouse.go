package gestures

import (
	"go.uber.org/zap"

	"github.com/vcrobe/vtree/events"
)

// MouseSource converts native mouse events into pointer events. Presses of
// additional buttons while another one is held become Move events, and the
// gesture ends with a single Up once every button is released.
type MouseSource struct {
	binder   events.Binder
	features Features
	primary  *PrimaryPointers
	dispatch func(PointerEvent)
	logger   *zap.Logger

	active     *PointerEvent
	cancelDown func()
	cancelUp   func()
	cancelMove func()
}

// NewMouseSource creates a mouse source. primary may be nil when touch
// events are not supported.
func NewMouseSource(binder events.Binder, features Features, primary *PrimaryPointers, dispatch func(PointerEvent), logger *zap.Logger) *MouseSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MouseSource{
		binder:   binder,
		features: features,
		primary:  primary,
		dispatch: dispatch,
		logger:   logger.Named("gestures.mouse"),
	}
}

// Activate installs the mousedown and mouseup listeners.
func (m *MouseSource) Activate() {
	if m.cancelDown != nil {
		return
	}
	m.cancelDown = m.binder.Listen("mousedown", true, true, m.onDown)
	m.cancelUp = m.binder.Listen("mouseup", true, true, m.onUp)
}

// Deactivate removes every listener and drops the active pointer.
func (m *MouseSource) Deactivate() {
	for _, cancel := range []func(){m.cancelDown, m.cancelUp, m.cancelMove} {
		if cancel != nil {
			cancel()
		}
	}
	m.cancelDown, m.cancelUp, m.cancelMove = nil, nil, nil
	m.active = nil
}

// Active returns the pointer being tracked, or nil.
func (m *MouseSource) Active() *PointerEvent {
	return m.active
}

func (m *MouseSource) isSimulated(ev *events.NativeEvent) bool {
	if m.features&FeatureTouchEvents == 0 {
		return false
	}
	if m.features&FeatureInputDeviceCapabilities != 0 {
		return ev.FiresTouchEvents
	}
	return m.primary != nil && m.primary.Near(ev.ClientX, ev.ClientY, ev.Timestamp)
}

func (m *MouseSource) buttons(ev *events.NativeEvent) int {
	if m.features&FeatureMouseEventButtons != 0 {
		return ev.Buttons
	}
	return ButtonsFromButton(ev.Button)
}

func (m *MouseSource) pointer(ev *events.NativeEvent, action Action, buttons int) PointerEvent {
	return PointerEvent{
		ID:        MousePointerID,
		Action:    action,
		X:         ev.ClientX,
		Y:         ev.ClientY,
		PageX:     ev.PageX,
		PageY:     ev.PageY,
		Buttons:   buttons,
		IsPrimary: true,
		Target:    ev.Target,
		Timestamp: ev.Timestamp,
	}
}

func (m *MouseSource) emit(p PointerEvent) {
	if p.Action == ActionUp {
		m.stopTracking()
	} else {
		m.active = &p
	}
	m.dispatch(p)
}

func (m *MouseSource) startTracking() {
	if m.cancelMove == nil {
		m.cancelMove = m.binder.Listen("mousemove", true, true, m.onMove)
	}
}

func (m *MouseSource) stopTracking() {
	m.active = nil
	if m.cancelMove != nil {
		m.cancelMove()
		m.cancelMove = nil
	}
}

func (m *MouseSource) onDown(ev *events.NativeEvent) {
	if m.isSimulated(ev) {
		return
	}
	buttons := m.buttons(ev)
	if m.active == nil {
		m.startTracking()
		m.emit(m.pointer(ev, ActionDown, buttons))
		return
	}
	m.emit(m.pointer(ev, ActionMove, buttons|m.active.Buttons))
}

func (m *MouseSource) onMove(ev *events.NativeEvent) {
	if m.active == nil || m.isSimulated(ev) {
		return
	}
	if m.released(ev) {
		m.logger.Debug("mouse released outside of the document")
		m.emit(m.pointer(ev, ActionUp, m.active.Buttons))
		return
	}
	m.emit(m.pointer(ev, ActionMove, m.active.Buttons))
}

// released reports a move without any pressed button, which happens when the
// mouseup was delivered outside of the document.
func (m *MouseSource) released(ev *events.NativeEvent) bool {
	if m.features&FeatureMouseEventButtons != 0 {
		return ev.Buttons == 0
	}
	return ev.Which == 0
}

func (m *MouseSource) onUp(ev *events.NativeEvent) {
	if m.active == nil || m.isSimulated(ev) {
		return
	}
	buttons := m.buttons(ev)
	if m.features&FeatureMouseEventButtons == 0 {
		buttons = m.active.Buttons &^ buttons
	}
	if buttons == 0 {
		m.emit(m.pointer(ev, ActionUp, 0))
		return
	}
	m.emit(m.pointer(ev, ActionMove, buttons))
}
