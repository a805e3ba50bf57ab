package gestures

import (
	"go.uber.org/zap"

	"github.com/vcrobe/vtree/events"
)

// touchPointerOffset keeps touch pointer ids clear of the mouse pointer id.
const touchPointerOffset = 2

// TouchSource converts native touch events into pointer events, one pointer
// per touch identifier. The first touch of a gesture is the primary pointer.
type TouchSource struct {
	binder   events.Binder
	primary  *PrimaryPointers
	dispatch func(PointerEvent)
	logger   *zap.Logger

	active    map[int]*PointerEvent
	primaryID int
	cancels   []func()
}

// NewTouchSource creates a touch source recording primary touches into
// primary.
func NewTouchSource(binder events.Binder, primary *PrimaryPointers, dispatch func(PointerEvent), logger *zap.Logger) *TouchSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TouchSource{
		binder:    binder,
		primary:   primary,
		dispatch:  dispatch,
		logger:    logger.Named("gestures.touch"),
		active:    make(map[int]*PointerEvent),
		primaryID: -1,
	}
}

// Activate installs the touch listeners.
func (t *TouchSource) Activate() {
	if t.cancels != nil {
		return
	}
	t.cancels = []func(){
		t.binder.Listen("touchstart", true, true, t.onStart),
		t.binder.Listen("touchmove", true, true, t.onMove),
		t.binder.Listen("touchend", true, true, t.onEnd),
		t.binder.Listen("touchcancel", true, true, t.onEnd),
	}
}

// Deactivate removes the listeners and forgets active touches.
func (t *TouchSource) Deactivate() {
	for _, cancel := range t.cancels {
		cancel()
	}
	t.cancels = nil
	clear(t.active)
	t.primaryID = -1
}

// ActiveCount returns the number of touches being tracked.
func (t *TouchSource) ActiveCount() int {
	return len(t.active)
}

func (t *TouchSource) pointer(ev *events.NativeEvent, touch events.Touch, action Action, buttons int) PointerEvent {
	target := touch.Target
	if target == nil {
		target = ev.Target
	}
	return PointerEvent{
		ID:        touch.Identifier + touchPointerOffset,
		Action:    action,
		X:         touch.ClientX,
		Y:         touch.ClientY,
		PageX:     touch.PageX,
		PageY:     touch.PageY,
		Buttons:   buttons,
		IsPrimary: touch.Identifier == t.primaryID,
		Target:    target,
		Timestamp: ev.Timestamp,
	}
}

func (t *TouchSource) onStart(ev *events.NativeEvent) {
	for _, touch := range ev.ChangedTouches {
		if _, ok := t.active[touch.Identifier]; ok {
			continue
		}
		if len(t.active) == 0 {
			t.primaryID = touch.Identifier
		}
		p := t.pointer(ev, touch, ActionDown, 1)
		t.active[touch.Identifier] = &p
		t.dispatch(p)
	}
}

func (t *TouchSource) onMove(ev *events.NativeEvent) {
	for _, touch := range ev.ChangedTouches {
		if _, ok := t.active[touch.Identifier]; !ok {
			continue
		}
		p := t.pointer(ev, touch, ActionMove, 1)
		t.active[touch.Identifier] = &p
		t.dispatch(p)
	}
}

func (t *TouchSource) onEnd(ev *events.NativeEvent) {
	for _, touch := range ev.ChangedTouches {
		if _, ok := t.active[touch.Identifier]; !ok {
			continue
		}
		p := t.pointer(ev, touch, ActionUp, 0)
		delete(t.active, touch.Identifier)
		if p.IsPrimary {
			if t.primary != nil {
				t.primary.Add(p.X, p.Y, p.Timestamp)
			}
			t.primaryID = -1
		}
		t.dispatch(p)
	}
}
