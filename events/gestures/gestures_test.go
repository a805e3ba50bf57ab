package gestures

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/vtree/events"
)

type binder struct {
	listeners map[string][]func(*events.NativeEvent)
}

func newBinder() *binder {
	return &binder{listeners: make(map[string][]func(*events.NativeEvent))}
}

func (b *binder) Listen(eventType string, _, _ bool, fn func(*events.NativeEvent)) func() {
	b.listeners[eventType] = append(b.listeners[eventType], fn)
	i := len(b.listeners[eventType]) - 1
	return func() { b.listeners[eventType][i] = nil }
}

func (b *binder) count(eventType string) int {
	n := 0
	for _, fn := range b.listeners[eventType] {
		if fn != nil {
			n++
		}
	}
	return n
}

func (b *binder) fire(eventType string, ev *events.NativeEvent) {
	ev.Type = eventType
	for _, fn := range b.listeners[eventType] {
		if fn != nil {
			fn(ev)
		}
	}
}

type recorder struct {
	events []PointerEvent
}

func (r *recorder) dispatch(p PointerEvent) { r.events = append(r.events, p) }

func (r *recorder) actions() []Action {
	out := make([]Action, len(r.events))
	for i, e := range r.events {
		out[i] = e.Action
	}
	return out
}

func TestButtonsFromButton(t *testing.T) {
	assert.Equal(t, 1, ButtonsFromButton(0))
	assert.Equal(t, 4, ButtonsFromButton(1))
	assert.Equal(t, 2, ButtonsFromButton(2))
	assert.Equal(t, 8, ButtonsFromButton(3))
	assert.Equal(t, 16, ButtonsFromButton(4))
	assert.Equal(t, 0, ButtonsFromButton(-1))
}

func TestMouseSource_CoalescesMovesBetweenDownAndUp(t *testing.T) {
	// Arrange
	b := newBinder()
	rec := &recorder{}
	m := NewMouseSource(b, FeatureMouseEventButtons, nil, rec.dispatch, nil)
	m.Activate()

	// Act
	b.fire("mousedown", &events.NativeEvent{Button: 0, Buttons: 1, ClientX: 10, ClientY: 10})
	b.fire("mousemove", &events.NativeEvent{Buttons: 1, ClientX: 12, ClientY: 11})
	b.fire("mousemove", &events.NativeEvent{Buttons: 1, ClientX: 30, ClientY: 10})
	b.fire("mouseup", &events.NativeEvent{Button: 0, Buttons: 0, ClientX: 30, ClientY: 10})

	// Assert
	type step struct {
		Action Action
		X, Y   float64
	}
	var got []step
	for _, e := range rec.events {
		got = append(got, step{e.Action, e.X, e.Y})
	}
	expected := []step{
		{ActionDown, 10, 10},
		{ActionMove, 12, 11},
		{ActionMove, 30, 10},
		{ActionUp, 30, 10},
	}
	if diff := cmp.Diff(expected, got); diff != "" {
		t.Fatalf("Unexpected gesture (-want +got):\n%s", diff)
	}
	for i, e := range rec.events {
		assert.True(t, e.IsPrimary)
		if i < 3 && e.Buttons == 0 {
			t.Errorf("Expected a non-zero buttons mask before the Up event, got 0 at %d", i)
		}
	}
	assert.Equal(t, 0, rec.events[3].Buttons)
	assert.Nil(t, m.Active())
}

func TestMouseSource_UpWithoutButtonChange(t *testing.T) {
	b := newBinder()
	rec := &recorder{}
	m := NewMouseSource(b, 0, nil, rec.dispatch, nil)
	m.Activate()

	b.fire("mousedown", &events.NativeEvent{Button: 0, Which: 1})
	assert.NotPanics(t, func() { b.fire("mouseup", &events.NativeEvent{Button: -1, Which: 1}) })

	assert.Equal(t, []Action{ActionDown, ActionMove}, rec.actions())
	assert.Equal(t, 1, rec.events[1].Buttons)
}

func TestMouseSource_CoalescesChordedButtons(t *testing.T) {
	b := newBinder()
	rec := &recorder{}
	m := NewMouseSource(b, FeatureMouseEventButtons, nil, rec.dispatch, nil)
	m.Activate()

	b.fire("mousedown", &events.NativeEvent{Button: 0, Buttons: 1, ClientX: 10, ClientY: 20})
	require.Equal(t, 1, b.count("mousemove"))
	b.fire("mousedown", &events.NativeEvent{Button: 2, Buttons: 3})
	b.fire("mousemove", &events.NativeEvent{Buttons: 3, ClientX: 15})
	b.fire("mouseup", &events.NativeEvent{Button: 0, Buttons: 2})
	b.fire("mouseup", &events.NativeEvent{Button: 2, Buttons: 0})

	assert.Equal(t, []Action{ActionDown, ActionMove, ActionMove, ActionMove, ActionUp}, rec.actions())
	assert.Equal(t, 1, rec.events[0].Buttons)
	assert.Equal(t, 3, rec.events[1].Buttons)
	assert.Equal(t, 2, rec.events[3].Buttons)
	assert.Equal(t, 0, rec.events[4].Buttons)
	for _, e := range rec.events {
		assert.Equal(t, MousePointerID, e.ID)
		assert.True(t, e.IsPrimary)
	}
	assert.Nil(t, m.Active())
	assert.Equal(t, 0, b.count("mousemove"))
}

func TestMouseSource_WithoutButtonsMask(t *testing.T) {
	b := newBinder()
	rec := &recorder{}
	m := NewMouseSource(b, 0, nil, rec.dispatch, nil)
	m.Activate()

	b.fire("mousedown", &events.NativeEvent{Button: 0, Which: 1})
	b.fire("mousedown", &events.NativeEvent{Button: 1, Which: 2})
	b.fire("mouseup", &events.NativeEvent{Button: 0, Which: 1})
	b.fire("mouseup", &events.NativeEvent{Button: 1, Which: 2})

	assert.Equal(t, []Action{ActionDown, ActionMove, ActionMove, ActionUp}, rec.actions())
	assert.Equal(t, 1, rec.events[0].Buttons)
	assert.Equal(t, 5, rec.events[1].Buttons)
	assert.Equal(t, 4, rec.events[2].Buttons)
}

func TestMouseSource_MoveWithoutButtonsEndsGesture(t *testing.T) {
	b := newBinder()
	rec := &recorder{}
	m := NewMouseSource(b, FeatureMouseEventButtons, nil, rec.dispatch, nil)
	m.Activate()

	b.fire("mousedown", &events.NativeEvent{Button: 0, Buttons: 1})
	b.fire("mousemove", &events.NativeEvent{Buttons: 0})
	b.fire("mousemove", &events.NativeEvent{Buttons: 0})

	assert.Equal(t, []Action{ActionDown, ActionUp}, rec.actions())
	assert.Equal(t, 1, rec.events[1].Buttons)
	assert.Nil(t, m.Active())
}

func TestMouseSource_Deactivate(t *testing.T) {
	b := newBinder()
	rec := &recorder{}
	m := NewMouseSource(b, FeatureMouseEventButtons, nil, rec.dispatch, nil)
	m.Activate()
	m.Activate()
	require.Equal(t, 1, b.count("mousedown"))
	b.fire("mousedown", &events.NativeEvent{Button: 0, Buttons: 1})

	m.Deactivate()

	assert.Zero(t, b.count("mousedown")+b.count("mouseup")+b.count("mousemove"))
	assert.Nil(t, m.Active())
}

func TestSource_IgnoresSimulatedMouseAfterTouch(t *testing.T) {
	b := newBinder()
	rec := &recorder{}
	src := NewSource(b, FeatureTouchEvents|FeatureMouseEventButtons, rec.dispatch, nil)
	src.Activate()

	b.fire("touchstart", &events.NativeEvent{Timestamp: 100, ChangedTouches: []events.Touch{{Identifier: 0, ClientX: 50, ClientY: 50}}})
	b.fire("touchend", &events.NativeEvent{Timestamp: 150, ChangedTouches: []events.Touch{{Identifier: 0, ClientX: 52, ClientY: 49}}})
	b.fire("mousedown", &events.NativeEvent{Timestamp: 200, Button: 0, Buttons: 1, ClientX: 55, ClientY: 45})
	b.fire("mouseup", &events.NativeEvent{Timestamp: 210, Button: 0, Buttons: 0, ClientX: 55, ClientY: 45})

	require.Equal(t, []Action{ActionDown, ActionUp}, rec.actions())
	assert.Equal(t, 2, rec.events[0].ID)

	// Far away or late mouse events are real.
	b.fire("mousedown", &events.NativeEvent{Timestamp: 300, Button: 0, Buttons: 1, ClientX: 200, ClientY: 200})
	b.fire("mouseup", &events.NativeEvent{Timestamp: 310, Button: 0, Buttons: 0, ClientX: 200, ClientY: 200})
	b.fire("mousedown", &events.NativeEvent{Timestamp: 3000, Button: 0, Buttons: 1, ClientX: 52, ClientY: 49})

	assert.Equal(t, []Action{ActionDown, ActionUp, ActionDown, ActionUp, ActionDown}, rec.actions())
	assert.Equal(t, MousePointerID, rec.events[2].ID)
}

func TestMouseSource_InputDeviceCapabilities(t *testing.T) {
	b := newBinder()
	rec := &recorder{}
	m := NewMouseSource(b, FeatureTouchEvents|FeatureMouseEventButtons|FeatureInputDeviceCapabilities, &PrimaryPointers{}, rec.dispatch, nil)
	m.Activate()

	b.fire("mousedown", &events.NativeEvent{Button: 0, Buttons: 1, FiresTouchEvents: true})
	assert.Empty(t, rec.events)

	b.fire("mousedown", &events.NativeEvent{Button: 0, Buttons: 1})
	assert.Equal(t, []Action{ActionDown}, rec.actions())
}

func TestTouchSource_MultiTouch(t *testing.T) {
	b := newBinder()
	rec := &recorder{}
	primary := &PrimaryPointers{}
	ts := NewTouchSource(b, primary, rec.dispatch, nil)
	ts.Activate()

	b.fire("touchstart", &events.NativeEvent{ChangedTouches: []events.Touch{{Identifier: 5}, {Identifier: 6}}})
	assert.Equal(t, 2, ts.ActiveCount())
	b.fire("touchmove", &events.NativeEvent{ChangedTouches: []events.Touch{{Identifier: 6, ClientX: 3}, {Identifier: 9}}})
	b.fire("touchend", &events.NativeEvent{ChangedTouches: []events.Touch{{Identifier: 6}}})
	b.fire("touchcancel", &events.NativeEvent{Timestamp: 20, ChangedTouches: []events.Touch{{Identifier: 5, ClientX: 8, ClientY: 9}}})

	require.Equal(t, []Action{ActionDown, ActionDown, ActionMove, ActionUp, ActionUp}, rec.actions())
	assert.Equal(t, 7, rec.events[0].ID)
	assert.True(t, rec.events[0].IsPrimary)
	assert.False(t, rec.events[1].IsPrimary)
	assert.Equal(t, 8, rec.events[2].ID)
	assert.Equal(t, 0, ts.ActiveCount())
	assert.Equal(t, 1, primary.Len())
	assert.True(t, primary.Near(8, 9, 20))
}

func TestPrimaryPointers_Expire(t *testing.T) {
	p := &PrimaryPointers{}
	p.Add(0, 0, 0)
	p.Add(100, 100, 2000)

	assert.True(t, p.Near(25, -25, 100))
	assert.False(t, p.Near(26, 0, 100))
	assert.False(t, p.Near(0, 0, 2600))
	assert.Equal(t, 1, p.Len())
}

func TestPointerSource(t *testing.T) {
	b := newBinder()
	rec := &recorder{}
	src := NewSource(b, FeaturePointerEvents, rec.dispatch, nil)
	src.Activate()

	b.fire("pointermove", &events.NativeEvent{PointerID: 3, Buttons: 1})
	b.fire("pointerdown", &events.NativeEvent{PointerID: 3, Buttons: 1, IsPrimary: true})
	b.fire("pointerdown", &events.NativeEvent{PointerID: 3, Buttons: 3})
	b.fire("pointerup", &events.NativeEvent{PointerID: 3, Buttons: 2})
	b.fire("pointerup", &events.NativeEvent{PointerID: 3, Buttons: 0})
	b.fire("pointerdown", &events.NativeEvent{PointerID: 4, Buttons: 1})
	b.fire("pointercancel", &events.NativeEvent{PointerID: 4, Buttons: 1})

	assert.Equal(t, []Action{ActionDown, ActionMove, ActionMove, ActionUp, ActionDown, ActionUp}, rec.actions())
	assert.Equal(t, 0, rec.events[5].Buttons)

	src.Deactivate()
	b.fire("pointerdown", &events.NativeEvent{PointerID: 5, Buttons: 1})
	assert.Len(t, rec.events, 6)
}
