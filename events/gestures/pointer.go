// Package gestures turns mouse, touch and pointer events into a single
// stream of pointer events with Down, Move and Up actions.
package gestures

// Action is the kind of a PointerEvent.
type Action uint8

const (
	ActionDown Action = iota
	ActionMove
	ActionUp
)

func (a Action) String() string {
	switch a {
	case ActionDown:
		return "down"
	case ActionMove:
		return "move"
	case ActionUp:
		return "up"
	}
	return "unknown"
}

// MousePointerID is the pointer id used for the mouse.
const MousePointerID = 1

// PointerEvent is a normalised pointer event.
type PointerEvent struct {
	ID        int
	Action    Action
	X         float64
	Y         float64
	PageX     float64
	PageY     float64
	Buttons   int
	IsPrimary bool
	Target    any
	Timestamp float64
}

// Features lists the capabilities of the host platform.
type Features uint8

const (
	// FeatureMouseEventButtons means mouse events report the buttons mask.
	FeatureMouseEventButtons Features = 1 << iota
	// FeatureTouchEvents means the platform emits touch events and may
	// simulate mouse events after them.
	FeatureTouchEvents
	// FeatureInputDeviceCapabilities means events report whether they were
	// caused by a touch device.
	FeatureInputDeviceCapabilities
	// FeaturePointerEvents means native pointer events are available.
	FeaturePointerEvents
)

// ButtonsFromButton converts a button index into the buttons mask bit. The
// middle and right buttons swap places between the two encodings. Negative
// indexes mean no button changed and map to 0.
func ButtonsFromButton(button int) int {
	if button < 0 {
		return 0
	}
	r := 1 << button
	if r&(2|4) != 0 {
		return button << (((r >> 2) ^ 1) << 1)
	}
	return r
}
