package events

// EventFlags describe the state of a SyntheticEvent.
type EventFlags uint16

const (
	EventBubbles EventFlags = 1 << iota
	EventPropagationStopped
	EventDefaultPrevented
	EventBubblePhase
)

// Touch is a single contact point of a touch event.
type Touch struct {
	Identifier int
	ClientX    float64
	ClientY    float64
	PageX      float64
	PageY      float64
	Target     any
}

// NativeEvent is an event as delivered by the host document.
type NativeEvent struct {
	Type      string
	Target    any
	Timestamp float64

	ClientX float64
	ClientY float64
	PageX   float64
	PageY   float64
	DeltaX  float64
	DeltaY  float64

	// Button is the button that changed state, Buttons the mask of pressed
	// buttons and Which the legacy button or key code.
	Button  int
	Buttons int
	Which   int

	AltKey   bool
	CtrlKey  bool
	ShiftKey bool
	MetaKey  bool
	Key      string

	PointerID   int
	PointerType string
	IsPrimary   bool

	ChangedTouches []Touch

	// FiresTouchEvents mirrors sourceCapabilities.firesTouchEvents.
	FiresTouchEvents bool

	DefaultPrevented bool
}

// SyntheticEvent wraps a NativeEvent while it is dispatched to handlers.
// Target is the node the native event was fired on. CurrentTarget is the node
// whose handlers are running.
type SyntheticEvent struct {
	Flags         EventFlags
	Type          string
	Timestamp     float64
	Target        any
	CurrentTarget any
	Native        *NativeEvent
}

// NewSyntheticEvent wraps native for the dispatcher named name.
func NewSyntheticEvent(name string, flags EventFlags, native *NativeEvent) *SyntheticEvent {
	normalize(native)
	return &SyntheticEvent{
		Flags:     flags,
		Type:      name,
		Timestamp: native.Timestamp,
		Target:    native.Target,
		Native:    native,
	}
}

func (e *SyntheticEvent) StopPropagation() {
	e.Flags |= EventPropagationStopped
}

func (e *SyntheticEvent) PreventDefault() {
	e.Flags |= EventDefaultPrevented
	e.Native.DefaultPrevented = true
}

func (e *SyntheticEvent) IsPropagationStopped() bool {
	return e.Flags&EventPropagationStopped != 0
}

func (e *SyntheticEvent) IsDefaultPrevented() bool {
	return e.Flags&EventDefaultPrevented != 0
}

func (e *SyntheticEvent) InBubblePhase() bool {
	return e.Flags&EventBubblePhase != 0
}

var legacyKeys = map[string]string{
	"Esc":      "Escape",
	"Spacebar": " ",
	"Left":     "ArrowLeft",
	"Up":       "ArrowUp",
	"Right":    "ArrowRight",
	"Down":     "ArrowDown",
	"Del":      "Delete",
	"Win":      "OS",
	"Menu":     "ContextMenu",
	"Apps":     "ContextMenu",
	"Scroll":   "ScrollLock",
}

// normalize fills fields that older browsers report differently.
func normalize(ev *NativeEvent) {
	if k, ok := legacyKeys[ev.Key]; ok {
		ev.Key = k
	}
	if ev.Which == 0 && ev.Buttons != 0 {
		ev.Which = ev.Button + 1
	}
}
