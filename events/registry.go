package events

import (
	"fmt"

	"go.uber.org/zap"
)

const (
	capOnly          = SourceCapture
	capBubble        = SourceCapture | SourceBubbles
	capPassive       = SourceCapture | SourcePassive
	capBubblePassive = SourceCapture | SourceBubbles | SourcePassive
)

// nativeEvents is the static table of supported native event types.
var nativeEvents = map[string]SourceFlags{
	"abort":              capOnly,
	"activate":           capBubble,
	"ariarequest":        capBubble,
	"beforeactivate":     capBubble,
	"beforecopy":         capOnly,
	"beforecut":          capBubble,
	"beforedeactivate":   capBubble,
	"beforepaste":        capBubble,
	"blur":               capOnly,
	"canplay":            capOnly,
	"canplaythrough":     capOnly,
	"change":             capBubble,
	"click":              capBubble,
	"contextmenu":        capBubble,
	"copy":               capBubble,
	"cuechange":          capOnly,
	"cut":                capBubble,
	"dblclick":           capBubble,
	"deactivate":         capBubble,
	"drag":               capBubble,
	"dragend":            capBubble,
	"dragenter":          capBubble,
	"dragleave":          capBubble,
	"dragover":           capBubble,
	"dragstart":          capBubble,
	"drop":               capBubble,
	"durationchange":     capOnly,
	"emptied":            capOnly,
	"encrypted":          capOnly,
	"ended":              capOnly,
	"error":              capOnly,
	"focus":              capOnly,
	"gotpointercapture":  capOnly,
	"input":              capBubble,
	"invalid":            capOnly,
	"keydown":            capBubble,
	"keypress":           capBubble,
	"keyup":              capBubble,
	"load":               capOnly,
	"loadeddata":         capOnly,
	"loadedmetadata":     capOnly,
	"loadstart":          capOnly,
	"lostpointercapture": capOnly,
	"mousedown":          capBubblePassive,
	"mouseenter":         capPassive,
	"mouseleave":         capPassive,
	"mousemove":          capBubblePassive,
	"mouseout":           capBubblePassive,
	"mouseover":          capBubblePassive,
	"mouseup":            capBubblePassive,
	"paste":              capBubble,
	"pause":              capOnly,
	"play":               capOnly,
	"playing":            capOnly,
	"pointercancel":      capBubble,
	"pointerdown":        capBubble,
	"pointerenter":       capOnly,
	"pointerleave":       capOnly,
	"pointermove":        capBubble,
	"pointerout":         capBubble,
	"pointerover":        capBubble,
	"pointerup":          capBubble,
	"progress":           capOnly,
	"ratechange":         capOnly,
	"reset":              capBubble,
	"scroll":             capPassive,
	"seeked":             capOnly,
	"seeking":            capOnly,
	"select":             capBubble,
	"selectstart":        capBubble,
	"stalled":            capOnly,
	"submit":             capBubble,
	"suspend":            capOnly,
	"timeupdate":         capOnly,
	"touchcancel":        capBubblePassive,
	"touchend":           capBubblePassive,
	"touchmove":          capBubblePassive,
	"touchstart":         capBubblePassive,
	"unload":             capOnly,
	"volumechange":       capOnly,
	"waiting":            capOnly,
	"wheel":              capBubblePassive,
}

// Registry owns one Source per supported native event type, bound to a
// document through its Binder and Tree.
type Registry struct {
	binder  Binder
	tree    Tree
	logger  *zap.Logger
	sources map[string]*Source
}

// NewRegistry creates the sources for every supported event type. binder may
// be nil, in which case no native listeners are installed.
func NewRegistry(binder Binder, tree Tree, logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	r := &Registry{
		binder:  binder,
		tree:    tree,
		logger:  logger.Named("events"),
		sources: make(map[string]*Source, len(nativeEvents)),
	}
	for name, flags := range nativeEvents {
		r.sources[name] = &Source{
			name:     name,
			flags:    flags,
			registry: r,
			handlers: make(map[*Handler]int),
		}
	}
	return r
}

// Source returns the source for a native event type, or nil.
func (r *Registry) Source(name string) *Source {
	return r.sources[name]
}

// On creates a handler for the named event type. It panics for unsupported
// event types.
func (r *Registry) On(name string, fn func(*SyntheticEvent), capture bool) *Handler {
	src, ok := r.sources[name]
	if !ok {
		panic(fmt.Sprintf("events: unsupported event type %q", name))
	}
	flags := HandlerBubble
	if capture {
		flags = HandlerCapture
	}
	return &Handler{Source: src, Flags: flags, Fn: fn}
}

// Capture creates a capture-phase handler for the named event type.
func (r *Registry) Capture(name string, fn func(*SyntheticEvent)) *Handler {
	return r.On(name, fn, true)
}

func (r *Registry) OnClick(fn func(*SyntheticEvent)) *Handler {
	return r.On("click", fn, false)
}

func (r *Registry) OnDoubleClick(fn func(*SyntheticEvent)) *Handler {
	return r.On("dblclick", fn, false)
}

func (r *Registry) OnMouseDown(fn func(*SyntheticEvent)) *Handler {
	return r.On("mousedown", fn, false)
}

func (r *Registry) OnMouseUp(fn func(*SyntheticEvent)) *Handler {
	return r.On("mouseup", fn, false)
}

func (r *Registry) OnMouseMove(fn func(*SyntheticEvent)) *Handler {
	return r.On("mousemove", fn, false)
}

func (r *Registry) OnKeyDown(fn func(*SyntheticEvent)) *Handler {
	return r.On("keydown", fn, false)
}

func (r *Registry) OnKeyUp(fn func(*SyntheticEvent)) *Handler {
	return r.On("keyup", fn, false)
}

func (r *Registry) OnInput(fn func(*SyntheticEvent)) *Handler {
	return r.On("input", fn, false)
}

func (r *Registry) OnChange(fn func(*SyntheticEvent)) *Handler {
	return r.On("change", fn, false)
}

func (r *Registry) OnSubmit(fn func(*SyntheticEvent)) *Handler {
	return r.On("submit", fn, false)
}

// OnFocus and OnBlur run in the capture phase since the native events do not
// bubble.
func (r *Registry) OnFocus(fn func(*SyntheticEvent)) *Handler {
	return r.On("focus", fn, true)
}

func (r *Registry) OnBlur(fn func(*SyntheticEvent)) *Handler {
	return r.On("blur", fn, true)
}

func (r *Registry) OnScroll(fn func(*SyntheticEvent)) *Handler {
	return r.On("scroll", fn, true)
}

func (r *Registry) OnWheel(fn func(*SyntheticEvent)) *Handler {
	return r.On("wheel", fn, false)
}

func (r *Registry) OnTouchStart(fn func(*SyntheticEvent)) *Handler {
	return r.On("touchstart", fn, false)
}

func (r *Registry) OnTouchMove(fn func(*SyntheticEvent)) *Handler {
	return r.On("touchmove", fn, false)
}

func (r *Registry) OnTouchEnd(fn func(*SyntheticEvent)) *Handler {
	return r.On("touchend", fn, false)
}

func (r *Registry) OnPointerDown(fn func(*SyntheticEvent)) *Handler {
	return r.On("pointerdown", fn, false)
}

func (r *Registry) OnPointerMove(fn func(*SyntheticEvent)) *Handler {
	return r.On("pointermove", fn, false)
}

func (r *Registry) OnPointerUp(fn func(*SyntheticEvent)) *Handler {
	return r.On("pointerup", fn, false)
}

