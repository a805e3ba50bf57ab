package gestures

import (
	"go.uber.org/zap"

	"github.com/vcrobe/vtree/events"
)

// Source is a pointer event source that can be switched on and off.
type Source interface {
	Activate()
	Deactivate()
}

// NewSource picks the sources matching features: native pointer events when
// available, otherwise mouse events plus touch events when supported.
func NewSource(binder events.Binder, features Features, dispatch func(PointerEvent), logger *zap.Logger) Source {
	if features&FeaturePointerEvents != 0 {
		return NewPointerSource(binder, dispatch, logger)
	}
	if features&FeatureTouchEvents == 0 {
		return NewMouseSource(binder, features, nil, dispatch, logger)
	}
	primary := &PrimaryPointers{}
	return multiSource{
		NewTouchSource(binder, primary, dispatch, logger),
		NewMouseSource(binder, features, primary, dispatch, logger),
	}
}

type multiSource []Source

func (m multiSource) Activate() {
	for _, s := range m {
		s.Activate()
	}
}

func (m multiSource) Deactivate() {
	for _, s := range m {
		s.Deactivate()
	}
}
