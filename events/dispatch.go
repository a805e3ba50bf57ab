package events

// DispatchFunc invokes a single handler. A nil DispatchFunc calls h.Fn.
type DispatchFunc func(h *Handler, ev *SyntheticEvent)

// Dispatch delivers ev to targets ordered leaf first. Capture handlers run
// from the root end to the leaf, then, when bubble is set, bubble handlers run
// from the leaf to the root. There is no separate target phase. Propagation
// stops after the target whose handlers stopped it.
func Dispatch(targets []DispatchTarget, ev *SyntheticEvent, bubble bool, dispatch DispatchFunc) {
	if dispatch == nil {
		dispatch = callHandler
	}
	for i := len(targets) - 1; i >= 0; i-- {
		if dispatchTarget(targets[i], ev, HandlerCapture, dispatch) {
			return
		}
	}
	if !bubble {
		return
	}
	ev.Flags |= EventBubblePhase
	for _, t := range targets {
		if dispatchTarget(t, ev, HandlerBubble, dispatch) {
			return
		}
	}
}

func dispatchTarget(t DispatchTarget, ev *SyntheticEvent, phase HandlerFlags, dispatch DispatchFunc) (stopped bool) {
	ev.CurrentTarget = t.Target
	for _, h := range t.Handlers {
		if h.Flags&phase != 0 {
			dispatch(h, ev)
		}
	}
	return ev.IsPropagationStopped()
}

func callHandler(h *Handler, ev *SyntheticEvent) {
	h.Fn(ev)
}
