package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewSyntheticEvent_NormalizesLegacyKeys(t *testing.T) {
	for legacy, key := range map[string]string{"Esc": "Escape", "Left": "ArrowLeft", "Spacebar": " ", "Enter": "Enter"} {
		ev := NewSyntheticEvent("keydown", EventBubbles, &NativeEvent{Key: legacy})
		assert.Equal(t, key, ev.Native.Key, legacy)
	}
}

func TestNewSyntheticEvent_WhichFromButton(t *testing.T) {
	ev := NewSyntheticEvent("mousedown", EventBubbles, &NativeEvent{Button: 2, Buttons: 2})
	assert.Equal(t, 3, ev.Native.Which)

	ev = NewSyntheticEvent("mousedown", EventBubbles, &NativeEvent{Button: 0, Buttons: 1, Which: 1})
	assert.Equal(t, 1, ev.Native.Which)
}

func TestSyntheticEvent_Flags(t *testing.T) {
	native := &NativeEvent{}
	ev := NewSyntheticEvent("submit", EventBubbles, native)

	assert.False(t, ev.IsDefaultPrevented())
	assert.False(t, ev.IsPropagationStopped())

	ev.PreventDefault()
	ev.StopPropagation()

	assert.True(t, ev.IsDefaultPrevented())
	assert.True(t, native.DefaultPrevented)
	assert.True(t, ev.IsPropagationStopped())
}

func TestAdaptNoArgEvent(t *testing.T) {
	calls := 0
	fn := AdaptNoArgEvent(func() { calls++ })

	fn(NewSyntheticEvent("click", EventBubbles, &NativeEvent{}))

	assert.Equal(t, 1, calls)
}
