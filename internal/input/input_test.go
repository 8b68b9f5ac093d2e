package input

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonString(t *testing.T) {
	tests := []struct {
		button Button
		want   string
	}{
		{ButtonLeft, "left"},
		{ButtonRight, "right"},
		{ButtonMiddle, "middle"},
		{Button(9), "button(9)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.button.String())
		})
	}
}

func TestAxisString(t *testing.T) {
	assert.Equal(t, "vertical", AxisVertical.String())
	assert.Equal(t, "horizontal", AxisHorizontal.String())
}

func TestRecorderRecordsInOrder(t *testing.T) {
	r := NewRecorder(false)

	require.NoError(t, r.MoveCursorBy(3, -2))
	require.NoError(t, r.SetButtonState(ButtonLeft, true))
	require.NoError(t, r.SetButtonState(ButtonLeft, false))
	require.NoError(t, r.Click(ButtonRight))
	require.NoError(t, r.Scroll(AxisHorizontal, 40))
	require.NoError(t, r.PressKey(0x41))
	require.NoError(t, r.ReleaseKey(0x41))

	calls := r.Calls()
	require.Len(t, calls, 7)
	assert.Equal(t, "move(3,-2)", calls[0].String())
	assert.Equal(t, "button(left,true)", calls[1].String())
	assert.Equal(t, "button(left,false)", calls[2].String())
	assert.Equal(t, "click(right)", calls[3].String())
	assert.Equal(t, "scroll(horizontal,40)", calls[4].String())
	assert.Equal(t, "key(0x41,true)", calls[5].String())
	assert.Equal(t, "key(0x41,false)", calls[6].String())
}

func TestRecorderReturnsConfiguredError(t *testing.T) {
	r := NewRecorder(false)
	r.Err = ErrInjectFailed

	err := r.MoveCursorBy(1, 1)
	assert.True(t, errors.Is(err, ErrInjectFailed))
	// the call is still recorded
	assert.Len(t, r.Calls(), 1)

	r.Reset()
	assert.Empty(t, r.Calls())
}

func TestRecorderCallsIsACopy(t *testing.T) {
	r := NewRecorder(false)
	_ = r.Click(ButtonLeft)

	calls := r.Calls()
	calls[0].Op = "changed"
	assert.Equal(t, "click", r.Calls()[0].Op)
}

func TestReverseKeyMapPrefersGenericModifier(t *testing.T) {
	table := map[uint16]int{
		0x10: 42, 0xA0: 42, 0xA1: 54,
		0x41: 30,
	}
	rev := reverseKeyMap(table)

	assert.Equal(t, uint16(0x10), rev[42])
	assert.Equal(t, uint16(0xA1), rev[54])
	assert.Equal(t, uint16(0x41), rev[30])
	assert.Len(t, rev, 3)
}

func TestInjectorConstructorsShareInterface(t *testing.T) {
	constructors := map[string]func() (Injector, error){
		"platform": NewInjector,
		"recorder": func() (Injector, error) { return NewRecorder(false), nil },
	}
	for name, newFn := range constructors {
		t.Run(name, func(t *testing.T) {
			assert.NotNil(t, newFn)
		})
	}

	var inj Injector = NewRecorder(false)
	require.NoError(t, inj.Click(ButtonLeft))
	require.NoError(t, inj.Close())
}
