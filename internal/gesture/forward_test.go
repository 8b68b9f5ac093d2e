package gesture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tkm/internal/input"
)

func TestForwarderMapsActions(t *testing.T) {
	rec := input.NewRecorder(false)
	f := NewForwarder(rec)

	sent := f.Apply([]Action{
		CursorMove(4, -2),
		Scroll(input.AxisVertical, -80),
		Click(input.ButtonLeft),
	})
	assert.Equal(t, 3, sent)

	calls := rec.Calls()
	require.Len(t, calls, 3)
	assert.Equal(t, "move(4,-2)", calls[0].String())
	assert.Equal(t, "scroll(vertical,-80)", calls[1].String())
	assert.Equal(t, "click(left)", calls[2].String())
}

func TestForwarderSwallowsFailures(t *testing.T) {
	rec := input.NewRecorder(false)
	rec.Err = input.ErrInjectFailed
	f := NewForwarder(rec)

	var sent int
	assert.NotPanics(t, func() {
		sent = f.Apply([]Action{CursorMove(1, 1), Click(input.ButtonLeft)})
	})
	assert.Zero(t, sent)
	// every action is still attempted once, no retries
	assert.Len(t, rec.Calls(), 2)
}

func TestButtonPadPressRelease(t *testing.T) {
	rec := input.NewRecorder(false)
	pad := NewButtonPad(rec)

	pad.Press(input.ButtonLeft)
	pad.Press(input.ButtonLeft)
	assert.True(t, pad.IsDown(input.ButtonLeft))

	pad.Release(input.ButtonLeft)
	pad.Release(input.ButtonLeft)
	assert.False(t, pad.IsDown(input.ButtonLeft))

	assert.Equal(t, []input.Call{
		{Op: "button", Button: input.ButtonLeft, Down: true},
		{Op: "button", Button: input.ButtonLeft, Down: false},
	}, rec.Calls())
}

func TestButtonPadReleaseWithoutPressIsNoop(t *testing.T) {
	rec := input.NewRecorder(false)
	pad := NewButtonPad(rec)

	pad.Release(input.ButtonRight)
	pad.Leave(input.ButtonRight)
	assert.Empty(t, rec.Calls())
}

func TestButtonPadLeaveReleases(t *testing.T) {
	rec := input.NewRecorder(false)
	pad := NewButtonPad(rec)

	pad.Press(input.ButtonRight)
	pad.Leave(input.ButtonRight)

	assert.False(t, pad.IsDown(input.ButtonRight))
	assert.Len(t, rec.Calls(), 2)
}

func TestButtonPadReleaseAll(t *testing.T) {
	rec := input.NewRecorder(false)
	pad := NewButtonPad(rec)

	pad.Press(input.ButtonLeft)
	pad.Press(input.ButtonRight)
	rec.Reset()

	pad.ReleaseAll()
	assert.ElementsMatch(t, []input.Call{
		{Op: "button", Button: input.ButtonLeft, Down: false},
		{Op: "button", Button: input.ButtonRight, Down: false},
	}, rec.Calls())
}

func TestButtonPadRetriesFailedRelease(t *testing.T) {
	rec := input.NewRecorder(false)
	pad := NewButtonPad(rec)

	pad.Press(input.ButtonLeft)
	rec.Err = input.ErrInjectFailed
	pad.Release(input.ButtonLeft)
	assert.True(t, pad.IsDown(input.ButtonLeft), "failed release must stay pending")

	rec.Err = nil
	pad.ReleaseAll()
	assert.False(t, pad.IsDown(input.ButtonLeft))
}

func TestButtonPadFailedPressIsNotHeld(t *testing.T) {
	rec := input.NewRecorder(false)
	rec.Err = input.ErrInjectFailed
	pad := NewButtonPad(rec)

	pad.Press(input.ButtonLeft)
	assert.False(t, pad.IsDown(input.ButtonLeft))
}

func TestTrackpadTapInjectsClick(t *testing.T) {
	rec := input.NewRecorder(false)
	tp := NewTrackpad(DefaultConfig(), rec)

	tp.ContactDown(1, Point{10, 10}, ms(0))
	tp.ContactUp(1, ms(30))

	assert.Equal(t, []input.Call{{Op: "click", Button: input.ButtonLeft}}, rec.Calls())
}

func TestTrackpadCancelReleasesButtons(t *testing.T) {
	rec := input.NewRecorder(false)
	tp := NewTrackpad(DefaultConfig(), rec)

	tp.Buttons().Press(input.ButtonLeft)
	tp.ContactDown(1, Point{0, 0}, ms(0))
	tp.Cancel()

	assert.False(t, tp.Buttons().IsDown(input.ButtonLeft))
	assert.False(t, tp.Engine().Session().Active())
}

func TestTrackpadPhysicalClickIsNotAlsoATap(t *testing.T) {
	rec := input.NewRecorder(false)
	tp := NewTrackpad(DefaultConfig(), rec)

	tp.ContactDown(1, Point{10, 10}, ms(0))
	tp.ButtonDown(input.ButtonLeft)
	tp.ButtonUp(input.ButtonLeft)
	tp.ContactUp(1, ms(80))

	assert.Equal(t, []input.Call{
		{Op: "button", Button: input.ButtonLeft, Down: true},
		{Op: "button", Button: input.ButtonLeft, Down: false},
	}, rec.Calls())
}

func TestTrackpadButtonWithoutTouch(t *testing.T) {
	rec := input.NewRecorder(false)
	tp := NewTrackpad(DefaultConfig(), rec)

	tp.ButtonDown(input.ButtonRight)
	assert.True(t, tp.Buttons().IsDown(input.ButtonRight))
	tp.ButtonUp(input.ButtonRight)

	assert.False(t, tp.Buttons().IsDown(input.ButtonRight))
	assert.Len(t, rec.Calls(), 2)
}
