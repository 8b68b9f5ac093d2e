package gesture

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tkm/internal/input"
)

var t0 = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func ms(n int) time.Time {
	return t0.Add(time.Duration(n) * time.Millisecond)
}

func countKind(actions []Action, kind ActionKind) int {
	n := 0
	for _, a := range actions {
		if a.Kind == kind {
			n++
		}
	}
	return n
}

func TestTapEmitsSingleClick(t *testing.T) {
	e := NewEngine(DefaultConfig())

	assert.Empty(t, e.ContactDown(1, Point{100, 100}, ms(0)))
	actions := e.ContactUp(1, ms(50))

	assert.Equal(t, []Action{Click(input.ButtonLeft)}, actions)
	assert.False(t, e.Session().Active())
}

func TestTapWithJitterBelowEmitThreshold(t *testing.T) {
	e := NewEngine(DefaultConfig())

	e.ContactDown(1, Point{100, 100}, ms(0))
	// 0.25 * 1.5 = 0.375, under the 0.5 move threshold
	assert.Empty(t, e.ContactMove(1, Point{100.25, 100}))
	actions := e.ContactUp(1, ms(80))

	assert.Equal(t, []Action{Click(input.ButtonLeft)}, actions)
}

func TestShortMoveAboveEmitThresholdIsNotATap(t *testing.T) {
	e := NewEngine(DefaultConfig())

	e.ContactDown(1, Point{100, 100}, ms(0))
	moves := e.ContactMove(1, Point{105, 100})
	require.Equal(t, []Action{CursorMove(7, 0)}, moves)

	// displacement 5 < 10 and 50ms < 200ms, but a cursor move was emitted
	assert.Empty(t, e.ContactUp(1, ms(50)))
}

func TestLongPressEndsSilently(t *testing.T) {
	e := NewEngine(DefaultConfig())

	e.ContactDown(1, Point{10, 10}, ms(0))
	assert.Empty(t, e.ContactUp(1, ms(200)))

	e.ContactDown(1, Point{10, 10}, ms(1000))
	assert.Empty(t, e.ContactUp(1, ms(1500)))
}

func TestDisplacementBeyondTapThresholdIsNotATap(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MoveEmitThreshold = 100 // no cursor moves at all
	e := NewEngine(cfg)

	e.ContactDown(1, Point{0, 0}, ms(0))
	assert.Empty(t, e.ContactMove(1, Point{15, 0}))
	assert.Empty(t, e.ContactUp(1, ms(60)))
}

func TestDoubleTapEmitsTwoClicks(t *testing.T) {
	e := NewEngine(DefaultConfig())

	e.ContactDown(1, Point{50, 50}, ms(0))
	first := e.ContactUp(1, ms(50))
	require.Len(t, first, 1)

	e.ContactDown(2, Point{52, 51}, ms(150))
	second := e.ContactUp(2, ms(200))
	assert.Equal(t, []Action{Click(input.ButtonLeft), Click(input.ButtonLeft)}, second)

	when, where := e.LastTap()
	assert.Equal(t, ms(200), when)
	assert.Equal(t, Point{52, 51}, where)
}

func TestTapsFarApartAreSingleClicks(t *testing.T) {
	e := NewEngine(DefaultConfig())

	e.ContactDown(1, Point{50, 50}, ms(0))
	require.Len(t, e.ContactUp(1, ms(50)), 1)

	e.ContactDown(1, Point{50, 50}, ms(300))
	assert.Len(t, e.ContactUp(1, ms(350)), 1)
}

func TestDragDoesNotResetTapHistory(t *testing.T) {
	e := NewEngine(DefaultConfig())

	e.ContactDown(1, Point{0, 0}, ms(0))
	require.Len(t, e.ContactUp(1, ms(40)), 1)

	// a long press in between still updates nothing
	e.ContactDown(1, Point{0, 0}, ms(60))
	require.Empty(t, e.ContactUp(1, ms(70+200)))

	when, _ := e.LastTap()
	assert.Equal(t, ms(40), when)
}

func TestSingleContactMoveCount(t *testing.T) {
	e := NewEngine(DefaultConfig())

	e.ContactDown(1, Point{10, 20}, ms(0))
	samples := []struct {
		pos  Point
		want []Action
	}{
		{Point{11, 20}, []Action{CursorMove(1, 0)}},    // 1.5
		{Point{11.25, 20}, nil},                        // 0.375
		{Point{13.25, 22}, []Action{CursorMove(3, 3)}}, // 3, 3
		{Point{13.25, 22}, nil},
		{Point{12.25, 18}, []Action{CursorMove(-1, -6)}},
	}

	var all []Action
	for _, s := range samples {
		got := e.ContactMove(1, s.pos)
		assert.Equal(t, s.want, got, "sample %v", s.pos)
		all = append(all, got...)
	}

	assert.Equal(t, 3, countKind(all, ActionCursorMove))
	assert.Empty(t, e.ContactUp(1, ms(100)))
}

func TestTwoContactVerticalScroll(t *testing.T) {
	e := NewEngine(DefaultConfig())

	e.ContactDown(1, Point{100, 100}, ms(0))
	e.ContactDown(2, Point{150, 100}, ms(5))

	// scaled deltas dx=1, dy=8
	got := e.ContactMove(1, Point{100.5, 104})
	assert.Equal(t, []Action{Scroll(input.AxisVertical, -80)}, got)

	// the second finger moving along does not scroll again
	assert.Empty(t, e.ContactMove(2, Point{150.5, 104}))

	e.ContactUp(2, ms(40))
	assert.Empty(t, e.ContactUp(1, ms(50)), "a scroll is never a tap")
}

func TestTwoContactHorizontalScroll(t *testing.T) {
	e := NewEngine(DefaultConfig())

	e.ContactDown(1, Point{100, 100}, ms(0))
	e.ContactDown(2, Point{150, 100}, ms(0))

	got := e.ContactMove(1, Point{106, 100.5})
	assert.Equal(t, []Action{Scroll(input.AxisHorizontal, 120)}, got)

	got = e.ContactMove(1, Point{103, 100.5})
	assert.Equal(t, []Action{Scroll(input.AxisHorizontal, -60)}, got)
}

func TestTwoContactScrollBelowThreshold(t *testing.T) {
	e := NewEngine(DefaultConfig())

	e.ContactDown(1, Point{100, 100}, ms(0))
	e.ContactDown(2, Point{150, 100}, ms(0))

	assert.Empty(t, e.ContactMove(1, Point{100.5, 100.5}))
	assert.False(t, e.Session().HasMoved)
}

func TestThreeContactsProduceNothing(t *testing.T) {
	e := NewEngine(DefaultConfig())

	e.ContactDown(1, Point{0, 0}, ms(0))
	e.ContactDown(2, Point{50, 0}, ms(0))
	e.ContactDown(3, Point{100, 0}, ms(0))

	assert.Empty(t, e.ContactMove(1, Point{0, 40}))
	assert.Empty(t, e.ContactMove(2, Point{80, 40}))
	assert.Empty(t, e.ContactMove(3, Point{140, 0}))

	c, ok := e.Session().Contact(2)
	require.True(t, ok)
	assert.Equal(t, Point{80, 40}, c.Position)
}

func TestPrimaryHandoffAfterLift(t *testing.T) {
	e := NewEngine(DefaultConfig())

	e.ContactDown(1, Point{0, 0}, ms(0))
	e.ContactDown(2, Point{50, 50}, ms(0))
	e.ContactMove(2, Point{52, 50})

	assert.Empty(t, e.ContactUp(1, ms(30)))
	primary, ok := e.Session().Primary()
	require.True(t, ok)
	assert.Equal(t, 2, primary)

	// delta is measured from contact 2's own last sample
	assert.Equal(t, []Action{CursorMove(3, 0)}, e.ContactMove(2, Point{54, 50}))
}

func TestUntrackedContactsIgnored(t *testing.T) {
	e := NewEngine(DefaultConfig())

	assert.Empty(t, e.ContactMove(7, Point{1, 1}))
	assert.Empty(t, e.ContactUp(7, ms(10)))

	e.ContactDown(1, Point{0, 0}, ms(0))
	assert.Empty(t, e.ContactDown(1, Point{5, 5}, ms(1)))
	assert.Equal(t, 1, e.Session().Len())
}

func TestCancelDiscardsSession(t *testing.T) {
	e := NewEngine(DefaultConfig())

	e.ContactDown(1, Point{0, 0}, ms(0))
	e.ContactDown(2, Point{10, 0}, ms(0))
	assert.Empty(t, e.Cancel())

	assert.False(t, e.Session().Active())
	assert.Empty(t, e.ContactUp(1, ms(20)))
}

func TestNewSessionGetsFreshState(t *testing.T) {
	e := NewEngine(DefaultConfig())

	e.ContactDown(1, Point{0, 0}, ms(0))
	e.ContactMove(1, Point{20, 0})
	first := e.Session().ID
	e.ContactUp(1, ms(500))

	e.ContactDown(1, Point{0, 0}, ms(1000))
	assert.NotEqual(t, first, e.Session().ID)
	assert.False(t, e.Session().HasMoved)
	assert.Zero(t, e.Session().MaxDisplacement)
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero sensitivity", func(c *Config) { c.Sensitivity = 0 }},
		{"negative scroll sensitivity", func(c *Config) { c.ScrollSensitivity = -1 }},
		{"zero multiplier", func(c *Config) { c.ScrollMultiplier = 0 }},
		{"zero tap threshold", func(c *Config) { c.TapThreshold = 0 }},
		{"zero double tap", func(c *Config) { c.DoubleTapThreshold = 0 }},
		{"negative emit", func(c *Config) { c.MoveEmitThreshold = -0.1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestMarkClickedSuppressesTap(t *testing.T) {
	e := NewEngine(DefaultConfig())

	e.MarkClicked()
	assert.False(t, e.Session().Clicked, "no session to mark")

	e.ContactDown(1, Point{100, 100}, ms(0))
	e.MarkClicked()
	assert.Empty(t, e.ContactUp(1, ms(50)))

	// the next session starts clean
	e.ContactDown(2, Point{100, 100}, ms(500))
	assert.Equal(t, []Action{Click(input.ButtonLeft)}, e.ContactUp(2, ms(550)))
}
