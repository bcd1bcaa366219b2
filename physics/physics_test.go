package physics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ddnet-go/twnet/warn"
)

func TestVec2Basics(t *testing.T) {
	a := Vec2{X: 3, Y: 4}
	assert.Equal(t, float32(5), a.Length())

	n := a.Normalize()
	assert.InDelta(t, 1.0, n.Length(), 1e-6)

	assert.Equal(t, Vec2{X: 1, Y: 1}, Vec2{X: 2, Y: 3}.Sub(Vec2{X: 1, Y: 2}))
	assert.Equal(t, Vec2{X: 4, Y: 6}, Vec2{X: 2, Y: 3}.Scale(2))
	assert.Equal(t, float32(5), Distance(Vec2{}, Vec2{X: 3, Y: 4}))
}

func TestMixIsExactReferenceForm(t *testing.T) {
	got := Mix(Vec2{X: 0, Y: 0}, Vec2{X: 10, Y: 0}, 0.25)
	assert.Equal(t, Vec2{X: 2.5, Y: 0}, got)
}

func TestAngleNetRoundTrip(t *testing.T) {
	a := AngleFromRadians(1.0)
	net := a.ToNet()
	assert.Equal(t, int32(256), net)

	back := AngleFromNet(net)
	assert.InDelta(t, 1.0, back.ToRadians(), 1e-6)
}

func TestHookNetRoundTripFlying(t *testing.T) {
	h := Hook{Kind: HookFlying, Pos: Vec2{X: 100, Y: 50}, Dir: Vec2{X: 1, Y: 0}}

	assert.Equal(t, netHookFlying, h.netState())
	assert.Equal(t, Vec2{X: 100, Y: 50}, h.netPos())
	assert.Equal(t, Vec2{X: 1, Y: 0}, h.netDir())

	back := hookFromNet(h.netState(), h.netPos(), h.netDir(), h.netHookedPlayer(), h.netTick(), nil)
	assert.Equal(t, HookFlying, back.Kind)
	assert.Equal(t, h.Pos, back.Pos)
	assert.Equal(t, h.Dir, back.Dir)
}

func TestHookNetRoundTripGrabbed(t *testing.T) {
	h := Hook{Kind: HookGrabbed, Target: 7, Tick: 12}

	assert.Equal(t, netHookAttachedGrabbed, h.netState())
	assert.Equal(t, int32(7), h.netHookedPlayer())
	assert.Equal(t, int32(12), h.netTick())

	back := hookFromNet(h.netState(), Vec2{}, Vec2{}, h.netHookedPlayer(), h.netTick(), nil)
	assert.Equal(t, HookGrabbed, back.Kind)
	assert.Equal(t, CharacterID(7), back.Target)
	assert.Equal(t, uint32(12), back.Tick)
}

func TestHookFromNetUnknownStateWarns(t *testing.T) {
	collect := warn.NewCollect[Warning]()

	back := hookFromNet(99, Vec2{}, Vec2{}, -1, 0, collect)
	assert.Equal(t, HookRetracted, back.Kind)
	require.Len(t, collect.Warnings, 1)
	assert.Equal(t, WarnUnknownHookState, collect.Warnings[0].Kind)
}

func TestSaturatedAdd(t *testing.T) {
	assert.Equal(t, float32(5), SaturatedAdd(-10, 10, 4, 1))
	// Already past max in the direction of the modifier: left untouched.
	assert.Equal(t, float32(12), SaturatedAdd(-10, 10, 12, 1))
	// Pushed back into the range: added normally.
	assert.Equal(t, float32(7), SaturatedAdd(-10, 10, 12, -5))
}

func TestVelocityRampBelowStartIsUnity(t *testing.T) {
	tuning := DefaultTuning()
	assert.Equal(t, float32(1.0), VelocityRamp(0, tuning))
	assert.Less(t, VelocityRamp(tuning.VelrampStart.ToFloat()+1000, tuning), float32(1.0))
}

func TestCharacterToNetFromNetQuantize(t *testing.T) {
	ch := Spawn(Vec2{X: 123.4, Y: 567.8})
	ch.Vel = Vec2{X: 1.5, Y: -2.25}
	ch.Angle = AngleFromRadians(0.5)

	core := ch.ToNet()
	assert.Equal(t, int32(123), core.X)
	assert.Equal(t, int32(568), core.Y)

	back := CharacterFromNet(core, warn.Discard[Warning]{})
	assert.InDelta(t, 123.0, back.Pos.X, 0.5)
	assert.InDelta(t, 568.0, back.Pos.Y, 0.5)
	assert.InDelta(t, float64(ch.Vel.X), float64(back.Vel.X), 0.01)

	before := ch
	ch.Quantize()
	assert.Equal(t, before.ToNet(), ch.ToNet())
}

type flatMap struct {
	data map[Vec2]CollisionType
}

func (f flatMap) CheckPoint(pos Vec2) (CollisionType, bool) {
	t, ok := f.data[pos]
	return t, ok
}

type noOthers struct{}

func (noOthers) ForEach(func(CharacterID, Character) bool) {}
func (noOthers) Modify(CharacterID, func(*Character))      {}

func TestCharacterTickMoveFreeFall(t *testing.T) {
	ch := Spawn(Vec2{X: 0, Y: 0})
	tuning := DefaultTuning()
	collision := flatMap{data: map[Vec2]CollisionType{}}
	others := noOthers{}

	for i := 0; i < 10; i++ {
		ch.Tick(&collision, others, Input{}, tuning)
		ch.Move(&collision, others, tuning)
	}

	assert.Greater(t, ch.Vel.Y, float32(0))
	assert.Greater(t, ch.Pos.Y, float32(0))
}

func TestCharacterHookFiresOnInput(t *testing.T) {
	ch := Spawn(Vec2{X: 0, Y: 0})
	tuning := DefaultTuning()
	collision := flatMap{data: map[Vec2]CollisionType{}}
	others := noOthers{}

	ch.Tick(&collision, others, Input{TargetX: 1, Hook: 1}, tuning)
	assert.Equal(t, HookFlying, ch.Hook.Kind)

	ch.Tick(&collision, others, Input{TargetX: 1, Hook: 0}, tuning)
	assert.Equal(t, HookIdle, ch.Hook.Kind)
}
