package physics

import "github.com/ddnet-go/twnet/warn"

// CharacterCore is the quantised, wire-ready snapshot of a Character,
// matching the snapshot object fields of the same name.
type CharacterCore struct {
	X, Y           int32
	VelX, VelY     int32
	HookState      int32
	HookTick       int32
	HookX, HookY   int32
	HookDx, HookDy int32
	HookedPlayer   int32
	Jumped         int32
	Direction      int32
	Angle          int32
}

func (ch Character) netJumped() int32 {
	var airjumpBit, jumpedBit int32
	if ch.usedAirjump {
		airjumpBit = 1
	}
	if ch.jumpedAlready {
		jumpedBit = 1
	}

	return airjumpBit<<1 | jumpedBit
}

func usedAirjumpFromNet(jumped int32) bool {
	return jumped&2 != 0
}

func jumpedAlreadyFromNet(jumped int32) bool {
	return jumped&1 != 0
}

// ToNet quantises the character to its wire representation.
func (ch Character) ToNet() CharacterCore {
	networkVel := ch.Vel.Scale(256.0)
	hookPos := ch.Hook.netPos()
	hookDir := ch.Hook.netDir().Scale(256.0)

	return CharacterCore{
		X: roundToInt32(ch.Pos.X), Y: roundToInt32(ch.Pos.Y),
		VelX: roundToInt32(networkVel.X), VelY: roundToInt32(networkVel.Y),
		HookState:    ch.Hook.netState(),
		HookTick:     ch.Hook.netTick(),
		HookX:        roundToInt32(hookPos.X),
		HookY:        roundToInt32(hookPos.Y),
		HookDx:       roundToInt32(hookDir.X),
		HookDy:       roundToInt32(hookDir.Y),
		HookedPlayer: ch.Hook.netHookedPlayer(),
		Jumped:       ch.netJumped(),
		Direction:    int32(ch.MoveDirection),
		Angle:        ch.Angle.ToNet(),
	}
}

// CharacterFromNet reconstructs a Character from its wire representation.
// sink receives a warning if HookState doesn't match a known variant.
func CharacterFromNet(core CharacterCore, sink warn.Sink[Warning]) Character {
	return Character{
		Pos: Vec2{X: float32(core.X), Y: float32(core.Y)},
		Vel: Vec2{X: float32(core.VelX), Y: float32(core.VelY)}.Div(256.0),
		Hook: hookFromNet(
			core.HookState,
			Vec2{X: float32(core.HookX), Y: float32(core.HookY)},
			Vec2{X: float32(core.HookDx), Y: float32(core.HookDy)}.Div(256.0),
			core.HookedPlayer,
			core.HookTick,
			sink,
		),
		usedAirjump:   usedAirjumpFromNet(core.Jumped),
		jumpedAlready: jumpedAlreadyFromNet(core.Jumped),
		Angle:         AngleFromNet(core.Angle),
		MoveDirection: MoveDirectionFromInt(core.Direction),
	}
}

// Quantize snaps ch to exactly the values a ToNet/FromNet round trip would
// produce, matching the precision loss the real wire protocol imposes.
func (ch *Character) Quantize() {
	*ch = CharacterFromNet(ch.ToNet(), warn.Discard[Warning]{})
}
