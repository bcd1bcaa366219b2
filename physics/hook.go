package physics

import "github.com/ddnet-go/twnet/warn"

// HookKind identifies which variant of the hook state machine a Hook value
// represents.
type HookKind int

const (
	// HookIdle is the resting state; firing the hook button starts a new
	// HookFlying from here.
	HookIdle HookKind = iota
	// HookRetracted is the same as HookIdle, except the hook won't fire
	// again until the hook button is released.
	HookRetracted
	// HookFlying is the outbound hook searching for something to grab.
	HookFlying
	// HookAttached is a hook anchored to static geometry.
	HookAttached
	// HookGrabbed is a hook holding onto another character.
	HookGrabbed
	// HookRetracting0 is the first of three retraction ticks.
	HookRetracting0
	// HookRetracting1 is the second of three retraction ticks.
	HookRetracting1
	// HookRetracting2 is the last retraction tick before HookRetracted.
	HookRetracting2
)

// Wire values of the hook_state field of CharacterCore.
const (
	netHookRetracted      int32 = -1
	netHookIdle            int32 = 0
	netHookRetracting0     int32 = 1
	netHookRetracting1     int32 = 2
	netHookRetracting2     int32 = 3
	netHookFlying          int32 = 4
	netHookAttachedGrabbed int32 = 5
)

// Hook is the tagged hook state of a Character. Which of Pos, Dir, Target
// and Tick are meaningful depends on Kind.
type Hook struct {
	Kind HookKind

	// Pos is valid for HookFlying, HookAttached, HookRetracting0/1/2.
	Pos Vec2
	// Dir is valid for HookFlying only.
	Dir Vec2
	// Target is valid for HookGrabbed only.
	Target CharacterID
	// Tick counts ticks since the grab for HookGrabbed only.
	Tick uint32
}

func (h Hook) netState() int32 {
	switch h.Kind {
	case HookRetracted:
		return netHookRetracted
	case HookIdle:
		return netHookIdle
	case HookFlying:
		return netHookFlying
	case HookAttached, HookGrabbed:
		return netHookAttachedGrabbed
	case HookRetracting0:
		return netHookRetracting0
	case HookRetracting1:
		return netHookRetracting1
	case HookRetracting2:
		return netHookRetracting2
	default:
		return netHookRetracted
	}
}

func (h Hook) netPos() Vec2 {
	switch h.Kind {
	case HookFlying, HookAttached, HookRetracting0, HookRetracting1, HookRetracting2:
		return h.Pos
	default:
		return Vec2{}
	}
}

func (h Hook) netDir() Vec2 {
	if h.Kind == HookFlying {
		return h.Dir
	}

	return Vec2{}
}

func (h Hook) netTick() int32 {
	if h.Kind == HookGrabbed {
		return int32(h.Tick)
	}

	return 0
}

func (h Hook) netHookedPlayer() int32 {
	if h.Kind == HookGrabbed {
		return int32(h.Target)
	}

	return -1
}

// hookFromNet reconstructs a Hook from a CharacterCore's hook fields. An
// unrecognised hook_state warns and falls back to HookRetracted.
func hookFromNet(state int32, pos, dir Vec2, hookedPlayer, hookTick int32, sink warn.Sink[Warning]) Hook {
	switch state {
	case netHookRetracted:
		return Hook{Kind: HookRetracted}
	case netHookIdle:
		return Hook{Kind: HookIdle}
	case netHookFlying:
		return Hook{Kind: HookFlying, Pos: pos, Dir: dir}
	case netHookAttachedGrabbed:
		if hookedPlayer == -1 {
			return Hook{Kind: HookAttached, Pos: pos}
		}

		return Hook{Kind: HookGrabbed, Target: CharacterID(hookedPlayer), Tick: uint32(hookTick)}
	case netHookRetracting0:
		return Hook{Kind: HookRetracting0, Pos: pos}
	case netHookRetracting1:
		return Hook{Kind: HookRetracting1, Pos: pos}
	case netHookRetracting2:
		return Hook{Kind: HookRetracting2, Pos: pos}
	default:
		if sink != nil {
			sink.Warn(Warning{Kind: WarnUnknownHookState})
		}

		return Hook{Kind: HookRetracted}
	}
}
