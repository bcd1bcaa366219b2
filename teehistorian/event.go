package teehistorian

// Pos is a player's absolute world position, reconstructed from the diff
// stream's wrapping deltas.
type Pos struct {
	X, Y int32
}

func (p Pos) add(dx, dy int32) Pos {
	return Pos{X: p.X + dx, Y: p.Y + dy}
}

// EventKind discriminates the variant stored in an Event.
type EventKind int

const (
	EventTickStart EventKind = iota
	EventTickEnd
	EventPlayerNew
	EventPlayerChange
	EventPlayerOld
	EventInput
	EventMessage
	EventJoin
	EventDrop
	EventConsoleCommand
	EventExtra
)

// PlayerNewEvent reports a player entering tracking at an absolute
// position.
type PlayerNewEvent struct {
	Cid int32
	Pos Pos
}

// PlayerChangeEvent reports a player's position after a delta was
// applied.
type PlayerChangeEvent struct {
	Cid    int32
	Pos    Pos
	OldPos Pos
}

// PlayerOldEvent reports a player leaving tracking.
type PlayerOldEvent struct {
	Cid int32
	Pos Pos
}

// InputEvent reports a player's full input state after a new snapshot or
// a diff was applied.
type InputEvent struct {
	Cid    int32
	Values [InputLen]int32
}

// Event is the Reader's unit of output. Exactly one field besides Kind
// (and, for tick boundaries, Tick) is meaningful.
type Event struct {
	Kind    EventKind
	Tick    int32
	New     *PlayerNewEvent
	Change  *PlayerChangeEvent
	Old     *PlayerOldEvent
	Input   *InputEvent
	Message *MessageItem
	Join    *JoinItem
	Drop    *DropItem
	Console *ConsoleCommandItem
	Extra   *ExtraItem
}
