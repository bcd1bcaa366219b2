package teehistorian

import (
	"fmt"
	"math"

	"github.com/ddnet-go/twnet/errs"
	"github.com/ddnet-go/twnet/varint"
	"github.com/ddnet-go/twnet/warn"
)

// Reader walks the item stream of an in-memory teehistorian file,
// reconstructing tick boundaries and per-player position/input state.
type Reader struct {
	Header Header

	buf []byte
	pos int

	tick             int32
	players          map[int32]Pos
	inputs           map[int32][InputLen]int32
	maxCid           int32
	prevPlayerCid    int32
	hasPrevPlayerCid bool
	inTick           bool
	bufferedKind     *kind
	finished         bool

	sink warn.Sink[varint.Warning]
}

// Open parses the header and returns a Reader positioned at the start of
// the item stream.
func Open(buf []byte, sink warn.Sink[varint.Warning]) (*Reader, error) {
	if sink == nil {
		sink = warn.Discard[varint.Warning]{}
	}

	h, n, err := ReadHeader(buf)
	if err != nil {
		return nil, err
	}

	return &Reader{
		Header:  h,
		buf:     buf,
		pos:     n,
		maxCid:  -1,
		players: make(map[int32]Pos),
		inputs:  make(map[int32][InputLen]int32),
		sink:    sink,
	}, nil
}

// MaxCid returns the highest client id observed so far.
func (r *Reader) MaxCid() int32 {
	return r.maxCid
}

// PlayerPos returns the tracked position of cid, if any.
func (r *Reader) PlayerPos(cid int32) (Pos, bool) {
	p, ok := r.players[cid]

	return p, ok
}

func (r *Reader) decodeNextKind() (kind, error) {
	u := varint.NewUnpacker(r.buf[r.pos:])

	k, err := decodeKind(u, r.sink)
	if err != nil {
		return kind{}, err
	}

	r.pos += u.Pos()

	return k, nil
}

func (r *Reader) decodeItemRest(k kind) (any, error) {
	u := varint.NewUnpacker(r.buf[r.pos:])

	item, err := decodeRest(k, u, r.sink)
	if err != nil {
		return nil, err
	}

	r.pos += u.Pos()

	return item, nil
}

func advanceTick(tick, by int32) (int32, error) {
	next := int64(tick) + int64(by)
	if next > math.MaxInt32 {
		return 0, errs.ErrTickOverflow
	}

	return int32(next), nil
}

// Next returns the next event in the stream. ok is false once a Finish
// item has been consumed; a subsequent call always returns ok=false.
func (r *Reader) Next() (Event, bool, error) {
	if r.finished {
		return Event{}, false, nil
	}

	k, err := r.nextKind()
	if err != nil {
		return Event{}, false, err
	}

	if k.tag != tagTickSkip && k.tag != tagFinish && !r.inTick {
		r.bufferedKind = &k
		r.inTick = true

		return Event{Kind: EventTickStart, Tick: r.tick}, true, nil
	}

	if cid, ok := k.playerCid(); ok {
		if r.hasPrevPlayerCid && r.prevPlayerCid >= cid {
			oldTick := r.tick

			next, err := advanceTick(oldTick, 1)
			if err != nil {
				return Event{}, false, err
			}

			r.tick = next
			r.hasPrevPlayerCid = false
			r.bufferedKind = &k
			r.inTick = false

			return Event{Kind: EventTickEnd, Tick: oldTick}, true, nil
		}
	} else if k.tag == tagFinish && r.inTick {
		r.bufferedKind = &k
		r.inTick = false

		return Event{Kind: EventTickEnd, Tick: r.tick}, true, nil
	}

	item, err := r.decodeItemRest(k)
	if err != nil {
		return Event{}, false, err
	}

	if cid, ok := itemCid(item); ok && cid > r.maxCid {
		r.maxCid = cid
	}

	return r.translate(item)
}

func (r *Reader) nextKind() (kind, error) {
	if r.bufferedKind != nil {
		k := *r.bufferedKind
		r.bufferedKind = nil

		return k, nil
	}

	return r.decodeNextKind()
}

func (r *Reader) translate(item any) (Event, bool, error) {
	switch v := item.(type) {
	case struct{}:
		r.finished = true

		return Event{}, false, nil
	case TickSkip:
		oldTick := r.tick

		next, err := advanceTick(oldTick, 1+v.Dt)
		if err != nil {
			return Event{}, false, err
		}

		r.tick = next

		if r.inTick {
			r.inTick = false

			return Event{Kind: EventTickEnd, Tick: oldTick}, true, nil
		}

		r.inTick = true

		return Event{Kind: EventTickStart, Tick: r.tick}, true, nil
	case PlayerDiff:
		r.prevPlayerCid, r.hasPrevPlayerCid = v.Cid, true

		pos, ok := r.players[v.Cid]
		if !ok {
			return Event{}, false, fmt.Errorf("teehistorian: %w (cid %d)", errs.ErrPlayerDiffWithoutNew, v.Cid)
		}

		oldPos := pos
		pos = pos.add(v.Dx, v.Dy)
		r.players[v.Cid] = pos

		return Event{Kind: EventPlayerChange, Change: &PlayerChangeEvent{Cid: v.Cid, Pos: pos, OldPos: oldPos}}, true, nil
	case PlayerNewItem:
		r.prevPlayerCid, r.hasPrevPlayerCid = v.Cid, true

		if _, exists := r.players[v.Cid]; exists {
			return Event{}, false, fmt.Errorf("teehistorian: %w (cid %d)", errs.ErrPlayerNewDuplicate, v.Cid)
		}

		pos := Pos{X: v.X, Y: v.Y}
		r.players[v.Cid] = pos

		return Event{Kind: EventPlayerNew, New: &PlayerNewEvent{Cid: v.Cid, Pos: pos}}, true, nil
	case PlayerOldItem:
		r.prevPlayerCid, r.hasPrevPlayerCid = v.Cid, true

		pos, ok := r.players[v.Cid]
		if !ok {
			return Event{}, false, fmt.Errorf("teehistorian: %w (cid %d)", errs.ErrPlayerOldWithoutNew, v.Cid)
		}

		delete(r.players, v.Cid)

		return Event{Kind: EventPlayerOld, Old: &PlayerOldEvent{Cid: v.Cid, Pos: pos}}, true, nil
	case InputDiff:
		in, ok := r.inputs[v.Cid]
		if !ok {
			return Event{}, false, fmt.Errorf("teehistorian: %w (cid %d)", errs.ErrInputDiffWithoutNew, v.Cid)
		}

		for i := range in {
			in[i] += v.Diff[i]
		}

		r.inputs[v.Cid] = in

		return Event{Kind: EventInput, Input: &InputEvent{Cid: v.Cid, Values: in}}, true, nil
	case InputNewItem:
		if _, exists := r.inputs[v.Cid]; exists {
			return Event{}, false, fmt.Errorf("teehistorian: %w (cid %d)", errs.ErrInputNewDuplicate, v.Cid)
		}

		r.inputs[v.Cid] = v.New

		return Event{Kind: EventInput, Input: &InputEvent{Cid: v.Cid, Values: v.New}}, true, nil
	case MessageItem:
		return Event{Kind: EventMessage, Message: &v}, true, nil
	case JoinItem:
		return Event{Kind: EventJoin, Join: &v}, true, nil
	case DropItem:
		return Event{Kind: EventDrop, Drop: &v}, true, nil
	case ConsoleCommandItem:
		return Event{Kind: EventConsoleCommand, Console: &v}, true, nil
	case ExtraItem:
		return Event{Kind: EventExtra, Extra: &v}, true, nil
	default:
		return Event{}, false, fmt.Errorf("teehistorian: %w: unhandled item %T", errs.ErrUnknownItemTag, item)
	}
}

func itemCid(item any) (int32, bool) {
	switch v := item.(type) {
	case PlayerDiff:
		return v.Cid, true
	case PlayerNewItem:
		return v.Cid, true
	case PlayerOldItem:
		return v.Cid, true
	case InputDiff:
		return v.Cid, true
	case InputNewItem:
		return v.Cid, true
	case MessageItem:
		return v.Cid, true
	case JoinItem:
		return v.Cid, true
	case DropItem:
		return v.Cid, true
	case ConsoleCommandItem:
		return v.Cid, true
	default:
		return 0, false
	}
}
