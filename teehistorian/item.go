package teehistorian

import (
	"fmt"

	"github.com/ddnet-go/twnet/errs"
	"github.com/ddnet-go/twnet/varint"
	"github.com/ddnet-go/twnet/warn"
)

// PlayerDiff is a wrapping position delta applied to an already-tracked
// player.
type PlayerDiff struct {
	Cid    int32
	Dx, Dy int32
}

// TickSkip advances the tick counter by 1+Dt without an intervening
// player/input diff run.
type TickSkip struct {
	Dt int32
}

// PlayerNewItem introduces a new tracked player at an absolute position.
type PlayerNewItem struct {
	Cid  int32
	X, Y int32
}

// PlayerOldItem stops tracking a player.
type PlayerOldItem struct {
	Cid int32
}

// InputDiff is a wrapping delta applied to an already-tracked input.
type InputDiff struct {
	Cid  int32
	Diff [InputLen]int32
}

// InputNewItem introduces a new tracked absolute input state.
type InputNewItem struct {
	Cid int32
	New [InputLen]int32
}

// MessageItem is a raw game-message blob received from one client.
type MessageItem struct {
	Cid int32
	Msg []byte
}

// JoinItem marks a client joining the game.
type JoinItem struct {
	Cid int32
}

// DropItem marks a client leaving the game.
type DropItem struct {
	Cid    int32
	Reason []byte
}

// ConsoleCommandItem is a remote-console invocation.
type ConsoleCommandItem struct {
	Cid      int32
	FlagMask uint32
	Cmd      []byte
	Args     [][]byte
}

// ExtraItem is an out-of-band extension item, identified by a 16-byte
// UUID rather than a fixed tag, so new item kinds can be added without
// growing the negative-tag table.
type ExtraItem struct {
	UUID [16]byte
	Data []byte
}

func decodeKind(u *varint.Unpacker, sink warn.Sink[varint.Warning]) (kind, error) {
	tag, err := u.NextInt32(sink)
	if err != nil {
		return kind{}, fmt.Errorf("teehistorian: tag: %w", err)
	}

	switch tag {
	case tagPlayerNew, tagPlayerOld:
		cid, err := u.NextInt32(sink)
		if err != nil {
			return kind{}, fmt.Errorf("teehistorian: cid: %w", err)
		}

		return kind{tag: tag, cid: cid}, nil
	case tagFinish, tagTickSkip, tagInputDiff, tagInputNew, tagMessage, tagJoin, tagDrop, tagConsoleCommand, tagExtra:
		return kind{tag: tag}, nil
	default:
		if tag >= 0 {
			return kind{tag: tag, cid: tag}, nil
		}

		return kind{}, fmt.Errorf("teehistorian: %w: %d", errs.ErrUnknownItemTag, tag)
	}
}

func readInput(u *varint.Unpacker, sink warn.Sink[varint.Warning]) ([InputLen]int32, error) {
	var out [InputLen]int32

	for i := range out {
		v, err := u.NextInt32(sink)
		if err != nil {
			return out, fmt.Errorf("teehistorian: input[%d]: %w", i, err)
		}

		out[i] = v
	}

	return out, nil
}

func decodeRest(k kind, u *varint.Unpacker, sink warn.Sink[varint.Warning]) (any, error) {
	switch k.tag {
	case tagFinish:
		return struct{}{}, nil
	case tagTickSkip:
		dt, err := u.NextInt32(sink)
		if err != nil {
			return nil, fmt.Errorf("teehistorian: tick_skip: %w", err)
		}

		return TickSkip{Dt: dt}, nil
	case tagPlayerNew:
		x, err := u.NextInt32(sink)
		if err != nil {
			return nil, fmt.Errorf("teehistorian: player_new x: %w", err)
		}

		y, err := u.NextInt32(sink)
		if err != nil {
			return nil, fmt.Errorf("teehistorian: player_new y: %w", err)
		}

		return PlayerNewItem{Cid: k.cid, X: x, Y: y}, nil
	case tagPlayerOld:
		return PlayerOldItem{Cid: k.cid}, nil
	case tagInputDiff:
		cid, err := u.NextInt32(sink)
		if err != nil {
			return nil, fmt.Errorf("teehistorian: input_diff cid: %w", err)
		}

		diff, err := readInput(u, sink)
		if err != nil {
			return nil, err
		}

		return InputDiff{Cid: cid, Diff: diff}, nil
	case tagInputNew:
		cid, err := u.NextInt32(sink)
		if err != nil {
			return nil, fmt.Errorf("teehistorian: input_new cid: %w", err)
		}

		in, err := readInput(u, sink)
		if err != nil {
			return nil, err
		}

		return InputNewItem{Cid: cid, New: in}, nil
	case tagMessage:
		cid, err := u.NextInt32(sink)
		if err != nil {
			return nil, fmt.Errorf("teehistorian: message cid: %w", err)
		}

		msg, err := u.NextData(sink)
		if err != nil {
			return nil, fmt.Errorf("teehistorian: message data: %w", err)
		}

		return MessageItem{Cid: cid, Msg: append([]byte(nil), msg...)}, nil
	case tagJoin:
		cid, err := u.NextInt32(sink)
		if err != nil {
			return nil, fmt.Errorf("teehistorian: join cid: %w", err)
		}

		return JoinItem{Cid: cid}, nil
	case tagDrop:
		cid, err := u.NextInt32(sink)
		if err != nil {
			return nil, fmt.Errorf("teehistorian: drop cid: %w", err)
		}

		reason, err := u.NextString()
		if err != nil {
			return nil, fmt.Errorf("teehistorian: drop reason: %w", err)
		}

		return DropItem{Cid: cid, Reason: append([]byte(nil), reason...)}, nil
	case tagConsoleCommand:
		cid, err := u.NextInt32(sink)
		if err != nil {
			return nil, fmt.Errorf("teehistorian: console_command cid: %w", err)
		}

		flagMask, err := u.NextInt32(sink)
		if err != nil {
			return nil, fmt.Errorf("teehistorian: console_command flag_mask: %w", err)
		}

		cmd, err := u.NextString()
		if err != nil {
			return nil, fmt.Errorf("teehistorian: console_command cmd: %w", err)
		}

		numArgs, err := u.NextInt32(sink)
		if err != nil {
			return nil, fmt.Errorf("teehistorian: console_command num_args: %w", err)
		}

		if numArgs < 0 {
			return nil, fmt.Errorf("teehistorian: console_command: %w: negative num_args", errs.ErrMalformedPacket)
		}

		args := make([][]byte, numArgs)
		for i := range args {
			arg, err := u.NextString()
			if err != nil {
				return nil, fmt.Errorf("teehistorian: console_command arg[%d]: %w", i, err)
			}

			args[i] = append([]byte(nil), arg...)
		}

		return ConsoleCommandItem{Cid: cid, FlagMask: uint32(flagMask), Cmd: append([]byte(nil), cmd...), Args: args}, nil
	case tagExtra:
		id, err := u.NextRaw(16)
		if err != nil {
			return nil, fmt.Errorf("teehistorian: extra uuid: %w", err)
		}

		data, err := u.NextData(sink)
		if err != nil {
			return nil, fmt.Errorf("teehistorian: extra data: %w", err)
		}

		var item ExtraItem
		copy(item.UUID[:], id)
		item.Data = append([]byte(nil), data...)

		return item, nil
	default:
		// k.tag >= 0: PlayerDiff.
		dx, err := u.NextInt32(sink)
		if err != nil {
			return nil, fmt.Errorf("teehistorian: player_diff dx: %w", err)
		}

		dy, err := u.NextInt32(sink)
		if err != nil {
			return nil, fmt.Errorf("teehistorian: player_diff dy: %w", err)
		}

		return PlayerDiff{Cid: k.cid, Dx: dx, Dy: dy}, nil
	}
}
