package teehistorian

// Negative item tags. A non-negative tag is not one of these; it is read
// directly as a client id for a PlayerDiff item (the common case, so it
// gets the cheapest encoding).
const (
	tagFinish         int32 = -1
	tagTickSkip       int32 = -2
	tagPlayerNew      int32 = -3
	tagPlayerOld      int32 = -4
	tagInputDiff      int32 = -5
	tagInputNew       int32 = -6
	tagMessage        int32 = -7
	tagJoin           int32 = -8
	tagDrop           int32 = -9
	tagConsoleCommand int32 = -10
	tagExtra          int32 = -11
)

// InputLen is the number of i32 fields in one player's input snapshot.
const InputLen = 10

// kind identifies the shape of the next item in the stream. For
// PlayerDiff/PlayerNew/PlayerOld the client id is already known at this
// point, since it is encoded as (or immediately after) the tag itself.
type kind struct {
	tag int32
	cid int32
}

// playerCid reports the client id carried by kinds that identify a
// specific tracked player, used to detect the end of a tick's run of
// player updates (cids are emitted in increasing order within a tick).
func (k kind) playerCid() (int32, bool) {
	switch k.tag {
	case tagPlayerNew, tagPlayerOld:
		return k.cid, true
	default:
		if k.tag >= 0 {
			return k.tag, true
		}

		return 0, false
	}
}
