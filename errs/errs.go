// Package errs collects the sentinel errors shared across twnet's codecs and
// container readers. Callers compare against these with errors.Is; decoders
// wrap them with fmt.Errorf("%w: ...") to attach positional context.
package errs

import "errors"

var (
	// ErrUnexpectedEnd is returned by the varint/string/data decoders when the
	// buffer ends before a value finishes decoding.
	ErrUnexpectedEnd = errors.New("twnet: unexpected end of buffer")

	// ErrCapacity is returned by a Packer when appending a value would
	// overflow its bounded destination buffer. The Packer is left unmodified.
	ErrCapacity = errors.New("twnet: packer capacity exceeded")

	// ErrNulInString is returned when encoding a string containing an
	// embedded NUL byte; this is a programmer-contract violation, not a
	// malformed-input condition.
	ErrNulInString = errors.New("twnet: string contains embedded NUL byte")

	// ErrNegativeLength is returned when a length-prefixed data blob decodes
	// a negative length.
	ErrNegativeLength = errors.New("twnet: negative data length")

	// ErrTooLongData is returned when a connectionless payload exceeds the
	// maximum packet payload size.
	ErrTooLongData = errors.New("twnet: payload too long")

	// ErrPacketTooLarge is returned when a raw packet exceeds MaxPacketSize.
	ErrPacketTooLarge = errors.New("twnet: packet exceeds maximum size")

	// ErrCompression is returned when zlib decompression of a datafile data
	// blob fails or yields a size other than the recorded one.
	ErrCompression = errors.New("twnet: compression error")

	// ErrMalformedPacket covers header/flag combinations that cannot be
	// interpreted as a well-formed packet.
	ErrMalformedPacket = errors.New("twnet: malformed packet")

	// ErrMalformedChunk covers chunk headers whose declared size runs past
	// the end of the packet payload.
	ErrMalformedChunk = errors.New("twnet: malformed chunk")

	// ErrUnknownControl is returned for a control byte outside the known
	// KEEPALIVE/CONNECT/CONNECT_ACCEPT/ACCEPT/CLOSE set.
	ErrUnknownControl = errors.New("twnet: unknown control message")

	// ErrProtocolViolation marks a control message received in a state that
	// does not expect it (e.g. ACCEPT while Unconnected).
	ErrProtocolViolation = errors.New("twnet: protocol violation")

	// ErrPeerNotFound is returned by netmux operations addressed to an
	// unknown PeerId.
	ErrPeerNotFound = errors.New("twnet: unknown peer")

	// ErrDuplicateObject is returned by the snapshot builder when a second
	// object with the same (type_id, obj_id) is added.
	ErrDuplicateObject = errors.New("twnet: duplicate snapshot object")

	// ErrUnknownMessageID marks a chunk's message id that matches no known
	// message. No function in this module returns it; protocol's message-id
	// decoder accepts any id.
	ErrUnknownMessageID = errors.New("twnet: unknown message id")

	// ErrInvalidHeader covers magic/version/size-field failures in
	// datafile, map, demo and teehistorian headers.
	ErrInvalidHeader = errors.New("twnet: invalid container header")

	// ErrInvalidItemIndex is returned when a datafile's item-type directory
	// or item offset table fails its monotonicity/partition invariants.
	ErrInvalidItemIndex = errors.New("twnet: invalid datafile item index")

	// ErrDuplicateItem is returned by the datafile writer when the same
	// (type_id, id) pair is added twice.
	ErrDuplicateItem = errors.New("twnet: duplicate datafile item")

	// ErrExcessData names the excess-trailing-bytes condition as an error
	// value. No function in this module returns it; decoders report that
	// condition as a warning instead.
	ErrExcessData = errors.New("twnet: excess data after decoded fields")

	// ErrUnknownItemTag is returned when a teehistorian item tag does not
	// match any known negative sentinel or non-negative player-diff cid.
	ErrUnknownItemTag = errors.New("twnet: unknown teehistorian item tag")

	// ErrPlayerDiffWithoutNew is returned when a player-position delta
	// references a client id that was never introduced by PlayerNew.
	ErrPlayerDiffWithoutNew = errors.New("twnet: player diff without new")

	// ErrPlayerNewDuplicate is returned when PlayerNew is decoded for a
	// client id that already has a tracked position.
	ErrPlayerNewDuplicate = errors.New("twnet: duplicate player new")

	// ErrPlayerOldWithoutNew is returned when PlayerOld references a client
	// id that was never introduced by PlayerNew.
	ErrPlayerOldWithoutNew = errors.New("twnet: player old without new")

	// ErrInputDiffWithoutNew is returned when an input delta references a
	// client id that was never introduced by InputNew.
	ErrInputDiffWithoutNew = errors.New("twnet: input diff without new")

	// ErrInputNewDuplicate is returned when InputNew is decoded for a
	// client id that already has tracked input.
	ErrInputNewDuplicate = errors.New("twnet: duplicate input new")

	// ErrTickOverflow is returned when advancing the tick counter would
	// overflow int32.
	ErrTickOverflow = errors.New("twnet: tick overflow")
)
