package message

import (
	"io"
)

/*
 * SUBSCRIBE_UPDATE Message {
 *   Track Priority (varint),
 *   Min Group Sequence (varint),
 *   Max Group Sequence (varint),
 * }
 */
type SubscribeUpdateMessage struct {
	TrackPriority    TrackPriority
	MinGroupSequence GroupSequence
	MaxGroupSequence GroupSequence
}

func (su SubscribeUpdateMessage) Len() int {
	var l int

	l += numberLen(uint64(su.TrackPriority))
	l += numberLen(uint64(su.MinGroupSequence))
	l += numberLen(uint64(su.MaxGroupSequence))

	return l
}

func (su SubscribeUpdateMessage) Encode(w io.Writer) error {
	p := make([]byte, 0, su.Len())

	p = appendNumber(p, uint64(su.TrackPriority))
	p = appendNumber(p, uint64(su.MinGroupSequence))
	p = appendNumber(p, uint64(su.MaxGroupSequence))

	b := make([]byte, 0, len(p)+8)
	b = appendBytes(b, p)

	_, err := w.Write(b)
	return err
}

func (su *SubscribeUpdateMessage) Decode(r io.Reader) error {
	mr, err := newReader(r)
	if err != nil {
		return err
	}

	num, err := readNumber(mr)
	if err != nil {
		return err
	}
	su.TrackPriority = TrackPriority(num)

	num, err = readNumber(mr)
	if err != nil {
		return err
	}
	su.MinGroupSequence = GroupSequence(num)

	num, err = readNumber(mr)
	if err != nil {
		return err
	}
	su.MaxGroupSequence = GroupSequence(num)

	return checkExhausted(mr)
}
