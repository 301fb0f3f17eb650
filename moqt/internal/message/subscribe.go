package message

import (
	"io"

	"github.com/nanoqt/moqsession/moqt/internal/protocol"
)

type SubscribeID = protocol.SubscribeID
type TrackPriority = protocol.TrackPriority

/*
* SUBSCRIBE Message {
*   Subscribe ID (varint),
*   Broadcast Path (string),
*   Track Name (string),
*   Track Priority (varint),
*   Min Group Sequence (varint),
*   Max Group Sequence (varint),
* }
 */
type SubscribeMessage struct {
	SubscribeID      SubscribeID
	BroadcastPath    string
	TrackName        string
	TrackPriority    TrackPriority
	MinGroupSequence GroupSequence
	MaxGroupSequence GroupSequence
}

func (s SubscribeMessage) Len() int {
	var l int

	l += numberLen(uint64(s.SubscribeID))
	l += stringLen(s.BroadcastPath)
	l += stringLen(s.TrackName)
	l += numberLen(uint64(s.TrackPriority))
	l += numberLen(uint64(s.MinGroupSequence))
	l += numberLen(uint64(s.MaxGroupSequence))

	return l
}

func (s SubscribeMessage) Encode(w io.Writer) error {
	p := make([]byte, 0, s.Len())

	p = appendNumber(p, uint64(s.SubscribeID))
	p = appendString(p, s.BroadcastPath)
	p = appendString(p, s.TrackName)
	p = appendNumber(p, uint64(s.TrackPriority))
	p = appendNumber(p, uint64(s.MinGroupSequence))
	p = appendNumber(p, uint64(s.MaxGroupSequence))

	b := make([]byte, 0, len(p)+8)
	b = appendBytes(b, p)

	_, err := w.Write(b)
	return err
}

func (s *SubscribeMessage) Decode(r io.Reader) error {
	mr, err := newReader(r)
	if err != nil {
		return err
	}

	num, err := readNumber(mr)
	if err != nil {
		return err
	}
	s.SubscribeID = SubscribeID(num)

	s.BroadcastPath, err = readString(mr)
	if err != nil {
		return err
	}

	s.TrackName, err = readString(mr)
	if err != nil {
		return err
	}

	num, err = readNumber(mr)
	if err != nil {
		return err
	}
	s.TrackPriority = TrackPriority(num)

	num, err = readNumber(mr)
	if err != nil {
		return err
	}
	s.MinGroupSequence = GroupSequence(num)

	num, err = readNumber(mr)
	if err != nil {
		return err
	}
	s.MaxGroupSequence = GroupSequence(num)

	return checkExhausted(mr)
}
