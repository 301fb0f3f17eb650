package message

import (
	"io"
	"log/slog"
)

// GroupSequence numbers a group within a track, starting at 1; 0 means
// unspecified.
type GroupSequence uint64

// GroupMessage opens a group's data stream, wire format:
//
//	GROUP Message Payload {
//	  Subscribe ID (varint),
//	  Group Sequence (varint),
//	  Publisher Priority (varint),
//	}
type GroupMessage struct {
	SubscribeID   SubscribeID
	GroupSequence GroupSequence
	TrackPriority TrackPriority
}

func (g GroupMessage) Encode(w io.Writer) error {
	payload := make([]byte, 0, 1<<4)
	payload = appendNumber(payload, uint64(g.SubscribeID))
	payload = appendNumber(payload, uint64(g.GroupSequence))
	payload = appendNumber(payload, uint64(g.TrackPriority))

	framed := appendBytes(make([]byte, 0, len(payload)+8), payload)

	if _, err := w.Write(framed); err != nil {
		slog.Error("failed to write GROUP message", "error", err)
		return err
	}

	return nil
}

func (g *GroupMessage) Decode(r io.Reader) error {
	mr, err := newReader(r)
	if err != nil {
		return err
	}

	subscribeID, err := readNumber(mr)
	if err != nil {
		return err
	}

	seq, err := readNumber(mr)
	if err != nil {
		return err
	}

	priority, err := readNumber(mr)
	if err != nil {
		return err
	}

	g.SubscribeID = SubscribeID(subscribeID)
	g.GroupSequence = GroupSequence(seq)
	g.TrackPriority = TrackPriority(priority)

	return checkExhausted(mr)
}
