package message

import (
	"io"
	"log/slog"
)

// FetchMessage requests a single group range from a track by path rather
// than an existing subscription, wire format:
//
//	FETCH Message Payload {
//	  Subscribe ID (varint),
//	  Track Path (string array),
//	  Track Priority (varint),
//	  Group Sequence (varint),
//	  Frame Sequence (varint),
//	}
type FetchMessage struct {
	SubscribeID   SubscribeID
	TrackPath     []string
	TrackPriority TrackPriority
	GroupSequence GroupSequence
	FrameSequence FrameSequence
}

func (fm FetchMessage) Encode(w io.Writer) error {
	payload := make([]byte, 0, 1<<8)
	payload = appendNumber(payload, uint64(fm.SubscribeID))
	payload = appendStringArray(payload, fm.TrackPath)
	payload = appendNumber(payload, uint64(fm.TrackPriority))
	payload = appendNumber(payload, uint64(fm.GroupSequence))
	payload = appendNumber(payload, uint64(fm.FrameSequence))

	framed := appendBytes(make([]byte, 0, len(payload)+8), payload)

	if _, err := w.Write(framed); err != nil {
		slog.Error("failed to write FETCH message", "error", err)
		return err
	}

	return nil
}

func (fm *FetchMessage) Decode(r io.Reader) error {
	mr, err := newReader(r)
	if err != nil {
		return err
	}

	subscribeID, err := readNumber(mr)
	if err != nil {
		return err
	}

	trackPath, err := readStringArray(mr)
	if err != nil {
		return err
	}

	priority, err := readNumber(mr)
	if err != nil {
		return err
	}

	seq, err := readNumber(mr)
	if err != nil {
		return err
	}

	frameSeq, err := readNumber(mr)
	if err != nil {
		return err
	}

	fm.SubscribeID = SubscribeID(subscribeID)
	fm.TrackPath = trackPath
	fm.TrackPriority = TrackPriority(priority)
	fm.GroupSequence = GroupSequence(seq)
	fm.FrameSequence = FrameSequence(frameSeq)

	return nil
}
