package message

import (
	"io"
	"log/slog"
)

type InfoMessage struct {
	TrackPriority       TrackPriority
	LatestGroupSequence GroupSequence
	GroupOrder          GroupOrder
}

func (im InfoMessage) Encode(w io.Writer) error {
	slog.Debug("encoding a INFO message")

	/*
	 * Serialize the message in the following format
	 *
	 * INFO Message {
	 *   Message Length (varint),
	 *   Publisher Priority (varint),
	 *   Latest Group Sequence (varint),
	 *   Group Order (varint),
	 * }
	 */
	p := make([]byte, 0, 1<<4)

	p = appendNumber(p, uint64(im.TrackPriority))
	p = appendNumber(p, uint64(im.LatestGroupSequence))
	p = appendNumber(p, uint64(im.GroupOrder))

	b := make([]byte, 0, len(p)+8)
	b = appendBytes(b, p)

	_, err := w.Write(b)
	if err != nil {
		slog.Error("failed to write a INFO message", slog.String("error", err.Error()))
		return err
	}

	slog.Debug("encoded a INFO message")
	return nil
}

func (im *InfoMessage) Decode(r io.Reader) error {
	slog.Debug("decoding a INFO message")

	mr, err := newReader(r)
	if err != nil {
		return err
	}

	num, err := readNumber(mr)
	if err != nil {
		return err
	}
	im.TrackPriority = TrackPriority(num)

	num, err = readNumber(mr)
	if err != nil {
		return err
	}
	im.LatestGroupSequence = GroupSequence(num)

	num, err = readNumber(mr)
	if err != nil {
		return err
	}
	im.GroupOrder = GroupOrder(num)

	slog.Debug("decoded a INFO message")
	return nil
}
