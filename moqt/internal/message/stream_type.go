package message

import (
	"io"
	"log/slog"
)

// StreamType is the first byte written to a unidirectional stream,
// identifying what kind of message stream follows.
type StreamType byte

// StreamTypeMessage is the one-byte header a unidirectional stream opens
// with, wire format:
//
//	STREAM_TYPE Message {
//	  Stream Type (byte),
//	}
type StreamTypeMessage struct {
	StreamType StreamType
}

func (stm StreamTypeMessage) Encode(w io.Writer) (int, error) {
	return w.Write([]byte{byte(stm.StreamType)})
}

func (stm *StreamTypeMessage) Decode(r io.Reader) (int, error) {
	var buf [1]byte
	n, err := io.ReadFull(r, buf[:])
	if err != nil {
		slog.Error("failed to read stream type", "error", err)
		return n, err
	}

	stm.StreamType = StreamType(buf[0])
	return n, nil
}
