package message

import (
	"io"

	"github.com/quic-go/quic-go/quicvarint"
)

/*
 * Frame Message {
 *   Message Length (varint),
 *   Payload ([]byte),
 * }
 */

func NewFrameMessage(payload []byte) *FrameMessage {
	p := make([]byte, len(payload))
	copy(p, payload)
	return &FrameMessage{
		Payload: p,
	}
}

type FrameMessage struct {
	Payload []byte
}

func (fm FrameMessage) Len() int {
	return bytesLen(fm.Payload)
}

func (fm *FrameMessage) Encode(w io.Writer) error {
	b := make([]byte, 0, fm.Len()+quicvarint.Len(uint64(fm.Len())))
	b = appendBytes(b, fm.Payload)

	_, err := w.Write(b)
	return err
}

func (fm *FrameMessage) Decode(r io.Reader) error {
	payload, err := readBytes(quicvarint.NewReader(r))
	if err != nil {
		return err
	}

	fm.Payload = payload

	return nil
}

// CopyBytes method returns a copy of the internal slice.
func (f *FrameMessage) CopyBytes() []byte {
	b := make([]byte, len(f.Payload))
	copy(b, f.Payload)
	return b
}

func (f FrameMessage) Size() int {
	return len(f.Payload)
}

func (f *FrameMessage) Release() {
	f.Payload = nil
}
