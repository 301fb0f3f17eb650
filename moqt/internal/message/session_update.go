package message

import (
	"io"
)

type SessionUpdateMessage struct {
	/*
	 * Updated session bitrate
	 */
	Bitrate uint64
}

func (sum SessionUpdateMessage) Len() int {
	return numberLen(sum.Bitrate)
}

func (sum SessionUpdateMessage) Encode(w io.Writer) error {
	p := make([]byte, 0, sum.Len())
	p = appendNumber(p, sum.Bitrate)

	b := make([]byte, 0, len(p)+8)
	b = appendBytes(b, p)

	_, err := w.Write(b)
	return err
}

func (sum *SessionUpdateMessage) Decode(r io.Reader) error {
	mr, err := newReader(r)
	if err != nil {
		return err
	}

	num, err := readNumber(mr)
	if err != nil {
		return err
	}
	sum.Bitrate = num

	return checkExhausted(mr)
}
