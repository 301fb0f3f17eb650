package message

import (
	"io"
)

/*
 * GOAWAY Message {
 *   New Session URI (string),
 * }
 */
type GoAwayMessage struct {
	// New session URI.
	// If empty, the client should reconnect to the current session URI.
	NewSessionURI string
}

func (ga GoAwayMessage) Len() int {
	return stringLen(ga.NewSessionURI)
}

func (ga GoAwayMessage) Encode(w io.Writer) error {
	p := make([]byte, 0, ga.Len())
	p = appendString(p, ga.NewSessionURI)

	b := make([]byte, 0, len(p)+8)
	b = appendBytes(b, p)

	_, err := w.Write(b)
	return err
}

func (ga *GoAwayMessage) Decode(r io.Reader) error {
	mr, err := newReader(r)
	if err != nil {
		return err
	}

	ga.NewSessionURI, err = readString(mr)
	if err != nil {
		return err
	}

	return checkExhausted(mr)
}
