package message

import (
	"io"
)

/*
 *	ANNOUNCE_INIT Message {
 *	  Suffixes ([]string),
 *	}
 */
type AnnounceInitMessage struct {
	Suffixes []string
}

func (aim AnnounceInitMessage) Len() int {
	return stringArrayLen(aim.Suffixes)
}

func (aim AnnounceInitMessage) Encode(w io.Writer) error {
	p := make([]byte, 0, aim.Len())
	p = appendStringArray(p, aim.Suffixes)

	b := make([]byte, 0, len(p)+8)
	b = appendBytes(b, p)

	_, err := w.Write(b)
	return err
}

func (aim *AnnounceInitMessage) Decode(r io.Reader) error {
	mr, err := newReader(r)
	if err != nil {
		return err
	}

	aim.Suffixes, err = readStringArray(mr)
	if err != nil {
		return err
	}

	return checkExhausted(mr)
}
