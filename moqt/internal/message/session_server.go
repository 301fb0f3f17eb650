package message

import (
	"io"
)

type SessionServerMessage struct {
	/*
	 * Versions selected by the server
	 */
	SelectedVersion uint64

	/*
	 * Setup Parameters
	 * Keys of the maps should not be duplicated
	 */
	Parameters Parameters
}

func (ssm SessionServerMessage) Len() int {
	var l int

	l += numberLen(ssm.SelectedVersion)
	l += parametersLen(ssm.Parameters)

	return l
}

func (ssm SessionServerMessage) Encode(w io.Writer) error {
	p := make([]byte, 0, ssm.Len())

	p = appendNumber(p, ssm.SelectedVersion)
	p = appendParameters(p, ssm.Parameters)

	b := make([]byte, 0, len(p)+8)
	b = appendBytes(b, p)

	_, err := w.Write(b)
	return err
}

func (ssm *SessionServerMessage) Decode(r io.Reader) error {
	mr, err := newReader(r)
	if err != nil {
		return err
	}

	num, err := readNumber(mr)
	if err != nil {
		return err
	}
	ssm.SelectedVersion = num

	ssm.Parameters, err = readParameters(mr)
	if err != nil {
		return err
	}

	return checkExhausted(mr)
}
