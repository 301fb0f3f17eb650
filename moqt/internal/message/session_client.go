package message

import (
	"io"

	"github.com/nanoqt/moqsession/moqt/internal/protocol"
)

/*
 * SESSION_CLIENT Message {
 *   Supported Versions {
 *     Count (varint),
 *     Versions (varint...),
 *   },
 *   Session Client Parameters (Parameters),
 * }
 */

type SessionClientMessage struct {
	SupportedVersions []protocol.Version
	Parameters        Parameters
}

func (scm SessionClientMessage) Len() int {
	length := numberLen(uint64(len(scm.SupportedVersions)))
	for _, version := range scm.SupportedVersions {
		length += numberLen(uint64(version))
	}
	length += parametersLen(scm.Parameters)
	return length
}

func (scm SessionClientMessage) Encode(w io.Writer) error {
	p := make([]byte, 0, scm.Len())

	p = appendNumber(p, uint64(len(scm.SupportedVersions)))
	for _, version := range scm.SupportedVersions {
		p = appendNumber(p, uint64(version))
	}

	p = appendParameters(p, scm.Parameters)

	b := make([]byte, 0, len(p)+8)
	b = appendBytes(b, p)

	_, err := w.Write(b)
	return err
}

func (scm *SessionClientMessage) Decode(r io.Reader) error {
	mr, err := newReader(r)
	if err != nil {
		return err
	}

	count, err := readNumber(mr)
	if err != nil {
		return err
	}

	scm.SupportedVersions = make([]protocol.Version, 0, count)
	for i := uint64(0); i < count; i++ {
		version, err := readNumber(mr)
		if err != nil {
			return err
		}
		scm.SupportedVersions = append(scm.SupportedVersions, protocol.Version(version))
	}

	scm.Parameters, err = readParameters(mr)
	if err != nil {
		return err
	}

	return nil
}
