package message

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/quic-go/quic-go/quicvarint"
)

type InfoRequestMessage struct {
	/*
	 * Track name
	 */
	TrackPath string
}

func (irm InfoRequestMessage) Len() int {
	return stringLen(irm.TrackPath)
}

func (irm InfoRequestMessage) Encode(w io.Writer) (int, error) {
	p := make([]byte, 0, irm.Len()+8)
	p = appendString(p, irm.TrackPath)

	b := make([]byte, 0, len(p)+8)
	b = appendBytes(b, p)

	n, err := w.Write(b)
	if err != nil {
		slog.Error("failed to write INFO_REQUEST message", "error", err)
		return n, err
	}

	slog.Debug("encoded an INFO_REQUEST message")

	return n, nil
}

func (irm *InfoRequestMessage) Decode(r io.Reader) (int, error) {
	buf, err := readBytes(quicvarint.NewReader(r))
	if err != nil {
		slog.Error("failed to read payload for INFO_REQUEST message", "error", err)
		return 0, err
	}
	n := quicvarint.Len(uint64(len(buf))) + len(buf)

	mr := quicvarint.NewReader(bytes.NewReader(buf))

	irm.TrackPath, err = readString(mr)
	if err != nil {
		return n, err
	}

	slog.Debug("decoded an INFO_REQUEST message")

	return n, nil
}
