package message

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/quic-go/quic-go/quicvarint"
)

type FetchUpdateMessage struct {
	TrackPriority TrackPriority
}

func (fum FetchUpdateMessage) Len() int {
	return numberLen(uint64(fum.TrackPriority))
}

func (fum FetchUpdateMessage) Encode(w io.Writer) (int, error) {
	slog.Debug("encoding a FETCH_UPDATE message")

	p := make([]byte, 0, fum.Len()+8)
	p = appendNumber(p, uint64(fum.Len()))
	p = appendNumber(p, uint64(fum.TrackPriority))

	slog.Debug("encoded a FETCH_UPDATE message")

	return w.Write(p)
}

func (fum *FetchUpdateMessage) Decode(r io.Reader) (int, error) {
	slog.Debug("decoding a FETCH_UPDATE message")

	buf, err := readBytes(quicvarint.NewReader(r))
	if err != nil {
		slog.Error("failed to read bytes for FETCH_UPDATE message", slog.String("error", err.Error()))
		return 0, err
	}
	n := len(buf)

	mr := quicvarint.NewReader(bytes.NewReader(buf))

	num, err := readNumber(mr)
	if err != nil {
		slog.Error("failed to read TrackPriority for FETCH_UPDATE message", slog.String("error", err.Error()))
		return n, err
	}
	fum.TrackPriority = TrackPriority(num)

	slog.Debug("decoded a FETCH_UPDATE message", slog.Int("bytes_read", n))

	return n, nil
}
