package message

import (
	"errors"
	"io"
	"log/slog"

	"github.com/quic-go/quic-go/quicvarint"
)

type reader interface {
	quicvarint.Reader
}

// GroupOrder is the wire representation of a publisher's group delivery
// order; moqt.GroupOrder is cast to and from this type at the package
// boundary.
type GroupOrder byte

// FrameSequence identifies a single object within a fetched group.
type FrameSequence uint64

// ErrMessageTooShort is returned when a decoded message carries more bytes
// than its fields consumed.
var ErrMessageTooShort = errors.New("message: trailing bytes after decoding")

// checkExhausted returns ErrMessageTooShort if r still has unread bytes.
func checkExhausted(r reader) error {
	if _, err := r.ReadByte(); err != io.EOF {
		if err == nil {
			return ErrMessageTooShort
		}
		return err
	}
	return nil
}

func newReader(r io.Reader) (reader, error) {
	// Get a message reader
	num, err := quicvarint.Read(quicvarint.NewReader(r))
	if err != nil {
		slog.Error("failed to get a new message reader", slog.String("error", err.Error()))
		return nil, err
	}

	reader := io.LimitReader(r, int64(num))

	return quicvarint.NewReader(reader), nil
}

// appendNumber appends a varint-encoded number to p.
func appendNumber(p []byte, n uint64) []byte {
	return quicvarint.Append(p, n)
}

// appendBytes appends a length-prefixed byte slice to p.
func appendBytes(p []byte, b []byte) []byte {
	p = quicvarint.Append(p, uint64(len(b)))
	return append(p, b...)
}

// appendString appends a length-prefixed string to p.
func appendString(p []byte, s string) []byte {
	return appendBytes(p, []byte(s))
}

// appendStringArray appends a count-prefixed array of length-prefixed strings to p.
func appendStringArray(p []byte, arr []string) []byte {
	p = quicvarint.Append(p, uint64(len(arr)))
	for _, s := range arr {
		p = appendString(p, s)
	}
	return p
}

// readNumber reads a varint-encoded number from r.
func readNumber(r reader) (uint64, error) {
	return quicvarint.Read(r)
}

// readBytes reads a length-prefixed byte slice from r.
func readBytes(r reader) ([]byte, error) {
	n, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return []byte{}, nil
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// readString reads a length-prefixed string from r.
func readString(r reader) (string, error) {
	b, err := readBytes(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// readStringArray reads a count-prefixed array of length-prefixed strings from r.
func readStringArray(r reader) ([]string, error) {
	n, err := quicvarint.Read(r)
	if err != nil {
		return nil, err
	}
	arr := make([]string, n)
	for i := range arr {
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		arr[i] = s
	}
	return arr, nil
}
