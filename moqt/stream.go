package moqt

import (
	"io"
	"time"
)

// SendStream is the write half of a bidirectional or unidirectional QUIC
// stream, abstracted over the underlying transport (native QUIC or
// WebTransport).
type SendStream interface {
	io.Writer
	io.Closer

	StreamID() StreamID
	CancelWrite(StreamErrorCode)

	SetWriteDeadline(time.Time) error
}

// ReceiveStream is the read half of a bidirectional or unidirectional QUIC
// stream.
type ReceiveStream interface {
	io.Reader

	StreamID() StreamID
	CancelRead(StreamErrorCode)

	SetReadDeadline(time.Time) error
}

// Stream is a bidirectional QUIC stream, used for the session's control
// stream and for SUBSCRIBE/FETCH request-response exchanges.
type Stream interface {
	SendStream
	ReceiveStream
	SetDeadline(time.Time) error
}

// StreamID identifies a stream within a session, assigned by the transport.
type StreamID int64

// StreamErrorCode is an application error code carried on stream resets,
// defined by the transport (QUIC or WebTransport).
type StreamErrorCode uint32

// SessionErrorCode is an application error code carried on session/
// connection closes.
type SessionErrorCode uint32
