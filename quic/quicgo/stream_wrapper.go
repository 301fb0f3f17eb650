package quicgo

import (
	"context"
	"time"

	"github.com/nanoqt/moqsession/quic"
	quicgo_quicgo "github.com/quic-go/quic-go"
)

// rawQuicStream adapts a quic-go bidirectional stream to quic.Stream.
var _ quic.Stream = (*rawQuicStream)(nil)

type rawQuicStream struct {
	stream *quicgo_quicgo.Stream
}

func (s rawQuicStream) StreamID() quic.StreamID {
	return quic.StreamID(s.stream.StreamID())
}

func (s rawQuicStream) Context() context.Context {
	return s.stream.Context()
}

func (s rawQuicStream) Close() error {
	return s.stream.Close()
}

func (s rawQuicStream) Read(b []byte) (int, error) {
	return s.stream.Read(b)
}

func (s rawQuicStream) Write(b []byte) (int, error) {
	return s.stream.Write(b)
}

func (s rawQuicStream) CancelRead(code quic.StreamErrorCode) {
	s.stream.CancelRead(quicgo_quicgo.StreamErrorCode(code))
}

func (s rawQuicStream) CancelWrite(code quic.StreamErrorCode) {
	s.stream.CancelWrite(quicgo_quicgo.StreamErrorCode(code))
}

func (s rawQuicStream) SetDeadline(t time.Time) error {
	return s.stream.SetDeadline(t)
}

func (s rawQuicStream) SetReadDeadline(t time.Time) error {
	return s.stream.SetReadDeadline(t)
}

func (s rawQuicStream) SetWriteDeadline(t time.Time) error {
	return s.stream.SetWriteDeadline(t)
}

// rawQuicReceiveStream adapts a quic-go unidirectional receive stream to
// quic.ReceiveStream.
var _ quic.ReceiveStream = (*rawQuicReceiveStream)(nil)

type rawQuicReceiveStream struct {
	stream *quicgo_quicgo.ReceiveStream
}

func (s rawQuicReceiveStream) StreamID() quic.StreamID {
	return quic.StreamID(s.stream.StreamID())
}

func (s rawQuicReceiveStream) Read(b []byte) (int, error) {
	return s.stream.Read(b)
}

func (s rawQuicReceiveStream) CancelRead(code quic.StreamErrorCode) {
	s.stream.CancelRead(quicgo_quicgo.StreamErrorCode(code))
}

func (s rawQuicReceiveStream) SetReadDeadline(t time.Time) error {
	return s.stream.SetReadDeadline(t)
}

// rawQuicSendStream adapts a quic-go unidirectional send stream to
// quic.SendStream.
var _ quic.SendStream = (*rawQuicSendStream)(nil)

type rawQuicSendStream struct {
	stream *quicgo_quicgo.SendStream
}

func (s rawQuicSendStream) StreamID() quic.StreamID {
	return quic.StreamID(s.stream.StreamID())
}

func (s rawQuicSendStream) Context() context.Context {
	return s.stream.Context()
}

func (s rawQuicSendStream) Close() error {
	return s.stream.Close()
}

func (s rawQuicSendStream) Write(b []byte) (int, error) {
	return s.stream.Write(b)
}

func (s rawQuicSendStream) CancelWrite(code quic.StreamErrorCode) {
	s.stream.CancelWrite(quicgo_quicgo.StreamErrorCode(code))
}

func (s rawQuicSendStream) SetWriteDeadline(t time.Time) error {
	return s.stream.SetWriteDeadline(t)
}
