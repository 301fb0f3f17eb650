package webtransportgo

import (
	"context"
	"time"

	"github.com/nanoqt/moqsession/quic"
	quicgo_webtransportgo "github.com/quic-go/webtransport-go"
)

// streamWrapper adapts a webtransport-go bidirectional stream to
// quic.Stream.
var _ quic.Stream = (*streamWrapper)(nil)

type streamWrapper struct {
	stream *quicgo_webtransportgo.Stream
}

func (s streamWrapper) StreamID() quic.StreamID {
	return quic.StreamID(s.stream.StreamID())
}

func (s streamWrapper) Context() context.Context {
	return s.stream.Context()
}

func (s streamWrapper) Close() error {
	return s.stream.Close()
}

func (s streamWrapper) Read(b []byte) (int, error) {
	return s.stream.Read(b)
}

func (s streamWrapper) Write(b []byte) (int, error) {
	return s.stream.Write(b)
}

func (s streamWrapper) CancelRead(code quic.StreamErrorCode) {
	s.stream.CancelRead(quicgo_webtransportgo.StreamErrorCode(code))
}

func (s streamWrapper) CancelWrite(code quic.StreamErrorCode) {
	s.stream.CancelWrite(quicgo_webtransportgo.StreamErrorCode(code))
}

func (s streamWrapper) SetDeadline(t time.Time) error {
	return s.stream.SetDeadline(t)
}

func (s streamWrapper) SetReadDeadline(t time.Time) error {
	return s.stream.SetReadDeadline(t)
}

func (s streamWrapper) SetWriteDeadline(t time.Time) error {
	return s.stream.SetWriteDeadline(t)
}

// receiveStreamWrapper adapts a webtransport-go unidirectional receive
// stream to quic.ReceiveStream.
var _ quic.ReceiveStream = (*receiveStreamWrapper)(nil)

type receiveStreamWrapper struct {
	stream *quicgo_webtransportgo.ReceiveStream
}

func (s receiveStreamWrapper) StreamID() quic.StreamID {
	return quic.StreamID(s.stream.StreamID())
}

func (s receiveStreamWrapper) Read(b []byte) (int, error) {
	return s.stream.Read(b)
}

func (s receiveStreamWrapper) CancelRead(code quic.StreamErrorCode) {
	s.stream.CancelRead(quicgo_webtransportgo.StreamErrorCode(code))
}

func (s receiveStreamWrapper) SetReadDeadline(t time.Time) error {
	return s.stream.SetReadDeadline(t)
}

// sendStreamWrapper adapts a webtransport-go unidirectional send stream to
// quic.SendStream.
var _ quic.SendStream = (*sendStreamWrapper)(nil)

type sendStreamWrapper struct {
	stream *quicgo_webtransportgo.SendStream
}

func (s sendStreamWrapper) StreamID() quic.StreamID {
	return quic.StreamID(s.stream.StreamID())
}

func (s sendStreamWrapper) Context() context.Context {
	return s.stream.Context()
}

func (s sendStreamWrapper) Close() error {
	return s.stream.Close()
}

func (s sendStreamWrapper) Write(b []byte) (int, error) {
	return s.stream.Write(b)
}

func (s sendStreamWrapper) CancelWrite(code quic.StreamErrorCode) {
	s.stream.CancelWrite(quicgo_webtransportgo.StreamErrorCode(code))
}

func (s sendStreamWrapper) SetWriteDeadline(t time.Time) error {
	return s.stream.SetWriteDeadline(t)
}
