package webtransportgo

import (
	"context"
	"net"

	"github.com/nanoqt/moqsession/quic"
	quicgo_webtransportgo "github.com/quic-go/webtransport-go"
)

// wrapSession adapts a webtransport-go session to quic.Connection.
func wrapSession(wtsess *quicgo_webtransportgo.Session) quic.Connection {
	return &sessionWrapper{sess: wtsess}
}

type sessionWrapper struct {
	sess *quicgo_webtransportgo.Session
}

func (c *sessionWrapper) Context() context.Context {
	return c.sess.Context()
}

func (c *sessionWrapper) LocalAddr() net.Addr {
	return c.sess.LocalAddr()
}

func (c *sessionWrapper) RemoteAddr() net.Addr {
	return c.sess.RemoteAddr()
}

func (c *sessionWrapper) ConnectionState() quic.ConnectionState {
	return c.sess.ConnectionState()
}

// ConnectionStats returns the zero value: webtransport-go does not expose
// per-connection statistics through *webtransportgo.Session.
func (c *sessionWrapper) ConnectionStats() quic.ConnectionStats {
	return quic.ConnectionStats{}
}

func (c *sessionWrapper) AcceptStream(ctx context.Context) (quic.Stream, error) {
	stream, err := c.sess.AcceptStream(ctx)
	return &streamWrapper{stream: stream}, err
}

func (c *sessionWrapper) AcceptUniStream(ctx context.Context) (quic.ReceiveStream, error) {
	stream, err := c.sess.AcceptUniStream(ctx)
	return &receiveStreamWrapper{stream: stream}, err
}

func (c *sessionWrapper) OpenStream() (quic.Stream, error) {
	stream, err := c.sess.OpenStream()
	return &streamWrapper{stream: stream}, err
}

func (c *sessionWrapper) OpenStreamSync(ctx context.Context) (quic.Stream, error) {
	stream, err := c.sess.OpenStreamSync(ctx)
	return &streamWrapper{stream: stream}, err
}

func (c *sessionWrapper) OpenUniStream() (quic.SendStream, error) {
	stream, err := c.sess.OpenUniStream()
	return &sendStreamWrapper{stream: stream}, err
}

func (c *sessionWrapper) OpenUniStreamSync(ctx context.Context) (quic.SendStream, error) {
	stream, err := c.sess.OpenUniStreamSync(ctx)
	return &sendStreamWrapper{stream: stream}, err
}

func (c *sessionWrapper) SendDatagram(b []byte) error {
	return c.sess.SendDatagram(b)
}

func (c *sessionWrapper) ReceiveDatagram(ctx context.Context) ([]byte, error) {
	return c.sess.ReceiveDatagram(ctx)
}

func (c *sessionWrapper) CloseWithError(code quic.ApplicationErrorCode, msg string) error {
	return c.sess.CloseWithError(quicgo_webtransportgo.SessionErrorCode(code), msg)
}
