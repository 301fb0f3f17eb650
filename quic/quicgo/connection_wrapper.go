package quicgo

import (
	"context"
	"net"

	"github.com/nanoqt/moqsession/quic"
	quicgo_quicgo "github.com/quic-go/quic-go"
)

// wrapConnection adapts a quic-go connection to quic.Connection. A nil conn
// (e.g. from a failed Accept) maps to a nil interface rather than a
// non-nil interface wrapping a nil pointer.
func wrapConnection(conn *quicgo_quicgo.Conn) quic.Connection {
	if conn == nil {
		return nil
	}
	return &connWrapper{conn: conn}
}

var _ quic.Connection = (*connWrapper)(nil)

type connWrapper struct {
	conn *quicgo_quicgo.Conn
}

func (c *connWrapper) Context() context.Context {
	return c.conn.Context()
}

func (c *connWrapper) LocalAddr() net.Addr {
	return c.conn.LocalAddr()
}

func (c *connWrapper) RemoteAddr() net.Addr {
	return c.conn.RemoteAddr()
}

// ConnectionStats returns the zero value: quic-go does not expose
// per-connection statistics through *quic.Conn.
func (c *connWrapper) ConnectionStats() quic.ConnectionStats {
	return quic.ConnectionStats{}
}

func (c *connWrapper) ConnectionState() quic.ConnectionState {
	state := c.conn.ConnectionState()
	return quic.ConnectionState{
		TLS:               state.TLS,
		SupportsDatagrams: state.SupportsDatagrams,
		Used0RTT:          state.Used0RTT,
		Version:           state.Version,
		GSO:               state.GSO,
	}
}

func (c *connWrapper) AcceptStream(ctx context.Context) (quic.Stream, error) {
	stream, err := c.conn.AcceptStream(ctx)
	return &rawQuicStream{stream: stream}, wrapError(err)
}

func (c *connWrapper) AcceptUniStream(ctx context.Context) (quic.ReceiveStream, error) {
	stream, err := c.conn.AcceptUniStream(ctx)
	return &rawQuicReceiveStream{stream: stream}, wrapError(err)
}

func (c *connWrapper) OpenStream() (quic.Stream, error) {
	stream, err := c.conn.OpenStream()
	return &rawQuicStream{stream: stream}, wrapError(err)
}

func (c *connWrapper) OpenStreamSync(ctx context.Context) (quic.Stream, error) {
	stream, err := c.conn.OpenStreamSync(ctx)
	return &rawQuicStream{stream: stream}, wrapError(err)
}

func (c *connWrapper) OpenUniStream() (quic.SendStream, error) {
	stream, err := c.conn.OpenUniStream()
	return &rawQuicSendStream{stream: stream}, wrapError(err)
}

func (c *connWrapper) OpenUniStreamSync(ctx context.Context) (quic.SendStream, error) {
	stream, err := c.conn.OpenUniStreamSync(ctx)
	return &rawQuicSendStream{stream: stream}, wrapError(err)
}

func (c *connWrapper) SendDatagram(b []byte) error {
	return wrapError(c.conn.SendDatagram(b))
}

func (c *connWrapper) ReceiveDatagram(ctx context.Context) ([]byte, error) {
	b, err := c.conn.ReceiveDatagram(ctx)
	return b, wrapError(err)
}

func (c *connWrapper) CloseWithError(code quic.ApplicationErrorCode, msg string) error {
	return wrapError(c.conn.CloseWithError(quicgo_quicgo.ApplicationErrorCode(code), msg))
}

func (c connWrapper) Unwrap() *quicgo_quicgo.Conn {
	return c.conn
}
