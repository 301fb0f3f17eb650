package quicgo

import (
	"context"
	"crypto/tls"
	"net"

	"github.com/nanoqt/moqsession/quic"
	quicgo_quicgo "github.com/quic-go/quic-go"
)

var _ quic.ListenAddrFunc = ListenAddrEarly

// ListenAddrEarly starts a QUIC listener that accepts connections before the
// TLS handshake completes.
func ListenAddrEarly(addr string, tlsConfig *tls.Config, quicConfig *quic.Config) (quic.Listener, error) {
	ln, err := quicgo_quicgo.ListenAddrEarly(addr, tlsConfig, quicConfig)
	return wrapListener(ln), err
}

func wrapListener(ln *quicgo_quicgo.EarlyListener) quic.Listener {
	return &listenerWrapper{listener: ln}
}

var _ quic.Listener = (*listenerWrapper)(nil)

type listenerWrapper struct {
	listener *quicgo_quicgo.EarlyListener
}

func (l *listenerWrapper) Accept(ctx context.Context) (quic.Connection, error) {
	conn, err := l.listener.Accept(ctx)
	return wrapConnection(conn), err
}

func (l *listenerWrapper) Addr() net.Addr {
	return l.listener.Addr()
}

func (l *listenerWrapper) Close() error {
	return l.listener.Close()
}
