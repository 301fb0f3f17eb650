package webtransport

import (
	"context"
	"net/http"

	"github.com/nanoqt/moqsession/quic"
)

// Server upgrades incoming HTTP/3 requests to WebTransport sessions.
type Server interface {
	Upgrade(w http.ResponseWriter, r *http.Request) (quic.Connection, error)
	ServeQUICConn(conn quic.Connection) error
	Close() error
	Shutdown(context.Context) error
}
