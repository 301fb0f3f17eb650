package moqt

import (
	"context"
	"crypto/tls"
	"net/http"

	"github.com/nanoqt/moqsession/quic"
	"github.com/nanoqt/moqsession/quic/quicgo"
	"github.com/nanoqt/moqsession/webtransport"
	"github.com/nanoqt/moqsession/webtransport/webtransportgo"
)

var DialWebtransportFunc webtransport.DialAddrFunc = webtransportgo.Dial

var DialQUICFunc quic.DialAddrFunc = func(ctx context.Context, addr string, tlsConfig *tls.Config, quicConfig *quic.Config) (quic.Connection, error) {
	return quicgo.DialAddrEarly(ctx, addr, tlsConfig, quicConfig)
}
