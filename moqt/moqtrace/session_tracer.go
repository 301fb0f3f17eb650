package moqtrace

import (
	"log/slog"
	"net"

	"github.com/nanoqt/moqsession/moqt/internal/protocol"
	"github.com/nanoqt/moqsession/quic"
)

// SessionTracer hooks the lifecycle of a session and the streams opened
// within it.
type SessionTracer struct {
	SessionEstablished func(local, remote net.Addr, alpn string, version protocol.Version, extension map[uint64][]byte)
	SessionTerminated  func(reason error)

	QUICStreamOpened   func(quic.StreamID) *StreamTracer
	QUICStreamAccepted func(quic.StreamID) *StreamTracer
}

// InitSessionTracer fills every unset hook on tracer with its package
// default. tracer must not be nil.
func InitSessionTracer(tracer *SessionTracer) {
	if tracer == nil {
		panic("moqtrace: InitSessionTracer called with nil tracer")
	}

	tracer.SessionEstablished = orDefault(tracer.SessionEstablished, DefaultSessionEstablished)
	tracer.SessionTerminated = orDefault(tracer.SessionTerminated, DefaultSessionTerminated)
	tracer.QUICStreamOpened = orDefault(tracer.QUICStreamOpened, DefaultQUICStreamOpened)
	tracer.QUICStreamAccepted = orDefault(tracer.QUICStreamAccepted, DefaultQUICStreamAccepted)
}

func DefaultSessionEstablished(local, remote net.Addr, alpn string, version protocol.Version, extension map[uint64][]byte) {
	slog.Debug("moqtrace: session established", "local", local, "remote", remote, "alpn", alpn, "version", version)
}

func DefaultSessionTerminated(reason error) {
	slog.Debug("moqtrace: session terminated", "reason", reason)
}

func defaultStreamTracer() *StreamTracer {
	tracer := &StreamTracer{}
	InitStreamTracer(tracer)
	return tracer
}

func DefaultQUICStreamOpened(streamID quic.StreamID) *StreamTracer {
	return defaultStreamTracer()
}

func DefaultQUICStreamAccepted(streamID quic.StreamID) *StreamTracer {
	return defaultStreamTracer()
}
