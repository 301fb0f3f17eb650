package moqt

import (
	"context"
	"sync"

	"github.com/nanoqt/moqsession/moqt/internal/message"
	"github.com/nanoqt/moqsession/moqt/moqtrace"
	"github.com/nanoqt/moqsession/quic"
)

func newSessionStream(sessCtx *sessionContext, stream quic.Stream, tracer *moqtrace.StreamTracer) *sessionStream {
	if tracer == nil {
		tracer = moqtrace.DefaultQUICStreamAccepted(stream.StreamID())
	}

	sessStr := &sessionStream{
		sessCtx:   sessCtx,
		updatedCh: make(chan struct{}, 1),
		stream:    stream,
		Path:      sessCtx.Path(),
		tracer:    tracer,
	}

	go sessStr.listenUpdates()

	return sessStr
}

// sessionStream wraps the bidirectional control stream established during
// the setup handshake. After setup completes it carries only
// SESSION_UPDATE messages for the lifetime of the session.
type sessionStream struct {
	sessCtx *sessionContext

	updatedCh chan struct{}

	localBitrate  uint64
	remoteBitrate uint64

	stream quic.Stream

	mu     sync.Mutex
	closed bool

	// Path is the URI path negotiated during setup.
	Path string

	tracer *moqtrace.StreamTracer
}

func (ss *sessionStream) listenUpdates() {
	var sum message.SessionUpdateMessage

	for {
		err := sum.Decode(ss.stream)
		if err != nil {
			break
		}

		ss.tracer.SessionUpdateMessageReceived(sum)

		ss.mu.Lock()
		ss.remoteBitrate = sum.Bitrate
		select {
		case ss.updatedCh <- struct{}{}:
		default:
		}
		ss.mu.Unlock()
	}

	ss.mu.Lock()
	if ss.updatedCh != nil {
		close(ss.updatedCh)
		ss.updatedCh = nil
	}
	ss.mu.Unlock()
}

func (ss *sessionStream) updateSession(bitrate uint64) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	sum := message.SessionUpdateMessage{Bitrate: bitrate}
	err := sum.Encode(ss.stream)
	if err != nil {
		return Cause(ss.sessCtx)
	}

	ss.tracer.SessionUpdateMessageSent(sum)

	ss.localBitrate = bitrate

	return nil
}

// SessionUpdated notifies of a new SESSION_UPDATE message from the peer.
func (ss *sessionStream) SessionUpdated() <-chan struct{} {
	return ss.updatedCh
}

func (ss *sessionStream) Context() context.Context {
	return ss.sessCtx
}

// close shuts down the control stream without reporting a protocol error.
func (ss *sessionStream) close() error {
	ss.mu.Lock()
	if ss.closed {
		ss.mu.Unlock()
		return ErrClosedSession
	}
	ss.closed = true
	ss.mu.Unlock()

	ss.sessCtx.cancel(ErrSessionClosed)

	return ss.stream.Close()
}

// closeWithError shuts down the control stream and cancels the session
// context with err as the cause, reporting err's terminate code on the
// stream. A nil err is reported as ErrInternalError.
func (ss *sessionStream) closeWithError(err error) error {
	ss.mu.Lock()
	if ss.closed {
		ss.mu.Unlock()
		return ErrClosedSession
	}
	ss.closed = true
	ss.mu.Unlock()

	if err == nil {
		err = ErrInternalError
	}

	code := quic.StreamErrorCode(InternalSessionErrorCode)
	if te, ok := err.(interface{ TerminateErrorCode() quic.StreamErrorCode }); ok {
		code = te.TerminateErrorCode()
	}

	ss.stream.CancelRead(code)
	ss.stream.CancelWrite(code)

	ss.sessCtx.cancel(err)

	return nil
}
