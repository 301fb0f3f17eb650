package moqt

import (
	"context"
	"errors"
	"sync"

	"github.com/nanoqt/moqsession/moqt/internal/message"
	"github.com/nanoqt/moqsession/quic"
)

// newReceiveSubscribeStream wraps the publisher's side of a SUBSCRIBE
// exchange: it owns sending the SUBSCRIBE_OK/info reply and watches stream
// for SUBSCRIBE_UPDATE messages from the subscriber for as long as the
// subscription lives.
func newReceiveSubscribeStream(id SubscribeID, stream quic.Stream, config *TrackConfig) *receiveSubscribeStream {
	ctx, cancel := context.WithCancelCause(context.Background())

	rss := &receiveSubscribeStream{
		subscribeID: id,
		config:      config,
		stream:      stream,
		updatedCh:   make(chan struct{}, 1),
		ctx:         ctx,
		cancel:      cancel,
	}

	go rss.watchStreamClose()
	go rss.listenUpdates()

	return rss
}

type receiveSubscribeStream struct {
	subscribeID SubscribeID

	stream quic.Stream

	acceptOnce sync.Once

	configMu   sync.Mutex
	config     *TrackConfig
	updatedCh  chan struct{}
	listenOnce sync.Once

	ctx    context.Context
	cancel context.CancelCauseFunc
}

// watchStreamClose translates the underlying stream's close reason into a
// SubscribeError or SessionError and cancels rss's context with it.
func (rss *receiveSubscribeStream) watchStreamClose() {
	<-rss.stream.Context().Done()
	reason := context.Cause(rss.stream.Context())

	var strErr *quic.StreamError
	var appErr *quic.ApplicationError
	switch {
	case errors.As(reason, &strErr):
		reason = &SubscribeError{StreamError: strErr}
	case errors.As(reason, &appErr):
		reason = &SessionError{ApplicationError: appErr}
	}

	rss.cancel(reason)
}

func (rss *receiveSubscribeStream) SubscribeID() SubscribeID {
	return rss.subscribeID
}

// writeInfo sends the SUBSCRIBE_OK reply exactly once; later calls are
// no-ops that return nil, whatever the first call returned.
func (rss *receiveSubscribeStream) writeInfo(info Info) error {
	var err error
	rss.acceptOnce.Do(func() {
		rss.configMu.Lock()
		defer rss.configMu.Unlock()

		if cause := context.Cause(rss.ctx); cause != nil {
			err = cause
			return
		}

		sum := message.SubscribeOkMessage{GroupOrder: message.GroupOrder(info.GroupOrder)}
		if err = sum.Encode(rss.stream); err != nil {
			rss.closeWithError(InternalSubscribeErrorCode)
		}
	})

	return err
}

func (rss *receiveSubscribeStream) TrackConfig() *TrackConfig {
	rss.configMu.Lock()
	defer rss.configMu.Unlock()

	return rss.config
}

// Updated is signaled each time a SUBSCRIBE_UPDATE narrows the subscription.
func (rss *receiveSubscribeStream) Updated() <-chan struct{} {
	return rss.updatedCh
}

// listenUpdates decodes SUBSCRIBE_UPDATE messages off the stream until it
// errors or the subscription's context ends.
func (rss *receiveSubscribeStream) listenUpdates() {
	rss.listenOnce.Do(func() {
		for {
			if rss.ctx.Err() != nil {
				return
			}

			var sum message.SubscribeUpdateMessage
			if err := sum.Decode(rss.stream); err != nil {
				var strErr *quic.StreamError
				if errors.As(err, &strErr) {
					rss.cancel(&SubscribeError{StreamError: strErr})
				} else {
					rss.cancel(err)
				}
				return
			}

			rss.applyUpdate(sum)
		}
	})
}

func (rss *receiveSubscribeStream) applyUpdate(sum message.SubscribeUpdateMessage) {
	rss.configMu.Lock()
	defer rss.configMu.Unlock()

	rss.config = &TrackConfig{
		TrackPriority:    sum.TrackPriority,
		MinGroupSequence: sum.MinGroupSequence,
		MaxGroupSequence: sum.MaxGroupSequence,
	}

	select {
	case rss.updatedCh <- struct{}{}:
	default:
	}
}

func (rss *receiveSubscribeStream) close() error {
	rss.configMu.Lock()
	defer rss.configMu.Unlock()

	if cause := context.Cause(rss.ctx); cause != nil {
		return cause
	}

	err := rss.stream.Close()
	rss.stream.CancelRead(quic.StreamErrorCode(PublishAbortedErrorCode))

	rss.cancel(nil)
	close(rss.updatedCh)

	return err
}

func (rss *receiveSubscribeStream) closeWithError(code SubscribeErrorCode) error {
	rss.configMu.Lock()
	defer rss.configMu.Unlock()

	if cause := context.Cause(rss.ctx); cause != nil {
		return cause
	}

	strErrCode := quic.StreamErrorCode(code)
	rss.stream.CancelWrite(strErrCode)
	rss.stream.CancelRead(strErrCode)

	rss.cancel(&SubscribeError{
		StreamError: &quic.StreamError{
			StreamID:  rss.stream.StreamID(),
			ErrorCode: strErrCode,
		},
	})

	close(rss.updatedCh)

	return nil
}
