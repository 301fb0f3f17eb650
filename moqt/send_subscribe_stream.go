package moqt

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/nanoqt/moqsession/moqt/internal/message"
	"github.com/nanoqt/moqsession/quic"
)

// newSendSubscribeStream wraps the subscriber's side of a SUBSCRIBE
// exchange: it owns sending SUBSCRIBE_UPDATE messages and exposes a context
// that ends when the underlying stream does, so callers (TrackReader) can
// tear down group delivery without watching the transport directly.
func newSendSubscribeStream(id SubscribeID, stream quic.Stream, config *TrackConfig) *sendSubscribeStream {
	ctx, cancel := context.WithCancelCause(context.Background())

	sss := &sendSubscribeStream{
		id:     id,
		config: config,
		stream: stream,
		ctx:    ctx,
		cancel: cancel,
	}

	go sss.watchStreamClose()

	return sss
}

type sendSubscribeStream struct {
	id SubscribeID

	config *TrackConfig

	stream quic.Stream
	mu     sync.Mutex

	ctx    context.Context
	cancel context.CancelCauseFunc
}

func (sss *sendSubscribeStream) watchStreamClose() {
	<-sss.stream.Context().Done()
	sss.cancel(context.Cause(sss.stream.Context()))
}

func (sss *sendSubscribeStream) SubscribeID() SubscribeID {
	return sss.id
}

func (sss *sendSubscribeStream) TrackConfig() *TrackConfig {
	sss.mu.Lock()
	defer sss.mu.Unlock()

	return sss.config
}

// UpdateSubscribe narrows the subscription's priority/range and tells the
// publisher about it. The new range must be contained within the current
// one: SUBSCRIBE_UPDATE can only shrink a subscription, never widen it.
func (sss *sendSubscribeStream) UpdateSubscribe(newConfig *TrackConfig) error {
	if newConfig == nil {
		return errors.New("moqt: new track config cannot be nil")
	}

	sss.mu.Lock()
	defer sss.mu.Unlock()

	if err := context.Cause(sss.ctx); err != nil {
		return err
	}

	if err := validateNarrowing(sss.config, newConfig); err != nil {
		return err
	}

	sum := message.SubscribeUpdateMessage{
		TrackPriority:    message.TrackPriority(newConfig.TrackPriority),
		MinGroupSequence: message.GroupSequence(newConfig.MinGroupSequence),
		MaxGroupSequence: message.GroupSequence(newConfig.MaxGroupSequence),
	}
	if err := sum.Encode(sss.stream); err != nil {
		return fmt.Errorf("moqt: failed to send subscribe update: %w", sss.asSubscribeError(err))
	}

	sss.config = newConfig

	return nil
}

func validateNarrowing(old, next *TrackConfig) error {
	if next.MaxGroupSequence != 0 && next.MinGroupSequence > next.MaxGroupSequence {
		return ErrInvalidRange
	}
	if old.MinGroupSequence != 0 && (next.MinGroupSequence == 0 || old.MinGroupSequence > next.MinGroupSequence) {
		return ErrInvalidRange
	}
	if old.MaxGroupSequence != 0 && (next.MaxGroupSequence == 0 || old.MaxGroupSequence < next.MaxGroupSequence) {
		return ErrInvalidRange
	}
	return nil
}

func (sss *sendSubscribeStream) asSubscribeError(err error) error {
	var strErr *quic.StreamError
	if errors.As(err, &strErr) {
		return &SubscribeError{StreamError: strErr}
	}

	code := quic.StreamErrorCode(InternalSubscribeErrorCode)
	sss.stream.CancelWrite(code)
	return &SubscribeError{StreamError: &quic.StreamError{
		StreamID:  sss.stream.StreamID(),
		ErrorCode: code,
	}}
}

func (sss *sendSubscribeStream) Context() context.Context {
	return sss.ctx
}

func (sss *sendSubscribeStream) close() error {
	sss.mu.Lock()
	defer sss.mu.Unlock()

	err := sss.stream.Close()
	sss.stream.CancelRead(quic.StreamErrorCode(SubscribeCanceledErrorCode))
	sss.cancel(nil)

	return err
}

func (sss *sendSubscribeStream) closeWithError(code SubscribeErrorCode) error {
	sss.mu.Lock()
	defer sss.mu.Unlock()

	strErrCode := quic.StreamErrorCode(code)
	sss.stream.CancelWrite(strErrCode)
	sss.stream.CancelRead(strErrCode)
	sss.cancel(&SubscribeError{StreamError: &quic.StreamError{
		StreamID:  sss.stream.StreamID(),
		ErrorCode: strErrCode,
	}})

	return nil
}
