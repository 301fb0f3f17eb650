package moqt

import (
	"context"
	"errors"
	"sync"

	"github.com/nanoqt/moqsession/quic"
)

// newTrackReader builds a TrackReader that pulls groups off subscribeStream
// as the publisher opens them, queuing them until AcceptGroup is called.
func newTrackReader(broadcastPath BroadcastPath, trackName TrackName, subscribeStream *sendSubscribeStream, onCloseTrackFunc func()) *TrackReader {
	return &TrackReader{
		BroadcastPath:       broadcastPath,
		TrackName:           trackName,
		sendSubscribeStream: subscribeStream,
		groupReady:          make(chan struct{}, 1),
		pending:             make([]*receiveGroupStream, 0, 1<<4),
		inFlight:            make(map[*receiveGroupStream]struct{}),
		onCloseTrackFunc:    onCloseTrackFunc,
	}
}

// TrackReader consumes the groups of one subscribed track, in whatever
// order the publisher opens their streams.
type TrackReader struct {
	BroadcastPath BroadcastPath
	TrackName     TrackName

	*sendSubscribeStream

	mu         sync.Mutex
	pending    []*receiveGroupStream
	groupReady chan struct{}
	inFlight   map[*receiveGroupStream]struct{}

	onCloseTrackFunc func()
}

// AcceptGroup blocks until a group is available, ctx is canceled, or the
// track closes.
func (r *TrackReader) AcceptGroup(ctx context.Context) (GroupReader, error) {
	for {
		if group := r.dequeue(); group != nil {
			return group, nil
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-r.ctx.Done():
			return nil, r.ctx.Err()
		case <-r.groupReady:
		}
	}
}

// dequeue pops the next pending group, if any, moving it to the in-flight
// set and arranging for its removal once the group stream's context ends.
func (r *TrackReader) dequeue() *receiveGroupStream {
	r.mu.Lock()
	defer r.mu.Unlock()

	for len(r.pending) > 0 {
		group := r.pending[0]
		r.pending = r.pending[1:]
		if group == nil {
			continue
		}

		r.inFlight[group] = struct{}{}
		go r.forgetWhenDone(group)
		return group
	}

	return nil
}

func (r *TrackReader) forgetWhenDone(group *receiveGroupStream) {
	<-group.ctx.Done()

	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.inFlight, group)
}

func (r *TrackReader) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelAllLocked()

	err := r.sendSubscribeStream.close()
	r.onCloseTrackFunc()
	r.resetLocked()

	return err
}

func (r *TrackReader) CloseWithError(code SubscribeErrorCode) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cancelAllLocked()
	r.onCloseTrackFunc()
	r.resetLocked()

	r.sendSubscribeStream.closeWithError(code)
}

func (r *TrackReader) cancelAllLocked() {
	for _, group := range r.pending {
		group.CancelRead(SubscribeCanceledErrorCode)
	}
	for group := range r.inFlight {
		group.CancelRead(SubscribeCanceledErrorCode)
	}
}

func (r *TrackReader) resetLocked() {
	r.pending = nil
	r.inFlight = nil
	r.groupReady = nil
}

func (r *TrackReader) Update(config *TrackConfig) error {
	if config == nil {
		return errors.New("moqt: track config cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	return r.sendSubscribeStream.UpdateSubscribe(config)
}

func (r *TrackReader) TrackConfig() *TrackConfig {
	return r.sendSubscribeStream.TrackConfig()
}

// enqueueGroup queues a newly opened group stream for AcceptGroup to pick
// up; a nil stream (e.g. a failed open) is ignored.
func (r *TrackReader) enqueueGroup(seq GroupSequence, stream quic.ReceiveStream) {
	if stream == nil {
		return
	}

	group := newReceiveGroupStream(r.ctx, seq, stream)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = append(r.pending, group)

	select {
	case r.groupReady <- struct{}{}:
	default:
	}
}
