package moqt

import (
	"errors"
	"sync"

	"github.com/nanoqt/moqsession/moqt/internal/message"
	"github.com/nanoqt/moqsession/quic"
)

func newTrackWriter(
	broadcastPath BroadcastPath, trackName TrackName,
	substr *receiveSubscribeStream,
	openUniStreamFunc func() (quic.SendStream, error),
	onCloseTrackFunc func(),
) *TrackWriter {
	return &TrackWriter{
		BroadcastPath:           broadcastPath,
		TrackName:               trackName,
		receiveSubscribeStream:  substr,
		activeGroups:            make(map[GroupSequence]func()),
		openUniStreamFunc:       openUniStreamFunc,
		onCloseTrackFunc:        onCloseTrackFunc,
	}
}

// TrackWriter is handed to a publisher's handler for a subscribed track. It
// accepts the subscription by writing track info on first use and opens one
// stream per group to deliver objects to the subscriber.
type TrackWriter struct {
	BroadcastPath BroadcastPath
	TrackName     TrackName

	*receiveSubscribeStream

	mu           sync.Mutex
	activeGroups map[GroupSequence]func()

	openUniStreamFunc func() (quic.SendStream, error)

	onCloseTrackFunc func()
}

// OpenGroup accepts the subscription (if not already accepted) and opens a
// new unidirectional stream to deliver the given group's objects.
func (tw *TrackWriter) OpenGroup(seq GroupSequence) (GroupWriter, error) {
	if seq == 0 {
		return nil, errors.New("moqt: group sequence must not be zero")
	}

	if err := tw.receiveSubscribeStream.ctx.Err(); err != nil {
		return nil, err
	}

	if err := tw.receiveSubscribeStream.writeInfo(Info{}); err != nil {
		return nil, err
	}

	stream, err := tw.openUniStreamFunc()
	if err != nil {
		return nil, err
	}

	_, err = (message.StreamTypeMessage{StreamType: stream_type_group}).Encode(stream)
	if err != nil {
		strErrCode := quic.StreamErrorCode(InternalGroupErrorCode)
		stream.CancelWrite(strErrCode)
		return nil, &GroupError{StreamError: &quic.StreamError{
			StreamID:  stream.StreamID(),
			ErrorCode: strErrCode,
		}}
	}

	config := tw.receiveSubscribeStream.TrackConfig()
	var priority TrackPriority
	if config != nil {
		priority = config.TrackPriority
	}

	gm := message.GroupMessage{
		SubscribeID:   message.SubscribeID(tw.receiveSubscribeStream.SubscribeID()),
		GroupSequence: message.GroupSequence(seq),
		TrackPriority: message.TrackPriority(priority),
	}
	if err := gm.Encode(stream); err != nil {
		strErrCode := quic.StreamErrorCode(InternalGroupErrorCode)
		stream.CancelWrite(strErrCode)
		return nil, &GroupError{StreamError: &quic.StreamError{
			StreamID:  stream.StreamID(),
			ErrorCode: strErrCode,
		}}
	}

	group := newSendGroupStream(stream, seq)

	tw.mu.Lock()
	if tw.activeGroups == nil {
		tw.activeGroups = make(map[GroupSequence]func())
	}
	tw.activeGroups[seq] = func() {
		group.CancelWrite(SubscribeCanceledErrorCode)
	}
	tw.mu.Unlock()

	return group, nil
}

// Close cancels any in-flight groups and closes the underlying subscribe
// stream. It does not send SUBSCRIBE_OK if no group was opened before.
func (tw *TrackWriter) Close() error {
	tw.mu.Lock()
	for _, cancel := range tw.activeGroups {
		cancel()
	}
	tw.activeGroups = nil
	tw.mu.Unlock()

	if tw.onCloseTrackFunc != nil {
		tw.onCloseTrackFunc()
	}

	return tw.receiveSubscribeStream.close()
}

// CloseWithError cancels any in-flight groups and closes the underlying
// subscribe stream with the given error code.
func (tw *TrackWriter) CloseWithError(code SubscribeErrorCode) error {
	tw.mu.Lock()
	for _, cancel := range tw.activeGroups {
		cancel()
	}
	tw.activeGroups = nil
	tw.mu.Unlock()

	if tw.onCloseTrackFunc != nil {
		tw.onCloseTrackFunc()
	}

	return tw.receiveSubscribeStream.closeWithError(code)
}
