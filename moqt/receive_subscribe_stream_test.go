package moqt

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/nanoqt/moqsession/moqt/internal/message"
	"github.com/nanoqt/moqsession/quic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingStream never returns from Read, so listenUpdates/watchStreamClose
// stay parked and cannot race a test's own calls against rss's state.
func blockingStream() *MockQUICStream {
	return &MockQUICStream{
		ReadFunc: func(p []byte) (int, error) {
			select {}
		},
	}
}

func TestNewReceiveSubscribeStream(t *testing.T) {
	tests := map[string]struct {
		subscribeID SubscribeID
		config      *TrackConfig
	}{
		"valid creation": {
			subscribeID: SubscribeID(123),
			config: &TrackConfig{
				TrackPriority:    TrackPriority(1),
				MinGroupSequence: GroupSequence(0),
				MaxGroupSequence: GroupSequence(100),
			},
		},
		"zero subscribe ID": {
			subscribeID: SubscribeID(0),
			config: &TrackConfig{
				TrackPriority:    TrackPriority(0),
				MinGroupSequence: GroupSequence(0),
				MaxGroupSequence: GroupSequence(10),
			},
		},
		"large subscribe ID": {
			subscribeID: SubscribeID(4294967295),
			config: &TrackConfig{
				TrackPriority:    TrackPriority(255),
				MinGroupSequence: GroupSequence(1000),
				MaxGroupSequence: GroupSequence(2000),
			},
		},
		"nil config": {
			subscribeID: SubscribeID(1),
			config:      nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			rss := newReceiveSubscribeStream(tt.subscribeID, blockingStream(), tt.config)

			require.NotNil(t, rss)
			assert.Equal(t, tt.subscribeID, rss.SubscribeID())
			assert.Equal(t, tt.config, rss.TrackConfig())
			assert.NotNil(t, rss.Updated())
		})
	}
}

func TestReceiveSubscribeStream_SubscribeID(t *testing.T) {
	ids := []SubscribeID{0, 1, 1000, 1000000, SubscribeID(^uint64(0))}

	for _, id := range ids {
		rss := newReceiveSubscribeStream(id, blockingStream(), &TrackConfig{})
		assert.Equal(t, id, rss.SubscribeID())
	}
}

func TestReceiveSubscribeStream_TrackConfig(t *testing.T) {
	config := &TrackConfig{
		TrackPriority:    TrackPriority(10),
		MinGroupSequence: GroupSequence(5),
		MaxGroupSequence: GroupSequence(100),
	}

	rss := newReceiveSubscribeStream(SubscribeID(123), blockingStream(), config)

	assert.Same(t, config, rss.TrackConfig())
}

func TestReceiveSubscribeStream_WriteInfo(t *testing.T) {
	var buf bytes.Buffer
	stream := blockingStream()
	stream.WroteData = &buf

	rss := newReceiveSubscribeStream(SubscribeID(1), stream, &TrackConfig{})

	info := Info{TrackPriority: TrackPriority(3), GroupOrder: GroupOrderNewestFirst}
	require.NoError(t, rss.writeInfo(info))
	assert.NotZero(t, buf.Len(), "SUBSCRIBE_OK should have been written to the stream")

	// A second call is a no-op: it must not touch the stream again or error.
	written := buf.Len()
	require.NoError(t, rss.writeInfo(info))
	assert.Equal(t, written, buf.Len())
}

func TestReceiveSubscribeStream_WriteInfoAfterClose(t *testing.T) {
	stream := blockingStream()
	stream.On("Close").Return(nil)

	rss := newReceiveSubscribeStream(SubscribeID(1), stream, &TrackConfig{})
	require.NoError(t, rss.close())

	err := rss.writeInfo(Info{})
	assert.Error(t, err, "writeInfo must refuse once the stream has been closed")
}

func TestReceiveSubscribeStream_ListenUpdatesAppliesNewConfig(t *testing.T) {
	update := message.SubscribeUpdateMessage{
		TrackPriority:    message.TrackPriority(5),
		MinGroupSequence: message.GroupSequence(10),
		MaxGroupSequence: message.GroupSequence(50),
	}

	var encoded bytes.Buffer
	require.NoError(t, update.Encode(&encoded))

	data := encoded.Bytes()
	var pos int
	stream := &MockQUICStream{
		ReadFunc: func(p []byte) (int, error) {
			if pos >= len(data) {
				select {}
			}
			n := copy(p, data[pos:])
			pos += n
			return n, nil
		},
	}

	rss := newReceiveSubscribeStream(SubscribeID(1), stream, &TrackConfig{TrackPriority: TrackPriority(1)})

	select {
	case <-rss.Updated():
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for applyUpdate to signal Updated()")
	}

	got := rss.TrackConfig()
	require.NotNil(t, got)
	assert.Equal(t, TrackPriority(5), got.TrackPriority)
	assert.Equal(t, GroupSequence(10), got.MinGroupSequence)
	assert.Equal(t, GroupSequence(50), got.MaxGroupSequence)
}

func TestReceiveSubscribeStream_ListenUpdatesCancelsOnStreamError(t *testing.T) {
	streamErr := &quic.StreamError{
		StreamID:  quic.StreamID(123),
		ErrorCode: quic.StreamErrorCode(InternalSubscribeErrorCode),
	}

	stream := &MockQUICStream{
		ReadFunc: func(p []byte) (int, error) {
			return 0, streamErr
		},
	}

	rss := newReceiveSubscribeStream(SubscribeID(1), stream, &TrackConfig{})

	select {
	case <-rss.ctx.Done():
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for listenUpdates to cancel the subscription's context")
	}

	var subErr *SubscribeError
	require.True(t, errors.As(context.Cause(rss.ctx), &subErr))
	assert.Equal(t, streamErr.ErrorCode, subErr.StreamError.ErrorCode)
}

func TestReceiveSubscribeStream_Close(t *testing.T) {
	stream := blockingStream()
	stream.On("Close").Return(nil)

	rss := newReceiveSubscribeStream(SubscribeID(1), stream, &TrackConfig{})

	require.NoError(t, rss.close())

	_, open := <-rss.Updated()
	assert.False(t, open, "Updated() must be closed once close() runs")

	err := rss.close()
	assert.Error(t, err, "a second close() must report the subscription is already done")
}

func TestReceiveSubscribeStream_CloseWithError(t *testing.T) {
	tests := map[string]SubscribeErrorCode{
		"internal error":      InternalSubscribeErrorCode,
		"invalid range error": InvalidRangeErrorCode,
		"track not found":     TrackNotFoundErrorCode,
	}

	for name, code := range tests {
		t.Run(name, func(t *testing.T) {
			stream := blockingStream()
			stream.On("StreamID").Return(quic.StreamID(1))
			stream.On("CancelWrite", quic.StreamErrorCode(code)).Return()
			stream.On("CancelRead", quic.StreamErrorCode(code)).Return()

			rss := newReceiveSubscribeStream(SubscribeID(1), stream, &TrackConfig{})

			require.NoError(t, rss.closeWithError(code))

			_, open := <-rss.Updated()
			assert.False(t, open)

			stream.AssertExpectations(t)
		})
	}
}

func TestReceiveSubscribeStream_CloseWithErrorAfterClose(t *testing.T) {
	stream := blockingStream()
	stream.On("Close").Return(nil)

	rss := newReceiveSubscribeStream(SubscribeID(1), stream, &TrackConfig{})
	require.NoError(t, rss.close())

	err := rss.closeWithError(InternalSubscribeErrorCode)
	assert.Error(t, err, "closeWithError must report the subscription is already closed")
}

func TestReceiveSubscribeStream_ConcurrentReaders(t *testing.T) {
	config := &TrackConfig{TrackPriority: TrackPriority(1)}
	rss := newReceiveSubscribeStream(SubscribeID(123), blockingStream(), config)

	var wg sync.WaitGroup
	const readers = 10

	wg.Add(readers * 2)
	for i := 0; i < readers; i++ {
		go func() {
			defer wg.Done()
			assert.Equal(t, SubscribeID(123), rss.SubscribeID())
		}()
		go func() {
			defer wg.Done()
			assert.NotNil(t, rss.TrackConfig())
		}()
	}

	done := make(chan struct{})
	go func() {
		wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("concurrent access timed out")
	}
}
