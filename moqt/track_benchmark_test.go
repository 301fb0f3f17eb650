package moqt

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/nanoqt/moqsession/quic"
	"github.com/stretchr/testify/mock"
)

func benchSendSubscribeStream(b *testing.B) (*MockQUICStream, *sendSubscribeStream) {
	b.Helper()
	stream := &MockQUICStream{}
	stream.On("Context").Return(context.Background())
	stream.On("Close").Return(nil)
	stream.On("CancelRead", mock.Anything).Return()
	return stream, newSendSubscribeStream(SubscribeID(1), stream, &TrackConfig{})
}

func benchReceiveSubscribeStream(b *testing.B) *receiveSubscribeStream {
	b.Helper()
	stream := blockingStream()
	stream.On("Context").Return(context.Background())
	stream.On("StreamID").Return(quic.StreamID(1))
	stream.On("Close").Return(nil)
	stream.WriteFunc = func(p []byte) (int, error) { return len(p), nil }
	return newReceiveSubscribeStream(SubscribeID(1), stream, &TrackConfig{})
}

func benchOpenUniStream(streamIdx *int64, mu *sync.Mutex) func() (quic.SendStream, error) {
	return func() (quic.SendStream, error) {
		mu.Lock()
		defer mu.Unlock()

		send := &MockQUICSendStream{}
		send.On("Context").Return(context.Background())
		send.On("CancelWrite", mock.Anything).Return()
		send.On("StreamID").Return(quic.StreamID(*streamIdx))
		send.On("Close").Return(nil)
		send.WriteFunc = func(p []byte) (int, error) { return len(p), nil }
		*streamIdx++
		return send, nil
	}
}

func BenchmarkTrackReaderEnqueueAndDequeue(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("pending-%d", size), func(b *testing.B) {
			_, substr := benchSendSubscribeStream(b)
			reader := newTrackReader("/broadcast/path", "track", substr, func() {})

			streams := make([]quic.ReceiveStream, size)
			for i := range streams {
				recv := &MockQUICReceiveStream{}
				recv.On("CancelRead", mock.Anything).Return()
				streams[i] = recv
			}

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				idx := i % size
				reader.enqueueGroup(GroupSequence(idx+1), streams[idx])
				reader.dequeue()
			}
		})
	}
}

func BenchmarkTrackReaderAcceptGroup(b *testing.B) {
	_, substr := benchSendSubscribeStream(b)
	reader := newTrackReader("/broadcast/path", "track", substr, func() {})
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		recv := &MockQUICReceiveStream{}
		recv.On("CancelRead", mock.Anything).Return()
		reader.enqueueGroup(GroupSequence(i+1), recv)

		if _, err := reader.AcceptGroup(ctx); err != nil {
			b.Fatalf("AcceptGroup: %v", err)
		}
	}
}

func BenchmarkTrackReaderConcurrentEnqueueDequeue(b *testing.B) {
	for _, conc := range []int{2, 10, 50} {
		b.Run(fmt.Sprintf("goroutines-%d", conc), func(b *testing.B) {
			_, substr := benchSendSubscribeStream(b)
			reader := newTrackReader("/broadcast/path", "track", substr, func() {})

			for i := 0; i < 100; i++ {
				recv := &MockQUICReceiveStream{}
				recv.On("CancelRead", mock.Anything).Return()
				reader.enqueueGroup(GroupSequence(i+1), recv)
			}

			b.ReportAllocs()
			b.ResetTimer()

			var wg sync.WaitGroup
			wg.Add(conc)
			for g := 0; g < conc; g++ {
				go func(id int) {
					defer wg.Done()
					for i := 0; i < b.N/conc; i++ {
						if id%2 == 0 {
							recv := &MockQUICReceiveStream{}
							recv.On("CancelRead", mock.Anything).Return()
							reader.enqueueGroup(GroupSequence(id*100000+i+1), recv)
						} else {
							reader.dequeue()
						}
					}
				}(g)
			}
			wg.Wait()
		})
	}
}

func BenchmarkTrackWriterOpenGroup(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("groups-%d", size), func(b *testing.B) {
			substr := benchReceiveSubscribeStream(b)

			var streamIdx int64
			var mu sync.Mutex
			writer := newTrackWriter("/broadcast/path", "track", substr, benchOpenUniStream(&streamIdx, &mu), func() {})

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				group, err := writer.OpenGroup(GroupSequence(i%size + 1))
				if err == nil {
					_ = group.Close()
				}
			}

			b.StopTimer()
			_ = writer.Close()
		})
	}
}

func BenchmarkTrackWriterConcurrentOpenGroup(b *testing.B) {
	for _, conc := range []int{2, 10, 50} {
		b.Run(fmt.Sprintf("goroutines-%d", conc), func(b *testing.B) {
			substr := benchReceiveSubscribeStream(b)

			var streamIdx int64
			var mu sync.Mutex
			writer := newTrackWriter("/broadcast/path", "track", substr, benchOpenUniStream(&streamIdx, &mu), func() {})

			b.ReportAllocs()
			b.ResetTimer()

			var seq int64
			b.RunParallel(func(pb *testing.PB) {
				for pb.Next() {
					n := int(atomic.AddInt64(&seq, 1))
					group, err := writer.OpenGroup(GroupSequence(n))
					if err == nil {
						_ = group.Close()
					}
				}
			})

			b.StopTimer()
			_ = writer.Close()
		})
	}
}

func BenchmarkTrackWriterActiveGroupChurn(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("size-%d", size), func(b *testing.B) {
			substr := benchReceiveSubscribeStream(b)

			var streamIdx int64
			var mu sync.Mutex
			writer := newTrackWriter("/broadcast/path", "track", substr, benchOpenUniStream(&streamIdx, &mu), func() {})

			groups := make([]GroupWriter, size)
			for i := range groups {
				groups[i], _ = writer.OpenGroup(GroupSequence(i + 1))
			}

			b.ReportAllocs()
			b.ResetTimer()

			for i := 0; i < b.N; i++ {
				idx := i % size
				if groups[idx] != nil {
					_ = groups[idx].Close()
				}
				groups[idx], _ = writer.OpenGroup(GroupSequence(idx + 1))
			}

			b.StopTimer()
			_ = writer.Close()
		})
	}
}

func BenchmarkTrackWriterAllocation(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		substr := benchReceiveSubscribeStream(b)

		var streamIdx int64
		var mu sync.Mutex
		writer := newTrackWriter("/broadcast/path", "track", substr, benchOpenUniStream(&streamIdx, &mu), func() {})

		group, err := writer.OpenGroup(GroupSequence(1))
		if err == nil {
			_ = group.Close()
		}
		_ = writer.Close()
	}
}

func BenchmarkTrackReaderAllocation(b *testing.B) {
	b.ReportAllocs()

	for i := 0; i < b.N; i++ {
		_, substr := benchSendSubscribeStream(b)
		reader := newTrackReader("/broadcast/path", "track", substr, func() {})

		recv := &MockQUICReceiveStream{}
		recv.On("CancelRead", mock.Anything).Return()
		reader.enqueueGroup(GroupSequence(1), recv)
		reader.dequeue()

		_ = reader.Close()
	}
}

func BenchmarkTrackWriterCloseWithActiveGroups(b *testing.B) {
	for _, size := range []int{10, 100, 1000} {
		b.Run(fmt.Sprintf("groups-%d", size), func(b *testing.B) {
			b.ReportAllocs()

			for i := 0; i < b.N; i++ {
				substr := benchReceiveSubscribeStream(b)

				var streamIdx int64
				var mu sync.Mutex
				writer := newTrackWriter("/broadcast/path", "track", substr, benchOpenUniStream(&streamIdx, &mu), func() {})

				for j := 0; j < size; j++ {
					_, _ = writer.OpenGroup(GroupSequence(j + 1))
				}

				_ = writer.Close()
			}
		})
	}
}
