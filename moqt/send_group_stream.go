package moqt

import (
	"errors"
	"sync"
	"time"

	"github.com/nanoqt/moqsession/quic"
)

var _ GroupWriter = (*sendGroupStream)(nil)

func newSendGroupStream(stream quic.SendStream, sequence GroupSequence) *sendGroupStream {
	return &sendGroupStream{
		sequence: sequence,
		stream:   stream,
		closedCh: make(chan struct{}),
	}
}

type sendGroupStream struct {
	sequence GroupSequence
	stream   quic.SendStream

	frameCount uint64

	closed   bool
	closeErr error
	closedCh chan struct{}
	mu       sync.Mutex
}

func (sgs *sendGroupStream) GroupSequence() GroupSequence {
	return sgs.sequence
}

func (sgs *sendGroupStream) WriteFrame(frame *Frame) error {
	sgs.mu.Lock()
	defer sgs.mu.Unlock()

	if sgs.closed {
		if sgs.closeErr != nil {
			return sgs.closeErr
		}
		return ErrClosedGroup
	}

	if frame == nil || frame.message == nil {
		return errors.New("moqt: frame is nil")
	}

	err := frame.message.Encode(sgs.stream)
	if err != nil {
		return err
	}

	sgs.frameCount++

	return nil
}

func (sgs *sendGroupStream) SetWriteDeadline(t time.Time) error {
	return sgs.stream.SetWriteDeadline(t)
}

func (sgs *sendGroupStream) CancelWrite(code GroupErrorCode) error {
	sgs.mu.Lock()
	defer sgs.mu.Unlock()

	if sgs.closed {
		return sgs.closeErr
	}

	sgs.stream.CancelWrite(quic.StreamErrorCode(code))

	sgs.closed = true
	sgs.closeErr = &GroupError{
		StreamError: &quic.StreamError{
			StreamID:  sgs.stream.StreamID(),
			ErrorCode: quic.StreamErrorCode(code),
		},
	}

	close(sgs.closedCh)

	return nil
}

func (sgs *sendGroupStream) Close() error {
	sgs.mu.Lock()
	defer sgs.mu.Unlock()

	if sgs.closed {
		return sgs.closeErr
	}

	sgs.closed = true
	close(sgs.closedCh)

	return sgs.stream.Close()
}
