package moqt

import (
	"context"
	"errors"
	"time"

	"github.com/nanoqt/moqsession/moqt/internal/message"
	"github.com/nanoqt/moqsession/quic"
)

var _ GroupReader = (*receiveGroupStream)(nil)

func newReceiveGroupStream(ctx context.Context, sequence GroupSequence, stream quic.ReceiveStream) *receiveGroupStream {
	return &receiveGroupStream{
		ctx:      ctx,
		sequence: sequence,
		stream:   stream,
	}
}

type receiveGroupStream struct {
	ctx      context.Context
	sequence GroupSequence
	stream   quic.ReceiveStream

	frameCount int64
}

func (s *receiveGroupStream) GroupSequence() GroupSequence {
	return s.sequence
}

func (s *receiveGroupStream) ReadFrame() (*Frame, error) {
	var fm message.FrameMessage
	err := fm.Decode(s.stream)
	if err != nil {
		var strErr *quic.StreamError
		if errors.As(err, &strErr) {
			return nil, &GroupError{StreamError: strErr}
		}
		return nil, err
	}

	s.frameCount++

	return &Frame{message: &fm}, nil
}

func (s *receiveGroupStream) CancelRead(code GroupErrorCode) {
	strErrCode := quic.StreamErrorCode(code)
	_ = s.stream.StreamID()
	s.stream.CancelRead(strErrCode)
}

func (s *receiveGroupStream) SetReadDeadline(t time.Time) error {
	return s.stream.SetReadDeadline(t)
}
