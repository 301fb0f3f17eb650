package moqt

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/nanoqt/moqsession/moqt/internal/message"
	"github.com/nanoqt/moqsession/quic"
)

// newSession wraps an established connection with the session-core state
// machine: subscription bookkeeping, and the bidirectional/unidirectional
// stream accept loops that dispatch incoming requests to mux.
func newSession(sessCtx *sessionContext, sessStream *sessionStream, conn quic.Connection, mux *TrackMux, onClose func()) *Session {
	if mux == nil {
		mux = DefaultMux
	}

	logger := sessCtx.Logger().With(
		"session_id", generateSessionID(),
		"path", sessStream.Path,
	)

	sess := &Session{
		sessionStream: sessStream,
		ctx:           sessCtx,
		logger:        logger,
		conn:          conn,
		mux:           mux,
		trackReaders:  make(map[SubscribeID]*TrackReader),
		trackWriters:  make(map[SubscribeID]*TrackWriter),
		onClose:       onClose,
	}

	sessStreamCtx := sessStream.Context()
	context.AfterFunc(sessStreamCtx, func() {
		var appErr *quic.ApplicationError
		if errors.As(sessStreamCtx.Err(), &appErr) {
			return
		}

		logger.Warn("session stream closed unexpectedly", "reason", Cause(sessStreamCtx))
		sess.CloseWithError(ProtocolViolationErrorCode, "session stream closed unexpectedly")
	})

	sess.wg.Go(sess.handleBiStreams)
	sess.wg.Go(sess.handleUniStreams)

	return sess
}

// Session is one established, running MOQ connection: the negotiated
// control stream plus every subscription and announcement it has opened or
// accepted.
type Session struct {
	*sessionStream

	ctx context.Context
	wg  sync.WaitGroup

	logger *slog.Logger
	conn   quic.Connection
	mux    *TrackMux

	subscribeIDCounter atomic.Uint64

	trackReaders         map[SubscribeID]*TrackReader
	trackReaderMapLocker sync.RWMutex

	trackWriters         map[SubscribeID]*TrackWriter
	trackWriterMapLocker sync.RWMutex

	isTerminating atomic.Bool
	sessErr       error

	onClose func()
}

func (s *Session) terminating() bool {
	return s.isTerminating.Load()
}

func (s *Session) Context() context.Context {
	return s.ctx
}

// CloseWithError tears the session down, closing the underlying connection
// with code/msg as the CONNECTION_CLOSE reason. Calling it more than once
// is a no-op that returns the first call's result.
func (s *Session) CloseWithError(code SessionErrorCode, msg string) error {
	if s.terminating() {
		s.logger.Debug("termination already in progress")
		return s.sessErr
	}
	s.isTerminating.Store(true)

	s.logger.Info("terminating session", "code", code, "message", msg)

	if s.onClose != nil {
		s.onClose()
	}

	if err := s.conn.CloseWithError(quic.ApplicationErrorCode(code), msg); err != nil {
		var appErr *quic.ApplicationError
		if errors.As(err, &appErr) {
			s.sessErr = &SessionError{ApplicationError: appErr}
		} else {
			s.sessErr = err
		}
		s.logger.Error("session termination failed", "error", s.sessErr)
		return s.sessErr
	}

	s.wg.Wait()
	s.logger.Info("session terminated successfully")

	return nil
}

// Subscribe opens a SUBSCRIBE exchange for path/name and returns a
// TrackReader once the publisher has acknowledged it.
func (s *Session) Subscribe(path BroadcastPath, name TrackName, config *TrackConfig) (*TrackReader, error) {
	if s.terminating() {
		return nil, s.sessErr
	}
	if config == nil {
		config = &TrackConfig{}
	}

	id := s.nextSubscribeID()

	stream, err := s.conn.OpenStream()
	if err != nil {
		s.logger.Error("failed to open subscribe stream", "error", err)
		var appErr *quic.ApplicationError
		if errors.As(err, &appErr) {
			return nil, &SessionError{ApplicationError: appErr}
		}
		return nil, err
	}

	streamLogger := s.logger.With("stream_id", stream.StreamID())
	internalCode := quic.StreamErrorCode(InternalSubscribeErrorCode)

	if _, err := (message.StreamTypeMessage{StreamType: stream_type_subscribe}).Encode(stream); err != nil {
		streamLogger.Error("failed to write stream type", "error", err)
		return nil, &SubscribeError{StreamError: streamErrOrCancel(err, stream, internalCode)}
	}

	sm := message.SubscribeMessage{
		SubscribeID:      message.SubscribeID(id),
		BroadcastPath:    string(path),
		TrackName:        string(name),
		TrackPriority:    message.TrackPriority(config.TrackPriority),
		MinGroupSequence: message.GroupSequence(config.MinGroupSequence),
		MaxGroupSequence: message.GroupSequence(config.MaxGroupSequence),
	}
	if err := sm.Encode(stream); err != nil {
		streamLogger.Error("failed to write SUBSCRIBE", "error", err)
		return nil, &SubscribeError{StreamError: streamErrOrCancel(err, stream, internalCode)}
	}

	var subok message.SubscribeOkMessage
	if err := subok.Decode(stream); err != nil {
		streamLogger.Error("failed to read SUBSCRIBE_OK", "error", err)
		return nil, &SubscribeError{StreamError: streamErrOrCancel(err, stream, internalCode)}
	}

	substr := newSendSubscribeStream(id, stream, config)

	streamLogger.Debug("subscribe stream opened",
		"subscribe_id", id,
		"broadcast_path", path,
		"track_name", name,
		"subscribe_config", config,
	)

	reader := newTrackReader(path, name, substr, func() {
		s.removeTrackReader(id)
	})
	s.addTrackReader(id, reader)

	return reader, nil
}

func (s *Session) nextSubscribeID() SubscribeID {
	return SubscribeID(s.subscribeIDCounter.Add(1))
}

// AcceptAnnounce opens an ANNOUNCE_PLEASE exchange for prefix and returns an
// AnnouncementReader streaming matching announcements.
func (sess *Session) AcceptAnnounce(prefix string) (*AnnouncementReader, error) {
	if sess.terminating() {
		return nil, sess.sessErr
	}

	stream, err := sess.conn.OpenStream()
	if err != nil {
		sess.logger.Error("failed to open announce stream", "error", err)
		var appErr *quic.ApplicationError
		if errors.As(err, &appErr) {
			return nil, &SessionError{ApplicationError: appErr}
		}
		return nil, err
	}

	streamLogger := sess.logger.With("stream_id", stream.StreamID())
	internalCode := quic.StreamErrorCode(InternalAnnounceErrorCode)

	if _, err := (message.StreamTypeMessage{StreamType: stream_type_announce}).Encode(stream); err != nil {
		streamLogger.Error("failed to write stream type", "error", err)
		return nil, &AnnounceError{StreamError: streamErrOrCancel(err, stream, internalCode)}
	}

	if err := (message.AnnouncePleaseMessage{TrackPrefix: prefix}).Encode(stream); err != nil {
		streamLogger.Error("failed to write ANNOUNCE_PLEASE", "error", err)
		return nil, &AnnounceError{StreamError: streamErrOrCancel(err, stream, internalCode)}
	}

	var aim message.AnnounceInitMessage
	if err := aim.Decode(stream); err != nil {
		streamLogger.Error("failed to read ANNOUNCE_INIT", "error", err)
		return nil, &AnnounceError{StreamError: streamErrOrCancel(err, stream, internalCode)}
	}

	return newAnnouncementReader(stream, prefix, aim.Suffixes), nil
}

func (sess *Session) goAway(uri string) error {
	if sess.sessionStream == nil {
		return nil
	}
	return sess.updateSession(0)
}

// handleBiStreams accepts bidirectional streams for the life of the
// session, dispatching each to processBiStream in its own goroutine.
func (sess *Session) handleBiStreams() {
	for {
		stream, err := sess.conn.AcceptStream(sess.ctx)
		if err != nil {
			sess.logger.Error("failed to accept bidirectional stream", "error", err)
			return
		}

		go sess.processBiStream(stream, sess.logger.With("stream_id", stream.StreamID()))
	}
}

// processBiStream reads the stream's leading StreamTypeMessage and routes
// it to the ANNOUNCE or SUBSCRIBE handler; any other type is a protocol
// violation that tears the session down.
func (sess *Session) processBiStream(stream quic.Stream, streamLogger *slog.Logger) {
	var stm message.StreamTypeMessage
	if _, err := stm.Decode(stream); err != nil {
		streamLogger.Error("failed to decode stream type", "error", err)
		sess.CloseWithError(ProtocolViolationErrorCode, err.Error())
		return
	}

	switch stm.StreamType {
	case stream_type_announce:
		sess.acceptAnnounceStream(stream, streamLogger)
	case stream_type_subscribe:
		sess.acceptSubscribeStream(stream, streamLogger)
	default:
		streamLogger.Error("unknown bidirectional stream type", "stream_type", stm.StreamType)
		sess.CloseWithError(ProtocolViolationErrorCode, fmt.Sprintf("unknown bidirectional stream type: %v", stm.StreamType))
	}
}

func (sess *Session) acceptAnnounceStream(stream quic.Stream, streamLogger *slog.Logger) {
	var apm message.AnnouncePleaseMessage
	if err := apm.Decode(stream); err != nil {
		streamLogger.Error("failed to decode ANNOUNCE_PLEASE", "error", err)
		cancelStreamWithError(stream, quic.StreamErrorCode(InternalAnnounceErrorCode))
		return
	}

	annLogger := streamLogger.With("track_prefix", apm.TrackPrefix)
	annstr := newAnnouncementWriter(stream, apm.TrackPrefix)

	annLogger.Debug("accepted an announce stream")

	sess.mux.serveAnnouncements(annstr)
	annstr.Close()
}

func (sess *Session) acceptSubscribeStream(stream quic.Stream, streamLogger *slog.Logger) {
	var sm message.SubscribeMessage
	if err := sm.Decode(stream); err != nil {
		streamLogger.Error("failed to decode SUBSCRIBE", "error", err)
		cancelStreamWithError(stream, quic.StreamErrorCode(InternalSubscribeErrorCode))
		return
	}

	id := SubscribeID(sm.SubscribeID)
	config := &TrackConfig{
		TrackPriority:    TrackPriority(sm.TrackPriority),
		MinGroupSequence: GroupSequence(sm.MinGroupSequence),
		MaxGroupSequence: GroupSequence(sm.MaxGroupSequence),
	}

	subLogger := streamLogger.With(
		"subscribe_id", id,
		"broadcast_path", sm.BroadcastPath,
		"track_name", sm.TrackName,
		"config", config.String(),
	)
	subLogger.Debug("accepted a subscribe stream")

	substr := newReceiveSubscribeStream(id, stream, config)
	track := newTrackWriter(
		BroadcastPath(sm.BroadcastPath), TrackName(sm.TrackName),
		substr, sess.conn.OpenUniStream,
		func() { sess.removeTrackWriter(id) },
	)
	sess.addTrackWriter(id, track)

	sess.mux.serveTrack(track)
	track.Close()
}

// handleUniStreams accepts unidirectional streams for the life of the
// session; MOQ only uses these for group data.
func (sess *Session) handleUniStreams() {
	for {
		stream, err := sess.conn.AcceptUniStream(sess.ctx)
		if err != nil {
			sess.logger.Debug("unidirectional stream accept loop stopping", "error", err)
			return
		}

		go sess.processUniStream(stream, sess.logger.With("stream_id", stream.StreamID()))
	}
}

func (sess *Session) processUniStream(stream quic.ReceiveStream, streamLogger *slog.Logger) {
	var stm message.StreamTypeMessage
	if _, err := stm.Decode(stream); err != nil {
		streamLogger.Error("failed to decode stream type", "error", err)
		return
	}

	if stm.StreamType != stream_type_group {
		streamLogger.Error("unknown unidirectional stream type", "stream_type", stm.StreamType)
		sess.CloseWithError(ProtocolViolationErrorCode, fmt.Sprintf("unknown unidirectional stream type: %v", stm.StreamType))
		return
	}

	var gm message.GroupMessage
	if err := gm.Decode(stream); err != nil {
		streamLogger.Error("failed to decode GROUP", "error", err)
		return
	}

	groupLogger := streamLogger.With("subscribe_id", gm.SubscribeID, "group_sequence", gm.GroupSequence)

	sess.trackReaderMapLocker.RLock()
	track, ok := sess.trackReaders[SubscribeID(gm.SubscribeID)]
	sess.trackReaderMapLocker.RUnlock()
	if !ok {
		groupLogger.Warn("received group for unknown subscription")
		stream.CancelRead(quic.StreamErrorCode(InvalidSubscribeIDErrorCode))
		return
	}

	groupLogger.Debug("accepted group stream")
	track.enqueueGroup(GroupSequence(gm.GroupSequence), stream)
}

func (s *Session) addTrackWriter(id SubscribeID, writer *TrackWriter) {
	s.trackWriterMapLocker.Lock()
	defer s.trackWriterMapLocker.Unlock()
	s.trackWriters[id] = writer
}

func (s *Session) removeTrackWriter(id SubscribeID) {
	s.trackWriterMapLocker.Lock()
	defer s.trackWriterMapLocker.Unlock()
	delete(s.trackWriters, id)
}

func (s *Session) addTrackReader(id SubscribeID, reader *TrackReader) {
	s.trackReaderMapLocker.Lock()
	defer s.trackReaderMapLocker.Unlock()
	s.trackReaders[id] = reader
}

func (s *Session) removeTrackReader(id SubscribeID) {
	s.trackReaderMapLocker.Lock()
	defer s.trackReaderMapLocker.Unlock()
	delete(s.trackReaders, id)
}

func cancelStreamWithError(stream quic.Stream, code quic.StreamErrorCode) {
	stream.CancelRead(code)
	stream.CancelWrite(code)
}

// streamErrOrCancel extracts a *quic.StreamError already carried by err, or
// else cancels both directions of stream with fallback and synthesizes one.
// Centralizes the error-classification dance repeated by every
// request/response exchange on the control stream.
func streamErrOrCancel(err error, stream quic.Stream, fallback quic.StreamErrorCode) *quic.StreamError {
	var strErr *quic.StreamError
	if errors.As(err, &strErr) {
		if strErr.Remote {
			stream.CancelRead(strErr.ErrorCode)
		}
		return strErr
	}

	stream.CancelWrite(fallback)
	stream.CancelRead(fallback)
	return &quic.StreamError{StreamID: stream.StreamID(), ErrorCode: fallback}
}
