package moqtrace

import (
	"log/slog"
	"reflect"

	"github.com/nanoqt/moqsession/moqt/internal/message"
	"github.com/nanoqt/moqsession/quic"
)

// StreamTracer hooks the messages and stream-lifecycle events of a single
// QUIC stream carrying MOQ control traffic.
type StreamTracer struct {
	SendStreamTracer
	ReceiveStreamTracer
}

type SendStreamTracer struct {
	SendStreamFinished func()
	SendStreamReset    func(quic.StreamErrorCode, string)
	SendStreamStopped  func(quic.StreamErrorCode, string)

	StreamTypeMessageSent func(message.StreamTypeMessage)

	SessionClientMessageSent func(message.SessionClientMessage)
	SessionServerMessageSent func(message.SessionServerMessage)
	SessionUpdateMessageSent func(message.SessionUpdateMessage)

	AnnouncePleaseMessageSent func(message.AnnouncePleaseMessage)
	AnnounceMessageSent       func(message.AnnounceMessage)

	SubscribeMessageSent       func(message.SubscribeMessage)
	SubscribeOkMessageSent     func(message.SubscribeOkMessage)
	SubscribeUpdateMessageSent func(message.SubscribeUpdateMessage)

	GroupMessageSent func(message.GroupMessage)

	FrameMessageSent func(frameCount, byteCount uint64)
}

type ReceiveStreamTracer struct {
	ReceiveStreamFinished func()
	ReceiveStreamStopped  func(quic.StreamErrorCode, string)
	ReceiveStreamReset    func(quic.StreamErrorCode, string)

	StreamTypeMessageReceived func(message.StreamTypeMessage)

	SessionClientMessageReceived func(message.SessionClientMessage)
	SessionServerMessageReceived func(message.SessionServerMessage)
	SessionUpdateMessageReceived func(message.SessionUpdateMessage)

	AnnouncePleaseMessageReceived func(message.AnnouncePleaseMessage)
	AnnounceMessageReceived       func(message.AnnounceMessage)

	SubscribeMessageReceived       func(message.SubscribeMessage)
	SubscribeOkMessageReceived     func(message.SubscribeOkMessage)
	SubscribeUpdateMessageReceived func(message.SubscribeUpdateMessage)

	GroupMessageReceived func(message.GroupMessage)

	FrameMessageReceived func(frameCount, byteCount uint64)
}

// orDefault returns hook if set, otherwise def. Used to fill in a
// StreamTracer's unset hooks with package defaults without an if-statement
// per field.
func orDefault[T any](hook, def T) T {
	if reflect.ValueOf(hook).IsZero() {
		return def
	}
	return hook
}

// InitStreamTracer fills every unset hook on tracer with its package
// default. tracer must not be nil.
func InitStreamTracer(tracer *StreamTracer) {
	if tracer == nil {
		panic("moqtrace: InitStreamTracer called with nil tracer")
	}

	tracer.SendStreamFinished = orDefault(tracer.SendStreamFinished, DefaultStreamFinished)
	tracer.SendStreamReset = orDefault(tracer.SendStreamReset, DefaultStreamReset)
	tracer.SendStreamStopped = orDefault(tracer.SendStreamStopped, DefaultStreamStopped)
	tracer.ReceiveStreamFinished = orDefault(tracer.ReceiveStreamFinished, DefaultStreamFinished)
	tracer.ReceiveStreamStopped = orDefault(tracer.ReceiveStreamStopped, DefaultStreamStopped)
	tracer.ReceiveStreamReset = orDefault(tracer.ReceiveStreamReset, DefaultStreamReset)

	tracer.StreamTypeMessageSent = orDefault(tracer.StreamTypeMessageSent, DefaultStreamTypeMessageSent)
	tracer.StreamTypeMessageReceived = orDefault(tracer.StreamTypeMessageReceived, DefaultStreamTypeMessageReceived)

	tracer.SessionClientMessageSent = orDefault(tracer.SessionClientMessageSent, DefaultSessionClientMessageSent)
	tracer.SessionClientMessageReceived = orDefault(tracer.SessionClientMessageReceived, DefaultSessionClientMessageReceived)
	tracer.SessionServerMessageSent = orDefault(tracer.SessionServerMessageSent, DefaultSessionServerMessageSent)
	tracer.SessionServerMessageReceived = orDefault(tracer.SessionServerMessageReceived, DefaultSessionServerMessageReceived)
	tracer.SessionUpdateMessageSent = orDefault(tracer.SessionUpdateMessageSent, DefaultSessionUpdateMessageSent)
	tracer.SessionUpdateMessageReceived = orDefault(tracer.SessionUpdateMessageReceived, DefaultSessionUpdateMessageReceived)

	tracer.AnnouncePleaseMessageSent = orDefault(tracer.AnnouncePleaseMessageSent, DefaultAnnouncePleaseMessageSent)
	tracer.AnnouncePleaseMessageReceived = orDefault(tracer.AnnouncePleaseMessageReceived, DefaultAnnouncePleaseMessageReceived)
	tracer.AnnounceMessageSent = orDefault(tracer.AnnounceMessageSent, DefaultAnnounceMessageSent)
	tracer.AnnounceMessageReceived = orDefault(tracer.AnnounceMessageReceived, DefaultAnnounceMessageReceived)

	tracer.SubscribeMessageSent = orDefault(tracer.SubscribeMessageSent, DefaultSubscribeMessageSent)
	tracer.SubscribeMessageReceived = orDefault(tracer.SubscribeMessageReceived, DefaultSubscribeMessageReceived)
	tracer.SubscribeOkMessageSent = orDefault(tracer.SubscribeOkMessageSent, DefaultSubscribeOkMessageSent)
	tracer.SubscribeOkMessageReceived = orDefault(tracer.SubscribeOkMessageReceived, DefaultSubscribeOkMessageReceived)
	tracer.SubscribeUpdateMessageSent = orDefault(tracer.SubscribeUpdateMessageSent, DefaultSubscribeUpdateMessageSent)
	tracer.SubscribeUpdateMessageReceived = orDefault(tracer.SubscribeUpdateMessageReceived, DefaultSubscribeUpdateMessageReceived)

	tracer.GroupMessageSent = orDefault(tracer.GroupMessageSent, DefaultGroupMessageSent)
	tracer.GroupMessageReceived = orDefault(tracer.GroupMessageReceived, DefaultGroupMessageReceived)

	tracer.FrameMessageSent = orDefault(tracer.FrameMessageSent, DefaultFrameMessageSent)
	tracer.FrameMessageReceived = orDefault(tracer.FrameMessageReceived, DefaultFrameMessageReceived)
}

// The Default* hooks below log at debug level rather than doing nothing,
// so a StreamTracer built without any overrides still produces a usable
// trace of control-stream traffic.

func DefaultStreamFinished() {
	slog.Debug("moqtrace: stream finished")
}

func DefaultStreamReset(code quic.StreamErrorCode, reason string) {
	slog.Debug("moqtrace: stream reset", "code", code, "reason", reason)
}

func DefaultStreamStopped(code quic.StreamErrorCode, reason string) {
	slog.Debug("moqtrace: stream stopped", "code", code, "reason", reason)
}

func DefaultStreamTypeMessageSent(msg message.StreamTypeMessage) {
	slog.Debug("moqtrace: sent STREAM_TYPE", "type", msg.StreamType)
}

func DefaultStreamTypeMessageReceived(msg message.StreamTypeMessage) {
	slog.Debug("moqtrace: received STREAM_TYPE", "type", msg.StreamType)
}

func DefaultSessionClientMessageSent(msg message.SessionClientMessage) {
	slog.Debug("moqtrace: sent SESSION_CLIENT")
}

func DefaultSessionClientMessageReceived(msg message.SessionClientMessage) {
	slog.Debug("moqtrace: received SESSION_CLIENT")
}

func DefaultSessionServerMessageSent(msg message.SessionServerMessage) {
	slog.Debug("moqtrace: sent SESSION_SERVER")
}

func DefaultSessionServerMessageReceived(msg message.SessionServerMessage) {
	slog.Debug("moqtrace: received SESSION_SERVER")
}

func DefaultSessionUpdateMessageSent(msg message.SessionUpdateMessage) {
	slog.Debug("moqtrace: sent SESSION_UPDATE")
}

func DefaultSessionUpdateMessageReceived(msg message.SessionUpdateMessage) {
	slog.Debug("moqtrace: received SESSION_UPDATE")
}

func DefaultAnnouncePleaseMessageSent(msg message.AnnouncePleaseMessage) {
	slog.Debug("moqtrace: sent ANNOUNCE_PLEASE", "prefix", msg.TrackPrefix)
}

func DefaultAnnouncePleaseMessageReceived(msg message.AnnouncePleaseMessage) {
	slog.Debug("moqtrace: received ANNOUNCE_PLEASE", "prefix", msg.TrackPrefix)
}

func DefaultAnnounceMessageSent(msg message.AnnounceMessage) {
	slog.Debug("moqtrace: sent ANNOUNCE")
}

func DefaultAnnounceMessageReceived(msg message.AnnounceMessage) {
	slog.Debug("moqtrace: received ANNOUNCE")
}

func DefaultSubscribeMessageSent(msg message.SubscribeMessage) {
	slog.Debug("moqtrace: sent SUBSCRIBE", "subscribeID", msg.SubscribeID)
}

func DefaultSubscribeMessageReceived(msg message.SubscribeMessage) {
	slog.Debug("moqtrace: received SUBSCRIBE", "subscribeID", msg.SubscribeID)
}

func DefaultSubscribeOkMessageSent(msg message.SubscribeOkMessage) {
	slog.Debug("moqtrace: sent SUBSCRIBE_OK")
}

func DefaultSubscribeOkMessageReceived(msg message.SubscribeOkMessage) {
	slog.Debug("moqtrace: received SUBSCRIBE_OK")
}

func DefaultSubscribeUpdateMessageSent(msg message.SubscribeUpdateMessage) {
	slog.Debug("moqtrace: sent SUBSCRIBE_UPDATE")
}

func DefaultSubscribeUpdateMessageReceived(msg message.SubscribeUpdateMessage) {
	slog.Debug("moqtrace: received SUBSCRIBE_UPDATE")
}

func DefaultGroupMessageSent(msg message.GroupMessage) {
	slog.Debug("moqtrace: sent GROUP", "sequence", msg.GroupSequence)
}

func DefaultGroupMessageReceived(msg message.GroupMessage) {
	slog.Debug("moqtrace: received GROUP", "sequence", msg.GroupSequence)
}

func DefaultFrameMessageSent(frameCount, byteCount uint64) {
	slog.Debug("moqtrace: sent FRAME", "frameCount", frameCount, "byteCount", byteCount)
}

func DefaultFrameMessageReceived(frameCount, byteCount uint64) {
	slog.Debug("moqtrace: received FRAME", "frameCount", frameCount, "byteCount", byteCount)
}
