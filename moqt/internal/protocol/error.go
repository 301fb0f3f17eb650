package protocol

// ErrorCode is the wire representation of an application-level error
// reported over a QUIC stream or connection close.
type ErrorCode uint64

// TerminateErrorCode closes a session; AnnounceErrorCode, SubscribeErrorCode,
// InfoErrorCode and GroupErrorCode cancel the stream carrying the matching
// request. Each is a distinct type so a handler can't accidentally pass an
// error code meant for one request kind to another.
type (
	TerminateErrorCode ErrorCode
	AnnounceErrorCode  ErrorCode
	SubscribeErrorCode ErrorCode
	InfoErrorCode      ErrorCode
	GroupErrorCode     ErrorCode
)
