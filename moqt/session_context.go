package moqt

import (
	"context"
	"log/slog"

	"github.com/nanoqt/moqsession/moqt/internal/protocol"
	"github.com/nanoqt/moqsession/moqt/moqtrace"
)

func newSessionContext(parentCtx context.Context, version protocol.Version, path string, clientParams, serverParams *Parameters, logger *slog.Logger, tracer *moqtrace.SessionTracer) *sessionContext {
	ctx, cancel := context.WithCancelCause(parentCtx)

	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &sessionContext{
		Context:          ctx,
		cancel:           cancel,
		path:             path,
		version:          version,
		clientParameters: clientParams,
		serverParameters: serverParams,
		logger:           logger.With(slog.String("remote_address", "session")),
		tracer:           tracer,
	}
}

var _ context.Context = (*sessionContext)(nil)

type sessionContext struct {
	context.Context
	cancel context.CancelCauseFunc

	path string

	version protocol.Version

	clientParameters *Parameters
	serverParameters *Parameters

	logger *slog.Logger

	tracer *moqtrace.SessionTracer
}

func (sc *sessionContext) Logger() *slog.Logger {
	return sc.logger
}

func (sc *sessionContext) Path() string {
	return sc.path
}

func (sc *sessionContext) Version() protocol.Version {
	return sc.version
}

func (sc *sessionContext) ClientParameters() *Parameters {
	if sc.clientParameters == nil {
		return NewParameters()
	}
	return sc.clientParameters
}

func (sc *sessionContext) ServerParameters() *Parameters {
	if sc.serverParameters == nil {
		return NewParameters()
	}
	return sc.serverParameters
}

func (sc *sessionContext) Tracer() *moqtrace.SessionTracer {
	return sc.tracer
}
