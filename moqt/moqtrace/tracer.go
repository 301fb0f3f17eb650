package moqtrace

// DefaultTracer builds a SessionTracer wired to the package's default
// logging callbacks. Use it as a starting point when only a few hooks need
// overriding, rather than constructing a SessionTracer from scratch.
func DefaultTracer() *SessionTracer {
	return &SessionTracer{
		SessionEstablished: DefaultSessionEstablished,
		SessionTerminated:  DefaultSessionTerminated,
		QUICStreamOpened:   DefaultQUICStreamOpened,
		QUICStreamAccepted: DefaultQUICStreamAccepted,
	}
}
