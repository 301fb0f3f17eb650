package quicgo

// wrapError passes quic-go errors through unchanged. The quic package's
// error types are direct aliases of quic-go's, so no translation is needed.
func wrapError(err error) error {
	return err
}
