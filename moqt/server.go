package moqt

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nanoqt/moqsession/moqt/internal/message"
	"github.com/nanoqt/moqsession/moqt/internal/protocol"
	"github.com/nanoqt/moqsession/moqt/moqtrace"
	"github.com/nanoqt/moqsession/quic"
	"github.com/nanoqt/moqsession/webtransport"
	"github.com/quic-go/quic-go/http3"
)

const NextProtoMOQ = "moq-00"

// Server accepts incoming MOQ sessions over raw QUIC and over WebTransport.
// Its zero value is usable; fields must not be changed once any Accept/Serve
// method has been called.
type Server struct {
	Addr string

	TLSConfig  *tls.Config
	QUICConfig *quic.Config
	Config     *Config

	Logger *slog.Logger

	// WebtransportServer upgrades HTTP/3 connections to WebTransport
	// sessions. A default implementation is created lazily if left nil.
	WebtransportServer webtransport.Server

	mu         sync.RWMutex
	listeners  map[quic.EarlyListener]struct{}
	listenerWg sync.WaitGroup
	activeSess map[*Session]struct{}

	initOnce   sync.Once
	inShutdown atomic.Bool

	nativeQUICCh chan quic.Connection
	doneChan     chan struct{}
}

func (s *Server) init() {
	s.initOnce.Do(func() {
		s.listeners = make(map[quic.EarlyListener]struct{})
		s.activeSess = make(map[*Session]struct{})
		s.doneChan = make(chan struct{})
		s.nativeQUICCh = make(chan quic.Connection, 1<<4)

		if s.WebtransportServer == nil {
			s.WebtransportServer = webtransport.NewDefaultServer(s.Addr)
		}

		if s.Logger != nil {
			s.Logger = s.Logger.With("address", s.Addr)
			s.Logger.Debug("initialized server")
		}
	})
}

// ServeQUICListener accepts raw QUIC connections from ln until the server
// shuts down, dispatching each to ServeQUICConn in its own goroutine.
func (s *Server) ServeQUICListener(ln quic.EarlyListener) error {
	if s.shuttingDown() {
		return ErrServerClosed
	}
	s.init()

	s.addListener(ln)
	defer s.removeListener(ln)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	for {
		if s.shuttingDown() {
			return ErrServerClosed
		}

		conn, err := ln.Accept(ctx)
		if err != nil {
			s.logError("failed to accept QUIC connection", err)
			return err
		}

		connLogger := s.logger().With("remote_address", conn.RemoteAddr())
		connLogger.Debug("accepted a new QUIC connection")

		go func(conn quic.Connection) {
			if err := s.ServeQUICConn(conn); err != nil {
				connLogger.Debug("connection handling stopped", "error", err)
			}
		}(conn)
	}
}

// ServeQUICConn routes an already-accepted connection to the WebTransport or
// native-MOQ path based on its negotiated ALPN protocol.
func (s *Server) ServeQUICConn(conn quic.Connection) error {
	if s.shuttingDown() {
		return ErrServerClosed
	}
	s.init()

	connLogger := s.logger().With("remote_address", conn.RemoteAddr())
	proto := conn.ConnectionState().TLS.NegotiatedProtocol

	switch proto {
	case http3.NextProtoH3:
		connLogger.Debug("handing connection to WebTransport server")
		return s.WebtransportServer.ServeQUICConn(conn)

	case NextProtoMOQ:
		select {
		case s.nativeQUICCh <- conn:
		default:
			conn.CloseWithError(quic.ApplicationErrorCode(quic.ConnectionRefused), "")
		}
		return nil

	default:
		connLogger.Error("unsupported negotiated protocol", "protocol", proto)
		return fmt.Errorf("moqt: unsupported negotiated protocol: %s", proto)
	}
}

// AcceptQUIC blocks until a native-MOQ connection queued by ServeQUICConn is
// ready, then completes the session-setup handshake on it.
func (s *Server) AcceptQUIC(ctx context.Context, mux *TrackMux) (*Session, error) {
	if s.shuttingDown() {
		return nil, ErrServerClosed
	}

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case conn := <-s.nativeQUICCh:
		var path string
		negotiate := func(clientParams *Parameters) (*Parameters, error) {
			var err error
			path, err = clientParams.GetString(paramTypePath)
			if err != nil {
				s.logError("client did not provide a path parameter", err)
				return nil, err
			}
			return s.negotiateSetupExtensions(clientParams)
		}

		acceptCtx, cancel := context.WithTimeout(ctx, s.acceptTimeout())
		defer cancel()
		return s.acceptSession(acceptCtx, path, conn, negotiate, mux)
	}
}

// AcceptWebTransport upgrades an HTTP/3 request to a WebTransport session
// and completes the session-setup handshake on it.
func (s *Server) AcceptWebTransport(w http.ResponseWriter, r *http.Request, mux *TrackMux) (*Session, error) {
	if s.shuttingDown() {
		return nil, ErrServerClosed
	}
	s.init()

	reqLogger := s.logger().With("remote_address", r.RemoteAddr)
	reqLogger.Debug("accepting webtransport session")

	conn, err := s.WebtransportServer.Upgrade(w, r)
	if err != nil {
		reqLogger.Error("failed to upgrade request to webtransport", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return nil, err
	}

	negotiate := func(clientParams *Parameters) (*Parameters, error) {
		params, err := s.negotiateSetupExtensions(clientParams)
		if err != nil {
			return nil, err
		}
		return params.Clone(), nil
	}

	acceptCtx, cancel := context.WithTimeout(r.Context(), s.acceptTimeout())
	defer cancel()
	return s.acceptSession(acceptCtx, r.URL.Path, conn, negotiate, mux)
}

// negotiateSetupExtensions runs the configured ServerSetupExtensions hook,
// falling back to an empty parameter set when none is configured or it
// returns nil.
func (s *Server) negotiateSetupExtensions(clientParams *Parameters) (*Parameters, error) {
	if s.Config == nil || s.Config.ServerSetupExtensions == nil {
		return NewParameters(), nil
	}

	params, err := s.Config.ServerSetupExtensions(clientParams)
	if err != nil {
		s.logError("setup extensions hook failed", err)
		return nil, err
	}
	if params == nil {
		return NewParameters(), nil
	}
	return params, nil
}

// acceptSession runs the SESSION_CLIENT/SESSION_SERVER handshake over the
// connection's control stream and wires up the resulting Session.
func (s *Server) acceptSession(acceptCtx context.Context, path string, conn quic.Connection, negotiate func(*Parameters) (*Parameters, error), mux *TrackMux) (*Session, error) {
	sessTracer := &moqtrace.SessionTracer{}
	moqtrace.InitSessionTracer(sessTracer)

	stream, err := conn.AcceptStream(acceptCtx)
	if err != nil {
		s.logError("failed to accept session stream", err)
		return nil, fmt.Errorf("moqt: failed to accept session stream: %w", err)
	}
	streamTracer := sessTracer.QUICStreamAccepted(stream.StreamID())

	var stm message.StreamTypeMessage
	if _, err := stm.Decode(stream); err != nil {
		s.logError("failed to decode STREAM_TYPE", err)
	}
	streamTracer.StreamTypeMessageReceived(stm)

	var scm message.SessionClientMessage
	if err := scm.Decode(stream); err != nil {
		s.logError("failed to decode SESSION_CLIENT", err)
		code := ErrInternalError.TerminateErrorCode()
		stream.CancelRead(code)
		stream.CancelWrite(code)
		return nil, fmt.Errorf("moqt: failed to decode SESSION_CLIENT: %w", err)
	}
	streamTracer.SessionClientMessageReceived(scm)

	clientParams := &Parameters{scm.Parameters}
	serverParams, err := negotiate(clientParams.Clone())
	if err != nil {
		return nil, err
	}

	version := protocol.Version(DefaultServerVersion)
	ssm := message.SessionServerMessage{
		SelectedVersion: uint64(version),
		Parameters:      serverParams.values,
	}
	if err := ssm.Encode(stream); err != nil {
		s.logError("failed to encode SESSION_SERVER", err)
		return nil, err
	}
	streamTracer.SessionServerMessageSent(ssm)

	sessCtx := newSessionContext(conn.Context(), version, path, clientParams, serverParams, s.Logger, sessTracer)
	sessStream := newSessionStream(sessCtx, stream, streamTracer)

	var sess *Session
	sess = newSession(sessCtx, sessStream, conn, mux, func() { s.removeSession(sess) })
	s.addSession(sess)

	return sess, nil
}

// ListenAndServe opens a QUIC listener on s.Addr using s.TLSConfig and
// serves it until the server shuts down.
func (s *Server) ListenAndServe() error {
	s.init()

	if s.TLSConfig == nil {
		return errors.New("moqt: TLS configuration is required")
	}

	tlsConfig := s.TLSConfig.Clone()
	if len(tlsConfig.NextProtos) == 0 {
		tlsConfig.NextProtos = []string{NextProtoMOQ}
	}

	if quic.ListenQUICFunc == nil {
		panic("moqt: quic.ListenQUICFunc is nil")
	}

	ln, err := quic.ListenQUICFunc(s.Addr, tlsConfig, s.QUICConfig)
	if err != nil {
		s.logError("failed to start QUIC listener", err)
		return err
	}

	return s.ServeQUICListener(ln)
}

// ListenAndServeTLS is ListenAndServe with a TLS config built from the given
// certificate/key pair, advertising both moq-00 and h3 ALPN tokens.
func (s *Server) ListenAndServeTLS(certFile, keyFile string) error {
	s.init()

	cert, err := tls.LoadX509KeyPair(certFile, keyFile)
	if err != nil {
		s.logError("failed to load TLS key pair", err)
		return err
	}

	tlsConfig := &tls.Config{
		Certificates: []tls.Certificate{cert},
		NextProtos:   []string{NextProtoMOQ, http3.NextProtoH3},
	}
	s.TLSConfig = tlsConfig.Clone()

	ln, err := quic.ListenQUICFunc(s.Addr, tlsConfig, s.QUICConfig)
	if err != nil {
		s.logError("failed to start QUIC listener", err)
		return err
	}

	return s.ServeQUICListener(ln)
}

// Close closes all listeners and every active session immediately, then
// blocks until they have finished tearing down.
func (s *Server) Close() error {
	if s.inShutdown.Swap(true) {
		return ErrServerClosed
	}
	s.mu.Lock()
	for ln := range s.listeners {
		ln.Close()
	}
	sessions := make([]*Session, 0, len(s.activeSess))
	for sess := range s.activeSess {
		sessions = append(sessions, sess)
	}
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.CloseWithError(NoError, "server closed")
	}

	return nil
}

// Shutdown sends GOAWAY to every active session and waits for them to close
// gracefully, forcing closed anything still open once ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.inShutdown.Store(true)

	s.mu.Lock()
	for ln := range s.listeners {
		ln.Close()
	}
	s.mu.Unlock()

	s.listenerWg.Wait()

	s.mu.Lock()
	for sess := range s.activeSess {
		s.goAway(sess)
	}
	remaining := len(s.activeSess)
	s.mu.Unlock()

	if remaining == 0 {
		return nil
	}

	select {
	case <-s.doneChan:
		return nil
	case <-ctx.Done():
		s.mu.Lock()
		for sess := range s.activeSess {
			go sess.CloseWithError(GoAwayTimeoutErrorCode, "goaway timeout")
			delete(s.activeSess, sess)
		}
		s.mu.Unlock()
		return ctx.Err()
	}
}

func (s *Server) addListener(ln quic.EarlyListener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listeners[ln] = struct{}{}
	s.listenerWg.Add(1)
}

func (s *Server) removeListener(ln quic.EarlyListener) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.listeners[ln]; !ok {
		return
	}
	delete(s.listeners, ln)
	s.listenerWg.Done()
}

func (s *Server) addSession(sess *Session) {
	if sess == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeSess[sess] = struct{}{}
}

func (s *Server) removeSession(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.activeSess, sess)

	if len(s.activeSess) == 0 && s.shuttingDown() {
		select {
		case s.doneChan <- struct{}{}:
		default:
		}
	}
}

func (s *Server) shuttingDown() bool {
	return s.inShutdown.Load()
}

func (s *Server) acceptTimeout() time.Duration {
	return s.Config.setupTimeout()
}

func (s *Server) goAway(sess *Session) {
	sess.goAway("")
}

func (s *Server) logger() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

func (s *Server) logError(msg string, err error) {
	if s.Logger != nil {
		s.Logger.Error(msg, "error", err)
	}
}
