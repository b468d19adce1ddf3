package server

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"go.uber.org/atomic"

	"github.com/Brownie44l1/httpd/internal/handler"
	"github.com/Brownie44l1/httpd/internal/logger"
	"github.com/Brownie44l1/httpd/internal/pool"
	"github.com/Brownie44l1/httpd/internal/router"
)

const DefaultAddr = "127.0.0.1:4221"

var ErrServerClosed = errors.New("server closed")

// Config is read-only once the server is built and shared by all workers.
type Config struct {
	Addr      string
	Directory string // prefix for /files; "" resolves under the working directory
	Workers   int
	QueueSize int

	// IdleTimeout bounds the wait for each request on a connection.
	// Zero waits forever.
	IdleTimeout time.Duration

	// StrictPaths rejects /files paths with ".." segments.
	StrictPaths bool
}

func DefaultConfig() Config {
	return Config{
		Addr:      DefaultAddr,
		Workers:   4,
		QueueSize: pool.DefaultQueueSize,
	}
}

type Server struct {
	config  Config
	router  *router.Router
	pool    *pool.Pool
	metrics *Metrics
	Logger  logger.Logger

	closed atomic.Bool

	mu         sync.Mutex
	listener   net.Listener
	activeConn map[net.Conn]struct{}
}

// New builds a server and starts its worker pool.
func New(config Config, log logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.NullLogger{}
	}

	p, err := pool.New(config.Workers,
		pool.WithQueueSize(config.QueueSize),
		pool.WithLogger(log),
	)
	if err != nil {
		return nil, err
	}

	s := &Server{
		config:     config,
		pool:       p,
		metrics:    NewMetrics(),
		Logger:     log,
		activeConn: make(map[net.Conn]struct{}),
	}
	s.router = s.routes()
	return s, nil
}

func (s *Server) routes() *router.Router {
	r := router.New()
	r.Use(LoggingMiddleware(s.Logger))
	r.Use(MetricsMiddleware(s.metrics))

	r.Handle("/echo*", handler.Echo)
	r.Handle("/", handler.Home)
	r.Handle("/user-agent", handler.UserAgent)
	r.Handle("/files*", handler.Files(s.config.Directory, s.config.StrictPaths))
	return r
}

// ListenAndServe binds the configured address and serves until Close.
func (s *Server) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.config.Addr)
	if err != nil {
		return fmt.Errorf("bind %s: %w", s.config.Addr, err)
	}
	return s.Serve(ln)
}

// Serve accepts connections on ln and hands each one to the worker pool.
// Accept errors are logged and retried with back-off.
func (s *Server) Serve(ln net.Listener) error {
	s.mu.Lock()
	if s.closed.Load() {
		s.mu.Unlock()
		ln.Close()
		return ErrServerClosed
	}
	s.listener = ln
	s.mu.Unlock()

	s.Logger.Info("listening", logger.F("addr", ln.Addr().String()), logger.F("workers", s.pool.Size()))

	var tempDelay time.Duration
	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.closed.Load() {
				return ErrServerClosed
			}
			if errors.Is(err, net.ErrClosed) {
				return err
			}

			if tempDelay == 0 {
				tempDelay = 5 * time.Millisecond
			} else {
				tempDelay *= 2
			}
			if max := 1 * time.Second; tempDelay > max {
				tempDelay = max
			}
			s.Logger.Error("accept failed", logger.F("error", err), logger.F("retry_in", tempDelay.String()))
			time.Sleep(tempDelay)
			continue
		}
		tempDelay = 0

		if err := s.pool.Execute(func() { s.serveConn(conn) }); err != nil {
			s.Logger.Error("dropping connection", logger.F("error", err))
			conn.Close()
		}
	}
}

// Close stops the acceptor, closes open connections and waits for the
// workers to finish.
func (s *Server) Close() error {
	if s.closed.Swap(true) {
		return nil
	}

	s.mu.Lock()
	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	for c := range s.activeConn {
		c.Close()
	}
	s.mu.Unlock()

	s.pool.Close()
	return err
}

// trackConn reports false when adding a connection to a closed server.
func (s *Server) trackConn(c net.Conn, add bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		if s.closed.Load() {
			return false
		}
		s.activeConn[c] = struct{}{}
	} else {
		delete(s.activeConn, c)
	}
	return true
}

// Stats returns request metrics and worker pool counters.
func (s *Server) Stats() (MetricsSnapshot, pool.Stats) {
	return s.metrics.Snapshot(), s.pool.Stats()
}
