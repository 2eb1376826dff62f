package tcp

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"

	"chat-relay/contract"
)

var _ contract.Worker = (*Server)(nil)

// Server owns the listener and spawns one Session goroutine per
// accepted connection. There is no admission limit.
type Server struct {
	log            *slog.Logger
	registry       contract.IRegistry
	chat           contract.IChatService
	defaultRoom    string
	connBufferSize int
	listener       net.Listener
}

func NewServer(log *slog.Logger, registry contract.IRegistry, chat contract.IChatService,
	defaultRoom string, connBufferSize int) *Server {
	return &Server{
		log:            log,
		registry:       registry,
		chat:           chat,
		defaultRoom:    defaultRoom,
		connBufferSize: connBufferSize,
	}
}

// Listen binds the TCP port. A bind failure is fatal to the process,
// so it surfaces here rather than inside Run.
func (s *Server) Listen(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return err
	}
	s.listener = listener
	return nil
}

// Addr reports the bound address, useful with ":0" in tests.
func (s *Server) Addr() net.Addr {
	return s.listener.Addr()
}

// Run accepts connections until the context is canceled. In-flight
// sessions are not drained on shutdown, only the listener closes.
func (s *Server) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		_ = s.listener.Close()
	}()

	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if ctx.Err() != nil || stderrors.Is(err, net.ErrClosed) {
				s.log.Info("Listener closed, no longer accepting")
				return nil
			}
			s.log.Error("Accept failed", "error", err)
			continue
		}
		s.log.Info("New connection accepted", "remote", conn.RemoteAddr())
		session := NewSession(s.log, conn, s.registry, s.chat, s.defaultRoom, s.connBufferSize)
		go session.Run()
	}
}
