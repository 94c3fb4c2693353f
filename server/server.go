package server

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/luma/comms/client"
	"github.com/luma/comms/protocol"
	"github.com/luma/comms/storage"
)

// PublishTimeout bounds how long a status update may wait on slow store
// listeners.
const PublishTimeout = 3 * time.Second

type Options struct {
	// IP is the server's own address. It is the load of every handshake.
	IP string

	// Store receives the status of a connection whenever it changes. Optional.
	Store storage.Store

	Log *zap.Logger
}

// Server owns every connection, and through them every client. All methods
// are safe for concurrent use; calls are applied one at a time.
type Server struct {
	ip string

	mu          sync.Mutex
	connections map[string]*connection

	store storage.Store
	log   *zap.Logger
}

func New(options Options) *Server {
	log := options.Log
	if log == nil {
		log = zap.NewNop()
	}

	return &Server{
		ip:          options.IP,
		connections: make(map[string]*connection),
		store:       options.Store,
		log:         log,
	}
}

func (s *Server) IP() string {
	return s.ip
}

// Open registers client under addr and greets it with a handshake.
//
// It fails if addr has ever been opened, even if that connection has since
// been halted or closed. If the client rejects the handshake nothing is
// registered.
//
// On success the server owns c. Client is not safe for concurrent use, so the
// caller must not touch c again; Status reports its state instead. Prefer
// OpenPeer, which never hands the client out.
func (s *Server) Open(addr string, c *client.Client) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.connections[addr]; ok {
		return protocol.NewConnectionAlreadyExists(addr)
	}

	if _, err := c.Receive(protocol.NewHandshake(s.ip)); err != nil {
		s.log.Warn("Client rejected handshake",
			zap.String("addr", addr),
			zap.String("client", c.Name()),
			zap.Error(err))
		return err
	}

	conn := &connection{state: StateOpen, client: c}
	s.connections[addr] = conn

	s.log.Info("Opened connection",
		zap.String("addr", addr),
		zap.String("client", c.Name()),
		zap.Uint32("limit", c.Limit()))

	s.publish(addr, conn)

	return nil
}

// OpenPeer creates a client named name with the given post limit and opens
// it under addr. The client logs to the server's logger.
func (s *Server) OpenPeer(addr, name string, limit uint32) error {
	return s.Open(addr, client.New(name, limit, s.log.Named("client")))
}

// Send delivers msg to the client at addr and returns its response.
//
// Only open connections carry messages. If the client answers with an error
// the connection is halted and the error is returned as is.
func (s *Server) Send(addr string, msg protocol.Message) (*string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.connections[addr]
	if !ok {
		return nil, protocol.NewConnectionNotSendable(addr, protocol.ReasonUnknown)
	}

	switch conn.state {
	case StateOpen:
		resp, err := conn.client.Receive(msg)
		if err != nil {
			conn.state = StateHalted

			s.log.Warn("Halted connection",
				zap.String("addr", addr),
				zap.String("client", conn.client.Name()),
				zap.Error(err))
		}

		if err != nil || msg.Type != protocol.Get {
			s.publish(addr, conn)
		}

		return resp, err

	case StateHalted:
		return nil, protocol.NewConnectionNotSendable(addr, protocol.ReasonHalted)

	default:
		return nil, protocol.NewConnectionNotSendable(addr, protocol.ReasonClosed)
	}
}

// IsOpen reports whether addr has a connection in the open state.
func (s *Server) IsOpen(addr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.connections[addr]
	return ok && conn.state == StateOpen
}

func (s *Server) CountHalted() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, conn := range s.connections {
		if conn.state == StateHalted {
			count++
		}
	}

	return count
}

// CloseAll closes every connection, whatever its state, and drops the
// clients. Addresses stay registered.
func (s *Server) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for addr, conn := range s.connections {
		if conn.state == StateClosed {
			continue
		}

		conn.state = StateClosed
		conn.client = nil
		s.publish(addr, conn)
	}

	s.log.Info("Closed all connections", zap.Int("count", len(s.connections)))
}

// Status returns the status of the connection at addr.
func (s *Server) Status(addr string) (Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	conn, ok := s.connections[addr]
	if !ok {
		return Status{}, false
	}

	return conn.status(addr), true
}

// Statuses returns the status of every connection, ordered by address.
func (s *Server) Statuses() []Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	statuses := make([]Status, 0, len(s.connections))
	for addr, conn := range s.connections {
		statuses = append(statuses, conn.status(addr))
	}

	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].Addr < statuses[j].Addr
	})

	return statuses
}

// publish must be called with mu held.
func (s *Server) publish(addr string, conn *connection) {
	if s.store == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), PublishTimeout)
	defer cancel()

	if err := s.store.Set(ctx, []byte(addr), conn.status(addr)); err != nil {
		s.log.Warn("Failed to publish connection status",
			zap.String("addr", addr),
			zap.Error(err))
	}
}
