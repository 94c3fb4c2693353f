package client

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/luma/comms/protocol"
)

// Client is a named peer that ingests a bounded number of Posts.
//
// A Client is not safe for concurrent use. Once it has been handed to a
// server.Server it should only be reached through that server.
type Client struct {
	name      string
	postCount uint32
	limit     uint32

	connectedServer *string

	log *zap.Logger
}

// Snapshot is a copy of a client's state at a point in time
type Snapshot struct {
	Name            string  `json:"name"`
	PostCount       uint32  `json:"postCount"`
	Limit           uint32  `json:"limit"`
	ConnectedServer *string `json:"connectedServer"`
}

func New(name string, limit uint32, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}

	return &Client{
		name:  name,
		limit: limit,
		log:   log,
	}
}

func (c *Client) Name() string {
	return c.name
}

func (c *Client) PostCount() uint32 {
	return c.postCount
}

func (c *Client) Limit() uint32 {
	return c.limit
}

// ConnectedServer returns the address recorded by the first successful
// handshake.
func (c *Client) ConnectedServer() (string, bool) {
	if c.connectedServer == nil {
		return "", false
	}

	return *c.connectedServer, true
}

func (c *Client) Snapshot() Snapshot {
	s := Snapshot{
		Name:      c.name,
		PostCount: c.postCount,
		Limit:     c.limit,
	}

	if c.connectedServer != nil {
		addr := *c.connectedServer
		s.ConnectedServer = &addr
	}

	return s
}

// Receive consumes a message.
//
// Handshakes are accepted once. Posts are accepted until the limit is reached,
// after which every Post is an error. A Get is answered with the number of
// Posts received so far. A rejected message never changes the client.
func (c *Client) Receive(msg protocol.Message) (*string, error) {
	c.log.Info(c.name+" received:\n"+msg.Content(),
		zap.String("client", c.name),
		zap.Stringer("type", msg.Type))

	switch msg.Type {
	case protocol.Handshake:
		if c.connectedServer != nil {
			return nil, protocol.NewHandshakeConflict(c.name, *c.connectedServer)
		}

		addr := msg.Load
		c.connectedServer = &addr
		return nil, nil

	case protocol.Get:
		resp := strconv.FormatUint(uint64(c.postCount), 10)
		return &resp, nil

	case protocol.Post:
		if c.postCount >= c.limit {
			return nil, protocol.NewCapacityExceeded(c.name)
		}

		c.postCount++
		return nil, nil

	default:
		return nil, protocol.ErrUnknownMessageType
	}
}
