package server

import (
	"fmt"

	"github.com/luma/comms/client"
)

// State is the lifecycle state of the connection to one peer.
//
//   Open --(client error)--> Halted
//   Open, Halted --(CloseAll)--> Closed
//
// There is no way back to Open.
type State uint8

const (
	StateClosed State = iota
	StateHalted
	StateOpen
)

func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateHalted:
		return "halted"
	case StateOpen:
		return "open"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *State) UnmarshalText(text []byte) error {
	for _, candidate := range []State{StateClosed, StateHalted, StateOpen} {
		if candidate.String() == string(text) {
			*s = candidate
			return nil
		}
	}

	return fmt.Errorf("unknown connection state '%s'", string(text))
}

// connection is owned by the server. client is nil when closed; when halted
// it is kept for inspection only.
type connection struct {
	state  State
	client *client.Client
}

// Status describes one connection at a point in time.
type Status struct {
	Addr   string           `json:"addr"`
	State  State            `json:"state"`
	Client *client.Snapshot `json:"client"`
}

func (c *connection) status(addr string) Status {
	s := Status{Addr: addr, State: c.state}

	if c.client != nil {
		snapshot := c.client.Snapshot()
		s.Client = &snapshot
	}

	return s
}
