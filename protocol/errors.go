package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownMessageType      = errors.New("Unknown message type could not be parsed")
	ErrMessageEmpty            = errors.New("Message is empty")
	ErrMessageMissingLoadSpace = errors.New("Message is malformed, it appears to be missing a space between the type and the load")
)

type ErrorKind uint8

const (
	HandshakeConflict ErrorKind = iota + 1
	CapacityExceeded
	ConnectionAlreadyExists
	ConnectionNotSendable
)

func (k ErrorKind) String() string {
	switch k {
	case HandshakeConflict:
		return "handshake_conflict"
	case CapacityExceeded:
		return "capacity_exceeded"
	case ConnectionAlreadyExists:
		return "connection_already_exists"
	case ConnectionNotSendable:
		return "connection_not_sendable"
	default:
		return "unknown"
	}
}

// Reasons a connection cannot carry a message.
const (
	ReasonHalted  = "halted"
	ReasonClosed  = "closed"
	ReasonUnknown = "unknown"
)

// Error is returned by clients and servers when a message or connection
// request is rejected. Its message is part of the observable contract and is
// rendered verbatim.
type Error struct {
	Kind ErrorKind

	// Reason narrows ConnectionNotSendable down to halted, closed or unknown
	Reason string

	msg      string
	sentinel bool
}

func (e *Error) Error() string {
	return e.msg
}

// Is matches sentinel errors, which carry a kind and optionally a reason.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || !t.sentinel {
		return false
	}

	return t.Kind == e.Kind && (t.Reason == "" || t.Reason == e.Reason)
}

func newSentinel(kind ErrorKind, reason string) *Error {
	msg := kind.String()
	if reason != "" {
		msg += ": " + reason
	}

	return &Error{Kind: kind, Reason: reason, msg: msg, sentinel: true}
}

var (
	ErrHandshakeConflict       = newSentinel(HandshakeConflict, "")
	ErrCapacityExceeded        = newSentinel(CapacityExceeded, "")
	ErrConnectionAlreadyExists = newSentinel(ConnectionAlreadyExists, "")
	ErrConnectionNotSendable   = newSentinel(ConnectionNotSendable, "")
	ErrConnectionHalted        = newSentinel(ConnectionNotSendable, ReasonHalted)
	ErrConnectionClosed        = newSentinel(ConnectionNotSendable, ReasonClosed)
	ErrConnectionUnknown       = newSentinel(ConnectionNotSendable, ReasonUnknown)
)

func NewHandshakeConflict(client, connectedTo string) *Error {
	return &Error{
		Kind: HandshakeConflict,
		msg: fmt.Sprintf("Client '%s' received unexpected handshake. Already connected to '%s'.",
			client, connectedTo),
	}
}

func NewCapacityExceeded(client string) *Error {
	return &Error{
		Kind: CapacityExceeded,
		msg:  fmt.Sprintf("Client '%s' cannot ingest more messages.", client),
	}
}

func NewConnectionAlreadyExists(addr string) *Error {
	return &Error{
		Kind: ConnectionAlreadyExists,
		msg:  fmt.Sprintf("Cannot open connection to '%s'. Connection already exists.", addr),
	}
}

// NewConnectionNotSendable builds the error for a send through a connection
// that is halted, closed, or was never opened.
func NewConnectionNotSendable(addr, reason string) *Error {
	article := "a"
	if reason == ReasonUnknown {
		article = "an"
	}

	return &Error{
		Kind:   ConnectionNotSendable,
		Reason: reason,
		msg: fmt.Sprintf("Tried to send a message through %s %s connection ('%s').",
			article, reason, addr),
	}
}

// KindOf returns the kind of a protocol error, or 0 if err is not one.
func KindOf(err error) ErrorKind {
	var perr *Error
	if errors.As(err, &perr) {
		return perr.Kind
	}

	return 0
}
