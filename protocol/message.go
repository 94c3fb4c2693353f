package protocol

import "fmt"

type MessageType uint8

const (
	Handshake MessageType = iota
	Post
	Get
)

const (
	HeaderHandshake = "[HANDSHAKE]"
	HeaderPost      = "[POST]"
	HeaderGet       = "[GET]"
)

// Header returns the token used when displaying a message of this type.
func (t MessageType) Header() string {
	switch t {
	case Handshake:
		return HeaderHandshake
	case Post:
		return HeaderPost
	case Get:
		return HeaderGet
	default:
		return fmt.Sprintf("[UNKNOWN(%d)]", uint8(t))
	}
}

// String returns the header token without brackets, e.g. POST
func (t MessageType) String() string {
	h := t.Header()
	return h[1 : len(h)-1]
}

// ParseMessageType accepts either the bare token (POST) or the header form
// ([POST]). Tokens are case sensitive.
func ParseMessageType(s string) (MessageType, error) {
	for _, t := range []MessageType{Handshake, Post, Get} {
		if s == t.String() || s == t.Header() {
			return t, nil
		}
	}

	return 0, fmt.Errorf("Failed to parse '%s': %w", s, ErrUnknownMessageType)
}

type Message struct {
	Type MessageType
	Load string
}

// NewHandshake greets a client. The load is the address of the server so the
// client can record who it is connected to.
func NewHandshake(serverIP string) Message {
	return Message{Type: Handshake, Load: serverIP}
}

// NewPost carries an arbitrary load that counts towards the client's limit.
func NewPost(load string) Message {
	return Message{Type: Post, Load: load}
}

// NewGet asks the client for the number of Posts it has received.
func NewGet() Message {
	return Message{Type: Get}
}

// Content renders the message for display.
func (m Message) Content() string {
	return m.Type.Header() + "\n" + m.Load
}
