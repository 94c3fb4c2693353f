package protocol

import (
	"strings"
)

// ParseMessage parses the text notation of a message:
//
//   <TYPE>[ <load>]
//
// where TYPE is HANDSHAKE, POST or GET (or their bracketed headers). The load
// is everything after the first space and is taken verbatim.
func ParseMessage(line string) (Message, error) {
	line = RemoveTrailingCR(strings.TrimSuffix(line, "\n"))
	if line == "" {
		return Message{}, ErrMessageEmpty
	}

	rawType, load := line, ""
	if i := strings.IndexByte(line, ' '); i >= 0 {
		rawType, load = line[:i], line[i+1:]
	}

	msgType, err := ParseMessageType(rawType)
	if err == nil {
		return Message{Type: msgType, Load: load}, nil
	}

	// "POSThello" is a known type glued to its load
	for _, t := range []MessageType{Handshake, Post, Get} {
		if strings.HasPrefix(rawType, t.String()) || strings.HasPrefix(rawType, t.Header()) {
			return Message{}, ErrMessageMissingLoadSpace
		}
	}

	return Message{}, err
}

func RemoveTrailingCR(data string) string {
	// Remove the optional trailing \r
	return strings.TrimSuffix(data, "\r")
}
