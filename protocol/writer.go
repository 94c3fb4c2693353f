package protocol

import (
	"fmt"
	"io"
)

var (
	OkTerminal = []byte("OK\r\n")
	Terminal   = []byte("\r\n")
)

// WriteOk acknowledges a message that produced no response.
func WriteOk(w io.Writer, addr string) error {
	_, err := w.Write(PrependAddr(OkTerminal, addr))
	return err
}

func WriteString(w io.Writer, addr string, s string) error {
	b := append([]byte(s), Terminal...)
	_, err := w.Write(PrependAddr(b, addr))
	return err
}

// WriteResponse writes the response of a send, or OK if there was none.
func WriteResponse(w io.Writer, addr string, resp *string) error {
	if resp == nil {
		return WriteOk(w, addr)
	}

	return WriteString(w, addr, *resp)
}

func WriteError(w io.Writer, addr string, errMsg string) error {
	b := []byte(fmt.Sprintf("ERR %s\r\n", errMsg))
	_, err := w.Write(PrependAddr(b, addr))
	return err
}

func PrependAddr(data []byte, addr string) []byte {
	return append([]byte(addr+" "), data...)
}
