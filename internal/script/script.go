// Package script drives a server from a line oriented script.
//
//   # comments and blank lines are ignored
//   open 197.0.0.1 TestClient 2
//   send 197.0.0.1 POST Hello from the other side!
//   send 197.0.0.1 GET
//   halted
//   status
//   close-all
//
// Each line produces one transcript line, see protocol.WriteOk and friends.
// Lines that are not about a single peer use "*" as their address.
package script

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/luma/comms/protocol"
	"github.com/luma/comms/server"
)

const AllAddr = "*"

var (
	ErrUnknownCommand   = errors.New("Unknown script command")
	ErrMissingArguments = errors.New("Script command is missing arguments")
	ErrInvalidLimit     = errors.New("Client limit must be a non-negative integer")
)

type Options struct {
	Server *server.Server

	// Output receives the transcript
	Output io.Writer

	// KeepGoing records protocol errors in the transcript and carries on,
	// instead of stopping at the first one.
	KeepGoing bool

	Log *zap.Logger
}

// Run executes every line of r against the server. Malformed lines always
// stop the script; protocol errors stop it unless KeepGoing is set.
func Run(ctx context.Context, r io.Reader, options Options) error {
	log := options.Log
	if log == nil {
		log = zap.NewNop()
	}

	s := &runner{
		srv:       options.Server,
		w:         options.Output,
		keepGoing: options.KeepGoing,
		log:       log,
	}

	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++

		if err := ctx.Err(); err != nil {
			return err
		}

		// Trailing blanks may belong to a message load
		line := strings.TrimLeft(protocol.RemoveTrailingCR(scanner.Text()), " \t")
		if strings.TrimSpace(line) == "" || strings.HasPrefix(line, "#") {
			continue
		}

		if err := s.exec(line); err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
	}

	return scanner.Err()
}

type runner struct {
	srv       *server.Server
	w         io.Writer
	keepGoing bool
	log       *zap.Logger
}

func (s *runner) exec(line string) error {
	command, rest := splitWord(line)

	switch command {
	case "open":
		fields := strings.Fields(rest)
		if len(fields) != 3 {
			return fmt.Errorf("open needs <addr> <name> <limit>: %w", ErrMissingArguments)
		}

		limit, err := strconv.ParseUint(fields[2], 10, 32)
		if err != nil {
			return fmt.Errorf("'%s': %w", fields[2], ErrInvalidLimit)
		}

		addr := fields[0]

		return s.result(addr, nil, s.srv.OpenPeer(addr, fields[1], uint32(limit)))

	case "send":
		addr, raw := splitWord(rest)
		if addr == "" || raw == "" {
			return fmt.Errorf("send needs <addr> <message>: %w", ErrMissingArguments)
		}

		msg, err := protocol.ParseMessage(raw)
		if err != nil {
			return err
		}

		resp, err := s.srv.Send(addr, msg)
		return s.result(addr, resp, err)

	case "close-all":
		s.srv.CloseAll()
		return protocol.WriteOk(s.w, AllAddr)

	case "halted":
		return protocol.WriteString(s.w, AllAddr, strconv.Itoa(s.srv.CountHalted()))

	case "status":
		status, err := json.Marshal(s.srv.Statuses())
		if err != nil {
			return err
		}

		return protocol.WriteString(s.w, AllAddr, string(status))

	default:
		return fmt.Errorf("'%s': %w", command, ErrUnknownCommand)
	}
}

// result writes the outcome of a protocol operation to the transcript.
func (s *runner) result(addr string, resp *string, err error) error {
	if err == nil {
		return protocol.WriteResponse(s.w, addr, resp)
	}

	if werr := protocol.WriteError(s.w, addr, err.Error()); werr != nil {
		return werr
	}

	if s.keepGoing {
		s.log.Debug("Continuing after error", zap.String("addr", addr), zap.Error(err))
		return nil
	}

	return err
}

func splitWord(s string) (string, string) {
	s = strings.TrimLeft(s, " \t")
	if i := strings.IndexAny(s, " \t"); i >= 0 {
		return s[:i], s[i+1:]
	}

	return s, ""
}
