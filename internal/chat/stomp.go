package chat

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
)

// STOMP 1.2 commands used by the chat service dialect.
const (
	frameConnect   = "CONNECT"
	frameConnected = "CONNECTED"
	frameSubscribe = "SUBSCRIBE"
	frameSend      = "SEND"
	frameMessage   = "MESSAGE"
	frameError     = "ERROR"
)

// stompFrame is one unit on the wire: a command line, headers, and an
// optional body. A heartbeat is represented by an empty Command.
type stompFrame struct {
	Command string
	Headers map[string]string
	Body    []byte
}

// heartbeat is the STOMP keepalive: a bare end-of-line.
var heartbeat = []byte("\n")

// isHeartbeat reports whether raw is a keepalive rather than a frame.
func isHeartbeat(raw []byte) bool {
	trimmed := bytes.TrimRight(raw, "\r\n")
	return len(trimmed) == 0
}

// marshalFrame serializes a frame per the STOMP 1.2 grammar:
// command, header lines, blank line, body, NUL terminator.
// Headers are written in sorted order so output is deterministic.
func marshalFrame(f stompFrame) []byte {
	var b strings.Builder
	b.WriteString(f.Command)
	b.WriteByte('\n')

	keys := make([]string, 0, len(f.Headers))
	for k := range f.Headers {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte(':')
		b.WriteString(f.Headers[k])
		b.WriteByte('\n')
	}

	b.WriteByte('\n')
	b.Write(f.Body)
	b.WriteByte(0)
	return []byte(b.String())
}

// parseFrame deserializes a frame. Heartbeats must be filtered out by
// the caller before parsing.
func parseFrame(raw []byte) (stompFrame, error) {
	raw = bytes.TrimSuffix(raw, []byte{0})

	head, body, found := bytes.Cut(raw, []byte("\n\n"))
	if !found {
		// Frame with headers but no body separator is malformed.
		return stompFrame{}, fmt.Errorf("malformed frame: missing header terminator")
	}

	lines := strings.Split(strings.TrimRight(string(head), "\r\n"), "\n")
	if len(lines) == 0 || lines[0] == "" {
		return stompFrame{}, fmt.Errorf("malformed frame: empty command")
	}

	f := stompFrame{
		Command: strings.TrimRight(lines[0], "\r"),
		Headers: make(map[string]string, len(lines)-1),
		Body:    body,
	}
	for _, line := range lines[1:] {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		name, value, ok := strings.Cut(line, ":")
		if !ok {
			return stompFrame{}, fmt.Errorf("malformed header line: %q", line)
		}
		// First occurrence wins, per the STOMP spec.
		if _, exists := f.Headers[name]; !exists {
			f.Headers[name] = value
		}
	}
	return f, nil
}
