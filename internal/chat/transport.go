// Package chat owns the real-time messaging subsystem: the STOMP
// websocket transport, the in-memory conversation store, and the
// history reconciler that merges persisted messages with live frames.
package chat

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/AkhandAgrawal/Bartr/internal/domain"
	"github.com/AkhandAgrawal/Bartr/internal/logging"
)

// State is the transport connection state. Owned exclusively by the
// Transport; everything else reads it.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateConnected    State = "connected"
)

const (
	// reconnectDelay is the fixed wait before re-dialing after a drop.
	reconnectDelay = 5 * time.Second
	// heartbeatInterval is the keepalive period in each direction.
	heartbeatInterval = 4 * time.Second
	// handshakeTimeout bounds the dial + CONNECTED exchange.
	handshakeTimeout = 10 * time.Second

	subscribeDestination = "/queue/messages/"
	sendDestination      = "/app/private-message"
)

// WebsocketURL converts the chat service base URL to its websocket
// endpoint: http(s)://host → ws(s)://host/ws.
func WebsocketURL(chatURL string) string {
	u := strings.TrimRight(chatURL, "/")
	switch {
	case strings.HasPrefix(u, "https://"):
		u = "wss://" + strings.TrimPrefix(u, "https://")
	case strings.HasPrefix(u, "http://"):
		u = "ws://" + strings.TrimPrefix(u, "http://")
	}
	return u + "/ws"
}

// Transport owns the websocket/STOMP connection to the chat service:
// connect, subscribe, publish, reconnect, teardown. At most one live
// handle exists at a time.
type Transport struct {
	url    string
	store  *ConversationStore
	log    *logging.Logger
	dialer *websocket.Dialer

	reconnectDelay    time.Duration
	heartbeatInterval time.Duration

	mu        sync.Mutex
	state     State
	conn      *websocket.Conn
	gen       int // handle generation; bumping it retires the current handle
	subjectID string

	writeMu sync.Mutex
}

// TransportOption configures a Transport.
type TransportOption func(*Transport)

// WithReconnectDelay overrides the reconnect delay. Used in tests.
func WithReconnectDelay(d time.Duration) TransportOption {
	return func(t *Transport) { t.reconnectDelay = d }
}

// WithHeartbeatInterval overrides the keepalive period. Used in tests.
func WithHeartbeatInterval(d time.Duration) TransportOption {
	return func(t *Transport) { t.heartbeatInterval = d }
}

// NewTransport creates a transport for the given websocket endpoint,
// feeding inbound messages into store.
func NewTransport(wsURL string, store *ConversationStore, log *logging.Logger, opts ...TransportOption) *Transport {
	t := &Transport{
		url:               wsURL,
		store:             store,
		log:               log.Sub("transport"),
		dialer:            &websocket.Dialer{HandshakeTimeout: handshakeTimeout},
		reconnectDelay:    reconnectDelay,
		heartbeatInterval: heartbeatInterval,
		state:             StateDisconnected,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// State returns the current connection state.
func (t *Transport) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// IsConnected reports whether the transport is connected.
func (t *Transport) IsConnected() bool {
	return t.State() == StateConnected
}

// Connect opens the streaming connection for subjectID and subscribes
// to its inbound queue. No-op when already connected. A prior handle
// in any other state is torn down first, so two live handles never
// coexist. Connect returns immediately; the handshake and the
// automatic reconnect loop run in the background until Disconnect.
func (t *Transport) Connect(subjectID, accessToken string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state == StateConnected {
		t.log.Debug().Msg("already connected")
		return
	}

	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
	}
	t.gen++
	t.subjectID = subjectID
	t.state = StateConnecting

	t.log.Info().Str("userId", subjectID).Str("url", t.url).Msg("connecting")
	go t.run(t.gen, subjectID, accessToken)
}

// Disconnect tears down the transport handle unconditionally and stops
// the reconnect loop.
func (t *Transport) Disconnect() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.gen++
	if t.conn != nil {
		t.conn.Close()
		t.conn = nil
	}
	t.state = StateDisconnected
	t.log.Info().Msg("disconnected")
}

// SendMessage publishes msg to the chat service. When the transport is
// not connected the send is dropped silently: no error, no queueing,
// no retry. The caller already appended the message optimistically and
// reconciles through the next history reload.
func (t *Transport) SendMessage(msg domain.Message) {
	t.mu.Lock()
	conn := t.conn
	connected := t.state == StateConnected
	t.mu.Unlock()

	if !connected || conn == nil {
		t.log.Warn().Msg("send dropped: not connected")
		return
	}

	body, err := json.Marshal(msg)
	if err != nil {
		t.log.Error().Err(err).Msg("message not serializable, dropped")
		return
	}

	frame := stompFrame{
		Command: frameSend,
		Headers: map[string]string{
			"destination":    sendDestination,
			"content-type":   "application/json",
			"content-length": fmt.Sprintf("%d", len(body)),
		},
		Body: body,
	}
	if err := t.writeFrame(conn, frame); err != nil {
		// The read loop observes the same failure and reconnects.
		t.log.Warn().Err(err).Msg("publish failed")
	}
}

// run is the per-handle connect/reconnect loop. It exits when its
// generation is retired by Connect or Disconnect.
func (t *Transport) run(gen int, subjectID, accessToken string) {
	for {
		err := t.session(gen, subjectID, accessToken)

		t.mu.Lock()
		current := t.gen == gen
		if current {
			t.state = StateDisconnected
			t.conn = nil
		}
		t.mu.Unlock()
		if !current {
			return
		}
		if err != nil {
			t.log.Warn().Err(err).Dur("retryIn", t.reconnectDelay).Msg("transport error")
		}

		time.Sleep(t.reconnectDelay)

		t.mu.Lock()
		if t.gen != gen {
			t.mu.Unlock()
			return
		}
		t.state = StateConnecting
		t.mu.Unlock()
	}
}

// session dials, performs the STOMP handshake, subscribes, and reads
// frames until the connection fails or the handle is retired.
func (t *Transport) session(gen int, subjectID, accessToken string) error {
	conn, _, err := t.dialer.Dial(t.url, nil)
	if err != nil {
		return fmt.Errorf("dial: %w", err)
	}

	t.mu.Lock()
	if t.gen != gen {
		t.mu.Unlock()
		conn.Close()
		return nil
	}
	t.conn = conn
	t.mu.Unlock()
	defer conn.Close()

	serverBeat, err := t.handshake(conn, subjectID, accessToken)
	if err != nil {
		return err
	}

	subID := "sub-" + uuid.New().String()
	if err := t.writeFrame(conn, stompFrame{
		Command: frameSubscribe,
		Headers: map[string]string{
			"id":          subID,
			"destination": subscribeDestination + subjectID,
		},
	}); err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}

	t.mu.Lock()
	if t.gen != gen {
		t.mu.Unlock()
		return nil
	}
	t.state = StateConnected
	t.mu.Unlock()
	t.log.Info().Str("userId", subjectID).Msg("connected and subscribed")

	stopBeats := make(chan struct{})
	defer close(stopBeats)
	go t.sendHeartbeats(conn, stopBeats)

	return t.readLoop(conn, subjectID, serverBeat)
}

// handshake sends CONNECT and waits for CONNECTED. Connection headers
// carry the subject id and, when present, the bearer token. Returns
// the negotiated interval at which the server will send heartbeats,
// zero when it declined them.
func (t *Transport) handshake(conn *websocket.Conn, subjectID, accessToken string) (time.Duration, error) {
	beatMillis := t.heartbeatInterval.Milliseconds()
	headers := map[string]string{
		"accept-version": "1.2",
		"heart-beat":     fmt.Sprintf("%d,%d", beatMillis, beatMillis),
		"userId":         subjectID,
	}
	if accessToken != "" {
		headers["Authorization"] = "Bearer " + accessToken
	}

	if err := t.writeFrame(conn, stompFrame{Command: frameConnect, Headers: headers}); err != nil {
		return 0, fmt.Errorf("connect frame: %w", err)
	}

	conn.SetReadDeadline(time.Now().Add(handshakeTimeout))
	defer conn.SetReadDeadline(time.Time{})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return 0, fmt.Errorf("awaiting connected: %w", err)
		}
		if isHeartbeat(raw) {
			continue
		}
		frame, err := parseFrame(raw)
		if err != nil {
			return 0, fmt.Errorf("handshake frame: %w", err)
		}
		switch frame.Command {
		case frameConnected:
			return t.negotiateServerBeat(frame.Headers["heart-beat"]), nil
		case frameError:
			return 0, fmt.Errorf("broker rejected connect: %s", frame.Headers["message"])
		default:
			return 0, fmt.Errorf("unexpected handshake frame %q", frame.Command)
		}
	}
}

// negotiateServerBeat derives the server's outgoing heartbeat interval
// from the CONNECTED heart-beat header: the larger of what the server
// can send and what we asked to receive. Zero means the server
// declined heartbeats (or sent no usable header) and no inbound
// keepalive can be expected.
func (t *Transport) negotiateServerBeat(header string) time.Duration {
	sx, _, ok := strings.Cut(header, ",")
	if !ok {
		return 0
	}
	ms, err := strconv.Atoi(strings.TrimSpace(sx))
	if err != nil || ms <= 0 {
		return 0
	}
	interval := time.Duration(ms) * time.Millisecond
	if interval < t.heartbeatInterval {
		return t.heartbeatInterval
	}
	return interval
}

// readLoop consumes inbound frames until the connection fails. A read
// deadline of three heartbeat intervals is armed only when the server
// committed to sending heartbeats; a server that declined them gets an
// unbounded read, since silence is then indistinguishable from idle.
func (t *Transport) readLoop(conn *websocket.Conn, subjectID string, serverBeat time.Duration) error {
	if serverBeat == 0 {
		conn.SetReadDeadline(time.Time{})
	}
	for {
		if serverBeat > 0 {
			conn.SetReadDeadline(time.Now().Add(3 * serverBeat))
		}
		_, raw, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		if isHeartbeat(raw) {
			continue
		}

		frame, err := parseFrame(raw)
		if err != nil {
			t.log.Warn().Err(err).Msg("unparseable frame dropped")
			continue
		}

		switch frame.Command {
		case frameMessage:
			t.handleMessage(frame, subjectID)
		case frameError:
			return fmt.Errorf("broker error: %s", frame.Headers["message"])
		default:
			t.log.Debug().Str("command", frame.Command).Msg("ignoring frame")
		}
	}
}

// handleMessage parses a MESSAGE frame body and appends it to the
// conversation with the other party. Frames from the reserved system
// sender are discarded without touching the store.
func (t *Transport) handleMessage(frame stompFrame, subjectID string) {
	var msg domain.Message
	if err := json.Unmarshal(frame.Body, &msg); err != nil {
		t.log.Warn().Err(err).Msg("unparseable message body dropped")
		return
	}

	if msg.SenderID == domain.SystemSender {
		t.log.Debug().Str("content", msg.Content).Msg("ignoring system message")
		return
	}

	other := msg.OtherParty(subjectID)
	key := domain.ChatKey(subjectID, other)
	if t.store.Add(key, msg) {
		t.log.Debug().Str("chatKey", key).Str("from", msg.SenderID).Msg("message received")
	}
}

// sendHeartbeats writes the outgoing keepalive on the fixed interval
// until stop is closed.
func (t *Transport) sendHeartbeats(conn *websocket.Conn, stop <-chan struct{}) {
	ticker := time.NewTicker(t.heartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.writeMu.Lock()
			err := conn.WriteMessage(websocket.TextMessage, heartbeat)
			t.writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

// writeFrame serializes and writes one frame. Serialized because the
// heartbeat ticker and publishers share the connection.
func (t *Transport) writeFrame(conn *websocket.Conn, f stompFrame) error {
	t.writeMu.Lock()
	defer t.writeMu.Unlock()
	return conn.WriteMessage(websocket.TextMessage, marshalFrame(f))
}
