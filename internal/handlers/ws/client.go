package ws

import (
	"context"
	"log/slog"
	"time"

	"github.com/gorilla/websocket"

	"github.com/KirkDiggler/rogue-api/internal/errors"
	"github.com/KirkDiggler/rogue-api/internal/events"
	"github.com/KirkDiggler/rogue-api/internal/game"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// Craft commands carry ingredient ID lists, so the limit is
	// roomier than a plain movement protocol would need.
	maxMessageSize = 4096
)

// client is one connected player: a websocket, its outbound queue, and
// the session it is driving. The session is only touched from the read
// loop; Session is not safe for concurrent use.
type client struct {
	handler *Handler
	conn    *websocket.Conn
	send    chan *Message
	sess    *game.Session
}

func newClient(h *Handler, conn *websocket.Conn) *client {
	return &client{
		handler: h,
		conn:    conn,
		send:    make(chan *Message, 64),
	}
}

// readPump decodes client commands and drives the session until the
// connection drops. Closing send on the way out lets writePump finish
// the close handshake.
func (c *client) readPump() {
	defer func() {
		close(c.send)
		if err := c.conn.Close(); err != nil {
			slog.Debug("close websocket", "error", err)
		}
		slog.Info("client disconnected", "remote", c.conn.RemoteAddr().String())
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		slog.Warn("set read deadline", "error", err)
	}
	c.conn.SetPongHandler(func(string) error {
		if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			slog.Warn("set pong read deadline", "error", err)
		}
		return nil
	})

	for {
		var cmd Command
		if err := c.conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				slog.Warn("websocket read failed", "error", err)
			}
			return
		}
		c.dispatch(cmd)
	}
}

// writePump flushes the outbound queue and keeps the connection alive
// with pings.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.conn.Close(); err != nil {
			slog.Debug("close websocket in write pump", "error", err)
		}
	}()

	for {
		select {
		case msg, ok := <-c.send:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				slog.Warn("set write deadline", "error", err)
			}
			if !ok {
				if err := c.conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					slog.Debug("write close message", "error", err)
				}
				return
			}
			if err := c.conn.WriteJSON(msg); err != nil {
				slog.Debug("write message", "error", err)
				return
			}

		case <-ticker.C:
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				slog.Warn("set ping write deadline", "error", err)
			}
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				slog.Debug("ping failed", "error", err)
				return
			}
		}
	}
}

// dispatch runs one command against the client's session. The
// connection is hijacked, so the request context is already gone and
// each command runs under its own background context.
func (c *client) dispatch(cmd Command) {
	ctx := context.Background()

	switch cmd.Type {
	case CmdNewGame:
		sess, err := c.handler.sessions.NewSession(ctx)
		if err != nil {
			c.sendError(err)
			return
		}
		c.sess = sess
		c.sendUpdate(nil, nil)

	case CmdLoadGame:
		if cmd.SessionID == "" {
			c.sendError(errors.InvalidArgument("session_id is required"))
			return
		}
		sess, err := c.handler.sessions.LoadSession(ctx, cmd.SessionID)
		if err != nil {
			c.sendError(err)
			return
		}
		c.sess = sess
		c.sendUpdate(nil, nil)

	case CmdListSaves:
		ids, err := c.handler.sessions.ListSaves(ctx)
		if err != nil {
			c.sendError(err)
			return
		}
		c.send <- &Message{Type: MsgSaves, SessionIDs: ids}

	case CmdSave:
		if c.sess == nil {
			c.sendError(errNoSession())
			return
		}
		if err := c.sess.Save(ctx); err != nil {
			c.sendError(err)
			return
		}
		c.send <- &Message{Type: MsgSaved, SessionID: c.sess.ID()}

	case CmdAction:
		if c.sess == nil {
			c.sendError(errNoSession())
			return
		}
		action, err := decodeAction(cmd)
		if err != nil {
			c.sendError(err)
			return
		}
		out, err := c.sess.HandleAction(ctx, action)
		if err != nil {
			c.sendError(err)
			return
		}
		c.sendUpdate(out.Messages, out.Events)

	case CmdTargetStart:
		if c.sess == nil {
			c.sendError(errNoSession())
			return
		}
		u, err := c.sess.StartTargeting(ctx, cmd.SpellID)
		if err != nil {
			c.sendError(err)
			return
		}
		c.sendTargeting(u)

	case CmdTargetMove:
		if c.sess == nil {
			c.sendError(errNoSession())
			return
		}
		c.sendTargeting(c.sess.MoveTargetCursor(cmd.DX, cmd.DY))

	case CmdTargetCycle:
		if c.sess == nil {
			c.sendError(errNoSession())
			return
		}
		c.sendTargeting(c.sess.CycleTarget(cmd.Direction))

	case CmdTargetConfirm:
		if c.sess == nil {
			c.sendError(errNoSession())
			return
		}
		u, err := c.sess.ConfirmTarget(ctx)
		if err != nil {
			c.sendError(err)
			return
		}
		c.sendTargeting(u)

	case CmdTargetCancel:
		if c.sess == nil {
			c.sendError(errNoSession())
			return
		}
		c.sendTargeting(c.sess.CancelTargeting())

	default:
		c.sendError(errors.InvalidArgumentf("unknown command type %q", cmd.Type))
	}
}

func errNoSession() error {
	return errors.FailedPrecondition("no active game; send new_game or load_game first")
}

// sendUpdate redraws the frame and ships it with whatever the command
// produced.
func (c *client) sendUpdate(messages []string, evts []events.Event) {
	c.send <- &Message{
		Type:     MsgUpdate,
		Frame:    c.sess.BuildFrame(),
		Messages: messages,
		Events:   envelopes(evts),
	}
}

// sendTargeting ships a targeting update. A confirmed or self-targeted
// cast carries a full action result; its log lines follow the
// targeting prompt.
func (c *client) sendTargeting(u *game.TargetingUpdate) {
	var messages []string
	if u.Message != "" {
		messages = append(messages, u.Message)
	}
	var evts []events.Event
	if u.Result != nil {
		messages = append(messages, u.Result.Messages...)
		evts = u.Result.Events
	}
	c.sendUpdate(messages, evts)
}

func (c *client) sendError(err error) {
	c.send <- &Message{Type: MsgError, Error: err.Error()}
}
