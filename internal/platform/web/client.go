package web

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/gridsnake/internal/core"
	"github.com/vovakirdan/gridsnake/internal/loop"
	"github.com/vovakirdan/gridsnake/internal/registry"
	"github.com/vovakirdan/gridsnake/internal/session"
	"github.com/vovakirdan/gridsnake/internal/snake"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1024
)

// client is one browser connection. The read pump feeds the driver; the
// write pump is the only goroutine that writes to the socket.
type client struct {
	ws     *websocket.Conn
	codec  Codec
	driver *loop.Driver
	out    *session.ChannelSession
	hello  Hello
	logger *log.Logger
}

// readPump decodes client messages until the socket fails. It closes the
// outbound session on return, which stops the write pump.
func (c *client) readPump() {
	defer c.out.Close()

	c.ws.SetReadLimit(maxMessageSize)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.logger.Warn("read failed", "error", err)
			}
			return
		}

		var msg ClientMessage
		if err := c.codec.Unmarshal(data, &msg); err != nil {
			c.logger.Debug("bad message", "error", err)
			continue
		}
		c.handle(msg)
	}
}

// handle applies one client message. Unknown or malformed input is ignored.
func (c *client) handle(msg ClientMessage) {
	switch msg.Type {
	case MsgInput:
		if dir, ok := core.ParseDirection(msg.Dir); ok {
			c.driver.Input(dir)
		}
	case MsgConfirm:
		c.driver.Confirm()
	case MsgRestart:
		c.driver.Restart()
	case MsgSkin:
		skin := c.driver.Snapshot().Skin
		if msg.Color != "" {
			skin.BodyColor = msg.Color
		}
		if msg.Icon != "" {
			skin.HeadIcon = msg.Icon
		}
		if err := c.driver.SetSkin(skin); err != nil {
			c.out.Send(session.ErrorEvent{Message: err.Error()})
		}
	}
}

// writePump sends the hello, then every queued event, pinging while idle.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	if err := c.write(ServerMessage{Type: MsgHello, Hello: &c.hello}); err != nil {
		c.logger.Debug("hello failed", "error", err)
		return
	}

	for {
		select {
		case evt := <-c.out.Events():
			msg, ok := toMessage(evt)
			if !ok {
				continue
			}
			if err := c.write(msg); err != nil {
				c.logger.Debug("write failed", "error", err)
				return
			}

		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.out.Done():
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			_ = c.ws.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
			return
		}
	}
}

func (c *client) write(msg ServerMessage) error {
	data, err := c.codec.Marshal(msg)
	if err != nil {
		return err
	}
	_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	return c.ws.WriteMessage(c.codec.FrameType(), data)
}

func toMessage(evt session.Event) (ServerMessage, bool) {
	switch e := evt.(type) {
	case session.FrameEvent:
		snap := e.Snapshot
		return ServerMessage{Type: MsgFrame, Frame: &snap}, true
	case session.SoundEvent:
		return ServerMessage{Type: MsgSound, Sound: e.Sound.Name()}, true
	case session.ErrorEvent:
		return ServerMessage{Type: MsgError, Error: e.Message}, true
	}
	return ServerMessage{}, false
}

// helloFor builds the greeting for a connection.
func helloFor(id session.ID, v registry.Variant, tick time.Duration) Hello {
	chosen := v.Rules.SkinMode == core.SkinChosen
	h := Hello{
		Session:    string(id),
		Variant:    v.ID,
		Title:      v.Title,
		SkinChosen: chosen,
		Sounds:     soundURLs(),
		TickMillis: tick.Milliseconds(),
	}
	if chosen {
		h.Colors = snake.CustomColors
		h.Icons = snake.HeadIcons
	}
	return h
}
