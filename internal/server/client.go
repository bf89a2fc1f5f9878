package server

import (
	"context"
	"net/http"
	"time"

	"umbrella-rogue/internal/engine"
	"umbrella-rogue/pkg/api"
	"umbrella-rogue/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Настройки WebSocket
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Client - посредник между Websocket и GameService.
// Движок трогает только readPump, поэтому сервис однопоточный.
type Client struct {
	server *Server
	Game   *engine.GameService
	Conn   *websocket.Conn
	Send   chan api.ServerResponse
	log    *logrus.Entry
}

func NewClient(s *Server, conn *websocket.Conn) *Client {
	c := &Client{
		server: s,
		Conn:   conn,
		Send:   make(chan api.ServerResponse, sendBuffer),
		log: logger.Log.WithFields(logrus.Fields{
			"component": "ws_client",
			"remote":    conn.RemoteAddr().String(),
		}),
	}

	seed := engine.ResolveSeed(s.cfg.Seed)
	c.log = c.log.WithField("seed", seed)
	c.Game = engine.NewService(s.cfg, s.store, s.tables, engine.NewRng(seed), engine.RendererFunc(c.push))
	return c
}

// push кладёт кадр в очередь отправки. Если клиент не успевает читать, кадр теряется:
// следующий кадр всё равно содержит полное состояние.
func (c *Client) push(resp api.ServerResponse) {
	select {
	case c.Send <- resp:
	default:
		c.log.WithField("type", resp.Type).Warn("Send buffer full, frame dropped")
	}
}

func (c *Client) pushError(err error) {
	c.push(api.ServerResponse{Type: api.ResponseError, Error: err.Error()})
}

// readPump читает команды от клиента и прогоняет их через движок
func (c *Client) readPump() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer c.server.untrack(c)

	if !c.server.acquire(c.Game) {
		c.log.Warn("Game slot is busy, rejecting client")
		c.push(api.ServerResponse{Type: api.ResponseError, Error: "server busy"})
		close(c.Send)
		return
	}

	defer func() {
		c.server.withGame(func(*engine.GameService) {
			// Обрыв связи посреди партии сохраняет её так же, как выход в меню
			if !c.Game.InMenu() {
				if err := c.Game.Save(ctx); err != nil {
					c.log.WithError(err).Error("Autosave on disconnect failed")
				}
			}
		})
		c.server.release(c.Game)
		close(c.Send)
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection")
		}
		c.log.Info("Client disconnected")
	}()

	c.Conn.SetReadLimit(maxMessageSize)
	if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		c.log.WithError(err).Warn("failed to set read deadline")
	}
	c.Conn.SetPongHandler(func(string) error {
		if err := c.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
			c.log.WithError(err).Warn("failed to set pong read deadline")
		}
		return nil
	})

	c.log.Info("Client connected")
	c.server.withGame(func(*engine.GameService) { c.Game.Start() })

	for {
		var cmd api.ClientCommand
		if err := c.Conn.ReadJSON(&cmd); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.WithError(err).Error("WS read error")
			}
			return
		}

		intent, err := DecodeIntent(cmd)
		if err != nil {
			c.log.WithError(err).WithField("action", cmd.Action).Debug("Rejected command")
			c.pushError(err)
			continue
		}

		var quit bool
		c.server.withGame(func(*engine.GameService) {
			quit, err = c.Game.Handle(ctx, intent)
		})
		if err != nil {
			c.log.WithError(err).WithField("intent", intent.Kind).Debug("Intent rejected")
			c.pushError(err)
		}
		if quit {
			c.push(api.ServerResponse{Type: api.ResponseBye})
			return
		}
	}
}

// writePump отправляет данные клиенту + Ping
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		if err := c.Conn.Close(); err != nil {
			c.log.WithError(err).Debug("failed to close websocket connection in writePump")
		}
	}()

	for {
		select {
		case message, ok := <-c.Send:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set write deadline")
			}
			if !ok {
				if err := c.Conn.WriteMessage(websocket.CloseMessage, []byte{}); err != nil {
					c.log.WithError(err).Debug("write close message failed")
				}
				return
			}
			if err := c.Conn.WriteJSON(message); err != nil {
				c.log.WithError(err).Debug("write json message failed")
				return
			}

		case <-ticker.C:
			if err := c.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.log.WithError(err).Warn("failed to set ping write deadline")
			}
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.log.WithError(err).Debug("ping failed")
				return
			}
		}
	}
}
