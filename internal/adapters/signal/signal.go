// Package signal is the WebSocket edge: it upgrades connections, routes
// inbound events to the room service and delivers the outbound sets it
// computes. All room state lives behind the service; this package only owns
// sockets.
package signal

import (
	"context"
	"errors"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"giftroom/internal/app"
	"giftroom/internal/config"
	"giftroom/internal/domain"
)

var ErrBackpressure = errors.New("backpressure")

type Controller struct {
	svc *app.RoomService
	cfg *config.Config

	mu    sync.RWMutex
	conns map[domain.ConnID]*wsConn
}

func NewController(svc *app.RoomService, cfg *config.Config) *Controller {
	return &Controller{
		svc:   svc,
		cfg:   cfg,
		conns: make(map[domain.ConnID]*wsConn),
	}
}

type wsConn struct {
	conn *websocket.Conn
	send chan []byte

	mu     sync.RWMutex
	closed bool
}

func (c *wsConn) TrySend(data []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- data:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *wsConn) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
	c.mu.Unlock()
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWS upgrades the request and starts the pumps. Each socket gets a
// fresh connection id; there is no session resumption.
func (ctl *Controller) HandleWS(ctx context.Context, c *gin.Context) {
	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error().Err(err).Str("module", "signal").Msg("ws upgrade")
		return
	}
	ws.SetReadLimit(ctl.cfg.ReadLimit)

	id := domain.ConnID(uuid.NewString())
	conn := &wsConn{
		conn: ws,
		send: make(chan []byte, ctl.cfg.SendBuffer),
	}

	ctl.mu.Lock()
	ctl.conns[id] = conn
	ctl.mu.Unlock()
	log.Info().Str("module", "signal").Str("conn", string(id)).Msg("new WS connection")

	go ctl.writePump(ctx, conn)
	go ctl.readPump(ctx, id, conn)
}

// drop tears the socket down and runs the leave flow exactly once.
func (ctl *Controller) drop(id domain.ConnID, c *wsConn) {
	ctl.mu.Lock()
	_, ok := ctl.conns[id]
	delete(ctl.conns, id)
	ctl.mu.Unlock()
	if !ok {
		return
	}
	c.Close()
	ctl.deliver(ctl.svc.Leave(id))
}

// deliver fans an outbound set out to its addressees, best-effort. Slow or
// gone receivers never stall the operation that produced the set.
func (ctl *Controller) deliver(outs []app.Outbound) {
	for _, o := range outs {
		ctl.mu.RLock()
		c, ok := ctl.conns[o.To]
		ctl.mu.RUnlock()
		if !ok {
			continue
		}
		ctl.sendJSON(c, o.Event)
	}
}
