package ws

import (
	"context"
	"encoding/json"
	"time"

	"restaurant/entity"
	"restaurant/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
)

// TableEvent is what floor clients receive on every table status change.
type TableEvent struct {
	ID          uint   `json:"id"`
	TableNumber int    `json:"table_number"`
	Capacity    int    `json:"capacity"`
	Status      string `json:"status"`
}

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// FloorHub fans table updates out to every connected floor screen.
// Run owns the client set; everything else talks to it through channels.
type FloorHub struct {
	clients    map[*client]bool
	broadcast  chan []byte
	register   chan *client
	unregister chan *client
	done       chan struct{}
}

func NewFloorHub() *FloorHub {
	return &FloorHub{
		clients:    make(map[*client]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
	}
}

// Run serves register/unregister/broadcast until ctx is done.
func (h *FloorHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for c := range h.clients {
				close(c.send)
				delete(h.clients, c)
			}
			return

		case c := <-h.register:
			h.clients[c] = true

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				delete(h.clients, c)
				close(c.send)
			}

		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// too slow to keep up; it reconnects and reloads the floor
					delete(h.clients, c)
					close(c.send)
				}
			}
		}
	}
}

// TableChanged queues a table update. It never blocks the caller.
func (h *FloorHub) TableChanged(t entity.Table) {
	msg, err := json.Marshal(TableEvent{
		ID:          t.ID,
		TableNumber: t.TableNumber,
		Capacity:    t.Capacity,
		Status:      t.Status,
	})
	if err != nil {
		logrus.WithError(err).Warn("marshal table event")
		return
	}
	select {
	case h.broadcast <- msg:
	default:
		logrus.WithField("table_id", t.ID).Warn("floor feed backlog full, update dropped")
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// WS route: /ws/tables
func (h *FloorHub) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("ws upgrade")
		return
	}

	cl := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- cl:
	case <-h.done:
		conn.Close()
		return
	}

	go h.writePump(cl)
	go h.readPump(cl)
}

// readPump only drains control frames; floor clients never send data.
func (h *FloorHub) readPump(cl *client) {
	defer func() {
		select {
		case h.unregister <- cl:
		case <-h.done:
		}
		cl.conn.Close()
	}()

	cl.conn.SetReadLimit(512)
	cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logrus.WithError(err).Debug("ws read")
			}
			return
		}
	}
}

func (h *FloorHub) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		cl.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-cl.send:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				logrus.WithError(err).Debug("ws write")
				return
			}

		case <-ticker.C:
			cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

var _ services.TableNotifier = (*FloorHub)(nil)
