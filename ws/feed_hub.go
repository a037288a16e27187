package ws

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/dhbw-mensa/backend/entity"
	"github.com/dhbw-mensa/backend/pkg/forms"
	"github.com/dhbw-mensa/backend/pkg/logger"
	"github.com/dhbw-mensa/backend/pkg/resp"
	"github.com/dhbw-mensa/backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 16
)

// FeedHub fans rating events out to the websocket clients watching a
// location's plan for one day.
type FeedHub struct {
	clients    map[string]map[*client]bool // channel -> clients
	broadcast  chan services.RatingEvent
	register   chan *client
	unregister chan *client
	done       chan struct{}
	mu         sync.RWMutex
	log        *logger.Logger
	now        func() time.Time
}

type client struct {
	conn    *websocket.Conn
	channel string
	send    chan services.RatingEvent
}

func NewFeedHub(log *logger.Logger) *FeedHub {
	return &FeedHub{
		clients:    make(map[string]map[*client]bool),
		broadcast:  make(chan services.RatingEvent, 64),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		log:        log.With("service", "FeedHub"),
		now:        time.Now,
	}
}

// Run serves register, unregister and broadcast until ctx is done.
func (h *FeedHub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			h.mu.Lock()
			for _, set := range h.clients {
				for cl := range set {
					close(cl.send)
				}
			}
			h.clients = make(map[string]map[*client]bool)
			h.mu.Unlock()
			return

		case cl := <-h.register:
			h.mu.Lock()
			if h.clients[cl.channel] == nil {
				h.clients[cl.channel] = make(map[*client]bool)
			}
			h.clients[cl.channel][cl] = true
			h.mu.Unlock()

		case cl := <-h.unregister:
			h.mu.Lock()
			h.dropLocked(cl)
			h.mu.Unlock()

		case ev := <-h.broadcast:
			h.mu.Lock()
			for cl := range h.clients[ev.Channel()] {
				select {
				case cl.send <- ev:
				default:
					// slow reader, drop it
					h.dropLocked(cl)
				}
			}
			h.mu.Unlock()
		}
	}
}

// dropLocked removes cl and, with it, an emptied channel set. h.mu must be held.
func (h *FeedHub) dropLocked(cl *client) {
	set, ok := h.clients[cl.channel]
	if !ok || !set[cl] {
		return
	}
	delete(set, cl)
	close(cl.send)
	if len(set) == 0 {
		delete(h.clients, cl.channel)
	}
}

// Deliver queues ev for local subscribers. It never blocks the caller.
func (h *FeedHub) Deliver(ev services.RatingEvent) {
	select {
	case h.broadcast <- ev:
	default:
		h.log.Warn("feed broadcast queue full, event dropped", "channel", ev.Channel())
	}
}

// Subscribers counts the clients on a channel.
func (h *FeedHub) Subscribers(channel string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[channel])
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleFeed upgrades GET /home/feed?locationId=&date= to a websocket.
func (h *FeedHub) HandleFeed(c *gin.Context) {
	locID, err := strconv.ParseUint(c.Query("locationId"), 10, 64)
	if err != nil || locID == 0 {
		resp.Error(c, forms.Invalid("locationId", "must be selected"))
		return
	}
	date := h.now().Format(entity.DateLayout)
	if raw := c.Query("date"); raw != "" {
		d, err := forms.Date("date", raw)
		if err != nil {
			resp.Error(c, err)
			return
		}
		date = d.Format(entity.DateLayout)
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("ws upgrade failed", "error", err)
		return
	}

	cl := &client{
		conn:    conn,
		channel: services.FeedChannel(uint(locID), date),
		send:    make(chan services.RatingEvent, sendBuffer),
	}
	select {
	case h.register <- cl:
	case <-h.done:
		_ = conn.Close()
		return
	}

	go h.writePump(cl)
	go h.readPump(cl)
}

// readPump only watches for the client going away.
func (h *FeedHub) readPump(cl *client) {
	defer func() {
		select {
		case h.unregister <- cl:
		case <-h.done:
		}
	}()

	cl.conn.SetReadLimit(512)
	_ = cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	cl.conn.SetPongHandler(func(string) error {
		return cl.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := cl.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("ws read error", "error", err)
			}
			return
		}
	}
}

func (h *FeedHub) writePump(cl *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = cl.conn.Close()
	}()

	for {
		select {
		case ev, ok := <-cl.send:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = cl.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := cl.conn.WriteJSON(ev); err != nil {
				h.log.Debug("ws write error", "error", err)
				return
			}
		case <-ticker.C:
			_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := cl.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
