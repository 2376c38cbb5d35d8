package ws

import (
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Client is one websocket subscriber. An empty Account receives the
// deliveries of every account.
type Client struct {
	ID      string
	Account string
	Send    chan []byte
}

func (c *Client) wants(account string) bool {
	return account == "" || c.Account == "" || c.Account == account
}

type delivery struct {
	account string
	body    []byte
}

// Hub fans document deliveries out to the connected clients. Only Run
// mutates the client set; the mutex guards reads from Count.
type Hub struct {
	mu       sync.RWMutex
	clients  map[string]*Client // id -> client
	register chan *Client
	unreg    chan *Client
	publish  chan delivery

	log     *slog.Logger
	stop    chan struct{}
	stopped chan struct{}

	nextID atomic.Uint64
}

func NewHub(log *slog.Logger) *Hub {
	if log == nil {
		log = slog.Default()
	}
	return &Hub{
		clients:  make(map[string]*Client),
		register: make(chan *Client),
		unreg:    make(chan *Client),
		publish:  make(chan delivery, 1024),
		log:      log.With("cmp", "ws.hub"),
		stop:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}
}

func (h *Hub) newID() string {
	return fmt.Sprintf("c%d", h.nextID.Add(1))
}

func (h *Hub) Run() {
	h.log.Info("hub_run_start")
	defer close(h.stopped)

	for {
		select {
		case c := <-h.register:
			if c.ID == "" {
				c.ID = h.newID()
			}
			h.mu.Lock()
			h.clients[c.ID] = c
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Info("client_registered", "id", c.ID, "account", c.Account, "total", total)

		case c := <-h.unreg:
			if c == nil {
				continue
			}
			h.mu.Lock()
			if cur, ok := h.clients[c.ID]; ok && cur == c {
				h.remove(c)
			}
			total := len(h.clients)
			h.mu.Unlock()
			h.log.Info("client_unregistered", "id", c.ID, "total", total)

		case d := <-h.publish:
			h.fanOut(d)

		case <-h.stop:
			h.mu.Lock()
			for _, c := range h.clients {
				h.remove(c)
			}
			h.mu.Unlock()
			h.log.Info("hub_run_stop")
			return
		}
	}
}

func (h *Hub) fanOut(d delivery) {
	var slow []*Client
	sent := 0

	h.mu.RLock()
	for _, c := range h.clients {
		if !c.wants(d.account) {
			continue
		}
		select {
		case c.Send <- d.body:
			sent++
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	if len(slow) == 0 {
		h.log.Debug("delivery_relayed", "account", d.account, "clients", sent)
		return
	}
	// cliente lento -> dropa para não travar o hub
	h.mu.Lock()
	for _, c := range slow {
		h.remove(c)
		h.log.Warn("client_dropped_slow", "id", c.ID)
	}
	h.mu.Unlock()
}

// remove must run with h.mu held.
func (h *Hub) remove(c *Client) {
	delete(h.clients, c.ID)
	close(c.Send)
}

func (h *Hub) Stop() {
	close(h.stop)
	<-h.stopped
}

// Count returns the number of connected clients.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) Register(c *Client)   { h.register <- c }
func (h *Hub) Unregister(c *Client) { h.unreg <- c }

// Publish relays body to the clients subscribed to account.
func (h *Hub) Publish(account string, body []byte) { h.publish <- delivery{account: account, body: body} }

// Broadcast relays body to every client.
func (h *Hub) Broadcast(body []byte) { h.Publish("", body) }
