package stream

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/jonboulle/clockwork"
	"golang.org/x/time/rate"

	"github.com/lixenwraith/orrery/logging"
	"github.com/lixenwraith/orrery/telemetry"
)

// client is one subscriber; the hub only ever writes to send
type client struct {
	id   uint64
	send chan []byte
}

// Hub fans encoded frames out to subscribers
// Publish never blocks: a client whose queue is full misses the frame
type Hub struct {
	mu      sync.Mutex
	clients map[uint64]*client
	nextID  uint64

	limiter    *rate.Limiter
	clock      clockwork.Clock
	maxClients int
	queueSize  int

	metrics *telemetry.Collector
	log     logging.Logger
}

// HubConfig sizes the hub
type HubConfig struct {
	RateHz     float64
	MaxClients int
	QueueSize  int
}

// NewHub creates a hub; a nil clock uses the real clock
func NewHub(cfg HubConfig, clock clockwork.Clock, metrics *telemetry.Collector, log logging.Logger) *Hub {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if log == nil {
		log = logging.Noop()
	}
	if cfg.MaxClients < 1 {
		cfg.MaxClients = 1
	}
	if cfg.QueueSize < 1 {
		cfg.QueueSize = 1
	}
	limit := rate.Inf
	if cfg.RateHz > 0 {
		limit = rate.Limit(cfg.RateHz)
	}
	return &Hub{
		clients:    make(map[uint64]*client),
		limiter:    rate.NewLimiter(limit, 1),
		clock:      clock,
		maxClients: cfg.MaxClients,
		queueSize:  cfg.QueueSize,
		metrics:    metrics,
		log:        log,
	}
}

// Publish encodes f and offers it to every client
// Returns false when the frame was rate limited or there is nobody listening
func (h *Hub) Publish(f Frame) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.clients) == 0 {
		return false
	}
	if !h.limiter.AllowN(h.clock.Now(), 1) {
		return false
	}

	data, err := json.Marshal(f)
	if err != nil {
		h.log.Error(context.Background(), "encode frame failed", logging.Err(err))
		return false
	}

	dropped := 0
	for _, c := range h.clients {
		select {
		case c.send <- data:
		default:
			dropped++
		}
	}
	h.metrics.AddDropped(dropped)
	return true
}

// ClientCount returns the number of live subscribers
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// add registers a new client, or returns nil when the hub is full
func (h *Hub) add() *client {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.clients) >= h.maxClients {
		return nil
	}
	h.nextID++
	c := &client{id: h.nextID, send: make(chan []byte, h.queueSize)}
	h.clients[c.id] = c
	h.metrics.SetStreamClients(len(h.clients))
	return c
}

// remove unregisters c and closes its queue; safe to call twice
func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c.id]; !ok {
		return
	}
	delete(h.clients, c.id)
	close(c.send)
	h.metrics.SetStreamClients(len(h.clients))
}

// closeAll drops every client, ending their writers
func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, c := range h.clients {
		delete(h.clients, id)
		close(c.send)
	}
	h.metrics.SetStreamClients(0)
}
