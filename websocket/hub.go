package websocket

import (
	"sync"

	"github.com/gorilla/websocket"
)

// Event types pushed to dashboard clients
const (
	EventTypeOrderCreated  = "order_created"
	EventTypeOrderUpdated  = "order_updated"
	EventTypeTicketCreated = "ticket_created"
	EventTypeTicketReplied = "ticket_replied"
)

// Event represents a message sent over WebSocket
type Event struct {
	Type    string      `json:"type"`
	Message string      `json:"message"`
	StoreID string      `json:"storeId,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Client represents a connected dashboard client
type Client struct {
	StoreID string
	Conn    *websocket.Conn

	// Guards Conn writes: gorilla connections support one concurrent writer
	writeMu sync.Mutex
}

func (c *Client) send(event Event) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	return c.Conn.WriteJSON(event)
}

// Hub maintains the set of active clients per store and broadcasts events
type Hub struct {
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.StoreID] == nil {
				h.clients[client.StoreID] = make(map[*Client]bool)
			}
			h.clients[client.StoreID][client] = true
			h.mu.Unlock()
		case client := <-h.unregister:
			h.mu.Lock()
			if storeClients, ok := h.clients[client.StoreID]; ok {
				if _, ok := storeClients[client]; ok {
					delete(storeClients, client)
					if len(storeClients) == 0 {
						delete(h.clients, client.StoreID)
					}
				}
			}
			client.Conn.Close()
			h.mu.Unlock()
		}
	}
}

// BroadcastToStore sends an event to every dashboard client of one store.
// Write failures are ignored; the reader goroutine unregisters dead clients.
func (h *Hub) BroadcastToStore(storeID string, event Event) {
	event.StoreID = storeID

	h.mu.RLock()
	defer h.mu.RUnlock()

	for client := range h.clients[storeID] {
		client.send(event)
	}
}

// NotifyOrderCreated pushes a new-order event to the store's dashboard.
func (h *Hub) NotifyOrderCreated(storeID string, orderData interface{}) {
	h.BroadcastToStore(storeID, Event{
		Type:    EventTypeOrderCreated,
		Message: "New order received",
		Data:    orderData,
	})
}

// NotifyOrderUpdated pushes an order status change.
func (h *Hub) NotifyOrderUpdated(storeID string, orderData interface{}) {
	h.BroadcastToStore(storeID, Event{
		Type:    EventTypeOrderUpdated,
		Message: "Order status updated",
		Data:    orderData,
	})
}

// NotifyTicketCreated pushes a new-ticket event.
func (h *Hub) NotifyTicketCreated(storeID string, ticketData interface{}) {
	h.BroadcastToStore(storeID, Event{
		Type:    EventTypeTicketCreated,
		Message: "New support ticket opened",
		Data:    ticketData,
	})
}

// NotifyTicketReplied pushes a ticket reply event.
func (h *Hub) NotifyTicketReplied(storeID string, ticketData interface{}) {
	h.BroadcastToStore(storeID, Event{
		Type:    EventTypeTicketReplied,
		Message: "Ticket received a reply",
		Data:    ticketData,
	})
}
