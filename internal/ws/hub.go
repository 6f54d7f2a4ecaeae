// Package ws is the WebSocket transport for the seat-hold coordinator.  It
// keeps the set of live connections and their group memberships and
// implements the hub.Broadcaster interface the coordinator pushes through.
package ws

import (
    "crypto/rand"
    "encoding/hex"
    "log"
    "sync"
)

// Hub tracks connected clients and their broadcast groups.  Groups are
// keyed by the show's group token; membership changes and sends take a
// read-write mutex so many broadcasts can fan out concurrently.
type Hub struct {
    mu      sync.RWMutex
    clients map[string]*Client            // connection id -> client
    groups  map[string]map[string]*Client // group -> connection id -> client
}

// NewHub returns an empty connection hub.
func NewHub() *Hub {
    return &Hub{
        clients: make(map[string]*Client),
        groups:  make(map[string]map[string]*Client),
    }
}

// register adds a freshly upgraded client to the hub.
func (h *Hub) register(c *Client) {
    h.mu.Lock()
    defer h.mu.Unlock()
    h.clients[c.ID] = c
}

// unregister removes a client from the hub and from every group it joined,
// closing its send channel exactly once.  Safe to call more than once.
func (h *Hub) unregister(connID string) {
    h.mu.Lock()
    defer h.mu.Unlock()
    c, ok := h.clients[connID]
    if !ok {
        return
    }
    delete(h.clients, connID)
    for group, members := range h.groups {
        delete(members, connID)
        if len(members) == 0 {
            delete(h.groups, group)
        }
    }
    close(c.send)
}

// AddToGroup subscribes a connection to a broadcast group.  Unknown
// connections are ignored; the caller may already have disconnected.
func (h *Hub) AddToGroup(group, connID string) {
    h.mu.Lock()
    defer h.mu.Unlock()
    c, ok := h.clients[connID]
    if !ok {
        return
    }
    members, ok := h.groups[group]
    if !ok {
        members = make(map[string]*Client)
        h.groups[group] = members
    }
    members[connID] = c
}

// RemoveFromGroup drops a connection from a group.
func (h *Hub) RemoveFromGroup(group, connID string) {
    h.mu.Lock()
    defer h.mu.Unlock()
    members, ok := h.groups[group]
    if !ok {
        return
    }
    delete(members, connID)
    if len(members) == 0 {
        delete(h.groups, group)
    }
}

// SendToGroup pushes an event to every member of a group.  The frame is
// encoded once; a member whose outbound buffer is full is dropped rather
// than allowed to stall the broadcast.
func (h *Hub) SendToGroup(group, event string, payload interface{}) {
    frame, err := encodeFrame(event, payload)
    if err != nil {
        log.Printf("ws: encode %s frame: %v", event, err)
        return
    }
    // Deliver under the read lock: unregister closes send channels under
    // the write lock, so a frame can never race a channel close.
    h.mu.RLock()
    defer h.mu.RUnlock()
    for _, c := range h.groups[group] {
        h.deliver(c, frame)
    }
}

// SendToCaller pushes an event to one connection.
func (h *Hub) SendToCaller(connID, event string, payload interface{}) {
    frame, err := encodeFrame(event, payload)
    if err != nil {
        log.Printf("ws: encode %s frame: %v", event, err)
        return
    }
    h.mu.RLock()
    defer h.mu.RUnlock()
    if c := h.clients[connID]; c != nil {
        h.deliver(c, frame)
    }
}

// deliver enqueues a frame without blocking.  Slow consumers lose their
// connection; the client will reconnect and rejoin.
func (h *Hub) deliver(c *Client, frame []byte) {
    select {
    case c.send <- frame:
    default:
        log.Printf("ws: send buffer full, dropping connection %s", c.ID)
        c.conn.Close()
    }
}

// newConnID returns a random 16-byte hex token used to identify one
// connection for its lifetime.
func newConnID() string {
    b := make([]byte, 16)
    if _, err := rand.Read(b); err != nil {
        // crypto/rand failing is unrecoverable for the process anyway.
        panic(err)
    }
    return hex.EncodeToString(b)
}
