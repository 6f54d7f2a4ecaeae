package ws

import (
    "context"
    "encoding/json"
    "log"
    "time"

    "github.com/gorilla/websocket"
)

const (
    writeWait      = 10 * time.Second    // deadline for a single outbound write
    pongWait       = 60 * time.Second    // how long we wait for a pong before dropping
    pingPeriod     = (pongWait * 9) / 10 // must be shorter than pongWait
    maxMessageSize = 512                 // inbound frames are tiny operation envelopes
    sendBuffer     = 32                  // per-client outbound queue
)

// SeatOps is the set of coordinator operations reachable from a socket.
// *hub.Coordinator satisfies it; tests substitute a recorder.
type SeatOps interface {
    JoinShowtime(ctx context.Context, connID, accountID string, showID uint64)
    SelectSeat(connID, accountID string, showID, seatID uint64)
    DeselectSeat(connID, accountID string, showID, seatID uint64)
    NotifySeatStatusChanged(showID, seatID uint64, statusID uint32)
    Disconnect(connID string)
}

// Client represents one connected socket.  AccountID is empty for
// connections that presented no valid token; the coordinator degrades their
// mutating operations to no-ops.
type Client struct {
    ID        string
    AccountID string

    hub  *Hub
    ops  SeatOps
    conn *websocket.Conn
    send chan []byte
}

// Serve attaches a freshly upgraded connection to the hub and runs its read
// loop until the peer goes away.  It blocks, so the HTTP handler's goroutine
// becomes the read pump.
func Serve(h *Hub, ops SeatOps, conn *websocket.Conn, accountID string) {
    c := &Client{
        ID:        newConnID(),
        AccountID: accountID,
        hub:       h,
        ops:       ops,
        conn:      conn,
        send:      make(chan []byte, sendBuffer),
    }
    h.register(c)
    go c.writePump()
    c.readPump()
}

// readPump consumes inbound frames and dispatches them to the coordinator.
// On exit (peer close, read error, oversized frame) it tears the connection
// down: coordinator disconnect first so the session registration is freed,
// then hub unregister which closes the send channel and stops writePump.
func (c *Client) readPump() {
    defer func() {
        c.ops.Disconnect(c.ID)
        c.hub.unregister(c.ID)
        c.conn.Close()
    }()
    c.conn.SetReadLimit(maxMessageSize)
    _ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
    c.conn.SetPongHandler(func(string) error {
        return c.conn.SetReadDeadline(time.Now().Add(pongWait))
    })
    for {
        _, raw, err := c.conn.ReadMessage()
        if err != nil {
            if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
                log.Printf("ws: read error on %s: %v", c.ID, err)
            }
            return
        }
        var f Frame
        if err := json.Unmarshal(raw, &f); err != nil {
            log.Printf("ws: bad frame from %s: %v", c.ID, err)
            continue
        }
        c.handle(f)
    }
}

// handle routes one inbound frame to the matching coordinator operation.
// Frames with a missing id or an unknown event name are ignored.
func (c *Client) handle(f Frame) {
    switch f.Event {
    case eventJoinShowtime:
        if f.ShowtimeID == 0 {
            return
        }
        c.ops.JoinShowtime(context.Background(), c.ID, c.AccountID, f.ShowtimeID)
    case eventSelectSeat:
        if f.ShowtimeID == 0 || f.SeatID == 0 {
            return
        }
        c.ops.SelectSeat(c.ID, c.AccountID, f.ShowtimeID, f.SeatID)
    case eventDeselectSeat:
        if f.ShowtimeID == 0 || f.SeatID == 0 {
            return
        }
        c.ops.DeselectSeat(c.ID, c.AccountID, f.ShowtimeID, f.SeatID)
    case eventNotifySeatStatus:
        // Invoked by back-office clients when a booking lands; the same
        // operation also arrives via the broker consumer for changes made
        // by other services.  Like every mutating operation, it requires a
        // resolved identity: an anonymous connection must not be able to
        // clear other accounts' holds.
        if c.AccountID == "" || f.ShowtimeID == 0 || f.SeatID == 0 {
            return
        }
        c.ops.NotifySeatStatusChanged(f.ShowtimeID, f.SeatID, f.StatusID)
    }
}

// writePump drains the send channel to the socket and keeps the connection
// alive with periodic pings.  It exits when the send channel is closed by
// unregister or when a write fails.
func (c *Client) writePump() {
    ticker := time.NewTicker(pingPeriod)
    defer func() {
        ticker.Stop()
        c.conn.Close()
    }()
    for {
        select {
        case frame, ok := <-c.send:
            _ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
            if !ok {
                _ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
                return
            }
            if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
                return
            }
        case <-ticker.C:
            _ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
            if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
                return
            }
        }
    }
}
