package handler

import (
    "log"
    "net/http"

    "github.com/gorilla/websocket"
    "github.com/labstack/echo/v4"

    "github.com/cinebook/seathub/internal/middleware"
    "github.com/cinebook/seathub/internal/ws"
)

// upgrader performs the HTTP -> WebSocket upgrade.  Origin is not checked
// here; the edge proxy terminates TLS and enforces allowed origins before
// requests reach this service.
var upgrader = websocket.Upgrader{
    ReadBufferSize:  1024,
    WriteBufferSize: 1024,
    CheckOrigin:     func(*http.Request) bool { return true },
}

// RealtimeHandler upgrades seat-selection connections and hands them to the
// ws hub.  Identity is resolved from the handshake token; connections with
// no valid token are still accepted but can only observe.
type RealtimeHandler struct {
    Hub       *ws.Hub
    Ops       ws.SeatOps
    JWTSecret string
}

// NewRealtimeHandler constructs a RealtimeHandler.  Hub and ops must be
// non-nil.
func NewRealtimeHandler(h *ws.Hub, ops ws.SeatOps, jwtSecret string) *RealtimeHandler {
    if h == nil || ops == nil {
        panic("nil dependency passed to NewRealtimeHandler")
    }
    return &RealtimeHandler{Hub: h, Ops: ops, JWTSecret: jwtSecret}
}

// Connect handles GET /ws.  It resolves the caller's account from the
// handshake, upgrades the connection and blocks as the connection's read
// pump until the peer goes away.
func (h *RealtimeHandler) Connect(c echo.Context) error {
    accountID := middleware.AccountID(c, h.JWTSecret)
    conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
    if err != nil {
        // Upgrade already wrote an HTTP error response to the client.
        log.Printf("ws: upgrade failed: %v", err)
        return nil
    }
    ws.Serve(h.Hub, h.Ops, conn, accountID)
    return nil
}
