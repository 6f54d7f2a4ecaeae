package handler

import (
    "context"       // passing request contexts to the store and publisher
    "database/sql"   // sentinel errors from the seat store
    "errors"         // errors.Is comparisons
    "net/http"       // HTTP status codes
    "strconv"        // parsing path parameters
    "time"           // event timestamps

    "github.com/labstack/echo/v4" // Echo web framework

    "github.com/cinebook/seathub/internal/model" // seat status identifiers
    "github.com/cinebook/seathub/internal/queue" // event payloads
)

// HoldReader exposes the coordinator's read-only hold snapshot.  The
// seat-hold coordinator satisfies it.
type HoldReader interface {
    HeldSeats(showID uint64) []uint64
}

// SeatStatusFinder looks up the durable status of one seat so the override
// endpoint can reject unknown show/seat pairs before publishing.
type SeatStatusFinder interface {
    SeatStatus(ctx context.Context, showID, seatID uint64) (string, error)
}

// SeatHandler serves the read-only hold snapshot and the internal seat
// status override.  The override never mutates the coordinator directly: it
// publishes to the broker and the local consumer applies it, so every
// instance behind the load balancer converges on the same state.
type SeatHandler struct {
    Holds   HoldReader
    Store   SeatStatusFinder
    Publish func(ctx context.Context, event queue.SeatStatusChangedEvent) error
}

// NewSeatHandler constructs a SeatHandler.  All dependencies must be
// non-nil.
func NewSeatHandler(holds HoldReader, store SeatStatusFinder, publish func(context.Context, queue.SeatStatusChangedEvent) error) *SeatHandler {
    if holds == nil || store == nil || publish == nil {
        panic("nil dependency passed to NewSeatHandler")
    }
    return &SeatHandler{Holds: holds, Store: store, Publish: publish}
}

// HeldSeats handles GET /v1/shows/:id/held-seats.  It returns the seat ids
// currently held in memory for the show.  The list is advisory: durable
// truth lives in the booking store and wins at confirmation time.
func (h *SeatHandler) HeldSeats(c echo.Context) error {
    showID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || showID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
    }
    return c.JSON(http.StatusOK, echo.Map{
        "show_id":       showID,
        "held_seat_ids": h.Holds.HeldSeats(showID),
    })
}

// OverrideSeatStatus handles POST /v1/shows/:id/seats/:seat_id/status.  It
// validates the target seat against the durable store, then publishes an
// authoritative status-change event.  Requires the OWNER role (enforced by
// route middleware).  Responds 202 because the change is applied
// asynchronously by the consumer.
func (h *SeatHandler) OverrideSeatStatus(c echo.Context) error {
    showID, err := strconv.ParseUint(c.Param("id"), 10, 64)
    if err != nil || showID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid show id"})
    }
    seatID, err := strconv.ParseUint(c.Param("seat_id"), 10, 64)
    if err != nil || seatID == 0 {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
    }
    var body struct {
        StatusID uint32 `json:"status_id"`
        Reason   string `json:"reason"`
    }
    if err := c.Bind(&body); err != nil {
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
    }
    switch body.StatusID {
    case model.SeatStatusIDFree, model.SeatStatusIDHeld, model.SeatStatusIDReserved:
    default:
        return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status id"})
    }

    ctx := c.Request().Context()
    if _, err := h.Store.SeatStatus(ctx, showID, seatID); err != nil {
        if errors.Is(err, sql.ErrNoRows) {
            return c.JSON(http.StatusNotFound, echo.Map{"error": "seat not found for show"})
        }
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }

    reason := body.Reason
    if reason == "" {
        reason = "admin_override"
    }
    event := queue.SeatStatusChangedEvent{
        ShowID:    showID,
        SeatID:    seatID,
        StatusID:  body.StatusID,
        Reason:    reason,
        ChangedAt: time.Now().UTC().Format(time.RFC3339),
    }
    if err := h.Publish(ctx, event); err != nil {
        return c.JSON(http.StatusBadGateway, echo.Map{"error": "failed to publish status change"})
    }
    return c.JSON(http.StatusAccepted, echo.Map{
        "show_id":   showID,
        "seat_id":   seatID,
        "status_id": body.StatusID,
    })
}
