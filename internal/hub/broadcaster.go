package hub

import "context"

// Event names pushed to connected clients.  The transport layer serializes
// the payload and delivers the frame; the coordinator only decides who
// receives what.
const (
    EventHeldSeats         = "held_seats"
    EventAccountInUse      = "account_in_use"
    EventSeatSelected      = "seat_selected"
    EventSeatDeselected    = "seat_deselected"
    EventSeatStatusChanged = "seat_status_changed"
)

// Broadcaster abstracts the stateful connection layer (group membership and
// push delivery) so the coordinator stays transport-agnostic and can be unit
// tested with a fake.  Delivery is fire-and-forget from the coordinator's
// perspective; guarantees belong to the implementation.
type Broadcaster interface {
    // AddToGroup subscribes a connection to a broadcast group.
    AddToGroup(group, connID string)
    // RemoveFromGroup unsubscribes a connection from a broadcast group.
    RemoveFromGroup(group, connID string)
    // SendToGroup pushes an event to every member of a group.
    SendToGroup(group, event string, payload interface{})
    // SendToCaller pushes an event to a single connection.
    SendToCaller(connID, event string, payload interface{})
}

// SeatStatusStore exposes the authoritative persisted seat state.  The
// coordinator owns only a transient overlay; booked/available truth lives in
// the external store and is cross-checked during join sweeps.
type SeatStatusStore interface {
    // UnavailableSeats returns the ids of seats that are not available
    // (held or reserved) for the given show according to durable state.
    UnavailableSeats(ctx context.Context, showID uint64) ([]uint64, error)
}

// HeldSeatsPayload is sent privately to a joining caller so the client can
// pre-render seats currently claimed by others.
type HeldSeatsPayload struct {
    SeatIDs []uint64 `json:"seat_ids"`
}

// SeatPayload carries a single seat id for select/deselect broadcasts.
type SeatPayload struct {
    SeatID uint64 `json:"seat_id"`
}

// SeatStatusPayload announces an authoritative status override for a seat.
type SeatStatusPayload struct {
    SeatID   uint64 `json:"seat_id"`
    StatusID uint32 `json:"status_id"`
}
