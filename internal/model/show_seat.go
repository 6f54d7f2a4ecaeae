package model

import "time"

// Durable seat statuses as stored in the show_seats table.  The realtime
// layer never writes these; it only reads them to decide which seats to
// report as occupied.
const (
    SeatStatusFree     = "FREE"
    SeatStatusHeld     = "HELD"
    SeatStatusReserved = "RESERVED"
)

// Numeric status identifiers carried by authoritative seat-status-changed
// events.  The booking service publishes these; clients map them to their
// own rendering.
const (
    SeatStatusIDFree     uint32 = 1
    SeatStatusIDHeld     uint32 = 2
    SeatStatusIDReserved uint32 = 3
)

// ShowSeat links a seat to a particular show and tracks availability and
// pricing.  There is one show_seat record for every seat in a hall when a
// show is created.  The booking service owns writes to this table; the
// realtime layer only reads it during join sweeps.
//
// Fields:
//  ID         – primary key identifier.
//  ShowID     – the show to which this seat belongs.
//  SeatID     – the seat being made available.
//  Status     – availability status (FREE, HELD, RESERVED).
//  PriceCents – price in cents for this particular seat.
//  Version    – optimistic locking field used by the booking service.
//  CreatedAt  – timestamp when the record was created.
//  UpdatedAt  – timestamp when the record was last updated.
type ShowSeat struct {
    ID         uint64    // show_seats.id
    ShowID     uint64    // show_seats.show_id
    SeatID     uint64    // show_seats.seat_id
    Status     string    // show_seats.status
    PriceCents uint32    // show_seats.price_cents
    Version    uint32    // show_seats.version
    CreatedAt  time.Time // show_seats.created_at
    UpdatedAt  time.Time // show_seats.updated_at
}
