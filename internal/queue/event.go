// Package queue contains the message payloads and the background consumer
// for authoritative seat-status traffic on the broker.
package queue

// SeatStatusChangedEvent is published whenever the durable status of a seat
// changes outside the realtime layer: a booking was confirmed, a payment
// expired, or an operator overrode the seat.  The realtime consumer applies
// it to the coordinator, which drops any in-memory hold for that seat and
// broadcasts the new status to everyone viewing the show.
type SeatStatusChangedEvent struct {
    ShowID    uint64 `json:"show_id"`
    SeatID    uint64 `json:"seat_id"`
    StatusID  uint32 `json:"status_id"`
    Reason    string `json:"reason,omitempty"`
    ChangedAt string `json:"changed_at"`
}
