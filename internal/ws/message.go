package ws

import "encoding/json"

// Inbound operation names clients may invoke over the socket.
const (
    eventJoinShowtime     = "join_showtime"
    eventSelectSeat       = "select_seat"
    eventDeselectSeat     = "deselect_seat"
    eventNotifySeatStatus = "notify_seat_status_changed"
)

// Frame is the envelope for client-to-server messages.  Fields not used by
// a given operation are simply left zero by the client.
type Frame struct {
    Event      string `json:"event"`
    ShowtimeID uint64 `json:"showtime_id,omitempty"`
    SeatID     uint64 `json:"seat_id,omitempty"`
    StatusID   uint32 `json:"status_id,omitempty"`
}

// outFrame is the envelope for server-to-client pushes.  The payload types
// come from the hub package so the wire shape is defined in one place.
type outFrame struct {
    Event string      `json:"event"`
    Data  interface{} `json:"data"`
}

// encodeFrame serializes a push once so a group broadcast does not marshal
// per recipient.
func encodeFrame(event string, payload interface{}) ([]byte, error) {
    return json.Marshal(outFrame{Event: event, Data: payload})
}
