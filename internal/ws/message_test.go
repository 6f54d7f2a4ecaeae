package ws

import (
    "context"
    "encoding/json"
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/cinebook/seathub/internal/hub"
)

func TestEncodeFrame(t *testing.T) {
    raw, err := encodeFrame(hub.EventSeatSelected, hub.SeatPayload{SeatID: 10})
    require.NoError(t, err)
    assert.JSONEq(t, `{"event":"seat_selected","data":{"seat_id":10}}`, string(raw))

    raw, err = encodeFrame(hub.EventHeldSeats, hub.HeldSeatsPayload{SeatIDs: []uint64{3, 10}})
    require.NoError(t, err)
    assert.JSONEq(t, `{"event":"held_seats","data":{"seat_ids":[3,10]}}`, string(raw))
}

func TestFrameDecoding(t *testing.T) {
    var f Frame
    require.NoError(t, json.Unmarshal([]byte(`{"event":"select_seat","showtime_id":5,"seat_id":10}`), &f))
    assert.Equal(t, Frame{Event: "select_seat", ShowtimeID: 5, SeatID: 10}, f)
}

// opCall records one dispatched coordinator operation.
type opCall struct {
    Op                string
    ConnID, AccountID string
    ShowID, SeatID    uint64
    StatusID          uint32
}

type recordingOps struct {
    calls []opCall
}

func (r *recordingOps) JoinShowtime(_ context.Context, connID, accountID string, showID uint64) {
    r.calls = append(r.calls, opCall{Op: "join", ConnID: connID, AccountID: accountID, ShowID: showID})
}

func (r *recordingOps) SelectSeat(connID, accountID string, showID, seatID uint64) {
    r.calls = append(r.calls, opCall{Op: "select", ConnID: connID, AccountID: accountID, ShowID: showID, SeatID: seatID})
}

func (r *recordingOps) DeselectSeat(connID, accountID string, showID, seatID uint64) {
    r.calls = append(r.calls, opCall{Op: "deselect", ConnID: connID, AccountID: accountID, ShowID: showID, SeatID: seatID})
}

func (r *recordingOps) NotifySeatStatusChanged(showID, seatID uint64, statusID uint32) {
    r.calls = append(r.calls, opCall{Op: "notify", ShowID: showID, SeatID: seatID, StatusID: statusID})
}

func (r *recordingOps) Disconnect(connID string) {
    r.calls = append(r.calls, opCall{Op: "disconnect", ConnID: connID})
}

func TestClientDispatch(t *testing.T) {
    ops := &recordingOps{}
    c := &Client{ID: "conn-1", AccountID: "A1", ops: ops}

    c.handle(Frame{Event: eventJoinShowtime, ShowtimeID: 5})
    c.handle(Frame{Event: eventSelectSeat, ShowtimeID: 5, SeatID: 10})
    c.handle(Frame{Event: eventDeselectSeat, ShowtimeID: 5, SeatID: 10})
    c.handle(Frame{Event: eventNotifySeatStatus, ShowtimeID: 5, SeatID: 10, StatusID: 3})

    require.Len(t, ops.calls, 4)
    assert.Equal(t, opCall{Op: "join", ConnID: "conn-1", AccountID: "A1", ShowID: 5}, ops.calls[0])
    assert.Equal(t, opCall{Op: "select", ConnID: "conn-1", AccountID: "A1", ShowID: 5, SeatID: 10}, ops.calls[1])
    assert.Equal(t, opCall{Op: "deselect", ConnID: "conn-1", AccountID: "A1", ShowID: 5, SeatID: 10}, ops.calls[2])
    assert.Equal(t, opCall{Op: "notify", ShowID: 5, SeatID: 10, StatusID: 3}, ops.calls[3])
}

func TestClientDispatchAnonymousNotifyIgnored(t *testing.T) {
    ops := &recordingOps{}
    c := &Client{ID: "conn-1", AccountID: "", ops: ops}

    c.handle(Frame{Event: eventNotifySeatStatus, ShowtimeID: 5, SeatID: 10, StatusID: 3})

    assert.Empty(t, ops.calls, "a connection without identity must not override seat status")
}

func TestClientDispatchIgnoresMalformedFrames(t *testing.T) {
    ops := &recordingOps{}
    c := &Client{ID: "conn-1", AccountID: "A1", ops: ops}

    c.handle(Frame{Event: eventJoinShowtime})                // missing showtime id
    c.handle(Frame{Event: eventSelectSeat, ShowtimeID: 5})   // missing seat id
    c.handle(Frame{Event: eventDeselectSeat, SeatID: 10})    // missing showtime id
    c.handle(Frame{Event: "unknown", ShowtimeID: 5, SeatID: 1})

    assert.Empty(t, ops.calls)
}
