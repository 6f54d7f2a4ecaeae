package queue

import (
    "testing"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

type appliedChange struct {
    ShowID, SeatID uint64
    StatusID       uint32
}

type recordingApplier struct {
    applied []appliedChange
}

func (r *recordingApplier) NotifySeatStatusChanged(showID, seatID uint64, statusID uint32) {
    r.applied = append(r.applied, appliedChange{ShowID: showID, SeatID: seatID, StatusID: statusID})
}

func TestHandleMessageAppliesEvent(t *testing.T) {
    applier := &recordingApplier{}
    body := []byte(`{"show_id":5,"seat_id":10,"status_id":3,"reason":"booking_confirmed","changed_at":"2026-08-28T10:00:00Z"}`)

    require.NoError(t, handleMessage(body, applier))

    require.Len(t, applier.applied, 1)
    assert.Equal(t, appliedChange{ShowID: 5, SeatID: 10, StatusID: 3}, applier.applied[0])
}

func TestHandleMessageRejectsMalformedJSON(t *testing.T) {
    applier := &recordingApplier{}
    assert.Error(t, handleMessage([]byte(`{not json`), applier))
    assert.Empty(t, applier.applied)
}

func TestHandleMessageRejectsIncompleteEvent(t *testing.T) {
    applier := &recordingApplier{}
    assert.Error(t, handleMessage([]byte(`{"show_id":5}`), applier))
    assert.Error(t, handleMessage([]byte(`{"seat_id":10}`), applier))
    assert.Empty(t, applier.applied)
}
