// Package hub implements the in-process seat-hold coordinator.  It tracks
// transient, per-show seat holds placed by connected clients and broadcasts
// hold/release/status events to every client viewing the same show.  All
// state is in-memory and process-wide; the durable seat truth lives in the
// external seat store and always wins at booking time.
package hub

import (
    "context"
    "log"
    "sort"
    "strconv"
    "sync"
    "time"
)

// HoldTimeout is the fixed window after which a hold is treated as expired.
// Expiry is checked lazily on the next join sweep or select attempt; no
// background timer is required for correctness.
const HoldTimeout = 30 * time.Minute

// HoldInfo records one seat's current hold.  It exists only while the hold
// is active and is removed on release, expiry or an authoritative status
// change.
type HoldInfo struct {
    AccountID string    // account that owns the hold
    HoldTime  time.Time // UTC time the hold was created
}

// Expired reports whether the hold is older than HoldTimeout at the given
// instant.
func (h HoldInfo) Expired(now time.Time) bool {
    return now.Sub(h.HoldTime) > HoldTimeout
}

// showState carries all coordinator state for one show.  Each show has its
// own mutex so operations on different shows never contend; the SelectSeat
// check-then-write runs entirely inside this lock, which makes the
// acquire-if-free-or-expired update atomic per seat.
type showState struct {
    mu    sync.Mutex
    holds map[uint64]HoldInfo // seat id -> active hold
    conns map[string]string   // account id -> live connection id
}

// Coordinator serializes concurrent seat-selection attempts across all
// clients connected to the same show.  Construct one instance per process
// with New and share it; construct a fresh instance per test for isolation.
type Coordinator struct {
    mu     sync.Mutex
    shows  map[uint64]*showState
    byConn map[string][]uint64 // connection id -> shows it joined

    bc    Broadcaster
    store SeatStatusStore
    now   func() time.Time
}

// New returns a Coordinator wired to the given broadcaster and seat store.
// Both must be non-nil.
func New(bc Broadcaster, store SeatStatusStore) *Coordinator {
    if bc == nil || store == nil {
        panic("nil dependency passed to hub.New")
    }
    return &Coordinator{
        shows:  make(map[uint64]*showState),
        byConn: make(map[string][]uint64),
        bc:     bc,
        store:  store,
        now:    func() time.Time { return time.Now().UTC() },
    }
}

// GroupKey returns the broadcast group token for a show.
func GroupKey(showID uint64) string {
    return strconv.FormatUint(showID, 10)
}

// state returns the showState for showID, creating it on first use.
func (c *Coordinator) state(showID uint64) *showState {
    c.mu.Lock()
    defer c.mu.Unlock()
    st, ok := c.shows[showID]
    if !ok {
        st = &showState{
            holds: make(map[uint64]HoldInfo),
            conns: make(map[string]string),
        }
        c.shows[showID] = st
    }
    return st
}

// lookup returns the showState for showID or nil when the show has never
// been touched.  Used by operations that must not allocate state for
// unknown shows.
func (c *Coordinator) lookup(showID uint64) *showState {
    c.mu.Lock()
    defer c.mu.Unlock()
    return c.shows[showID]
}

// JoinShowtime subscribes a connection to a show's broadcast group.  It
// rejects a second simultaneous connection for the same account on the same
// show with an account_in_use push, sweeps expired holds for the show, and
// finally sends the caller the list of seat ids to render as occupied: every
// seat with a live hold plus every seat the durable store reports as not
// available.
func (c *Coordinator) JoinShowtime(ctx context.Context, connID, accountID string, showID uint64) {
    st := c.state(showID)
    now := c.now()

    st.mu.Lock()
    if accountID != "" {
        if cur, ok := st.conns[accountID]; ok && cur != connID {
            // The account already has a live connection on this show.  Do
            // not overwrite the original mapping and do not join the group.
            st.mu.Unlock()
            c.bc.SendToCaller(connID, EventAccountInUse, struct{}{})
            return
        }
        st.conns[accountID] = connID
    }
    // Lazy expiry sweep: drop every hold older than the timeout, then
    // collect the survivors for the caller's pre-render list.
    occupied := make(map[uint64]struct{}, len(st.holds))
    for seatID, h := range st.holds {
        if h.Expired(now) {
            delete(st.holds, seatID)
            continue
        }
        occupied[seatID] = struct{}{}
    }
    st.mu.Unlock()

    // Cross-check against the authoritative store outside the lock.  A
    // store failure degrades to reporting in-memory holds only; the client
    // reconciles against durable data at booking time anyway.
    if unavail, err := c.store.UnavailableSeats(ctx, showID); err != nil {
        log.Printf("hub: unavailable seats lookup failed for show %d: %v", showID, err)
    } else {
        for _, seatID := range unavail {
            occupied[seatID] = struct{}{}
        }
    }

    c.mu.Lock()
    if !containsUint64(c.byConn[connID], showID) {
        c.byConn[connID] = append(c.byConn[connID], showID)
    }
    c.mu.Unlock()

    c.bc.AddToGroup(GroupKey(showID), connID)
    c.bc.SendToCaller(connID, EventHeldSeats, HeldSeatsPayload{SeatIDs: sortedIDs(occupied)})
}

// SelectSeat attempts to acquire a hold on a seat for the caller's account.
// The seat is acquired when it is free or its current hold has expired;
// otherwise the existing hold wins and nothing happens (the absence of a
// seat_selected broadcast is the caller's implicit rejection).  Callers
// without identity are ignored.
func (c *Coordinator) SelectSeat(connID, accountID string, showID, seatID uint64) {
    if accountID == "" {
        return
    }
    st := c.state(showID)
    now := c.now()

    st.mu.Lock()
    if h, ok := st.holds[seatID]; ok && !h.Expired(now) {
        st.mu.Unlock()
        return
    }
    st.holds[seatID] = HoldInfo{AccountID: accountID, HoldTime: now}
    st.mu.Unlock()

    c.bc.SendToGroup(GroupKey(showID), EventSeatSelected, SeatPayload{SeatID: seatID})
}

// DeselectSeat releases a hold owned by the caller's account.  Holds owned
// by other accounts, unknown shows and unheld seats are all silent no-ops;
// a client can never release another client's hold.
func (c *Coordinator) DeselectSeat(connID, accountID string, showID, seatID uint64) {
    if accountID == "" {
        return
    }
    st := c.lookup(showID)
    if st == nil {
        return
    }

    st.mu.Lock()
    h, ok := st.holds[seatID]
    if !ok || h.AccountID != accountID {
        st.mu.Unlock()
        return
    }
    delete(st.holds, seatID)
    st.mu.Unlock()

    c.bc.SendToGroup(GroupKey(showID), EventSeatDeselected, SeatPayload{SeatID: seatID})
}

// Disconnect handles a connection going away.  It removes the account's
// connection registration for every show the connection joined so a
// reconnect is not rejected as a duplicate session, and drops the
// connection from its groups.  Holds are intentionally left in place: they
// survive transient disconnects and expire only by timeout.
func (c *Coordinator) Disconnect(connID string) {
    c.mu.Lock()
    shows := c.byConn[connID]
    delete(c.byConn, connID)
    c.mu.Unlock()

    for _, showID := range shows {
        st := c.lookup(showID)
        if st == nil {
            continue
        }
        st.mu.Lock()
        for accountID, cur := range st.conns {
            if cur == connID {
                delete(st.conns, accountID)
            }
        }
        st.mu.Unlock()
        c.bc.RemoveFromGroup(GroupKey(showID), connID)
    }
}

// NotifySeatStatusChanged applies an authoritative external status change
// (booking completed, admin override).  It unconditionally removes any hold
// on the seat regardless of owner and broadcasts the new status to the
// show's group.
func (c *Coordinator) NotifySeatStatusChanged(showID, seatID uint64, statusID uint32) {
    if st := c.lookup(showID); st != nil {
        st.mu.Lock()
        delete(st.holds, seatID)
        st.mu.Unlock()
    }
    c.bc.SendToGroup(GroupKey(showID), EventSeatStatusChanged, SeatStatusPayload{SeatID: seatID, StatusID: statusID})
}

// ReleaseHold unconditionally removes the hold entry for a seat if present
// and reports whether anything was removed.  It never broadcasts; callers
// that need to notify the group do so separately.
func (c *Coordinator) ReleaseHold(showID, seatID uint64) bool {
    st := c.lookup(showID)
    if st == nil {
        return false
    }
    st.mu.Lock()
    defer st.mu.Unlock()
    if _, ok := st.holds[seatID]; !ok {
        return false
    }
    delete(st.holds, seatID)
    return true
}

// HeldSeats returns the seat ids with a live (unexpired) hold for a show,
// sorted ascending.  Expired entries encountered during the read are left
// for the next sweep.
func (c *Coordinator) HeldSeats(showID uint64) []uint64 {
    st := c.lookup(showID)
    if st == nil {
        return []uint64{}
    }
    now := c.now()
    st.mu.Lock()
    held := make(map[uint64]struct{}, len(st.holds))
    for seatID, h := range st.holds {
        if !h.Expired(now) {
            held[seatID] = struct{}{}
        }
    }
    st.mu.Unlock()
    return sortedIDs(held)
}

// SweepExpired removes every expired hold across all shows and returns the
// removed seat ids grouped by show.  It exists for the optional background
// sweeper; the coordinator itself never needs it for correctness.
func (c *Coordinator) SweepExpired() map[uint64][]uint64 {
    c.mu.Lock()
    states := make(map[uint64]*showState, len(c.shows))
    for showID, st := range c.shows {
        states[showID] = st
    }
    c.mu.Unlock()

    now := c.now()
    removed := make(map[uint64][]uint64)
    for showID, st := range states {
        st.mu.Lock()
        for seatID, h := range st.holds {
            if h.Expired(now) {
                delete(st.holds, seatID)
                removed[showID] = append(removed[showID], seatID)
            }
        }
        st.mu.Unlock()
        if seats := removed[showID]; len(seats) > 0 {
            sort.Slice(seats, func(i, j int) bool { return seats[i] < seats[j] })
        }
    }
    return removed
}

func containsUint64(list []uint64, v uint64) bool {
    for _, x := range list {
        if x == v {
            return true
        }
    }
    return false
}

func sortedIDs(set map[uint64]struct{}) []uint64 {
    ids := make([]uint64, 0, len(set))
    for id := range set {
        ids = append(ids, id)
    }
    sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
    return ids
}
