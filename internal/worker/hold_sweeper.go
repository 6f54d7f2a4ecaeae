// Package worker contains the optional background hold sweeper.  The
// coordinator is correct with lazy expiry alone, but a show nobody rejoins
// would otherwise keep its expired holds in memory until process restart.
// Deployments that care enable the sweeper via HOLD_SWEEP_ENABLED.
package worker

import (
    "log"
    "time"

    "github.com/cinebook/seathub/internal/hub"
)

// Sweepable is the slice of the coordinator the sweeper needs.
type Sweepable interface {
    SweepExpired() map[uint64][]uint64
}

// HoldSweeper reaps expired holds on a fixed interval and announces each
// reaped seat to its show's group so stale selections disappear from open
// clients.
type HoldSweeper struct {
    coord    Sweepable
    bc       hub.Broadcaster
    interval time.Duration
    stopCh   chan struct{}
    doneCh   chan struct{}
}

// NewHoldSweeper constructs a sweeper.  Start must be called to run it.
func NewHoldSweeper(coord Sweepable, bc hub.Broadcaster, interval time.Duration) *HoldSweeper {
    return &HoldSweeper{
        coord:    coord,
        bc:       bc,
        interval: interval,
        stopCh:   make(chan struct{}),
        doneCh:   make(chan struct{}),
    }
}

// Start launches the sweep loop in its own goroutine.
func (s *HoldSweeper) Start() {
    go s.run()
}

// Stop signals the loop to exit and blocks until it has drained.
func (s *HoldSweeper) Stop() {
    close(s.stopCh)
    <-s.doneCh
}

func (s *HoldSweeper) run() {
    defer close(s.doneCh)
    ticker := time.NewTicker(s.interval)
    defer ticker.Stop()
    for {
        select {
        case <-ticker.C:
            s.sweep()
        case <-s.stopCh:
            return
        }
    }
}

// sweep reaps expired holds and broadcasts a seat_deselected for each one,
// mirroring what the owner's own release would have sent.
func (s *HoldSweeper) sweep() {
    removed := s.coord.SweepExpired()
    if len(removed) == 0 {
        return
    }
    total := 0
    for showID, seats := range removed {
        group := hub.GroupKey(showID)
        for _, seatID := range seats {
            s.bc.SendToGroup(group, hub.EventSeatDeselected, hub.SeatPayload{SeatID: seatID})
        }
        total += len(seats)
    }
    log.Printf("hold-sweeper: reaped %d expired holds across %d shows", total, len(removed))
}
