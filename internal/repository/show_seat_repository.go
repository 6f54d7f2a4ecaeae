// Package repository provides read access to the durable seat state owned
// by the booking service.  The realtime coordinator only ever reads here;
// all writes to show_seats happen in the booking flow.
package repository

import (
    "context"       // context for query deadlines
    "database/sql"   // sql provides DB interfaces

    "github.com/cinebook/seathub/internal/model" // durable seat statuses
)

// ShowSeatRepo encapsulates read queries against the show_seats table.  It
// satisfies hub.SeatStatusStore.
type ShowSeatRepo struct {
    db *sql.DB
}

// NewShowSeatRepo constructs a ShowSeatRepo given a DB handle.
func NewShowSeatRepo(db *sql.DB) *ShowSeatRepo {
    return &ShowSeatRepo{db: db}
}

// UnavailableSeats returns the seat ids whose durable status is not FREE
// for the given show.  A seat counts as unavailable whether it is HELD by a
// checkout in progress or already RESERVED; the coordinator reports both as
// occupied to joining clients.
func (r *ShowSeatRepo) UnavailableSeats(ctx context.Context, showID uint64) ([]uint64, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT seat_id FROM show_seats WHERE show_id = ? AND status <> ?`,
        showID, model.SeatStatusFree,
    )
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    var ids []uint64
    for rows.Next() {
        var sid uint64
        if err := rows.Scan(&sid); err != nil {
            return nil, err
        }
        ids = append(ids, sid)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return ids, nil
}

// GetByShowAndSeat fetches the full show_seat row for one seat of a show.
// sql.ErrNoRows is passed through when the show/seat pair does not exist so
// handlers can answer 404.
func (r *ShowSeatRepo) GetByShowAndSeat(ctx context.Context, showID, seatID uint64) (*model.ShowSeat, error) {
    var ss model.ShowSeat
    err := r.db.QueryRowContext(ctx,
        `SELECT id, show_id, seat_id, status, price_cents, version, created_at, updated_at
         FROM show_seats WHERE show_id = ? AND seat_id = ?`,
        showID, seatID,
    ).Scan(&ss.ID, &ss.ShowID, &ss.SeatID, &ss.Status, &ss.PriceCents, &ss.Version, &ss.CreatedAt, &ss.UpdatedAt)
    if err != nil {
        return nil, err
    }
    return &ss, nil
}

// SeatStatus returns the durable status string for one seat of a show.
func (r *ShowSeatRepo) SeatStatus(ctx context.Context, showID, seatID uint64) (string, error) {
    ss, err := r.GetByShowAndSeat(ctx, showID, seatID)
    if err != nil {
        return "", err
    }
    return ss.Status, nil
}
