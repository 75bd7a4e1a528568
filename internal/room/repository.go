package room

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"fitclub/internal/interval"
)

var ErrBookingNotFoundOrAlreadyCancelled = errors.New("booking not found or already cancelled")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CreateRoom(ctx context.Context, name string, capacity int, roomType RoomType) (*Room, error) {
	query := `
		INSERT INTO rooms (name, capacity, room_type)
		VALUES ($1, $2, $3)
		RETURNING id, name, capacity, room_type, created_at
	`

	var room Room
	err := r.db.GetContext(ctx, &room, query, name, capacity, roomType)
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *repository) GetRoomByID(ctx context.Context, id int) (*Room, error) {
	query := `
		SELECT id, name, capacity, room_type, created_at
		FROM rooms
		WHERE id = $1
	`

	var room Room
	err := r.db.GetContext(ctx, &room, query, id)
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *repository) GetRoomByName(ctx context.Context, name string) (*Room, error) {
	query := `
		SELECT id, name, capacity, room_type, created_at
		FROM rooms
		WHERE name = $1
	`

	var room Room
	err := r.db.GetContext(ctx, &room, query, name)
	if err != nil {
		return nil, err
	}

	return &room, nil
}

func (r *repository) GetAllRooms(ctx context.Context) ([]Room, error) {
	query := `
		SELECT id, name, capacity, room_type, created_at
		FROM rooms
		ORDER BY name ASC
	`

	var rooms []Room
	err := r.db.SelectContext(ctx, &rooms, query)
	if err != nil {
		return nil, err
	}

	return rooms, nil
}

func (r *repository) CreateBooking(ctx context.Context, roomID int, date time.Time, startTime, endTime string, purpose *string, adminID *int) (*Booking, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	// Lock the room row so concurrent bookings for the same room serialize
	// and the conflict scan below stays valid until commit.
	var roomExists int
	err = tx.GetContext(ctx, &roomExists, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, roomID)
	if err != nil {
		return nil, err
	}

	var existing []Booking
	err = tx.SelectContext(ctx, &existing, `
		SELECT id, room_id, booking_date, start_time, end_time, purpose, booked_by_admin_id, status, created_at
		FROM room_bookings
		WHERE room_id = $1 AND booking_date = $2 AND status != 'cancelled'
	`, roomID, date)
	if err != nil {
		return nil, err
	}

	for _, b := range existing {
		if interval.Overlaps(startTime, endTime, b.StartTime, b.EndTime) {
			return nil, &ConflictError{StartTime: b.StartTime, EndTime: b.EndTime}
		}
	}

	var booking Booking
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO room_bookings (room_id, booking_date, start_time, end_time, purpose, booked_by_admin_id, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'confirmed')
		RETURNING id, room_id, booking_date, start_time, end_time, purpose, booked_by_admin_id, status, created_at
	`, roomID, date, startTime, endTime, purpose, adminID).StructScan(&booking)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) GetBookingByID(ctx context.Context, id int) (*Booking, error) {
	query := `
		SELECT id, room_id, booking_date, start_time, end_time, purpose, booked_by_admin_id, status, created_at
		FROM room_bookings
		WHERE id = $1
	`

	var booking Booking
	err := r.db.GetContext(ctx, &booking, query, id)
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

func (r *repository) CancelBooking(ctx context.Context, id int) error {
	query := `
		UPDATE room_bookings
		SET status = 'cancelled'
		WHERE id = $1 AND status != 'cancelled'
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrBookingNotFoundOrAlreadyCancelled
	}

	return nil
}

func (r *repository) GetActiveBookingsForDate(ctx context.Context, roomID int, date time.Time) ([]Booking, error) {
	query := `
		SELECT id, room_id, booking_date, start_time, end_time, purpose, booked_by_admin_id, status, created_at
		FROM room_bookings
		WHERE room_id = $1 AND booking_date = $2 AND status != 'cancelled'
		ORDER BY start_time ASC
	`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, roomID, date)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}

func (r *repository) ListBookings(ctx context.Context, roomID int, fromDate *time.Time) ([]Booking, error) {
	query := `
		SELECT id, room_id, booking_date, start_time, end_time, purpose, booked_by_admin_id, status, created_at
		FROM room_bookings
		WHERE room_id = $1 AND status != 'cancelled'
	`
	args := []interface{}{roomID}

	if fromDate != nil {
		query += ` AND booking_date >= $2`
		args = append(args, *fromDate)
	}

	query += ` ORDER BY booking_date ASC, start_time ASC`

	var bookings []Booking
	err := r.db.SelectContext(ctx, &bookings, query, args...)
	if err != nil {
		return nil, err
	}

	return bookings, nil
}
