package room

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dbx := sqlx.NewDb(db, "sqlmock")
	return NewRepository(dbx), mock, func() { db.Close() }
}

func TestCreateRoom(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectQuery(`INSERT INTO rooms.*`).
		WithArgs("Studio A", 30, TypeStudio).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "room_type", "created_at"}).
			AddRow(1, "Studio A", 30, "studio", time.Now()))

	room, err := repo.CreateRoom(context.Background(), "Studio A", 30, TypeStudio)
	assert.NoError(t, err)
	assert.Equal(t, 1, room.ID)
	assert.Equal(t, "Studio A", room.Name)
	assert.Equal(t, TypeStudio, room.RoomType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetRoomByID(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectQuery(`SELECT id, name, capacity, room_type, created_at FROM rooms WHERE id = \$1`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "capacity", "room_type", "created_at"}).
			AddRow(1, "Studio A", 30, "studio", time.Now()))

	room, err := repo.GetRoomByID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, 30, room.Capacity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "room_id", "booking_date", "start_time", "end_time",
		"purpose", "booked_by_admin_id", "status", "created_at",
	})
}

func TestCreateBooking_NoConflict(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM rooms WHERE id = \$1 FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT id, room_id, booking_date, .* FROM room_bookings`).
		WithArgs(1, date).
		WillReturnRows(bookingRows().
			AddRow(7, 1, date, "09:00", "10:00", nil, nil, "confirmed", time.Now()))
	mock.ExpectQuery(`INSERT INTO room_bookings`).
		WithArgs(1, date, "10:00", "11:00", nil, nil).
		WillReturnRows(bookingRows().
			AddRow(8, 1, date, "10:00", "11:00", nil, nil, "confirmed", time.Now()))
	mock.ExpectCommit()

	booking, err := repo.CreateBooking(context.Background(), 1, date, "10:00", "11:00", nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 8, booking.ID)
	assert.Equal(t, StatusConfirmed, booking.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateBooking_Conflict(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	date := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT id FROM rooms WHERE id = \$1 FOR UPDATE`).
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectQuery(`SELECT id, room_id, booking_date, .* FROM room_bookings`).
		WithArgs(1, date).
		WillReturnRows(bookingRows().
			AddRow(7, 1, date, "09:00", "10:00", nil, nil, "confirmed", time.Now()))
	mock.ExpectRollback()

	_, err := repo.CreateBooking(context.Background(), 1, date, "09:30", "10:30", nil, nil)

	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, "09:00", conflict.StartTime)
	assert.Equal(t, "10:00", conflict.EndTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBooking(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE room_bookings`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CancelBooking(context.Background(), 5)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelBooking_AlreadyCancelled(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectExec(`UPDATE room_bookings`).
		WithArgs(5).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.CancelBooking(context.Background(), 5)
	assert.ErrorIs(t, err, ErrBookingNotFoundOrAlreadyCancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListBookings_FromDate(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT id, room_id, booking_date, .* FROM room_bookings`).
		WithArgs(1, from).
		WillReturnRows(bookingRows().
			AddRow(1, 1, from, "09:00", "10:00", nil, nil, "confirmed", time.Now()).
			AddRow(2, 1, from.AddDate(0, 0, 1), "09:00", "10:00", nil, nil, "confirmed", time.Now()))

	bookings, err := repo.ListBookings(context.Background(), 1, &from)
	assert.NoError(t, err)
	assert.Len(t, bookings, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}
