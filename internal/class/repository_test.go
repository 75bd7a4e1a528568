package class

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockRepo(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	dbx := sqlx.NewDb(db, "sqlmock")
	return NewRepository(dbx), mock, func() { db.Close() }
}

func classRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "trainer_id", "room_id", "room_booking_id",
		"scheduled_time", "duration_minutes", "capacity", "status", "created_at",
	})
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"start_time", "end_time"})
}

func expectRoomLock(mock sqlmock.Sqlmock, roomID int) {
	mock.ExpectQuery(`SELECT id FROM rooms WHERE id = \$1 FOR UPDATE`).
		WithArgs(roomID).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(roomID))
}

func TestCreateClassWithBooking_Success(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	start := time.Date(2025, 6, 2, 9, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	fc := &FitnessClass{
		Name:            "Morning Yoga",
		TrainerID:       3,
		RoomID:          2,
		ScheduledTime:   start,
		DurationMinutes: 60,
		Capacity:        8,
	}

	mock.ExpectBegin()
	expectRoomLock(mock, 2)
	mock.ExpectQuery(`SELECT start_time, end_time FROM room_bookings`).
		WithArgs(2, date, 0).
		WillReturnRows(bookingRows())
	mock.ExpectQuery(`INSERT INTO room_bookings`).
		WithArgs(2, date, "09:00", "10:00", "Fitness Class: Morning Yoga").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(41))
	mock.ExpectQuery(`INSERT INTO fitness_classes`).
		WithArgs("Morning Yoga", nil, 3, 2, 41, start, 60, 8).
		WillReturnRows(classRows().AddRow(7, "Morning Yoga", nil, 3, 2, 41, start, 60, 8, "scheduled", time.Now()))
	mock.ExpectCommit()

	created, err := repo.CreateClassWithBooking(context.Background(), fc, "Fitness Class: Morning Yoga")
	require.NoError(t, err)
	assert.Equal(t, 7, created.ID)
	assert.Equal(t, 41, created.RoomBookingID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClassWithBooking_RoomConflict(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	start := time.Date(2025, 6, 2, 9, 30, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	fc := &FitnessClass{
		Name:            "Spin",
		TrainerID:       3,
		RoomID:          2,
		ScheduledTime:   start,
		DurationMinutes: 45,
		Capacity:        12,
	}

	mock.ExpectBegin()
	expectRoomLock(mock, 2)
	mock.ExpectQuery(`SELECT start_time, end_time FROM room_bookings`).
		WithArgs(2, date, 0).
		WillReturnRows(bookingRows().AddRow("09:00", "10:00"))
	mock.ExpectRollback()

	_, err := repo.CreateClassWithBooking(context.Background(), fc, "Fitness Class: Spin")

	var conflict *RoomConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, "09:00", conflict.StartTime)
	assert.Equal(t, "10:00", conflict.EndTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateClass_MoveBookingExcludesOwnBooking(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	start := time.Date(2025, 6, 2, 11, 0, 0, 0, time.UTC)
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	fc := &FitnessClass{
		ID:              7,
		Name:            "Morning Yoga",
		TrainerID:       3,
		RoomID:          2,
		RoomBookingID:   41,
		ScheduledTime:   start,
		DurationMinutes: 60,
		Capacity:        8,
		Status:          StatusScheduled,
	}

	mock.ExpectBegin()
	expectRoomLock(mock, 2)
	// The class keeps its own booking out of the conflict scan.
	mock.ExpectQuery(`SELECT start_time, end_time FROM room_bookings`).
		WithArgs(2, date, 41).
		WillReturnRows(bookingRows())
	mock.ExpectExec(`UPDATE room_bookings`).
		WithArgs(date, "11:00", "12:00", 41).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE fitness_classes`).
		WithArgs("Morning Yoga", nil, start, 60, 8, StatusScheduled, 7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.UpdateClass(context.Background(), fc, true)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelClassWithBooking_CascadesToBooking(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE fitness_classes SET status = 'cancelled'`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE room_bookings`).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CancelClassWithBooking(context.Background(), 7)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRegistration_AfterSoftCancel(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	// Cancellation keeps the row; only its status flips.
	mock.ExpectExec(`UPDATE class_registrations SET status = \$1 WHERE id = \$2`).
		WithArgs(RegStatusCancelled, 50).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateRegistrationStatus(context.Background(), 50, RegStatusCancelled)
	require.NoError(t, err)

	// The partial unique index ignores cancelled rows, so the same member
	// re-registering for the same class inserts cleanly.
	mock.ExpectQuery(`INSERT INTO class_registrations`).
		WithArgs(1, 7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "member_id", "class_id", "status", "registered_at"}).
			AddRow(51, 1, 7, "registered", time.Now()))

	reg, err := repo.CreateRegistration(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, 51, reg.ID)
	assert.Equal(t, RegStatusRegistered, reg.Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRegistration_DuplicateMapsToSentinel(t *testing.T) {
	repo, mock, cleanup := newMockRepo(t)
	defer cleanup()

	mock.ExpectQuery(`INSERT INTO class_registrations`).
		WithArgs(1, 7).
		WillReturnError(&pq.Error{Code: uniqueViolation})

	_, err := repo.CreateRegistration(context.Background(), 1, 7)
	assert.ErrorIs(t, err, ErrDuplicateRegistration)
	assert.NoError(t, mock.ExpectationsWereMet())
}
