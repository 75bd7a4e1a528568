package class

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"fitclub/internal/interval"
)

var ErrDuplicateRegistration = errors.New("member already has a registration for this class")

const uniqueViolation = "23505"

// RoomConflictError reports the room booking window that blocked a class
// placement.
type RoomConflictError struct {
	Date      time.Time
	StartTime string
	EndTime   string
}

func (e *RoomConflictError) Error() string {
	return fmt.Sprintf("room is already booked on %s from %s to %s",
		e.Date.Format("2006-01-02"), e.StartTime, e.EndTime)
}

type bookingWindow struct {
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func classDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// scanRoomConflicts locks the room row and returns the first overlapping
// non-cancelled booking window, skipping excludeBookingID when positive.
func scanRoomConflicts(ctx context.Context, tx *sqlx.Tx, roomID int, date time.Time, startTime, endTime string, excludeBookingID int) error {
	var roomExists int
	if err := tx.GetContext(ctx, &roomExists, `SELECT id FROM rooms WHERE id = $1 FOR UPDATE`, roomID); err != nil {
		return err
	}

	var existing []bookingWindow
	err := tx.SelectContext(ctx, &existing, `
		SELECT start_time, end_time
		FROM room_bookings
		WHERE room_id = $1 AND booking_date = $2 AND status != 'cancelled' AND id != $3
	`, roomID, date, excludeBookingID)
	if err != nil {
		return err
	}

	for _, w := range existing {
		if interval.Overlaps(startTime, endTime, w.StartTime, w.EndTime) {
			return &RoomConflictError{Date: date, StartTime: w.StartTime, EndTime: w.EndTime}
		}
	}

	return nil
}

func (r *repository) CreateClassWithBooking(ctx context.Context, fc *FitnessClass, purpose string) (*FitnessClass, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	date := classDate(fc.ScheduledTime)
	startTime := interval.Clock(fc.ScheduledTime)
	endTime := interval.Clock(fc.EndTime())

	if err := scanRoomConflicts(ctx, tx, fc.RoomID, date, startTime, endTime, 0); err != nil {
		return nil, err
	}

	var bookingID int
	err = tx.GetContext(ctx, &bookingID, `
		INSERT INTO room_bookings (room_id, booking_date, start_time, end_time, purpose, status)
		VALUES ($1, $2, $3, $4, $5, 'confirmed')
		RETURNING id
	`, fc.RoomID, date, startTime, endTime, purpose)
	if err != nil {
		return nil, err
	}

	var created FitnessClass
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO fitness_classes (name, description, trainer_id, room_id, room_booking_id, scheduled_time, duration_minutes, capacity, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, 'scheduled')
		RETURNING id, name, description, trainer_id, room_id, room_booking_id, scheduled_time, duration_minutes, capacity, status, created_at
	`, fc.Name, fc.Description, fc.TrainerID, fc.RoomID, bookingID, fc.ScheduledTime, fc.DurationMinutes, fc.Capacity).StructScan(&created)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) UpdateClass(ctx context.Context, fc *FitnessClass, moveBooking bool) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if moveBooking {
		date := classDate(fc.ScheduledTime)
		startTime := interval.Clock(fc.ScheduledTime)
		endTime := interval.Clock(fc.EndTime())

		if err := scanRoomConflicts(ctx, tx, fc.RoomID, date, startTime, endTime, fc.RoomBookingID); err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE room_bookings
			SET booking_date = $1, start_time = $2, end_time = $3
			WHERE id = $4
		`, date, startTime, endTime, fc.RoomBookingID)
		if err != nil {
			return err
		}
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE fitness_classes
		SET name = $1, description = $2, scheduled_time = $3, duration_minutes = $4, capacity = $5, status = $6
		WHERE id = $7
	`, fc.Name, fc.Description, fc.ScheduledTime, fc.DurationMinutes, fc.Capacity, fc.Status, fc.ID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) CancelClassWithBooking(ctx context.Context, classID int) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		UPDATE fitness_classes SET status = 'cancelled' WHERE id = $1
	`, classID)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE room_bookings
		SET status = 'cancelled'
		WHERE id = (SELECT room_booking_id FROM fitness_classes WHERE id = $1)
		  AND status != 'cancelled'
	`, classID)
	if err != nil {
		return err
	}

	return tx.Commit()
}

func (r *repository) GetClassByID(ctx context.Context, id int) (*FitnessClass, error) {
	query := `
		SELECT id, name, description, trainer_id, room_id, room_booking_id, scheduled_time, duration_minutes, capacity, status, created_at
		FROM fitness_classes
		WHERE id = $1
	`

	var fc FitnessClass
	err := r.db.GetContext(ctx, &fc, query, id)
	if err != nil {
		return nil, err
	}

	return &fc, nil
}

func (r *repository) ListClasses(ctx context.Context, includePast bool) ([]FitnessClass, error) {
	query := `
		SELECT id, name, description, trainer_id, room_id, room_booking_id, scheduled_time, duration_minutes, capacity, status, created_at
		FROM fitness_classes
	`
	if !includePast {
		query += ` WHERE scheduled_time >= NOW()`
	}
	query += ` ORDER BY scheduled_time ASC`

	classes := []FitnessClass{}
	err := r.db.SelectContext(ctx, &classes, query)
	if err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *repository) ListScheduledFrom(ctx context.Context, from time.Time) ([]FitnessClass, error) {
	query := `
		SELECT id, name, description, trainer_id, room_id, room_booking_id, scheduled_time, duration_minutes, capacity, status, created_at
		FROM fitness_classes
		WHERE status = 'scheduled' AND scheduled_time >= $1
		ORDER BY scheduled_time ASC
	`

	classes := []FitnessClass{}
	err := r.db.SelectContext(ctx, &classes, query, from)
	if err != nil {
		return nil, err
	}

	return classes, nil
}

func (r *repository) CreateRegistration(ctx context.Context, memberID, classID int) (*Registration, error) {
	query := `
		INSERT INTO class_registrations (member_id, class_id, status)
		VALUES ($1, $2, 'registered')
		RETURNING id, member_id, class_id, status, registered_at
	`

	var reg Registration
	err := r.db.GetContext(ctx, &reg, query, memberID, classID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, ErrDuplicateRegistration
		}
		return nil, err
	}

	return &reg, nil
}

func (r *repository) GetRegistrationByID(ctx context.Context, id int) (*Registration, error) {
	query := `
		SELECT id, member_id, class_id, status, registered_at
		FROM class_registrations
		WHERE id = $1
	`

	var reg Registration
	err := r.db.GetContext(ctx, &reg, query, id)
	if err != nil {
		return nil, err
	}

	return &reg, nil
}

func (r *repository) GetActiveRegistration(ctx context.Context, memberID, classID int) (*Registration, error) {
	query := `
		SELECT id, member_id, class_id, status, registered_at
		FROM class_registrations
		WHERE member_id = $1 AND class_id = $2 AND status != 'cancelled'
	`

	var reg Registration
	err := r.db.GetContext(ctx, &reg, query, memberID, classID)
	if err != nil {
		return nil, err
	}

	return &reg, nil
}

func (r *repository) CountRegistered(ctx context.Context, classID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM class_registrations WHERE class_id = $1 AND status = 'registered'
	`, classID)
	return count, err
}

func (r *repository) UpdateRegistrationStatus(ctx context.Context, registrationID int, status RegistrationStatus) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE class_registrations SET status = $1 WHERE id = $2
	`, status, registrationID)
	return err
}

func (r *repository) ListMemberRegistrations(ctx context.Context, memberID int, upcomingOnly bool) ([]MemberRegistration, error) {
	query := `
		SELECT cr.id, cr.member_id, cr.class_id, cr.status, cr.registered_at,
		       fc.name AS class_name, fc.scheduled_time, fc.duration_minutes, fc.status AS class_status
		FROM class_registrations cr
		JOIN fitness_classes fc ON fc.id = cr.class_id
		WHERE cr.member_id = $1
	`
	if upcomingOnly {
		query += ` AND cr.status = 'registered' AND fc.scheduled_time >= NOW()`
	}
	query += ` ORDER BY fc.scheduled_time ASC`

	regs := []MemberRegistration{}
	err := r.db.SelectContext(ctx, &regs, query, memberID)
	if err != nil {
		return nil, err
	}

	return regs, nil
}

func (r *repository) GetMemberSessionWindows(ctx context.Context, memberID int, from time.Time) ([]sessionWindow, error) {
	query := `
		SELECT scheduled_time, duration_minutes
		FROM personal_training_sessions
		WHERE member_id = $1 AND status = 'scheduled' AND scheduled_time >= $2
	`

	windows := []sessionWindow{}
	err := r.db.SelectContext(ctx, &windows, query, memberID, from)
	if err != nil {
		return nil, err
	}

	return windows, nil
}
