package session

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"fitclub/internal/interval"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

type clockWindow struct {
	StartTime string `db:"start_time"`
	EndTime   string `db:"end_time"`
}

type sessionSlice struct {
	ScheduledTime   time.Time `db:"scheduled_time"`
	DurationMinutes int       `db:"duration_minutes"`
}

func sessionDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// runChecks serializes on the trainer row, then verifies availability
// containment, trainer and member session overlap, and room booking overlap
// for the requested slot. excludeID skips the session being replaced.
func runChecks(ctx context.Context, tx *sqlx.Tx, s *Session, excludeID int) error {
	var trainerExists int
	if err := tx.GetContext(ctx, &trainerExists, `SELECT id FROM trainers WHERE id = $1 FOR UPDATE`, s.TrainerID); err != nil {
		return err
	}

	startClock := interval.Clock(s.ScheduledTime)
	endClock := interval.Clock(s.EndTime())
	weekday := interval.WeekdayOf(s.ScheduledTime)

	var windows []clockWindow
	err := tx.SelectContext(ctx, &windows, `
		SELECT start_time, end_time
		FROM trainer_availability
		WHERE trainer_id = $1 AND day_of_week = $2
	`, s.TrainerID, weekday)
	if err != nil {
		return err
	}

	// Containment, not overlap: the whole session must sit inside one window.
	contained := false
	for _, w := range windows {
		if interval.Contains(w.StartTime, w.EndTime, startClock, endClock) {
			contained = true
			break
		}
	}
	if !contained {
		return ErrTrainerUnavailable
	}

	var trainerSessions []sessionSlice
	err = tx.SelectContext(ctx, &trainerSessions, `
		SELECT scheduled_time, duration_minutes
		FROM personal_training_sessions
		WHERE trainer_id = $1 AND status = 'scheduled' AND id != $2
	`, s.TrainerID, excludeID)
	if err != nil {
		return err
	}
	for _, existing := range trainerSessions {
		end := existing.ScheduledTime.Add(time.Duration(existing.DurationMinutes) * time.Minute)
		if interval.OverlapsAt(s.ScheduledTime, s.EndTime(), existing.ScheduledTime, end) {
			return ErrTrainerConflict
		}
	}

	var memberSessions []sessionSlice
	err = tx.SelectContext(ctx, &memberSessions, `
		SELECT scheduled_time, duration_minutes
		FROM personal_training_sessions
		WHERE member_id = $1 AND status = 'scheduled' AND id != $2
	`, s.MemberID, excludeID)
	if err != nil {
		return err
	}
	for _, existing := range memberSessions {
		end := existing.ScheduledTime.Add(time.Duration(existing.DurationMinutes) * time.Minute)
		if interval.OverlapsAt(s.ScheduledTime, s.EndTime(), existing.ScheduledTime, end) {
			return ErrMemberConflict
		}
	}

	if s.RoomID != nil {
		var bookings []clockWindow
		err = tx.SelectContext(ctx, &bookings, `
			SELECT start_time, end_time
			FROM room_bookings
			WHERE room_id = $1 AND booking_date = $2 AND status = 'confirmed'
		`, *s.RoomID, sessionDate(s.ScheduledTime))
		if err != nil {
			return err
		}
		for _, b := range bookings {
			if interval.Overlaps(startClock, endClock, b.StartTime, b.EndTime) {
				return ErrRoomConflict
			}
		}
	}

	return nil
}

func insertSession(ctx context.Context, tx *sqlx.Tx, s *Session) (*Session, error) {
	var created Session
	err := tx.QueryRowxContext(ctx, `
		INSERT INTO personal_training_sessions (member_id, trainer_id, room_id, scheduled_time, duration_minutes, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, 'scheduled')
		RETURNING id, member_id, trainer_id, room_id, scheduled_time, duration_minutes, notes, status, created_at
	`, s.MemberID, s.TrainerID, s.RoomID, s.ScheduledTime, s.DurationMinutes, s.Notes).StructScan(&created)
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *repository) CreateSession(ctx context.Context, s *Session) (*Session, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if err := runChecks(ctx, tx, s, 0); err != nil {
		return nil, err
	}

	created, err := insertSession(ctx, tx, s)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return created, nil
}

func (r *repository) RescheduleSession(ctx context.Context, old *Session, replacement *Session) (*Session, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE personal_training_sessions
		SET status = 'cancelled'
		WHERE id = $1 AND status = 'scheduled'
	`, old.ID)
	if err != nil {
		return nil, err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rows == 0 {
		return nil, ErrSessionNotFound
	}

	// Any failure here rolls the cancellation back with the transaction.
	if err := runChecks(ctx, tx, replacement, old.ID); err != nil {
		return nil, err
	}

	created, err := insertSession(ctx, tx, replacement)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return created, nil
}

func (r *repository) GetSessionByID(ctx context.Context, id int) (*Session, error) {
	query := `
		SELECT id, member_id, trainer_id, room_id, scheduled_time, duration_minutes, notes, status, created_at
		FROM personal_training_sessions
		WHERE id = $1
	`

	var s Session
	err := r.db.GetContext(ctx, &s, query, id)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) UpdateSessionStatus(ctx context.Context, id int, status Status) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE personal_training_sessions SET status = $1 WHERE id = $2
	`, status, id)
	return err
}

func (r *repository) ListMemberSessions(ctx context.Context, memberID int, upcomingOnly bool) ([]Session, error) {
	query := `
		SELECT id, member_id, trainer_id, room_id, scheduled_time, duration_minutes, notes, status, created_at
		FROM personal_training_sessions
		WHERE member_id = $1
	`
	if upcomingOnly {
		query += ` AND status = 'scheduled' AND scheduled_time >= NOW()`
	}
	query += ` ORDER BY scheduled_time ASC`

	sessions := []Session{}
	err := r.db.SelectContext(ctx, &sessions, query, memberID)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}

func (r *repository) ListTrainerSessions(ctx context.Context, trainerID int, upcomingOnly bool) ([]Session, error) {
	query := `
		SELECT id, member_id, trainer_id, room_id, scheduled_time, duration_minutes, notes, status, created_at
		FROM personal_training_sessions
		WHERE trainer_id = $1
	`
	if upcomingOnly {
		query += ` AND status = 'scheduled' AND scheduled_time >= NOW()`
	}
	query += ` ORDER BY scheduled_time ASC`

	sessions := []Session{}
	err := r.db.SelectContext(ctx, &sessions, query, trainerID)
	if err != nil {
		return nil, err
	}

	return sessions, nil
}
