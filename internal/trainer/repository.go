package trainer

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"fitclub/internal/interval"
)

var (
	ErrDuplicateSlot    = errors.New("this exact availability slot already exists")
	ErrSlotNotFound     = errors.New("availability slot not found")
	ErrTrainerNotExists = errors.New("trainer not found")
)

const uniqueViolation = "23505"

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, email, passwordHash, firstName, lastName string, specialization, phone *string) (*Trainer, error) {
	query := `
		INSERT INTO trainers (email, password_hash, first_name, last_name, specialization, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, email, password_hash, first_name, last_name, specialization, phone, created_at
	`

	var trainer Trainer
	err := r.db.GetContext(ctx, &trainer, query, email, passwordHash, firstName, lastName, specialization, phone)
	if err != nil {
		return nil, err
	}

	return &trainer, nil
}

func (r *repository) FindByEmail(ctx context.Context, email string) (*Trainer, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, specialization, phone, created_at
		FROM trainers
		WHERE email = $1
	`

	var trainer Trainer
	err := r.db.GetContext(ctx, &trainer, query, email)
	if err != nil {
		return nil, err
	}

	return &trainer, nil
}

func (r *repository) FindByID(ctx context.Context, id int) (*Trainer, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, specialization, phone, created_at
		FROM trainers
		WHERE id = $1
	`

	var trainer Trainer
	err := r.db.GetContext(ctx, &trainer, query, id)
	if err != nil {
		return nil, err
	}

	return &trainer, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM trainers WHERE email = $1)`

	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email)
	if err != nil {
		return false, err
	}

	return exists, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Trainer, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, specialization, phone, created_at
		FROM trainers
		ORDER BY last_name ASC, first_name ASC
	`

	var trainers []Trainer
	err := r.db.SelectContext(ctx, &trainers, query)
	if err != nil {
		return nil, err
	}

	return trainers, nil
}

func (r *repository) CreateAvailability(ctx context.Context, trainerID int, day interval.Weekday, startTime, endTime string) (*Availability, error) {
	query := `
		INSERT INTO trainer_availability (trainer_id, day_of_week, start_time, end_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id, trainer_id, day_of_week, start_time, end_time
	`

	var slot Availability
	err := r.db.GetContext(ctx, &slot, query, trainerID, int(day), startTime, endTime)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrDuplicateSlot
		}
		return nil, err
	}

	return &slot, nil
}

func (r *repository) GetAvailabilityForDay(ctx context.Context, trainerID int, day interval.Weekday) ([]Availability, error) {
	query := `
		SELECT id, trainer_id, day_of_week, start_time, end_time
		FROM trainer_availability
		WHERE trainer_id = $1 AND day_of_week = $2
		ORDER BY start_time ASC
	`

	var slots []Availability
	err := r.db.SelectContext(ctx, &slots, query, trainerID, int(day))
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) GetAvailability(ctx context.Context, trainerID int) ([]Availability, error) {
	query := `
		SELECT id, trainer_id, day_of_week, start_time, end_time
		FROM trainer_availability
		WHERE trainer_id = $1
		ORDER BY day_of_week ASC, start_time ASC
	`

	var slots []Availability
	err := r.db.SelectContext(ctx, &slots, query, trainerID)
	if err != nil {
		return nil, err
	}

	return slots, nil
}

func (r *repository) DeleteAvailability(ctx context.Context, trainerID, availabilityID int) error {
	query := `
		DELETE FROM trainer_availability
		WHERE id = $1 AND trainer_id = $2
	`

	result, err := r.db.ExecContext(ctx, query, availabilityID, trainerID)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

func (r *repository) GetUpcomingClasses(ctx context.Context, trainerID int) ([]ScheduledClass, error) {
	query := `
		SELECT id, name, room_id, scheduled_time, duration_minutes, status
		FROM fitness_classes
		WHERE trainer_id = $1 AND scheduled_time >= NOW()
		ORDER BY scheduled_time ASC
	`

	var classes []ScheduledClass
	err := r.db.SelectContext(ctx, &classes, query, trainerID)
	if err != nil {
		return nil, err
	}

	return classes, nil
}
