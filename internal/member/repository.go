package member

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrNotFound = errors.New("member not found")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, m *Member) (*Member, error) {
	query := `
		INSERT INTO members (email, password_hash, first_name, last_name, date_of_birth, gender, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, email, password_hash, first_name, last_name, date_of_birth, gender, phone, created_at
	`

	var created Member
	err := r.db.GetContext(ctx, &created, query,
		m.Email, m.PasswordHash, m.FirstName, m.LastName, m.DateOfBirth, m.Gender, m.Phone)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Member, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, date_of_birth, gender, phone, created_at
		FROM members
		WHERE id = $1
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) GetByEmail(ctx context.Context, email string) (*Member, error) {
	query := `
		SELECT id, email, password_hash, first_name, last_name, date_of_birth, gender, phone, created_at
		FROM members
		WHERE email = $1
	`

	var m Member
	err := r.db.GetContext(ctx, &m, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &m, nil
}

func (r *repository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM members WHERE email = $1)`, email)
	return exists, err
}

func (r *repository) Update(ctx context.Context, m *Member) error {
	query := `
		UPDATE members
		SET first_name = $1, last_name = $2, phone = $3, date_of_birth = $4, gender = $5
		WHERE id = $6
	`

	result, err := r.db.ExecContext(ctx, query,
		m.FirstName, m.LastName, m.Phone, m.DateOfBirth, m.Gender, m.ID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *repository) Search(ctx context.Context, query string) ([]Member, error) {
	q := `
		SELECT id, email, password_hash, first_name, last_name, date_of_birth, gender, phone, created_at
		FROM members
		WHERE first_name ILIKE '%' || $1 || '%'
		   OR last_name ILIKE '%' || $1 || '%'
		   OR email ILIKE '%' || $1 || '%'
		ORDER BY last_name, first_name
	`

	members := []Member{}
	err := r.db.SelectContext(ctx, &members, q, query)
	if err != nil {
		return nil, err
	}

	return members, nil
}

func (r *repository) CreateMetric(ctx context.Context, hm *HealthMetric) (*HealthMetric, error) {
	query := `
		INSERT INTO health_metrics (member_id, weight_kg, height_cm, heart_rate_bpm, body_fat_percentage)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, member_id, weight_kg, height_cm, heart_rate_bpm, body_fat_percentage, recorded_at
	`

	var created HealthMetric
	err := r.db.GetContext(ctx, &created, query,
		hm.MemberID, hm.WeightKg, hm.HeightCm, hm.HeartRateBpm, hm.BodyFatPercentage)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetMetrics(ctx context.Context, memberID, limit int) ([]HealthMetric, error) {
	query := `
		SELECT id, member_id, weight_kg, height_cm, heart_rate_bpm, body_fat_percentage, recorded_at
		FROM health_metrics
		WHERE member_id = $1
		ORDER BY recorded_at DESC
		LIMIT $2
	`

	metrics := []HealthMetric{}
	err := r.db.SelectContext(ctx, &metrics, query, memberID, limit)
	if err != nil {
		return nil, err
	}

	return metrics, nil
}

func (r *repository) GetLatestMetric(ctx context.Context, memberID int) (*HealthMetric, error) {
	query := `
		SELECT id, member_id, weight_kg, height_cm, heart_rate_bpm, body_fat_percentage, recorded_at
		FROM health_metrics
		WHERE member_id = $1
		ORDER BY recorded_at DESC
		LIMIT 1
	`

	var hm HealthMetric
	err := r.db.GetContext(ctx, &hm, query, memberID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &hm, nil
}

func (r *repository) CountMetrics(ctx context.Context, memberID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM health_metrics WHERE member_id = $1`, memberID)
	return count, err
}

func (r *repository) CreateGoal(ctx context.Context, g *FitnessGoal) (*FitnessGoal, error) {
	query := `
		INSERT INTO fitness_goals (member_id, goal_type, target_value, current_value, deadline, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, member_id, goal_type, target_value, current_value, deadline, status, created_at
	`

	var created FitnessGoal
	err := r.db.GetContext(ctx, &created, query,
		g.MemberID, g.GoalType, g.TargetValue, g.CurrentValue, g.Deadline, g.Status)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetGoalByID(ctx context.Context, id int) (*FitnessGoal, error) {
	query := `
		SELECT id, member_id, goal_type, target_value, current_value, deadline, status, created_at
		FROM fitness_goals
		WHERE id = $1
	`

	var g FitnessGoal
	err := r.db.GetContext(ctx, &g, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, sql.ErrNoRows
	}
	if err != nil {
		return nil, err
	}

	return &g, nil
}

func (r *repository) GetGoalsByStatus(ctx context.Context, memberID int, status GoalStatus) ([]FitnessGoal, error) {
	query := `
		SELECT id, member_id, goal_type, target_value, current_value, deadline, status, created_at
		FROM fitness_goals
		WHERE member_id = $1 AND status = $2
		ORDER BY created_at DESC
	`

	goals := []FitnessGoal{}
	err := r.db.SelectContext(ctx, &goals, query, memberID, status)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *repository) UpdateGoal(ctx context.Context, g *FitnessGoal) error {
	query := `
		UPDATE fitness_goals
		SET target_value = $1, current_value = $2, deadline = $3, status = $4
		WHERE id = $5
	`

	_, err := r.db.ExecContext(ctx, query, g.TargetValue, g.CurrentValue, g.Deadline, g.Status, g.ID)
	return err
}

func (r *repository) CountRegistrations(ctx context.Context, memberID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM class_registrations
		WHERE member_id = $1 AND status IN ('registered', 'attended')
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, memberID)
	return count, err
}
