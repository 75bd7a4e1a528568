package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fitclub/internal/auth"
	"fitclub/internal/logger"
)

var (
	ErrMemberNotFound     = errors.New("member not found")
	ErrEmailTaken         = errors.New("email is already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrFutureBirthDate    = errors.New("date of birth cannot be in the future")
	ErrNoMetricValues     = errors.New("at least one metric value is required")
	ErrInvalidMetric      = errors.New("invalid metric value")
	ErrGoalNotFound       = errors.New("fitness goal not found")
	ErrPastDeadline       = errors.New("goal deadline cannot be in the past")
	ErrInvalidTarget      = errors.New("target value must be positive")
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Member, error)
	Authenticate(ctx context.Context, email, password string) (*Member, error)
	GetByID(ctx context.Context, id int) (*Member, error)
	UpdateProfile(ctx context.Context, memberID int, req UpdateProfileRequest) (*Member, error)
	Search(ctx context.Context, query string) ([]Member, error)

	LogMetric(ctx context.Context, memberID int, req LogMetricRequest) (*HealthMetric, error)
	HealthHistory(ctx context.Context, memberID, limit int) ([]HealthMetric, error)
	LatestMetric(ctx context.Context, memberID int) (*HealthMetric, error)

	CreateGoal(ctx context.Context, memberID int, req CreateGoalRequest) (*FitnessGoal, error)
	ActiveGoals(ctx context.Context, memberID int) ([]FitnessGoal, error)
	UpdateGoal(ctx context.Context, memberID, goalID int, req UpdateGoalRequest) (*FitnessGoal, error)

	Dashboard(ctx context.Context, memberID int) (*Dashboard, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Member, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("checking email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	m := &Member{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	}

	if req.DateOfBirth != "" {
		dob, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("invalid date_of_birth: %w", err)
		}
		if dob.After(time.Now()) {
			return nil, ErrFutureBirthDate
		}
		m.DateOfBirth = &dob
	}

	if req.Gender != "" {
		g, err := ParseGender(req.Gender)
		if err != nil {
			return nil, err
		}
		m.Gender = &g
	}

	if req.Phone != "" {
		m.Phone = &req.Phone
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}
	m.PasswordHash = hash

	created, err := s.repo.Create(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("creating member: %w", err)
	}

	logger.WithFields(map[string]interface{}{
		"member_id": created.ID,
		"email":     created.Email,
	}).Info("member registered")

	return created, nil
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*Member, error) {
	m, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if !auth.CheckPassword(m.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return m, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Member, error) {
	m, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrMemberNotFound
	}
	return m, err
}

func (s *service) UpdateProfile(ctx context.Context, memberID int, req UpdateProfileRequest) (*Member, error) {
	m, err := s.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	if req.FirstName != nil {
		m.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		m.LastName = *req.LastName
	}
	if req.Phone != nil {
		m.Phone = req.Phone
	}
	if req.DateOfBirth != nil {
		dob, err := time.Parse("2006-01-02", *req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("invalid date_of_birth: %w", err)
		}
		if dob.After(time.Now()) {
			return nil, ErrFutureBirthDate
		}
		m.DateOfBirth = &dob
	}
	if req.Gender != nil {
		g, err := ParseGender(*req.Gender)
		if err != nil {
			return nil, err
		}
		m.Gender = &g
	}

	if err := s.repo.Update(ctx, m); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	return m, nil
}

func (s *service) Search(ctx context.Context, query string) ([]Member, error) {
	return s.repo.Search(ctx, query)
}

func (s *service) LogMetric(ctx context.Context, memberID int, req LogMetricRequest) (*HealthMetric, error) {
	if _, err := s.GetByID(ctx, memberID); err != nil {
		return nil, err
	}

	if req.WeightKg == nil && req.HeightCm == nil && req.HeartRateBpm == nil && req.BodyFatPercentage == nil {
		return nil, ErrNoMetricValues
	}

	if req.WeightKg != nil && *req.WeightKg <= 0 {
		return nil, fmt.Errorf("%w: weight must be positive", ErrInvalidMetric)
	}
	if req.HeightCm != nil && *req.HeightCm <= 0 {
		return nil, fmt.Errorf("%w: height must be positive", ErrInvalidMetric)
	}
	if req.HeartRateBpm != nil && *req.HeartRateBpm <= 0 {
		return nil, fmt.Errorf("%w: heart rate must be positive", ErrInvalidMetric)
	}
	if req.BodyFatPercentage != nil && (*req.BodyFatPercentage < 0 || *req.BodyFatPercentage > 100) {
		return nil, fmt.Errorf("%w: body fat percentage must be between 0 and 100", ErrInvalidMetric)
	}

	hm := &HealthMetric{
		MemberID:          memberID,
		WeightKg:          req.WeightKg,
		HeightCm:          req.HeightCm,
		HeartRateBpm:      req.HeartRateBpm,
		BodyFatPercentage: req.BodyFatPercentage,
	}

	return s.repo.CreateMetric(ctx, hm)
}

func (s *service) HealthHistory(ctx context.Context, memberID, limit int) ([]HealthMetric, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.repo.GetMetrics(ctx, memberID, limit)
}

func (s *service) LatestMetric(ctx context.Context, memberID int) (*HealthMetric, error) {
	return s.repo.GetLatestMetric(ctx, memberID)
}

func (s *service) CreateGoal(ctx context.Context, memberID int, req CreateGoalRequest) (*FitnessGoal, error) {
	if _, err := s.GetByID(ctx, memberID); err != nil {
		return nil, err
	}

	goalType, err := ParseGoalType(req.GoalType)
	if err != nil {
		return nil, err
	}

	if req.TargetValue <= 0 {
		return nil, ErrInvalidTarget
	}

	g := &FitnessGoal{
		MemberID:     memberID,
		GoalType:     goalType,
		TargetValue:  req.TargetValue,
		CurrentValue: req.CurrentValue,
		Status:       GoalActive,
	}

	if req.Deadline != "" {
		deadline, err := time.Parse("2006-01-02", req.Deadline)
		if err != nil {
			return nil, fmt.Errorf("invalid deadline: %w", err)
		}
		if deadline.Before(time.Now().Truncate(24 * time.Hour)) {
			return nil, ErrPastDeadline
		}
		g.Deadline = &deadline
	}

	return s.repo.CreateGoal(ctx, g)
}

func (s *service) ActiveGoals(ctx context.Context, memberID int) ([]FitnessGoal, error) {
	return s.repo.GetGoalsByStatus(ctx, memberID, GoalActive)
}

func (s *service) UpdateGoal(ctx context.Context, memberID, goalID int, req UpdateGoalRequest) (*FitnessGoal, error) {
	g, err := s.repo.GetGoalByID(ctx, goalID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, err
	}
	if g.MemberID != memberID {
		return nil, ErrGoalNotFound
	}

	if req.TargetValue != nil {
		if *req.TargetValue <= 0 {
			return nil, ErrInvalidTarget
		}
		g.TargetValue = *req.TargetValue
	}
	if req.CurrentValue != nil {
		g.CurrentValue = req.CurrentValue
	}
	if req.Deadline != nil {
		deadline, err := time.Parse("2006-01-02", *req.Deadline)
		if err != nil {
			return nil, fmt.Errorf("invalid deadline: %w", err)
		}
		g.Deadline = &deadline
	}
	if req.Status != nil {
		status, err := ParseGoalStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		g.Status = status
	}

	if err := s.repo.UpdateGoal(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

func (s *service) Dashboard(ctx context.Context, memberID int) (*Dashboard, error) {
	m, err := s.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	latest, err := s.repo.GetLatestMetric(ctx, memberID)
	if err != nil {
		return nil, err
	}

	goals, err := s.repo.GetGoalsByStatus(ctx, memberID, GoalActive)
	if err != nil {
		return nil, err
	}

	regCount, err := s.repo.CountRegistrations(ctx, memberID)
	if err != nil {
		return nil, err
	}

	metricCount, err := s.repo.CountMetrics(ctx, memberID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Member:             *m,
		LatestMetric:       latest,
		ActiveGoals:        goals,
		RegistrationCount:  regCount,
		HealthHistoryCount: metricCount,
	}, nil
}
