package trainer

import (
	"context"
	"errors"
	"fmt"

	"fitclub/internal/auth"
	"fitclub/internal/interval"
)

var (
	ErrTrainerNotFound    = errors.New("trainer not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidTimeRange   = errors.New("end time must be after start time")
	ErrInvalidDay         = errors.New("invalid day of week")
)

// OverlapError reports the existing availability window that collides with a
// requested one.
type OverlapError struct {
	StartTime string
	EndTime   string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("time slot overlaps with existing availability (%s-%s)", e.StartTime, e.EndTime)
}

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Trainer, error)
	Authenticate(ctx context.Context, email, password string) (*Trainer, error)
	GetByID(ctx context.Context, id int) (*Trainer, error)
	GetAll(ctx context.Context) ([]Trainer, error)

	SetAvailability(ctx context.Context, trainerID int, dayOfWeek, startTime, endTime string) (*Availability, error)
	DeleteAvailability(ctx context.Context, trainerID, availabilityID int) error
	GetAvailability(ctx context.Context, trainerID int) ([]Availability, error)
	IsAvailableAt(ctx context.Context, trainerID int, day interval.Weekday, clockTime string) (bool, error)
	GetSchedule(ctx context.Context, trainerID int) (*Schedule, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Register(ctx context.Context, req RegisterRequest) (*Trainer, error) {
	exists, err := s.repo.EmailExists(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	var specialization, phone *string
	if req.Specialization != "" {
		specialization = &req.Specialization
	}
	if req.Phone != "" {
		phone = &req.Phone
	}

	return s.repo.Create(ctx, req.Email, passwordHash, req.FirstName, req.LastName, specialization, phone)
}

func (s *service) Authenticate(ctx context.Context, email, password string) (*Trainer, error) {
	trainer, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if !auth.CheckPassword(trainer.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return trainer, nil
}

func (s *service) GetByID(ctx context.Context, id int) (*Trainer, error) {
	trainer, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, ErrTrainerNotFound
	}
	return trainer, nil
}

func (s *service) GetAll(ctx context.Context) ([]Trainer, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) SetAvailability(ctx context.Context, trainerID int, dayOfWeek, startTime, endTime string) (*Availability, error) {
	if _, err := s.repo.FindByID(ctx, trainerID); err != nil {
		return nil, ErrTrainerNotFound
	}

	day, err := interval.ParseWeekday(dayOfWeek)
	if err != nil {
		return nil, ErrInvalidDay
	}

	if err := interval.ParseClock(startTime); err != nil {
		return nil, ErrInvalidTimeRange
	}
	if err := interval.ParseClock(endTime); err != nil {
		return nil, ErrInvalidTimeRange
	}
	if startTime >= endTime {
		return nil, ErrInvalidTimeRange
	}

	existing, err := s.repo.GetAvailabilityForDay(ctx, trainerID, day)
	if err != nil {
		return nil, err
	}

	for _, slot := range existing {
		if interval.Overlaps(startTime, endTime, slot.StartTime, slot.EndTime) {
			return nil, &OverlapError{StartTime: slot.StartTime, EndTime: slot.EndTime}
		}
	}

	// The unique constraint on (trainer, day, start, end) still rejects an
	// exact duplicate that races past the scan above.
	return s.repo.CreateAvailability(ctx, trainerID, day, startTime, endTime)
}

func (s *service) DeleteAvailability(ctx context.Context, trainerID, availabilityID int) error {
	return s.repo.DeleteAvailability(ctx, trainerID, availabilityID)
}

func (s *service) GetAvailability(ctx context.Context, trainerID int) ([]Availability, error) {
	if _, err := s.repo.FindByID(ctx, trainerID); err != nil {
		return nil, ErrTrainerNotFound
	}
	return s.repo.GetAvailability(ctx, trainerID)
}

func (s *service) IsAvailableAt(ctx context.Context, trainerID int, day interval.Weekday, clockTime string) (bool, error) {
	slots, err := s.repo.GetAvailabilityForDay(ctx, trainerID, day)
	if err != nil {
		return false, err
	}

	for _, slot := range slots {
		if slot.StartTime <= clockTime && clockTime < slot.EndTime {
			return true, nil
		}
	}
	return false, nil
}

func (s *service) GetSchedule(ctx context.Context, trainerID int) (*Schedule, error) {
	trainer, err := s.repo.FindByID(ctx, trainerID)
	if err != nil {
		return nil, ErrTrainerNotFound
	}

	availability, err := s.repo.GetAvailability(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	classes, err := s.repo.GetUpcomingClasses(ctx, trainerID)
	if err != nil {
		return nil, err
	}

	return &Schedule{
		Trainer:         *trainer,
		Availability:    availability,
		UpcomingClasses: classes,
	}, nil
}
