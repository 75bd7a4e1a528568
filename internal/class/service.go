package class

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fitclub/internal/interval"
	"fitclub/internal/logger"
	"fitclub/internal/member"
	"fitclub/internal/room"
	"fitclub/internal/trainer"
)

var (
	ErrClassNotFound        = errors.New("class not found")
	ErrTrainerNotFound      = errors.New("trainer not found")
	ErrRoomNotFound         = errors.New("room not found")
	ErrMemberNotFound       = errors.New("member not found")
	ErrInvalidDuration      = errors.New("duration must be positive")
	ErrInvalidCapacity      = errors.New("capacity must be positive")
	ErrCapacityExceeded     = errors.New("capacity exceeds room capacity")
	ErrPastSchedule         = errors.New("scheduled time must be in the future")
	ErrClassAlreadyEnded    = errors.New("class is already completed or cancelled")
	ErrAlreadyCancelled     = errors.New("already cancelled")
	ErrNotScheduled         = errors.New("class is not open for registration")
	ErrPastClass            = errors.New("class has already started")
	ErrAlreadyRegistered    = errors.New("member is already registered for this class")
	ErrClassFull            = errors.New("class is full")
	ErrSessionConflict      = errors.New("member has a training session at this time")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAttendedClass        = errors.New("cannot cancel a registration after attendance")
	ErrClassStarted         = errors.New("cannot cancel after the class has started")
)

// Notifier queues the registration confirmation email; nil disables
// notifications.
type Notifier interface {
	SendClassRegistrationConfirmation(ctx context.Context, to, name, className string, when time.Time) error
	SendCancellation(ctx context.Context, to, name, what, details string) error
}

type Service interface {
	CreateClass(ctx context.Context, req CreateClassRequest) (*FitnessClass, error)
	UpdateClass(ctx context.Context, classID int, req UpdateClassRequest) (*FitnessClass, error)
	CancelClass(ctx context.Context, classID int) error
	GetByID(ctx context.Context, classID int) (*FitnessClass, error)
	ListClasses(ctx context.Context, includePast bool) ([]FitnessClass, error)
	ListAvailable(ctx context.Context, from *time.Time) ([]FitnessClass, error)

	Register(ctx context.Context, memberID, classID int) (*Registration, error)
	CancelRegistration(ctx context.Context, memberID, registrationID int) error
	MarkAttendance(ctx context.Context, registrationID int, status RegistrationStatus) error
	ListMemberRegistrations(ctx context.Context, memberID int, upcomingOnly bool) ([]MemberRegistration, error)
}

type service struct {
	repo     Repository
	rooms    room.Service
	trainers trainer.Service
	members  member.Service
	notifier Notifier
}

func NewService(repo Repository, rooms room.Service, trainers trainer.Service, members member.Service, notifier Notifier) Service {
	return &service{repo: repo, rooms: rooms, trainers: trainers, members: members, notifier: notifier}
}

func bookingPurpose(className string) string {
	return fmt.Sprintf("Fitness Class: %s", className)
}

func (s *service) CreateClass(ctx context.Context, req CreateClassRequest) (*FitnessClass, error) {
	if _, err := s.trainers.GetByID(ctx, req.TrainerID); err != nil {
		return nil, ErrTrainerNotFound
	}

	rm, err := s.rooms.GetRoomByID(ctx, req.RoomID)
	if err != nil {
		return nil, ErrRoomNotFound
	}

	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	capacity := rm.Capacity
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		if *req.Capacity > rm.Capacity {
			return nil, ErrCapacityExceeded
		}
		capacity = *req.Capacity
	}

	if !req.ScheduledTime.After(time.Now()) {
		return nil, ErrPastSchedule
	}

	fc := &FitnessClass{
		Name:            req.Name,
		TrainerID:       req.TrainerID,
		RoomID:          req.RoomID,
		ScheduledTime:   req.ScheduledTime,
		DurationMinutes: req.DurationMinutes,
		Capacity:        capacity,
		Status:          StatusScheduled,
	}
	if req.Description != "" {
		fc.Description = &req.Description
	}

	created, err := s.repo.CreateClassWithBooking(ctx, fc, bookingPurpose(req.Name))
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"class_id":   created.ID,
		"trainer_id": created.TrainerID,
		"room_id":    created.RoomID,
	}).Info("class scheduled")

	return created, nil
}

func (s *service) UpdateClass(ctx context.Context, classID int, req UpdateClassRequest) (*FitnessClass, error) {
	fc, err := s.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}
	if fc.Status == StatusCancelled || fc.Status == StatusCompleted {
		return nil, ErrClassAlreadyEnded
	}

	timeChanged := false

	if req.Name != nil {
		fc.Name = *req.Name
	}
	if req.Description != nil {
		fc.Description = req.Description
	}
	if req.ScheduledTime != nil && !req.ScheduledTime.Equal(fc.ScheduledTime) {
		if !req.ScheduledTime.After(time.Now()) {
			return nil, ErrPastSchedule
		}
		fc.ScheduledTime = *req.ScheduledTime
		timeChanged = true
	}
	if req.DurationMinutes != nil && *req.DurationMinutes != fc.DurationMinutes {
		if *req.DurationMinutes <= 0 {
			return nil, ErrInvalidDuration
		}
		fc.DurationMinutes = *req.DurationMinutes
		timeChanged = true
	}
	if req.Capacity != nil {
		if *req.Capacity <= 0 {
			return nil, ErrInvalidCapacity
		}
		rm, err := s.rooms.GetRoomByID(ctx, fc.RoomID)
		if err != nil {
			return nil, ErrRoomNotFound
		}
		if *req.Capacity > rm.Capacity {
			return nil, ErrCapacityExceeded
		}
		fc.Capacity = *req.Capacity
	}
	if req.Status != nil {
		status, err := ParseStatus(*req.Status)
		if err != nil {
			return nil, err
		}
		fc.Status = status
	}

	// A moved class drags its room booking along and re-checks the room.
	if err := s.repo.UpdateClass(ctx, fc, timeChanged); err != nil {
		return nil, err
	}

	return fc, nil
}

func (s *service) CancelClass(ctx context.Context, classID int) error {
	fc, err := s.GetByID(ctx, classID)
	if err != nil {
		return err
	}
	if fc.Status == StatusCancelled {
		return ErrAlreadyCancelled
	}

	// The linked room booking is freed together with the class.
	if err := s.repo.CancelClassWithBooking(ctx, classID); err != nil {
		return err
	}

	logger.WithFields(map[string]interface{}{"class_id": classID}).Info("class cancelled")
	return nil
}

func (s *service) GetByID(ctx context.Context, classID int) (*FitnessClass, error) {
	fc, err := s.repo.GetClassByID(ctx, classID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClassNotFound
	}
	if err != nil {
		return nil, err
	}
	return fc, nil
}

func (s *service) ListClasses(ctx context.Context, includePast bool) ([]FitnessClass, error) {
	return s.repo.ListClasses(ctx, includePast)
}

func (s *service) ListAvailable(ctx context.Context, from *time.Time) ([]FitnessClass, error) {
	start := time.Now()
	if from != nil {
		start = *from
	}
	return s.repo.ListScheduledFrom(ctx, start)
}

func (s *service) Register(ctx context.Context, memberID, classID int) (*Registration, error) {
	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, ErrMemberNotFound
	}

	fc, err := s.GetByID(ctx, classID)
	if err != nil {
		return nil, err
	}

	if fc.Status != StatusScheduled {
		return nil, ErrNotScheduled
	}
	if !fc.ScheduledTime.After(time.Now()) {
		return nil, ErrPastClass
	}

	existing, err := s.repo.GetActiveRegistration(ctx, memberID, classID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyRegistered
	}

	count, err := s.repo.CountRegistered(ctx, classID)
	if err != nil {
		return nil, err
	}
	if count >= fc.Capacity {
		return nil, ErrClassFull
	}

	windows, err := s.repo.GetMemberSessionWindows(ctx, memberID, classDate(fc.ScheduledTime))
	if err != nil {
		return nil, err
	}
	for _, w := range windows {
		wEnd := w.ScheduledTime.Add(time.Duration(w.DurationMinutes) * time.Minute)
		if interval.OverlapsAt(fc.ScheduledTime, fc.EndTime(), w.ScheduledTime, wEnd) {
			return nil, ErrSessionConflict
		}
	}

	reg, err := s.repo.CreateRegistration(ctx, memberID, classID)
	if errors.Is(err, ErrDuplicateRegistration) {
		// Concurrent register slipped past the read above; the unique
		// constraint on (member, class) caught it.
		return nil, ErrAlreadyRegistered
	}
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.SendClassRegistrationConfirmation(ctx, m.Email, m.FirstName, fc.Name, fc.ScheduledTime); err != nil {
			logger.WithError(err).Error("failed to queue registration confirmation")
		}
	}

	return reg, nil
}

func (s *service) CancelRegistration(ctx context.Context, memberID, registrationID int) error {
	reg, err := s.repo.GetRegistrationByID(ctx, registrationID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRegistrationNotFound
	}
	if err != nil {
		return err
	}
	if reg.MemberID != memberID {
		return ErrRegistrationNotFound
	}

	switch reg.Status {
	case RegStatusCancelled:
		return ErrAlreadyCancelled
	case RegStatusAttended:
		return ErrAttendedClass
	}

	fc, err := s.GetByID(ctx, reg.ClassID)
	if err != nil {
		return err
	}
	if !fc.ScheduledTime.After(time.Now()) {
		return ErrClassStarted
	}

	if err := s.repo.UpdateRegistrationStatus(ctx, registrationID, RegStatusCancelled); err != nil {
		return err
	}

	if s.notifier != nil {
		if m, err := s.members.GetByID(ctx, memberID); err == nil {
			details := fmt.Sprintf("Class: %s on %s", fc.Name, fc.ScheduledTime.Format("Jan 2, 2006 at 3:04 PM"))
			if err := s.notifier.SendCancellation(ctx, m.Email, m.FirstName, "Class registration", details); err != nil {
				logger.WithError(err).Error("failed to queue cancellation notice")
			}
		}
	}

	return nil
}

func (s *service) MarkAttendance(ctx context.Context, registrationID int, status RegistrationStatus) error {
	if status != RegStatusAttended && status != RegStatusNoShow {
		return ErrInvalidRegistrationStatus
	}

	reg, err := s.repo.GetRegistrationByID(ctx, registrationID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrRegistrationNotFound
	}
	if err != nil {
		return err
	}
	if reg.Status != RegStatusRegistered {
		return ErrInvalidRegistrationStatus
	}

	return s.repo.UpdateRegistrationStatus(ctx, registrationID, status)
}

func (s *service) ListMemberRegistrations(ctx context.Context, memberID int, upcomingOnly bool) ([]MemberRegistration, error) {
	return s.repo.ListMemberRegistrations(ctx, memberID, upcomingOnly)
}
