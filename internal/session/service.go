package session

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fitclub/internal/logger"
	"fitclub/internal/member"
	"fitclub/internal/room"
	"fitclub/internal/trainer"
)

var (
	ErrMemberNotFound  = errors.New("member not found")
	ErrTrainerNotFound = errors.New("trainer not found")
	ErrRoomNotFound    = errors.New("room not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidDuration = errors.New("duration must be positive")
	ErrPastSchedule    = errors.New("scheduled time must be in the future")
	ErrPastSession     = errors.New("session has already taken place")
	ErrNotScheduled    = errors.New("session is not in scheduled state")

	// ErrTrainerUnavailable means no weekly availability window fully
	// contains the requested slot.
	ErrTrainerUnavailable = errors.New("trainer is not available at this time")
	ErrTrainerConflict    = errors.New("trainer has another session at this time")
	ErrMemberConflict     = errors.New("member has another session at this time")
	ErrRoomConflict       = errors.New("room is booked at this time")

	ErrAlreadyCancelled = errors.New("session is already cancelled")
	ErrAlreadyCompleted = errors.New("session is already completed")
)

// Notifier queues the booking confirmation email; nil disables
// notifications.
type Notifier interface {
	SendSessionConfirmation(ctx context.Context, to, name, trainerName string, when time.Time) error
	SendCancellation(ctx context.Context, to, name, what, details string) error
}

type Service interface {
	Book(ctx context.Context, memberID int, req BookRequest) (*Session, error)
	Cancel(ctx context.Context, memberID, sessionID int) error
	Reschedule(ctx context.Context, memberID, sessionID int, newTime time.Time) (*Session, error)
	Complete(ctx context.Context, trainerID, sessionID int, status Status) error
	GetByID(ctx context.Context, sessionID int) (*Session, error)
	ListForMember(ctx context.Context, memberID int, upcomingOnly bool) ([]Session, error)
	ListForTrainer(ctx context.Context, trainerID int, upcomingOnly bool) ([]Session, error)
}

type service struct {
	repo     Repository
	members  member.Service
	trainers trainer.Service
	rooms    room.Service
	notifier Notifier
}

func NewService(repo Repository, members member.Service, trainers trainer.Service, rooms room.Service, notifier Notifier) Service {
	return &service{repo: repo, members: members, trainers: trainers, rooms: rooms, notifier: notifier}
}

func crossesMidnight(start time.Time, minutes int) bool {
	end := start.Add(time.Duration(minutes) * time.Minute)
	y1, m1, d1 := start.Date()
	y2, m2, d2 := end.Date()
	return y1 != y2 || m1 != m2 || d1 != d2
}

func (s *service) Book(ctx context.Context, memberID int, req BookRequest) (*Session, error) {
	m, err := s.members.GetByID(ctx, memberID)
	if err != nil {
		return nil, ErrMemberNotFound
	}
	tr, err := s.trainers.GetByID(ctx, req.TrainerID)
	if err != nil {
		return nil, ErrTrainerNotFound
	}
	if req.RoomID != nil {
		if _, err := s.rooms.GetRoomByID(ctx, *req.RoomID); err != nil {
			return nil, ErrRoomNotFound
		}
	}

	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	// Conflict checks compare clock strings within one calendar day, so a
	// slot running past midnight can never match and is rejected up front.
	if crossesMidnight(req.ScheduledTime, req.DurationMinutes) {
		return nil, ErrInvalidDuration
	}
	if !req.ScheduledTime.After(time.Now()) {
		return nil, ErrPastSchedule
	}

	sess := &Session{
		MemberID:        memberID,
		TrainerID:       req.TrainerID,
		RoomID:          req.RoomID,
		ScheduledTime:   req.ScheduledTime,
		DurationMinutes: req.DurationMinutes,
		Status:          StatusScheduled,
	}
	if req.Notes != "" {
		sess.Notes = &req.Notes
	}

	created, err := s.repo.CreateSession(ctx, sess)
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"session_id": created.ID,
		"member_id":  created.MemberID,
		"trainer_id": created.TrainerID,
	}).Info("training session booked")

	if s.notifier != nil {
		trainerName := tr.FirstName + " " + tr.LastName
		if err := s.notifier.SendSessionConfirmation(ctx, m.Email, m.FirstName, trainerName, created.ScheduledTime); err != nil {
			logger.WithError(err).Error("failed to queue session confirmation")
		}
	}

	return created, nil
}

func (s *service) Cancel(ctx context.Context, memberID, sessionID int) error {
	sess, err := s.getOwned(ctx, memberID, sessionID)
	if err != nil {
		return err
	}

	switch sess.Status {
	case StatusCancelled:
		return ErrAlreadyCancelled
	case StatusCompleted:
		return ErrAlreadyCompleted
	}
	if !sess.ScheduledTime.After(time.Now()) {
		return ErrPastSession
	}

	if err := s.repo.UpdateSessionStatus(ctx, sessionID, StatusCancelled); err != nil {
		return err
	}

	if s.notifier != nil {
		if m, err := s.members.GetByID(ctx, memberID); err == nil {
			details := "Personal training on " + sess.ScheduledTime.Format("Jan 2, 2006 at 3:04 PM")
			if err := s.notifier.SendCancellation(ctx, m.Email, m.FirstName, "Training session", details); err != nil {
				logger.WithError(err).Error("failed to queue cancellation notice")
			}
		}
	}

	return nil
}

func (s *service) Reschedule(ctx context.Context, memberID, sessionID int, newTime time.Time) (*Session, error) {
	sess, err := s.getOwned(ctx, memberID, sessionID)
	if err != nil {
		return nil, err
	}

	if sess.Status != StatusScheduled {
		return nil, ErrNotScheduled
	}
	if !newTime.After(time.Now()) {
		return nil, ErrPastSchedule
	}
	if crossesMidnight(newTime, sess.DurationMinutes) {
		return nil, ErrInvalidDuration
	}

	replacement := &Session{
		MemberID:        sess.MemberID,
		TrainerID:       sess.TrainerID,
		RoomID:          sess.RoomID,
		ScheduledTime:   newTime,
		DurationMinutes: sess.DurationMinutes,
		Notes:           sess.Notes,
		Status:          StatusScheduled,
	}

	created, err := s.repo.RescheduleSession(ctx, sess, replacement)
	if err != nil {
		return nil, err
	}

	logger.WithFields(map[string]interface{}{
		"old_session_id": sess.ID,
		"new_session_id": created.ID,
	}).Info("training session rescheduled")

	return created, nil
}

func (s *service) Complete(ctx context.Context, trainerID, sessionID int, status Status) error {
	if status != StatusCompleted && status != StatusNoShow {
		return ErrInvalidStatus
	}

	sess, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.TrainerID != trainerID {
		return ErrSessionNotFound
	}
	if sess.Status != StatusScheduled {
		return ErrNotScheduled
	}

	return s.repo.UpdateSessionStatus(ctx, sessionID, status)
}

func (s *service) GetByID(ctx context.Context, sessionID int) (*Session, error) {
	sess, err := s.repo.GetSessionByID(ctx, sessionID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *service) ListForMember(ctx context.Context, memberID int, upcomingOnly bool) ([]Session, error) {
	return s.repo.ListMemberSessions(ctx, memberID, upcomingOnly)
}

func (s *service) ListForTrainer(ctx context.Context, trainerID int, upcomingOnly bool) ([]Session, error) {
	return s.repo.ListTrainerSessions(ctx, trainerID, upcomingOnly)
}

func (s *service) getOwned(ctx context.Context, memberID, sessionID int) (*Session, error) {
	sess, err := s.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if sess.MemberID != memberID {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}
