package session

import (
	"errors"
	"time"
)

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusNoShow    Status = "no_show"
)

var ErrInvalidStatus = errors.New("invalid session status")

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusCompleted, StatusCancelled, StatusNoShow:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

type Session struct {
	ID              int       `db:"id" json:"id"`
	MemberID        int       `db:"member_id" json:"member_id"`
	TrainerID       int       `db:"trainer_id" json:"trainer_id"`
	RoomID          *int      `db:"room_id" json:"room_id,omitempty"`
	ScheduledTime   time.Time `db:"scheduled_time" json:"scheduled_time"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Notes           *string   `db:"notes" json:"notes,omitempty"`
	Status          Status    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

func (s *Session) EndTime() time.Time {
	return s.ScheduledTime.Add(time.Duration(s.DurationMinutes) * time.Minute)
}

type BookRequest struct {
	TrainerID       int       `json:"trainer_id" binding:"required"`
	ScheduledTime   time.Time `json:"scheduled_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required"`
	RoomID          *int      `json:"room_id"`
	Notes           string    `json:"notes"`
}

type RescheduleRequest struct {
	NewTime time.Time `json:"new_time" binding:"required"`
}
