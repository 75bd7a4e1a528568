package class

import (
	"errors"
	"time"
)

type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

var ErrInvalidStatus = errors.New("invalid class status")

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusScheduled, StatusInProgress, StatusCompleted, StatusCancelled:
		return Status(s), nil
	}
	return "", ErrInvalidStatus
}

type RegistrationStatus string

const (
	RegStatusRegistered RegistrationStatus = "registered"
	RegStatusAttended   RegistrationStatus = "attended"
	RegStatusCancelled  RegistrationStatus = "cancelled"
	RegStatusNoShow     RegistrationStatus = "no_show"
)

var ErrInvalidRegistrationStatus = errors.New("invalid registration status")

func ParseRegistrationStatus(s string) (RegistrationStatus, error) {
	switch RegistrationStatus(s) {
	case RegStatusRegistered, RegStatusAttended, RegStatusCancelled, RegStatusNoShow:
		return RegistrationStatus(s), nil
	}
	return "", ErrInvalidRegistrationStatus
}

// FitnessClass always carries the room booking created alongside it; the two
// rows live and die together.
type FitnessClass struct {
	ID              int       `db:"id" json:"id"`
	Name            string    `db:"name" json:"name"`
	Description     *string   `db:"description" json:"description,omitempty"`
	TrainerID       int       `db:"trainer_id" json:"trainer_id"`
	RoomID          int       `db:"room_id" json:"room_id"`
	RoomBookingID   int       `db:"room_booking_id" json:"room_booking_id"`
	ScheduledTime   time.Time `db:"scheduled_time" json:"scheduled_time"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	Capacity        int       `db:"capacity" json:"capacity"`
	Status          Status    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}

func (fc *FitnessClass) EndTime() time.Time {
	return fc.ScheduledTime.Add(time.Duration(fc.DurationMinutes) * time.Minute)
}

type Registration struct {
	ID           int                `db:"id" json:"id"`
	MemberID     int                `db:"member_id" json:"member_id"`
	ClassID      int                `db:"class_id" json:"class_id"`
	Status       RegistrationStatus `db:"status" json:"status"`
	RegisteredAt time.Time          `db:"registered_at" json:"registered_at"`
}

// MemberRegistration is the registration joined with its class, for listings.
type MemberRegistration struct {
	Registration
	ClassName       string    `db:"class_name" json:"class_name"`
	ScheduledTime   time.Time `db:"scheduled_time" json:"scheduled_time"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	ClassStatus     Status    `db:"class_status" json:"class_status"`
}

// sessionWindow is a member's scheduled PT session slice used for the
// registration conflict check, read without importing the session package.
type sessionWindow struct {
	ScheduledTime   time.Time `db:"scheduled_time"`
	DurationMinutes int       `db:"duration_minutes"`
}

type CreateClassRequest struct {
	Name            string    `json:"name" binding:"required"`
	Description     string    `json:"description"`
	TrainerID       int       `json:"trainer_id" binding:"required"`
	RoomID          int       `json:"room_id" binding:"required"`
	ScheduledTime   time.Time `json:"scheduled_time" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required"`
	Capacity        *int      `json:"capacity"`
}

type UpdateClassRequest struct {
	Name            *string    `json:"name"`
	Description     *string    `json:"description"`
	ScheduledTime   *time.Time `json:"scheduled_time"`
	DurationMinutes *int       `json:"duration_minutes"`
	Capacity        *int       `json:"capacity"`
	Status          *string    `json:"status"`
}
