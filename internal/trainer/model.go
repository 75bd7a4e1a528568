package trainer

import (
	"time"

	"fitclub/internal/interval"
)

type Trainer struct {
	ID             int       `db:"id" json:"id"`
	Email          string    `db:"email" json:"email"`
	PasswordHash   string    `db:"password_hash" json:"-"`
	FirstName      string    `db:"first_name" json:"first_name"`
	LastName       string    `db:"last_name" json:"last_name"`
	Specialization *string   `db:"specialization" json:"specialization,omitempty"`
	Phone          *string   `db:"phone" json:"phone,omitempty"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

// Availability is a recurring weekly window. Windows for the same trainer
// and day must not overlap; exact duplicates are also rejected by a unique
// constraint.
type Availability struct {
	ID        int              `db:"id" json:"id"`
	TrainerID int              `db:"trainer_id" json:"trainer_id"`
	DayOfWeek interval.Weekday `db:"day_of_week" json:"day_of_week"`
	StartTime string           `db:"start_time" json:"start_time"`
	EndTime   string           `db:"end_time" json:"end_time"`
}

// ScheduledClass is the slice of a fitness class a trainer's schedule needs.
// Kept local to avoid a dependency on the class package.
type ScheduledClass struct {
	ID            int       `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	RoomID        int       `db:"room_id" json:"room_id"`
	ScheduledTime time.Time `db:"scheduled_time" json:"scheduled_time"`
	DurationMins  int       `db:"duration_minutes" json:"duration_minutes"`
	Status        string    `db:"status" json:"status"`
}

type Schedule struct {
	Trainer         Trainer          `json:"trainer"`
	Availability    []Availability   `json:"availability"`
	UpcomingClasses []ScheduledClass `json:"upcoming_classes"`
}

type RegisterRequest struct {
	Email          string `json:"email" binding:"required,email"`
	Password       string `json:"password" binding:"required,min=8"`
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Specialization string `json:"specialization"`
	Phone          string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string  `json:"access_token"`
	RefreshToken string  `json:"refresh_token"`
	Trainer      Trainer `json:"trainer"`
}

type SetAvailabilityRequest struct {
	DayOfWeek string `json:"day_of_week" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
}
