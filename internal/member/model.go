package member

import (
	"errors"
	"time"
)

type Gender string

const (
	GenderMale           Gender = "male"
	GenderFemale         Gender = "female"
	GenderOther          Gender = "other"
	GenderPreferNotToSay Gender = "prefer_not_to_say"
)

var ErrInvalidGender = errors.New("invalid gender")

func ParseGender(s string) (Gender, error) {
	switch Gender(s) {
	case GenderMale, GenderFemale, GenderOther, GenderPreferNotToSay:
		return Gender(s), nil
	}
	return "", ErrInvalidGender
}

type GoalType string

const (
	GoalWeightLoss       GoalType = "weight_loss"
	GoalWeightGain       GoalType = "weight_gain"
	GoalBodyFatReduction GoalType = "body_fat_reduction"
	GoalMuscleGain       GoalType = "muscle_gain"
	GoalEndurance        GoalType = "endurance"
	GoalFlexibility      GoalType = "flexibility"
	GoalGeneralFitness   GoalType = "general_fitness"
)

var ErrInvalidGoalType = errors.New("invalid goal type")

func ParseGoalType(s string) (GoalType, error) {
	switch GoalType(s) {
	case GoalWeightLoss, GoalWeightGain, GoalBodyFatReduction, GoalMuscleGain,
		GoalEndurance, GoalFlexibility, GoalGeneralFitness:
		return GoalType(s), nil
	}
	return "", ErrInvalidGoalType
}

type GoalStatus string

const (
	GoalActive    GoalStatus = "active"
	GoalCompleted GoalStatus = "completed"
	GoalCancelled GoalStatus = "cancelled"
	GoalPaused    GoalStatus = "paused"
)

var ErrInvalidGoalStatus = errors.New("invalid goal status")

func ParseGoalStatus(s string) (GoalStatus, error) {
	switch GoalStatus(s) {
	case GoalActive, GoalCompleted, GoalCancelled, GoalPaused:
		return GoalStatus(s), nil
	}
	return "", ErrInvalidGoalStatus
}

type Member struct {
	ID           int        `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	FirstName    string     `db:"first_name" json:"first_name"`
	LastName     string     `db:"last_name" json:"last_name"`
	DateOfBirth  *time.Time `db:"date_of_birth" json:"date_of_birth,omitempty"`
	Gender       *Gender    `db:"gender" json:"gender,omitempty"`
	Phone        *string    `db:"phone" json:"phone,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// HealthMetric is an append-only snapshot; entries are never overwritten.
type HealthMetric struct {
	ID                int        `db:"id" json:"id"`
	MemberID          int        `db:"member_id" json:"member_id"`
	WeightKg          *float64   `db:"weight_kg" json:"weight_kg,omitempty"`
	HeightCm          *float64   `db:"height_cm" json:"height_cm,omitempty"`
	HeartRateBpm      *int       `db:"heart_rate_bpm" json:"heart_rate_bpm,omitempty"`
	BodyFatPercentage *float64   `db:"body_fat_percentage" json:"body_fat_percentage,omitempty"`
	RecordedAt        time.Time  `db:"recorded_at" json:"recorded_at"`
}

type FitnessGoal struct {
	ID           int        `db:"id" json:"id"`
	MemberID     int        `db:"member_id" json:"member_id"`
	GoalType     GoalType   `db:"goal_type" json:"goal_type"`
	TargetValue  float64    `db:"target_value" json:"target_value"`
	CurrentValue *float64   `db:"current_value" json:"current_value,omitempty"`
	Deadline     *time.Time `db:"deadline" json:"deadline,omitempty"`
	Status       GoalStatus `db:"status" json:"status"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

type Dashboard struct {
	Member             Member        `json:"member"`
	LatestMetric       *HealthMetric `json:"latest_metric,omitempty"`
	ActiveGoals        []FitnessGoal `json:"active_goals"`
	RegistrationCount  int           `json:"registration_count"`
	HealthHistoryCount int           `json:"health_history_count"`
}

type RegisterRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	FirstName   string `json:"first_name" binding:"required"`
	LastName    string `json:"last_name" binding:"required"`
	DateOfBirth string `json:"date_of_birth"`
	Gender      string `json:"gender"`
	Phone       string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	Member       Member `json:"member"`
}

type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name"`
	LastName    *string `json:"last_name"`
	Phone       *string `json:"phone"`
	DateOfBirth *string `json:"date_of_birth"`
	Gender      *string `json:"gender"`
}

type LogMetricRequest struct {
	WeightKg          *float64 `json:"weight_kg"`
	HeightCm          *float64 `json:"height_cm"`
	HeartRateBpm      *int     `json:"heart_rate_bpm"`
	BodyFatPercentage *float64 `json:"body_fat_percentage"`
}

type CreateGoalRequest struct {
	GoalType     string   `json:"goal_type" binding:"required"`
	TargetValue  float64  `json:"target_value" binding:"required"`
	CurrentValue *float64 `json:"current_value"`
	Deadline     string   `json:"deadline"`
}

type UpdateGoalRequest struct {
	CurrentValue *float64 `json:"current_value"`
	TargetValue  *float64 `json:"target_value"`
	Deadline     *string  `json:"deadline"`
	Status       *string  `json:"status"`
}
