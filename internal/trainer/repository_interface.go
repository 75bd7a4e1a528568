package trainer

import (
	"context"

	"fitclub/internal/interval"
)

type Repository interface {
	Create(ctx context.Context, email, passwordHash, firstName, lastName string, specialization, phone *string) (*Trainer, error)
	FindByEmail(ctx context.Context, email string) (*Trainer, error)
	FindByID(ctx context.Context, id int) (*Trainer, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	GetAll(ctx context.Context) ([]Trainer, error)

	CreateAvailability(ctx context.Context, trainerID int, day interval.Weekday, startTime, endTime string) (*Availability, error)
	GetAvailabilityForDay(ctx context.Context, trainerID int, day interval.Weekday) ([]Availability, error)
	GetAvailability(ctx context.Context, trainerID int) ([]Availability, error)
	DeleteAvailability(ctx context.Context, trainerID, availabilityID int) error
	GetUpcomingClasses(ctx context.Context, trainerID int) ([]ScheduledClass, error)
}
