package class

import (
	"context"
	"time"
)

type Repository interface {
	// CreateClassWithBooking inserts the class and its confirmed room booking
	// in one transaction; the room overlap scan reruns under a lock on the
	// room row, so a conflicting booking cannot slip in between check and
	// insert. Returns *RoomConflictError when the room window is taken.
	CreateClassWithBooking(ctx context.Context, fc *FitnessClass, purpose string) (*FitnessClass, error)

	// UpdateClass persists the class fields; when moveBooking is set it also
	// moves the linked room booking to the class's current window, re-running
	// the overlap scan (excluding the class's own booking) inside the same
	// transaction.
	UpdateClass(ctx context.Context, fc *FitnessClass, moveBooking bool) error

	// CancelClassWithBooking marks both the class and its linked room booking
	// cancelled in one transaction.
	CancelClassWithBooking(ctx context.Context, classID int) error

	GetClassByID(ctx context.Context, id int) (*FitnessClass, error)
	ListClasses(ctx context.Context, includePast bool) ([]FitnessClass, error)
	ListScheduledFrom(ctx context.Context, from time.Time) ([]FitnessClass, error)

	// CreateRegistration returns ErrDuplicateRegistration when the unique
	// constraint on (member, class) trips under a concurrent register.
	CreateRegistration(ctx context.Context, memberID, classID int) (*Registration, error)
	GetRegistrationByID(ctx context.Context, id int) (*Registration, error)
	GetActiveRegistration(ctx context.Context, memberID, classID int) (*Registration, error)
	CountRegistered(ctx context.Context, classID int) (int, error)
	UpdateRegistrationStatus(ctx context.Context, registrationID int, status RegistrationStatus) error
	ListMemberRegistrations(ctx context.Context, memberID int, upcomingOnly bool) ([]MemberRegistration, error)

	GetMemberSessionWindows(ctx context.Context, memberID int, from time.Time) ([]sessionWindow, error)
}
