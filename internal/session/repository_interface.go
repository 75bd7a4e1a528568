package session

import "context"

type Repository interface {
	// CreateSession re-runs every conflict check under a lock on the trainer
	// row before inserting, so two concurrent bookings against the same
	// trainer serialize. Returns ErrTrainerUnavailable, ErrTrainerConflict,
	// ErrMemberConflict or ErrRoomConflict when a check fails.
	CreateSession(ctx context.Context, s *Session) (*Session, error)

	// RescheduleSession cancels old and books a replacement at the new time
	// in one transaction; if the new slot fails any check, the old session is
	// left untouched.
	RescheduleSession(ctx context.Context, old *Session, replacement *Session) (*Session, error)

	GetSessionByID(ctx context.Context, id int) (*Session, error)
	UpdateSessionStatus(ctx context.Context, id int, status Status) error
	ListMemberSessions(ctx context.Context, memberID int, upcomingOnly bool) ([]Session, error)
	ListTrainerSessions(ctx context.Context, trainerID int, upcomingOnly bool) ([]Session, error)
}
