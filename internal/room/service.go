package room

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitclub/internal/interval"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrDuplicateName    = errors.New("room with this name already exists")
	ErrInvalidCapacity  = errors.New("capacity must be positive")
	ErrInvalidTimeRange = errors.New("end time must be after start time")
	ErrPastDate         = errors.New("cannot book for past dates")
	ErrBookingNotFound  = errors.New("booking not found")
	ErrAlreadyCancelled = errors.New("booking is already cancelled")
)

// ConflictError reports the existing booking window that blocked a request.
type ConflictError struct {
	StartTime string
	EndTime   string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("room is already booked from %s to %s", e.StartTime, e.EndTime)
}

type Service interface {
	CreateRoom(ctx context.Context, req CreateRoomRequest) (*Room, error)
	GetRoomByID(ctx context.Context, id int) (*Room, error)
	GetAllRooms(ctx context.Context) ([]Room, error)

	Book(ctx context.Context, roomID int, date time.Time, startTime, endTime, purpose string, adminID *int) (*Booking, error)
	Cancel(ctx context.Context, bookingID int) error
	IsAvailable(ctx context.Context, roomID int, date time.Time, startTime, endTime string) (bool, error)
	ListBookings(ctx context.Context, roomID int, fromDate *time.Time) ([]Booking, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) CreateRoom(ctx context.Context, req CreateRoomRequest) (*Room, error) {
	if req.Capacity <= 0 {
		return nil, ErrInvalidCapacity
	}

	roomType, err := ParseRoomType(req.RoomType)
	if err != nil {
		return nil, err
	}

	if existing, err := s.repo.GetRoomByName(ctx, req.Name); err == nil && existing != nil {
		return nil, ErrDuplicateName
	}

	return s.repo.CreateRoom(ctx, req.Name, req.Capacity, roomType)
}

func (s *service) GetRoomByID(ctx context.Context, id int) (*Room, error) {
	room, err := s.repo.GetRoomByID(ctx, id)
	if err != nil {
		return nil, ErrRoomNotFound
	}
	return room, nil
}

func (s *service) GetAllRooms(ctx context.Context) ([]Room, error) {
	return s.repo.GetAllRooms(ctx)
}

func (s *service) Book(ctx context.Context, roomID int, date time.Time, startTime, endTime, purpose string, adminID *int) (*Booking, error) {
	if _, err := s.repo.GetRoomByID(ctx, roomID); err != nil {
		return nil, ErrRoomNotFound
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

	if dateOnly(date).Before(dateOnly(time.Now())) {
		return nil, ErrPastDate
	}

	var purposePtr *string
	if purpose != "" {
		purposePtr = &purpose
	}

	// Repository re-runs the overlap scan under a room lock and returns
	// *ConflictError on collision.
	return s.repo.CreateBooking(ctx, roomID, dateOnly(date), startTime, endTime, purposePtr, adminID)
}

func (s *service) Cancel(ctx context.Context, bookingID int) error {
	if _, err := s.repo.GetBookingByID(ctx, bookingID); err != nil {
		return ErrBookingNotFound
	}

	err := s.repo.CancelBooking(ctx, bookingID)
	if errors.Is(err, ErrBookingNotFoundOrAlreadyCancelled) {
		return ErrAlreadyCancelled
	}
	return err
}

// IsAvailable ignores past-date validation on purpose: other managers use it
// for lookahead checks against windows derived from future timestamps.
func (s *service) IsAvailable(ctx context.Context, roomID int, date time.Time, startTime, endTime string) (bool, error) {
	bookings, err := s.repo.GetActiveBookingsForDate(ctx, roomID, dateOnly(date))
	if err != nil {
		return false, err
	}

	for _, b := range bookings {
		if interval.Overlaps(startTime, endTime, b.StartTime, b.EndTime) {
			return false, nil
		}
	}
	return true, nil
}

func (s *service) ListBookings(ctx context.Context, roomID int, fromDate *time.Time) ([]Booking, error) {
	if _, err := s.repo.GetRoomByID(ctx, roomID); err != nil {
		return nil, ErrRoomNotFound
	}
	return s.repo.ListBookings(ctx, roomID, fromDate)
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
