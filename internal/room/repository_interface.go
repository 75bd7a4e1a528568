package room

import (
	"context"
	"time"
)

type Repository interface {
	CreateRoom(ctx context.Context, name string, capacity int, roomType RoomType) (*Room, error)
	GetRoomByID(ctx context.Context, id int) (*Room, error)
	GetRoomByName(ctx context.Context, name string) (*Room, error)
	GetAllRooms(ctx context.Context) ([]Room, error)

	// CreateBooking inserts a confirmed booking after re-running the overlap
	// scan under a lock on the room row, so two concurrent calls for the same
	// room cannot both pass the conflict check.
	CreateBooking(ctx context.Context, roomID int, date time.Time, startTime, endTime string, purpose *string, adminID *int) (*Booking, error)
	GetBookingByID(ctx context.Context, id int) (*Booking, error)
	CancelBooking(ctx context.Context, id int) error
	GetActiveBookingsForDate(ctx context.Context, roomID int, date time.Time) ([]Booking, error)
	ListBookings(ctx context.Context, roomID int, fromDate *time.Time) ([]Booking, error)
}
