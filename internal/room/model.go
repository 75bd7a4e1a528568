package room

import (
	"errors"
	"time"
)

type RoomType string

const (
	TypeStudio       RoomType = "studio"
	TypeGymFloor     RoomType = "gym_floor"
	TypeTrainingRoom RoomType = "training_room"
	TypePool         RoomType = "pool"
	TypeOutdoor      RoomType = "outdoor"
)

var ErrInvalidRoomType = errors.New("invalid room type")

func ParseRoomType(s string) (RoomType, error) {
	switch RoomType(s) {
	case TypeStudio, TypeGymFloor, TypeTrainingRoom, TypePool, TypeOutdoor:
		return RoomType(s), nil
	}
	return "", ErrInvalidRoomType
}

type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusPending   BookingStatus = "pending"
	StatusCancelled BookingStatus = "cancelled"
)

type Room struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Capacity  int       `db:"capacity" json:"capacity"`
	RoomType  RoomType  `db:"room_type" json:"room_type"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Booking is a room reservation for a single date. Start and end are
// half-open "HH:MM" clock times; cancelled bookings are retained.
type Booking struct {
	ID            int           `db:"id" json:"id"`
	RoomID        int           `db:"room_id" json:"room_id"`
	BookingDate   time.Time     `db:"booking_date" json:"booking_date"`
	StartTime     string        `db:"start_time" json:"start_time"`
	EndTime       string        `db:"end_time" json:"end_time"`
	Purpose       *string       `db:"purpose" json:"purpose,omitempty"`
	BookedByAdmin *int          `db:"booked_by_admin_id" json:"booked_by_admin_id,omitempty"`
	Status        BookingStatus `db:"status" json:"status"`
	CreatedAt     time.Time     `db:"created_at" json:"created_at"`
}

type CreateRoomRequest struct {
	Name     string `json:"name" binding:"required"`
	Capacity int    `json:"capacity" binding:"required,min=1"`
	RoomType string `json:"room_type" binding:"required"`
}

type BookRoomRequest struct {
	Date      string `json:"date" binding:"required"`
	StartTime string `json:"start_time" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Purpose   string `json:"purpose"`
}
