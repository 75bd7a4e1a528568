package room

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"fitclub/internal/api"
	"fitclub/internal/auth"
	"fitclub/internal/metrics"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// @Summary      Create a room
// @Description  Admin-only: add a physical room to the club
// @Tags         admin,rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body room.CreateRoomRequest true "Room payload"
// @Success      201 {object} room.Room
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/rooms [post]
func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	room, err := h.service.CreateRoom(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidRoomType), errors.Is(err, ErrInvalidCapacity):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrDuplicateName):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create room"})
		}
		return
	}

	c.JSON(http.StatusCreated, room)
}

// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} room.Room
// @Failure      500 {object} api.ErrorResponse
// @Router       /rooms [get]
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.service.GetAllRooms(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch rooms"})
		return
	}

	c.JSON(http.StatusOK, rooms)
}

// @Summary      Book a room
// @Description  Admin-only: reserve a room for a date and time window
// @Tags         admin,rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        roomID path int true "Room ID"
// @Param        request body room.BookRoomRequest true "Booking payload"
// @Success      201 {object} room.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/rooms/{roomID}/bookings [post]
func (h *Handler) BookRoom(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("roomID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid room ID"})
		return
	}

	var req BookRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid date, expected YYYY-MM-DD"})
		return
	}

	var adminID *int
	if id, ok := auth.GetUserID(c); ok {
		adminID = &id
	}

	ctx := c.Request.Context()
	booking, err := h.service.Book(ctx, roomID, date, req.StartTime, req.EndTime, req.Purpose, adminID)
	if err != nil {
		var conflict *ConflictError
		switch {
		case errors.Is(err, ErrRoomNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrInvalidTimeRange), errors.Is(err, ErrPastDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.As(err, &conflict):
			metrics.RecordRoomBooking(metrics.OutcomeConflict)
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: conflict.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to book room"})
		}
		return
	}

	metrics.RecordRoomBooking(metrics.OutcomeBooked)
	c.JSON(http.StatusCreated, booking)
}

// @Summary      Cancel a room booking
// @Tags         admin,rooms
// @Produce      json
// @Security     BearerAuth
// @Param        bookingID path int true "Booking ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/bookings/{bookingID}/cancel [post]
func (h *Handler) CancelBooking(c *gin.Context) {
	bookingID, err := strconv.Atoi(c.Param("bookingID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid booking ID"})
		return
	}

	ctx := c.Request.Context()
	if err := h.service.Cancel(ctx, bookingID); err != nil {
		switch {
		case errors.Is(err, ErrBookingNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrAlreadyCancelled):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel booking"})
		}
		return
	}

	metrics.RecordCancellation("room_booking")
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Booking cancelled successfully"})
}

// @Summary      List bookings for a room
// @Tags         admin,rooms
// @Produce      json
// @Security     BearerAuth
// @Param        roomID path int true "Room ID"
// @Param        from query string false "From date (YYYY-MM-DD)"
// @Success      200 {array} room.Booking
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /admin/rooms/{roomID}/bookings [get]
func (h *Handler) ListBookings(c *gin.Context) {
	roomID, err := strconv.Atoi(c.Param("roomID"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid room ID"})
		return
	}

	var fromDate *time.Time
	if from := c.Query("from"); from != "" {
		parsed, err := time.Parse("2006-01-02", from)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid from date, expected YYYY-MM-DD"})
			return
		}
		fromDate = &parsed
	}

	ctx := c.Request.Context()
	bookings, err := h.service.ListBookings(ctx, roomID, fromDate)
	if err != nil {
		switch {
		case errors.Is(err, ErrRoomNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch bookings"})
		}
		return
	}

	c.JSON(http.StatusOK, bookings)
}
