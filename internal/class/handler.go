package class

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

// @Summary      Schedule a group class
// @Tags         classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body class.CreateClassRequest true "Class data"
// @Success      201 {object} class.FitnessClass
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/classes [post]
func (h *Handler) CreateClass(c *gin.Context) {
	var req CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	fc, err := h.service.CreateClass(c.Request.Context(), req)
	if err != nil {
		var conflict *RoomConflictError
		switch {
		case errors.Is(err, ErrTrainerNotFound), errors.Is(err, ErrRoomNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrInvalidDuration), errors.Is(err, ErrInvalidCapacity),
			errors.Is(err, ErrCapacityExceeded), errors.Is(err, ErrPastSchedule):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.As(err, &conflict):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: conflict.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create class"})
		}
		return
	}

	metrics.RecordClassCreated()
	c.JSON(http.StatusCreated, fc)
}

// @Summary      Update a class
// @Tags         classes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Class ID"
// @Param        request body class.UpdateClassRequest true "Fields to update"
// @Success      200 {object} class.FitnessClass
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /admin/classes/{id} [patch]
func (h *Handler) UpdateClass(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	var req UpdateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	fc, err := h.service.UpdateClass(c.Request.Context(), classID, req)
	if err != nil {
		var conflict *RoomConflictError
		switch {
		case errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrClassAlreadyEnded), errors.Is(err, ErrInvalidStatus),
			errors.Is(err, ErrInvalidDuration), errors.Is(err, ErrInvalidCapacity),
			errors.Is(err, ErrCapacityExceeded), errors.Is(err, ErrPastSchedule):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.As(err, &conflict):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: conflict.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update class"})
		}
		return
	}

	c.JSON(http.StatusOK, fc)
}

// @Summary      Cancel a class
// @Tags         classes
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Class ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/classes/{id} [delete]
func (h *Handler) CancelClass(c *gin.Context) {
	classID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	err = h.service.CancelClass(c.Request.Context(), classID)
	if err != nil {
		switch {
		case errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrAlreadyCancelled):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel class"})
		}
		return
	}

	metrics.RecordCancellation("class")
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Class cancelled"})
}

// @Summary      List classes
// @Tags         classes
// @Produce      json
// @Param        include_past query bool false "Include past classes"
// @Success      200 {array} class.FitnessClass
// @Router       /classes [get]
func (h *Handler) ListClasses(c *gin.Context) {
	includePast := c.Query("include_past") == "true"

	classes, err := h.service.ListClasses(c.Request.Context(), includePast)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list classes"})
		return
	}

	c.JSON(http.StatusOK, classes)
}

// @Summary      List classes open for registration
// @Tags         classes
// @Produce      json
// @Param        from query string false "Start date (YYYY-MM-DD)"
// @Success      200 {array} class.FitnessClass
// @Failure      400 {object} api.ErrorResponse
// @Router       /classes/available [get]
func (h *Handler) ListAvailable(c *gin.Context) {
	var from *time.Time
	if raw := c.Query("from"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid from date, expected YYYY-MM-DD"})
			return
		}
		from = &parsed
	}

	classes, err := h.service.ListAvailable(c.Request.Context(), from)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list classes"})
		return
	}

	c.JSON(http.StatusOK, classes)
}

// @Summary      Register for a class
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Class ID"
// @Success      201 {object} class.Registration
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /classes/{id}/register [post]
func (h *Handler) Register(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	classID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid class ID"})
		return
	}

	reg, err := h.service.Register(c.Request.Context(), memberID, classID)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound), errors.Is(err, ErrClassNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrNotScheduled), errors.Is(err, ErrPastClass):
			metrics.RecordClassRegistration(metrics.OutcomeRejected)
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrAlreadyRegistered), errors.Is(err, ErrClassFull), errors.Is(err, ErrSessionConflict):
			metrics.RecordClassRegistration(metrics.OutcomeConflict)
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to register"})
		}
		return
	}

	metrics.RecordClassRegistration(metrics.OutcomeBooked)
	c.JSON(http.StatusCreated, reg)
}

// @Summary      Cancel a class registration
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Registration ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /registrations/{id} [delete]
func (h *Handler) CancelRegistration(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	registrationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid registration ID"})
		return
	}

	err = h.service.CancelRegistration(c.Request.Context(), memberID, registrationID)
	if err != nil {
		switch {
		case errors.Is(err, ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrAlreadyCancelled), errors.Is(err, ErrAttendedClass), errors.Is(err, ErrClassStarted):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel registration"})
		}
		return
	}

	metrics.RecordCancellation("registration")
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Registration cancelled"})
}

// @Summary      Mark attendance for a registration
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Registration ID"
// @Param        status query string true "attended or no_show"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /admin/registrations/{id}/attendance [post]
func (h *Handler) MarkAttendance(c *gin.Context) {
	registrationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid registration ID"})
		return
	}

	status, err := ParseRegistrationStatus(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	err = h.service.MarkAttendance(c.Request.Context(), registrationID, status)
	if err != nil {
		switch {
		case errors.Is(err, ErrRegistrationNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrInvalidRegistrationStatus):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update attendance"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Attendance recorded"})
}

// @Summary      My class registrations
// @Tags         registrations
// @Produce      json
// @Security     BearerAuth
// @Param        upcoming query bool false "Only upcoming registered classes"
// @Success      200 {array} class.MemberRegistration
// @Router       /members/me/registrations [get]
func (h *Handler) MyRegistrations(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	upcomingOnly := c.Query("upcoming") == "true"

	regs, err := h.service.ListMemberRegistrations(c.Request.Context(), memberID, upcomingOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list registrations"})
		return
	}

	c.JSON(http.StatusOK, regs)
}
