package session

import (
	"errors"
	"net/http"
	"strconv"

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

// @Summary      Book a personal training session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body session.BookRequest true "Session data"
// @Success      201 {object} session.Session
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /sessions [post]
func (h *Handler) Book(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	sess, err := h.service.Book(c.Request.Context(), memberID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound), errors.Is(err, ErrTrainerNotFound), errors.Is(err, ErrRoomNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrInvalidDuration), errors.Is(err, ErrPastSchedule):
			metrics.RecordTrainingSession(metrics.OutcomeRejected)
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrTrainerUnavailable), errors.Is(err, ErrTrainerConflict),
			errors.Is(err, ErrMemberConflict), errors.Is(err, ErrRoomConflict):
			metrics.RecordTrainingSession(metrics.OutcomeConflict)
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to book session"})
		}
		return
	}

	metrics.RecordTrainingSession(metrics.OutcomeBooked)
	c.JSON(http.StatusCreated, sess)
}

// @Summary      Cancel a training session
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /sessions/{id} [delete]
func (h *Handler) Cancel(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	sessionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid session ID"})
		return
	}

	err = h.service.Cancel(c.Request.Context(), memberID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrAlreadyCancelled), errors.Is(err, ErrAlreadyCompleted), errors.Is(err, ErrPastSession):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to cancel session"})
		}
		return
	}

	metrics.RecordCancellation("session")
	c.JSON(http.StatusOK, api.MessageResponse{Message: "Session cancelled"})
}

// @Summary      Reschedule a training session
// @Tags         sessions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Param        request body session.RescheduleRequest true "New time"
// @Success      200 {object} session.Session
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Router       /sessions/{id}/reschedule [post]
func (h *Handler) Reschedule(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	sessionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid session ID"})
		return
	}

	var req RescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	sess, err := h.service.Reschedule(c.Request.Context(), memberID, sessionID, req.NewTime)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrNotScheduled), errors.Is(err, ErrPastSchedule):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrTrainerUnavailable), errors.Is(err, ErrTrainerConflict),
			errors.Is(err, ErrMemberConflict), errors.Is(err, ErrRoomConflict):
			metrics.RecordTrainingSession(metrics.OutcomeConflict)
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to reschedule session"})
		}
		return
	}

	c.JSON(http.StatusOK, sess)
}

// @Summary      Mark a session completed or no-show
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Session ID"
// @Param        status query string true "completed or no_show"
// @Success      200 {object} api.MessageResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /trainers/me/sessions/{id}/complete [post]
func (h *Handler) Complete(c *gin.Context) {
	trainerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	sessionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid session ID"})
		return
	}

	status, err := ParseStatus(c.Query("status"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	err = h.service.Complete(c.Request.Context(), trainerID, sessionID, status)
	if err != nil {
		switch {
		case errors.Is(err, ErrSessionNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrInvalidStatus), errors.Is(err, ErrNotScheduled):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update session"})
		}
		return
	}

	c.JSON(http.StatusOK, api.MessageResponse{Message: "Session updated"})
}

// @Summary      My training sessions
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        upcoming query bool false "Only upcoming scheduled sessions"
// @Success      200 {array} session.Session
// @Router       /members/me/sessions [get]
func (h *Handler) MySessions(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	upcomingOnly := c.Query("upcoming") == "true"

	sessions, err := h.service.ListForMember(c.Request.Context(), memberID, upcomingOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list sessions"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}

// @Summary      Trainer's sessions
// @Tags         sessions
// @Produce      json
// @Security     BearerAuth
// @Param        upcoming query bool false "Only upcoming scheduled sessions"
// @Success      200 {array} session.Session
// @Router       /trainers/me/sessions [get]
func (h *Handler) TrainerSessions(c *gin.Context) {
	trainerID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	upcomingOnly := c.Query("upcoming") == "true"

	sessions, err := h.service.ListForTrainer(c.Request.Context(), trainerID, upcomingOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to list sessions"})
		return
	}

	c.JSON(http.StatusOK, sessions)
}
