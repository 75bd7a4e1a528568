package member

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fitclub/internal/api"
	"fitclub/internal/auth"
)

type Handler struct {
	service   Service
	jwtSecret string
}

func NewHandler(service Service, jwtSecret string) *Handler {
	return &Handler{service: service, jwtSecret: jwtSecret}
}

// @Summary      Register new member
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body member.RegisterRequest true "Member registration data"
// @Success      201 {object} member.LoginResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      409 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /auth/member/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	m, err := h.service.Register(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrInvalidGender), errors.Is(err, ErrFutureBirthDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to register member"})
		}
		return
	}

	accessToken, refreshToken, err := auth.GenerateTokens(m.ID, m.Email, auth.RoleMember, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusCreated, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Member:       *m,
	})
}

// @Summary      Login member
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body member.LoginRequest true "Member credentials"
// @Success      200 {object} member.LoginResponse
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      500 {object} api.ErrorResponse
// @Router       /auth/member/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	m, err := h.service.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to login"})
		return
	}

	accessToken, refreshToken, err := auth.GenerateTokens(m.ID, m.Email, auth.RoleMember, h.jwtSecret)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to generate tokens"})
		return
	}

	c.JSON(http.StatusOK, LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Member:       *m,
	})
}

// @Summary      Get own profile
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} member.Member
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/me [get]
func (h *Handler) GetProfile(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	m, err := h.service.GetByID(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch profile"})
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Update own profile
// @Tags         members
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body member.UpdateProfileRequest true "Fields to update"
// @Success      200 {object} member.Member
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /members/me [patch]
func (h *Handler) UpdateProfile(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	m, err := h.service.UpdateProfile(c.Request.Context(), memberID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrInvalidGender), errors.Is(err, ErrFutureBirthDate):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, m)
}

// @Summary      Search members
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Param        q query string true "Name or email fragment"
// @Success      200 {array} member.Member
// @Failure      401 {object} api.ErrorResponse
// @Router       /admin/members [get]
func (h *Handler) SearchMembers(c *gin.Context) {
	query := c.Query("q")

	members, err := h.service.Search(c.Request.Context(), query)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to search members"})
		return
	}

	c.JSON(http.StatusOK, members)
}

// @Summary      Log a health metric snapshot
// @Tags         health
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body member.LogMetricRequest true "Metric values"
// @Success      201 {object} member.HealthMetric
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /members/me/metrics [post]
func (h *Handler) LogMetric(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req LogMetricRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	hm, err := h.service.LogMetric(c.Request.Context(), memberID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrNoMetricValues), errors.Is(err, ErrInvalidMetric):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to log metric"})
		}
		return
	}

	c.JSON(http.StatusCreated, hm)
}

// @Summary      Health metric history
// @Tags         health
// @Produce      json
// @Security     BearerAuth
// @Param        limit query int false "Max entries (default 50)"
// @Success      200 {array} member.HealthMetric
// @Failure      401 {object} api.ErrorResponse
// @Router       /members/me/metrics [get]
func (h *Handler) HealthHistory(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))

	metrics, err := h.service.HealthHistory(c.Request.Context(), memberID, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch metrics"})
		return
	}

	c.JSON(http.StatusOK, metrics)
}

// @Summary      Create fitness goal
// @Tags         goals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body member.CreateGoalRequest true "Goal data"
// @Success      201 {object} member.FitnessGoal
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Router       /members/me/goals [post]
func (h *Handler) CreateGoal(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	var req CreateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	g, err := h.service.CreateGoal(c.Request.Context(), memberID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMemberNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrInvalidGoalType), errors.Is(err, ErrInvalidTarget), errors.Is(err, ErrPastDeadline):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to create goal"})
		}
		return
	}

	c.JSON(http.StatusCreated, g)
}

// @Summary      List active fitness goals
// @Tags         goals
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} member.FitnessGoal
// @Failure      401 {object} api.ErrorResponse
// @Router       /members/me/goals [get]
func (h *Handler) ActiveGoals(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	goals, err := h.service.ActiveGoals(c.Request.Context(), memberID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to fetch goals"})
		return
	}

	c.JSON(http.StatusOK, goals)
}

// @Summary      Update fitness goal
// @Tags         goals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Goal ID"
// @Param        request body member.UpdateGoalRequest true "Fields to update"
// @Success      200 {object} member.FitnessGoal
// @Failure      400 {object} api.ErrorResponse
// @Failure      401 {object} api.ErrorResponse
// @Failure      404 {object} api.ErrorResponse
// @Router       /members/me/goals/{id} [patch]
func (h *Handler) UpdateGoal(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	goalID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "Invalid goal ID"})
		return
	}

	var req UpdateGoalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		return
	}

	g, err := h.service.UpdateGoal(c.Request.Context(), memberID, goalID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrGoalNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrInvalidGoalStatus), errors.Is(err, ErrInvalidTarget):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to update goal"})
		}
		return
	}

	c.JSON(http.StatusOK, g)
}

// @Summary      Member dashboard summary
// @Tags         members
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} member.Dashboard
// @Failure      401 {object} api.ErrorResponse
// @Router       /members/me/dashboard [get]
func (h *Handler) Dashboard(c *gin.Context) {
	memberID, ok := auth.GetUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "Unauthorized"})
		return
	}

	d, err := h.service.Dashboard(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "Failed to build dashboard"})
		return
	}

	c.JSON(http.StatusOK, d)
}
