package member

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"fitclub/internal/auth"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, mem *Member) (*Member, error) {
	args := m.Called(ctx, mem)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockRepository) GetByID(ctx context.Context, id int) (*Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockRepository) GetByEmail(ctx context.Context, email string) (*Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Member), args.Error(1)
}

func (m *MockRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockRepository) Update(ctx context.Context, mem *Member) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

func (m *MockRepository) Search(ctx context.Context, query string) ([]Member, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Member), args.Error(1)
}

func (m *MockRepository) CreateMetric(ctx context.Context, hm *HealthMetric) (*HealthMetric, error) {
	args := m.Called(ctx, hm)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*HealthMetric), args.Error(1)
}

func (m *MockRepository) GetMetrics(ctx context.Context, memberID, limit int) ([]HealthMetric, error) {
	args := m.Called(ctx, memberID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]HealthMetric), args.Error(1)
}

func (m *MockRepository) GetLatestMetric(ctx context.Context, memberID int) (*HealthMetric, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*HealthMetric), args.Error(1)
}

func (m *MockRepository) CountMetrics(ctx context.Context, memberID int) (int, error) {
	args := m.Called(ctx, memberID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) CreateGoal(ctx context.Context, g *FitnessGoal) (*FitnessGoal, error) {
	args := m.Called(ctx, g)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FitnessGoal), args.Error(1)
}

func (m *MockRepository) GetGoalByID(ctx context.Context, id int) (*FitnessGoal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*FitnessGoal), args.Error(1)
}

func (m *MockRepository) GetGoalsByStatus(ctx context.Context, memberID int, status GoalStatus) ([]FitnessGoal, error) {
	args := m.Called(ctx, memberID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]FitnessGoal), args.Error(1)
}

func (m *MockRepository) UpdateGoal(ctx context.Context, g *FitnessGoal) error {
	args := m.Called(ctx, g)
	return args.Error(0)
}

func (m *MockRepository) CountRegistrations(ctx context.Context, memberID int) (int, error) {
	args := m.Called(ctx, memberID)
	return args.Int(0), args.Error(1)
}

func testMember(id int) *Member {
	return &Member{
		ID:        id,
		Email:     "jamie@example.com",
		FirstName: "Jamie",
		LastName:  "Rivera",
		CreatedAt: time.Now(),
	}
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("email already taken", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("EmailExists", ctx, "jamie@example.com").Return(true, nil)

		_, err := svc.Register(ctx, RegisterRequest{
			Email:     "jamie@example.com",
			Password:  "supersecret",
			FirstName: "Jamie",
			LastName:  "Rivera",
		})

		assert.ErrorIs(t, err, ErrEmailTaken)
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("future date of birth rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("EmailExists", ctx, mock.Anything).Return(false, nil)

		_, err := svc.Register(ctx, RegisterRequest{
			Email:       "jamie@example.com",
			Password:    "supersecret",
			FirstName:   "Jamie",
			LastName:    "Rivera",
			DateOfBirth: time.Now().AddDate(1, 0, 0).Format("2006-01-02"),
		})

		assert.ErrorIs(t, err, ErrFutureBirthDate)
	})

	t.Run("invalid gender rejected", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("EmailExists", ctx, mock.Anything).Return(false, nil)

		_, err := svc.Register(ctx, RegisterRequest{
			Email:     "jamie@example.com",
			Password:  "supersecret",
			FirstName: "Jamie",
			LastName:  "Rivera",
			Gender:    "robot",
		})

		assert.ErrorIs(t, err, ErrInvalidGender)
	})

	t.Run("success hashes the password", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("EmailExists", ctx, "jamie@example.com").Return(false, nil)
		repo.On("Create", ctx, mock.MatchedBy(func(m *Member) bool {
			return m.Email == "jamie@example.com" &&
				m.PasswordHash != "" &&
				m.PasswordHash != "supersecret" &&
				auth.CheckPassword(m.PasswordHash, "supersecret")
		})).Return(testMember(7), nil)

		created, err := svc.Register(ctx, RegisterRequest{
			Email:     "jamie@example.com",
			Password:  "supersecret",
			FirstName: "Jamie",
			LastName:  "Rivera",
		})

		require.NoError(t, err)
		assert.Equal(t, 7, created.ID)
		repo.AssertExpectations(t)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, ErrNotFound)

		_, err := svc.Authenticate(ctx, "nobody@example.com", "whatever")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("wrong password", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		hash, err := auth.HashPassword("rightpassword")
		require.NoError(t, err)

		m := testMember(3)
		m.PasswordHash = hash
		repo.On("GetByEmail", ctx, m.Email).Return(m, nil)

		_, err = svc.Authenticate(ctx, m.Email, "wrongpassword")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("success", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		hash, err := auth.HashPassword("rightpassword")
		require.NoError(t, err)

		m := testMember(3)
		m.PasswordHash = hash
		repo.On("GetByEmail", ctx, m.Email).Return(m, nil)

		got, err := svc.Authenticate(ctx, m.Email, "rightpassword")
		require.NoError(t, err)
		assert.Equal(t, 3, got.ID)
	})
}

func TestLogMetric(t *testing.T) {
	ctx := context.Background()

	newSvc := func() (*MockRepository, Service) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, 1).Return(testMember(1), nil)
		return repo, NewService(repo)
	}

	f := func(v float64) *float64 { return &v }
	i := func(v int) *int { return &v }

	t.Run("no values rejected", func(t *testing.T) {
		_, svc := newSvc()
		_, err := svc.LogMetric(ctx, 1, LogMetricRequest{})
		assert.ErrorIs(t, err, ErrNoMetricValues)
	})

	t.Run("non-positive weight rejected", func(t *testing.T) {
		_, svc := newSvc()
		_, err := svc.LogMetric(ctx, 1, LogMetricRequest{WeightKg: f(-72.5)})
		assert.ErrorIs(t, err, ErrInvalidMetric)
	})

	t.Run("body fat above 100 rejected", func(t *testing.T) {
		_, svc := newSvc()
		_, err := svc.LogMetric(ctx, 1, LogMetricRequest{BodyFatPercentage: f(101)})
		assert.ErrorIs(t, err, ErrInvalidMetric)
	})

	t.Run("single value is enough", func(t *testing.T) {
		repo, svc := newSvc()
		repo.On("CreateMetric", ctx, mock.MatchedBy(func(hm *HealthMetric) bool {
			return hm.MemberID == 1 && hm.HeartRateBpm != nil && *hm.HeartRateBpm == 62
		})).Return(&HealthMetric{ID: 10, MemberID: 1, HeartRateBpm: i(62)}, nil)

		got, err := svc.LogMetric(ctx, 1, LogMetricRequest{HeartRateBpm: i(62)})
		require.NoError(t, err)
		assert.Equal(t, 10, got.ID)
		repo.AssertExpectations(t)
	})
}

func TestHealthHistoryLimits(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo)

	repo.On("GetMetrics", ctx, 1, defaultHistoryLimit).Return([]HealthMetric{}, nil).Once()
	repo.On("GetMetrics", ctx, 1, maxHistoryLimit).Return([]HealthMetric{}, nil).Once()

	_, err := svc.HealthHistory(ctx, 1, 0)
	require.NoError(t, err)

	_, err = svc.HealthHistory(ctx, 1, 10000)
	require.NoError(t, err)

	repo.AssertExpectations(t)
}

func TestCreateGoal(t *testing.T) {
	ctx := context.Background()

	newSvc := func() (*MockRepository, Service) {
		repo := new(MockRepository)
		repo.On("GetByID", ctx, 1).Return(testMember(1), nil)
		return repo, NewService(repo)
	}

	t.Run("unknown goal type", func(t *testing.T) {
		_, svc := newSvc()
		_, err := svc.CreateGoal(ctx, 1, CreateGoalRequest{GoalType: "teleportation", TargetValue: 5})
		assert.ErrorIs(t, err, ErrInvalidGoalType)
	})

	t.Run("non-positive target", func(t *testing.T) {
		_, svc := newSvc()
		_, err := svc.CreateGoal(ctx, 1, CreateGoalRequest{GoalType: "weight_loss", TargetValue: 0})
		assert.ErrorIs(t, err, ErrInvalidTarget)
	})

	t.Run("past deadline", func(t *testing.T) {
		_, svc := newSvc()
		_, err := svc.CreateGoal(ctx, 1, CreateGoalRequest{
			GoalType:    "weight_loss",
			TargetValue: 70,
			Deadline:    "2020-01-01",
		})
		assert.ErrorIs(t, err, ErrPastDeadline)
	})

	t.Run("created as active", func(t *testing.T) {
		repo, svc := newSvc()
		repo.On("CreateGoal", ctx, mock.MatchedBy(func(g *FitnessGoal) bool {
			return g.MemberID == 1 && g.GoalType == GoalWeightLoss && g.Status == GoalActive
		})).Return(&FitnessGoal{ID: 4, MemberID: 1, GoalType: GoalWeightLoss, Status: GoalActive}, nil)

		got, err := svc.CreateGoal(ctx, 1, CreateGoalRequest{GoalType: "weight_loss", TargetValue: 70})
		require.NoError(t, err)
		assert.Equal(t, GoalActive, got.Status)
		repo.AssertExpectations(t)
	})
}

func TestUpdateGoal(t *testing.T) {
	ctx := context.Background()

	t.Run("goal not found", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetGoalByID", ctx, 99).Return(nil, sql.ErrNoRows)

		_, err := svc.UpdateGoal(ctx, 1, 99, UpdateGoalRequest{})
		assert.ErrorIs(t, err, ErrGoalNotFound)
	})

	t.Run("goal owned by someone else is invisible", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetGoalByID", ctx, 5).Return(&FitnessGoal{ID: 5, MemberID: 2}, nil)

		_, err := svc.UpdateGoal(ctx, 1, 5, UpdateGoalRequest{})
		assert.ErrorIs(t, err, ErrGoalNotFound)
		repo.AssertNotCalled(t, "UpdateGoal", mock.Anything, mock.Anything)
	})

	t.Run("status transition", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetGoalByID", ctx, 5).Return(&FitnessGoal{ID: 5, MemberID: 1, TargetValue: 70, Status: GoalActive}, nil)
		repo.On("UpdateGoal", ctx, mock.MatchedBy(func(g *FitnessGoal) bool {
			return g.ID == 5 && g.Status == GoalCompleted
		})).Return(nil)

		status := "completed"
		got, err := svc.UpdateGoal(ctx, 1, 5, UpdateGoalRequest{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, GoalCompleted, got.Status)
		repo.AssertExpectations(t)
	})

	t.Run("invalid status string", func(t *testing.T) {
		repo := new(MockRepository)
		svc := NewService(repo)

		repo.On("GetGoalByID", ctx, 5).Return(&FitnessGoal{ID: 5, MemberID: 1, Status: GoalActive}, nil)

		status := "abandoned"
		_, err := svc.UpdateGoal(ctx, 1, 5, UpdateGoalRequest{Status: &status})
		assert.ErrorIs(t, err, ErrInvalidGoalStatus)
	})
}

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	repo := new(MockRepository)
	svc := NewService(repo)

	weight := 71.2
	latest := &HealthMetric{ID: 2, MemberID: 1, WeightKg: &weight}

	repo.On("GetByID", ctx, 1).Return(testMember(1), nil)
	repo.On("GetLatestMetric", ctx, 1).Return(latest, nil)
	repo.On("GetGoalsByStatus", ctx, 1, GoalActive).Return([]FitnessGoal{{ID: 4, MemberID: 1}}, nil)
	repo.On("CountRegistrations", ctx, 1).Return(3, nil)
	repo.On("CountMetrics", ctx, 1).Return(12, nil)

	d, err := svc.Dashboard(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, d.Member.ID)
	assert.Equal(t, latest, d.LatestMetric)
	assert.Len(t, d.ActiveGoals, 1)
	assert.Equal(t, 3, d.RegistrationCount)
	assert.Equal(t, 12, d.HealthHistoryCount)
}
