package member

import "context"

type Repository interface {
	Create(ctx context.Context, m *Member) (*Member, error)
	GetByID(ctx context.Context, id int) (*Member, error)
	GetByEmail(ctx context.Context, email string) (*Member, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, m *Member) error
	Search(ctx context.Context, query string) ([]Member, error)

	CreateMetric(ctx context.Context, hm *HealthMetric) (*HealthMetric, error)
	GetMetrics(ctx context.Context, memberID, limit int) ([]HealthMetric, error)
	GetLatestMetric(ctx context.Context, memberID int) (*HealthMetric, error)
	CountMetrics(ctx context.Context, memberID int) (int, error)

	CreateGoal(ctx context.Context, g *FitnessGoal) (*FitnessGoal, error)
	GetGoalByID(ctx context.Context, id int) (*FitnessGoal, error)
	GetGoalsByStatus(ctx context.Context, memberID int, status GoalStatus) ([]FitnessGoal, error)
	UpdateGoal(ctx context.Context, g *FitnessGoal) error

	CountRegistrations(ctx context.Context, memberID int) (int, error)
}
