package services

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"projecthub/internal/activity"
	"projecthub/internal/dashboard"
	"projecthub/internal/models"
	"projecthub/internal/repository"
	"projecthub/internal/store"
)

// DashboardService owns one session-scoped store per entity type and
// derives the dashboard and activity views from their snapshots. The
// stores are bulk-loaded once on first access and from then on patched
// by the entity services after each confirmed write; a failed refresh
// keeps serving the previous snapshot.
type DashboardService struct {
	Projects *store.Store[models.Project]
	Tasks    *store.Store[models.Task]
	Users    *store.Store[models.User]

	mu     sync.Mutex
	loaded bool
}

// NewDashboardService wires one store per collection to its repository.
func NewDashboardService(projectRepo repository.ProjectRepository, taskRepo repository.TaskRepository, userRepo repository.UserRepository) *DashboardService {
	return &DashboardService{
		Projects: store.New(
			func(p models.Project) uint64 { return p.ID },
			func(context.Context) ([]models.Project, error) { return projectRepo.FindAll() },
		),
		Tasks: store.New(
			func(t models.Task) uint64 { return t.ID },
			func(context.Context) ([]models.Task, error) { return taskRepo.FindAll() },
		),
		Users: store.New(
			func(u models.User) uint64 { return u.ID },
			func(context.Context) ([]models.User, error) { return userRepo.FindAll() },
		),
	}
}

// EnsureLoaded performs the initial bulk fetch exactly once. Until all
// three stores have loaded successfully the fetch is retried on the
// next call; after that the stores are maintained by write patches and
// only an explicit Refresh hits the database again.
func (s *DashboardService) EnsureLoaded(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}
	err := s.refresh(ctx)
	s.loaded = err == nil
	return err
}

// Refresh reloads all three stores from the database, discarding any
// patched state. A failed load is non-fatal: the error is recorded on
// the store, the stale snapshot stays available, and the first failure
// is returned for the caller to surface.
func (s *DashboardService) Refresh(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.refresh(ctx)
	if err == nil {
		s.loaded = true
	}
	return err
}

func (s *DashboardService) refresh(ctx context.Context) error {
	var firstErr error
	if err := s.Projects.LoadAll(ctx); err != nil {
		zap.L().Warn("project store refresh failed", zap.Error(err))
		firstErr = err
	}
	if err := s.Tasks.LoadAll(ctx); err != nil {
		zap.L().Warn("task store refresh failed", zap.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	}
	if err := s.Users.LoadAll(ctx); err != nil {
		zap.L().Warn("user store refresh failed", zap.Error(err))
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Summary computes the dashboard payload from the current snapshots.
func (s *DashboardService) Summary() dashboard.Summary {
	return dashboard.BuildSummary(s.Projects.Snapshot(), s.Tasks.Snapshot(), s.Users.Snapshot())
}

// Progress computes per-active-project completion, highest first.
func (s *DashboardService) Progress() []dashboard.ProjectProgress {
	return dashboard.ActiveProjectProgress(s.Projects.Snapshot(), s.Tasks.Snapshot())
}

// Workload computes assigned-task counts per user.
func (s *DashboardService) Workload() []dashboard.UserLoad {
	return dashboard.UserTaskLoad(s.Users.Snapshot(), s.Tasks.Snapshot())
}

// Feed composes the recent-activity list from the current snapshots.
func (s *DashboardService) Feed(limit int) []activity.Entry {
	return activity.Compose(s.Tasks.Snapshot(), s.Projects.Snapshot(), s.Users.Snapshot(), limit)
}
