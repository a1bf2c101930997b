package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"projecthub/internal/models"
	"projecthub/internal/repository"
)

var (
	ErrProjectNotFound     = errors.New("project not found")
	ErrProjectNameTooShort = errors.New("project name must be at least 3 characters")
	ErrInvalidStatus       = errors.New("invalid status")
)

// ProjectService handles project business logic. Confirmed writes patch
// the project store so the dashboard views stay current without a reload.
type ProjectService struct {
	projectRepo repository.ProjectRepository
	stores      *DashboardService
}

// NewProjectService creates a new ProjectService
func NewProjectService(projectRepo repository.ProjectRepository, stores *DashboardService) *ProjectService {
	return &ProjectService{
		projectRepo: projectRepo,
		stores:      stores,
	}
}

// CreateProjectInput represents input for creating a project
type CreateProjectInput struct {
	Name        string
	Description *string
	Status      models.ProjectStatus
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedBy   uint64
}

// UpdateProjectInput represents a partial project update. Pointer fields
// are applied only when provided; Clear flags null out nullable fields.
type UpdateProjectInput struct {
	Name             *string
	Description      *string
	ClearDescription bool
	Status           *models.ProjectStatus
	StartDate        *time.Time
	ClearStartDate   bool
	EndDate          *time.Time
	ClearEndDate     bool
}

// ListProjects returns the full project collection, newest first
func (s *ProjectService) ListProjects() ([]models.Project, error) {
	projects, err := s.projectRepo.FindAll()
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// GetProject returns a project by ID
func (s *ProjectService) GetProject(id uint64) (*models.Project, error) {
	project, err := s.projectRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("failed to find project: %w", err)
	}
	return project, nil
}

// CreateProject validates input and creates a project
func (s *ProjectService) CreateProject(input CreateProjectInput) (*models.Project, error) {
	name := strings.TrimSpace(input.Name)
	if len(name) < 3 {
		return nil, ErrProjectNameTooShort
	}

	if input.Status == "" {
		input.Status = models.ProjectStatusActive
	}
	if !models.ValidProjectStatus(input.Status) {
		return nil, ErrInvalidStatus
	}

	// Start/end ordering is intentionally not validated; the dates are
	// free-form planning fields.
	project := &models.Project{
		Name:        name,
		Description: input.Description,
		Status:      input.Status,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		CreatedBy:   input.CreatedBy,
	}

	if err := s.projectRepo.Create(project); err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.stores.Projects.Add(*project)
	return project, nil
}

// UpdateProject applies a partial update to a project
func (s *ProjectService) UpdateProject(id uint64, input UpdateProjectInput) (*models.Project, error) {
	project, err := s.GetProject(id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if len(name) < 3 {
			return nil, ErrProjectNameTooShort
		}
		project.Name = name
	}
	if input.ClearDescription {
		project.Description = nil
	} else if input.Description != nil {
		project.Description = input.Description
	}
	if input.Status != nil {
		if !models.ValidProjectStatus(*input.Status) {
			return nil, ErrInvalidStatus
		}
		project.Status = *input.Status
	}
	if input.ClearStartDate {
		project.StartDate = nil
	} else if input.StartDate != nil {
		project.StartDate = input.StartDate
	}
	if input.ClearEndDate {
		project.EndDate = nil
	} else if input.EndDate != nil {
		project.EndDate = input.EndDate
	}

	if err := s.projectRepo.Update(project); err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}

	s.stores.Projects.Update(*project)
	return project, nil
}

// DeleteProject deletes a project. Its tasks are not cascaded; they keep
// a dangling project_id until the task collection is reloaded.
func (s *ProjectService) DeleteProject(id uint64) error {
	if err := s.projectRepo.Delete(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectNotFound
		}
		return fmt.Errorf("failed to delete project: %w", err)
	}
	s.stores.Projects.Remove(id)
	return nil
}
