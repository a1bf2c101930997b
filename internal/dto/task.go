package dto

import (
	"time"

	"projecthub/internal/constants"
	"projecthub/internal/models"
)

// ProjectRefDTO is the minimal related-project payload embedded in tasks
type ProjectRefDTO struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

// TaskDTO represents a task in API responses. ProjectName and
// AssigneeName are always present, resolved to display fallbacks when
// the underlying reference dangles or the task is unassigned.
type TaskDTO struct {
	ID           uint64              `json:"id"`
	Title        string              `json:"title"`
	Description  *string             `json:"description"`
	ProjectID    uint64              `json:"project_id"`
	AssignedTo   *uint64             `json:"assigned_to"`
	CreatedBy    uint64              `json:"created_by"`
	Status       models.TaskStatus   `json:"status"`
	Priority     models.TaskPriority `json:"priority"`
	DueDate      *time.Time          `json:"due_date"`
	CompletedAt  *time.Time          `json:"completed_at"`
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
	Project      *ProjectRefDTO      `json:"project,omitempty"`
	Assignee     *UserDTO            `json:"assignee,omitempty"`
	ProjectName  string              `json:"project_name"`
	AssigneeName string              `json:"assignee_name"`
}

// ToTaskDTO converts a Task model to TaskDTO
func ToTaskDTO(task models.Task) TaskDTO {
	dto := TaskDTO{
		ID:           task.ID,
		Title:        task.Title,
		Description:  task.Description,
		ProjectID:    task.ProjectID,
		AssignedTo:   task.AssignedTo,
		CreatedBy:    task.CreatedBy,
		Status:       task.Status,
		Priority:     task.Priority,
		DueDate:      task.DueDate,
		CompletedAt:  task.CompletedAt,
		CreatedAt:    task.CreatedAt,
		UpdatedAt:    task.UpdatedAt,
		ProjectName:  task.ProjectName(constants.UnknownProjectName),
		AssigneeName: task.AssigneeName(constants.UnassignedName),
	}

	// Include relations if preloaded and resolved
	if task.Project != nil && task.Project.ID != 0 {
		dto.Project = &ProjectRefDTO{ID: task.Project.ID, Name: task.Project.Name}
	}
	if task.Assignee != nil && task.Assignee.ID != 0 {
		assignee := ToUserDTO(*task.Assignee)
		dto.Assignee = &assignee
	}

	return dto
}

// ToTaskDTOs converts a slice of Task models
func ToTaskDTOs(tasks []models.Task) []TaskDTO {
	out := make([]TaskDTO, len(tasks))
	for i, task := range tasks {
		out[i] = ToTaskDTO(task)
	}
	return out
}
