package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"projecthub/internal/dto"
	apierrors "projecthub/internal/errors"
	"projecthub/internal/middleware"
	"projecthub/internal/models"
	"projecthub/internal/services"
	"projecthub/internal/tableview"
	"projecthub/internal/utils"
)

// TaskHandler coordinates task HTTP handlers.
type TaskHandler struct {
	taskService *services.TaskService
	taskView    *tableview.View[models.Task]
}

// NewTaskHandler creates a new TaskHandler.
func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		taskView:    tableview.Tasks(),
	}
}

// ListTasks returns the visible page of the task table for the current
// search/filter/sort/page state. The whole collection is fetched with
// its relations and derived in memory; an empty page is a valid result.
func (h *TaskHandler) ListTasks(c *gin.Context) {
	tasks, err := h.taskService.ListTasks()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	query := utils.GetTableQuery(c,
		tableview.ColStatus,
		tableview.ColPriority,
		tableview.ColProjectID,
		tableview.ColAssignedTo,
	)
	result := h.taskView.Apply(tasks, query)

	c.JSON(http.StatusOK, gin.H{
		"tasks":      dto.ToTaskDTOs(result.Rows),
		"pagination": paginationDTO(result.Page, result.PageSize, result.TotalCount, result.TotalPages, result.From, result.To),
	})
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(id)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// CreateTask creates a new task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateTaskRequest struct {
		Title       string     `json:"title" binding:"required"`
		Description *string    `json:"description"`
		ProjectID   uint64     `json:"project_id" binding:"required"`
		AssignedTo  *uint64    `json:"assigned_to"`
		Status      string     `json:"status"`
		Priority    string     `json:"priority"`
		DueDate     *time.Time `json:"due_date"`
	}

	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	task, err := h.taskService.CreateTask(services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
		Status:      models.TaskStatus(req.Status),
		Priority:    models.TaskPriority(req.Priority),
		DueDate:     req.DueDate,
		CreatedBy:   userID,
	})
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*task))
}

// UpdateTask applies a partial update. The raw JSON is inspected so a
// field that was sent as null clears the value, while an absent field
// leaves it untouched.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateTaskInput
	if title, ok := stringField(rawReq, "title"); ok {
		input.Title = title
	}
	if desc, provided := rawReq["description"]; provided {
		if desc == nil {
			input.ClearDescription = true
		} else if s, ok := desc.(string); ok {
			input.Description = &s
		}
	}
	if status, ok := stringField(rawReq, "status"); ok {
		st := models.TaskStatus(*status)
		input.Status = &st
	}
	if priority, ok := stringField(rawReq, "priority"); ok {
		p := models.TaskPriority(*priority)
		input.Priority = &p
	}
	if assigned, provided := rawReq["assigned_to"]; provided {
		if assigned == nil {
			input.ClearAssignedTo = true
		} else if n, ok := assigned.(float64); ok && n >= 0 {
			uid := uint64(n)
			input.AssignedTo = &uid
		}
	}
	if due, provided := rawReq["due_date"]; provided {
		if due == nil {
			input.ClearDueDate = true
		} else if s, ok := due.(string); ok {
			parsed, err := time.Parse(time.RFC3339, s)
			if err != nil {
				apierrors.BadRequest(c, "Invalid due_date")
				return
			}
			input.DueDate = &parsed
		}
	}

	task, err := h.taskService.UpdateTask(id, input)
	if err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*task))
}

// DeleteTask deletes a task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.taskService.DeleteTask(id); err != nil {
		respondTaskError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Task deleted successfully",
	})
}

func respondTaskError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrTitleTooShort),
		errors.Is(err, services.ErrInvalidStatus),
		errors.Is(err, services.ErrInvalidPriority),
		errors.Is(err, services.ErrUnknownProject),
		errors.Is(err, services.ErrUnknownAssignee):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
