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

// ProjectHandler coordinates project HTTP handlers.
type ProjectHandler struct {
	projectService *services.ProjectService
	taskService    *services.TaskService
	projectView    *tableview.View[models.Project]
	taskView       *tableview.View[models.Task]
}

// NewProjectHandler creates a new ProjectHandler.
func NewProjectHandler(projectService *services.ProjectService, taskService *services.TaskService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
		taskService:    taskService,
		projectView:    tableview.Projects(),
		taskView:       tableview.Tasks(),
	}
}

// ListProjects returns the visible page of the project table.
func (h *ProjectHandler) ListProjects(c *gin.Context) {
	projects, err := h.projectService.ListProjects()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch projects")
		return
	}

	query := utils.GetTableQuery(c, tableview.ColStatus)
	result := h.projectView.Apply(projects, query)

	c.JSON(http.StatusOK, gin.H{
		"projects":   dto.ToProjectDTOs(result.Rows),
		"pagination": paginationDTO(result.Page, result.PageSize, result.TotalCount, result.TotalPages, result.From, result.To),
	})
}

// GetProject returns a specific project by ID
func (h *ProjectHandler) GetProject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	project, err := h.projectService.GetProject(id)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// ListProjectTasks returns the task table scoped to one project.
func (h *ProjectHandler) ListProjectTasks(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if _, err := h.projectService.GetProject(id); err != nil {
		respondProjectError(c, err)
		return
	}

	tasks, err := h.taskService.ListProjectTasks(id)
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch tasks")
		return
	}

	query := utils.GetTableQuery(c,
		tableview.ColStatus,
		tableview.ColPriority,
		tableview.ColAssignedTo,
	)
	result := h.taskView.Apply(tasks, query)

	c.JSON(http.StatusOK, gin.H{
		"tasks":      dto.ToTaskDTOs(result.Rows),
		"pagination": paginationDTO(result.Page, result.PageSize, result.TotalCount, result.TotalPages, result.From, result.To),
	})
}

// CreateProject creates a new project
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		apierrors.Unauthorized(c, "Not authenticated")
		return
	}

	type CreateProjectRequest struct {
		Name        string     `json:"name" binding:"required"`
		Description *string    `json:"description"`
		Status      string     `json:"status"`
		StartDate   *time.Time `json:"start_date"`
		EndDate     *time.Time `json:"end_date"`
	}

	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	project, err := h.projectService.CreateProject(services.CreateProjectInput{
		Name:        req.Name,
		Description: req.Description,
		Status:      models.ProjectStatus(req.Status),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		CreatedBy:   userID,
	})
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToProjectDTO(*project))
}

// UpdateProject applies a partial update to a project. Null fields in
// the request clear the value, absent fields are left untouched.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateProjectInput
	if name, ok := stringField(rawReq, "name"); ok {
		input.Name = name
	}
	if desc, provided := rawReq["description"]; provided {
		if desc == nil {
			input.ClearDescription = true
		} else if s, ok := desc.(string); ok {
			input.Description = &s
		}
	}
	if status, ok := stringField(rawReq, "status"); ok {
		st := models.ProjectStatus(*status)
		input.Status = &st
	}
	if start, cleared, ok := timeField(c, rawReq, "start_date"); !ok {
		return
	} else if cleared {
		input.ClearStartDate = true
	} else if start != nil {
		input.StartDate = start
	}
	if end, cleared, ok := timeField(c, rawReq, "end_date"); !ok {
		return
	} else if cleared {
		input.ClearEndDate = true
	} else if end != nil {
		input.EndDate = end
	}

	project, err := h.projectService.UpdateProject(id, input)
	if err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToProjectDTO(*project))
}

// DeleteProject deletes a project
func (h *ProjectHandler) DeleteProject(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.projectService.DeleteProject(id); err != nil {
		respondProjectError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Project deleted successfully",
	})
}

// timeField extracts an RFC3339 timestamp from a raw JSON map. It
// reports explicit null separately from absence, and writes the error
// response itself when the value cannot be parsed.
func timeField(c *gin.Context, raw map[string]any, key string) (value *time.Time, cleared bool, ok bool) {
	v, provided := raw[key]
	if !provided {
		return nil, false, true
	}
	if v == nil {
		return nil, true, true
	}
	s, isString := v.(string)
	if !isString {
		apierrors.BadRequest(c, "Invalid "+key)
		return nil, false, false
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		apierrors.BadRequest(c, "Invalid "+key)
		return nil, false, false
	}
	return &parsed, false, true
}

func respondProjectError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrProjectNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrProjectNameTooShort),
		errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
