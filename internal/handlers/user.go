package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"projecthub/internal/dto"
	apierrors "projecthub/internal/errors"
	"projecthub/internal/models"
	"projecthub/internal/services"
	"projecthub/internal/tableview"
	"projecthub/internal/utils"
)

// UserHandler coordinates user HTTP handlers.
type UserHandler struct {
	userService *services.UserService
	userView    *tableview.View[models.User]
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{
		userService: userService,
		userView:    tableview.Users(),
	}
}

// ListUsers returns the visible page of the user table.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.userService.ListUsers()
	if err != nil {
		apierrors.InternalError(c, "Failed to fetch users")
		return
	}

	query := utils.GetTableQuery(c, tableview.ColRole)
	result := h.userView.Apply(users, query)

	c.JSON(http.StatusOK, gin.H{
		"users":      dto.ToUserDTOs(result.Rows),
		"pagination": paginationDTO(result.Page, result.PageSize, result.TotalCount, result.TotalPages, result.From, result.To),
	})
}

// GetUser returns a specific user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(id)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// CreateUser creates a new user account. Admin only.
func (h *UserHandler) CreateUser(c *gin.Context) {
	type CreateUserRequest struct {
		Name      string  `json:"name" binding:"required"`
		Email     string  `json:"email" binding:"required,email"`
		Password  string  `json:"password" binding:"required"`
		Role      string  `json:"role"`
		AvatarURL *string `json:"avatar_url"`
	}

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.userService.CreateUser(services.CreateUserInput{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Role:      models.UserRole(req.Role),
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToUserDTO(*user))
}

// UpdateUser applies a partial update to a user profile.
func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var rawReq map[string]any
	if err := c.ShouldBindJSON(&rawReq); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	var input services.UpdateUserInput
	if name, ok := stringField(rawReq, "name"); ok {
		input.Name = name
	}
	if email, ok := stringField(rawReq, "email"); ok {
		input.Email = email
	}
	if role, ok := stringField(rawReq, "role"); ok {
		r := models.UserRole(*role)
		input.Role = &r
	}
	if avatar, provided := rawReq["avatar_url"]; provided {
		if avatar == nil {
			input.ClearAvatarURL = true
		} else if s, ok := avatar.(string); ok {
			input.AvatarURL = &s
		}
	}

	user, err := h.userService.UpdateUser(id, input)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// DeleteUser deletes a user account. Admin only.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(id); err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User deleted successfully",
	})
}

func respondUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrNameTooShort),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrInvalidRole):
		apierrors.BadRequest(c, err.Error())
	default:
		apierrors.InternalError(c, "Internal server error")
	}
}
