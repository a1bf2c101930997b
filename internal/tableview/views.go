package tableview

import (
	"strconv"
	"strings"
	"time"

	"projecthub/internal/models"
)

// Column names accepted by the list endpoints.
const (
	ColTitle      = "title"
	ColName       = "name"
	ColEmail      = "email"
	ColStatus     = "status"
	ColPriority   = "priority"
	ColRole       = "role"
	ColProject    = "project"
	ColProjectID  = "project_id"
	ColAssignedTo = "assigned_to"
	ColDueDate    = "due_date"
	ColStartDate  = "start_date"
	ColCreatedAt  = "created_at"
)

// Tasks builds the table view for the task list: searchable over title,
// description and the resolved project/assignee names.
func Tasks() *View[models.Task] {
	return &View[models.Task]{
		SearchText: func(t models.Task) string {
			parts := []string{t.Title}
			if t.Description != nil {
				parts = append(parts, *t.Description)
			}
			if name := t.ProjectName(""); name != "" {
				parts = append(parts, name)
			}
			if name := t.AssigneeName(""); name != "" {
				parts = append(parts, name)
			}
			return strings.Join(parts, " ")
		},
		Columns: map[string]Column[models.Task]{
			ColTitle: {
				Value: func(t models.Task) string { return t.Title },
				Less:  func(a, b models.Task) bool { return strings.ToLower(a.Title) < strings.ToLower(b.Title) },
			},
			ColProject: {
				Value: func(t models.Task) string { return t.ProjectName("") },
				Less: func(a, b models.Task) bool {
					return strings.ToLower(a.ProjectName("")) < strings.ToLower(b.ProjectName(""))
				},
			},
			ColProjectID: {
				Value: func(t models.Task) string { return strconv.FormatUint(t.ProjectID, 10) },
			},
			ColAssignedTo: {
				Value: func(t models.Task) string {
					if t.AssignedTo == nil {
						return ""
					}
					return strconv.FormatUint(*t.AssignedTo, 10)
				},
			},
			ColStatus: {
				Value: func(t models.Task) string { return string(t.Status) },
				Less:  func(a, b models.Task) bool { return a.Status < b.Status },
			},
			ColPriority: {
				Value: func(t models.Task) string { return string(t.Priority) },
				Less: func(a, b models.Task) bool {
					return models.PriorityRank(a.Priority) < models.PriorityRank(b.Priority)
				},
			},
			ColDueDate: {
				Less: func(a, b models.Task) bool { return timePtrLess(a.DueDate, b.DueDate) },
			},
			ColCreatedAt: {
				Less: func(a, b models.Task) bool { return a.CreatedAt.Before(b.CreatedAt) },
			},
		},
	}
}

// Projects builds the table view for the project list.
func Projects() *View[models.Project] {
	return &View[models.Project]{
		SearchText: func(p models.Project) string {
			parts := []string{p.Name}
			if p.Description != nil {
				parts = append(parts, *p.Description)
			}
			return strings.Join(parts, " ")
		},
		Columns: map[string]Column[models.Project]{
			ColName: {
				Value: func(p models.Project) string { return p.Name },
				Less:  func(a, b models.Project) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) },
			},
			ColStatus: {
				Value: func(p models.Project) string { return string(p.Status) },
				Less:  func(a, b models.Project) bool { return a.Status < b.Status },
			},
			ColStartDate: {
				Less: func(a, b models.Project) bool { return timePtrLess(a.StartDate, b.StartDate) },
			},
			ColCreatedAt: {
				Less: func(a, b models.Project) bool { return a.CreatedAt.Before(b.CreatedAt) },
			},
		},
	}
}

// Users builds the table view for the user list: searchable over name,
// email and role.
func Users() *View[models.User] {
	return &View[models.User]{
		SearchText: func(u models.User) string {
			return u.Name + " " + u.Email + " " + string(u.Role)
		},
		Columns: map[string]Column[models.User]{
			ColName: {
				Value: func(u models.User) string { return u.Name },
				Less:  func(a, b models.User) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) },
			},
			ColEmail: {
				Value: func(u models.User) string { return u.Email },
				Less:  func(a, b models.User) bool { return strings.ToLower(a.Email) < strings.ToLower(b.Email) },
			},
			ColRole: {
				Value: func(u models.User) string { return string(u.Role) },
				Less:  func(a, b models.User) bool { return a.Role < b.Role },
			},
			ColCreatedAt: {
				Less: func(a, b models.User) bool { return a.CreatedAt.Before(b.CreatedAt) },
			},
		},
	}
}

// timePtrLess orders timestamps ascending with nil values last.
func timePtrLess(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}
