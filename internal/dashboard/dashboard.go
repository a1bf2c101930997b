// Package dashboard computes summary numbers from the raw project, task
// and user collections. Everything is a pure function of the current
// lists, recomputed per request; collections are session-scoped and
// small enough that no caching or incremental maintenance is warranted.
package dashboard

import (
	"math"
	"sort"

	"projecthub/internal/models"
)

// StatusCount is one (key, count) bucket of a group-by. Keys with zero
// occurrences are omitted.
type StatusCount struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// ProjectProgress is the completion summary for one active project.
type ProjectProgress struct {
	ProjectID      uint64 `json:"project_id"`
	Name           string `json:"name"`
	CompletedTasks int    `json:"completed_tasks"`
	TotalTasks     int    `json:"total_tasks"`
	Completion     int    `json:"completion"`
}

// UserLoad is the number of tasks assigned to one user. Unassigned tasks
// belong to no user's count.
type UserLoad struct {
	UserID    uint64 `json:"user_id"`
	Name      string `json:"name"`
	TaskCount int    `json:"task_count"`
}

// Summary is the full dashboard payload.
type Summary struct {
	TotalProjects         int           `json:"total_projects"`
	TotalTasks            int           `json:"total_tasks"`
	TotalUsers            int           `json:"total_users"`
	ProjectCompletionRate int           `json:"project_completion_rate"`
	TaskCompletionRate    int           `json:"task_completion_rate"`
	ProjectsByStatus      []StatusCount `json:"projects_by_status"`
	TasksByStatus         []StatusCount `json:"tasks_by_status"`
	TasksByPriority       []StatusCount `json:"tasks_by_priority"`
	UsersByRole           []StatusCount `json:"users_by_role"`
}

// priorityOrder fixes the display order of the priority distribution;
// first-seen order would shuffle the chart between loads.
var priorityOrder = []models.TaskPriority{
	models.TaskPriorityLow,
	models.TaskPriorityMedium,
	models.TaskPriorityHigh,
	models.TaskPriorityUrgent,
}

// BuildSummary aggregates the three collections into one payload.
func BuildSummary(projects []models.Project, tasks []models.Task, users []models.User) Summary {
	return Summary{
		TotalProjects:         len(projects),
		TotalTasks:            len(tasks),
		TotalUsers:            len(users),
		ProjectCompletionRate: ProjectCompletionRate(projects),
		TaskCompletionRate:    TaskCompletionRate(tasks),
		ProjectsByStatus:      ProjectsByStatus(projects),
		TasksByStatus:         TasksByStatus(tasks),
		TasksByPriority:       TasksByPriority(tasks),
		UsersByRole:           UsersByRole(users),
	}
}

// ProjectsByStatus groups projects by status in first-seen order.
func ProjectsByStatus(projects []models.Project) []StatusCount {
	return countBy(projects, func(p models.Project) string { return string(p.Status) })
}

// TasksByStatus groups tasks by status in first-seen order.
func TasksByStatus(tasks []models.Task) []StatusCount {
	return countBy(tasks, func(t models.Task) string { return string(t.Status) })
}

// UsersByRole groups users by role in first-seen order.
func UsersByRole(users []models.User) []StatusCount {
	return countBy(users, func(u models.User) string { return string(u.Role) })
}

// TasksByPriority groups tasks by priority in the fixed low, medium,
// high, urgent order, skipping empty buckets.
func TasksByPriority(tasks []models.Task) []StatusCount {
	counts := make(map[models.TaskPriority]int)
	for _, t := range tasks {
		counts[t.Priority]++
	}

	out := make([]StatusCount, 0, len(priorityOrder))
	for _, p := range priorityOrder {
		if counts[p] > 0 {
			out = append(out, StatusCount{Key: string(p), Count: counts[p]})
		}
	}
	return out
}

// ProjectCompletionRate is round(completed/total*100), 0 for an empty list.
func ProjectCompletionRate(projects []models.Project) int {
	completed := 0
	for _, p := range projects {
		if p.Status == models.ProjectStatusCompleted {
			completed++
		}
	}
	return rate(completed, len(projects))
}

// TaskCompletionRate is round(done/total*100), 0 for an empty list.
func TaskCompletionRate(tasks []models.Task) int {
	done := 0
	for _, t := range tasks {
		if t.Status == models.TaskStatusDone {
			done++
		}
	}
	return rate(done, len(tasks))
}

// ActiveProjectProgress computes per-project task completion for every
// active project, sorted by descending completion percentage.
func ActiveProjectProgress(projects []models.Project, tasks []models.Task) []ProjectProgress {
	out := make([]ProjectProgress, 0, len(projects))
	for _, p := range projects {
		if p.Status != models.ProjectStatusActive {
			continue
		}

		total := 0
		completed := 0
		for _, t := range tasks {
			if t.ProjectID != p.ID {
				continue
			}
			total++
			if t.Status == models.TaskStatusDone {
				completed++
			}
		}

		out = append(out, ProjectProgress{
			ProjectID:      p.ID,
			Name:           p.Name,
			CompletedTasks: completed,
			TotalTasks:     total,
			Completion:     rate(completed, total),
		})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Completion > out[j].Completion })
	return out
}

// UserTaskLoad counts assigned tasks per user. Tasks with no assignee
// match no user and are not reported separately.
func UserTaskLoad(users []models.User, tasks []models.Task) []UserLoad {
	out := make([]UserLoad, 0, len(users))
	for _, u := range users {
		count := 0
		for _, t := range tasks {
			if t.AssignedTo != nil && *t.AssignedTo == u.ID {
				count++
			}
		}
		out = append(out, UserLoad{UserID: u.ID, Name: u.Name, TaskCount: count})
	}
	return out
}

func countBy[T any](items []T, key func(T) string) []StatusCount {
	counts := make(map[string]int)
	var order []string
	for _, item := range items {
		k := key(item)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	out := make([]StatusCount, 0, len(order))
	for _, k := range order {
		out = append(out, StatusCount{Key: k, Count: counts[k]})
	}
	return out
}

func rate(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
