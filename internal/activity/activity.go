// Package activity synthesizes a unified reverse-chronological feed
// from the current task, project and user snapshots. There is no backend
// event log, so each entity contributes exactly one entry describing its
// current state; this is an approximation of history, not an audit trail.
package activity

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"projecthub/internal/models"
)

type EntryType string

const (
	EntryTask    EntryType = "task"
	EntryProject EntryType = "project"
	EntryUser    EntryType = "user"
)

// Entry is one feed item.
type Entry struct {
	ID          string    `json:"id"`
	Type        EntryType `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Timestamp   time.Time `json:"timestamp"`
}

// Compose merges the three collections into one feed sorted descending
// by timestamp. The sort is stable, so entries with equal timestamps
// keep synthesis order: tasks, then projects, then users. limit <= 0
// means no truncation.
func Compose(tasks []models.Task, projects []models.Project, users []models.User, limit int) []Entry {
	entries := make([]Entry, 0, len(tasks)+len(projects)+len(users))

	for _, t := range tasks {
		entries = append(entries, taskEntry(t))
	}
	for _, p := range projects {
		entries = append(entries, Entry{
			ID:          fmt.Sprintf("project-%d", p.ID),
			Type:        EntryProject,
			Title:       p.Name,
			Description: "Project: " + humanize(string(p.Status)),
			Timestamp:   laterOf(p.UpdatedAt, p.CreatedAt),
		})
	}
	for _, u := range users {
		// Users have no modeled updated-state distinction; joining is
		// the only event, keyed by created_at.
		entries = append(entries, Entry{
			ID:          fmt.Sprintf("user-%d", u.ID),
			Type:        EntryUser,
			Title:       u.Name,
			Description: "User joined as " + string(u.Role),
			Timestamp:   u.CreatedAt,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Timestamp.After(entries[j].Timestamp)
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

func taskEntry(t models.Task) Entry {
	var description string
	switch {
	case t.Status == models.TaskStatusDone:
		description = "Task completed"
	case t.UpdatedAt.After(t.CreatedAt):
		description = fmt.Sprintf("Task updated: %s • %s priority", humanize(string(t.Status)), t.Priority)
	default:
		description = fmt.Sprintf("Task created: %s • %s priority", humanize(string(t.Status)), t.Priority)
	}

	return Entry{
		ID:          fmt.Sprintf("task-%d", t.ID),
		Type:        EntryTask,
		Title:       t.Title,
		Description: description,
		Timestamp:   laterOf(t.UpdatedAt, t.CreatedAt),
	}
}

func humanize(status string) string {
	return strings.ReplaceAll(status, "-", " ")
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
