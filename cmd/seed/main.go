package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"projecthub/internal/config"
	"projecthub/internal/database"
	"projecthub/internal/models"
	"projecthub/internal/relation"
)

func main() {
	importFile := flag.String("file", "", "Import data from a JSON export instead of the built-in fixtures")
	clearData := flag.Bool("clear-data", false, "Delete all tasks, projects and users before seeding")
	flag.Parse()

	cfg := config.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	if cfg.GinMode == "release" && *clearData {
		logger.Fatal("Refusing to clear data in release mode")
	}

	if err := database.Connect(cfg); err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	db := database.GetDB()

	if *clearData {
		logger.Info("Clearing existing data")
		for _, model := range []any{&models.Task{}, &models.Project{}, &models.User{}} {
			if err := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
				logger.Fatal("Failed to clear table", zap.Error(err))
			}
		}
	}

	if *importFile != "" {
		if err := importExport(db, *importFile, logger); err != nil {
			logger.Fatal("Import failed", zap.Error(err))
		}
		logger.Info("Import complete")
		return
	}

	if err := seedFixtures(db, logger); err != nil {
		logger.Fatal("Seeding failed", zap.Error(err))
	}
	logger.Info("Seeding complete")
}

// exportTask mirrors one row of a task export. The related project and
// assignee arrive in whatever shape the exporting client serialized the
// join as, so both go through relation.Ref.
type exportTask struct {
	Title       string                      `json:"title"`
	Description *string                     `json:"description"`
	Status      models.TaskStatus           `json:"status"`
	Priority    models.TaskPriority         `json:"priority"`
	DueDate     *time.Time                  `json:"due_date"`
	Project     relation.Ref[exportProject] `json:"project"`
	Assignee    relation.Ref[exportUser]    `json:"assignee"`
}

type exportProject struct {
	Name        string               `json:"name"`
	Description *string              `json:"description"`
	Status      models.ProjectStatus `json:"status"`
}

type exportUser struct {
	Name  string          `json:"name"`
	Email string          `json:"email"`
	Role  models.UserRole `json:"role"`
}

type export struct {
	Users    []exportUser    `json:"users"`
	Projects []exportProject `json:"projects"`
	Tasks    []exportTask    `json:"tasks"`
}

// importExport loads a JSON export and recreates its users, projects
// and tasks. Related records referenced only from task joins are
// created on first sight, keyed by project name and user email.
func importExport(db *gorm.DB, path string, logger *zap.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read export: %w", err)
	}

	var ex export
	if err := json.Unmarshal(data, &ex); err != nil {
		return fmt.Errorf("failed to parse export: %w", err)
	}

	admin, err := ensureAdmin(db)
	if err != nil {
		return err
	}

	usersByEmail := make(map[string]uint64)
	for _, u := range ex.Users {
		id, err := ensureUser(db, u)
		if err != nil {
			return err
		}
		usersByEmail[u.Email] = id
	}

	projectsByName := make(map[string]uint64)
	for _, p := range ex.Projects {
		id, err := ensureProject(db, p, admin.ID)
		if err != nil {
			return err
		}
		projectsByName[p.Name] = id
	}

	for _, t := range ex.Tasks {
		task := models.Task{
			Title:       t.Title,
			Description: t.Description,
			Status:      t.Status,
			Priority:    t.Priority,
			DueDate:     t.DueDate,
			CreatedBy:   admin.ID,
		}
		if task.Status == "" {
			task.Status = models.TaskStatusTodo
		}
		if task.Priority == "" {
			task.Priority = models.TaskPriorityMedium
		}
		if task.Status == models.TaskStatusDone {
			now := time.Now()
			task.CompletedAt = &now
		}

		if p, ok := t.Project.Get(); ok {
			id, known := projectsByName[p.Name]
			if !known {
				id, err = ensureProject(db, p, admin.ID)
				if err != nil {
					return err
				}
				projectsByName[p.Name] = id
			}
			task.ProjectID = id
		} else {
			logger.Warn("Skipping task without a resolvable project", zap.String("title", t.Title))
			continue
		}

		if u, ok := t.Assignee.Get(); ok {
			id, known := usersByEmail[u.Email]
			if !known {
				id, err = ensureUser(db, u)
				if err != nil {
					return err
				}
				usersByEmail[u.Email] = id
			}
			task.AssignedTo = &id
		}

		if err := db.Create(&task).Error; err != nil {
			return fmt.Errorf("failed to create task %q: %w", t.Title, err)
		}
		logger.Info("Imported task", zap.String("title", t.Title))
	}

	return nil
}

func ensureAdmin(db *gorm.DB) (*models.User, error) {
	var admin models.User
	err := db.Where("role = ?", models.RoleAdmin).First(&admin).Error
	if err == nil {
		return &admin, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up admin: %w", err)
	}

	admin = models.User{
		Name:         "Admin",
		Email:        "admin@projecthub.local",
		Role:         models.RoleAdmin,
		PasswordHash: "!", // no password; set one through the API
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return &admin, nil
}

func ensureUser(db *gorm.DB, u exportUser) (uint64, error) {
	var existing models.User
	err := db.Where("email = ?", u.Email).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("failed to look up user %q: %w", u.Email, err)
	}

	role := u.Role
	if role == "" {
		role = models.RoleUser
	}
	user := models.User{Name: u.Name, Email: u.Email, Role: role, PasswordHash: "!"}
	if err := db.Create(&user).Error; err != nil {
		return 0, fmt.Errorf("failed to create user %q: %w", u.Email, err)
	}
	return user.ID, nil
}

func ensureProject(db *gorm.DB, p exportProject, createdBy uint64) (uint64, error) {
	var existing models.Project
	err := db.Where("name = ?", p.Name).First(&existing).Error
	if err == nil {
		return existing.ID, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, fmt.Errorf("failed to look up project %q: %w", p.Name, err)
	}

	status := p.Status
	if status == "" {
		status = models.ProjectStatusActive
	}
	project := models.Project{Name: p.Name, Description: p.Description, Status: status, CreatedBy: createdBy}
	if err := db.Create(&project).Error; err != nil {
		return 0, fmt.Errorf("failed to create project %q: %w", p.Name, err)
	}
	return project.ID, nil
}

// seedFixtures creates a small demo data set.
func seedFixtures(db *gorm.DB, logger *zap.Logger) error {
	admin, err := ensureAdmin(db)
	if err != nil {
		return err
	}

	users := []exportUser{
		{Name: "Alice Chen", Email: "alice@projecthub.local", Role: models.RoleManager},
		{Name: "Bob Okafor", Email: "bob@projecthub.local", Role: models.RoleUser},
		{Name: "Carol Diaz", Email: "carol@projecthub.local", Role: models.RoleUser},
	}
	userIDs := make(map[string]uint64)
	for _, u := range users {
		id, err := ensureUser(db, u)
		if err != nil {
			return err
		}
		userIDs[u.Email] = id
	}

	desc := "Rebuild the marketing site on the new design system"
	projects := []exportProject{
		{Name: "Website relaunch", Description: &desc, Status: models.ProjectStatusActive},
		{Name: "Mobile app", Status: models.ProjectStatusActive},
		{Name: "Data warehouse", Status: models.ProjectStatusOnHold},
	}
	projectIDs := make(map[string]uint64)
	for _, p := range projects {
		id, err := ensureProject(db, p, admin.ID)
		if err != nil {
			return err
		}
		projectIDs[p.Name] = id
	}

	alice := userIDs["alice@projecthub.local"]
	bob := userIDs["bob@projecthub.local"]
	due := time.Now().AddDate(0, 0, 14)
	done := time.Now().AddDate(0, 0, -2)

	tasks := []models.Task{
		{Title: "Draft information architecture", ProjectID: projectIDs["Website relaunch"], AssignedTo: &alice, Status: models.TaskStatusDone, Priority: models.TaskPriorityHigh, CreatedBy: admin.ID, CompletedAt: &done},
		{Title: "Build component library", ProjectID: projectIDs["Website relaunch"], AssignedTo: &bob, Status: models.TaskStatusInProgress, Priority: models.TaskPriorityHigh, CreatedBy: admin.ID, DueDate: &due},
		{Title: "Write launch announcement", ProjectID: projectIDs["Website relaunch"], Status: models.TaskStatusTodo, Priority: models.TaskPriorityMedium, CreatedBy: admin.ID},
		{Title: "Prototype onboarding flow", ProjectID: projectIDs["Mobile app"], AssignedTo: &alice, Status: models.TaskStatusReview, Priority: models.TaskPriorityUrgent, CreatedBy: admin.ID, DueDate: &due},
		{Title: "Evaluate schema options", ProjectID: projectIDs["Data warehouse"], Status: models.TaskStatusBlocked, Priority: models.TaskPriorityLow, CreatedBy: admin.ID},
	}
	for _, task := range tasks {
		if err := db.Create(&task).Error; err != nil {
			return fmt.Errorf("failed to create task %q: %w", task.Title, err)
		}
		logger.Info("Created task", zap.String("title", task.Title))
	}

	return nil
}
