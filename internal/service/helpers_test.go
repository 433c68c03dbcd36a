package service_test

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskboard/internal/model"
	"taskboard/internal/repository"
)

var dbSeq int64

// gormDeps bundles the database handle with the repositories a test
// needs for seeding and assertions.
type gormDeps struct {
	db           *gorm.DB
	taskRepo     *repository.TaskRepository
	reminderRepo *repository.ReminderRepository
	projectRepo  *repository.ProjectRepository
	userRepo     *repository.UserRepository
}

// newTestDB opens a uniquely named shared in-memory SQLite database so
// every pooled connection sees the same data.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:svctest%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Project{},
		&model.Task{},
		&model.TaskReminder{},
		&model.ProjectCopyLog{},
		&model.NotificationsLog{},
	))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, phone string) *model.User {
	t.Helper()
	user := model.User{Name: name, PhoneNumber: phone, PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func seedProject(t *testing.T, db *gorm.DB, ownerID uint, title string, private bool) *model.Project {
	t.Helper()
	project := model.Project{UserID: ownerID, Title: title, IsPrivate: private}
	require.NoError(t, db.Create(&project).Error)
	return &project
}

func seedTask(t *testing.T, db *gorm.DB, projectID, userID uint, title string) *model.Task {
	t.Helper()
	task := model.Task{
		ProjectID: projectID,
		UserID:    userID,
		Title:     title,
		Priority:  model.PriorityMedium,
		Status:    model.StatusPending,
	}
	require.NoError(t, db.Create(&task).Error)
	return &task
}

func seedReminder(t *testing.T, db *gorm.DB, taskID uint, remindAt time.Time) *model.TaskReminder {
	t.Helper()
	reminder := model.TaskReminder{TaskID: taskID, RemindAt: remindAt}
	require.NoError(t, db.Create(&reminder).Error)
	return &reminder
}
