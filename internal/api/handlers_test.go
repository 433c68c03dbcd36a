package api_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"taskboard/internal/api"
	"taskboard/internal/model"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/pkg/translator"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "../../pkg/translator/translation",
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})
	os.Exit(m.Run())
}

var dbSeq int64

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	dsn := fmt.Sprintf("file:apitest%d?mode=memory&cache=shared", atomic.AddInt64(&dbSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{}, &model.Project{}, &model.Task{},
		&model.TaskReminder{}, &model.ProjectCopyLog{}, &model.NotificationsLog{},
	))

	userRepo := repository.NewUserRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	reminderRepo := repository.NewReminderRepository(db)

	authSvc := service.NewAuthService(userRepo, "test-secret", time.Hour)
	projectSvc := service.NewProjectService(projectRepo)
	taskSvc := service.NewTaskService(taskRepo, reminderRepo, projectRepo, userRepo)

	r := gin.New()
	api.RegisterRoutes(
		r,
		authSvc,
		api.NewHealthHandler(db),
		api.NewAuthHandler(authSvc),
		api.NewProjectHandler(projectSvc),
		api.NewTaskHandler(taskSvc),
	)
	return &testServer{router: r, db: db}
}

func (s *testServer) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates a user through the API and returns its id
// and bearer token.
func (s *testServer) registerAndLogin(t *testing.T, name, phone string) (uint, string) {
	t.Helper()

	w := s.do(t, http.MethodPost, "/api/register", "", gin.H{
		"name": name, "phone_number": phone, "password": "s3cret1",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/login", "", gin.H{
		"phone_number": phone, "password": "s3cret1",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string     `json:"token"`
		User  model.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.User.ID, resp.Token
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) (string, string) {
	t.Helper()
	var resp struct {
		Error struct {
			Message string `json:"message"`
			Reason  string `json:"reason"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Error.Message, resp.Error.Reason
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"message":"ok"`)
}

func TestRegisterLoginProfileFlow(t *testing.T) {
	s := newTestServer(t)

	userID, token := s.registerAndLogin(t, "Alice", "+33600000001")
	require.NotZero(t, userID)

	w := s.do(t, http.MethodGet, "/api/profile", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"phone_number":"+33600000001"`)
	assert.NotContains(t, w.Body.String(), "password")

	w = s.do(t, http.MethodPatch, "/api/profile", token, gin.H{"name": "Alicia"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"Alicia"`)

	// The same phone number can only register once.
	w = s.do(t, http.MethodPost, "/api/register", "", gin.H{
		"name": "Imposter", "phone_number": "+33600000001", "password": "s3cret1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthRequiredOnMutations(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodPost, "/api/projects", "", gin.H{"title": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/projects", "garbage-token", gin.H{"title": "nope"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Listing stays public.
	w = s.do(t, http.MethodGet, "/api/projects", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodGet, "/api/tasks", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProjectLifecycle(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerAndLogin(t, "Alice", "+33600000001")

	w := s.do(t, http.MethodPost, "/api/projects", token, gin.H{
		"title": "Renovation", "description": "kitchen first", "is_private": true,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var project model.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))
	require.NotZero(t, project.ID)

	w = s.do(t, http.MethodPost, "/api/projects", token, gin.H{"description": "no title"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPatch, fmt.Sprintf("/api/projects/%d", project.ID), token, gin.H{
		"title": "Renovation v2", "is_private": false,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"title":"Renovation v2"`)

	w = s.do(t, http.MethodGet, "/api/projects", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var listed []model.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	require.Len(t, listed, 1)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/projects", "", nil)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Empty(t, listed)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/projects/%d", project.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProjectOwnershipImmuneToPatchInjection(t *testing.T) {
	s := newTestServer(t)
	aliceID, aliceToken := s.registerAndLogin(t, "Alice", "+33600000001")
	bobID, _ := s.registerAndLogin(t, "Bob", "+33600000002")

	w := s.do(t, http.MethodPost, "/api/projects", aliceToken, gin.H{"title": "Mine"})
	require.Equal(t, http.StatusCreated, w.Code)
	var project model.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))
	require.Equal(t, aliceID, project.UserID)

	// user_id and id in the patch body are unknown fields; they must
	// change nothing.
	w = s.do(t, http.MethodPatch, fmt.Sprintf("/api/projects/%d", project.ID), aliceToken, gin.H{
		"title": "Still mine", "user_id": bobID, "id": 424242,
	})
	require.Equal(t, http.StatusOK, w.Code)
	var updated model.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, aliceID, updated.UserID)
	assert.Equal(t, project.ID, updated.ID)
	assert.Equal(t, "Still mine", updated.Title)
}

func TestProjectCopyEndpoint(t *testing.T) {
	s := newTestServer(t)
	_, aliceToken := s.registerAndLogin(t, "Alice", "+33600000001")
	bobID, bobToken := s.registerAndLogin(t, "Bob", "+33600000002")

	w := s.do(t, http.MethodPost, "/api/projects", aliceToken, gin.H{"title": "Original", "is_private": true})
	require.Equal(t, http.StatusCreated, w.Code)
	var original model.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &original))

	// Any authenticated user may copy, owner or not.
	w = s.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%d/copy", original.ID), bobToken, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var copied model.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &copied))
	assert.Equal(t, "Original (Copy)", copied.Title)
	assert.Equal(t, bobID, copied.UserID)
	assert.True(t, copied.IsPrivate)

	var entries []model.ProjectCopyLog
	require.NoError(t, s.db.Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, original.ID, entries[0].OriginalProjectID)
	assert.Equal(t, copied.ID, entries[0].NewProjectID)
	assert.Equal(t, bobID, entries[0].CopiedByUserID)

	w = s.do(t, http.MethodPost, "/api/projects/9999/copy", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestShareGates(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerAndLogin(t, "Alice", "+33600000001")

	w := s.do(t, http.MethodPost, "/api/projects", token, gin.H{"title": "Secret", "is_private": true})
	require.Equal(t, http.StatusCreated, w.Code)
	var project model.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))

	w = s.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%d/share", project.ID), token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	_, reason := decodeError(t, w)
	assert.Equal(t, "project_not_public", reason)

	w = s.do(t, http.MethodPost, "/api/tasks", token, gin.H{
		"project_id": project.ID, "title": "hidden", "priority": "low", "status": "pending",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var task model.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))

	w = s.do(t, http.MethodPost, fmt.Sprintf("/api/tasks/%d/share", task.ID), token, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
	_, reason = decodeError(t, w)
	assert.Equal(t, "project_not_public", reason)

	// Making the project public opens both gates; nothing else changes.
	w = s.do(t, http.MethodPatch, fmt.Sprintf("/api/projects/%d", project.ID), token, gin.H{"is_private": false})
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, fmt.Sprintf("/api/projects/%d/share", project.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), fmt.Sprintf("/shared/project/%d", project.ID))

	w = s.do(t, http.MethodPost, fmt.Sprintf("/api/tasks/%d/share", task.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"task"`)
	assert.Contains(t, w.Body.String(), `"project"`)
}

func TestTaskCreateWithReminderBatch(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerAndLogin(t, "Alice", "+33600000001")

	w := s.do(t, http.MethodPost, "/api/projects", token, gin.H{"title": "Chores"})
	require.Equal(t, http.StatusCreated, w.Code)
	var project model.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))

	w = s.do(t, http.MethodPost, "/api/tasks", token, gin.H{
		"project_id": project.ID,
		"title":      "Buy groceries",
		"priority":   "high",
		"status":     "pending",
		"deadline":   "2026-09-10 18:00",
		"reminders":  []string{"2026-09-10T08:00:00Z", "not-a-timestamp", "2026-09-10 12:00"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var task model.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))
	require.NotNil(t, task.Deadline)
	// The bad reminder value is dropped, not fatal.
	assert.Len(t, task.Reminders, 2)

	w = s.do(t, http.MethodPost, "/api/tasks", token, gin.H{
		"project_id": project.ID, "title": "bad enum", "priority": "urgent", "status": "pending",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/tasks", token, gin.H{
		"project_id": 9999, "title": "orphan", "priority": "low", "status": "pending",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestTaskListExcludesDeletedProject(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerAndLogin(t, "Alice", "+33600000001")

	w := s.do(t, http.MethodPost, "/api/projects", token, gin.H{"title": "Keep"})
	require.Equal(t, http.StatusCreated, w.Code)
	var keep model.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &keep))

	w = s.do(t, http.MethodPost, "/api/projects", token, gin.H{"title": "Drop"})
	require.Equal(t, http.StatusCreated, w.Code)
	var drop model.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &drop))

	for _, projectID := range []uint{keep.ID, drop.ID} {
		w = s.do(t, http.MethodPost, "/api/tasks", token, gin.H{
			"project_id": projectID, "title": "t", "priority": "low", "status": "pending",
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/projects/%d", drop.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/tasks", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var tasks []model.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	require.Len(t, tasks, 1)
	assert.Equal(t, keep.ID, tasks[0].ProjectID)

	// Filtering by the deleted project yields nothing rather than an error.
	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/tasks?project_id=%d", drop.ID), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &tasks))
	assert.Empty(t, tasks)
}

func TestTaskDestroyEndpoint(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerAndLogin(t, "Alice", "+33600000001")

	w := s.do(t, http.MethodPost, "/api/projects", token, gin.H{"title": "Chores"})
	require.Equal(t, http.StatusCreated, w.Code)
	var project model.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))

	w = s.do(t, http.MethodPost, "/api/tasks", token, gin.H{
		"project_id": project.ID, "title": "doomed", "priority": "low", "status": "pending",
		"reminders": []string{"2026-09-10T08:00:00Z"},
	})
	require.Equal(t, http.StatusCreated, w.Code)
	var task model.Task
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &task))

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var liveReminders int64
	require.NoError(t, s.db.Model(&model.TaskReminder{}).Where("task_id = ?", task.ID).Count(&liveReminders).Error)
	assert.Zero(t, liveReminders)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/tasks/%d", task.ID), token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodDelete, "/api/tasks/abc", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestErrorMessagesAreTranslated(t *testing.T) {
	s := newTestServer(t)
	_, token := s.registerAndLogin(t, "Alice", "+33600000001")

	w := s.do(t, http.MethodPost, "/api/projects", token, gin.H{"title": "Secret", "is_private": true})
	require.Equal(t, http.StatusCreated, w.Code)
	var project model.Project
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &project))

	req := httptest.NewRequest(http.MethodPost, fmt.Sprintf("/api/projects/%d/share", project.ID), nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept-Language", "fr")
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	msg, reason := decodeError(t, rec)
	assert.Equal(t, "Partage impossible. Le projet doit être public.", msg)
	assert.Equal(t, "project_not_public", reason)
}
