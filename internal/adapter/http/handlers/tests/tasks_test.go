package tests

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"todolist/internal/adapter/http/dto"
	"todolist/internal/adapter/http/handlers"
	"todolist/internal/adapter/http/middleware"
	"todolist/internal/core/domain"
	"todolist/pkg/apierrors"
	"todolist/pkg/translator"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testAuthor = "author-1"

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, id string) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) SetCompletion(ctx context.Context, id string, done bool, caller string) (domain.Task, error) {
	args := m.Called(ctx, id, done, caller)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) ToggleCompletion(ctx context.Context, id string, caller string) (domain.Task, error) {
	args := m.Called(ctx, id, caller)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, id string, caller string) (domain.Task, error) {
	args := m.Called(ctx, id, caller)
	return args.Get(0).(domain.Task), args.Error(1)
}

// fakeAuth stands in for AuthMiddleware and authenticates every request as caller.
func fakeAuth(caller string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("caller", caller)
		c.Next()
	}
}

func newRouter(handler *handlers.TaskHandler, caller string) *gin.Engine {
	router := gin.New()
	router.Use(middleware.LanguageMiddleware())
	router.GET("/api/tasks/:id", handler.GetTask)

	authed := router.Group("/api/tasks")
	if caller != "" {
		authed.Use(fakeAuth(caller))
	}
	authed.POST("", handler.CreateTask)
	authed.PUT("/:id/completion", handler.SetCompletion)
	authed.POST("/:id/toggle", handler.ToggleCompletion)
	authed.DELETE("/:id", handler.DeleteTask)
	return router
}

func sampleTask(done bool) domain.Task {
	return domain.Task{
		ID:        "task-1",
		Author:    testAuthor,
		Text:      "You are awesome",
		IsDone:    done,
		CreatedAt: time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 10, 14, 9, 30, 0, 500000000, time.UTC),
	}
}

func doRequest(router *gin.Engine, method, path, body, lang string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if lang != "" {
		req.Header.Set("Accept-Language", lang)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apierrors.JsonErr {
	t.Helper()
	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	return got
}

func TestTaskHandler_CreateTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, domain.CreateTaskInput{
		ID:     "task-1",
		Text:   "You are awesome",
		Author: testAuthor,
	}).Return(sampleTask(false), nil).Once()
	router := newRouter(handlers.NewTaskHandler(serviceMock), testAuthor)

	rec := doRequest(router, http.MethodPost, "/api/tasks", `{"id":"task-1","text":"You are awesome"}`, translator.LanguageEn)

	require.Equal(t, http.StatusCreated, rec.Code)

	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "task-1", got.ID)
	require.Equal(t, testAuthor, got.Author)
	require.Equal(t, "You are awesome", got.Text)
	require.False(t, got.IsDone)
	require.Equal(t, "2026-10-14T09:00:00Z", got.CreatedAt)
	require.Equal(t, "2026-10-14T09:30:00.5Z", got.UpdatedAt)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_IgnoresAuthorInPayload(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, mock.MatchedBy(func(in domain.CreateTaskInput) bool {
		return in.Author == testAuthor
	})).Return(sampleTask(false), nil).Once()
	router := newRouter(handlers.NewTaskHandler(serviceMock), testAuthor)

	rec := doRequest(router, http.MethodPost, "/api/tasks", `{"id":"task-1","text":"x","author":"mallory"}`, "")

	require.Equal(t, http.StatusCreated, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_InvalidPayload(t *testing.T) {
	bodies := []string{
		`{}`,
		`{"id":"task-1"}`,
		`{"text":"x"}`,
		`not json`,
		`{"id":"wallet/1","text":"x"}`,
		`{"id":" task-1","text":"x"}`,
	}
	for _, body := range bodies {
		t.Run(body, func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			router := newRouter(handlers.NewTaskHandler(serviceMock), testAuthor)

			rec := doRequest(router, http.MethodPost, "/api/tasks", body, translator.LanguageEn)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			got := decodeError(t, rec)
			require.Equal(t, http.StatusBadRequest, got.ErrDetails.Code)
			require.Equal(t, "Invalid task payload", got.ErrDetails.Message)
			serviceMock.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything)
		})
	}
}

func TestTaskHandler_CreateTask_WithoutCaller(t *testing.T) {
	serviceMock := new(taskServiceMock)
	router := newRouter(handlers.NewTaskHandler(serviceMock), "")

	rec := doRequest(router, http.MethodPost, "/api/tasks", `{"id":"task-1","text":"x"}`, translator.LanguageEn)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, "Authorization token is required", decodeError(t, rec).ErrDetails.Message)
}

func TestTaskHandler_CreateTask_ServiceErrors(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{domain.ErrTextTooLong, http.StatusBadRequest, "The text is too long"},
		{domain.ErrInvalidInput, http.StatusBadRequest, "Invalid task payload"},
		{domain.ErrDuplicateIdentity, http.StatusConflict, "A task with this id already exists"},
		{errors.New("db is down"), http.StatusInternalServerError, "failed to create task"},
	}

	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			serviceMock.On("CreateTask", mock.Anything, mock.Anything).Return(domain.Task{}, tc.err).Once()
			router := newRouter(handlers.NewTaskHandler(serviceMock), testAuthor)

			rec := doRequest(router, http.MethodPost, "/api/tasks", `{"id":"task-1","text":"x"}`, translator.LanguageEn)

			require.Equal(t, tc.status, rec.Code)
			got := decodeError(t, rec)
			require.Equal(t, tc.status, got.ErrDetails.Code)
			require.Equal(t, tc.message, got.ErrDetails.Message)
			serviceMock.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_GetTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTask", mock.Anything, "task-1").Return(sampleTask(true), nil).Once()
	router := newRouter(handlers.NewTaskHandler(serviceMock), "")

	rec := doRequest(router, http.MethodGet, "/api/tasks/task-1", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.IsDone)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_GetTask_NotFoundTranslated(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTask", mock.Anything, "missing").Return(domain.Task{}, domain.ErrTaskNotFound).Once()
	router := newRouter(handlers.NewTaskHandler(serviceMock), "")

	rec := doRequest(router, http.MethodGet, "/api/tasks/missing", "", translator.LanguageFr)

	require.Equal(t, http.StatusNotFound, rec.Code)
	got := decodeError(t, rec)
	require.Equal(t, http.StatusNotFound, got.ErrDetails.Code)
	require.Equal(t, "Tâche introuvable", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_GetTask_InvalidID(t *testing.T) {
	serviceMock := new(taskServiceMock)
	router := newRouter(handlers.NewTaskHandler(serviceMock), "")

	rec := doRequest(router, http.MethodGet, "/api/tasks/"+strings.Repeat("a", 65), "", translator.LanguageEn)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "Invalid id", decodeError(t, rec).ErrDetails.Message)
}

func TestTaskHandler_SetCompletion_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("SetCompletion", mock.Anything, "task-1", true, testAuthor).Return(sampleTask(true), nil).Once()
	router := newRouter(handlers.NewTaskHandler(serviceMock), testAuthor)

	rec := doRequest(router, http.MethodPut, "/api/tasks/task-1/completion", `{"is_done":true}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.IsDone)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_SetCompletion_FalseIsAValue(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("SetCompletion", mock.Anything, "task-1", false, testAuthor).Return(sampleTask(false), nil).Once()
	router := newRouter(handlers.NewTaskHandler(serviceMock), testAuthor)

	rec := doRequest(router, http.MethodPut, "/api/tasks/task-1/completion", `{"is_done":false}`, "")

	require.Equal(t, http.StatusOK, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_SetCompletion_InvalidPayload(t *testing.T) {
	for _, body := range []string{`{}`, `{"is_done":null}`, `{"is_done":"yes"}`} {
		t.Run(body, func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			router := newRouter(handlers.NewTaskHandler(serviceMock), testAuthor)

			rec := doRequest(router, http.MethodPut, "/api/tasks/task-1/completion", body, translator.LanguageEn)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, "Invalid task payload", decodeError(t, rec).ErrDetails.Message)
			serviceMock.AssertNotCalled(t, "SetCompletion", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTaskHandler_MutationErrors(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{fmt.Errorf("task task-1: %w", domain.ErrTaskNotFound), http.StatusNotFound, "Task not found"},
		{fmt.Errorf("task task-1: %w", domain.ErrUnauthorized), http.StatusForbidden, "You are not authorized for this action"},
		{errors.New("db is down"), http.StatusInternalServerError, "failed to update task"},
	}

	for _, tc := range tests {
		t.Run(tc.err.Error(), func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			serviceMock.On("SetCompletion", mock.Anything, "task-1", true, testAuthor).Return(domain.Task{}, tc.err).Once()
			serviceMock.On("ToggleCompletion", mock.Anything, "task-1", testAuthor).Return(domain.Task{}, tc.err).Once()
			serviceMock.On("DeleteTask", mock.Anything, "task-1", testAuthor).Return(domain.Task{}, tc.err).Once()
			router := newRouter(handlers.NewTaskHandler(serviceMock), testAuthor)

			for _, rec := range []*httptest.ResponseRecorder{
				doRequest(router, http.MethodPut, "/api/tasks/task-1/completion", `{"is_done":true}`, translator.LanguageEn),
				doRequest(router, http.MethodPost, "/api/tasks/task-1/toggle", "", translator.LanguageEn),
				doRequest(router, http.MethodDelete, "/api/tasks/task-1", "", translator.LanguageEn),
			} {
				require.Equal(t, tc.status, rec.Code)
				got := decodeError(t, rec)
				require.Equal(t, tc.status, got.ErrDetails.Code)
				require.Equal(t, tc.message, got.ErrDetails.Message)
			}
			serviceMock.AssertExpectations(t)
		})
	}
}

func TestTaskHandler_ToggleCompletion_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ToggleCompletion", mock.Anything, "task-1", testAuthor).Return(sampleTask(true), nil).Once()
	router := newRouter(handlers.NewTaskHandler(serviceMock), testAuthor)

	rec := doRequest(router, http.MethodPost, "/api/tasks/task-1/toggle", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.IsDone)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_DeleteTask_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("DeleteTask", mock.Anything, "task-1", testAuthor).Return(sampleTask(true), nil).Once()
	router := newRouter(handlers.NewTaskHandler(serviceMock), testAuthor)

	rec := doRequest(router, http.MethodDelete, "/api/tasks/task-1", "", "")

	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.True(t, got.IsDone)
	serviceMock.AssertExpectations(t)
}
