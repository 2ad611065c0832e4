package handlers

import (
	"errors"
	"net/http"

	"todolist/internal/adapter/http/dto"
	"todolist/internal/adapter/http/mapper"
	"todolist/internal/adapter/http/middleware"
	"todolist/internal/adapter/http/validation"
	"todolist/internal/core/domain"
	"todolist/internal/core/ports"
	"todolist/pkg/apierrors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	caller, ok := requireCaller(c, lang)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang)
		return
	}

	input, err := validation.BuildCreateTaskInput(req, caller)
	if err != nil {
		respondError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang)
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), input)
	if err != nil {
		h.handleServiceError(c, err, apierrors.MsgFailCreateTask, input.ID, lang)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	taskID, ok := requireTaskID(c, lang)
	if !ok {
		return
	}

	task, err := h.taskService.GetTask(c.Request.Context(), taskID)
	if err != nil {
		h.handleServiceError(c, err, apierrors.MsgFailFetchTask, taskID, lang)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) SetCompletion(c *gin.Context) {
	lang := middleware.GetLang(c)
	caller, ok := requireCaller(c, lang)
	if !ok {
		return
	}
	taskID, ok := requireTaskID(c, lang)
	if !ok {
		return
	}

	var req dto.UpdateCompletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang)
		return
	}
	done, err := validation.CompletionValue(req)
	if err != nil {
		respondError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang)
		return
	}

	task, err := h.taskService.SetCompletion(c.Request.Context(), taskID, done, caller)
	if err != nil {
		h.handleServiceError(c, err, apierrors.MsgFailUpdateTask, taskID, lang)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) ToggleCompletion(c *gin.Context) {
	lang := middleware.GetLang(c)
	caller, ok := requireCaller(c, lang)
	if !ok {
		return
	}
	taskID, ok := requireTaskID(c, lang)
	if !ok {
		return
	}

	task, err := h.taskService.ToggleCompletion(c.Request.Context(), taskID, caller)
	if err != nil {
		h.handleServiceError(c, err, apierrors.MsgFailUpdateTask, taskID, lang)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	lang := middleware.GetLang(c)
	caller, ok := requireCaller(c, lang)
	if !ok {
		return
	}
	taskID, ok := requireTaskID(c, lang)
	if !ok {
		return
	}

	task, err := h.taskService.DeleteTask(c.Request.Context(), taskID, caller)
	if err != nil {
		h.handleServiceError(c, err, apierrors.MsgFailUpdateTask, taskID, lang)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) handleServiceError(c *gin.Context, err error, failKey string, taskID string, lang string) {
	switch {
	case errors.Is(err, domain.ErrTextTooLong):
		respondError(c, http.StatusBadRequest, apierrors.MsgTextTooLong, lang)
	case errors.Is(err, domain.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskPayload, lang)
	case errors.Is(err, domain.ErrTaskNotFound):
		respondError(c, http.StatusNotFound, apierrors.MsgTaskNotFound, lang)
	case errors.Is(err, domain.ErrUnauthorized):
		respondError(c, http.StatusForbidden, apierrors.MsgUnauthorizedAuthor, lang)
	case errors.Is(err, domain.ErrDuplicateIdentity):
		respondError(c, http.StatusConflict, apierrors.MsgTaskAlreadyExists, lang)
	default:
		zap.L().Error("task operation failed", zap.String("task_id", taskID), zap.String("route", c.FullPath()), zap.Error(err))
		respondError(c, http.StatusInternalServerError, failKey, lang)
	}
}

func requireCaller(c *gin.Context, lang string) (string, bool) {
	caller, ok := middleware.GetCaller(c)
	if !ok {
		respondError(c, http.StatusUnauthorized, apierrors.MsgMissingToken, lang)
		return "", false
	}
	return caller, true
}

func requireTaskID(c *gin.Context, lang string) (string, bool) {
	taskID, err := validation.TaskID(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, apierrors.MsgInvalidTaskID, lang)
		return "", false
	}
	return taskID, true
}

func respondError(c *gin.Context, status int, msgKey string, lang string) {
	c.JSON(status, apierrors.CreateError(status, msgKey, lang))
}
