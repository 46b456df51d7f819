package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mp-classroom/classroom-gateway/internal/access"
	"github.com/mp-classroom/classroom-gateway/internal/backend"
	"github.com/mp-classroom/classroom-gateway/internal/inflight"
	"github.com/mp-classroom/classroom-gateway/internal/token"
	"github.com/mp-classroom/classroom-gateway/internal/utils"
	"github.com/mp-classroom/classroom-gateway/internal/validator"
)

const (
	msgTaskAdded   = "Задание успешно добавлено"
	msgNoAccess    = "Нет доступа"
	msgBadTaskID   = "Некорректный идентификатор задания"
	msgCheckFailed = "Ошибка при добавлении в тестирование"
)

type TaskHandler struct {
	BaseHandler
	backend  *backend.Client
	resolver *UserResolver
	carrier  *token.Carrier
	validate *validator.Validator
	submits  *inflight.Guard
}

func NewTaskHandler(
	client *backend.Client,
	resolver *UserResolver,
	carrier *token.Carrier,
	validate *validator.Validator,
	submits *inflight.Guard,
	logger utils.Logger,
) *TaskHandler {
	return &TaskHandler{
		BaseHandler: NewBaseHandler(logger),
		backend:     client,
		resolver:    resolver,
		carrier:     carrier,
		validate:    validate,
		submits:     submits,
	}
}

// List returns the role-appropriate task view: professors see the task
// definitions they own, students their submissions by github login.
func (h *TaskHandler) List(c *gin.Context) {
	tok, ok := h.carrier.FromRequest(c.Request)
	if !ok {
		h.Unauthorized(c)
		return
	}

	user, err := h.resolver.Resolve(c.Request.Context(), tok)
	if err != nil {
		h.UpstreamError(c, err)
		return
	}

	caps := access.For(user.ParsedRole())
	if caps.ManageTasks {
		tasks, err := h.backend.ProfessorTasks(c.Request.Context(), tok, user.ID)
		if err != nil {
			h.LogError(c, err, "professor task list failed")
			h.UpstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, tasks)
		return
	}

	tasks, err := h.backend.StudentTasks(c.Request.Context(), tok, user.Github)
	if err != nil {
		h.LogError(c, err, "student task list failed")
		h.UpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Add registers a new classroom assignment, professors only.
func (h *TaskHandler) Add(c *gin.Context) {
	tok, ok := h.carrier.FromRequest(c.Request)
	if !ok {
		h.Unauthorized(c)
		return
	}

	user, err := h.resolver.Resolve(c.Request.Context(), tok)
	if err != nil {
		h.UpstreamError(c, err)
		return
	}
	if !access.For(user.ParsedRole()).ManageTasks {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: msgNoAccess})
		return
	}

	var req validator.AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgBadPayload, Details: err.Error()})
		return
	}
	if err := h.validate.ValidateAddTask(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	if !h.submits.Begin(tok, "add-task") {
		c.JSON(http.StatusConflict, ErrorResponse{Message: msgSubmitInFlight})
		return
	}
	defer h.submits.End(tok, "add-task")

	if err := h.backend.AddTask(c.Request.Context(), tok, req.Name, req.Link, req.Branch, req.TaskID, user.ID); err != nil {
		h.LogError(c, err, "add task failed upstream")
		h.UpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: msgTaskAdded, Data: gin.H{"redirect": "/tasks"}})
}

// Update edits an existing task definition, professors only.
func (h *TaskHandler) Update(c *gin.Context) {
	tok, ok := h.carrier.FromRequest(c.Request)
	if !ok {
		h.Unauthorized(c)
		return
	}

	user, err := h.resolver.Resolve(c.Request.Context(), tok)
	if err != nil {
		h.UpstreamError(c, err)
		return
	}
	if !access.For(user.ParsedRole()).ManageTasks {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: msgNoAccess})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgBadTaskID})
		return
	}

	var req validator.AddTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgBadPayload, Details: err.Error()})
		return
	}
	if err := h.validate.ValidateAddTask(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	if !h.submits.Begin(tok, "update-task") {
		c.JSON(http.StatusConflict, ErrorResponse{Message: msgSubmitInFlight})
		return
	}
	defer h.submits.End(tok, "update-task")

	if err := h.backend.UpdateTask(c.Request.Context(), tok, id, req.Name, req.Link, req.Branch); err != nil {
		h.LogError(c, err, "task update failed upstream")
		h.UpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{Message: msgTaskAdded})
}

// Delete removes a task definition, professors only.
func (h *TaskHandler) Delete(c *gin.Context) {
	tok, ok := h.carrier.FromRequest(c.Request)
	if !ok {
		h.Unauthorized(c)
		return
	}

	user, err := h.resolver.Resolve(c.Request.Context(), tok)
	if err != nil {
		h.UpstreamError(c, err)
		return
	}
	if !access.For(user.ParsedRole()).ManageTasks {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: msgNoAccess})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgBadTaskID})
		return
	}

	if err := h.backend.DeleteTask(c.Request.Context(), tok, id); err != nil {
		h.LogError(c, err, "task delete failed upstream")
		h.UpstreamError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ToggleCheck flips a submission's membership in the copy-check queue.
func (h *TaskHandler) ToggleCheck(c *gin.Context) {
	tok, ok := h.carrier.FromRequest(c.Request)
	if !ok {
		h.Unauthorized(c)
		return
	}

	user, err := h.resolver.Resolve(c.Request.Context(), tok)
	if err != nil {
		h.UpstreamError(c, err)
		return
	}
	if !access.For(user.ParsedRole()).ManageTasks {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: msgNoAccess})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgBadTaskID})
		return
	}

	if err := h.backend.ToggleCopyCheck(c.Request.Context(), tok, id); err != nil {
		h.LogError(c, err, "copy check toggle failed upstream")
		c.JSON(http.StatusBadGateway, ErrorResponse{Message: msgCheckFailed})
		return
	}
	c.JSON(http.StatusOK, SuccessResponse{})
}
