package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mp-classroom/classroom-gateway/internal/access"
	"github.com/mp-classroom/classroom-gateway/internal/backend"
	"github.com/mp-classroom/classroom-gateway/internal/inflight"
	"github.com/mp-classroom/classroom-gateway/internal/token"
	"github.com/mp-classroom/classroom-gateway/internal/utils"
	"github.com/mp-classroom/classroom-gateway/internal/validator"
)

const (
	msgTestUploaded     = "Тест успешно загружен!"
	msgFileRequired     = "Пожалуйста, выберите файл"
	msgValidationFailed = "Ошибка при проверке разметки"
	msgRunFailed        = "Ошибка при запуске теста"
)

// uploads are bounded; test definitions are small JSON documents
const maxTestUploadBytes = 8 << 20

type TestHandler struct {
	BaseHandler
	backend  *backend.Client
	resolver *UserResolver
	carrier  *token.Carrier
	validate *validator.Validator
	submits  *inflight.Guard
}

func NewTestHandler(
	client *backend.Client,
	resolver *UserResolver,
	carrier *token.Carrier,
	validate *validator.Validator,
	submits *inflight.Guard,
	logger utils.Logger,
) *TestHandler {
	return &TestHandler{
		BaseHandler: NewBaseHandler(logger),
		backend:     client,
		resolver:    resolver,
		carrier:     carrier,
		validate:    validate,
		submits:     submits,
	}
}

// List returns the professor's uploaded test suites. Students get their
// tasks instead; the tests screen offers per-task runs for them.
func (h *TestHandler) List(c *gin.Context) {
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

	if !access.For(user.ParsedRole()).ManageTests {
		tasks, err := h.backend.StudentTasks(c.Request.Context(), tok, user.Github)
		if err != nil {
			h.LogError(c, err, "student task list for tests failed")
			h.UpstreamError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"tasks": tasks})
		return
	}

	tests, err := h.backend.Tests(c.Request.Context(), tok, user.ID)
	if err != nil {
		h.LogError(c, err, "test list failed")
		h.UpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tests": tests})
}

// Participants lists (task, student) pairs for the professor test screen.
func (h *TestHandler) Participants(c *gin.Context) {
	tok, ok := h.carrier.FromRequest(c.Request)
	if !ok {
		h.Unauthorized(c)
		return
	}

	participants, err := h.backend.Participants(c.Request.Context(), tok)
	if err != nil {
		h.LogError(c, err, "participants list failed")
		h.UpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, participants)
}

// Upload accepts a test definition file plus metadata and forwards it as
// multipart form data.
func (h *TestHandler) Upload(c *gin.Context) {
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
	if !access.For(user.ParsedRole()).ManageTests {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: msgNoAccess})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxTestUploadBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgFileRequired})
		return
	}
	defer file.Close()

	title := c.PostForm("title")
	if strings.TrimSpace(title) == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Введите название теста"})
		return
	}
	description := c.PostForm("description")

	var taskIDs []int
	for _, raw := range c.PostFormArray("taskIds") {
		id, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgBadTaskID})
			return
		}
		taskIDs = append(taskIDs, id)
	}

	if !h.submits.Begin(tok, "upload-test") {
		c.JSON(http.StatusConflict, ErrorResponse{Message: msgSubmitInFlight})
		return
	}
	defer h.submits.End(tok, "upload-test")

	err = h.backend.UploadTest(c.Request.Context(), tok, title, description, user.ID, taskIDs, header.Filename, file)
	if err != nil {
		h.LogError(c, err, "test upload failed upstream")
		h.UpstreamError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: msgTestUploaded, Data: gin.H{"redirect": "/tests"}})
}

// ValidateHTML triggers markup validation of one student's submission,
// professors only.
func (h *TestHandler) ValidateHTML(c *gin.Context) {
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
	if !access.For(user.ParsedRole()).ManageTests {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: msgNoAccess})
		return
	}

	var req validator.ValidateHTMLRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgBadPayload, Details: err.Error()})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgBadPayload, Details: err.Error()})
		return
	}

	report, err := h.backend.ValidateHTML(c.Request.Context(), tok, req.GithubLogin, req.TaskID)
	if err != nil {
		h.LogError(c, err, "markup validation failed upstream")
		c.JSON(http.StatusBadGateway, ErrorResponse{Message: msgValidationFailed})
		return
	}
	c.JSON(http.StatusOK, report)
}

// Run executes an uploaded test suite, professors only.
func (h *TestHandler) Run(c *gin.Context) {
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
	if !access.For(user.ParsedRole()).ManageTests {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: msgNoAccess})
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgBadTaskID})
		return
	}

	results, err := h.backend.RunTest(c.Request.Context(), tok, id)
	if err != nil {
		h.LogError(c, err, "test run failed upstream")
		c.JSON(http.StatusBadGateway, ErrorResponse{Message: msgRunFailed})
		return
	}
	c.JSON(http.StatusOK, results)
}

// StudentRun executes the tests linked to a task against the caller's own
// submission. The join key is the session user's github login; students
// cannot run against anyone else.
func (h *TestHandler) StudentRun(c *gin.Context) {
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
	if !caps.RunOwnTests && !caps.ManageTests {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: msgNoAccess})
		return
	}

	taskID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgBadTaskID})
		return
	}

	results, err := h.backend.StudentRunTest(c.Request.Context(), tok, taskID, user.Github)
	if err != nil {
		h.LogError(c, err, "student test run failed upstream")
		c.JSON(http.StatusBadGateway, ErrorResponse{Message: msgRunFailed})
		return
	}
	c.JSON(http.StatusOK, results)
}
