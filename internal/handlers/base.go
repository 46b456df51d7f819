package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mp-classroom/classroom-gateway/internal/backend"
	"github.com/mp-classroom/classroom-gateway/internal/models"
	"github.com/mp-classroom/classroom-gateway/internal/session"
	"github.com/mp-classroom/classroom-gateway/internal/utils"
)

// ErrorResponse is the JSON error envelope. Redirect, when set, tells the
// client where to navigate (the uniform missing-token policy).
type ErrorResponse struct {
	Message  string      `json:"message"`
	Details  interface{} `json:"details,omitempty"`
	Redirect string      `json:"redirect,omitempty"`
}

// SuccessResponse wraps mutation outcomes.
type SuccessResponse struct {
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

const (
	msgUnauthorized = "Пользователь не авторизован"
	msgNetworkError = "Ошибка сети. Попробуйте позже."
)

type BaseHandler struct {
	logger utils.Logger
}

func NewBaseHandler(logger utils.Logger) BaseHandler {
	return BaseHandler{logger: logger}
}

func (h *BaseHandler) LogRequest(c *gin.Context, msg string, args ...any) {
	utils.FromContext(c.Request.Context(), h.logger).Info(msg, args...)
}

func (h *BaseHandler) LogError(c *gin.Context, err error, msg string, args ...any) {
	args = append(args, "error", err)
	utils.FromContext(c.Request.Context(), h.logger).Error(msg, args...)
}

// Unauthorized answers with the uniform missing-token policy for API calls.
func (h *BaseHandler) Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
		Message:  msgUnauthorized,
		Redirect: "/",
	})
}

// UpstreamError maps a backend failure to the client: the backend's own
// message passes through verbatim when present, anything else degrades to a
// generic network notification.
func (h *BaseHandler) UpstreamError(c *gin.Context, err error) {
	if be, ok := backend.AsError(err); ok {
		status := be.StatusCode
		if status < 400 || status > 599 {
			status = http.StatusBadGateway
		}
		msg := be.Message
		if msg == "" {
			msg = msgNetworkError
		}
		c.JSON(status, ErrorResponse{Message: msg})
		return
	}
	c.JSON(http.StatusBadGateway, ErrorResponse{Message: msgNetworkError})
}

// UserResolver yields the current user for a token: the session store first,
// falling back to a fresh backend fetch that repopulates the store.
type UserResolver struct {
	store   *session.Store
	backend *backend.Client
	logger  utils.Logger
}

func NewUserResolver(store *session.Store, client *backend.Client, logger utils.Logger) *UserResolver {
	return &UserResolver{store: store, backend: client, logger: logger}
}

func (r *UserResolver) Resolve(ctx context.Context, tok string) (*models.User, error) {
	u, err := r.store.GetUser(ctx, tok)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, session.ErrNotFound) && !errors.Is(err, session.ErrNotAvailable) {
		r.logger.Warn("session store read failed, refetching", "error", err)
	}

	u, err = r.backend.GetUser(ctx, tok)
	if err != nil {
		return nil, err
	}
	if err := r.store.SetUser(ctx, tok, u); err != nil {
		r.logger.Warn("session store write failed", "error", err)
	}
	return u, nil
}
