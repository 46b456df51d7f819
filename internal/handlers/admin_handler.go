package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mp-classroom/classroom-gateway/internal/access"
	"github.com/mp-classroom/classroom-gateway/internal/backend"
	"github.com/mp-classroom/classroom-gateway/internal/events"
	"github.com/mp-classroom/classroom-gateway/internal/token"
	"github.com/mp-classroom/classroom-gateway/internal/utils"
)

const (
	msgUserApproved  = "Пользователь подтверждён"
	msgApproveFailed = "Ошибка при подтверждении пользователя"
	msgBadUserID     = "Некорректный идентификатор пользователя"
)

type AdminHandler struct {
	BaseHandler
	backend  *backend.Client
	resolver *UserResolver
	carrier  *token.Carrier
	bus      *events.Bus
}

func NewAdminHandler(client *backend.Client, resolver *UserResolver, carrier *token.Carrier, bus *events.Bus, logger utils.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler: NewBaseHandler(logger),
		backend:     client,
		resolver:    resolver,
		carrier:     carrier,
		bus:         bus,
	}
}

func (h *AdminHandler) requireApprover(c *gin.Context) (string, bool) {
	tok, ok := h.carrier.FromRequest(c.Request)
	if !ok {
		h.Unauthorized(c)
		return "", false
	}

	user, err := h.resolver.Resolve(c.Request.Context(), tok)
	if err != nil {
		h.UpstreamError(c, err)
		return "", false
	}
	if !access.For(user.ParsedRole()).ApproveUsers {
		c.JSON(http.StatusForbidden, ErrorResponse{Message: msgNoAccess})
		return "", false
	}
	return tok, true
}

// Unapproved lists accounts awaiting manual activation.
func (h *AdminHandler) Unapproved(c *gin.Context) {
	tok, ok := h.requireApprover(c)
	if !ok {
		return
	}

	users, err := h.backend.UnapprovedUsers(c.Request.Context(), tok)
	if err != nil {
		h.LogError(c, err, "unapproved list failed")
		h.UpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Approve activates one pending account.
func (h *AdminHandler) Approve(c *gin.Context) {
	tok, ok := h.requireApprover(c)
	if !ok {
		return
	}

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgBadUserID})
		return
	}

	if err := h.backend.ApproveUser(c.Request.Context(), tok, id); err != nil {
		h.LogError(c, err, "approve failed upstream")
		c.JSON(http.StatusBadGateway, ErrorResponse{Message: msgApproveFailed})
		return
	}

	if err := h.bus.Publish(events.AuthEvent{Type: events.TypeApprove, UserID: id}); err != nil {
		h.LogError(c, err, "publish approve event")
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: msgUserApproved})
}
