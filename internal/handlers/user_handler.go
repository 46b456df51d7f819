package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mp-classroom/classroom-gateway/internal/access"
	"github.com/mp-classroom/classroom-gateway/internal/backend"
	"github.com/mp-classroom/classroom-gateway/internal/inflight"
	"github.com/mp-classroom/classroom-gateway/internal/navigation"
	"github.com/mp-classroom/classroom-gateway/internal/session"
	"github.com/mp-classroom/classroom-gateway/internal/token"
	"github.com/mp-classroom/classroom-gateway/internal/utils"
	"github.com/mp-classroom/classroom-gateway/internal/validator"
)

const (
	msgProfileUpdated      = "Профиль успешно обновлён"
	msgProfileUpdateFailed = "Не удалось обновить профиль"
)

type UserHandler struct {
	BaseHandler
	backend  *backend.Client
	sessions *session.Store
	resolver *UserResolver
	carrier  *token.Carrier
	validate *validator.Validator
	submits  *inflight.Guard
}

func NewUserHandler(
	client *backend.Client,
	sessions *session.Store,
	resolver *UserResolver,
	carrier *token.Carrier,
	validate *validator.Validator,
	submits *inflight.Guard,
	logger utils.Logger,
) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(logger),
		backend:     client,
		sessions:    sessions,
		resolver:    resolver,
		carrier:     carrier,
		validate:    validate,
		submits:     submits,
	}
}

// Session returns the current user with their navigation and capabilities,
// resolved once per page load.
func (h *UserHandler) Session(c *gin.Context) {
	tok, ok := h.carrier.FromRequest(c.Request)
	if !ok {
		h.Unauthorized(c)
		return
	}

	user, err := h.resolver.Resolve(c.Request.Context(), tok)
	if err != nil {
		h.LogError(c, err, "session resolve failed")
		h.UpstreamError(c, err)
		return
	}

	role := user.ParsedRole()
	links := navigation.LinksFor(role)

	c.JSON(http.StatusOK, gin.H{
		"user":         user,
		"links":        links,
		"active":       navigation.Active(links, c.Query("path")),
		"capabilities": access.For(role),
	})
}

// Navigation returns just the header links for the session role, for
// renders that do not need the full session payload.
func (h *UserHandler) Navigation(c *gin.Context) {
	tok, ok := h.carrier.FromRequest(c.Request)
	if !ok {
		h.Unauthorized(c)
		return
	}

	user, err := h.resolver.Resolve(c.Request.Context(), tok)
	if err != nil {
		h.LogError(c, err, "navigation resolve failed")
		h.UpstreamError(c, err)
		return
	}

	links := navigation.LinksFor(user.ParsedRole())
	c.JSON(http.StatusOK, gin.H{
		"links":  links,
		"active": navigation.Active(links, c.Query("path")),
	})
}

// UpdateProfile edits the editable subset of the user and overwrites the
// session record with the result.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	tok, ok := h.carrier.FromRequest(c.Request)
	if !ok {
		h.Unauthorized(c)
		return
	}

	var req validator.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgBadPayload, Details: err.Error()})
		return
	}
	if err := h.validate.ValidateProfile(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	user, err := h.resolver.Resolve(c.Request.Context(), tok)
	if err != nil {
		h.UpstreamError(c, err)
		return
	}

	if !h.submits.Begin(tok, "update-profile") {
		c.JSON(http.StatusConflict, ErrorResponse{Message: msgSubmitInFlight})
		return
	}
	defer h.submits.End(tok, "update-profile")

	if err := h.backend.UpdateUser(c.Request.Context(), tok, user.ID, req.Name, req.Surname, req.Github); err != nil {
		h.LogError(c, err, "profile update failed upstream")
		c.JSON(http.StatusBadGateway, ErrorResponse{Message: msgProfileUpdateFailed})
		return
	}

	// session holds the projection; overwrite it wholesale
	user.Name = req.Name
	user.Surname = req.Surname
	user.Github = req.Github
	if err := h.sessions.SetUser(c.Request.Context(), tok, user); err != nil {
		h.LogError(c, err, "session overwrite after profile update failed")
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: msgProfileUpdated, Data: gin.H{"user": user}})
}
