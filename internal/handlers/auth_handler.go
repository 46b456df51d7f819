package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mp-classroom/classroom-gateway/internal/backend"
	"github.com/mp-classroom/classroom-gateway/internal/events"
	"github.com/mp-classroom/classroom-gateway/internal/inflight"
	"github.com/mp-classroom/classroom-gateway/internal/session"
	"github.com/mp-classroom/classroom-gateway/internal/token"
	"github.com/mp-classroom/classroom-gateway/internal/utils"
	"github.com/mp-classroom/classroom-gateway/internal/validator"
)

// Login outcome messages shown inline.
const (
	msgPendingActivation = "Аккаунт ожидает активации"
	msgLoginFailed       = "Ошибка входа. Проверьте логин и пароль."
	msgBadPayload        = "Некорректный запрос"
	msgSubmitInFlight    = "Запрос уже выполняется"
)

// backend outcomes treated as successful registration
const (
	upstreamRegistered    = "пользователь зарегистрирован"
	upstreamAlreadyExists = "User already exists"
	upstreamNotActive     = "user is not active"
)

type AuthHandler struct {
	BaseHandler
	backend  *backend.Client
	sessions *session.Store
	resolver *UserResolver
	carrier  *token.Carrier
	validate *validator.Validator
	submits  *inflight.Guard
	bus      *events.Bus
}

func NewAuthHandler(
	client *backend.Client,
	sessions *session.Store,
	resolver *UserResolver,
	carrier *token.Carrier,
	validate *validator.Validator,
	submits *inflight.Guard,
	bus *events.Bus,
	logger utils.Logger,
) *AuthHandler {
	return &AuthHandler{
		BaseHandler: NewBaseHandler(logger),
		backend:     client,
		sessions:    sessions,
		resolver:    resolver,
		carrier:     carrier,
		validate:    validate,
		submits:     submits,
		bus:         bus,
	}
}

// Login exchanges credentials for a token cookie and an authenticated
// session. A rejected login sets no cookie and surfaces the backend message,
// with the pending-activation case translated for the user.
func (h *AuthHandler) Login(c *gin.Context) {
	var req validator.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgBadPayload, Details: err.Error()})
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgBadPayload, Details: err.Error()})
		return
	}

	res, err := h.backend.Login(c.Request.Context(), req.Identifier, req.Password)
	if err != nil {
		h.LogError(c, err, "login failed upstream")
		c.JSON(http.StatusBadGateway, ErrorResponse{Message: msgNetworkError})
		return
	}

	if res.AccessToken == "" {
		msg := res.Message
		switch msg {
		case upstreamNotActive:
			msg = msgPendingActivation
		case "":
			msg = msgLoginFailed
		}
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: msg})
		return
	}

	h.carrier.Write(c.Writer, res.AccessToken)

	// seed the session eagerly so the landing page reads it from the store
	user, err := h.resolver.Resolve(c.Request.Context(), res.AccessToken)
	if err != nil {
		h.LogError(c, err, "user fetch after login failed")
	}

	if err := h.bus.Publish(events.AuthEvent{Type: events.TypeLogin, Identifier: req.Identifier}); err != nil {
		h.LogError(c, err, "publish login event")
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: gin.H{"user": user, "redirect": "/user"}})
}

// Signup validates the registration form fully before any upstream call.
func (h *AuthHandler) Signup(c *gin.Context) {
	var req validator.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msgBadPayload, Details: err.Error()})
		return
	}

	if err := h.validate.ValidateSignup(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: err.Error()})
		return
	}

	// professors have no cohort; the backend expects the placeholder
	group := req.Group
	if req.IsProfessor {
		group = "000-000"
	}

	// one in-flight registration per client; rapid double submission must
	// not issue two concurrent mutating requests
	opKey := "signup:" + req.Email
	if !h.submits.Begin(opKey, "signup") {
		c.JSON(http.StatusConflict, ErrorResponse{Message: msgSubmitInFlight})
		return
	}
	defer h.submits.End(opKey, "signup")

	msg, err := h.backend.Register(c.Request.Context(), backend.RegisterPayload{
		Name:        req.Name,
		Surname:     req.Surname,
		Group:       group,
		Email:       req.Email,
		Password:    req.Password,
		Github:      req.Github,
		IsProfessor: req.IsProfessor,
	})
	if err != nil {
		h.LogError(c, err, "registration failed upstream")
		c.JSON(http.StatusBadGateway, ErrorResponse{Message: msgNetworkError})
		return
	}

	if msg != upstreamRegistered && msg != upstreamAlreadyExists {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: msg})
		return
	}

	if err := h.bus.Publish(events.AuthEvent{Type: events.TypeSignup, Identifier: req.Email, Github: req.Github}); err != nil {
		h.LogError(c, err, "publish signup event")
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: msg, Data: gin.H{"redirect": "/"}})
}

// Logout clears the cookie and purges the session record wholesale.
func (h *AuthHandler) Logout(c *gin.Context) {
	tok, ok := h.carrier.FromRequest(c.Request)
	if ok {
		if err := h.sessions.Logout(c.Request.Context(), tok); err != nil {
			h.LogError(c, err, "session purge failed")
		}
	}
	h.carrier.Clear(c.Writer)

	if err := h.bus.Publish(events.AuthEvent{Type: events.TypeLogout}); err != nil {
		h.LogError(c, err, "publish logout event")
	}

	c.JSON(http.StatusOK, SuccessResponse{Data: gin.H{"redirect": "/"}})
}
