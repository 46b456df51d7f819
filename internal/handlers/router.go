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

type HandlerManager struct {
	authHandler   *AuthHandler
	userHandler   *UserHandler
	taskHandler   *TaskHandler
	testHandler   *TestHandler
	reportHandler *ReportHandler
	adminHandler  *AdminHandler
	routeGuard    *RouteGuard
}

func NewHandlerManager(
	client *backend.Client,
	sessions *session.Store,
	carrier *token.Carrier,
	validate *validator.Validator,
	bus *events.Bus,
	logger utils.Logger,
) *HandlerManager {
	resolver := NewUserResolver(sessions, client, logger)
	submits := inflight.NewGuard()

	return &HandlerManager{
		authHandler:   NewAuthHandler(client, sessions, resolver, carrier, validate, submits, bus, logger),
		userHandler:   NewUserHandler(client, sessions, resolver, carrier, validate, submits, logger),
		taskHandler:   NewTaskHandler(client, resolver, carrier, validate, submits, logger),
		testHandler:   NewTestHandler(client, resolver, carrier, validate, submits, logger),
		reportHandler: NewReportHandler(client, resolver, carrier, logger),
		adminHandler:  NewAdminHandler(client, resolver, carrier, bus, logger),
		routeGuard:    NewRouteGuard(carrier),
	}
}

// SetupRoutes installs the route guard and all page-controller endpoints.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.Use(hm.routeGuard.Middleware())

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.POST("/login", hm.authHandler.Login)
		api.POST("/signup", hm.authHandler.Signup)
		api.POST("/logout", hm.authHandler.Logout)

		api.GET("/session", hm.userHandler.Session)
		api.GET("/navigation", hm.userHandler.Navigation)
		api.POST("/profile", hm.userHandler.UpdateProfile)

		api.GET("/tasks", hm.taskHandler.List)
		api.POST("/tasks", hm.taskHandler.Add)
		api.POST("/tasks/:id", hm.taskHandler.Update)
		api.DELETE("/tasks/:id", hm.taskHandler.Delete)
		api.POST("/tasks/:id/check", hm.taskHandler.ToggleCheck)
		api.GET("/tasks/:id/run", hm.testHandler.StudentRun)

		api.GET("/tests", hm.testHandler.List)
		api.POST("/tests", hm.testHandler.Upload)
		api.GET("/tests/:id/run", hm.testHandler.Run)
		api.GET("/participants", hm.testHandler.Participants)
		api.POST("/validate-html", hm.testHandler.ValidateHTML)

		api.GET("/anomalies", hm.reportHandler.Anomalies)
		api.GET("/copies", hm.reportHandler.Copies)
		api.GET("/reports/export", hm.reportHandler.Export)

		admin := api.Group("/admin")
		{
			admin.GET("/unapproved", hm.adminHandler.Unapproved)
			admin.POST("/approve/:id", hm.adminHandler.Approve)
		}
	}
}
