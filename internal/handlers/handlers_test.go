package handlers

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mp-classroom/classroom-gateway/internal/backend"
	"github.com/mp-classroom/classroom-gateway/internal/events"
	"github.com/mp-classroom/classroom-gateway/internal/session"
	"github.com/mp-classroom/classroom-gateway/internal/token"
	"github.com/mp-classroom/classroom-gateway/internal/utils"
	"github.com/mp-classroom/classroom-gateway/internal/validator"
)

type testEnv struct {
	router   *gin.Engine
	sessions *session.Store
	upstream *httptest.Server
}

// newTestEnv wires the full handler stack against a fake classroom backend.
func newTestEnv(t *testing.T, upstream http.Handler) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { redisClient.Close() })
	sessions := session.NewStore(redisClient, time.Hour)

	logger := utils.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	carrier := token.NewCarrier("accessToken", 3600, false)
	bus := events.NewBus(slog.New(slog.NewTextHandler(io.Discard, nil)))
	t.Cleanup(func() { bus.Close() })

	hm := NewHandlerManager(backend.NewClient(srv.URL), sessions, carrier, validator.New(), bus, logger)

	router := gin.New()
	hm.SetupRoutes(router)

	return &testEnv{router: router, sessions: sessions, upstream: srv}
}

func cookieByName(cookies []*http.Cookie, name string) *http.Cookie {
	for _, ck := range cookies {
		if ck.Name == name {
			return ck
		}
	}
	return nil
}
