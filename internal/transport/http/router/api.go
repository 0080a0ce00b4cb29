package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"go-socialnet/internal/core/auth"
	"go-socialnet/internal/core/config"
	"go-socialnet/internal/core/server"
	"go-socialnet/internal/domain"
	"go-socialnet/internal/transport/http/handler"
	mdw "go-socialnet/internal/transport/http/middleware"
)

// NewAPIEngine wires the /api/v1 routes. Reads are public. Writes need an
// admin token and run one at a time.
func NewAPIEngine(l *zap.Logger, h *handler.Social, jwter *auth.JWTer, hc config.HTTP) *gin.Engine {
	r := server.NewRouter(l)
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(rateLimit(hc), max(1, hc.RateLimitBurst)),
		mdw.MaxBodyBytes(max(1, hc.MaxBodyMB)<<20),
		mdw.Timeout(requestTimeout(hc)),
		mdw.Metrics(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	mountReads(New(api), h)

	writes := api.Group("")
	writes.Use(
		mdw.RateLimitPerIP(rateLimit(hc), max(1, hc.RateLimitBurst)),
		mdw.AuthJWT(jwter, auth.RoleAdmin),
		mdw.ConcurrencyLimit(1),
	)
	mountWrites(New(writes), h)

	return r
}

// rateLimit treats a non-positive rps as unlimited.
func rateLimit(hc config.HTTP) rate.Limit {
	if hc.RateLimitRPS <= 0 {
		return rate.Inf
	}
	return rate.Limit(hc.RateLimitRPS)
}

func requestTimeout(hc config.HTTP) time.Duration {
	if hc.WriteTimeoutSec <= 0 {
		return 10 * time.Second
	}
	return time.Duration(hc.WriteTimeoutSec) * time.Second
}

func mountReads(ez EZ, h *handler.Social) {
	RegisterAction(ez, Action[struct{}, *domain.User]{
		Method: http.MethodGet, Path: "/users/:id", Binder: BindNone, Handler: h.SearchUser,
	})
	RegisterAction(ez, Action[struct{}, *domain.Status]{
		Method: http.MethodGet, Path: "/statuses/:id", Binder: BindNone, Handler: h.SearchStatus,
	})
}

func mountWrites(ez EZ, h *handler.Social) {
	admin := []string{auth.RoleAdmin}

	RegisterAction(ez, Action[handler.UserIn, handler.Ack]{
		Method: http.MethodPost, Path: "/users", Binder: BindJSON, Roles: admin, Handler: h.AddUser,
	})
	RegisterAction(ez, Action[handler.UserIn, handler.Ack]{
		Method: http.MethodPut, Path: "/users/:id", Binder: BindJSON, Roles: admin, Handler: h.UpdateUser,
	})
	RegisterAction(ez, Action[struct{}, handler.Ack]{
		Method: http.MethodDelete, Path: "/users/:id", Binder: BindNone, Roles: admin, Handler: h.DeleteUser,
	})
	RegisterAction(ez, Action[struct{}, handler.LoadOut]{
		Method: http.MethodPost, Path: "/users/load", Binder: BindForm, Roles: admin, Handler: h.LoadUsers,
	})

	RegisterAction(ez, Action[handler.StatusIn, handler.Ack]{
		Method: http.MethodPost, Path: "/statuses", Binder: BindJSON, Roles: admin, Handler: h.AddStatus,
	})
	RegisterAction(ez, Action[handler.StatusIn, handler.Ack]{
		Method: http.MethodPut, Path: "/statuses/:id", Binder: BindJSON, Roles: admin, Handler: h.UpdateStatus,
	})
	RegisterAction(ez, Action[struct{}, handler.Ack]{
		Method: http.MethodDelete, Path: "/statuses/:id", Binder: BindNone, Roles: admin, Handler: h.DeleteStatus,
	})
	RegisterAction(ez, Action[struct{}, handler.LoadOut]{
		Method: http.MethodPost, Path: "/statuses/load", Binder: BindForm, Roles: admin, Handler: h.LoadStatusUpdates,
	})
}
