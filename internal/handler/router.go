package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/noah-isme/erolls-portal/internal/middleware"
	"github.com/noah-isme/erolls-portal/internal/models"
	"github.com/noah-isme/erolls-portal/pkg/middleware/requestid"
	"github.com/noah-isme/erolls-portal/pkg/upstream"
)

// Routes bundles the handlers and guards mounted under /api/v1.
type Routes struct {
	Auth       *AuthHandler
	Migrations *MigrationHandler
	Dashboards *DashboardHandler
	Electors   *ElectorHandler
	Registry   *RegistryHandler
	Journal    *JournalHandler
	Metrics    *MetricsHandler

	Tokens  middleware.TokenValidator
	Limiter *middleware.ActionLimiter
}

// Register mounts the portal API on the engine.
func Register(r *gin.Engine, routes Routes) {
	if routes.Metrics != nil {
		r.GET("/health", routes.Metrics.Health)
		r.GET("/ready", routes.Metrics.Ready)
		r.GET("/metrics", routes.Metrics.Prometheus)
	}

	api := r.Group("/api/v1")
	api.Use(middleware.WithResponseMeta(), forwardRequestID)

	throttle := func(c *gin.Context) { c.Next() }
	if routes.Limiter != nil {
		throttle = routes.Limiter.Middleware()
	}

	api.POST("/auth/login", throttle, routes.Auth.Login)

	secured := api.Group("")
	secured.Use(middleware.JWT(routes.Tokens))

	secured.POST("/auth/logout", routes.Auth.Logout)
	secured.GET("/auth/me", routes.Auth.Me)
	secured.GET("/user/menu", routes.Auth.Menu)

	canView := middleware.RequireCapability("view", func(c models.Capabilities) bool { return c.CanView })
	canApprove := middleware.RequireCapability("approve", func(c models.Capabilities) bool { return c.CanApprove })
	canReject := middleware.RequireCapability("reject", func(c models.Capabilities) bool { return c.CanReject })

	workflow := secured.Group("/migrations/workflow")
	workflow.GET("", canView, routes.Migrations.List)
	workflow.POST("/:id/approve", canApprove, throttle, routes.Migrations.Approve)
	workflow.POST("/:id/reject", canReject, throttle, routes.Migrations.Reject)

	national := middleware.RequireRoles(models.RoleCEC, models.RoleEC)
	oversight := middleware.RequireRoles(models.RoleCEC, models.RoleEC, models.RoleCEO, models.RoleDEO, models.RoleRO)
	field := middleware.RequireRoles(models.RoleDEO, models.RoleRO)

	dashboards := secured.Group("/dashboard")
	dashboards.GET("/national", national, routes.Dashboards.National)
	dashboards.GET("/state", middleware.RequireRoles(models.RoleCEO, models.RoleDEO, models.RoleRO), routes.Dashboards.State)
	dashboards.GET("/ero", field, routes.Dashboards.ERO)

	applications := secured.Group("/applications", field)
	applications.POST("/:id/verify", throttle, routes.Dashboards.VerifyApplication)
	applications.POST("/:id/reject", throttle, routes.Dashboards.RejectApplication)

	secured.GET("/electors/search", routes.Electors.Search)
	secured.GET("/citizen/profile", middleware.RequireRoles(models.RoleCitizen), routes.Electors.CitizenProfile)

	blo := secured.Group("/blo", middleware.RequireRoles(models.RoleBLO))
	blo.POST("/electors", throttle, routes.Electors.SubmitEntry)
	blo.POST("/documents/upload", throttle, routes.Electors.UploadDocument)

	secured.GET("/polling-stations", oversight, routes.Registry.PollingStations)
	secured.GET("/polling-stations/export", oversight, routes.Registry.ExportPollingStations)
	secured.GET("/audit/logs", oversight, routes.Registry.AuditLogs)
	secured.GET("/audit/logs/export", oversight, routes.Registry.ExportAuditLogs)
	secured.GET("/analysis/scores", middleware.RequireRoles(models.RoleCEC, models.RoleEC, models.RoleCEO), routes.Registry.Scores)

	secured.GET("/journal", national, routes.Journal.List)
	if routes.Metrics != nil {
		secured.GET("/system/metrics", national, routes.Metrics.System)
	}
}

func forwardRequestID(c *gin.Context) {
	if id := requestid.Value(c); id != "" {
		c.Request = c.Request.WithContext(upstream.WithRequestID(c.Request.Context(), id))
	}
	c.Next()
}
