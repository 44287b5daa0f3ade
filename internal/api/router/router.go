package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cellhub/backend/config"
	"cellhub/backend/internal/api/handler"
	"cellhub/backend/internal/api/middleware"
	"cellhub/backend/pkg/jwt"
	"cellhub/backend/pkg/redis"
)

const maxBodyBytes = 1 << 20 // 1 MiB

// Setup builds the Gin engine with all routes and middleware.
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.BodyLimit(maxBodyBytes))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// auth endpoints that do not require a token
		auth := v1.Group("/auth")
		auth.Use(middleware.RateLimit(rdb, 10, time.Minute))
		{
			auth.POST("/login", h.Auth.Login)
			auth.POST("/refresh", h.Auth.RefreshToken)
		}

		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PUT("/auth/password", h.Auth.ChangePassword)

			users := authorized.Group("/users")
			{
				users.GET("", h.User.ListUsers) // scoped to own ministry for non-admins
				users.GET("/:id", h.User.GetUser)
				users.POST("", middleware.RoleAuth("admin"), h.User.CreateUser)
				users.PUT("/:id", h.User.UpdateUser) // admin or self, checked in the service
				users.PUT("/:id/role", middleware.RoleAuth("admin"), h.User.AssignRole)
				users.DELETE("/:id", middleware.RoleAuth("admin"), h.User.DeleteUser)
			}

			ministries := authorized.Group("/ministries")
			{
				ministries.GET("", h.Ministry.ListMinistries)
				ministries.GET("/:id", h.Ministry.GetMinistry)
				ministries.POST("", middleware.RoleAuth("admin"), h.Ministry.CreateMinistry)
				ministries.PUT("/:id", middleware.RoleAuth("admin"), h.Ministry.UpdateMinistry)
				ministries.DELETE("/:id", middleware.RoleAuth("admin"), h.Ministry.DeleteMinistry)
				ministries.GET("/:id/groups", h.Group.ListMinistryGroups)
			}

			groups := authorized.Group("/groups")
			{
				groups.GET("", h.Group.ListGroups)
				groups.GET("/:id", h.Group.GetGroup)
				groups.POST("", middleware.RoleAuth("admin", "master"), h.Group.CreateGroup)
				groups.PUT("/:id", h.Group.UpdateGroup)
				groups.PUT("/:id/schedule", h.Group.SetSchedule)
				groups.DELETE("/:id", middleware.RoleAuth("admin", "master"), h.Group.DeleteGroup)

				groups.POST("/:id/meetings", h.Meeting.CreateMeeting)
				groups.GET("/:id/meetings", h.Meeting.ListMeetings)

				groups.POST("/:id/ledger", h.Ledger.CreateEntry)
				groups.GET("/:id/ledger", h.Ledger.ListEntries)
				groups.GET("/:id/ledger/report", h.Ledger.GetReport)
				groups.DELETE("/:id/ledger/:entry_id", h.Ledger.DeleteEntry)

				groups.GET("/:id/calendar.ics", h.Calendar.GroupCalendar)
			}

			export := authorized.Group("/export")
			{
				export.GET("/groups/:id/attendance", h.Export.ExportAttendance)
				export.GET("/groups/:id/ledger", h.Export.ExportLedger)
			}

			meetings := authorized.Group("/meetings")
			{
				meetings.POST("/generate", middleware.RoleAuth("admin"), h.Generation.TriggerGeneration)
				meetings.GET("/:id", h.Meeting.GetMeeting)
				meetings.PUT("/:id/status", h.Meeting.UpdateStatus)
				meetings.DELETE("/:id", h.Meeting.DeleteMeeting)
				meetings.PUT("/:id/attendances", h.Meeting.SetAttendances)
				meetings.GET("/:id/attendances", h.Meeting.ListAttendances)
			}

			events := authorized.Group("/events")
			{
				events.GET("", h.Event.ListEvents)
				events.POST("", h.Event.CreateEvent)
				events.PUT("/:id", h.Event.UpdateEvent)
				events.DELETE("/:id", h.Event.DeleteEvent)
			}

			authorized.GET("/activity", middleware.RoleAuth("admin", "master"), h.Activity.ListActivity)
		}
	}

	return r
}
