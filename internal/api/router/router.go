package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"gdms/backend/config"
	"gdms/backend/internal/api/handler"
	"gdms/backend/internal/api/middleware"
	"gdms/backend/internal/model"
	"gdms/backend/pkg/jwt"
	"gdms/backend/pkg/redis"
)

// Setup 初始化并返回 Gin 路由引擎
func Setup(cfg *config.Config, h *handler.Handler, jwtMgr *jwt.Manager, rdb *redis.Client, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// ── 全局中间件 ──
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.Server.CORS.AllowOrigins))

	// ── 健康检查 ──
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ── API v1 ──
	v1 := r.Group("/api/v1")
	{
		// 认证模块（无需认证；登录接口额外限流）
		auth := v1.Group("/auth")
		{
			auth.POST("/login", middleware.RateLimit(rdb, 30, time.Minute), h.Auth.Login)
			auth.POST("/register", h.Auth.Register)
			auth.POST("/refresh", h.Auth.Refresh)
		}

		// 需要认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(jwtMgr, rdb))
		{
			// 认证模块（需要认证）
			authorized.POST("/auth/logout", h.Auth.Logout)
			authorized.POST("/auth/change-password", h.Auth.ChangePassword)

			// 用户模块
			users := authorized.Group("/users")
			{
				users.GET("/me", h.User.GetMe)
				users.GET("", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.User.ListUsers)
				users.GET("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.User.GetUser)
				users.POST("", middleware.RoleAuth(model.RoleAdmin), h.User.CreateUser)
				users.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.User.UpdateUser)
				users.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.User.DeleteUser)
				users.POST("/:id/reset-password", middleware.RoleAuth(model.RoleAdmin), h.User.ResetPassword)
				users.POST("/batch-role", middleware.RoleAuth(model.RoleAdmin), h.User.BatchUpdateRole)
				users.POST("/batch-delete", middleware.RoleAuth(model.RoleAdmin), h.User.BatchDeleteUsers)
			}

			// 组织模块
			orgs := authorized.Group("/orgs")
			{
				orgs.GET("", h.Org.ListOrgs)
				orgs.GET("/:id", h.Org.GetOrg)
				orgs.POST("", middleware.RoleAuth(model.RoleAdmin), h.Org.CreateOrg)
				orgs.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Org.UpdateOrg)
				orgs.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Org.DeleteOrg)
				orgs.POST("/batch-delete", middleware.RoleAuth(model.RoleAdmin), h.Org.BatchDeleteOrgs)
			}

			// 菜单模块
			menus := authorized.Group("/menus")
			{
				menus.GET("/mine", h.Menu.GetMyMenus)
				menus.GET("", middleware.RoleAuth(model.RoleAdmin), h.Menu.ListMenusByRole)
				menus.POST("", middleware.RoleAuth(model.RoleAdmin), h.Menu.CreateMenu)
				menus.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Menu.UpdateMenu)
				menus.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Menu.DeleteMenu)
				menus.POST("/reorder", middleware.RoleAuth(model.RoleAdmin), h.Menu.ReorderMenus)
			}

			// 课题模块
			topics := authorized.Group("/topics")
			{
				topics.GET("", h.Topic.ListTopics)
				topics.GET("/mine", middleware.RoleAuth(model.RoleTeacher), h.Topic.ListMyTopics)
				topics.GET("/students", middleware.RoleAuth(model.RoleTeacher), h.Topic.ListMyStudents)
				topics.GET("/:id", h.Topic.GetTopic)
				topics.POST("", middleware.RoleAuth(model.RoleTeacher), h.Topic.CreateTopic)
				topics.PUT("/:id", middleware.RoleAuth(model.RoleTeacher, model.RoleAdmin), h.Topic.UpdateTopic)
				topics.DELETE("/:id", middleware.RoleAuth(model.RoleTeacher, model.RoleAdmin), h.Topic.DeleteTopic)
				topics.POST("/:id/submit", middleware.RoleAuth(model.RoleTeacher), h.Topic.SubmitTopic)
				topics.POST("/:id/approve", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Topic.ApproveTopic)
				topics.GET("/:id/approvals", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff, model.RoleTeacher), h.Topic.ListApprovals)
				topics.GET("/:id/selections", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff, model.RoleTeacher), h.Topic.ListTopicSelections)
			}

			// 选题模块
			selections := authorized.Group("/selections")
			{
				selections.POST("", middleware.RoleAuth(model.RoleStudent), h.Topic.SelectTopic)
				selections.GET("/mine", middleware.RoleAuth(model.RoleStudent), h.Topic.GetMySelection)
				selections.POST("/:id/lock", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Topic.LockSelection)
				selections.POST("/:id/cancel", h.Topic.CancelSelection) // 学生本人或管理员（Service 层鉴权）
				selections.GET("/student/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff, model.RoleTeacher), h.Topic.ListStudentSelections)
			}

			// 阶段模块
			stages := authorized.Group("/stages")
			{
				stages.GET("", h.Stage.ListStages)
				stages.POST("", middleware.RoleAuth(model.RoleAdmin), h.Stage.CreateStage)
				stages.PUT("/:id", middleware.RoleAuth(model.RoleAdmin), h.Stage.UpdateStage)
				stages.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin), h.Stage.DeleteStage)
				stages.GET("/progress", middleware.RoleAuth(model.RoleStudent), h.Stage.GetMyProgress)
				stages.POST("/tasks", middleware.RoleAuth(model.RoleStudent), h.Stage.SubmitTask)
				stages.GET("/tasks/mine", middleware.RoleAuth(model.RoleStudent), h.Stage.ListMyTasks)
				stages.GET("/tasks/:id", middleware.RoleAuth(model.RoleTeacher, model.RoleAdmin, model.RoleStaff), h.Stage.GetTask)
				stages.POST("/tasks/:id/review", middleware.RoleAuth(model.RoleTeacher, model.RoleAdmin), h.Stage.ReviewTask)
				stages.GET("/tasks/:id/reviews", h.Stage.ListTaskReviews)
			}

			// 答辩模块
			defense := authorized.Group("/defense")
			{
				groups := defense.Group("/groups")
				{
					groups.GET("", h.Defense.ListGroups)
					groups.GET("/mine", middleware.RoleAuth(model.RoleStudent), h.Defense.GetMyGroup)
					groups.GET("/:id", h.Defense.GetGroup)
					groups.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Defense.CreateGroup)
					groups.PUT("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Defense.UpdateGroup)
					groups.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Defense.DeleteGroup)
					groups.POST("/auto-assign", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Defense.AutoAssign)
					groups.GET("/:id/members", h.Defense.ListMembers)
					groups.GET("/:id/detail", h.Defense.GetGroupDetail)
					groups.POST("/:id/members", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Defense.AddMember)
					groups.POST("/:id/scores", middleware.RoleAuth(model.RoleTeacher, model.RoleAdmin), h.Defense.RecordScore)
					groups.GET("/:id/scores", middleware.RoleAuth(model.RoleTeacher, model.RoleAdmin, model.RoleStaff), h.Defense.ListGroupScores)
				}

				defense.DELETE("/members/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Defense.RemoveMember)

				reviews := defense.Group("/reviews")
				{
					reviews.GET("", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Defense.ListReviews)
					reviews.GET("/mine", middleware.RoleAuth(model.RoleTeacher), h.Defense.ListMyReviews)
					reviews.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Defense.AssignReview)
					reviews.POST("/auto-cross", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Defense.AutoCrossReview)
					reviews.POST("/:id/complete", middleware.RoleAuth(model.RoleTeacher, model.RoleAdmin), h.Defense.CompleteReview)
				}

				defense.GET("/grades/summary", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Defense.GradeSummary)
				defense.GET("/grades/mine", middleware.RoleAuth(model.RoleStudent), h.Defense.GetMyGrades)
			}

			// 公告模块
			announcements := authorized.Group("/announcements")
			{
				announcements.GET("/published", h.Announcement.ListPublished)
				announcements.GET("/stats", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Announcement.Stats)
				announcements.GET("", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Announcement.ListAnnouncements)
				announcements.GET("/:id", h.Announcement.GetAnnouncement)
				announcements.POST("", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Announcement.CreateAnnouncement)
				announcements.PUT("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Announcement.UpdateAnnouncement)
				announcements.DELETE("/:id", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Announcement.DeleteAnnouncement)
				announcements.POST("/:id/publish", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Announcement.PublishAnnouncement)
				announcements.POST("/batch-publish", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Announcement.BatchPublish)
				announcements.POST("/batch-delete", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Announcement.BatchDelete)
				announcements.POST("/:id/read", h.Announcement.MarkRead)
				announcements.GET("/:id/read-stats", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Announcement.ReadStats)
			}

			// 申请模块
			applications := authorized.Group("/applications")
			{
				applications.GET("", h.Application.ListApplications)
				applications.GET("/:id", h.Application.GetApplication)
				applications.POST("", middleware.RoleAuth(model.RoleStudent), h.Application.CreateApplication)
				applications.POST("/:id/review", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff, model.RoleTeacher), h.Application.ReviewApplication)
				applications.POST("/:id/withdraw", middleware.RoleAuth(model.RoleStudent), h.Application.WithdrawApplication)
				applications.POST("/:id/resubmit", middleware.RoleAuth(model.RoleStudent), h.Application.ResubmitApplication)
			}

			// 导出模块
			export := authorized.Group("/export")
			{
				export.GET("/grades", middleware.RoleAuth(model.RoleAdmin, model.RoleStaff), h.Export.ExportGrades)
				export.GET("/defense-calendar", h.Export.ExportDefenseCalendar)
			}
		}
	}

	return r
}
