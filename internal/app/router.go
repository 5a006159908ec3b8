package app

import (
	"authoring_console_backend/docs"
	"authoring_console_backend/internal/config"
	"authoring_console_backend/internal/middleware"
	"authoring_console_backend/internal/util"
	"authoring_console_backend/pkg/monitoring"
	"authoring_console_backend/pkg/security"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	router.GET("/api/health", c.health.HealthCheck)

	// 2. 教师授权接口
	teacher := router.Group("/api/teacher")
	teacher.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(util.RoleTeacher))
	{
		banks := teacher.Group("/banks")
		{
			banks.POST("", c.bank.Create)
			banks.GET("", c.bank.List)
			banks.GET("/:bankId", c.bank.Get)
			banks.PUT("/:bankId", c.bank.Update)
			banks.DELETE("/:bankId", c.bank.Delete)
			banks.GET("/:bankId/questions", c.question.List)
			banks.POST("/:bankId/questions/import", c.importExport.ImportQuestions)
			banks.GET("/:bankId/questions/export", c.importExport.ExportQuestions)
		}

		questions := teacher.Group("/questions")
		{
			questions.POST("", c.question.Create)
			questions.GET("/:id", c.question.Get)
			questions.PUT("/:id", c.question.Update)
			questions.DELETE("/:id", c.question.Delete)
		}
		teacher.POST("/question-drafts", c.question.Draft)

		assessments := teacher.Group("/assessments")
		{
			assessments.POST("", c.assessment.Create)
			assessments.GET("", c.assessment.List)
			assessments.GET("/:id", c.assessment.Get)
			assessments.PUT("/:id", c.assessment.Update)
			assessments.POST("/:id/duplicate", c.assessment.Duplicate)
			assessments.POST("/:id/publish", c.assessment.Publish)
			assessments.POST("/:id/archive", c.assessment.Archive)
		}

		rubrics := teacher.Group("/rubrics")
		{
			rubrics.POST("", c.rubric.Create)
			rubrics.GET("", c.rubric.List)
			rubrics.GET("/:id", c.rubric.Get)
			rubrics.PUT("/:id", c.rubric.Update)
			rubrics.DELETE("/:id", c.rubric.Delete)
		}

		imports := teacher.Group("/imports")
		{
			imports.POST("/assessments", c.importExport.ImportAssessments)
			imports.GET("/last", c.importExport.LastImportReport)
		}
		teacher.GET("/exports/assessments", c.importExport.ExportAssessments)
		teacher.GET("/exports/artifacts/*name", c.importExport.DownloadArtifact)
	}

	// 3. 管理员接口，凭引导密钥访问
	admin := router.Group("/api/admin")
	admin.Use(security.AdminKeyMiddleware(cfg.Admin.APIKeyHash))
	{
		admin.GET("/assessments", c.assessment.List)
		admin.DELETE("/banks/:bankId", c.bank.Delete)
	}
}
