package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/unahur-dev/academico-api/internal/middleware"
	"github.com/unahur-dev/academico-api/internal/service"
	"github.com/unahur-dev/academico-api/pkg/config"
	"github.com/unahur-dev/academico-api/pkg/logger"
	corsmiddleware "github.com/unahur-dev/academico-api/pkg/middleware/cors"
	reqidmiddleware "github.com/unahur-dev/academico-api/pkg/middleware/requestid"
)

// RouterDeps bundles everything route registration needs.
type RouterDeps struct {
	Config  *config.Config
	Logger  *zap.Logger
	Redis   *redis.Client
	Tokens  *service.TokenService
	Sink    service.AuditSink
	Metrics *service.MetricsService

	Auth    *AuthHandler
	Career  *CareerHandler
	Subject *SubjectHandler
	Student *StudentHandler
	Teacher *TeacherHandler
	User    *UserHandler
	Log     *LogHandler
	Export  *ExportHandler
	Health  *HealthHandler
}

// NewRouter builds the gin engine with the full route table. Reads are open;
// subject writes and roster exports require an admin token, matching the
// original API surface.
func NewRouter(d RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(d.Logger))
	r.Use(corsmiddleware.New(d.Config.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(d.Metrics))

	detailCache := gin.HandlerFunc(func(c *gin.Context) { c.Next() })
	invalidateWrite := detailCache
	if d.Config.Cache.Enabled && d.Redis != nil {
		store := middleware.NewRedisStore(d.Redis)
		detailCache = middleware.CacheGET(store, d.Config.Cache.TTL, d.Metrics, d.Logger)
		invalidateWrite = middleware.InvalidateWrites(store, d.Logger)
	}

	requireAdmin := []gin.HandlerFunc{
		middleware.JWT(d.Tokens, d.Sink),
		middleware.RequireAdmin(d.Config.JWT.AdminID, d.Sink),
	}

	r.POST("/auth/login", d.Auth.Login)

	car := r.Group("/car")
	{
		car.GET("", d.Career.List)
		car.GET("/:id", detailCache, d.Career.Get)
		car.POST("", d.Career.Create)
		car.PUT("/:id", invalidateWrite, d.Career.Update)
		car.DELETE("/:id", invalidateWrite, d.Career.Delete)
	}

	mat := r.Group("/mat")
	{
		mat.GET("", d.Subject.List)
		mat.GET("/:id", detailCache, d.Subject.Get)
		mat.POST("", append(requireAdmin, d.Subject.Create)...)
		mat.PUT("/:id", append(requireAdmin, invalidateWrite, d.Subject.Update)...)
		mat.DELETE("/:id", append(requireAdmin, invalidateWrite, d.Subject.Delete)...)
	}

	al := r.Group("/al")
	{
		al.GET("", d.Student.List)
		if d.Config.Exports.Enabled {
			al.GET("/export", append(requireAdmin, d.Export.StudentRoster)...)
		}
		al.GET("/:id", detailCache, d.Student.Get)
		al.POST("", d.Student.Create)
		al.PUT("/:id", invalidateWrite, d.Student.Update)
		al.DELETE("/:id", invalidateWrite, d.Student.Delete)
	}

	doc := r.Group("/doc")
	{
		doc.GET("", d.Teacher.List)
		doc.GET("/:id", detailCache, d.Teacher.Get)
		doc.POST("", d.Teacher.Create)
		doc.PUT("/:id", invalidateWrite, d.Teacher.Update)
		doc.DELETE("/:id", invalidateWrite, d.Teacher.Delete)
	}

	users := r.Group("/users")
	{
		users.GET("", d.User.List)
		users.GET("/:id", d.User.Get)
		users.POST("", d.User.Create)
		users.PUT("/:id", d.User.Update)
		users.DELETE("/:id", d.User.Delete)
	}

	r.GET("/logs", d.Log.List)

	r.GET("/health", d.Health.Health)
	r.GET("/ready", d.Health.Ready)
	r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))

	if d.Config.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
