package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/unahur-dev/academico-api/api/swagger"
	"github.com/unahur-dev/academico-api/internal/handler"
	"github.com/unahur-dev/academico-api/internal/repository"
	"github.com/unahur-dev/academico-api/internal/service"
	"github.com/unahur-dev/academico-api/pkg/auditlog"
	"github.com/unahur-dev/academico-api/pkg/cache"
	"github.com/unahur-dev/academico-api/pkg/config"
	"github.com/unahur-dev/academico-api/pkg/database"
	"github.com/unahur-dev/academico-api/pkg/logger"
)

// @title Academico API
// @version 1.0.0
// @description Academic records API: careers, subjects, students, teachers and users
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("database connection failed", zap.Error(err))
	}
	defer db.Close() //nolint:errcheck

	sink := auditlog.NewSink(cfg.Audit.FilePath, logr)
	defer sink.Close()

	validate := validator.New()

	careerRepo := repository.NewCareerRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	studentRepo := repository.NewStudentRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	userRepo := repository.NewUserRepository(db)

	tokens := service.NewTokenService(cfg.JWT)
	metrics := service.NewMetricsService()

	authSvc := service.NewAuthService(userRepo, tokens, validate, logr, sink)
	careerSvc := service.NewCareerService(careerRepo, validate, logr, sink)
	subjectSvc := service.NewSubjectService(subjectRepo, validate, logr, sink)
	studentSvc := service.NewStudentService(studentRepo, validate, logr, sink)
	teacherSvc := service.NewTeacherService(teacherRepo, validate, logr, sink)
	userSvc := service.NewUserService(userRepo, validate, logr, sink)
	logSvc := service.NewLogService(sink, logr)
	exportSvc := service.NewExportService(studentRepo, logr, sink)

	deps := handler.RouterDeps{
		Config:  cfg,
		Logger:  logr,
		Tokens:  tokens,
		Sink:    sink,
		Metrics: metrics,

		Auth:    handler.NewAuthHandler(authSvc),
		Career:  handler.NewCareerHandler(careerSvc),
		Subject: handler.NewSubjectHandler(subjectSvc),
		Student: handler.NewStudentHandler(studentSvc),
		Teacher: handler.NewTeacherHandler(teacherSvc),
		User:    handler.NewUserHandler(userSvc),
		Log:     handler.NewLogHandler(logSvc),
		Export:  handler.NewExportHandler(exportSvc),
		Health:  handler.NewHealthHandler(db),
	}

	if cfg.Cache.Enabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, response cache disabled", zap.Error(err))
		} else {
			defer client.Close() //nolint:errcheck
			deps.Redis = client
		}
	}

	r := handler.NewRouter(deps)

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Info("server starting", zap.String("addr", addr), zap.String("env", cfg.Env))
	if err := r.Run(addr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}
