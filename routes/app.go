package routes

import (
	"context"
	"fmt"

	"vitalimes-backend/config"
	"vitalimes-backend/controllers"
	"vitalimes-backend/libs"
	"vitalimes-backend/middleware"
	"vitalimes-backend/repositories"
	"vitalimes-backend/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// NewApp connects the backing services and returns the HTTP engine with a
// cleanup func that releases them.
func NewApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*gin.Engine, func(), error) {
	pool, err := config.ConnectDB(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}
	if err := config.RunMigrations(cfg, log); err != nil {
		pool.Close()
		return nil, nil, err
	}

	rdb := config.ConnectRedis(ctx, cfg, log)
	cleanup := func() {
		if rdb != nil {
			rdb.Close()
		}
		pool.Close()
	}

	media, err := newMediaStore(cfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}

	upload := services.DefaultUploadConfig()
	upload.MaxFileSize = cfg.MaxUploadSize

	service := services.NewProductService(
		services.NewPGCatalog(repositories.NewProductRepository(pool)),
		repositories.NewProductCache(rdb, cfg.CacheTTL, log),
		services.NewOrphanReaper(media, log),
		newNotifier(cfg, repositories.NewAdminRepository(pool), log),
		services.ServiceConfig{Upload: upload, AtomicWrites: cfg.AtomicWrites},
		log,
	)
	intake := services.NewUploadIntake(media, upload, log)

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxMultipartMemory
	router.Use(gin.Recovery(), middleware.RequestLogger(log), middleware.CORSMiddleware(cfg.CORSOrigins))

	opts := Options{JWTSecret: cfg.JWTSecret}
	if cfg.MediaDriver != "cloudinary" {
		opts.UploadDir = cfg.UploadDir
	}
	SetupRoutes(router, controllers.NewProductController(service, intake, log), opts)

	return router, cleanup, nil
}

func newMediaStore(cfg *config.Config) (libs.MediaStore, error) {
	switch cfg.MediaDriver {
	case "cloudinary":
		return libs.NewCloudinaryMediaStore(libs.CloudinaryConfig{
			URL:        cfg.CloudinaryURL,
			CloudName:  cfg.CloudinaryName,
			APIKey:     cfg.CloudinaryKey,
			APISecret:  cfg.CloudinarySecret,
			Folder:     cfg.CloudinaryFolder,
			VideoField: services.DefaultUploadConfig().VideoField,
		})
	case "local", "":
		return libs.NewLocalMediaStore(cfg.UploadDir)
	default:
		return nil, fmt.Errorf("unknown MEDIA_DRIVER %q", cfg.MediaDriver)
	}
}

func newNotifier(cfg *config.Config, admins *repositories.AdminRepository, log *zap.Logger) services.Notifier {
	mailer, err := libs.NewMailer(libs.SMTPConfig{
		Host: cfg.SMTPHost,
		Port: cfg.SMTPPort,
		User: cfg.SMTPUser,
		Pass: cfg.SMTPPass,
		From: cfg.SMTPFrom,
	})
	if err != nil {
		log.Info("product notifications logged only", zap.String("reason", err.Error()))
		return services.NewLogNotifier(log)
	}
	return services.NewEmailNotifier(mailer, admins, cfg.AdminEmails, cfg.FrontendURL, log)
}
