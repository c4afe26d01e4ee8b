package main

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"

	"redheart/internal/backend"
	"redheart/internal/config"
	"redheart/internal/events"
	"redheart/internal/http/handlers"
	applog "redheart/internal/log"
	"redheart/internal/repos"
	"redheart/internal/services"
	"redheart/internal/storage"
	"redheart/internal/validate"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		applog.L().Fatal("config.load.fail", zap.Error(err))
	}

	// Optional file logging
	applog.SetLevel(cfg.LogLevel)
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			applog.L().Warn("log.file.open.fail", zap.String("file", cfg.LogFile), zap.Error(err))
		} else {
			defer f.Close()
			applog.SetOutput(io.MultiWriter(os.Stdout, f))
		}
	}
	defer applog.Sync()
	lg := applog.L()

	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		lg.Fatal("db.open.fail", zap.Error(err))
	}
	defer db.Close()
	if cfg.AdminEmail != "" && !validate.Password(cfg.AdminPassword) {
		lg.Warn("seed.admin.weak_password", zap.String("email", cfg.AdminEmail))
	}
	if err := repos.SeedAdmin(db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		lg.Fatal("seed.admin.fail", zap.Error(err))
	}

	// Auth wiring
	authSvc := services.NewAuthService(repos.NewUserRepo(db))

	api := backend.New(cfg.Backend.URL, cfg.Backend.Token, cfg.Backend.Timeout)

	// Object storage: S3 when a bucket is set, local media dir otherwise
	mediaDir := cfg.MediaDir
	if !filepath.IsAbs(mediaDir) {
		if abs, err := filepath.Abs(mediaDir); err == nil {
			mediaDir = abs
		}
	}
	var store storage.ObjectStore
	if cfg.Storage.Bucket != "" {
		s3Store, err := storage.NewS3Store(context.Background(), cfg.Storage)
		if err != nil {
			lg.Fatal("storage.s3.init.fail", zap.Error(err))
		}
		store = s3Store
		lg.Info("storage.s3", zap.String("bucket", cfg.Storage.Bucket), zap.String("region", cfg.Storage.Region))
	} else {
		store = &storage.DiskStore{Dir: mediaDir, BaseURL: "/media"}
		lg.Info("storage.disk", zap.String("dir", mediaDir))
	}

	// Audit events
	var pub events.Publisher = events.Nop{}
	if brokers := cfg.Kafka.BrokerList(); len(brokers) > 0 {
		pub = events.NewKafkaPublisher(brokers, cfg.Kafka.Topic, lg)
		lg.Info("events.kafka", zap.Strings("brokers", brokers), zap.String("topic", cfg.Kafka.Topic))
	}
	defer pub.Close()

	deps, err := handlers.NewDeps(cfg, db, api, store, storage.NewProgressTracker(2*time.Minute), pub, authSvc)
	if err != nil {
		lg.Fatal("deps.init.fail", zap.Error(err))
	}

	// Templates & app
	engine := handlers.NewViews(cfg.TemplatesDir)
	engine.Reload(true)

	app := fiber.New(fiber.Config{
		Views:        engine,
		ErrorHandler: handlers.ErrorHandler,
		// Larger than the 10MB image limit so oversized images reach validation
		BodyLimit: cfg.MaxUploadBytes,
	})

	// ---------- Middlewares ----------
	app.Use(requestid.New())
	app.Use(logger.New())
	app.Use(helmet.New())
	app.Use(handlers.GlobalLimiter())
	app.Use(csrf.New(csrf.Config{
		KeyLookup:      "form:csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		CookieSecure:   cfg.CookieSecure,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			applog.Security(c, "csrf.fail", nil)
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Security check failed. Please refresh and try again."}, "layouts/main")
		},
	}))
	app.Use(func(c *fiber.Ctx) error {
		if tok := c.Locals("csrf"); tok != nil {
			c.Locals("CSRFToken", tok.(string))
		}
		return c.Next()
	})

	// ---------- Static assets ----------
	lg.Info("static", zap.String("static_dir", cfg.StaticDir), zap.String("media_dir", mediaDir))
	app.Static("/static", cfg.StaticDir)
	// Guarded media to avoid traversal
	app.Get("/media/*", handlers.Media(mediaDir))

	// ---------- App routes ----------
	handlers.Mount(app, deps.Routes(handlers.LoginLimiter()), handlers.RequireSession(authSvc))

	// Health & 404
	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"ok": true}) })
	app.Use(handlers.NotFound)

	go func() {
		lg.Info("server.start", zap.String("port", cfg.Port))
		if err := app.Listen(":" + cfg.Port); err != nil {
			lg.Fatal("server.listen.fail", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lg.Info("server.shutdown")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		lg.Error("server.shutdown.fail", zap.Error(err))
	}
}
