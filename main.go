package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"swear-jar/config"
	"swear-jar/handlers"
	"swear-jar/logger"
	"swear-jar/middleware"
	"swear-jar/services"
	"swear-jar/store"
	"swear-jar/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

func main() {
	conf, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		panic(err)
	}

	if err := logger.Init(conf.Environment); err != nil {
		panic(err)
	}
	defer zap.L().Sync()

	if conf.DatabaseURL == "" {
		if err := utils.EnsureParentDir(conf.SQLitePath); err != nil {
			zap.L().Fatal("failed to ensure data dir", zap.Error(err))
		}
	}

	st, err := store.Open(conf)
	if err != nil {
		zap.L().Fatal("failed to open store", zap.Error(err))
	}
	defer st.Close()

	gate, err := services.NewGate(conf.Gate)
	if err != nil {
		zap.L().Fatal("invalid gate window", zap.Error(err))
	}

	clock := clockwork.NewRealClock()
	progressionService := services.NewProgressionService(st, gate, services.RulesFromConfig(conf.Rules), clock)
	progressionService.DefaultAvatar = conf.DefaultAvatar
	challengeService := services.NewChallengeService(st, clock)
	boardService := services.NewBoardService(st, gate, challengeService, clock, conf.LeaderboardSize)
	eventStream := services.NewEventStream(st)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if conf.Archive.Enabled {
		startArchive(ctx, conf, st, clock)
	}

	app := fiber.New(fiber.Config{
		AppName:      "swear-jar",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 0, // SSE connections stay open
	})

	app.Use(recover.New())
	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  strings.Join(conf.AllowedOrigins, ","),
		AllowMethods:  "GET,POST,PUT,DELETE,OPTIONS,HEAD",
		AllowHeaders:  "Origin, Content-Type, Accept, X-Requested-With, X-Request-ID, Cache-Control",
		ExposeHeaders: "Content-Length, Content-Type, X-Request-ID",
		MaxAge:        86400, // 24 hours
	}))

	handlers.SetupHealthRoutes(app, st)
	handlers.SetupJarRoutes(app, progressionService, boardService, challengeService)
	handlers.SetupLegacyRoutes(app, progressionService)
	handlers.SetupEventRoutes(app, eventStream)

	go func() {
		if err := app.Listen(":" + conf.Port); err != nil {
			zap.L().Error("Server error", zap.Error(err))
			stop()
		}
	}()

	zap.L().Info("✅ Server running",
		zap.String("port", conf.Port),
		zap.String("environment", conf.Environment),
		zap.Strings("allowed_origins", conf.AllowedOrigins),
	)
	zap.L().Info("✅ Jar open", zap.Any("gate", gate.Status(clock.Now())))

	<-ctx.Done()
	zap.L().Info("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		zap.L().Warn("shutdown", zap.Error(err))
	}
}

func startArchive(ctx context.Context, conf *config.Config, st *store.Store, clock clockwork.Clock) {
	if !conf.Archive.R2Configured() {
		zap.L().Warn("⚠️  ARCHIVE_ENABLED is set but R2 credentials are incomplete, archiving disabled")
		return
	}

	r2, err := utils.NewR2Client(ctx, conf.Archive)
	if err != nil {
		zap.L().Fatal("failed to initialize R2 client", zap.Error(err))
	}

	archive := services.NewArchiveService(st, r2, clock, conf.Archive.JarName)
	if _, err := archive.StartArchiveScheduler(ctx, conf.Archive.Interval); err != nil {
		zap.L().Fatal("failed to start archive scheduler", zap.Error(err))
	}
}
