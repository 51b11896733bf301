package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	nats "github.com/nats-io/nats.go"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/example/audio-service/config"
	httpadapter "github.com/example/audio-service/internal/adapters/http"
	apiv1 "github.com/example/audio-service/internal/adapters/http/api/v1"
	handlers "github.com/example/audio-service/internal/adapters/http/api/v1/handlers"
	authmw "github.com/example/audio-service/internal/adapters/http/middleware"
	natsadapter "github.com/example/audio-service/internal/adapters/nats"
	repo "github.com/example/audio-service/internal/adapters/postgres"
	"github.com/example/audio-service/internal/adapters/storage"
	"github.com/example/audio-service/internal/adapters/yandex"
	"github.com/example/audio-service/internal/domain"
	"github.com/example/audio-service/internal/usecase"
	pkglog "github.com/example/audio-service/pkg/log"
)

type App struct {
	cfg      *config.Config
	logger   pkglog.Logger
	db       *gorm.DB
	natsConn *nats.Conn
	echo     *echo.Echo
}

func New(ctx context.Context) (*App, error) {
	cfg := config.MustLoad()
	logger := pkglog.New(cfg.AppEnv)

	db, err := gorm.Open(postgres.Open(buildDSN(cfg)), &gorm.Config{
		Logger: loggerForGorm(cfg),
	})
	if err != nil {
		return nil, err
	}
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&domain.User{}, &domain.AudioFile{}); err != nil {
		return nil, err
	}

	store, err := storage.NewLocalStore(cfg.AudioFilesDir)
	if err != nil {
		return nil, err
	}

	nc, err := nats.Connect(cfg.NATSURL)
	if err != nil {
		log.Printf("nats connect failed: %v", err)
	}

	userRepo := repo.NewUserRepository(db)
	fileRepo := repo.NewAudioFileRepository(db)
	oauthClient := yandex.NewClient(yandex.Options{
		ClientID:     cfg.YandexClientID,
		ClientSecret: cfg.YandexClientSecret,
		RedirectURI:  cfg.YandexRedirectURI,
	}, 10*time.Second)

	var events natsadapter.EventPublisher
	if nc != nil {
		events = natsadapter.NewEventPublisher(nc, natsadapter.Subjects{
			UserCreated:   cfg.NATSUserCreatedSubject,
			AudioUploaded: cfg.NATSAudioUploadedSubject,
		})
	}

	signer, err := usecase.NewJWTSigner(cfg)
	if err != nil {
		return nil, err
	}

	service := usecase.NewService(cfg, logger, userRepo, fileRepo, store, oauthClient, events, signer)
	authH := handlers.NewAuthHandler(service)
	userH := handlers.NewUserHandler(service)
	audioH := handlers.NewAudioHandler(service)
	authMW := authmw.NewAuthMiddleware(signer, userRepo)
	router := httpadapter.NewRouter(cfg, apiv1.NewRouter(authH, userH, audioH, authMW.Handler))

	if nc != nil {
		verifyHandler := natsadapter.NewVerifyHandler(signer)
		_ = verifyHandler.Subscribe(nc, cfg.NATSVerifySubject, cfg.AppName)
	}

	e := echo.New()
	router.Setup(e)

	return &App{cfg: cfg, logger: logger, db: db, natsConn: nc, echo: e}, nil
}

func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = a.echo.Shutdown(shutdownCtx)
	}()
	go func() {
		errCh <- a.echo.Start(fmt.Sprintf("%s:%s", a.cfg.HTTPHost, a.cfg.HTTPPort))
	}()
	select {
	case <-ctx.Done():
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (a *App) Close() {
	if a.natsConn != nil {
		_ = a.natsConn.Drain()
	}
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

func buildDSN(cfg *config.Config) string {
	if cfg.DatabaseURL != "" {
		return cfg.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s", cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode)
}

func loggerForGorm(cfg *config.Config) logger.Interface {
	level := logger.Silent
	switch cfg.AppEnv {
	case "local":
		level = logger.Info
	default:
		level = logger.Warn
	}
	return logger.Default.LogMode(level)
}
