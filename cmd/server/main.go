package main // Entry point package

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/energopraktiki/internal/config"
	"github.com/iliyamo/energopraktiki/internal/database"
	"github.com/iliyamo/energopraktiki/internal/handler"
	"github.com/iliyamo/energopraktiki/internal/kv"
	"github.com/iliyamo/energopraktiki/internal/logging"
	"github.com/iliyamo/energopraktiki/internal/middleware"
	"github.com/iliyamo/energopraktiki/internal/queue"
	"github.com/iliyamo/energopraktiki/internal/repository"
	"github.com/iliyamo/energopraktiki/internal/router"
	"github.com/iliyamo/energopraktiki/internal/schedule"
	"github.com/iliyamo/energopraktiki/internal/seo"
	"github.com/iliyamo/energopraktiki/internal/service"
)

func main() {
	cfg := config.Load()
	logger := logging.New(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("err", err))
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		// the public site keeps working on bundled data; writes will fail
		// until MySQL comes back
		logger.Warn("database unavailable", slog.Any("err", err))
		if db, err = database.Pool(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName); err != nil {
			return err
		}
	}
	defer db.Close()

	rdb := config.NewRedisClient()
	if rdb == nil {
		logger.Warn("redis unavailable, response cache disabled and rate limits kept in process")
	}

	store, err := kv.Open(config.LoadKVConfig(), rdb, logger)
	if err != nil {
		return err
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	facilitators := repository.NewFacilitatorRepo(db)
	retreats := repository.NewRetreatRepo(db)
	blog := repository.NewBlogRepo(db)
	serviceTypes := repository.NewServiceTypeRepo(db)
	settings := repository.NewSettingsRepo(db)
	seoRepo := repository.NewSEORepo(db)
	admins := repository.NewAdminRepo(db)
	tokens := repository.NewTokenRepo(db)
	subscribers := repository.NewSubscriberRepo(db)
	faq := repository.NewFAQRepo(db)
	testimonials := repository.NewTestimonialRepo(db)

	seoLoader := seo.NewLoader(seoRepo, store, config.LoadSEOConfig().TTL)
	codes := schedule.NewCodes()
	cacheCfg := config.LoadCacheConfig()
	purge := handler.Purger(func(ctx context.Context) error {
		return middleware.PurgeCache(ctx, cacheCfg, rdb)
	})

	consumer := queue.NewConsumer(cfg.AMQPURL, logger)
	go func() {
		if err := consumer.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error("newsletter consumer stopped", slog.Any("err", err))
		}
	}()

	e := echo.New()
	router.Setup(e, router.Deps{
		Cfg:       cfg,
		Logger:    logger,
		Redis:     rdb,
		Cache:     cacheCfg,
		RateLimit: config.LoadRateLimitConfig(),

		Catalog: &handler.CatalogHandler{
			Facilitators: facilitators,
			Settings:     settings,
			ServiceTypes: serviceTypes,
		},
		Content: &handler.ContentHandler{
			Retreats:     retreats,
			Blog:         blog,
			Settings:     settings,
			SEO:          seoLoader,
			FAQ:          faq,
			Testimonials: testimonials,
		},
		Newsletter: &handler.NewsletterHandler{
			Subscribers: subscribers,
			Events:      service.NewPublisher(cfg.AMQPURL, logger),
		},
		Schedule: &handler.ScheduleHandler{Store: schedule.NewStore(store), Codes: codes},
		Auth:     handler.NewAuthHandler(cfg, admins, facilitators, tokens),
		Account: &handler.AccountHandler{
			Cfg:          cfg,
			Facilitators: facilitators,
			Admins:       admins,
			Tokens:       tokens,
			Purge:        purge,
		},
		Admin: &handler.AdminHandler{
			Cfg:          cfg,
			Facilitators: facilitators,
			Retreats:     retreats,
			Blog:         blog,
			ServiceTypes: serviceTypes,
			Settings:     settings,
			SEO:          seoRepo,
			SEOCache:     seoLoader,
			FAQ:          faq,
			Testimonials: testimonials,
			Codes:        codes,
			Purge:        purge,
			Now:          time.Now,
		},
	})

	addr := ":" + cfg.Port
	logger.Info("listening", slog.String("addr", addr), slog.String("env", cfg.Env))

	errc := make(chan error, 1)
	go func() { errc <- e.Start(addr) }()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if rdb != nil {
		_ = rdb.Close()
	}
	logger.Info("server stopped cleanly")
	return nil
}
