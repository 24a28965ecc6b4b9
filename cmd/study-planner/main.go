package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/SergeyKozhin/study-planner-backend/internal/api"
	events_service "github.com/SergeyKozhin/study-planner-backend/internal/business/events"
	"github.com/SergeyKozhin/study-planner-backend/internal/config"
	"github.com/SergeyKozhin/study-planner-backend/internal/database"
	"github.com/SergeyKozhin/study-planner-backend/internal/database/events"
	"github.com/SergeyKozhin/study-planner-backend/internal/notifications"
	"github.com/SergeyKozhin/study-planner-backend/internal/redis"
	"github.com/SergeyKozhin/study-planner-backend/internal/sink"
	"github.com/xlab/closer"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
)

func main() {
	ctx := context.Background()

	logger, err := initLogger()
	if err != nil {
		log.Fatalf("unable to initializae logger: %v", err)
	}

	loc, err := config.Location()
	if err != nil {
		logger.Fatalw("invalid timezone", "err", err)
	}

	db, err := database.NewPGX(ctx, config.PostgresURL())
	if err != nil {
		logger.Fatalw("unable to initializae db", "err", err)
	}
	eventsRepository := events.NewRepository()
	eventsService := events_service.NewService(db, eventsRepository)

	entries, err := initSink(logger)
	if err != nil {
		logger.Fatalw("unable to initializae sink", "err", err)
	}

	scheduler := notifications.NewScheduler(logger, notifications.Config{
		Interval:              config.TickInterval(),
		Location:              loc,
		SinkType:              config.NotificationType(),
		MarkSentOnSinkFailure: config.MarkSentOnSinkFailure(),
	}, eventsService, entries)

	sweeper := notifications.NewSweeper(logger, notifications.RetentionConfig{
		Days:     config.RetentionDays(),
		Schedule: config.RetentionSchedule(),
		Location: loc,
	}, entries)
	if err := sweeper.Start(ctx); err != nil {
		logger.Fatalw("unable to start retention sweep", "err", err)
	}
	closer.Bind(sweeper.Stop)

	api, err := api.NewApi(logger, eventsService, scheduler, config.TriggerRatePerMinute())
	if err != nil {
		logger.Fatalw("unable to initializae api", "err", err)
	}

	errLogger, err := zap.NewStdLogAt(logger.Desugar(), zap.ErrorLevel)
	if err != nil {
		logger.Fatalw("error initiating server logger", "err", err)
	}

	server := &http.Server{
		Addr:     ":" + config.Port(),
		Handler:  api,
		ErrorLog: errLogger,
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		scheduler.Start(gCtx)
		return nil
	})
	g.Go(func() error {
		logger.Infow("Started server", "port", config.Port())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	})

	closer.Bind(func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Errorw("server shutdown failed", "err", err)
		}
		scheduler.Stop()
	})

	go func() {
		if err := g.Wait(); err != nil {
			logger.Errorw("service stopped", "err", err)
			closer.Close()
		}
	}()

	closer.Hold()
}

func initSink(logger *zap.SugaredLogger) (sink.Sink, error) {
	switch config.SinkDriver() {
	case "file":
		return sink.NewFileSink(config.LogDir())
	case "redis":
		pool := redis.NewRedisPool(logger, config.RedisURL())
		return sink.NewRedisSink(pool, config.RedisSinkPrefix()), nil
	default:
		return nil, fmt.Errorf("unknown sink driver %q", config.SinkDriver())
	}
}

func initLogger() (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error

	if config.Production() {
		logger, err = zap.NewProduction()
	} else {
		conf := zap.NewDevelopmentConfig()
		conf.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = conf.Build()
	}

	if err != nil {
		return nil, err
	}

	closer.Bind(func() {
		_ = logger.Sync()
	})

	return logger.Sugar(), nil
}
