package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/jengzang/civic-etl-go/internal/api"
	"github.com/jengzang/civic-etl-go/internal/config"
	"github.com/jengzang/civic-etl-go/internal/database"
	"github.com/jengzang/civic-etl-go/internal/logger"
	"github.com/jengzang/civic-etl-go/internal/pipeline"
)

func main() {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if err := logger.Setup(cfg.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("failed to set up logging")
	}
	gin.SetMode(gin.ReleaseMode)

	// 初始化数据库
	if err := database.Init(database.Config{Path: cfg.DBPath}); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer database.Close()
	db := database.GetDB()

	engine := pipeline.NewEngine(cfg, pipeline.DefaultLayout(cfg.DataDir, cfg.OutputDir), pipeline.NewStore(db))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 定时任务
	if cfg.ETLSchedule != "" {
		c := cron.New()
		_, err := c.AddFunc(cfg.ETLSchedule, func() {
			if _, err := engine.Run(ctx); err != nil {
				log.Error().Err(err).Str("component", "cron").Msg("scheduled pipeline run failed")
			}
		})
		if err != nil {
			log.Fatal().Err(err).Str("schedule", cfg.ETLSchedule).Msg("invalid ETL_SCHEDULE")
		}
		c.Start()
		defer c.Stop()
		log.Info().Str("schedule", cfg.ETLSchedule).Msg("pipeline scheduled")
	}

	// 初始化路由
	srv := &http.Server{
		Addr:              cfg.Port,
		Handler:           api.SetupRouter(cfg, db, engine),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.Port).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
