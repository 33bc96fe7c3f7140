package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jengzang/civic-etl-go/internal/config"
	"github.com/jengzang/civic-etl-go/internal/handler"
	"github.com/jengzang/civic-etl-go/internal/metrics"
	"github.com/jengzang/civic-etl-go/internal/middleware"
	"github.com/jengzang/civic-etl-go/internal/pipeline"
	"github.com/jengzang/civic-etl-go/internal/repository"
	"github.com/jengzang/civic-etl-go/internal/service"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config, db *sql.DB, engine *pipeline.Engine) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	// CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		status, code := "ok", http.StatusOK
		if err := db.PingContext(c.Request.Context()); err != nil {
			status, code = "database unavailable", http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":      status,
			"run_running": engine.Busy(),
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// 依赖注入
	stationRepo := repository.NewStationRepository(db)
	accidentRepo := repository.NewAccidentRepository(db)

	stationHandler := handler.NewStationHandler(service.NewStationService(stationRepo))
	tripHandler := handler.NewTripHandler(service.NewTripService(repository.NewTripRepository(db)))
	weatherHandler := handler.NewWeatherHandler(service.NewWeatherService(repository.NewWeatherRepository(db)))
	accidentHandler := handler.NewAccidentHandler(service.NewAccidentService(accidentRepo))
	wardHandler := handler.NewWardHandler(service.NewWardService(repository.NewZoneRepository(db), accidentRepo, stationRepo))
	runHandler := handler.NewRunHandler(service.NewRunService(repository.NewRunRepository(db), engine))

	// API 路由组
	api := r.Group("/api/v1")
	api.Use(middleware.RateLimit(middleware.NewRateLimiter(20, 40, 10*time.Minute)))
	{
		stations := api.Group("/stations")
		{
			stations.GET("", stationHandler.GetStations)
			stations.GET("/nearest", stationHandler.GetNearest)
			stations.GET("/:id", stationHandler.GetStationByID)
		}

		api.GET("/trips", tripHandler.GetTrips)
		api.GET("/weather", weatherHandler.GetWeather)
		api.GET("/accidents", accidentHandler.GetAccidents)

		wards := api.Group("/wards")
		{
			wards.GET("", wardHandler.GetWards)
			wards.GET("/stats", wardHandler.GetWardStats)
			wards.GET("/geojson", wardHandler.GetWardsGeoJSON)
		}

		runs := api.Group("/runs")
		{
			runs.GET("", runHandler.GetRuns)
			runs.GET("/:id", runHandler.GetRun)
			runs.POST("", middleware.RequireJWT(cfg.JWTSecret), runHandler.StartRun)
		}
	}

	return r
}
