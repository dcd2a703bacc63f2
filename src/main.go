package main

import (
	"net/http"
	"os"

	"ota/src/boot"
	"ota/src/booking"
	"ota/src/ident"
	"ota/src/lib"
	"ota/src/middlewares"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

var (
	logger           zerolog.Logger
	idAllocator      *ident.Allocator
	bookingAllocator *booking.Allocator
)

func setupCore(gdb *gorm.DB) {
	idAllocator = ident.NewAllocator(gdb, logger, ident.DefaultWidth, ident.DefaultMaxAttempts)
	bookingAllocator = booking.NewAllocator(gdb, idAllocator, logger)
}

func setupRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middlewares.RequestLogger(logger))
	r.Use(cors.Default())

	r.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("/")
	catalogHandlers(public)

	api := r.Group("/api")
	activityHandlers(api)
	scheduleHandlers(api)
	bookingHandlers(api)

	return r
}

func main() {
	logger = lib.GetLogger()
	lib.RegisterMetrics()

	gdb := boot.InitDb()
	setupCore(gdb)

	r := setupRouter()
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info().Str("port", port).Msg("starting server")
	if err := r.Run(":" + port); err != nil {
		logger.Fatal().Err(err).Msg("server exited")
	}
}
