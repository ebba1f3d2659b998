package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/dcastane/labsamples/internal/config"
	"github.com/dcastane/labsamples/internal/gormw"
	"github.com/dcastane/labsamples/internal/handlers/auth"
	"github.com/dcastane/labsamples/internal/handlers/middleware"
	"github.com/dcastane/labsamples/internal/handlers/samples"
	"github.com/dcastane/labsamples/internal/storage"
)

var (
	configPath = flag.String("c", os.Getenv("CONFIG_PATH"), "Path to configuration file")
)

func main() {
	flag.Parse()
	if *configPath == "" {
		log.Fatal().Msg("Config path must be provided via CONFIG_PATH env var or -c flag")
	}

	// Load configuration
	cfg := config.LoadConfig(*configPath)

	// cron schedule
	scheduler, _ := gocron.NewScheduler()
	scheduler.Start()

	// Initialize database
	db, err := gormw.Open(&cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to open database")
	}
	if err := db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to migrate database")
	}

	storage.RegisterRefreshTokensCleaner(scheduler, db)

	// Set up Gin router
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())

	// Auth endpoints
	authHandler, err := auth.NewHandler(&cfg.Auth, db)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize auth handler")
	}
	authHandler.RegisterHandlers(router.Group("/"))

	// Authorized API surface
	api := router.Group("/api")
	api.Use(middleware.RequireAuth(authHandler.Signer()))
	samples.NewHandler(db).RegisterHandlers(api)

	// Start server
	srv := &http.Server{
		Addr: fmt.Sprintf(":%d", cfg.Port),
		// Good practice to set timeouts to avoid Slowloris attacks.
		WriteTimeout: time.Second * 15,
		ReadTimeout:  time.Second * 15,
		IdleTimeout:  time.Second * 60,
		Handler:      router,
	}

	// Run our server in a goroutine so that it doesn't block.
	go func() {
		log.Printf("start server at %q", srv.Addr)
		if err := srv.ListenAndServe(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	c := make(chan os.Signal, 1)
	// We'll accept graceful shutdowns when quit via SIGINT (Ctrl+C)
	// SIGKILL, SIGQUIT or SIGTERM (Ctrl+/) will not be caught.
	signal.Notify(c, os.Interrupt)

	// Block until we receive our signal.
	<-c

	// Create a deadline to wait for.
	wait := time.Second * 15
	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	// Doesn't block if no connections, but will otherwise wait
	// until the timeout deadline.
	srv.Shutdown(ctx)

	log.Info().Msg("shutting down")
	os.Exit(0)
}
