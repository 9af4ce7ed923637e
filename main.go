package main

import (
	"time"

	"baristasalary/config"
	"baristasalary/database"
	"baristasalary/logger"
	"baristasalary/route"
	"baristasalary/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Get().Fatal().Err(err).Msg("Failed to load configuration")
	}
	logger.Init(cfg.LogLevel, cfg.LogFilePath)
	log := logger.Get()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	if err := database.EnsureAdmin(db, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("Failed to create admin account")
	}

	// Set Gin mode
	if cfg.IsRelease() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Info().Msg("Running in debug mode")
	}

	router := gin.New()
	router.Use(utils.RequestLogger(), gin.Recovery())

	// Configure CORS
	corsConfig := cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	router.Use(cors.New(corsConfig))
	log.Info().Strs("origins", cfg.AllowedOrigins).Msg("CORS configured")

	tokens := utils.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)
	route.APIRoutes(router, db, tokens)
	log.Info().Msg("Routes configured successfully")

	log.Info().Str("port", cfg.Port).Msg("Starting server")
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal().Err(err).Msg("Failed to start server")
	}
}
