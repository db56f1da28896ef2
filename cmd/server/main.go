package main

import (
	"sar-ambalaj-backend/internal/config"
	"sar-ambalaj-backend/internal/database"
	"sar-ambalaj-backend/internal/logger"
	"sar-ambalaj-backend/internal/server"
)

func main() {
	cfg := config.Load()
	logger.Init(cfg.LogLevel, cfg.LogFormat)
	database.Init(cfg)

	app := server.New(cfg)

	logger.Log.Infof("Server çalışıyor port: %s", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		logger.Log.Fatal(err)
	}
}
