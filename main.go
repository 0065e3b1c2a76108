// @title SkillForge API
// @version 1.0
// @description Skill learning and validation backend.

// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

package main

import (
	"flag"
	"log"

	"skillforge_backend/internal/app"
	"skillforge_backend/internal/config"
	"skillforge_backend/pkg/configwatcher"
	"skillforge_backend/pkg/logger"
)

func main() {
	configPath := flag.String("config", "configs", "config directory")
	watch := flag.Bool("watch-config", false, "reload config on file change")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *watch {
		go configwatcher.WatchConfig(*configPath, application.ApplyConfig)
	}

	application.Run()
}
