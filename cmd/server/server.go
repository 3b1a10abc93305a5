package main

import (
	"log"

	"github.com/tw2gem/gateway/internal/config"
	h "github.com/tw2gem/gateway/internal/http"

	"github.com/joho/godotenv"
	"github.com/natefinch/lumberjack"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if cfg.LogFile != "" {
		log.SetOutput(&lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    100, // MB
			MaxBackups: 5,
			MaxAge:     14, // days
		})
	}
	r := h.NewRouter(cfg)
	log.Println("media gateway listening on port", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
