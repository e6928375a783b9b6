package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/clinicbase/clinic-scheduler/internal/config"
	dbpkg "github.com/clinicbase/clinic-scheduler/internal/db"
	"github.com/clinicbase/clinic-scheduler/internal/middleware"
	"github.com/clinicbase/clinic-scheduler/internal/realtime"
	"github.com/clinicbase/clinic-scheduler/internal/routes"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	ctx := context.Background()

	hub := realtime.NewHub()
	go hub.Run(ctx)

	var pub realtime.Publisher = hub
	if cfg.RedisURL != "" {
		bridge, err := realtime.NewBridge(cfg.RedisURL, hub)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		go bridge.Run(ctx)
		pub = bridge
		log.Println("realtime bridge enabled")
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, pub, realtime.NewHandler(hub, cfg.AllowedOrigin))

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
