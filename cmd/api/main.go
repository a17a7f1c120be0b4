package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openstays/stay-booking/internal/config"
	dbpkg "github.com/openstays/stay-booking/internal/db"
	"github.com/openstays/stay-booking/internal/middleware"
	"github.com/openstays/stay-booking/internal/routes"
	"github.com/openstays/stay-booking/internal/session"
	"github.com/openstays/stay-booking/internal/storage"
)

func main() {

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)
	rdb := dbpkg.NewRedis(cfg)

	sessions := session.NewStore(rdb, time.Duration(cfg.SessionTTLHours)*time.Hour)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	var uploads storage.Store
	if cfg.UseS3() {
		uploads = storage.NewS3(cfg)
	} else {
		local, err := storage.NewLocal(cfg.UploadDir)
		if err != nil {
			log.Fatalf("failed to prepare upload dir: %v", err)
		}
		r.Static("/uploads", local.Dir())
		uploads = local
	}

	routes.RegisterRoutes(r, db, sessions, uploads)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
