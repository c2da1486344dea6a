package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ahmvdd/gestion-rdv/internal/app"
	"github.com/ahmvdd/gestion-rdv/internal/config"
	"github.com/ahmvdd/gestion-rdv/internal/migrations"
	"github.com/ahmvdd/gestion-rdv/internal/server"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer pool.Close()
	if err := pool.Ping(ctx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	log.Println("connected to postgres")

	if err := migrations.Run(cfg.DatabaseURL); err != nil {
		log.Printf("migration warning: %v", err)
	}

	appInstance := app.New(pool, cfg)
	router := app.NewRouter(appInstance)

	log.Printf("listening on :%s", cfg.Port)
	server.Run(router, cfg.Port)
}
