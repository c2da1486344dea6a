package app

import (
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ahmvdd/gestion-rdv/internal/config"
)

type App struct {
	DB  *pgxpool.Pool
	Cfg *config.Config
}

func New(db *pgxpool.Pool, cfg *config.Config) *App {
	return &App{DB: db, Cfg: cfg}
}
