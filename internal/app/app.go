package app

import (
	"context"
	"database/sql"
	"time"

	"todo-api/internal/config"
	"todo-api/internal/database"
	"todo-api/internal/middleware"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type App struct {
	cfg    config.Config
	db     *sql.DB
	log    *zap.Logger
	router *gin.Engine
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	a := &App{cfg: cfg, log: log}

	db, err := database.Connect(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	a.db = db

	a.router = newRouter(cfg, db, log)
	return a, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Close(ctx context.Context) error {
	_ = ctx
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}

func newRouter(cfg config.Config, db *sql.DB, log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:  []string{"*"},
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length", "Content-Type"},
		MaxAge:        12 * time.Hour,
	}))

	Setup(r, cfg, db, log)
	return r
}
