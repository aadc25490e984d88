package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mishasvintus/team_roster_admin/internal/config"
	"github.com/mishasvintus/team_roster_admin/internal/handler"
	"github.com/mishasvintus/team_roster_admin/internal/logger"
	"github.com/mishasvintus/team_roster_admin/internal/repository"
	"github.com/mishasvintus/team_roster_admin/internal/router"
	"github.com/mishasvintus/team_roster_admin/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Sugar().Fatalw("failed to load configuration", "error", err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		zap.NewExample().Sugar().Fatalw("failed to build logger", "error", err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatalw("server stopped", "error", err)
	}
}

func run(cfg *config.Config, log *zap.SugaredLogger) error {
	db, err := repository.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	migrateCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := repository.Migrate(migrateCtx, db, log.Named("migrate")); err != nil {
		return err
	}

	if err := handler.RegisterValidators(); err != nil {
		return err
	}

	memberService := service.NewMemberService(db)
	roleService := service.NewRoleService(db)
	permissionService := service.NewPermissionService(db)

	memberHandler := handler.NewMemberHandler(memberService)
	roleHandler := handler.NewRoleHandler(roleService)
	permissionHandler := handler.NewPermissionHandler(permissionService)

	gin.SetMode(gin.ReleaseMode)
	r := router.SetupRoutes(memberHandler, roleHandler, permissionHandler, log)

	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Infow("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serveErr:
		return err
	case sig := <-quit:
		log.Infow("shutting down server", "signal", sig.String())
	}

	// Graceful shutdown with timeout
	ctx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctx); err != nil {
		return err
	}

	log.Infow("server exited")
	return nil
}
