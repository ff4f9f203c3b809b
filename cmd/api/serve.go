package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httpadp "timesheet-backend/internal/adapter/http"
	mw "timesheet-backend/internal/adapter/middleware"
)

const shutdownGrace = 10 * time.Second

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}

			e := echo.New()
			e.HideBanner = true
			e.HidePort = true
			e.Validator = httpadp.NewValidator()
			e.Use(middleware.Recover(), middleware.RequestID(), mw.RequestLogger(log.Named("http")))

			httpadp.Register(e, a.handlers,
				mw.RequireUser(),
				mw.IdempotencyMiddleware(a.redis, cfg.IdempotencyTTL(), log.Named("idempotency")),
			)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			addr := ":" + cfg.AppPort
			errc := make(chan error, 1)
			go func() {
				log.Info("listening", zap.String("addr", addr))
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errc <- err
				}
				close(errc)
			}()

			select {
			case err := <-errc:
				if err != nil {
					a.close(context.Background())
					return err
				}
			case <-ctx.Done():
			}

			log.Info("shutting down")
			sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
			defer cancel()
			if err := e.Shutdown(sctx); err != nil {
				log.Warn("http shutdown", zap.Error(err))
			}
			a.close(sctx)
			return nil
		},
	}
}
