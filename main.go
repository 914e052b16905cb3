package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VonLan233/cute-illustration-agent/internal/inject"
	"github.com/VonLan233/cute-illustration-agent/internal/log"
	"github.com/joho/godotenv"
	"github.com/samber/do"
	_ "go.uber.org/automaxprocs"
	"golang.org/x/sync/errgroup"
)

func main() {
	_ = godotenv.Load()

	ctx := log.NewContext(context.Background(), log.New(os.Stderr))
	logger := log.FromContextOrDiscard(ctx)

	injector := inject.Setup(ctx)
	server := do.MustInvoke[*http.Server](injector)

	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, gctx := errgroup.WithContext(sigCtx)
	group.Go(func() error {
		logger.Info("listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	err := group.Wait()
	if serr := injector.Shutdown(); serr != nil {
		logger.Error("injector shutdown failed", "err", serr)
	}
	if err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
