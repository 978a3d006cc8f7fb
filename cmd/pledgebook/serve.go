// serve.go implements the "serve" command: the upload page and build
// endpoint, with graceful shutdown on interrupt.

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avaropoint/pledgebook/config"
	"github.com/avaropoint/pledgebook/logger"
	"github.com/avaropoint/pledgebook/web"
)

func cmdServe(cfg *config.Config, port string) {
	log := logger.Get()
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      web.NewRouter(cfg, version),
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Infow("server starting", "address", srv.Addr, "base_path", cfg.Server.BasePath, "banks", cfg.BankIDs())
		fmt.Printf("pledgebook listening on http://localhost:%s%s/\n", port, cfg.Server.BasePath)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Errorw("server failed", "error", err)
			shutdown <- os.Interrupt
		}
	}()

	<-shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("shutdown", "error", err)
	}
	log.Info("server stopped")
}
