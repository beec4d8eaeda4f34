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

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/DoyleJ11/runecast-protocol/internal/config"
	"github.com/DoyleJ11/runecast-protocol/internal/httpapi"
	"github.com/DoyleJ11/runecast-protocol/internal/hub"
	"github.com/DoyleJ11/runecast-protocol/internal/logging"
	"github.com/DoyleJ11/runecast-protocol/internal/session"
	"github.com/DoyleJ11/runecast-protocol/internal/ws"
	"github.com/DoyleJ11/runecast-protocol/pkg/protocol"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The hub outlives the signal so open sockets are closed by ShutdownHub.
	h := hub.NewHub(context.Background(), session.Options{
		ReplayLimit: cfg.ReplayLimit,
		Envelope:    cfg.EnvelopeDefault,
		Grace:       protocol.ReconnectGrace,
		Logger:      log,
	})

	// Build the router *with* the hub injected
	handler := httpapi.SetupRoutes(h, &ws.GuestHandler{}, ws.Options{
		SendBuffer: cfg.SendBuffer,
		Logger:     log,
	})
	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", cfg.Addr), zap.String("protocol_version", protocol.ProtocolVersion))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		select {
		case h.Inbox() <- hub.ShutdownHub{}:
		case <-h.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
