package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"connectrpc.com/connect"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/atcommodities/erp/internal/auth"
	"github.com/atcommodities/erp/internal/config"
	"github.com/atcommodities/erp/internal/httpapi"
	"github.com/atcommodities/erp/internal/metrics"
	"github.com/atcommodities/erp/internal/middleware"
	"github.com/atcommodities/erp/internal/service"
	"github.com/atcommodities/erp/internal/storage/sqlite"
	"github.com/atcommodities/erp/pkg/logging"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	metrics.Init()

	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initialize storage: %w", err)
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	var (
		jwtManager   *auth.JWTManager
		interceptors = []connect.Interceptor{middleware.LoggingInterceptor()}
	)
	if cfg.Auth.Enabled {
		jwtManager = auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.TokenDuration)
		// RequireAuth first so the logger sees the operator.
		interceptors = append([]connect.Interceptor{middleware.RequireAuth(jwtManager)}, interceptors...)
	} else {
		slog.Warn("Authentication disabled; every RPC and download is open")
	}
	protected := connect.WithInterceptors(interceptors...)

	services := []httpapi.Mount{
		mount(service.NewInvoiceServiceHandler(service.NewInvoiceService(store), protected)),
		mount(service.NewAttendanceServiceHandler(service.NewAttendanceService(store), protected)),
		mount(service.NewDeliveryServiceHandler(service.NewDeliveryService(store), protected)),
		mount(service.NewDirectoryServiceHandler(service.NewDirectoryService(store), protected)),
	}
	if jwtManager != nil {
		authSvc := service.NewAuthService(auth.NewPasswordAuthenticator(store), jwtManager, slog.Default())
		services = append(services, mount(service.NewAuthServiceHandler(authSvc,
			connect.WithInterceptors(middleware.LoggingInterceptor()),
		)))
	}

	staticDir := ""
	if cfg.StaticPath != "" {
		if staticDir, err = filepath.Abs(cfg.StaticPath); err != nil {
			return fmt.Errorf("resolve static path: %w", err)
		}
		slog.Info("Serving static files", "path", staticDir)
	}

	router := httpapi.NewRouter(httpapi.Options{
		Store:     store,
		JWT:       jwtManager,
		Company:   cfg.Company,
		StaticDir: staticDir,
		Services:  services,
	})

	// h2c serves HTTP/2 without TLS for Connect clients.
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           h2c.NewHandler(router, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		slog.Info("Server starting", "address", srv.Addr, "url", fmt.Sprintf("http://localhost%s", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		slog.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
	}
	return nil
}

func mount(path string, h http.Handler) httpapi.Mount {
	return httpapi.Mount{Path: path, Handler: h}
}
