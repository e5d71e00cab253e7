package main

import (
	"context"
	"fmt"
	"os/signal"
	"sync"
	"syscall"

	"github.com/MKhiriev/go-erp-auth/internal/adapter"
	"github.com/MKhiriev/go-erp-auth/internal/config"
	"github.com/MKhiriev/go-erp-auth/internal/handler"
	"github.com/MKhiriev/go-erp-auth/internal/logger"
	"github.com/MKhiriev/go-erp-auth/internal/metrics"
	"github.com/MKhiriev/go-erp-auth/internal/ratelimit"
	"github.com/MKhiriev/go-erp-auth/internal/server"
	"github.com/MKhiriev/go-erp-auth/internal/service"
	"github.com/MKhiriev/go-erp-auth/internal/store"
	"github.com/MKhiriev/go-erp-auth/internal/workers"
	"github.com/MKhiriev/go-erp-auth/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	build := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)
	fmt.Print(build)

	log := logger.NewLogger("erp-auth-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}
	if err = logger.SetLevel(cfg.App.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("error setting log level")
	}

	// secrets stay out of the log
	log.Debug().
		Str("storage_mode", cfg.Storage.Mode).
		Str("http_address", cfg.Server.HTTPAddress).
		Str("email_mode", cfg.Adapter.Email.Mode).
		Bool("otp_on_every_login", cfg.App.OTPOnEveryLogin).
		Bool("protect_admin_routes", cfg.App.ProtectAdminRoutes).
		Msg("received configs")

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGTERM,
		syscall.SIGINT,
		syscall.SIGQUIT,
	)
	defer stop()

	storage, err := store.NewStorage(ctx, cfg.Storage, cfg.App.AuditRetention, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating storage")
	}
	defer func() {
		if err := storage.Close(); err != nil {
			log.Err(err).Msg("error closing storage")
		}
	}()

	sender, err := adapter.NewEmailSender(cfg.Adapter.Email, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating email sender")
	}

	limiter, closeLimiter, err := ratelimit.NewLoginLimiter(ctx, cfg.Adapter.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating login limiter")
	}
	defer closeLimiter()

	m := metrics.New()

	services, err := service.NewServices(service.Deps{
		Storage: storage,
		Sender:  sender,
		Limiter: limiter,
		Metrics: m,
		Build:   build,
	}, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating services")
	}

	handlers, err := handler.NewHandlers(services, m, *cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating handlers")
	}

	srv, err := server.NewServer(handlers, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	var wg sync.WaitGroup
	wg.Go(func() {
		workers.NewWorkers(services, cfg.Workers, log).Run(ctx)
	})

	if err = srv.RunServer(ctx); err != nil {
		log.Err(err).Msg("server stopped with error")
	}

	// a failed server must stop the workers too
	stop()
	wg.Wait()
}
