package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	gin "github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sethvargo/go-envconfig"

	api "github.com/jvjruiz/schedule-bot/api"
	middlewares "github.com/jvjruiz/schedule-bot/api/middlewares"
	bot "github.com/jvjruiz/schedule-bot/bot"
	config "github.com/jvjruiz/schedule-bot/config"
	dialog "github.com/jvjruiz/schedule-bot/dialog"
	gcal "github.com/jvjruiz/schedule-bot/gcal"
	googleauth "github.com/jvjruiz/schedule-bot/googleauth"
	l "github.com/jvjruiz/schedule-bot/logger"
	otel "github.com/jvjruiz/schedule-bot/otel"
)

func main() {
	var config config.Config
	cfg, err := config.Load(envconfig.OsLookuper())
	if err != nil {
		log.Printf("Config load error: %v", err)
		return
	}

	var logger l.Logger
	logger, err = l.NewLogger(cfg.Environment)
	if err != nil {
		log.Printf("Logger init error: %v", err)
		return
	}

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("Timezone init error", err)
		return
	}

	overrides, err := cfg.Prompts()
	if err != nil {
		logger.Error("Prompts init error", err)
		return
	}

	requestLogger, err := middlewares.NewRequestLogger(logger)
	if err != nil {
		logger.Error("Failed to initialize request logger", err)
		return
	}

	var telemetry *otel.OpenTelemetryImpl
	if cfg.EnableTelemetry {
		telemetry = &otel.OpenTelemetryImpl{}
		if err := telemetry.Init(cfg); err != nil {
			logger.Error("OpenTelemetry init error", err)
			return
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	flow, err := googleauth.NewFlow(ctx, cfg.OAuthConfig(), logger)
	if err != nil {
		logger.Error("Google OAuth init error", err)
		return
	}

	var submitter dialog.EventSubmitter = gcal.NewClient(cfg.OAuthConfig(), cfg.Google.CalendarID, cfg.Google.Timezone, logger)
	if telemetry != nil {
		submitter = api.NewInstrumentedSubmitter(submitter, telemetry)
	}

	manager := dialog.NewManager(cfg.Dialog.TTL, logger)
	go manager.Run(ctx, cfg.Dialog.SweepInterval)

	engine := dialog.NewEngine(flow, submitter, dialog.NewPrompts(overrides), loc, logger)
	connector := bot.NewConnector(cfg.Bot, logger)

	var tele otel.OpenTelemetry
	if telemetry != nil {
		tele = telemetry
	}
	router := api.NewRouter(cfg, logger, manager, engine, flow, connector, tele)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger.Middleware())

	r.POST("/api/messages", router.MessagesHandler)
	r.GET("/oauthcallback", router.OAuthCallbackHandler)
	r.GET("/health", router.HealthcheckHandler)
	if telemetry != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(telemetry.Registry(), promhttp.HandlerOpts{})))
	}
	r.NoRoute(router.NotFoundHandler)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	if cfg.Server.TLSCertPath != "" && cfg.Server.TLSKeyPath != "" {
		go func() {
			logger.Info("Starting schedule bot with TLS", "port", cfg.Server.Port)

			if err := server.ListenAndServeTLS(cfg.Server.TLSCertPath, cfg.Server.TLSKeyPath); err != nil && err != http.ErrServerClosed {
				logger.Error("ListenAndServeTLS error", err)
			}
		}()
	} else {
		go func() {
			logger.Info("Starting schedule bot", "port", cfg.Server.Port)

			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("ListenAndServe error", err)
			}
		}()
	}

	<-ctx.Done()
	logger.Info("Shutting down server...")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("Server Shutdown error", err)
	} else {
		logger.Info("Server gracefully stopped")
	}
}
