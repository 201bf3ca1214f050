package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"

	"offboard-checklist/internal/checklist"
	"offboard-checklist/internal/config"
	"offboard-checklist/internal/database"
	"offboard-checklist/internal/repository"
	"offboard-checklist/internal/repository/memory"
	"offboard-checklist/internal/repository/postgres"
	"offboard-checklist/internal/router"
	"offboard-checklist/internal/service"
	"offboard-checklist/internal/utils"
	"offboard-checklist/pkg/logger"
)

func main() {
	var (
		envFile    = pflag.String("env-file", ".env", "dotenv file to load before reading the environment")
		storeKind  = pflag.String("store", "", "storage backend: postgres or memory (overrides STORE)")
		port       = pflag.String("port", "", "listen port (overrides API_PORT)")
		migrate    = pflag.Bool("migrate", true, "apply the embedded schema on startup")
		issueToken = pflag.String("issue-token", "", "print a signed API token for this user and exit")
		tokenTTL   = pflag.Duration("token-ttl", 30*24*time.Hour, "lifetime of tokens from --issue-token")
	)
	pflag.Parse()

	// config + logger
	if err := config.LoadEnvFile(*envFile); err != nil {
		fmt.Fprintf(os.Stderr, "load %s: %v\n", *envFile, err)
		os.Exit(1)
	}
	cfg := config.Load()
	if *storeKind != "" {
		cfg.Store = *storeKind
	}
	if *port != "" {
		cfg.Port = *port
	}
	l := logger.New(cfg.Env)

	if *issueToken != "" {
		if cfg.AuthSecret == "" {
			l.Fatal().Msg("AUTH_SECRET must be set to issue tokens")
		}
		tok, err := utils.SignJWT(cfg.AuthSecret, *issueToken, *tokenTTL)
		if err != nil {
			l.Fatal().Err(err).Msg("sign token")
		}
		fmt.Println(tok)
		return
	}

	tmpl, err := checklist.Load(cfg.Template)
	if err != nil {
		l.Fatal().Err(err).Msg("checklist template")
	}

	// store
	var store repository.Store
	switch cfg.Store {
	case "memory":
		l.Warn().Msg("using in-memory store; data is lost on restart")
		store = memory.New(time.Now)
	case "postgres":
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		pool, err := database.Open(ctx, cfg)
		if err == nil && *migrate {
			err = database.Migrate(ctx, pool)
		}
		cancel()
		if err != nil {
			l.Fatal().Err(err).Msg("db connect failed")
		}
		defer pool.Close()
		store = postgres.NewStore(pool)
	default:
		l.Fatal().Str("store", cfg.Store).Msg("unknown store")
	}

	svc := service.NewOffboarding(store, tmpl, time.Now, l)

	// http
	r := router.New(l, svc, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		l.Info().Str("addr", srv.Addr).Str("store", cfg.Store).Int("template_tasks", tmpl.TaskCount()).Msg("api listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			l.Fatal().Err(err).Msg("server error")
		}
	}()

	// graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	l.Info().Msg("shutdown complete")
}
