package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hugohenrick/mercadinho/internal/adapter/api/dto"
	"github.com/hugohenrick/mercadinho/internal/infrastructure/config"
	"github.com/hugohenrick/mercadinho/internal/infrastructure/metrics"
	"github.com/hugohenrick/mercadinho/pkg/logger"
)

func main() {
	// Carregar variáveis de ambiente
	if err := config.LoadEnvFile(); err != nil {
		log.Printf("Aviso: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Erro ao carregar configuração: %v", err)
	}

	zapLogger := logger.NewZap(cfg.Log)
	defer func() { _ = zapLogger.Sync() }()
	appLogger := logger.FromZap(zapLogger)

	metrics.Register()
	if err := dto.RegisterValidators(); err != nil {
		appLogger.Error("erro ao registrar validadores", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Criar aplicação
	app, err := NewApp(ctx, cfg, appLogger)
	if err != nil {
		appLogger.Error("erro ao iniciar aplicação", "error", err)
		os.Exit(1)
	}
	defer app.Close()

	// Iniciar o servidor
	srv := app.Server()
	go func() {
		appLogger.Info("servidor iniciado", "addr", srv.Addr, "env", cfg.App.Env, "storage", cfg.Storage.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Error("erro no servidor HTTP", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	appLogger.Info("encerrando servidor")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("erro ao encerrar servidor", "error", err)
	}
}
