package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hongminglow/vi-sinh-loi-be/internal/config"
	"github.com/hongminglow/vi-sinh-loi-be/internal/logger"
	"github.com/hongminglow/vi-sinh-loi-be/internal/models"
	"github.com/hongminglow/vi-sinh-loi-be/internal/notify"
	"github.com/hongminglow/vi-sinh-loi-be/internal/otp"
	"github.com/hongminglow/vi-sinh-loi-be/internal/scheduler"
	"github.com/hongminglow/vi-sinh-loi-be/internal/server"
	"github.com/hongminglow/vi-sinh-loi-be/internal/storage"
	"github.com/hongminglow/vi-sinh-loi-be/internal/storage/memory"
	postgres "github.com/hongminglow/vi-sinh-loi-be/internal/storage/postgres"
	"github.com/hongminglow/vi-sinh-loi-be/internal/wallet"
)

const notifyWorkers = 4

type store interface {
	storage.UserStore
	storage.WalletStore
	Close()
}

func main() {
	loadLocalEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.LogDevelopment, cfg.LogLevel)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()
	zap.ReplaceGlobals(zlog)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	db, err := openStore(ctx, cfg)
	if err != nil {
		zlog.Fatal("init storage", zap.String("driver", cfg.StorageDriver), zap.Error(err))
	}
	defer db.Close()

	publisher, err := openPublisher(cfg, zlog)
	if err != nil {
		zlog.Fatal("init notify backend", zap.String("backend", cfg.NotifyBackend), zap.Error(err))
	}

	hub := notify.NewHub(zlog)
	dispatcher := notify.NewDispatcher(publisher, hub, notifyWorkers, zlog)
	dispatcher.Start()

	otpStore, err := openOTPStore(ctx, cfg)
	if err != nil {
		zlog.Fatal("init otp store", zap.Error(err))
	}
	otpSvc := otp.NewService(otpStore, cfg.OTPTTL, zlog)

	wallets := wallet.NewService(db, wallet.Settings{
		WelcomeBalance: cfg.WelcomeBalance,
		WelcomeCoins:   cfg.WelcomeCoins,
		ProfitRate:     cfg.ProfitRate,
		Limits: models.TransactionLimits{
			Daily:          cfg.DailyLimit,
			PerTransaction: cfg.PerTransactionLimit,
		},
	}, wallet.WithNotifier(dispatcher), wallet.WithLogger(zlog))

	jobs := scheduler.New(zlog)
	jobs.Every("profit", cfg.ProfitInterval, wallets.AccrueAllProfit)
	jobs.Every("recurring", cfg.RecurringInterval, wallets.ProcessAllRecurring)
	jobs.Start(ctx)

	srv := server.New(cfg, server.Deps{
		Users:   db,
		Wallets: wallets,
		OTP:     otpSvc,
		Hub:     hub,
		Stats:   dispatcher.Stats,
		Log:     zlog,
	})

	go func() {
		zlog.Info("wallet backend listening",
			zap.String("addr", cfg.HTTPAddress()),
			zap.String("storage", cfg.StorageDriver),
			zap.String("notify", cfg.NotifyBackend),
			zap.Bool("otp_required", cfg.OTPRequired),
		)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("http server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	cancel()
	jobs.Wait()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if err := srv.Shutdown(ctxShutdown); err != nil {
		zlog.Warn("graceful shutdown error", zap.Error(err))
	}
	hub.Close()
	dispatcher.Stop()
	zlog.Info("shutdown complete")
}

func openStore(ctx context.Context, cfg config.Config) (store, error) {
	if cfg.StorageDriver == config.StorageMemory {
		return memory.New(), nil
	}
	return postgres.NewStore(ctx, cfg.DatabaseURL)
}

func openPublisher(cfg config.Config, zlog *zap.Logger) (notify.Publisher, error) {
	switch cfg.NotifyBackend {
	case config.NotifyKafka:
		return notify.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
	case config.NotifyRabbitMQ:
		return notify.NewRabbitMQPublisher(cfg.RabbitMQURL, cfg.RabbitMQQueue)
	default:
		return notify.NewLogPublisher(zlog), nil
	}
}

func openOTPStore(ctx context.Context, cfg config.Config) (otp.Store, error) {
	if cfg.RedisURL == "" {
		return otp.NewMemoryStore(), nil
	}
	client, err := otp.Connect(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return otp.NewRedisStore(client), nil
}

func loadLocalEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found; relying on existing environment")
	}
}
