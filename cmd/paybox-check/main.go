package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kevin07696/paybox-client/domain"
	"github.com/kevin07696/paybox-client/internal/config"
	"github.com/kevin07696/paybox-client/paybox"
)

// paybox-check runs a purchase followed by a void against the Paybox
// preprod platform, so merchant credentials can be verified without
// touching production.
func main() {
	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := initLogger(cfg.Logger)
	defer logger.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := cfg.ResolveKey(ctx, initSecretManager(ctx, cfg, logger)); err != nil {
		logger.Fatal("Failed to resolve Paybox key", zap.Error(err))
	}

	if os.Getenv("PAYBOX_ENDPOINT") == "" {
		cfg.Gateway.Endpoint = paybox.PreprodURL
		cfg.Gateway.BackupEndpoint = ""
	}

	gateway, err := paybox.New(&cfg.Gateway, nil, logger)
	if err != nil {
		logger.Fatal("Failed to build gateway", zap.Error(err))
	}

	if err := run(ctx, gateway, logger); err != nil {
		logger.Fatal("Check failed", zap.Error(err))
	}
	logger.Info("Credentials verified")
}

func run(ctx context.Context, gateway *paybox.Gateway, logger *zap.Logger) error {
	card := domain.CreditCard{
		Number:     "1111222233334444",
		ExpMonth:   12,
		ExpYear:    time.Now().Year() + 1,
		CVV:        "123",
		HolderName: "Check Check",
	}
	opts := paybox.Options{
		OrderID:     fmt.Sprintf("check-%d", time.Now().UnixNano()),
		Description: "Credential check",
	}
	amount := domain.Money(100)

	purchase, err := gateway.Purchase(ctx, amount, card, opts)
	if err != nil {
		return err
	}
	if !purchase.Success {
		return fmt.Errorf("purchase refused: %s (code %s)", purchase.Message, purchase.Code)
	}
	logger.Info("Purchase approved",
		zap.String("authorization", string(purchase.Authorization)),
	)

	opts.Amount = amount
	opts.Expiry = card.ExpDate()
	void, err := gateway.Void(ctx, purchase.Authorization, opts)
	if err != nil {
		return err
	}
	if !void.Success {
		return fmt.Errorf("void refused: %s (code %s)", void.Message, void.Code)
	}
	logger.Info("Purchase voided")
	return nil
}

func initLogger(cfg config.LoggerConfig) *zap.Logger {
	if cfg.Development {
		logger, _ := zap.NewDevelopment()
		return logger
	}

	level := zapcore.InfoLevel
	if parsed, err := zapcore.ParseLevel(cfg.Level); err == nil {
		level = parsed
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = zap.NewAtomicLevelAt(level)
	logger, _ := zapCfg.Build()
	return logger
}
