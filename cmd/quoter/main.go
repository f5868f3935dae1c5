package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alejandrodnm/polyquoter/config"
	"github.com/alejandrodnm/polyquoter/internal/adapters/notify"
	"github.com/alejandrodnm/polyquoter/internal/adapters/polymarket"
	"github.com/alejandrodnm/polyquoter/internal/adapters/storage"
	"github.com/alejandrodnm/polyquoter/internal/quoter"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	once := flag.Bool("once", false, "run one quoting round and exit")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	table := flag.Bool("table", false, "print full round table (default: compact per-market lines)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	secrets := config.LoadSecrets()
	if secrets.PrivateKey == "" {
		slog.Error("POLY_PRIVATE_KEY is not set; cannot sign orders")
		os.Exit(1)
	}

	slog.Info("polyquoter starting",
		"config", *configPath,
		"interval", cfg.ScanInterval(),
		"markets_file", cfg.Quoter.MarketsFile,
		"once", *once,
	)

	client := polymarket.NewClient(cfg.API.CLOBBase, cfg.API.GammaBase, cfg.API.DataBase)
	exchange, err := polymarket.NewAuthClient(client, secrets.PrivateKey, secrets.FunderAddress)
	if err != nil {
		slog.Error("failed to build exchange client", "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := exchange.EnsureCreds(ctx); err != nil {
		slog.Error("failed to derive API credentials", "err", err)
		os.Exit(1)
	}
	slog.Info("authenticated", "address", exchange.Address(), "funder", exchange.FunderAddress())

	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	notifier := notify.NewMulti(
		notify.NewConsole(*table),
		notify.NewServerChan(secrets.ServerChanKey),
	)

	q := quoter.New(quoter.Config{
		Interval:              cfg.ScanInterval(),
		MarketsFile:           cfg.Quoter.MarketsFile,
		FailureAlertThreshold: cfg.Quoter.FailureAlertThreshold,
	}, exchange, client, store, notifier)

	if *once {
		round, err := q.RunRound(ctx)
		if err != nil {
			slog.Error("round failed", "err", err)
			os.Exit(1)
		}
		if round.Errors > 0 {
			os.Exit(1)
		}
		return
	}

	if err := q.Run(ctx); err != nil {
		slog.Error("quoter exited with error", "err", err)
		os.Exit(1)
	}

	slog.Info("polyquoter stopped cleanly")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}
