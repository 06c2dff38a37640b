package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/adiazgm/foliobot/config"
	"github.com/adiazgm/foliobot/internal/adapters/binance"
	"github.com/adiazgm/foliobot/internal/adapters/storage"
	"github.com/adiazgm/foliobot/internal/portfolio"
	"github.com/adiazgm/foliobot/internal/report"
	"github.com/adiazgm/foliobot/internal/tools"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	reportKind := flag.String("report", "comparison", "report to run: comparison|performance")
	history := flag.String("history", "", "raw history instead of a report: trades|p2p|deposits")
	side := flag.String("side", "", "p2p side: BUY|SELL (with -history p2p)")
	days := flag.Int("days", 0, "lookback window in days (0 = config value)")
	verbose := flag.Bool("verbose", false, "set log level to debug")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
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

	if cfg.Binance.APIKey == "" || cfg.Binance.SecretKey == "" {
		slog.Error("missing credentials: set BINANCE_API_KEY and BINANCE_SECRET_KEY")
		os.Exit(1)
	}

	slog.Info("foliobot starting",
		"config", *configPath,
		"report", *reportKind,
		"history", *history,
		"lookback_days", cfg.Analysis.LookbackDays,
	)

	client := binance.NewClient(cfg.Binance.APIKey, cfg.Binance.SecretKey)

	store, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
	if err != nil {
		slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
		os.Exit(1)
	}
	defer store.Close()

	svcCfg := portfolio.DefaultConfig()
	svcCfg.LookbackDays = cfg.Analysis.LookbackDays
	svcCfg.InitialCapital = cfg.Analysis.InitialCapital
	svcCfg.Interval = cfg.Analysis.Interval
	svcCfg.Weights = cfg.Weights()
	svc := portfolio.NewService(client, client, svcCfg)

	reg := tools.NewRegistry()
	tools.RegisterPortfolioTools(reg, svc, store, report.NewWriter(cfg.Report.CSVDir))
	tools.RegisterHistoryTools(reg, client, cfg.Analysis.LookbackDays)

	name, args, err := resolveTool(*reportKind, *history, *side, *days)
	if err != nil {
		slog.Error("invalid arguments", "err", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	out, err := reg.Call(ctx, name, args)
	if err != nil {
		slog.Error("tool failed", "tool", name, "err", err)
		os.Exit(1)
	}

	fmt.Println(out)
}

// resolveTool traduce los flags a la herramienta y sus argumentos.
func resolveTool(reportKind, history, side string, days int) (string, tools.Args, error) {
	args := tools.Args{}
	if days > 0 {
		args["days"] = days
	}

	if history != "" {
		switch history {
		case "trades":
			return "spot_trade_history", args, nil
		case "p2p":
			args["trade_type"] = side
			return "p2p_history", args, nil
		case "deposits":
			return "deposit_history", args, nil
		}
		return "", nil, fmt.Errorf("unknown history %q (want trades|p2p|deposits)", history)
	}

	switch reportKind {
	case "comparison":
		return "portfolio_comparison", args, nil
	case "performance":
		return "portfolio_performance", args, nil
	}
	return "", nil, fmt.Errorf("unknown report %q (want comparison|performance)", reportKind)
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
