package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/adiazgm/foliobot/internal/domain"
)

// Config es la configuración completa de foliobot.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Binance  BinanceConfig  `yaml:"binance"`
	Storage  StorageConfig  `yaml:"storage"`
	Report   ReportConfig   `yaml:"report"`
	Log      LogConfig      `yaml:"log"`
}

// AnalysisConfig controla los parámetros de los reportes.
type AnalysisConfig struct {
	LookbackDays   int     `yaml:"lookback_days"`
	InitialCapital float64 `yaml:"initial_capital"` // principal fijo del reporte de performance
	Interval       string  `yaml:"interval"`        // intervalo de klines: 1h, 4h, 1d
	WeightBTC      float64 `yaml:"weight_btc"`
	WeightETH      float64 `yaml:"weight_eth"`
	WeightUSDT     float64 `yaml:"weight_usdt"`
}

// BinanceConfig contiene las credenciales de la API.
// Las keys solo se leen de variables de entorno, nunca del YAML.
type BinanceConfig struct {
	APIKey    string `yaml:"-"`
	SecretKey string `yaml:"-"`
}

// StorageConfig controla dónde se persiste el histórico de reportes.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// ReportConfig controla el export de archivos de cada reporte.
type ReportConfig struct {
	CSVDir string `yaml:"csv_dir"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Las variables de entorno sobreescriben al YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// Weights devuelve los pesos objetivo del benchmark.
func (c *Config) Weights() domain.Weights {
	return domain.Weights{
		BTC:  c.Analysis.WeightBTC,
		ETH:  c.Analysis.WeightETH,
		USDT: c.Analysis.WeightUSDT,
	}
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	cfg.Binance.APIKey = os.Getenv("BINANCE_API_KEY")
	cfg.Binance.SecretKey = os.Getenv("BINANCE_SECRET_KEY")

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Analysis.LookbackDays <= 0 {
		cfg.Analysis.LookbackDays = 30
	}
	if cfg.Analysis.InitialCapital <= 0 {
		cfg.Analysis.InitialCapital = domain.DefaultInitialCapital
	}
	if cfg.Analysis.Interval == "" {
		cfg.Analysis.Interval = "1h"
	}
	if cfg.Analysis.WeightBTC <= 0 || cfg.Analysis.WeightETH <= 0 || cfg.Analysis.WeightUSDT <= 0 {
		cfg.Analysis.WeightBTC = domain.DefaultWeights.BTC
		cfg.Analysis.WeightETH = domain.DefaultWeights.ETH
		cfg.Analysis.WeightUSDT = domain.DefaultWeights.USDT
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "foliobot.db"
	}
	if cfg.Report.CSVDir == "" {
		cfg.Report.CSVDir = "data/reports"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
