package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del quoter.
type Config struct {
	Quoter  QuoterConfig  `yaml:"quoter"`
	API     APIConfig     `yaml:"api"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// QuoterConfig controla el loop de rondas.
type QuoterConfig struct {
	IntervalSeconds       int    `yaml:"interval_seconds"`
	MarketsFile           string `yaml:"markets_file"`
	FailureAlertThreshold int    `yaml:"failure_alert_threshold"` // rondas fallidas consecutivas antes de alertar
}

// APIConfig contiene los base URLs de las APIs.
type APIConfig struct {
	CLOBBase  string `yaml:"clob_base"`
	GammaBase string `yaml:"gamma_base"`
	DataBase  string `yaml:"data_base"` // data-api (posiciones)
}

// StorageConfig controla dónde se persisten los datos.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Secrets son las credenciales leídas solo de variables de entorno.
type Secrets struct {
	PrivateKey    string // POLY_PRIVATE_KEY: clave Polygon sin 0x
	FunderAddress string // POLY_FUNDER_ADDRESS: wallet proxy que custodia fondos
	ServerChanKey string // SERVERCHAN_KEY: push WeChat, opcional
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
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

// LoadSecrets lee las credenciales del entorno. El .env ya fue cargado en Load.
func LoadSecrets() Secrets {
	return Secrets{
		PrivateKey:    os.Getenv("POLY_PRIVATE_KEY"),
		FunderAddress: os.Getenv("POLY_FUNDER_ADDRESS"),
		ServerChanKey: os.Getenv("SERVERCHAN_KEY"),
	}
}

// ScanInterval devuelve el intervalo entre rondas como time.Duration.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Quoter.IntervalSeconds) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Quoter.IntervalSeconds <= 0 {
		cfg.Quoter.IntervalSeconds = 10
	}
	if cfg.Quoter.MarketsFile == "" {
		cfg.Quoter.MarketsFile = "config/markets.yaml"
	}
	if cfg.Quoter.FailureAlertThreshold <= 0 {
		cfg.Quoter.FailureAlertThreshold = 50
	}
	if cfg.API.CLOBBase == "" {
		cfg.API.CLOBBase = "https://clob.polymarket.com"
	}
	if cfg.API.GammaBase == "" {
		cfg.API.GammaBase = "https://gamma-api.polymarket.com"
	}
	if cfg.API.DataBase == "" {
		cfg.API.DataBase = "https://data-api.polymarket.com"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "polyquoter.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
