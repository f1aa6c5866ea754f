package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
	"github.com/mitchellh/go-homedir"
)

const (
	DefaultConfigFile   = "~/.cowregistry/config.toml"
	DefaultProviderURL  = "http://localhost:8545"
	DefaultIPFSAPI      = "localhost:5001"
	DefaultGatewayURL   = "https://ipfs.io"
	DefaultContractName = "CowOwnership"

	BackendEthereum = "ethereum"
	BackendIPFS     = "ipfs"
	BackendMemory   = "memory"
)

// Config agrupa todo lo configurable del servicio.
// Precedencia: defaults (Default) < archivo TOML < variables de entorno.
type Config struct {
	App   string `toml:"app" envconfig:"APP_NAME"`
	Port  string `toml:"port" envconfig:"PORT"`
	DBDSN string `toml:"db_dsn" envconfig:"DB_DSN"`

	Log     LogConfig     `toml:"log" envconfig:"LOG"`
	Chain   ChainConfig   `toml:"chain" envconfig:"CHAIN"`
	Content ContentConfig `toml:"ipfs" envconfig:"IPFS"`
	Sync    SyncConfig    `toml:"sync" envconfig:"SYNC"`
}

type LogConfig struct {
	Level  string `toml:"level" envconfig:"LEVEL"`
	Format string `toml:"format" envconfig:"FORMAT"`
}

type ChainConfig struct {
	// Backend: ethereum (JSON-RPC real) | memory (simulador para dev/tests).
	Backend string `toml:"backend" envconfig:"BACKEND"`

	// ProviderURL es el provider "inyectado" por el host. Si está vacío se usa DefaultURL.
	ProviderURL string `toml:"provider_url" envconfig:"PROVIDER_URL"`
	DefaultURL  string `toml:"default_url" envconfig:"DEFAULT_URL"`

	// ArtifactSource: directorio local o base URL http(s) donde vive <ContractName>.json.
	ArtifactSource string `toml:"artifact_source" envconfig:"ARTIFACT_SOURCE"`
	ContractName   string `toml:"contract_name" envconfig:"CONTRACT_NAME"`

	ReceiptPoll time.Duration `toml:"receipt_poll" envconfig:"RECEIPT_POLL"`

	// Accounts solo aplica al backend memory.
	Accounts []string `toml:"accounts" envconfig:"ACCOUNTS"`
}

type ContentConfig struct {
	// Backend: ipfs | memory.
	Backend    string `toml:"backend" envconfig:"BACKEND"`
	APIURL     string `toml:"api_url" envconfig:"API_URL"`
	GatewayURL string `toml:"gateway_url" envconfig:"GATEWAY_URL"`
}

type SyncConfig struct {
	Concurrency int `toml:"concurrency" envconfig:"CONCURRENCY"`

	// RefreshSchedule es una expresión cron (ej: "@every 30s"). Vacío = sin refresh periódico.
	RefreshSchedule string `toml:"refresh_schedule" envconfig:"REFRESH_SCHEDULE"`
}

func Default() Config {
	return Config{
		App:  "cow-registry",
		Port: "8080",
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Chain: ChainConfig{
			Backend:        BackendEthereum,
			DefaultURL:     DefaultProviderURL,
			ArtifactSource: "web",
			ContractName:   DefaultContractName,
			ReceiptPoll:    time.Second,
		},
		Content: ContentConfig{
			Backend:    BackendIPFS,
			APIURL:     DefaultIPFSAPI,
			GatewayURL: DefaultGatewayURL,
		},
		Sync: SyncConfig{
			Concurrency: 8,
		},
	}
}

// Load arma la config final. path vacío => CONFIG_FILE o DefaultConfigFile.
// Si el archivo no existe se ignora (modo dev sin archivo).
func Load(path string) (Config, error) {
	cfg := Default()

	if strings.TrimSpace(path) == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if strings.TrimSpace(path) == "" {
		path = DefaultConfigFile
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: expand path: %w", err)
	}

	if _, err := toml.DecodeFile(expanded, &cfg); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: decode %s: %w", expanded, err)
	}

	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: env overrides: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Chain.Backend {
	case BackendEthereum, BackendMemory:
	default:
		return fmt.Errorf("config: unknown chain backend %q", c.Chain.Backend)
	}
	switch c.Content.Backend {
	case BackendIPFS, BackendMemory:
	default:
		return fmt.Errorf("config: unknown ipfs backend %q", c.Content.Backend)
	}
	if strings.TrimSpace(c.Chain.ContractName) == "" {
		return errors.New("config: contract name required")
	}
	return nil
}

// Addr devuelve la dirección de escucha HTTP (":PORT").
func (c Config) Addr() string {
	p := strings.TrimSpace(c.Port)
	if p == "" {
		p = "8080"
	}
	if strings.HasPrefix(p, ":") {
		return p
	}
	return ":" + p
}
