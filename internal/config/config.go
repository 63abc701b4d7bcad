package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Config is the register configuration. MySQLDSN and RedisAddr are
// optional: without them the journal is skipped and the sequence counter is
// process-local.
type Config struct {
	ListenAddr    string `yaml:"listen_addr"`
	TaxRate       string `yaml:"tax_rate"`
	InventoryPath string `yaml:"inventory_path"`
	ReceiptDir    string `yaml:"receipt_dir"`
	Workers       int    `yaml:"workers"`
	QueueSize     int    `yaml:"queue_size"`
	MySQLDSN      string `yaml:"mysql_dsn"`
	RedisAddr     string `yaml:"redis_addr"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ListenAddr:    ":8080",
		TaxRate:       "0.065",
		InventoryPath: "assets/inventory.txt",
		ReceiptDir:    "receipts",
		Workers:       4,
		QueueSize:     256,
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if _, err := c.ParsedTaxRate(); err != nil {
		return err
	}
	if c.Workers <= 0 {
		return fmt.Errorf("workers must be positive, got %d", c.Workers)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("queue_size must be positive, got %d", c.QueueSize)
	}
	return nil
}

// ParsedTaxRate returns the tax rate as a decimal, e.g. "0.065".
func (c Config) ParsedTaxRate() (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(c.TaxRate)
	if err != nil {
		return decimal.Zero, fmt.Errorf("tax_rate %q is not a decimal", c.TaxRate)
	}
	if rate.IsNegative() {
		return decimal.Zero, fmt.Errorf("tax_rate %q is negative", c.TaxRate)
	}
	return rate, nil
}
