// Package config предоставялет структуры и функцию для парсинга и загрузки конфига
package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env-default:"./migrations"`
	DumpPath                string `yaml:"dump_path" env:"DUMP_PATH"`
	HTTPServer              `yaml:"http_server"`
	RedisConnection         `yaml:"redis_connection"`
	RabbitMQ                `yaml:"rabbitmq"`
	Users                   `yaml:"users"`
	Cart                    `yaml:"cart"`
}

// HTTPServer структура для настройки сервера
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env:"HTTP_ADDRESS" env-default:":8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"4s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес отключает кеш.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
	CacheTTL     time.Duration `yaml:"cache_ttl" env-default:"1h"`
}

// RabbitMQ структура для публикации событий о пользователях.
// Пустой URL отключает публикацию.
type RabbitMQ struct {
	URL        string        `yaml:"url" env:"RABBITMQ_URL"`
	Exchange   string        `yaml:"exchange" env-default:"users"`
	Retries    int           `yaml:"retries" env-default:"5"`
	RetryDelay time.Duration `yaml:"retry_delay" env-default:"2s"`
}

// Users настройки сервиса пользователей
type Users struct {
	SeedDemoData     bool `yaml:"seed_demo_data" env:"SEED_DEMO_DATA"`
	IdempotentRemove bool `yaml:"idempotent_remove"`
}

// Cart настройки корзины. Нулевой tax_rate cleanenv считает незаданным
// и подставляет значение по умолчанию, поэтому налог отключается флагом.
type Cart struct {
	TaxRate     float64 `yaml:"tax_rate" env-default:"0.07"`
	TaxDisabled bool    `yaml:"tax_disabled" env:"CART_TAX_DISABLED"`
}

// EffectiveTaxRate ставка налога с учётом TaxDisabled.
func (c Cart) EffectiveTaxRate() float64 {
	if c.TaxDisabled {
		return 0
	}
	return c.TaxRate
}

// Load читает конфиг из файла по указанному пути.
func Load(configPath string) (*Config, error) {
	const op = "config.Load"

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: file %s does not exist", op, configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &cfg, nil
}

// MustLoad функция для загрузки конфига по пути из CONFIG_PATH, завершает процесс при ошибке
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"Env: %s\n"+
			"StorageConnectionString: %s\n"+
			"MigrationsPath: %s\n"+
			"DumpPath: %s\n"+
			"HTTPServer:\n"+
			"  Address: %s\n"+
			"  Timeout: %s\n"+
			"  IdleTimeout: %s\n"+
			"RedisConnection:\n"+
			"  Addr: %s\n"+
			"  DB: %d\n"+
			"  CacheTTL: %s\n"+
			"RabbitMQ:\n"+
			"  Exchange: %s\n"+
			"Users:\n"+
			"  SeedDemoData: %t\n"+
			"  IdempotentRemove: %t\n"+
			"Cart:\n"+
			"  TaxRate: %.2f\n"+
			"  TaxDisabled: %t\n",
		c.Env,
		maskDSN(c.StorageConnectionString),
		c.MigrationsPath,
		c.DumpPath,
		c.AddressHTTP,
		c.TimeoutHTTP,
		c.IdleTimeout,
		c.AddressRedis,
		c.DB,
		c.CacheTTL,
		c.Exchange,
		c.SeedDemoData,
		c.IdempotentRemove,
		c.TaxRate,
		c.TaxDisabled,
	)
}

func maskDSN(dsn string) string {
	if dsn == "" {
		return ""
	}
	return "***"
}
