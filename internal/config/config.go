package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env      string         `yaml:"env" env-default:"local"`
	HTTP     HTTPConfig     `yaml:"http"`
	Postgres PostgresConfig `yaml:"postgres"`
	Redis    RedisConfig    `yaml:"redis"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Cache    CacheConfig    `yaml:"cache"`
	Session  SessionConfig  `yaml:"session"`
	Locale   LocaleConfig   `yaml:"locale"`
}

type HTTPConfig struct {
	Port int `yaml:"port" env-default:"8080"`
}

type PostgresConfig struct {
	Port    string `yaml:"port"`
	Host    string `yaml:"host"`
	DbName  string `yaml:"db_name"`
	User    string `yaml:"user"`
	Pwd     string `yaml:"password"`
	SslMode string `yaml:"sslmode"`
}

// RedisConfig enables the durable cache store. With Enabled false the
// storefront runs on the in-process store only.
type RedisConfig struct {
	Enabled  bool   `yaml:"enabled" env-default:"false"`
	Addr     string `yaml:"addr" env-default:"localhost:6379"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" env-default:"0"`
}

type KafkaConfig struct {
	BrokerList        []string `yaml:"broker_list"`
	OrderEventTopic   string   `yaml:"order_event_topic"`
	CatalogEventTopic string   `yaml:"catalog_event_topic"`
}

// CacheConfig carries the TTL tiers. Catalog structure changes rarely,
// so categories and flowers keep long TTLs; bouquet listings are the
// most volatile tier.
type CacheConfig struct {
	CategoriesTTL time.Duration `yaml:"categories_ttl" env-default:"24h"`
	FlowersTTL    time.Duration `yaml:"flowers_ttl" env-default:"24h"`
	BouquetTTL    time.Duration `yaml:"bouquet_ttl" env-default:"2h"`
	FeaturedTTL   time.Duration `yaml:"featured_ttl" env-default:"3h"`
	ListingTTL    time.Duration `yaml:"listing_ttl" env-default:"1h"`
}

type SessionConfig struct {
	CartTTL  time.Duration `yaml:"cart_ttl" env-default:"24h"`
	MaxCarts int           `yaml:"max_carts" env-default:"16384"`
}

type LocaleConfig struct {
	Default   string   `yaml:"default" env-default:"ru"`
	Supported []string `yaml:"supported"`
}

func (lc LocaleConfig) IsSupported(locale string) bool {
	for _, supported := range lc.Supported {
		if supported == locale {
			return true
		}
	}
	return false
}

func InitConfig() Config {
	configPath := getConfigPath()

	if configPath == "" {
		panic("config path is not set")
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("failed to read config: " + err.Error())
	}

	if len(cfg.Locale.Supported) == 0 {
		cfg.Locale.Supported = []string{"ru", "en", "kk"}
	}

	return cfg
}

func getConfigPath() string {
	var path string

	flag.StringVar(&path, "config", "", "path to config file")
	flag.Parse()

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	return path
}
