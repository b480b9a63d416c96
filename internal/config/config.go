// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек приложения.
type Config struct {
	Env                     string `yaml:"env"`
	StorageConnectionString string `yaml:"storage_connection_string"`
	MigrationsPath          string `yaml:"migrations_path"`
	RabbitURL               string `yaml:"rabbit_url"`
	MongoConnection         `yaml:"mongo_connection"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	Geocoder                `yaml:"geocoder"`
	Media                   `yaml:"media"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}

// MongoConnection структура для настройки подключения к MongoDB,
// где хранятся события. ConnectTimeout ограничивает установление
// соединения при старте процесса.
type MongoConnection struct {
	URI            string        `yaml:"uri"`
	Database       string        `yaml:"database"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
}

// RedisConnection структура для настройки подключения к redis.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis"`
	Password     string        `yaml:"password"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries"`
	DialTimeout  time.Duration `yaml:"dial_timeout"`
	TimeoutRedis time.Duration `yaml:"timeoutredis"`
}

// Geocoder структура с учётными данными внешнего сервиса геокодирования.
type Geocoder struct {
	APIKey string `yaml:"api_key"`
	APIURL string `yaml:"api_url"`
}

// Media структура с настройками внешнего хостинга изображений.
type Media struct {
	UploadURL    string `yaml:"upload_url"`
	UploadPreset string `yaml:"upload_preset"`
}

// MustLoad загружает конфиг из файла, указанного в CONFIG_PATH.
// Падает, если файл отсутствует или не читается.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "./migrations"
	}
	if cfg.MongoConnection.ConnectTimeout == 0 {
		cfg.MongoConnection.ConnectTimeout = 2 * time.Second
	}
	return &cfg
}
