package config

import (
	"log"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	IsDebug  bool   `yaml:"is_debug" env:"PADMON_DEBUG" env-default:"false"`
	TimeZone string `yaml:"time_zone" env-default:"Asia/Makassar"`
	Listen   struct {
		BindIP   string `yaml:"bind_ip" env-default:"0.0.0.0"`
		Port     string `yaml:"port" env-default:"5000"`
		TLS      bool   `yaml:"tls_enabled" env-default:"false"`
		CertFile string `yaml:"cert_file" env-default:""`
		KeyFile  string `yaml:"key_file" env-default:""`
	} `yaml:"listen"`
	Mongo struct {
		Enabled  bool   `yaml:"enabled" env:"MONGO_ENABLED" env-default:"false"`
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"localhost"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:""`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:""`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"padmon"`
	} `yaml:"mongo"`
	Telegram struct {
		Enabled bool   `yaml:"enabled" env-default:"false"`
		ApiKey  string `yaml:"api_key" env:"TELEGRAM_API_KEY" env-default:""`
	} `yaml:"telegram"`
	Imagery struct {
		Enabled    bool   `yaml:"enabled" env-default:"false"`
		Url        string `yaml:"url" env:"IMAGERY_URL" env-default:""`
		ApiKey     string `yaml:"api_key" env:"IMAGERY_API_KEY" env-default:""`
		TimeoutSec int    `yaml:"timeout_sec" env-default:"60"`
	} `yaml:"imagery"`
	Validator struct {
		Enabled    bool   `yaml:"enabled" env-default:"false"`
		Url        string `yaml:"url" env:"VALIDATOR_URL" env-default:""`
		TimeoutSec int    `yaml:"timeout_sec" env-default:"30"`
	} `yaml:"validator"`
	Overpass struct {
		Enabled    bool   `yaml:"enabled" env-default:"false"`
		Url        string `yaml:"url" env-default:"https://overpass-api.de/api/interpreter"`
		TimeoutSec int    `yaml:"timeout_sec" env-default:"30"`
	} `yaml:"overpass"`
	Assessment struct {
		File string `yaml:"file" env:"ASSESSMENT_FILE" env-default:""`
	} `yaml:"assessment"`
	Boundary struct {
		GeoJSONFile string `yaml:"geojson_file" env-default:"5271sls.geojson"`
	} `yaml:"boundary"`
}

var instance *Config
var once sync.Once

func GetConfig() (*Config, error) {
	var err error
	once.Do(func() {
		log.Println("reading config")
		instance = &Config{}
		if err = cleanenv.ReadConfig("config.yml", instance); err != nil {
			desc, _ := cleanenv.GetDescription(instance, nil)
			log.Println(desc)
			log.Println(err)
			instance = nil
		}
	})
	return instance, err
}
