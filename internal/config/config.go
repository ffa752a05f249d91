package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Address string `yaml:"address"`
	} `yaml:"server"`
	Database struct {
		Driver string `yaml:"driver"`
		DSN    string `yaml:"dsn"`
	} `yaml:"database"`
	JWT struct {
		SigningKey string `yaml:"signing_key"`
	} `yaml:"jwt"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
	S3 struct {
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Region    string `yaml:"region"`
		Endpoint  string `yaml:"endpoint"`
		Bucket    string `yaml:"bucket"`
		PublicURL string `yaml:"public_url"`
	} `yaml:"s3"`
	Firebase struct {
		CredentialsFile string `yaml:"credentials_file"`
	} `yaml:"firebase"`
}

// LoadConfig reads the YAML config and applies environment overrides, so a
// deployment can run without a config file at all.
func LoadConfig() Config {
	var cfg Config

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}
	if data, err := os.ReadFile(path); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Failed to unmarshal config data: %v", err)
		}
	}

	override(&cfg.Server.Address, "SERVER_ADDRESS")
	override(&cfg.Database.DSN, "DB_DSN")
	override(&cfg.JWT.SigningKey, "JWT_SIGNING_KEY")
	override(&cfg.Redis.Addr, "REDIS_ADDR")
	override(&cfg.Redis.Password, "REDIS_PASSWORD")
	override(&cfg.S3.AccessKey, "S3_ACCESS_KEY")
	override(&cfg.S3.SecretKey, "S3_SECRET_KEY")
	override(&cfg.S3.Region, "S3_REGION")
	override(&cfg.S3.Endpoint, "S3_ENDPOINT")
	override(&cfg.S3.Bucket, "S3_BUCKET")
	override(&cfg.S3.PublicURL, "S3_PUBLIC_URL")
	override(&cfg.Firebase.CredentialsFile, "FIREBASE_CREDENTIALS")

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "mysql"
	}
	return cfg
}

func override(dst *string, key string) {
	if val := os.Getenv(key); val != "" {
		*dst = val
	}
}
