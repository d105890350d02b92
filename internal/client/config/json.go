package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/fingergate/internal/flagx"
	"github.com/dmitrijs2005/fingergate/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Zero values
// leave the corresponding Config field untouched.
type JsonConfig struct {
	DatabaseDriver   string         `json:"database_driver"`
	DatabaseDSN      string         `json:"database_dsn"`
	DataBackend      string         `json:"data_backend"`
	DataDir          string         `json:"data_dir"`
	PasswordHasher   string         `json:"password_hasher"`
	BiometricSensor  string         `json:"biometric_sensor"`
	BiometricCommand string         `json:"biometric_command"`
	BiometricTimeout timex.Duration `json:"biometric_timeout"`
	Language         string         `json:"language"`
	LogLevel         string         `json:"log_level"`
	S3Bucket         string         `json:"s3_bucket"`
	S3Region         string         `json:"s3_region"`
	S3BaseEndpoint   string         `json:"s3_base_endpoint"`
	S3AccessKey      string         `json:"s3_access_key"`
	S3SecretKey      string         `json:"s3_secret_key"`
}

// parseJson overlays cfg with the JSON file named by -c/-config, if any.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	overlay(&cfg.DatabaseDriver, jc.DatabaseDriver)
	overlay(&cfg.DatabaseDSN, jc.DatabaseDSN)
	overlay(&cfg.DataBackend, jc.DataBackend)
	overlay(&cfg.DataDir, jc.DataDir)
	overlay(&cfg.PasswordHasher, jc.PasswordHasher)
	overlay(&cfg.BiometricSensor, jc.BiometricSensor)
	overlay(&cfg.BiometricCommand, jc.BiometricCommand)
	overlay(&cfg.Language, jc.Language)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.S3Bucket, jc.S3Bucket)
	overlay(&cfg.S3Region, jc.S3Region)
	overlay(&cfg.S3BaseEndpoint, jc.S3BaseEndpoint)
	overlay(&cfg.S3AccessKey, jc.S3AccessKey)
	overlay(&cfg.S3SecretKey, jc.S3SecretKey)
	if jc.BiometricTimeout.Duration > 0 {
		cfg.BiometricTimeout = jc.BiometricTimeout.Duration
	}
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
