package config

import (
	"os"
	"time"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	BackendFile = "file"
	BackendSQL  = "sql"
	BackendS3   = "s3"

	SensorNone    = "none"
	SensorPrompt  = "prompt"
	SensorCommand = "command"
)

// Config holds runtime settings for FingerGate.
//
// Fields:
//   - DatabaseDriver / DatabaseDSN: where the account table lives.
//   - DataBackend / DataDir: where per-user data records are written.
//   - PasswordHasher: digest format for new passwords ("argon2id" or "sha256").
//   - BiometricSensor / BiometricCommand / BiometricTimeout: challenge adapter setup.
//   - Language: locale for user-facing messages ("en" or "ar").
//   - LogLevel: slog level name.
//   - S3*: object storage settings, used only when DataBackend is "s3".
type Config struct {
	DatabaseDriver   string
	DatabaseDSN      string
	DataBackend      string
	DataDir          string
	PasswordHasher   string
	BiometricSensor  string
	BiometricCommand string
	BiometricTimeout time.Duration
	Language         string
	LogLevel         string

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// LoadDefaults populates c with defaults matching the legacy desktop
// layout: users.db and user_data/ in the working directory.
func (c *Config) LoadDefaults() {
	c.DatabaseDriver = DriverSQLite
	c.DatabaseDSN = "users.db"
	c.DataBackend = BackendFile
	c.DataDir = "user_data"
	c.PasswordHasher = "argon2id"
	c.BiometricSensor = SensorPrompt
	c.BiometricCommand = "fprintd-verify"
	c.BiometricTimeout = 30 * time.Second
	c.Language = "en"
	c.LogLevel = "info"

	c.S3Bucket = "fingergate"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// Load builds a Config from defaults, then the optional JSON file, then
// command-line flags. Later sources take precedence over earlier ones.
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfig is Load over os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
