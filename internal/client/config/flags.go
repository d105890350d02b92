package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/fingergate/internal/flagx"
)

var knownFlags = []string{"-driver", "-d", "-b", "-data", "-hash", "-sensor", "-sensor-cmd", "-t", "-lang", "-log"}

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags:
//
//	-driver string      database driver: sqlite | postgres
//	-d string           database DSN (file path for sqlite)
//	-b string           user data backend: file | sql | s3
//	-data string        user data directory (file backend)
//	-hash string        password digest for new accounts: argon2id | sha256
//	-sensor string      biometric sensor: none | prompt | command
//	-sensor-cmd string  external verifier for the command sensor
//	-t int              biometric challenge timeout (seconds)
//	-lang string        message language: en | ar
//	-log string         log level: debug | info | warn | error
//
// Only these flags are considered; everything else in args is ignored.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("fingergate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabaseDriver, "driver", cfg.DatabaseDriver, "database driver")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "database DSN")
	fs.StringVar(&cfg.DataBackend, "b", cfg.DataBackend, "user data backend")
	fs.StringVar(&cfg.DataDir, "data", cfg.DataDir, "user data directory")
	fs.StringVar(&cfg.PasswordHasher, "hash", cfg.PasswordHasher, "password digest")
	fs.StringVar(&cfg.BiometricSensor, "sensor", cfg.BiometricSensor, "biometric sensor")
	fs.StringVar(&cfg.BiometricCommand, "sensor-cmd", cfg.BiometricCommand, "biometric verifier command")
	timeout := fs.Int("t", int(cfg.BiometricTimeout.Seconds()), "biometric timeout (in seconds)")
	fs.StringVar(&cfg.Language, "lang", cfg.Language, "message language")
	fs.StringVar(&cfg.LogLevel, "log", cfg.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, knownFlags)); err != nil {
		return err
	}

	cfg.BiometricTimeout = time.Duration(*timeout) * time.Second
	return nil
}
