// Package config loads runtime configuration for FingerGate.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// Durations accept strings like "30s" or integer nanoseconds:
//
//	{
//	  "database_driver": "sqlite",
//	  "database_dsn": "users.db",
//	  "data_backend": "file",
//	  "data_dir": "user_data",
//	  "biometric_sensor": "prompt",
//	  "biometric_timeout": "30s",
//	  "language": "ar"
//	}
//
// Environment variables are not consulted.
package config
