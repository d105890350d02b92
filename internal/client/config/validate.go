package config

import (
	"fmt"
	"slices"
)

// Validate rejects values no component knows how to handle.
func (c *Config) Validate() error {
	if !slices.Contains([]string{DriverSQLite, DriverPostgres}, c.DatabaseDriver) {
		return fmt.Errorf("unsupported database driver %q", c.DatabaseDriver)
	}
	if c.DatabaseDSN == "" {
		return fmt.Errorf("database DSN is empty")
	}
	if !slices.Contains([]string{BackendFile, BackendSQL, BackendS3}, c.DataBackend) {
		return fmt.Errorf("unsupported data backend %q", c.DataBackend)
	}
	if c.DataBackend == BackendFile && c.DataDir == "" {
		return fmt.Errorf("data dir is empty")
	}
	if c.DataBackend == BackendS3 && c.S3Bucket == "" {
		return fmt.Errorf("s3 bucket is empty")
	}
	if !slices.Contains([]string{SensorNone, SensorPrompt, SensorCommand}, c.BiometricSensor) {
		return fmt.Errorf("unsupported biometric sensor %q", c.BiometricSensor)
	}
	if c.BiometricTimeout <= 0 {
		return fmt.Errorf("biometric timeout must be positive")
	}
	return nil
}
