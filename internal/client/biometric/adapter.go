package biometric

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/fingergate/internal/common"
	"github.com/dmitrijs2005/fingergate/internal/logging"
)

const DefaultTimeout = 30 * time.Second

// Adapter issues challenges against a Sensor.
type Adapter struct {
	sensor  Sensor
	timeout time.Duration
	log     logging.Logger
}

// NewAdapter returns an Adapter. A non-positive timeout selects
// DefaultTimeout.
func NewAdapter(sensor Sensor, timeout time.Duration, log logging.Logger) *Adapter {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if log == nil {
		log = logging.NewNop()
	}
	return &Adapter{sensor: sensor, timeout: timeout, log: log}
}

// Probe reports whether the capability is present right now.
func (a *Adapter) Probe(ctx context.Context) Availability {
	return a.sensor.Probe(ctx)
}

// StartChallenge issues one challenge. If the capability is absent it returns
// common.ErrBiometricUnavailable and issues nothing.
func (a *Adapter) StartChallenge(ctx context.Context) (*Challenge, error) {
	if a.sensor.Probe(ctx) != Available {
		a.log.Debug(ctx, "biometric capability unavailable")
		return nil, common.ErrBiometricUnavailable
	}

	scanCtx, cancel := context.WithTimeout(ctx, a.timeout)
	c := newChallenge(cancel)

	scanned := make(chan error, 1)
	go func() {
		scanned <- a.sensor.Scan(scanCtx)
	}()

	go func() {
		var err error
		select {
		case err = <-scanned:
			err = classify(err)
		case <-scanCtx.Done():
			err = failed(scanCtx.Err())
		}
		if c.resolve(err) {
			a.log.Debug(ctx, "biometric challenge resolved", "ok", err == nil)
		}
	}()

	a.log.Debug(ctx, "biometric challenge issued", "timeout", a.timeout)
	return c, nil
}

func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, common.ErrBiometricUnavailable), errors.Is(err, common.ErrBiometricFailed):
		return err
	default:
		return failed(err)
	}
}

func failed(cause error) error {
	return fmt.Errorf("%w: %w", common.ErrBiometricFailed, cause)
}
