package biometric

import (
	"context"
	"errors"
)

// Availability is the synchronous outcome of a capability probe.
type Availability int

const (
	Unavailable Availability = iota
	Available
)

func (a Availability) String() string {
	if a == Available {
		return "available"
	}
	return "unavailable"
}

// ErrNoMatch is returned by sensors when a scan completed without a match.
var ErrNoMatch = errors.New("fingerprint did not match")

// Sensor is the platform fingerprint capability.
//
// Probe must not block for long and must not fail; absence of a capability is
// reported as Unavailable. Scan blocks until the user is verified (nil), the
// scan fails, or ctx is done.
type Sensor interface {
	Probe(ctx context.Context) Availability
	Scan(ctx context.Context) error
}
