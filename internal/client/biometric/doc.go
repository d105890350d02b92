// Package biometric abstracts an external fingerprint capability.
//
// A Sensor reports its availability synchronously through Probe and performs
// one scan at a time through Scan. The Adapter turns a scan into a Challenge:
// a one-shot future that resolves exactly once, within the adapter's timeout,
// whether or not the sensor honors cancellation.
//
// Outcomes:
//
//	StartChallenge error common.ErrBiometricUnavailable  no capability, nothing issued
//	Challenge.Result() == nil                            a registered fingerprint matched
//	Challenge.Result() wraps common.ErrBiometricFailed   issued but failed, canceled or timed out
package biometric
