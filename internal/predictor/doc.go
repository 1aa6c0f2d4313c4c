// Package predictor serves price estimates from a trained artifact. It is structured
// into small files by concern:
//
//   - predictor.go: Predictor type, constructors, Predict.
//   - errors.go: error types and helpers (IsModelUnavailable, IsInvalidInput).
//   - status.go: Status reporting for /status and /readyz.
//   - metrics.go: Prometheus counters for outcomes and unseen categories.
//
// A Predictor is built once at start-up and never mutated afterwards, so it is safe
// for unsynchronised concurrent use. Whether an artifact is loaded is fixed at
// construction; a Predictor without one answers every call with ModelUnavailable.
package predictor
