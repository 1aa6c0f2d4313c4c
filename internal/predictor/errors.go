package predictor

import "errors"

// MsgModelUnavailable is returned to clients while no artifact is loaded.
const MsgModelUnavailable = "Modelo não foi carregado. Execute o script de treinamento."

// modelUnavailableError signals that no artifact is loaded so the HTTP layer can
// answer 503 instead of 400.
type modelUnavailableError struct{ msg string }

func (e modelUnavailableError) Error() string { return e.msg }

// ErrModelUnavailable constructs a modelUnavailableError.
func ErrModelUnavailable(msg string) error { return modelUnavailableError{msg: msg} }

// IsModelUnavailable reports whether err indicates a missing artifact (return 503).
func IsModelUnavailable(err error) bool {
	var e modelUnavailableError
	return errors.As(err, &e)
}

// invalidInputError wraps anything that went wrong while encoding or predicting.
type invalidInputError struct{ err error }

func (e invalidInputError) Error() string { return e.err.Error() }
func (e invalidInputError) Unwrap() error { return e.err }

// ErrInvalidInput wraps err as an invalid-input failure.
func ErrInvalidInput(err error) error { return invalidInputError{err: err} }

// IsInvalidInput reports whether err indicates bad input (return 400).
func IsInvalidInput(err error) bool {
	var e invalidInputError
	return errors.As(err, &e)
}
