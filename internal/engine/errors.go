package engine

// unsupportedError signals that the environment lacks inference support.
type unsupportedError struct{}

func (unsupportedError) Error() string { return "inference is not supported in this environment" }

// ErrUnsupported is returned when the capability probe reports no inference
// support.
func ErrUnsupported() error { return unsupportedError{} }

// IsUnsupported reports whether err indicates a structurally missing
// inference capability.
func IsUnsupported(err error) bool {
	_, ok := err.(unsupportedError)
	return ok
}

// notReadyError signals a generation attempt while the engine is not Ready.
// message carries the manager's own failure message when it is in Failed.
type notReadyError struct{ message string }

func (e notReadyError) Error() string {
	if e.message != "" {
		return e.message
	}
	return "engine is not ready"
}

func ErrNotReady(message string) error { return notReadyError{message: message} }

// IsNotReady reports whether err indicates the engine was not Ready.
func IsNotReady(err error) bool {
	_, ok := err.(notReadyError)
	return ok
}

// generationError wraps a backend failure during generation.
type generationError struct{ detail string }

func (e generationError) Error() string {
	if e.detail == "" {
		return "generation failed"
	}
	return e.detail
}

func errGeneration(detail string) error { return generationError{detail: detail} }

// IsGenerationFailed reports whether err came from the backend's generate
// call rather than from readiness gating.
func IsGenerationFailed(err error) bool {
	_, ok := err.(generationError)
	return ok
}
