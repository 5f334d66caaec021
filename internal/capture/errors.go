package capture

// unsupportedError signals the environment has no speech-capture support.
type unsupportedError struct{}

func (unsupportedError) Error() string {
	return "speech capture is not supported in this environment"
}

func ErrUnsupported() error { return unsupportedError{} }

// IsUnsupported reports whether err indicates missing capture support.
func IsUnsupported(err error) bool {
	_, ok := err.(unsupportedError)
	return ok
}

// captureError signals a microphone or permission failure.
type captureError struct{ detail string }

func (e captureError) Error() string { return e.detail }

func errCapture(detail string) error { return captureError{detail: detail} }

// IsCaptureError reports whether err is a recoverable capture failure.
func IsCaptureError(err error) bool {
	_, ok := err.(captureError)
	return ok
}
