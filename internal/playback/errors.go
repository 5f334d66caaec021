package playback

// unsupportedError signals the environment has no speech synthesis.
type unsupportedError struct{}

func (unsupportedError) Error() string {
	return "speech playback is not supported in this environment"
}

func ErrUnsupported() error { return unsupportedError{} }

// IsUnsupported reports whether err indicates missing synthesis support.
func IsUnsupported(err error) bool {
	_, ok := err.(unsupportedError)
	return ok
}
