package translate

// emptyInputError signals a blank source text.
type emptyInputError struct{}

func (emptyInputError) Error() string { return "nothing to translate" }

func ErrEmptyInput() error { return emptyInputError{} }

func IsEmptyInput(err error) bool {
	_, ok := err.(emptyInputError)
	return ok
}

// unknownModeError signals a mode outside the two supported directions.
type unknownModeError struct{ mode string }

func (e unknownModeError) Error() string { return "unknown translation mode: " + e.mode }

func IsUnknownMode(err error) bool {
	_, ok := err.(unknownModeError)
	return ok
}

// notReadyError signals the engine cannot serve the request. message carries
// the engine's own failure message when it is in Failed.
type notReadyError struct{ message string }

func (e notReadyError) Error() string {
	if e.message != "" {
		return e.message
	}
	return "engine is not ready"
}

func errNotReady(message string) error { return notReadyError{message: message} }

func IsEngineNotReady(err error) bool {
	_, ok := err.(notReadyError)
	return ok
}

// inFlightError signals a second request while one is outstanding. The
// second request is rejected, never queued or swapped in.
type inFlightError struct{}

func (inFlightError) Error() string { return "translation already in progress" }

func ErrAlreadyInFlight() error { return inFlightError{} }

func IsAlreadyInFlight(err error) bool {
	_, ok := err.(inFlightError)
	return ok
}

// emptyGenerationError signals the model returned no text.
type emptyGenerationError struct{}

func (emptyGenerationError) Error() string { return "model produced nothing" }

func IsEmptyGeneration(err error) bool {
	_, ok := err.(emptyGenerationError)
	return ok
}

// generationFailedError wraps a transport or backend failure.
type generationFailedError struct{ detail string }

func (e generationFailedError) Error() string { return e.detail }

func errGenerationFailed(detail string) error {
	if detail == "" {
		detail = "translation failed, try again"
	}
	return generationFailedError{detail: detail}
}

func IsGenerationFailed(err error) bool {
	_, ok := err.(generationFailedError)
	return ok
}
