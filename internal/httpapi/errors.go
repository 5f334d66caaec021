package httpapi

import (
	"encoding/json"
	"net/http"

	"plainspeak/internal/app"
	"plainspeak/internal/capture"
	"plainspeak/internal/engine"
	"plainspeak/internal/playback"
	"plainspeak/internal/translate"
)

// statusForError maps well-known component errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case translate.IsEmptyInput(err),
		translate.IsUnknownMode(err),
		translate.IsEmptyGeneration(err),
		app.IsNothingToReplay(err):
		return http.StatusBadRequest
	case translate.IsEngineNotReady(err):
		return http.StatusServiceUnavailable
	case translate.IsAlreadyInFlight(err):
		return http.StatusTooManyRequests
	case engine.IsUnsupported(err),
		capture.IsUnsupported(err),
		playback.IsUnsupported(err):
		return http.StatusNotImplemented
	case translate.IsGenerationFailed(err):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// writeServiceError maps err to a status and writes the JSON error payload.
func writeServiceError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusTooManyRequests {
		IncrementBusyRejections("translation_in_flight")
	}
	writeJSONError(w, status, err.Error())
}

// writeJSONError writes a consistent JSON error payload.
func writeJSONError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": msg,
		"code":  status,
	})
}
