package types

// TranslateRequest is the payload for POST /translate.
type TranslateRequest struct {
	// Text to rewrite in the opposite register.
	// example: We are aligning on a go-forward strategy.
	Text string `json:"text" example:"We are aligning on a go-forward strategy."`
	// Direction of the rewrite: corporate_to_plain or plain_to_corporate.
	// example: corporate_to_plain
	Mode string `json:"mode" example:"corporate_to_plain"`
}

// TranslateResponse is returned by POST /translate and embedded in /status.
type TranslateResponse struct {
	// Original input text (trimmed).
	Input string `json:"input"`
	// Generated translation.
	Output string `json:"output"`
	// Direction the translation was produced in.
	Mode string `json:"mode"`
	// Unix seconds when the translation completed.
	GeneratedAt int64 `json:"generated_at_unix"`
}

// SpeakRequest is the payload for POST /speak. An empty Text replays the
// last translated output.
type SpeakRequest struct {
	Text string `json:"text,omitempty"`
}

// ModeRequest selects the sticky translation direction for voice input.
type ModeRequest struct {
	Mode string `json:"mode" example:"plain_to_corporate"`
}

// ErrorResponse is a consistent JSON error payload.
type ErrorResponse struct {
	// Error message.
	// example: translation already in progress
	Error string `json:"error" example:"translation already in progress"`
	// HTTP status code.
	// example: 429
	Code int `json:"code" example:"429"`
}

// Capabilities reports which optional environment features were detected at
// startup.
type Capabilities struct {
	Inference bool `json:"inference"`
	Capture   bool `json:"capture"`
	Synthesis bool `json:"synthesis"`
}

// EngineStatus describes the inference engine lifecycle for /status.
type EngineStatus struct {
	// Lifecycle state: idle, loading, ready, failed.
	// example: loading
	State string `json:"state" example:"loading"`
	// Human-readable progress or failure message.
	Message string `json:"message,omitempty"`
	// One-shot stall advisory, present while a slow load is in progress.
	Hint string `json:"hint,omitempty"`
	// Load progress in [0,1]; absent while indeterminate.
	Fraction *float64 `json:"fraction,omitempty"`
}

// CaptureStatus describes the microphone session for /status.
type CaptureStatus struct {
	// listening or stopped.
	State string `json:"state" example:"stopped"`
	// Last capture failure surfaced to the user, if any.
	LastError string `json:"last_error,omitempty"`
}

// PlaybackStatus describes the speech-synthesis session for /status.
type PlaybackStatus struct {
	Speaking bool   `json:"speaking"`
	Text     string `json:"text,omitempty"`
}

// StatusResponse is returned by GET /status.
type StatusResponse struct {
	Engine       EngineStatus       `json:"engine"`
	Capture      CaptureStatus      `json:"capture"`
	Playback     PlaybackStatus     `json:"playback"`
	Capabilities Capabilities       `json:"capabilities"`
	// Sticky direction applied to voice-captured input.
	Mode string `json:"mode"`
	// True while a translation request is outstanding.
	TranslationInFlight bool `json:"translation_in_flight"`
	// Most recent completed translation, if any.
	LastResult *TranslateResponse `json:"last_result,omitempty"`
}
