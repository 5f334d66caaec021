package playback

// Compile-time interface check.
var _ Backend = (*Unsupported)(nil)

// Unsupported is the synthesis backend for environments without audio
// output. Probe reports false; translation proceeds silently.
type Unsupported struct{}

func (Unsupported) Probe() bool                                { return false }
func (Unsupported) Speak(text string, p Params, h Handlers) error { return ErrUnsupported() }
func (Unsupported) CancelAll()                                 {}
