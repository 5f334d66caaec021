package capture

// Compile-time interface check.
var _ Backend = (*Unsupported)(nil)

// Unsupported is the capture backend for environments with no microphone
// access (headless daemons). Probe reports false, so callers degrade to
// typed input instead of failing at Start.
type Unsupported struct{}

func (Unsupported) Probe() bool             { return false }
func (Unsupported) Start(h Handlers) error  { return ErrUnsupported() }
func (Unsupported) Stop()                   {}
