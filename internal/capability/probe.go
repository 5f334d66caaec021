// Package capability detects optional environment features once at startup.
// The probe is a pure query: components consult the resulting Set instead of
// discovering missing features through failures.
package capability

// Prober reports whether an optional environment feature is available.
type Prober interface {
	Probe() bool
}

// Set holds the features detected at startup.
type Set struct {
	Inference bool
	Capture   bool
	Synthesis bool
}

// Detect probes the three collaborators. A nil prober counts as unavailable.
func Detect(inference, capture, synthesis Prober) Set {
	return Set{
		Inference: available(inference),
		Capture:   available(capture),
		Synthesis: available(synthesis),
	}
}

func available(p Prober) bool { return p != nil && p.Probe() }
