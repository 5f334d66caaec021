package events

// Event represents a component lifecycle event.
// Minimal and stable: component + name and optional fields via key/values.
type Event struct {
	Component string
	Name      string
	Fields    map[string]any
}

// Publisher receives events from the orchestration components. Implementations
// should be lightweight and non-blocking; Publish must not panic.
type Publisher interface {
	Publish(Event)
}

// NoopPublisher is the default; it drops events.
type NoopPublisher struct{}

func (NoopPublisher) Publish(Event) {}
