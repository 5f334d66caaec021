package events

import (
	"github.com/rs/zerolog"
)

// LogPublisher forwards every component event to a structured logger.
type LogPublisher struct {
	log zerolog.Logger
}

func NewLogPublisher(l zerolog.Logger) *LogPublisher {
	return &LogPublisher{log: l}
}

func (p *LogPublisher) Publish(e Event) {
	ev := p.log.Info().Str("component", e.Component)
	for k, v := range e.Fields {
		ev = ev.Interface(k, v)
	}
	ev.Msg(e.Name)
}
