package engine

import "context"

// Generate produces a completion. Valid only when Ready; otherwise it fails
// with a not-ready error carrying the manager's own failure message so
// callers can surface it verbatim. Backend failures come back as
// generation errors with the backend's detail.
func (m *Manager) Generate(ctx context.Context, msgs []Message, params GenParams) (string, error) {
	m.mu.RLock()
	state := m.state
	message := m.message
	sess := m.session
	m.mu.RUnlock()

	if state != StateReady || sess == nil {
		if state == StateFailed {
			return "", ErrNotReady(message)
		}
		return "", ErrNotReady("")
	}

	out, err := sess.Generate(ctx, msgs, params)
	if err != nil {
		return "", errGeneration(err.Error())
	}
	return out, nil
}
