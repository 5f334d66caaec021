// Package engine owns the lifecycle of the text-generation backend. It is
// structured into small files by concern:
//
//   - types.go: lifecycle states, read-only Snapshot projection.
//   - backend.go: Backend/Session contract over concrete runtimes.
//   - manager.go: Manager type, constructor, snapshot accessors.
//   - acquire.go: acquisition, retry, progress tracking, stall watchdog.
//   - generate.go: generation entry point, readiness gating.
//   - errors.go: typed errors and predicates.
//   - metrics.go: Prometheus counters.
//
// Backends:
//
//   - Local in-process llama.cpp (backend_llama.go, build tag 'llama';
//     no-CGO stub in backend_llama_stub.go reports the capability as
//     unavailable).
//   - Remote OpenAI-compatible chat-completions endpoint
//     (backend_openai.go).
//
// Concurrency: every acquisition attempt carries a generation token. Late
// callbacks from an abandoned or retried attempt compare their token against
// the current one and are discarded, so a fast retry can never be overwritten
// by a stale result. All state is read through Snapshot(), which is taken
// under one lock and therefore never tears across fields.
package engine
