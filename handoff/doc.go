// Package handoff provides the structured packet that carries work state
// between pipeline stages, the deterministic formatter that renders it into
// the next worker's prompt, and the coordinator that plans hand-offs and
// keeps their history.
package handoff
