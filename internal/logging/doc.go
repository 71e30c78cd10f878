// Package logging builds slog loggers and shared attribute conventions.
//
// Every log line that influences nothing but diagnostics lives behind this
// package: the decision engine treats logging as a side channel, so handlers
// here never fail a caller. Field keys are standardized (component,
// event_type, error_hint, impact, session_id) so console and JSON output stay
// greppable across the CLI and any embedding resolver.
package logging
