// Package logging configures zerolog for reviewdeck and carries loggers and trace IDs
// through context.Context.
//
// Every command gets a trace ID (a ULID unless one is already present) which a hook stamps
// onto each event logged with .Ctx(ctx). Components derive sub-loggers with ComponentLogger
// and retrieve the request logger with FromContext.
package logging
