// Package history persists run summaries in a local SQLite database so
// operators have an audit trail for destructive runs.
package history
