// Package services provides shared error classification helpers for the
// components that talk to the Plex server.
package services
