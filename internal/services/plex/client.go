package plex

import (
	"context"
	"errors"
)

// ErrUnauthorized indicates the server rejected the configured token.
var ErrUnauthorized = errors.New("plex authorization rejected")

// ServerIdentity describes the server a connection points at.
type ServerIdentity struct {
	Name              string
	Version           string
	MachineIdentifier string
}

// Library is one section of the server catalog. Immutable for the run's
// duration.
type Library struct {
	Key   string
	Title string
	Type  string
}

// Collection is one collection object inside a library.
type Collection struct {
	RatingKey  string
	Title      string
	ChildCount int
	LibraryKey string
}

// Connection is the capability surface the sweep engine consumes. The only
// destructive operation is Delete; everything else is read-only.
type Connection interface {
	Identity(ctx context.Context) (ServerIdentity, error)
	Libraries(ctx context.Context) ([]Library, error)
	Collections(ctx context.Context, lib Library) ([]Collection, error)
	Labels(ctx context.Context, col Collection) ([]string, error)
	Delete(ctx context.Context, col Collection) error
}
