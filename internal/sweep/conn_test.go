package sweep

import (
	"context"
	"errors"
	"testing"

	"plexsweep/internal/policy"
	"plexsweep/internal/services/plex"
)

// fakeConnection is an in-memory Connection for engine tests.
type fakeConnection struct {
	libraries      []plex.Library
	librariesErr   error
	collections    map[string][]plex.Collection
	collectionsErr map[string]error
	labels         map[string][]string
	labelsErr      map[string]error
	deleteErr      map[string]error
	deleted        []string
}

func (f *fakeConnection) Identity(context.Context) (plex.ServerIdentity, error) {
	return plex.ServerIdentity{Name: "fake", Version: "0"}, nil
}

func (f *fakeConnection) Libraries(context.Context) ([]plex.Library, error) {
	if f.librariesErr != nil {
		return nil, f.librariesErr
	}
	return f.libraries, nil
}

func (f *fakeConnection) Collections(_ context.Context, lib plex.Library) ([]plex.Collection, error) {
	if err := f.collectionsErr[lib.Key]; err != nil {
		return nil, err
	}
	return f.collections[lib.Key], nil
}

func (f *fakeConnection) Labels(_ context.Context, col plex.Collection) ([]string, error) {
	if err := f.labelsErr[col.RatingKey]; err != nil {
		return nil, err
	}
	return f.labels[col.RatingKey], nil
}

func (f *fakeConnection) Delete(_ context.Context, col plex.Collection) error {
	if err := f.deleteErr[col.RatingKey]; err != nil {
		return err
	}
	f.deleted = append(f.deleted, col.Title)
	return nil
}

var errFake = errors.New("transport failure")

// newCatalog builds the two-library catalog used across engine tests:
// Movies with Favorites (labeled "fav") and Junk (unlabeled), Shows with
// Box Sets (unlabeled).
func newCatalog() *fakeConnection {
	movies := plex.Library{Key: "1", Title: "Movies", Type: "movie"}
	shows := plex.Library{Key: "2", Title: "Shows", Type: "show"}
	return &fakeConnection{
		libraries: []plex.Library{movies, shows},
		collections: map[string][]plex.Collection{
			"1": {
				{RatingKey: "101", Title: "Favorites", ChildCount: 12, LibraryKey: "1"},
				{RatingKey: "102", Title: "Junk", ChildCount: 3, LibraryKey: "1"},
			},
			"2": {
				{RatingKey: "201", Title: "Box Sets", ChildCount: 5, LibraryKey: "2"},
			},
		},
		labels: map[string][]string{
			"101": {"fav"},
		},
		collectionsErr: map[string]error{},
		labelsErr:      map[string]error{},
		deleteErr:      map[string]error{},
	}
}

func defaultPolicy(t *testing.T) *policy.Policy {
	t.Helper()
	pol, err := policy.New(nil, nil)
	if err != nil {
		t.Fatalf("policy.New: %v", err)
	}
	return pol
}
