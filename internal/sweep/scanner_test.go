package sweep

import (
	"context"
	"errors"
	"testing"

	"plexsweep/internal/policy"
	"plexsweep/internal/services"
)

func TestScanClassifiesEveryCollection(t *testing.T) {
	conn := newCatalog()
	scanner := NewScanner(conn, defaultPolicy(t), "", nil)

	scans, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(scans) != 2 {
		t.Fatalf("expected 2 library scans, got %d", len(scans))
	}

	movies := scans[0]
	if len(movies.Records) != 2 {
		t.Fatalf("expected 2 movie records, got %d", len(movies.Records))
	}
	if movies.Records[0].Collection.Title != "Favorites" || movies.Records[0].Decision != policy.Keep {
		t.Fatalf("Favorites should be kept: %+v", movies.Records[0])
	}
	if movies.Records[1].Collection.Title != "Junk" || movies.Records[1].Decision != policy.RemovalCandidate {
		t.Fatalf("Junk should be a removal candidate: %+v", movies.Records[1])
	}

	shows := scans[1]
	if len(shows.Records) != 1 || shows.Records[0].Decision != policy.RemovalCandidate {
		t.Fatalf("Box Sets should be a removal candidate: %+v", shows.Records)
	}
}

func TestScanLibrariesFailureIsFatal(t *testing.T) {
	conn := newCatalog()
	conn.librariesErr = errFake
	scanner := NewScanner(conn, defaultPolicy(t), "", nil)

	_, err := scanner.Scan(context.Background())
	if err == nil {
		t.Fatal("expected error when listing libraries fails")
	}
	if !errors.Is(err, services.ErrConnection) {
		t.Fatalf("expected connection marker, got %v", err)
	}
}

func TestScanSingleLibraryFailureIsIsolated(t *testing.T) {
	conn := newCatalog()
	conn.collectionsErr["1"] = errFake
	scanner := NewScanner(conn, defaultPolicy(t), "", nil)

	scans, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(scans) != 2 {
		t.Fatalf("expected both libraries in results, got %d", len(scans))
	}
	if scans[0].Err == nil {
		t.Fatal("Movies scan should carry the transport error")
	}
	if scans[1].Err != nil || len(scans[1].Records) != 1 {
		t.Fatalf("Shows should still be scanned: %+v", scans[1])
	}
}

func TestScanLabelFailureSkipsCollectionOnly(t *testing.T) {
	conn := newCatalog()
	conn.labelsErr["101"] = errFake
	scanner := NewScanner(conn, defaultPolicy(t), "", nil)

	scans, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	movies := scans[0]
	if len(movies.Records) != 1 || movies.Records[0].Collection.Title != "Junk" {
		t.Fatalf("expected only Junk classified, got %+v", movies.Records)
	}
}

func TestScanLibraryFilter(t *testing.T) {
	conn := newCatalog()
	scanner := NewScanner(conn, defaultPolicy(t), "movies", nil)

	scans, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(scans) != 1 || scans[0].Library.Title != "Movies" {
		t.Fatalf("filter should match Movies case-insensitively: %+v", scans)
	}
}

func TestScanLibraryFilterNoMatchIsNotFatal(t *testing.T) {
	conn := newCatalog()
	scanner := NewScanner(conn, defaultPolicy(t), "Music", nil)

	scans, err := scanner.Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if len(scans) != 0 {
		t.Fatalf("expected empty result for unmatched filter, got %+v", scans)
	}
}

func TestScanIsReadOnly(t *testing.T) {
	conn := newCatalog()
	scanner := NewScanner(conn, defaultPolicy(t), "", nil)

	if _, err := scanner.Scan(context.Background()); err != nil {
		t.Fatalf("Scan: %v", err)
	}
	if _, err := scanner.Scan(context.Background()); err != nil {
		t.Fatalf("second Scan: %v", err)
	}
	if len(conn.deleted) != 0 {
		t.Fatalf("scan must never delete, got %v", conn.deleted)
	}
}
