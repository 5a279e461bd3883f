package sweep

import (
	"context"
	"testing"
)

func scanCatalog(t *testing.T, conn *fakeConnection) []LibraryScan {
	t.Helper()
	scans, err := NewScanner(conn, defaultPolicy(t), "", nil).Scan(context.Background())
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	return scans
}

func TestBuildPlanTotals(t *testing.T) {
	plan := BuildPlan(scanCatalog(t, newCatalog()))

	if plan.TotalCollections != 3 {
		t.Errorf("total collections: got %d, want 3", plan.TotalCollections)
	}
	if plan.KeepCount != 1 {
		t.Errorf("keep count: got %d, want 1", plan.KeepCount)
	}
	if plan.RemoveCount != 2 {
		t.Errorf("remove count: got %d, want 2", plan.RemoveCount)
	}
	if plan.SkippedLibraries != 0 {
		t.Errorf("skipped libraries: got %d, want 0", plan.SkippedLibraries)
	}

	movies := plan.Libraries[0]
	if len(movies.Keep) != 1 || len(movies.Remove) != 1 {
		t.Fatalf("movies partition: keep=%d remove=%d", len(movies.Keep), len(movies.Remove))
	}
	if movies.Total() != 2 {
		t.Errorf("movies total: got %d, want 2", movies.Total())
	}
}

func TestBuildPlanExcludesFailedLibrariesFromTotals(t *testing.T) {
	conn := newCatalog()
	conn.collectionsErr["1"] = errFake
	plan := BuildPlan(scanCatalog(t, conn))

	if plan.SkippedLibraries != 1 {
		t.Fatalf("skipped libraries: got %d, want 1", plan.SkippedLibraries)
	}
	if plan.TotalCollections != 1 || plan.RemoveCount != 1 || plan.KeepCount != 0 {
		t.Fatalf("totals should reflect only scanned libraries: %+v", plan)
	}
	if plan.Libraries[0].ScanErr == nil {
		t.Fatal("failed library should carry its scan error")
	}
}

func TestDryRunPlanIsIdempotent(t *testing.T) {
	conn := newCatalog()
	first := BuildPlan(scanCatalog(t, conn))
	second := BuildPlan(scanCatalog(t, conn))

	if first.TotalCollections != second.TotalCollections ||
		first.KeepCount != second.KeepCount ||
		first.RemoveCount != second.RemoveCount {
		t.Fatalf("repeated dry-run scans diverged: %+v vs %+v", first, second)
	}
	if len(conn.deleted) != 0 {
		t.Fatalf("planning must not mutate the catalog, deleted %v", conn.deleted)
	}
}
