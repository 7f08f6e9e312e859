package storage

import (
	"os"
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file was created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	first := Run{
		Scenario:   "eboracum",
		City:       "Eboracum",
		Player:     "marcus",
		Seed:       7,
		Days:       120,
		EndDate:    "day I of Maius, spring",
		Gold:       42.5,
		Population: 310,
		Outcome:    "republic",
	}
	id, err := store.SaveRun(first)
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if id <= 0 {
		t.Errorf("SaveRun() id = %d, expected positive", id)
	}

	if _, err := store.SaveRun(Run{Scenario: "eboracum", City: "Eboracum", Days: 30, Population: 250, Outcome: "bankrupt"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}
	if _, err := store.SaveRun(Run{Scenario: "eboracum_debug", City: "Eboracum", Days: 5, Population: 300, Outcome: "republic"}); err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	runs, err := store.RecentRuns("eboracum", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("Expected 2 runs, got %d", len(runs))
	}

	// Newest first
	if runs[0].Outcome != "bankrupt" {
		t.Errorf("Expected newest run first, got %+v", runs[0])
	}

	got := runs[1]
	if got.ID != id || got.Player != "marcus" || got.Seed != 7 || got.Days != 120 {
		t.Errorf("Run not stored faithfully: %+v", got)
	}
	if got.Gold != 42.5 || got.Population != 310 || got.EndDate != first.EndDate {
		t.Errorf("Run totals not stored faithfully: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Error("CreatedAt was not populated")
	}

	all, err := store.RecentRuns("", 10)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("Expected 3 runs across scenarios, got %d", len(all))
	}
}

func TestStoreRecentRunsLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 5; i++ {
		store.SaveRun(Run{Scenario: "test", City: "Test", Days: i + 1, Outcome: "republic"})
	}

	runs, err := store.RecentRuns("test", 3)
	if err != nil {
		t.Fatalf("RecentRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs with limit, got %d", len(runs))
	}
	if runs[0].Days != 5 || runs[1].Days != 4 || runs[2].Days != 3 {
		t.Errorf("Runs not in expected order: %v", runs)
	}
}

func TestStoreBestRuns(t *testing.T) {
	store := openTestStore(t)

	for _, pop := range []int{300, 500, 100, 500} {
		store.SaveRun(Run{Scenario: "test", City: "Test", Population: pop, Outcome: "republic"})
	}

	runs, err := store.BestRuns("test", 3)
	if err != nil {
		t.Fatalf("BestRuns() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Fatalf("Expected 3 runs, got %d", len(runs))
	}
	if runs[0].Population != 500 || runs[1].Population != 500 || runs[2].Population != 300 {
		t.Errorf("Runs not ordered by population: %v", runs)
	}
	// Ties keep the earlier run first
	if runs[0].ID > runs[1].ID {
		t.Errorf("Expected ties ordered by id, got %d before %d", runs[0].ID, runs[1].ID)
	}
}

func TestStoreEvents(t *testing.T) {
	store := openTestStore(t)

	id, err := store.SaveRun(Run{Scenario: "test", City: "Test", Outcome: "republic"})
	if err != nil {
		t.Fatalf("SaveRun() failed: %v", err)
	}

	lines := []string{"Building of a Farm started ..", "Finished construction of a Farm", "Message #3"}
	if err := store.SaveEvents(id, lines); err != nil {
		t.Fatalf("SaveEvents() failed: %v", err)
	}

	got, err := store.RunEvents(id)
	if err != nil {
		t.Fatalf("RunEvents() failed: %v", err)
	}
	if len(got) != len(lines) {
		t.Fatalf("Expected %d events, got %d", len(lines), len(got))
	}
	for i := range lines {
		if got[i] != lines[i] {
			t.Errorf("event %d = %q, expected %q", i, got[i], lines[i])
		}
	}

	other, err := store.RunEvents(id + 1)
	if err != nil {
		t.Fatalf("RunEvents() failed: %v", err)
	}
	if len(other) != 0 {
		t.Errorf("Expected no events for unknown run, got %v", other)
	}
}

func TestStoreStats(t *testing.T) {
	store := openTestStore(t)

	// No runs yet
	stats, err := store.Stats("test")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 0 || stats.BestPop != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("Expected empty stats, got %+v", stats)
	}

	store.SaveRun(Run{Scenario: "test", City: "Test", Days: 10, Population: 100, Outcome: "republic"})
	store.SaveRun(Run{Scenario: "test", City: "Test", Days: 20, Population: 300, Outcome: "bankrupt"})
	store.SaveRun(Run{Scenario: "other", City: "Other", Days: 99, Population: 900, Outcome: "bankrupt"})

	stats, err = store.Stats("test")
	if err != nil {
		t.Fatalf("Stats() failed: %v", err)
	}
	if stats.Runs != 2 {
		t.Errorf("Runs = %d, expected 2", stats.Runs)
	}
	if stats.BestPop != 300 {
		t.Errorf("BestPop = %d, expected 300", stats.BestPop)
	}
	if stats.AvgPop != 200 {
		t.Errorf("AvgPop = %v, expected 200", stats.AvgPop)
	}
	if stats.TotalDays != 30 {
		t.Errorf("TotalDays = %d, expected 30", stats.TotalDays)
	}
	if stats.Bankruptcies != 1 {
		t.Errorf("Bankruptcies = %d, expected 1", stats.Bankruptcies)
	}
	if stats.LastPlayed.IsZero() {
		t.Error("LastPlayed was not populated")
	}
}

func TestStoreNestedPath(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	defer store.Close()

	// Verify nested directories were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created in nested directory")
	}
}
