package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	name := UniqueName("smoke")
	id := SeedLanguage(t, pool, name, 3)

	var count int
	err := pool.QueryRow(
		context.Background(),
		`SELECT count(*) FROM lexicon_entries WHERE language_id = $1`,
		id,
	).Scan(&count)
	if err != nil {
		t.Fatalf("expected entries in DB, got error: %v", err)
	}

	if count != 3 {
		t.Fatalf("expected 3 entries, got %d", count)
	}
	if !LanguageExists(t, pool, name) {
		t.Fatalf("expected language %q to exist", name)
	}
}
