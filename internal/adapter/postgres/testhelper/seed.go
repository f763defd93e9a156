package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UniqueName returns a language name that does not collide with other tests
// sharing the container.
func UniqueName(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// SeedLanguage inserts a language row with an empty description and the given
// number of placeholder lexicon entries. It returns the language id.
func SeedLanguage(t *testing.T, pool *pgxpool.Pool, name string, entries int) uuid.UUID {
	t.Helper()
	ctx := context.Background()

	var id uuid.UUID
	err := pool.QueryRow(ctx,
		`INSERT INTO languages (english_name, description)
		 VALUES ($1, $2::jsonb)
		 RETURNING id`,
		name, `{"english_name":"`+name+`"}`,
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedLanguage insert language: %v", err)
	}

	for i := range entries {
		_, err := pool.Exec(ctx,
			`INSERT INTO lexicon_entries (language_id, position, phonetic, spelled, english, part_of_speech, declensions)
			 VALUES ($1, $2, $3, $3, $4, 'n', '{root}')`,
			id, i, "ka"+string(rune('a'+i%26)), "word "+string(rune('a'+i%26)),
		)
		if err != nil {
			t.Fatalf("testhelper: SeedLanguage insert entry[%d]: %v", i, err)
		}
	}

	return id
}

// LanguageExists reports whether a language row with the given name exists.
func LanguageExists(t *testing.T, pool *pgxpool.Pool, name string) bool {
	t.Helper()

	var exists bool
	err := pool.QueryRow(context.Background(),
		`SELECT EXISTS(SELECT 1 FROM languages WHERE english_name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		t.Fatalf("testhelper: LanguageExists query: %v", err)
	}
	return exists
}
