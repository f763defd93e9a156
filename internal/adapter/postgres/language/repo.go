// Package language stores language descriptions in PostgreSQL. The
// description minus its lexicon is kept as a jsonb document; lexicon entries
// live in their own table so they can be counted and searched.
package language

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/conlang/internal/adapter/postgres"
	"github.com/heartmarshall/conlang/internal/domain"
)

const (
	languagesTable = "languages"
	entriesTable   = "lexicon_entries"

	// entryChunk bounds the rows per INSERT so the parameter count stays far
	// below the protocol limit of 65535.
	entryChunk = 500
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

var entryColumns = []string{
	"language_id", "position", "phonetic", "spelled", "english",
	"part_of_speech", "declensions", "derived_word", "declined_word", "metadata",
}

type languageRow struct {
	ID          uuid.UUID `db:"id"`
	EnglishName string    `db:"english_name"`
	Description []byte    `db:"description"`
	Derived     bool      `db:"derived"`
	Declined    bool      `db:"declined"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

type entryRow struct {
	Position     int      `db:"position"`
	Phonetic     string   `db:"phonetic"`
	Spelled      string   `db:"spelled"`
	English      string   `db:"english"`
	PartOfSpeech string   `db:"part_of_speech"`
	Declensions  []string `db:"declensions"`
	DerivedWord  *bool    `db:"derived_word"`
	DeclinedWord *bool    `db:"declined_word"`
	Metadata     []byte   `db:"metadata"`
}

// Repo provides language persistence. Multi-statement writes must run inside
// postgres.TxManager.RunInTx to be atomic.
type Repo struct {
	db postgres.Querier
}

// New creates a new language repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts a new language and its lexicon. It returns
// domain.ErrAlreadyExists when the name is taken.
func (r *Repo) Create(ctx context.Context, lang *domain.LanguageDescription) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	desc, err := encodeDescription(lang)
	if err != nil {
		return err
	}

	sql, args, err := psql.Insert(languagesTable).
		Columns("english_name", "description", "derived", "declined").
		Values(lang.EnglishName, desc, lang.Derived, lang.Declined).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert language: %w", err)
	}

	if err := q.QueryRow(ctx, sql, args...).Scan(&lang.ID, &lang.CreatedAt, &lang.UpdatedAt); err != nil {
		return postgres.MapError(err, "language", lang.EnglishName)
	}

	return insertEntries(ctx, q, lang)
}

// Save inserts the language or overwrites the stored one with the same name,
// replacing its whole lexicon.
func (r *Repo) Save(ctx context.Context, lang *domain.LanguageDescription) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	desc, err := encodeDescription(lang)
	if err != nil {
		return err
	}

	sql, args, err := psql.Insert(languagesTable).
		Columns("english_name", "description", "derived", "declined").
		Values(lang.EnglishName, desc, lang.Derived, lang.Declined).
		Suffix(`ON CONFLICT (english_name) DO UPDATE SET
			description = EXCLUDED.description,
			derived = EXCLUDED.derived,
			declined = EXCLUDED.declined,
			updated_at = now()
		RETURNING id, created_at, updated_at`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert language: %w", err)
	}

	if err := q.QueryRow(ctx, sql, args...).Scan(&lang.ID, &lang.CreatedAt, &lang.UpdatedAt); err != nil {
		return postgres.MapError(err, "language", lang.EnglishName)
	}

	sql, args, err = psql.Delete(entriesTable).Where(squirrel.Eq{"language_id": lang.ID}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete entries: %w", err)
	}
	if _, err := q.Exec(ctx, sql, args...); err != nil {
		return postgres.MapError(err, "lexicon", lang.EnglishName)
	}

	return insertEntries(ctx, q, lang)
}

// GetByName loads a language with its lexicon in stored order.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.LanguageDescription, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := psql.Select("id", "english_name", "description", "derived", "declined", "created_at", "updated_at").
		From(languagesTable).
		Where(squirrel.Eq{"english_name": name}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select language: %w", err)
	}

	var rows []languageRow
	if err := pgxscan.Select(ctx, q, &rows, sql, args...); err != nil {
		return nil, postgres.MapError(err, "language", name)
	}
	if len(rows) == 0 {
		return nil, postgres.MapError(pgx.ErrNoRows, "language", name)
	}
	row := rows[0]

	var lang domain.LanguageDescription
	if err := json.Unmarshal(row.Description, &lang); err != nil {
		return nil, fmt.Errorf("language %q: decode description: %w", name, err)
	}
	lang.ID = row.ID
	lang.EnglishName = row.EnglishName
	lang.Derived = row.Derived
	lang.Declined = row.Declined
	lang.CreatedAt = row.CreatedAt
	lang.UpdatedAt = row.UpdatedAt

	sql, args, err = psql.Select(entryColumns[1:]...).
		From(entriesTable).
		Where(squirrel.Eq{"language_id": row.ID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select entries: %w", err)
	}

	var entries []entryRow
	if err := pgxscan.Select(ctx, q, &entries, sql, args...); err != nil {
		return nil, postgres.MapError(err, "lexicon", name)
	}

	lang.Lexicon = make([]domain.LexiconEntry, len(entries))
	for i, e := range entries {
		entry, err := e.toDomain()
		if err != nil {
			return nil, fmt.Errorf("lexicon %q: entry %d: %w", name, e.Position, err)
		}
		lang.Lexicon[i] = entry
	}

	return &lang, nil
}

// List returns every stored language ordered by name with its entry count.
// Returns an empty slice (not nil) when nothing is stored.
func (r *Repo) List(ctx context.Context) ([]domain.LanguageSummary, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := psql.Select(
		"l.id", "l.english_name", "l.derived", "l.declined", "l.updated_at",
		"count(e.id) AS entries",
	).
		From(languagesTable + " l").
		LeftJoin(entriesTable + " e ON e.language_id = l.id").
		GroupBy("l.id").
		OrderBy("l.english_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list languages: %w", err)
	}

	summaries := []domain.LanguageSummary{}
	if err := pgxscan.Select(ctx, q, &summaries, sql, args...); err != nil {
		return nil, fmt.Errorf("list languages: %w", err)
	}
	return summaries, nil
}

// Delete removes a language and, by cascade, its lexicon.
func (r *Repo) Delete(ctx context.Context, name string) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sql, args, err := psql.Delete(languagesTable).Where(squirrel.Eq{"english_name": name}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete language: %w", err)
	}

	tag, err := q.Exec(ctx, sql, args...)
	if err != nil {
		return postgres.MapError(err, "language", name)
	}
	if tag.RowsAffected() == 0 {
		return postgres.MapError(pgx.ErrNoRows, "language", name)
	}
	return nil
}

func insertEntries(ctx context.Context, q postgres.Querier, lang *domain.LanguageDescription) error {
	for start := 0; start < len(lang.Lexicon); start += entryChunk {
		end := min(start+entryChunk, len(lang.Lexicon))

		insert := psql.Insert(entriesTable).Columns(entryColumns...)
		for i := start; i < end; i++ {
			e := &lang.Lexicon[i]
			meta, err := encodeMetadata(e.Metadata)
			if err != nil {
				return fmt.Errorf("lexicon %q: entry %d: %w", lang.EnglishName, i, err)
			}
			declensions := e.Declensions
			if declensions == nil {
				declensions = []string{}
			}
			insert = insert.Values(lang.ID, i, e.Phonetic, e.Spelled, e.English,
				e.PartOfSpeech, declensions, e.DerivedWord, e.DeclinedWord, meta)
		}

		sql, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build insert entries: %w", err)
		}
		if _, err := q.Exec(ctx, sql, args...); err != nil {
			return postgres.MapError(err, "lexicon", lang.EnglishName)
		}
	}
	return nil
}

// encodeDescription marshals everything but the lexicon.
func encodeDescription(lang *domain.LanguageDescription) ([]byte, error) {
	doc := *lang
	doc.Lexicon = nil
	data, err := json.Marshal(&doc)
	if err != nil {
		return nil, fmt.Errorf("language %q: encode description: %w", lang.EnglishName, err)
	}
	return data, nil
}

func encodeMetadata(meta map[string]any) ([]byte, error) {
	if meta == nil {
		return nil, nil
	}
	data, err := json.Marshal(meta)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	return data, nil
}

func (e entryRow) toDomain() (domain.LexiconEntry, error) {
	entry := domain.LexiconEntry{
		Phonetic:     e.Phonetic,
		Spelled:      e.Spelled,
		English:      e.English,
		PartOfSpeech: e.PartOfSpeech,
		Declensions:  e.Declensions,
		DerivedWord:  e.DerivedWord,
		DeclinedWord: e.DeclinedWord,
	}
	if len(e.Metadata) > 0 {
		if err := json.Unmarshal(e.Metadata, &entry.Metadata); err != nil {
			return domain.LexiconEntry{}, fmt.Errorf("decode metadata: %w", err)
		}
	}
	return entry, nil
}
