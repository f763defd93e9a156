package language

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/conlang/internal/domain"
)

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func sampleLanguage() *domain.LanguageDescription {
	return &domain.LanguageDescription{
		EnglishName:      "Tahlan",
		LexicalOrderList: []string{"t", "a", "k"},
		Lexicon: []domain.LexiconEntry{
			{Phonetic: "ka", Spelled: "ka", English: "hunt", PartOfSpeech: "v", Declensions: []string{"root"}},
			{Phonetic: "taka", Spelled: "taka", English: "hunts", PartOfSpeech: "v", Declensions: []string{"root", "present"},
				DeclinedWord: domain.Bool(true), Metadata: map[string]any{"Source": "ka"}},
		},
	}
}

func TestRepo_Create(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery("INSERT INTO languages").
		WithArgs("Tahlan", pgxmock.AnyArg(), false, false).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now))
	mock.ExpectExec("INSERT INTO lexicon_entries").
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	lang := sampleLanguage()
	require.NoError(t, New(mock).Create(context.Background(), lang))
	assert.Equal(t, id, lang.ID)
	assert.Equal(t, now, lang.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Create_Duplicate(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery("INSERT INTO languages").
		WillReturnError(&pgconn.PgError{Code: "23505", Message: "duplicate key"})

	err := New(mock).Create(context.Background(), sampleLanguage())
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Create_ChunksLargeLexicon(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	now := time.Now()

	lang := sampleLanguage()
	lang.Lexicon = make([]domain.LexiconEntry, entryChunk+1)
	for i := range lang.Lexicon {
		lang.Lexicon[i] = domain.LexiconEntry{Phonetic: "ka", Spelled: "ka", English: "hunt", PartOfSpeech: "v"}
	}

	mock.ExpectQuery("INSERT INTO languages").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(uuid.New(), now, now))
	mock.ExpectExec("INSERT INTO lexicon_entries").WillReturnResult(pgxmock.NewResult("INSERT", entryChunk))
	mock.ExpectExec("INSERT INTO lexicon_entries").WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, New(mock).Create(context.Background(), lang))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Save_ReplacesLexicon(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	id := uuid.New()
	now := time.Now()

	mock.ExpectQuery("INSERT INTO languages .* ON CONFLICT").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(id, now, now))
	mock.ExpectExec("DELETE FROM lexicon_entries").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 7))
	mock.ExpectExec("INSERT INTO lexicon_entries").
		WillReturnResult(pgxmock.NewResult("INSERT", 2))

	require.NoError(t, New(mock).Save(context.Background(), sampleLanguage()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_Save_EmptyLexicon(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	now := time.Now()

	mock.ExpectQuery("INSERT INTO languages").
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(uuid.New(), now, now))
	mock.ExpectExec("DELETE FROM lexicon_entries").WillReturnResult(pgxmock.NewResult("DELETE", 0))

	lang := sampleLanguage()
	lang.Lexicon = nil
	require.NoError(t, New(mock).Save(context.Background(), lang))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetByName(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	id := uuid.New()
	now := time.Now()

	desc, err := json.Marshal(map[string]any{
		"english_name":       "Tahlan",
		"lexical_order_list": []string{"t", "a", "k"},
		"derived_word_list":  []string{"hunter:n=hunt-AGT"},
	})
	require.NoError(t, err)

	mock.ExpectQuery("SELECT id, english_name, description").
		WithArgs("Tahlan").
		WillReturnRows(pgxmock.NewRows([]string{"id", "english_name", "description", "derived", "declined", "created_at", "updated_at"}).
			AddRow(id, "Tahlan", desc, true, false, now, now))
	mock.ExpectQuery("SELECT position, phonetic").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows([]string{"position", "phonetic", "spelled", "english", "part_of_speech", "declensions", "derived_word", "declined_word", "metadata"}).
			AddRow(0, "ka", "ka", "hunt", "v", []string{"root"}, domain.Bool(false), domain.Bool(false), []byte(nil)).
			AddRow(1, "kari", "kari", "hunter", "n", []string{"root"}, domain.Bool(true), domain.Bool(false), []byte(`{"source":{"derived_word":"hunter:n=hunt-AGT"}}`)))

	lang, err := New(mock).GetByName(context.Background(), "Tahlan")
	require.NoError(t, err)
	assert.Equal(t, id, lang.ID)
	assert.True(t, lang.Derived)
	assert.False(t, lang.Declined)
	assert.Equal(t, []string{"t", "a", "k"}, lang.LexicalOrderList)
	assert.Equal(t, []string{"hunter:n=hunt-AGT"}, lang.DerivedWordList)
	require.Len(t, lang.Lexicon, 2)
	assert.Nil(t, lang.Lexicon[0].Metadata)
	assert.True(t, lang.Lexicon[1].IsDerived())
	assert.Equal(t, map[string]any{"derived_word": "hunter:n=hunt-AGT"}, lang.Lexicon[1].Metadata["source"])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_GetByName_NotFound(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery("SELECT id, english_name, description").
		WillReturnRows(pgxmock.NewRows([]string{"id", "english_name", "description", "derived", "declined", "created_at", "updated_at"}))

	_, err := New(mock).GetByName(context.Background(), "Nowhere")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_List(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	now := time.Now()
	mock.ExpectQuery("SELECT l.id, l.english_name").
		WillReturnRows(pgxmock.NewRows([]string{"id", "english_name", "derived", "declined", "updated_at", "entries"}).
			AddRow(uuid.New(), "Elvish", true, true, now, 120).
			AddRow(uuid.New(), "Tahlan", false, false, now, 2))

	got, err := New(mock).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Elvish", got[0].EnglishName)
	assert.Equal(t, 120, got[0].Entries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepo_List_Empty(t *testing.T) {
	t.Parallel()

	mock := newMock(t)
	mock.ExpectQuery("SELECT l.id").
		WillReturnRows(pgxmock.NewRows([]string{"id", "english_name", "derived", "declined", "updated_at", "entries"}))

	got, err := New(mock).List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestRepo_Delete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		affected int64
		execErr  error
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "missing", affected: 0, wantErr: domain.ErrNotFound},
		{name: "cancelled", execErr: context.Canceled, wantErr: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mock := newMock(t)
			exp := mock.ExpectExec("DELETE FROM languages").WithArgs("Tahlan")
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))
			}

			err := New(mock).Delete(context.Background(), "Tahlan")
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
