package language_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/conlang/internal/adapter/postgres"
	"github.com/heartmarshall/conlang/internal/adapter/postgres/language"
	"github.com/heartmarshall/conlang/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/conlang/internal/domain"
)

func TestRepo_RoundTrip(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := language.New(pool)
	tm := postgres.NewTxManager(pool)
	ctx := context.Background()

	name := testhelper.UniqueName("roundtrip")
	lang := &domain.LanguageDescription{
		EnglishName:      name,
		LexicalOrderList: []string{"t", "a", "k"},
		DerivedWordList:  []string{"hunter:n=hunt-AGT"},
		Lexicon: []domain.LexiconEntry{
			{Phonetic: "ka", Spelled: "ka", English: "hunt", PartOfSpeech: "v", Declensions: []string{"root"}},
			{Phonetic: "kari", Spelled: "kari", English: "hunter", PartOfSpeech: "n", Declensions: []string{"root"},
				DerivedWord: domain.Bool(true), DeclinedWord: domain.Bool(false),
				Metadata: map[string]any{"source": map[string]any{"derived_word": "hunter:n=hunt-AGT"}}},
		},
	}

	require.NoError(t, tm.RunInTx(ctx, func(ctx context.Context) error {
		return repo.Create(ctx, lang)
	}))
	assert.NotZero(t, lang.ID)

	got, err := repo.GetByName(ctx, name)
	require.NoError(t, err)
	assert.Equal(t, lang.ID, got.ID)
	assert.Equal(t, lang.LexicalOrderList, got.LexicalOrderList)
	require.Len(t, got.Lexicon, 2)
	for i := range lang.Lexicon {
		assert.True(t, lang.Lexicon[i].Equal(&got.Lexicon[i]), "entry %d", i)
	}

	got.Derived = true
	got.Lexicon = got.Lexicon[:1]
	require.NoError(t, tm.RunInTx(ctx, func(ctx context.Context) error {
		return repo.Save(ctx, got)
	}))

	again, err := repo.GetByName(ctx, name)
	require.NoError(t, err)
	assert.True(t, again.Derived)
	assert.Len(t, again.Lexicon, 1)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	found := false
	for _, s := range list {
		if s.EnglishName == name {
			found = true
			assert.Equal(t, 1, s.Entries)
		}
	}
	assert.True(t, found)

	require.NoError(t, repo.Delete(ctx, name))
	assert.False(t, testhelper.LanguageExists(t, pool, name))
	assert.ErrorIs(t, repo.Delete(ctx, name), domain.ErrNotFound)
}

func TestRepo_CreateDuplicateRollsBack(t *testing.T) {
	pool := testhelper.SetupTestDB(t)
	repo := language.New(pool)
	tm := postgres.NewTxManager(pool)
	ctx := context.Background()

	name := testhelper.UniqueName("dup")
	testhelper.SeedLanguage(t, pool, name, 2)

	err := tm.RunInTx(ctx, func(ctx context.Context) error {
		return repo.Create(ctx, &domain.LanguageDescription{EnglishName: name})
	})
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)

	got, err := repo.GetByName(ctx, name)
	require.NoError(t, err)
	assert.Len(t, got.Lexicon, 2)
}
