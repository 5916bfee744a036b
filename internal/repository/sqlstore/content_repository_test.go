package sqlstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"devdeck/internal/domain"
	"devdeck/internal/repository"
)

func TestPromptRepository_ListFilters(t *testing.T) {
	db := newTestDB(t)
	repo := NewPromptRepository(db)
	ctx := context.Background()
	uid := createTestUser(t, db, "ada")

	seed := []*domain.Prompt{
		{UserID: uid, Title: "Code review", Content: "Review this diff", Category: "coding", Tags: []string{"review"}, Favorite: true},
		{UserID: uid, Title: "Blog outline", Content: "Outline a post about Go", Category: "writing"},
		{UserID: uid, Title: "Refactor", Content: "Suggest a REFACTOR plan", Category: "coding"},
	}
	for _, p := range seed {
		_, err := repo.Create(ctx, p)
		require.NoError(t, err)
	}

	coding, err := repo.List(ctx, uid, domain.PromptFilter{Category: "coding"})
	require.NoError(t, err)
	require.Len(t, coding, 2)
	assert.Equal(t, "Code review", coding[0].Title, "favourites sort first")
	assert.Equal(t, []string{"review"}, coding[0].Tags)
	assert.Equal(t, []string{}, coding[1].Tags)

	favs, err := repo.List(ctx, uid, domain.PromptFilter{FavoriteOnly: true})
	require.NoError(t, err)
	assert.Len(t, favs, 1)

	search, err := repo.List(ctx, uid, domain.PromptFilter{Search: "refactor"})
	require.NoError(t, err)
	require.Len(t, search, 1)
	assert.Equal(t, "Refactor", search[0].Title)

	search, err = repo.List(ctx, uid, domain.PromptFilter{Search: "go"})
	require.NoError(t, err)
	assert.Len(t, search, 1)
}

func TestPromptRepository_SearchIsLiteral(t *testing.T) {
	db := newTestDB(t)
	repo := NewPromptRepository(db)
	ctx := context.Background()
	uid := createTestUser(t, db, "ada")

	seed := []*domain.Prompt{
		{UserID: uid, Title: "Discount", Content: "Take 50% off", Category: "marketing"},
		{UserID: uid, Title: "Naming", Content: "Rename snake_case fields", Category: "coding"},
		{UserID: uid, Title: "Paths", Content: `Escape C:\temp`, Category: "coding"},
		{UserID: uid, Title: "Plain", Content: "Nothing special here", Category: "general"},
	}
	for _, p := range seed {
		_, err := repo.Create(ctx, p)
		require.NoError(t, err)
	}

	tests := []struct {
		term string
		want []string
	}{
		{"%", []string{"Discount"}},
		{"_", []string{"Naming"}},
		{`\`, []string{"Paths"}},
		{"50%", []string{"Discount"}},
		{"l_h", nil},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got, err := repo.List(ctx, uid, domain.PromptFilter{Search: tt.term})
			require.NoError(t, err)
			var titles []string
			for _, p := range got {
				titles = append(titles, p.Title)
			}
			assert.Equal(t, tt.want, titles)
		})
	}
}

func TestPromptRepository_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	repo := NewPromptRepository(db)
	ctx := context.Background()
	uid := createTestUser(t, db, "ada")

	p := &domain.Prompt{UserID: uid, Title: "t", Content: "c"}
	_, err := repo.Create(ctx, p)
	require.NoError(t, err)

	p.Tags = []string{"a", "b"}
	p.Favorite = true
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.Get(ctx, uid, p.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got.Tags)
	assert.True(t, got.Favorite)

	require.NoError(t, repo.Delete(ctx, uid, p.ID))
	assert.ErrorIs(t, repo.Delete(ctx, uid, p.ID), repository.ErrNotFound)
}

func TestAssetRepository(t *testing.T) {
	db := newTestDB(t)
	repo := NewAssetRepository(db)
	ctx := context.Background()
	uid := createTestUser(t, db, "ada")

	a := &domain.Asset{UserID: uid, Name: "logo.png", Key: "assets/1/abc-logo.png", ContentType: "image/png", Size: 42, SHA256: "deadbeef"}
	_, err := repo.Create(ctx, a)
	require.NoError(t, err)

	dup := *a
	_, err = repo.Create(ctx, &dup)
	assert.ErrorIs(t, err, repository.ErrConflict)

	got, err := repo.Get(ctx, uid, a.ID)
	require.NoError(t, err)
	assert.Equal(t, a.Key, got.Key)
	assert.Equal(t, int64(42), got.Size)

	b := &domain.Asset{UserID: uid, Name: "b.txt", Key: "assets/1/def-b.txt"}
	_, err = repo.Create(ctx, b)
	require.NoError(t, err)

	n, err := repo.DeleteAll(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	list, err := repo.List(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestPomodoroRepository_ListSince(t *testing.T) {
	db := newTestDB(t)
	repo := NewPomodoroRepository(db)
	ctx := context.Background()
	uid := createTestUser(t, db, "ada")

	now := time.Now().UTC()
	old := &domain.PomodoroSession{UserID: uid, Kind: domain.IntervalWork, DurationSeconds: 1500, StartedAt: now.Add(-49 * time.Hour), CompletedAt: now.Add(-48 * time.Hour)}
	recent := &domain.PomodoroSession{UserID: uid, Kind: domain.IntervalShortBreak, DurationSeconds: 300, StartedAt: now.Add(-10 * time.Minute), CompletedAt: now.Add(-5 * time.Minute)}
	for _, s := range []*domain.PomodoroSession{old, recent} {
		_, err := repo.Create(ctx, s)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, uid, time.Time{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, recent.ID, all[0].ID)

	today, err := repo.List(ctx, uid, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, domain.IntervalShortBreak, today[0].Kind)
}

func TestQuoteAndContactRepositories(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	quotes := NewQuoteRepository(db)
	_, err := quotes.Create(ctx, &domain.Quote{Text: "Ship it.", Author: "Anon", Tags: []string{"work"}})
	require.NoError(t, err)
	_, err = quotes.Create(ctx, &domain.Quote{Text: "Ship it."})
	assert.ErrorIs(t, err, repository.ErrConflict)

	n, err := quotes.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	list, err := quotes.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, []string{"work"}, list[0].Tags)

	inquiry := &domain.ContactInquiry{Name: "Ada", Email: "ada@example.com", Message: "hello"}
	id, err := NewContactRepository(db).Create(ctx, inquiry)
	require.NoError(t, err)
	assert.Positive(t, id)
}
