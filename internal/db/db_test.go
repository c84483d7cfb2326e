package db_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buzzblog/backend/internal/db"
	"github.com/buzzblog/backend/internal/db/dbtest"
	"github.com/buzzblog/backend/internal/models"
	"github.com/buzzblog/backend/pkg/config"
)

func TestUniquepairRepository(t *testing.T) {
	ctx := context.Background()
	repo := db.NewUniquepairRepository(dbtest.New(t, config.ServiceUniquepair))

	first := &models.Uniquepair{Domain: "follow", FirstElem: 1, SecondElem: 2}
	require.NoError(t, repo.Create(ctx, first))
	assert.NotZero(t, first.ID)
	assert.NotZero(t, first.CreatedAt)

	t.Run("duplicate insert", func(t *testing.T) {
		err := repo.Create(ctx, &models.Uniquepair{Domain: "follow", FirstElem: 1, SecondElem: 2})
		assert.ErrorIs(t, err, db.ErrDuplicateKey)
	})

	t.Run("same elems in another domain", func(t *testing.T) {
		assert.NoError(t, repo.Create(ctx, &models.Uniquepair{Domain: "like", FirstElem: 1, SecondElem: 2}))
	})

	t.Run("find", func(t *testing.T) {
		pair, err := repo.Find(ctx, "follow", 1, 2)
		require.NoError(t, err)
		require.NotNil(t, pair)
		assert.Equal(t, first.ID, pair.ID)

		pair, err = repo.Find(ctx, "follow", 2, 1)
		require.NoError(t, err)
		assert.Nil(t, pair)
	})

	t.Run("get missing", func(t *testing.T) {
		pair, err := repo.GetByID(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, pair)
	})

	t.Run("delete", func(t *testing.T) {
		removed, err := repo.Delete(ctx, first.ID)
		require.NoError(t, err)
		assert.True(t, removed)

		removed, err = repo.Delete(ctx, first.ID)
		require.NoError(t, err)
		assert.False(t, removed)

		// Ids are never reused.
		again := &models.Uniquepair{Domain: "follow", FirstElem: 1, SecondElem: 2}
		require.NoError(t, repo.Create(ctx, again))
		assert.Greater(t, again.ID, first.ID)
	})
}

func TestUniquepairRepository_FetchAndCount(t *testing.T) {
	ctx := context.Background()
	repo := db.NewUniquepairRepository(dbtest.New(t, config.ServiceUniquepair))

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, repo.Create(ctx, &models.Uniquepair{Domain: "follow", FirstElem: 1, SecondElem: i + 1}))
	}
	require.NoError(t, repo.Create(ctx, &models.Uniquepair{Domain: "follow", FirstElem: 2, SecondElem: 1}))

	tests := []struct {
		name    string
		query   models.UniquepairQuery
		limit   int
		offset  int
		want    []int64
		wantAll int64
	}{
		{"all of domain", models.UniquepairQuery{Domain: "follow"}, 0, 0, []int64{1, 6, 5, 4, 3, 2}, 6},
		{"by first", models.UniquepairQuery{Domain: "follow", FirstElem: models.Ref(1)}, 2, 0, []int64{6, 5}, 5},
		{"paged", models.UniquepairQuery{Domain: "follow", FirstElem: models.Ref(1)}, 2, 2, []int64{4, 3}, 5},
		{"past the end", models.UniquepairQuery{Domain: "follow", FirstElem: models.Ref(1)}, 10, 10, nil, 5},
		{"by second", models.UniquepairQuery{Domain: "follow", SecondElem: models.Ref(1)}, 0, 0, []int64{1}, 1},
		{"both", models.UniquepairQuery{Domain: "follow", FirstElem: models.Ref(1), SecondElem: models.Ref(3)}, 0, 0, []int64{3}, 1},
		{"other domain", models.UniquepairQuery{Domain: "like"}, 0, 0, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pairs, err := repo.Fetch(ctx, tt.query, tt.limit, tt.offset)
			require.NoError(t, err)

			var got []int64
			for _, p := range pairs {
				got = append(got, p.SecondElem)
			}
			assert.Equal(t, tt.want, got)

			count, err := repo.Count(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAll, count)
		})
	}
}

func TestPostRepository(t *testing.T) {
	ctx := context.Background()
	repo := db.NewPostRepository(dbtest.New(t, config.ServicePost))

	a := &models.Post{Text: "first", AuthorID: 1}
	b := &models.Post{Text: "second", AuthorID: 1}
	c := &models.Post{Text: "other", AuthorID: 2}
	for _, p := range []*models.Post{a, b, c} {
		require.NoError(t, repo.Create(ctx, p))
		assert.True(t, p.Active)
	}

	require.NoError(t, repo.Deactivate(ctx, a.ID))

	t.Run("retrieval ignores active", func(t *testing.T) {
		post, err := repo.GetByID(ctx, a.ID)
		require.NoError(t, err)
		require.NotNil(t, post)
		assert.False(t, post.Active)
	})

	t.Run("listing skips deleted", func(t *testing.T) {
		posts, err := repo.Fetch(ctx, models.PostQuery{AuthorID: models.Ref(1)}, 10, 0)
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, b.ID, posts[0].ID)

		all, err := repo.Fetch(ctx, models.PostQuery{}, 0, 0)
		require.NoError(t, err)
		assert.Len(t, all, 2)
		assert.Equal(t, c.ID, all[0].ID)
	})

	t.Run("count skips deleted", func(t *testing.T) {
		count, err := repo.Count(ctx, models.PostQuery{AuthorID: models.Ref(1)})
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}

func TestAccountRepository(t *testing.T) {
	ctx := context.Background()
	repo := db.NewAccountRepository(dbtest.New(t, config.ServiceAccount))

	acc := &models.Account{Username: "alice", PasswordHash: "h", FirstName: "Alice", LastName: "A"}
	require.NoError(t, repo.Create(ctx, acc))

	err := repo.Create(ctx, &models.Account{Username: "alice", PasswordHash: "h", FirstName: "B", LastName: "B"})
	assert.ErrorIs(t, err, db.ErrDuplicateKey)

	require.NoError(t, repo.UpdateProfile(ctx, acc.ID, "h2", "Alicia", "B"))
	got, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "h2", got.PasswordHash)
	assert.Equal(t, "Alicia", got.FirstName)

	require.NoError(t, repo.Deactivate(ctx, acc.ID))
	got, err = repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByID(ctx, acc.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.False(t, got.Active)
}
