package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/buzzblog/backend/internal/cache"
	"github.com/buzzblog/backend/internal/errs"
	"github.com/buzzblog/backend/internal/models"
)

func TestUniquepairService_Uniqueness(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	first, err := f.pairs.Add(ctx, as(1), "follow", 1, 2)
	require.NoError(t, err)

	_, err = f.pairs.Add(ctx, as(1), "follow", 1, 2)
	assert.ErrorIs(t, err, errs.UniquepairAlreadyExists)

	require.NoError(t, f.pairs.Remove(ctx, as(1), first.ID))

	second, err := f.pairs.Add(ctx, as(1), "follow", 1, 2)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestUniquepairService_ConcurrentAdd(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		succeeded int
		conflicts int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.pairs.Add(ctx, as(1), "like", 3, 4)
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				succeeded++
			case errs.IsKind(err, errs.AlreadyExists):
				conflicts++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, succeeded)
	assert.Equal(t, n-1, conflicts)
}

func TestUniquepairService_Errors(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"get missing", func() error { _, err := f.pairs.Get(ctx, as(1), 42); return err }, errs.UniquepairNotFound},
		{"remove missing", func() error { return f.pairs.Remove(ctx, as(1), 42) }, errs.UniquepairNotFound},
		{"find missing", func() error { _, err := f.pairs.Find(ctx, as(1), "follow", 1, 2); return err }, errs.UniquepairNotFound},
		{"empty domain", func() error { _, err := f.pairs.Add(ctx, as(1), "", 1, 2); return err }, errs.UniquepairInvalidAttributes},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.call(), tt.want)
		})
	}
}

func TestUniquepairService_RemoveIsHard(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	pair, err := f.pairs.Add(ctx, as(1), "follow", 5, 6)
	require.NoError(t, err)
	require.NoError(t, f.pairs.Remove(ctx, as(1), pair.ID))

	_, err = f.pairs.Get(ctx, as(1), pair.ID)
	assert.ErrorIs(t, err, errs.UniquepairNotFound)
	_, err = f.pairs.Find(ctx, as(1), "follow", 5, 6)
	assert.ErrorIs(t, err, errs.UniquepairNotFound)
}

func TestUniquepairService_FetchPaging(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	for i := int64(1); i <= 4; i++ {
		_, err := f.pairs.Add(ctx, as(1), "follow", 1, i)
		require.NoError(t, err)
	}
	q := models.UniquepairQuery{Domain: "follow", FirstElem: models.Ref(1)}

	all, err := f.pairs.Fetch(ctx, as(1), q, 0, -5)
	require.NoError(t, err)
	require.Len(t, all, 4)
	for i := 1; i < len(all); i++ {
		assert.GreaterOrEqual(t, all[i-1].CreatedAt, all[i].CreatedAt)
	}

	none, err := f.pairs.Fetch(ctx, as(1), models.UniquepairQuery{Domain: "like"}, 10, 0)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestUniquepairService_CountCache(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	f := newFixtureWithCache(t, cache.NewWithClient(client, time.Minute))

	q := models.UniquepairQuery{Domain: "like", SecondElem: models.Ref(9)}

	n, err := f.pairs.Count(ctx, as(1), q)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	pair, err := f.pairs.Add(ctx, as(1), "like", 1, 9)
	require.NoError(t, err)
	n, err = f.pairs.Count(ctx, as(1), q)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, f.pairs.Remove(ctx, as(1), pair.ID))
	n, err = f.pairs.Count(ctx, as(1), q)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)
}

// interleave runs fn once, just before the first SET the client issues.
type interleave struct {
	once sync.Once
	fn   func()
}

func (h *interleave) BeforeProcess(ctx context.Context, cmd redis.Cmder) (context.Context, error) {
	if cmd.Name() == "set" {
		h.once.Do(h.fn)
	}
	return ctx, nil
}

func (h *interleave) AfterProcess(context.Context, redis.Cmder) error { return nil }

func (h *interleave) BeforeProcessPipeline(ctx context.Context, _ []redis.Cmder) (context.Context, error) {
	return ctx, nil
}

func (h *interleave) AfterProcessPipeline(context.Context, []redis.Cmder) error { return nil }

func TestUniquepairService_CountCacheWriteBackRace(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	f := newFixtureWithCache(t, cache.NewWithClient(client, time.Minute))

	// A follow commits between the store count and the cache write.
	client.AddHook(&interleave{fn: func() {
		_, err := f.pairs.Add(ctx, as(1), models.DomainFollow, 1, 7)
		require.NoError(t, err)
	}})

	n, err := f.follows.CountFollowers(ctx, as(1), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(0), n)

	n, err = f.follows.CountFollowers(ctx, as(1), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	listed, err := f.follows.ListFollows(ctx, as(1), models.FollowQuery{FolloweeID: models.Ref(7)}, 0, 0)
	require.NoError(t, err)
	assert.Len(t, listed, int(n))
}
