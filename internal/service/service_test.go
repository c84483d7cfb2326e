package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/buzzblog/backend/internal/cache"
	"github.com/buzzblog/backend/internal/db"
	"github.com/buzzblog/backend/internal/db/dbtest"
	"github.com/buzzblog/backend/internal/models"
	"github.com/buzzblog/backend/pkg/config"
	"github.com/buzzblog/backend/pkg/telemetry"
)

// fixture wires every service in-process over one SQLite database.
type fixture struct {
	pairs    *UniquepairService
	accounts *AccountService
	follows  *FollowService
	posts    *PostService
	likes    *LikeService
	traces   *observer.ObservedLogs
}

func newFixture(t *testing.T) *fixture {
	return newFixtureWithCache(t, nil)
}

func newFixtureWithCache(t *testing.T, counts *cache.Cache) *fixture {
	t.Helper()

	core, logs := observer.New(zapcore.InfoLevel)
	tracer := telemetry.NewTracer(telemetry.NewClock(), zap.New(core))
	d := dbtest.New(t, config.ServiceUniquepair, config.ServicePost, config.ServiceAccount)

	f := &fixture{traces: logs}
	f.pairs = NewUniquepairService(db.NewUniquepairRepository(d), counts, tracer)
	f.accounts = NewAccountService(db.NewAccountRepository(d), tracer)
	f.follows = NewFollowService(f.pairs, f.accounts, tracer)
	f.posts = NewPostService(db.NewPostRepository(d), f.accounts, tracer)
	f.likes = NewLikeService(f.pairs, f.accounts, f.posts, tracer)
	f.posts.SetLikeCounter(f.likes)
	f.accounts.SetPeers(f.follows, f.posts, f.likes)
	return f
}

// as returns request metadata for requester.
func as(requester int64) models.RequestMetadata {
	return models.RequestMetadata{ID: "test-request", RequesterID: requester}
}

func (f *fixture) account(t *testing.T, username string) int64 {
	t.Helper()
	acc, err := f.accounts.CreateAccount(context.Background(), as(0), username, "secret", "First", "Last")
	require.NoError(t, err)
	return acc.ID
}

func (f *fixture) post(t *testing.T, author int64, text string) int64 {
	t.Helper()
	post, err := f.posts.CreatePost(context.Background(), as(author), text)
	require.NoError(t, err)
	return post.ID
}

// tracesOf counts trace records emitted for component.
func (f *fixture) tracesOf(component string) int {
	return f.traces.FilterMessage("trace").FilterField(zap.String("component", component)).Len()
}
