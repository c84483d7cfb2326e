// Package service implements the BuzzBlog services. Each service exposes
// its operations as methods taking the request metadata; peers are reached
// through the narrow interfaces below, served either in-process or by the
// RPC clients in internal/client.
package service

import (
	"context"
	"errors"

	"github.com/buzzblog/backend/internal/errs"
	"github.com/buzzblog/backend/internal/models"
)

// UniquepairStore is the relation store used by Follow and Like.
type UniquepairStore interface {
	Get(ctx context.Context, md models.RequestMetadata, id int64) (*models.Uniquepair, error)
	Add(ctx context.Context, md models.RequestMetadata, domain string, first, second int64) (*models.Uniquepair, error)
	Remove(ctx context.Context, md models.RequestMetadata, id int64) error
	Find(ctx context.Context, md models.RequestMetadata, domain string, first, second int64) (*models.Uniquepair, error)
	Fetch(ctx context.Context, md models.RequestMetadata, q models.UniquepairQuery, limit, offset int) ([]*models.Uniquepair, error)
	Count(ctx context.Context, md models.RequestMetadata, q models.UniquepairQuery) (int64, error)
}

// AccountReader resolves accounts for expanded views.
type AccountReader interface {
	RetrieveStandardAccount(ctx context.Context, md models.RequestMetadata, accountID int64) (*models.Account, error)
}

// PostReader resolves posts for expanded likes.
type PostReader interface {
	RetrieveExpandedPost(ctx context.Context, md models.RequestMetadata, postID int64) (*models.Post, error)
}

// PostCounter counts the posts of an author.
type PostCounter interface {
	CountPostsByAuthor(ctx context.Context, md models.RequestMetadata, authorID int64) (int64, error)
}

// LikeCounter counts likes by account or by post.
type LikeCounter interface {
	CountLikesByAccount(ctx context.Context, md models.RequestMetadata, accountID int64) (int64, error)
	CountLikesOfPost(ctx context.Context, md models.RequestMetadata, postID int64) (int64, error)
}

// FollowReader answers follow questions about an account.
type FollowReader interface {
	CheckFollow(ctx context.Context, md models.RequestMetadata, followerID, followeeID int64) (bool, error)
	CountFollowers(ctx context.Context, md models.RequestMetadata, accountID int64) (int64, error)
	CountFollowees(ctx context.Context, md models.RequestMetadata, accountID int64) (int64, error)
}

// relationError restates a relation store NotFound or AlreadyExists as an
// error of entity. Other errors pass through.
func relationError(entity string, err error) error {
	switch {
	case errors.Is(err, errs.UniquepairNotFound):
		return errs.New(entity, errs.NotFound)
	case errors.Is(err, errs.UniquepairAlreadyExists):
		return errs.New(entity, errs.AlreadyExists)
	}
	return err
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
