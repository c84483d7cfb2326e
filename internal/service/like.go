package service

import (
	"context"

	"github.com/buzzblog/backend/internal/errs"
	"github.com/buzzblog/backend/internal/models"
	"github.com/buzzblog/backend/pkg/telemetry"
)

// LikeService manages likes, stored as pairs (account, post) of the "like"
// domain.
type LikeService struct {
	pairs    UniquepairStore
	accounts AccountReader
	posts    PostReader
	tracer   *telemetry.Tracer
}

// NewLikeService creates a new like service
func NewLikeService(pairs UniquepairStore, accounts AccountReader, posts PostReader, tracer *telemetry.Tracer) *LikeService {
	return &LikeService{pairs: pairs, accounts: accounts, posts: posts, tracer: tracer}
}

// LikePost makes the requester like postID.
func (s *LikeService) LikePost(ctx context.Context, md models.RequestMetadata, postID int64) (like *models.Like, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "like", "like_post")
	defer span.End(&err)

	pair, err := s.pairs.Add(ctx, md, models.DomainLike, md.RequesterID, postID)
	if err != nil {
		return nil, relationError("like", err)
	}
	return models.LikeFromPair(pair), nil
}

// RetrieveStandardLike returns a like without its account and post.
func (s *LikeService) RetrieveStandardLike(ctx context.Context, md models.RequestMetadata, likeID int64) (like *models.Like, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "like", "retrieve_standard_like")
	defer span.End(&err)

	return s.standard(ctx, md, likeID)
}

// RetrieveExpandedLike returns a like with its account and expanded post.
func (s *LikeService) RetrieveExpandedLike(ctx context.Context, md models.RequestMetadata, likeID int64) (like *models.Like, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "like", "retrieve_expanded_like")
	defer span.End(&err)

	like, err = s.standard(ctx, md, likeID)
	if err != nil {
		return nil, err
	}
	if err := s.expand(ctx, md, like); err != nil {
		return nil, err
	}
	return like, nil
}

// DeleteLike removes a like. Only the liking account may do so.
func (s *LikeService) DeleteLike(ctx context.Context, md models.RequestMetadata, likeID int64) (err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "like", "delete_like")
	defer span.End(&err)

	like, err := s.standard(ctx, md, likeID)
	if err != nil {
		return err
	}
	if like.AccountID != md.RequesterID {
		return errs.LikeNotAuthorized
	}
	if err := s.pairs.Remove(ctx, md, likeID); err != nil {
		return relationError("like", err)
	}
	return nil
}

// ListLikes returns the expanded likes matching q, newest first.
func (s *LikeService) ListLikes(ctx context.Context, md models.RequestMetadata, q models.LikeQuery, limit, offset int) (likes []*models.Like, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "like", "list_likes")
	defer span.End(&err)

	pairs, err := s.pairs.Fetch(ctx, md, q.Pairs(), limit, offset)
	if err != nil {
		return nil, err
	}

	likes = make([]*models.Like, 0, len(pairs))
	for _, pair := range pairs {
		like := models.LikeFromPair(pair)
		if err := s.expand(ctx, md, like); err != nil {
			return nil, err
		}
		likes = append(likes, like)
	}
	return likes, nil
}

// CountLikesByAccount counts the likes given by accountID.
func (s *LikeService) CountLikesByAccount(ctx context.Context, md models.RequestMetadata, accountID int64) (n int64, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "like", "count_likes_by_account")
	defer span.End(&err)

	return s.pairs.Count(ctx, md, models.LikeQuery{AccountID: &accountID}.Pairs())
}

// CountLikesOfPost counts the likes received by postID.
func (s *LikeService) CountLikesOfPost(ctx context.Context, md models.RequestMetadata, postID int64) (n int64, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "like", "count_likes_of_post")
	defer span.End(&err)

	return s.pairs.Count(ctx, md, models.LikeQuery{PostID: &postID}.Pairs())
}

func (s *LikeService) standard(ctx context.Context, md models.RequestMetadata, likeID int64) (*models.Like, error) {
	pair, err := s.pairs.Get(ctx, md, likeID)
	if err != nil {
		return nil, relationError("like", err)
	}
	if pair.Domain != models.DomainLike {
		return nil, errs.LikeNotFound
	}
	return models.LikeFromPair(pair), nil
}

func (s *LikeService) expand(ctx context.Context, md models.RequestMetadata, like *models.Like) error {
	account, err := s.accounts.RetrieveStandardAccount(ctx, md, like.AccountID)
	if err != nil {
		return err
	}
	post, err := s.posts.RetrieveExpandedPost(ctx, md, like.PostID)
	if err != nil {
		return err
	}
	like.Account = account
	like.Post = post
	return nil
}
