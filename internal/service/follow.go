package service

import (
	"context"
	"errors"

	"github.com/buzzblog/backend/internal/errs"
	"github.com/buzzblog/backend/internal/models"
	"github.com/buzzblog/backend/pkg/telemetry"
)

// FollowService manages follows, stored as pairs (follower, followee) of
// the "follow" domain.
type FollowService struct {
	pairs    UniquepairStore
	accounts AccountReader
	tracer   *telemetry.Tracer
}

// NewFollowService creates a new follow service
func NewFollowService(pairs UniquepairStore, accounts AccountReader, tracer *telemetry.Tracer) *FollowService {
	return &FollowService{pairs: pairs, accounts: accounts, tracer: tracer}
}

// FollowAccount makes the requester follow accountID.
func (s *FollowService) FollowAccount(ctx context.Context, md models.RequestMetadata, accountID int64) (follow *models.Follow, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "follow", "follow_account")
	defer span.End(&err)

	pair, err := s.pairs.Add(ctx, md, models.DomainFollow, md.RequesterID, accountID)
	if err != nil {
		return nil, relationError("follow", err)
	}
	return models.FollowFromPair(pair), nil
}

// RetrieveStandardFollow returns a follow without its accounts.
func (s *FollowService) RetrieveStandardFollow(ctx context.Context, md models.RequestMetadata, followID int64) (follow *models.Follow, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "follow", "retrieve_standard_follow")
	defer span.End(&err)

	return s.standard(ctx, md, followID)
}

// RetrieveExpandedFollow returns a follow with both accounts resolved.
func (s *FollowService) RetrieveExpandedFollow(ctx context.Context, md models.RequestMetadata, followID int64) (follow *models.Follow, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "follow", "retrieve_expanded_follow")
	defer span.End(&err)

	follow, err = s.standard(ctx, md, followID)
	if err != nil {
		return nil, err
	}
	if err := s.expand(ctx, md, follow); err != nil {
		return nil, err
	}
	return follow, nil
}

// DeleteFollow removes a follow. Only the follower may do so.
func (s *FollowService) DeleteFollow(ctx context.Context, md models.RequestMetadata, followID int64) (err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "follow", "delete_follow")
	defer span.End(&err)

	follow, err := s.standard(ctx, md, followID)
	if err != nil {
		return err
	}
	if follow.FollowerID != md.RequesterID {
		return errs.FollowNotAuthorized
	}
	if err := s.pairs.Remove(ctx, md, followID); err != nil {
		return relationError("follow", err)
	}
	return nil
}

// ListFollows returns the expanded follows matching q, newest first.
func (s *FollowService) ListFollows(ctx context.Context, md models.RequestMetadata, q models.FollowQuery, limit, offset int) (follows []*models.Follow, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "follow", "list_follows")
	defer span.End(&err)

	pairs, err := s.pairs.Fetch(ctx, md, q.Pairs(), limit, offset)
	if err != nil {
		return nil, err
	}

	follows = make([]*models.Follow, 0, len(pairs))
	for _, pair := range pairs {
		follow := models.FollowFromPair(pair)
		if err := s.expand(ctx, md, follow); err != nil {
			return nil, err
		}
		follows = append(follows, follow)
	}
	return follows, nil
}

// CheckFollow reports whether followerID follows followeeID. A missing
// follow is a negative answer, not an error.
func (s *FollowService) CheckFollow(ctx context.Context, md models.RequestMetadata, followerID, followeeID int64) (follows bool, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "follow", "check_follow")
	defer span.End(&err)

	_, err = s.pairs.Find(ctx, md, models.DomainFollow, followerID, followeeID)
	if errors.Is(err, errs.UniquepairNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// CountFollowers counts the followers of accountID.
func (s *FollowService) CountFollowers(ctx context.Context, md models.RequestMetadata, accountID int64) (n int64, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "follow", "count_followers")
	defer span.End(&err)

	return s.pairs.Count(ctx, md, models.FollowQuery{FolloweeID: &accountID}.Pairs())
}

// CountFollowees counts the accounts accountID follows.
func (s *FollowService) CountFollowees(ctx context.Context, md models.RequestMetadata, accountID int64) (n int64, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "follow", "count_followees")
	defer span.End(&err)

	return s.pairs.Count(ctx, md, models.FollowQuery{FollowerID: &accountID}.Pairs())
}

func (s *FollowService) standard(ctx context.Context, md models.RequestMetadata, followID int64) (*models.Follow, error) {
	pair, err := s.pairs.Get(ctx, md, followID)
	if err != nil {
		return nil, relationError("follow", err)
	}
	if pair.Domain != models.DomainFollow {
		return nil, errs.FollowNotFound
	}
	return models.FollowFromPair(pair), nil
}

func (s *FollowService) expand(ctx context.Context, md models.RequestMetadata, follow *models.Follow) error {
	follower, err := s.accounts.RetrieveStandardAccount(ctx, md, follow.FollowerID)
	if err != nil {
		return err
	}
	followee, err := s.accounts.RetrieveStandardAccount(ctx, md, follow.FolloweeID)
	if err != nil {
		return err
	}
	follow.Follower = follower
	follow.Followee = followee
	return nil
}
