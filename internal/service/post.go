package service

import (
	"context"
	"fmt"

	"github.com/buzzblog/backend/internal/db"
	"github.com/buzzblog/backend/internal/errs"
	"github.com/buzzblog/backend/internal/models"
	"github.com/buzzblog/backend/pkg/telemetry"
)

// PostService manages posts. Deleted posts are kept inactive: they can be
// retrieved by id but are left out of listings and counts.
type PostService struct {
	repo     *db.PostRepository
	accounts AccountReader
	likes    LikeCounter
	tracer   *telemetry.Tracer
}

// NewPostService creates a new post service. The like counter is set with
// SetLikeCounter, since likes in turn read posts.
func NewPostService(repo *db.PostRepository, accounts AccountReader, tracer *telemetry.Tracer) *PostService {
	return &PostService{repo: repo, accounts: accounts, tracer: tracer}
}

// SetLikeCounter sets the like counter used for expansion
func (s *PostService) SetLikeCounter(likes LikeCounter) {
	s.likes = likes
}

// CreatePost publishes text on behalf of the requester.
func (s *PostService) CreatePost(ctx context.Context, md models.RequestMetadata, text string) (post *models.Post, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "post", "create_post")
	defer span.End(&err)

	if err := validate.Struct(postInput{Text: text}); err != nil {
		return nil, errs.Wrap("post", errs.InvalidAttributes, err)
	}

	post = &models.Post{Text: text, AuthorID: md.RequesterID}
	if err := s.repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

// RetrieveStandardPost returns a post, active or not.
func (s *PostService) RetrieveStandardPost(ctx context.Context, md models.RequestMetadata, postID int64) (post *models.Post, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "post", "retrieve_standard_post")
	defer span.End(&err)

	return s.standard(ctx, postID)
}

// RetrieveExpandedPost returns a post with its author and like count.
func (s *PostService) RetrieveExpandedPost(ctx context.Context, md models.RequestMetadata, postID int64) (post *models.Post, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "post", "retrieve_expanded_post")
	defer span.End(&err)

	post, err = s.standard(ctx, postID)
	if err != nil {
		return nil, err
	}
	if err := s.expand(ctx, md, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost deactivates a post. Only its author may do so.
func (s *PostService) DeletePost(ctx context.Context, md models.RequestMetadata, postID int64) (err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "post", "delete_post")
	defer span.End(&err)

	post, err := s.standard(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != md.RequesterID {
		return errs.PostNotAuthorized
	}
	if err := s.repo.Deactivate(ctx, postID); err != nil {
		return fmt.Errorf("failed to delete post %d: %w", postID, err)
	}
	return nil
}

// ListPosts returns the expanded active posts matching q, newest first.
func (s *PostService) ListPosts(ctx context.Context, md models.RequestMetadata, q models.PostQuery, limit, offset int) (posts []*models.Post, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "post", "list_posts")
	defer span.End(&err)

	posts, err = s.repo.Fetch(ctx, q, limit, normalizeOffset(offset))
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	for _, post := range posts {
		if err := s.expand(ctx, md, post); err != nil {
			return nil, err
		}
	}
	if posts == nil {
		posts = []*models.Post{}
	}
	return posts, nil
}

// CountPostsByAuthor counts the active posts of authorID, matching what
// ListPosts returns for the same author.
func (s *PostService) CountPostsByAuthor(ctx context.Context, md models.RequestMetadata, authorID int64) (n int64, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "post", "count_posts_by_author")
	defer span.End(&err)

	n, err = s.repo.Count(ctx, models.PostQuery{AuthorID: &authorID})
	if err != nil {
		return 0, fmt.Errorf("failed to count posts: %w", err)
	}
	return n, nil
}

func (s *PostService) standard(ctx context.Context, postID int64) (*models.Post, error) {
	post, err := s.repo.GetByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post %d: %w", postID, err)
	}
	if post == nil {
		return nil, errs.PostNotFound
	}
	return post, nil
}

func (s *PostService) expand(ctx context.Context, md models.RequestMetadata, post *models.Post) error {
	author, err := s.accounts.RetrieveStandardAccount(ctx, md, post.AuthorID)
	if err != nil {
		return err
	}
	if s.likes == nil {
		return fmt.Errorf("post service has no like counter")
	}
	nLikes, err := s.likes.CountLikesOfPost(ctx, md, post.ID)
	if err != nil {
		return err
	}
	post.Author = author
	post.NLikes = &nLikes
	return nil
}
