package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/buzzblog/backend/internal/models"
)

// PostRepository provides post-related database operations
type PostRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *DB) *PostRepository {
	return &PostRepository{db: db.DB}
}

// GetByID retrieves a post by ID, deleted or not
func (r *PostRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	var post models.Post
	if err := r.db.WithContext(ctx).First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &post, nil
}

// Create creates a new post
func (r *PostRepository) Create(ctx context.Context, post *models.Post) error {
	post.Active = true
	return r.db.WithContext(ctx).Create(post).Error
}

// Deactivate soft-deletes a post
func (r *PostRepository) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("id = ?", id).
		Update("active", false).Error
}

// Fetch lists active posts, newest first
func (r *PostRepository) Fetch(ctx context.Context, q models.PostQuery, limit, offset int) ([]*models.Post, error) {
	var posts []*models.Post
	err := r.db.WithContext(ctx).
		Scopes(activePosts(q), newestFirst, page(limit, offset)).
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Count counts active posts
func (r *PostRepository) Count(ctx context.Context, q models.PostQuery) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Post{}).
		Scopes(activePosts(q)).
		Count(&count).Error
	return count, err
}

func activePosts(q models.PostQuery) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("active = ?", true)
		if q.AuthorID != nil {
			tx = tx.Where("author_id = ?", *q.AuthorID)
		}
		return tx
	}
}
