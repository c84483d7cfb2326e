package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/buzzblog/backend/internal/models"
)

// UniquepairRepository stores domain-tagged pairs
type UniquepairRepository struct {
	db *gorm.DB
}

// NewUniquepairRepository creates a new uniquepair repository
func NewUniquepairRepository(db *DB) *UniquepairRepository {
	return &UniquepairRepository{db: db.DB}
}

// GetByID retrieves a pair by ID
func (r *UniquepairRepository) GetByID(ctx context.Context, id int64) (*models.Uniquepair, error) {
	var pair models.Uniquepair
	if err := r.db.WithContext(ctx).First(&pair, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pair, nil
}

// Find retrieves the pair (domain, first, second)
func (r *UniquepairRepository) Find(ctx context.Context, domain string, first, second int64) (*models.Uniquepair, error) {
	var pair models.Uniquepair
	err := r.db.WithContext(ctx).
		Where("domain = ? AND first_elem = ? AND second_elem = ?", domain, first, second).
		First(&pair).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &pair, nil
}

// Create inserts a pair. It returns ErrDuplicateKey if the pair exists.
func (r *UniquepairRepository) Create(ctx context.Context, pair *models.Uniquepair) error {
	return translateCreate(r.db.WithContext(ctx).Create(pair).Error)
}

// Delete removes a pair and reports whether it existed
func (r *UniquepairRepository) Delete(ctx context.Context, id int64) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.Uniquepair{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// Fetch lists matching pairs, newest first
func (r *UniquepairRepository) Fetch(ctx context.Context, q models.UniquepairQuery, limit, offset int) ([]*models.Uniquepair, error) {
	var pairs []*models.Uniquepair
	err := r.db.WithContext(ctx).
		Scopes(pairFilter(q), newestFirst, page(limit, offset)).
		Find(&pairs).Error
	if err != nil {
		return nil, err
	}
	return pairs, nil
}

// Count counts matching pairs
func (r *UniquepairRepository) Count(ctx context.Context, q models.UniquepairQuery) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Uniquepair{}).
		Scopes(pairFilter(q)).
		Count(&count).Error
	return count, err
}

func pairFilter(q models.UniquepairQuery) func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		tx = tx.Where("domain = ?", q.Domain)
		if q.FirstElem != nil {
			tx = tx.Where("first_elem = ?", *q.FirstElem)
		}
		if q.SecondElem != nil {
			tx = tx.Where("second_elem = ?", *q.SecondElem)
		}
		return tx
	}
}
