package db

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/buzzblog/backend/internal/models"
)

// AccountRepository provides account-related database operations
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) *AccountRepository {
	return &AccountRepository{db: db.DB}
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id int64) (*models.Account, error) {
	var account models.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// GetByUsername retrieves an active account by username
func (r *AccountRepository) GetByUsername(ctx context.Context, username string) (*models.Account, error) {
	var account models.Account
	err := r.db.WithContext(ctx).
		Where("username = ? AND active = ?", username, true).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// Create creates a new account. It returns ErrDuplicateKey if the username
// is taken.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	account.Active = true
	return translateCreate(r.db.WithContext(ctx).Create(account).Error)
}

// UpdateProfile replaces the password hash and names of an account
func (r *AccountRepository) UpdateProfile(ctx context.Context, id int64, passwordHash, firstName, lastName string) error {
	return r.db.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"password":   passwordHash,
			"first_name": firstName,
			"last_name":  lastName,
		}).Error
}

// Deactivate soft-deletes an account
func (r *AccountRepository) Deactivate(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Model(&models.Account{}).
		Where("id = ?", id).
		Update("active", false).Error
}
