package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/buzzblog/backend/internal/db"
	"github.com/buzzblog/backend/internal/errs"
	"github.com/buzzblog/backend/internal/models"
	"github.com/buzzblog/backend/pkg/telemetry"
)

// AccountService manages accounts and authenticates users.
type AccountService struct {
	repo    *db.AccountRepository
	follows FollowReader
	posts   PostCounter
	likes   LikeCounter
	tracer  *telemetry.Tracer
}

// NewAccountService creates a new account service. The peers used by
// expanded views are set with SetPeers.
func NewAccountService(repo *db.AccountRepository, tracer *telemetry.Tracer) *AccountService {
	return &AccountService{repo: repo, tracer: tracer}
}

// SetPeers sets the services consulted by RetrieveExpandedAccount
func (s *AccountService) SetPeers(follows FollowReader, posts PostCounter, likes LikeCounter) {
	s.follows = follows
	s.posts = posts
	s.likes = likes
}

// AuthenticateUser checks a username and password. Unknown users and wrong
// passwords fail alike.
func (s *AccountService) AuthenticateUser(ctx context.Context, md models.RequestMetadata, username, password string) (account *models.Account, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "account", "authenticate_user")
	defer span.End(&err)

	account, err = s.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %q: %w", username, err)
	}
	if account == nil {
		return nil, errs.AccountInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return nil, errs.AccountInvalidCredentials
	}
	return account, nil
}

// CreateAccount registers a new account.
func (s *AccountService) CreateAccount(ctx context.Context, md models.RequestMetadata, username, password, firstName, lastName string) (account *models.Account, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "account", "create_account")
	defer span.End(&err)

	input := accountInput{Username: username, Password: password, FirstName: firstName, LastName: lastName}
	if err := validate.Struct(input); err != nil {
		return nil, errs.Wrap("account", errs.InvalidAttributes, err)
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}

	account = &models.Account{
		Username:     username,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := s.repo.Create(ctx, account); err != nil {
		if errors.Is(err, db.ErrDuplicateKey) {
			return nil, errs.AccountAlreadyExists
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}
	return account, nil
}

// RetrieveStandardAccount returns an account by id.
func (s *AccountService) RetrieveStandardAccount(ctx context.Context, md models.RequestMetadata, accountID int64) (account *models.Account, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "account", "retrieve_standard_account")
	defer span.End(&err)

	return s.standard(ctx, accountID)
}

// RetrieveExpandedAccount returns an account with its relation to the
// requester and its activity counts.
func (s *AccountService) RetrieveExpandedAccount(ctx context.Context, md models.RequestMetadata, accountID int64) (account *models.Account, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "account", "retrieve_expanded_account")
	defer span.End(&err)

	account, err = s.standard(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if s.follows == nil || s.posts == nil || s.likes == nil {
		return nil, fmt.Errorf("account service peers are not set")
	}

	followsYou, err := s.follows.CheckFollow(ctx, md, accountID, md.RequesterID)
	if err != nil {
		return nil, err
	}
	followedByYou, err := s.follows.CheckFollow(ctx, md, md.RequesterID, accountID)
	if err != nil {
		return nil, err
	}
	nFollowers, err := s.follows.CountFollowers(ctx, md, accountID)
	if err != nil {
		return nil, err
	}
	nFollowing, err := s.follows.CountFollowees(ctx, md, accountID)
	if err != nil {
		return nil, err
	}
	nPosts, err := s.posts.CountPostsByAuthor(ctx, md, accountID)
	if err != nil {
		return nil, err
	}
	nLikes, err := s.likes.CountLikesByAccount(ctx, md, accountID)
	if err != nil {
		return nil, err
	}

	account.FollowsYou = &followsYou
	account.FollowedByYou = &followedByYou
	account.NFollowers = &nFollowers
	account.NFollowing = &nFollowing
	account.NPosts = &nPosts
	account.NLikes = &nLikes
	return account, nil
}

// UpdateAccount replaces the password and names of the requester's account.
func (s *AccountService) UpdateAccount(ctx context.Context, md models.RequestMetadata, accountID int64, password, firstName, lastName string) (account *models.Account, err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "account", "update_account")
	defer span.End(&err)

	account, err = s.standard(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.ID != md.RequesterID {
		return nil, errs.AccountNotAuthorized
	}
	if err := validate.Struct(profileInput{Password: password, FirstName: firstName, LastName: lastName}); err != nil {
		return nil, errs.Wrap("account", errs.InvalidAttributes, err)
	}
	hash, err := hashPassword(password)
	if err != nil {
		return nil, err
	}
	if err := s.repo.UpdateProfile(ctx, accountID, hash, firstName, lastName); err != nil {
		return nil, fmt.Errorf("failed to update account %d: %w", accountID, err)
	}

	account.PasswordHash = hash
	account.FirstName = firstName
	account.LastName = lastName
	return account, nil
}

// DeleteAccount deactivates the requester's account.
func (s *AccountService) DeleteAccount(ctx context.Context, md models.RequestMetadata, accountID int64) (err error) {
	ctx, span := s.tracer.Begin(ctx, md.ID, "account", "delete_account")
	defer span.End(&err)

	account, err := s.standard(ctx, accountID)
	if err != nil {
		return err
	}
	if account.ID != md.RequesterID {
		return errs.AccountNotAuthorized
	}
	if err := s.repo.Deactivate(ctx, accountID); err != nil {
		return fmt.Errorf("failed to delete account %d: %w", accountID, err)
	}
	return nil
}

func (s *AccountService) standard(ctx context.Context, accountID int64) (*models.Account, error) {
	account, err := s.repo.GetByID(ctx, accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get account %d: %w", accountID, err)
	}
	if account == nil {
		return nil, errs.AccountNotFound
	}
	return account, nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", errs.Wrap("account", errs.InvalidAttributes, err)
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}
