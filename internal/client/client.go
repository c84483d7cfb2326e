// Package client calls peer services over RPC. Every call acquires its own
// connection from the locator and releases it before returning.
package client

import (
	"context"

	"github.com/buzzblog/backend/internal/discovery"
	"github.com/buzzblog/backend/internal/models"
	"github.com/buzzblog/backend/internal/rpc"
	"github.com/buzzblog/backend/pkg/config"
)

type caller struct {
	locator *discovery.Locator
	service string
}

func (c caller) call(ctx context.Context, method string, params rpc.Carrier, result interface{}) error {
	conn, err := c.locator.Acquire(ctx, c.service)
	if err != nil {
		return err
	}
	defer conn.Close()
	return conn.Call(ctx, method, params, result)
}

// Uniquepair is a client of the relation store.
type Uniquepair struct{ caller }

// NewUniquepair creates a relation store client
func NewUniquepair(locator *discovery.Locator) *Uniquepair {
	return &Uniquepair{caller{locator: locator, service: config.ServiceUniquepair}}
}

// Get returns the pair with the given id.
func (c *Uniquepair) Get(ctx context.Context, md models.RequestMetadata, id int64) (*models.Uniquepair, error) {
	var pair models.Uniquepair
	if err := c.call(ctx, rpc.UniquepairGet, rpc.PairIDParams{Params: rpc.With(md), ID: id}, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Add inserts the pair (domain, first, second).
func (c *Uniquepair) Add(ctx context.Context, md models.RequestMetadata, domain string, first, second int64) (*models.Uniquepair, error) {
	var pair models.Uniquepair
	params := rpc.PairParams{Params: rpc.With(md), Domain: domain, FirstElem: first, SecondElem: second}
	if err := c.call(ctx, rpc.UniquepairAdd, params, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Remove deletes the pair with the given id.
func (c *Uniquepair) Remove(ctx context.Context, md models.RequestMetadata, id int64) error {
	return c.call(ctx, rpc.UniquepairRemove, rpc.PairIDParams{Params: rpc.With(md), ID: id}, nil)
}

// Find returns the pair (domain, first, second).
func (c *Uniquepair) Find(ctx context.Context, md models.RequestMetadata, domain string, first, second int64) (*models.Uniquepair, error) {
	var pair models.Uniquepair
	params := rpc.PairParams{Params: rpc.With(md), Domain: domain, FirstElem: first, SecondElem: second}
	if err := c.call(ctx, rpc.UniquepairFind, params, &pair); err != nil {
		return nil, err
	}
	return &pair, nil
}

// Fetch lists the pairs matching q, newest first.
func (c *Uniquepair) Fetch(ctx context.Context, md models.RequestMetadata, q models.UniquepairQuery, limit, offset int) ([]*models.Uniquepair, error) {
	var pairs []*models.Uniquepair
	params := rpc.PairFetchParams{Params: rpc.With(md), Query: q, Limit: limit, Offset: offset}
	if err := c.call(ctx, rpc.UniquepairFetch, params, &pairs); err != nil {
		return nil, err
	}
	return pairs, nil
}

// Count counts the pairs matching q.
func (c *Uniquepair) Count(ctx context.Context, md models.RequestMetadata, q models.UniquepairQuery) (int64, error) {
	var n int64
	err := c.call(ctx, rpc.UniquepairCount, rpc.PairCountParams{Params: rpc.With(md), Query: q}, &n)
	return n, err
}

// Account is a client of the account service.
type Account struct{ caller }

// NewAccount creates an account client
func NewAccount(locator *discovery.Locator) *Account {
	return &Account{caller{locator: locator, service: config.ServiceAccount}}
}

// RetrieveStandardAccount returns the stored fields of an account.
func (c *Account) RetrieveStandardAccount(ctx context.Context, md models.RequestMetadata, accountID int64) (*models.Account, error) {
	var account models.Account
	params := rpc.AccountIDParams{Params: rpc.With(md), AccountID: accountID}
	if err := c.call(ctx, rpc.AccountRetrieveStandard, params, &account); err != nil {
		return nil, err
	}
	return &account, nil
}

// Follow is a client of the follow service.
type Follow struct{ caller }

// NewFollow creates a follow client
func NewFollow(locator *discovery.Locator) *Follow {
	return &Follow{caller{locator: locator, service: config.ServiceFollow}}
}

// CheckFollow reports whether followerID follows followeeID.
func (c *Follow) CheckFollow(ctx context.Context, md models.RequestMetadata, followerID, followeeID int64) (bool, error) {
	var follows bool
	params := rpc.CheckFollowParams{Params: rpc.With(md), FollowerID: followerID, FolloweeID: followeeID}
	err := c.call(ctx, rpc.FollowCheck, params, &follows)
	return follows, err
}

// CountFollowers counts the followers of accountID.
func (c *Follow) CountFollowers(ctx context.Context, md models.RequestMetadata, accountID int64) (int64, error) {
	var n int64
	err := c.call(ctx, rpc.FollowCountFollowers, rpc.AccountIDParams{Params: rpc.With(md), AccountID: accountID}, &n)
	return n, err
}

// CountFollowees counts the accounts accountID follows.
func (c *Follow) CountFollowees(ctx context.Context, md models.RequestMetadata, accountID int64) (int64, error) {
	var n int64
	err := c.call(ctx, rpc.FollowCountFollowees, rpc.AccountIDParams{Params: rpc.With(md), AccountID: accountID}, &n)
	return n, err
}

// Like is a client of the like service.
type Like struct{ caller }

// NewLike creates a like client
func NewLike(locator *discovery.Locator) *Like {
	return &Like{caller{locator: locator, service: config.ServiceLike}}
}

// CountLikesByAccount counts the likes made by accountID.
func (c *Like) CountLikesByAccount(ctx context.Context, md models.RequestMetadata, accountID int64) (int64, error) {
	var n int64
	err := c.call(ctx, rpc.LikeCountByAccount, rpc.AccountIDParams{Params: rpc.With(md), AccountID: accountID}, &n)
	return n, err
}

// CountLikesOfPost counts the likes of postID.
func (c *Like) CountLikesOfPost(ctx context.Context, md models.RequestMetadata, postID int64) (int64, error) {
	var n int64
	err := c.call(ctx, rpc.LikeCountOfPost, rpc.PostIDParams{Params: rpc.With(md), PostID: postID}, &n)
	return n, err
}

// Post is a client of the post service.
type Post struct{ caller }

// NewPost creates a post client
func NewPost(locator *discovery.Locator) *Post {
	return &Post{caller{locator: locator, service: config.ServicePost}}
}

// RetrieveExpandedPost returns a post with its author and like count.
func (c *Post) RetrieveExpandedPost(ctx context.Context, md models.RequestMetadata, postID int64) (*models.Post, error) {
	var post models.Post
	if err := c.call(ctx, rpc.PostRetrieveExpanded, rpc.PostIDParams{Params: rpc.With(md), PostID: postID}, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

// CountPostsByAuthor counts the active posts of authorID.
func (c *Post) CountPostsByAuthor(ctx context.Context, md models.RequestMetadata, authorID int64) (int64, error) {
	var n int64
	err := c.call(ctx, rpc.PostCountByAuthor, rpc.AuthorIDParams{Params: rpc.With(md), AuthorID: authorID}, &n)
	return n, err
}
